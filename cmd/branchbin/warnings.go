package main

import (
	"fmt"
	"log/slog"
	"os"
	"slices"

	"github.com/agrahamlincoln/branchbin/internal/branches"
	"github.com/agrahamlincoln/branchbin/internal/github"
	"github.com/agrahamlincoln/branchbin/pkg/git"
)

// WarningsCmd shows why removing the given branches may lose work.
type WarningsCmd struct {
	Branches []string `arg:"" help:"Branches to check."`
}

// Run executes the warnings command.
func (c *WarningsCmd) Run(globals *CLI) error {
	a, err := newApp(globals)
	if err != nil {
		return err
	}
	defer a.close()

	if err := a.requireRepo(globals); err != nil {
		return err
	}

	ws, err := a.warnings(globals.Repo, c.Branches)
	if err != nil {
		return err
	}
	if len(ws) == 0 {
		fmt.Println("No warnings.")
		return nil
	}
	printWarnings(os.Stdout, ws)
	return nil
}

// warnings returns the core warnings for names, enriched with open pull
// requests when enabled.
func (a *app) warnings(repoPath string, names []string) ([]branches.Warning, error) {
	ws, err := a.svc.ListWarnings(repoPath, names)
	if err != nil {
		return nil, fmt.Errorf("checking branches: %w", err)
	}
	if !a.cfg.GitHub.PRWarnings || len(names) == 0 {
		return ws, nil
	}

	remote, err := git.RemoteURL(repoPath, "origin")
	if err != nil {
		slog.Debug("skipping pull request lookup: no origin remote", "repo", repoPath, "error", err)
		return ws, nil
	}
	owner, repo, ok := github.ParseGitHubRemote(remote)
	if !ok {
		slog.Debug("skipping pull request lookup: not a GitHub remote", "remote", remote)
		return ws, nil
	}
	return addPRWarnings(github.NewClient(a.cfg.GithubToken), owner, repo, names, ws), nil
}

// prLookup finds the open pull request for a branch.
type prLookup interface {
	OpenPR(owner, repo, branch string) (github.PullRequest, bool, error)
}

// addPRWarnings appends an open pull request reason to every candidate
// that has one. The result follows candidate order. Lookup failures are
// logged and ignored.
func addPRWarnings(lookup prLookup, owner, repo string, candidates []string, ws []branches.Warning) []branches.Warning {
	reasons := make(map[string][]string, len(ws))
	for _, w := range ws {
		reasons[w.Name] = w.Reasons
	}

	var result []branches.Warning
	for _, name := range candidates {
		rs := slices.Clone(reasons[name])
		pr, ok, err := lookup.OpenPR(owner, repo, name)
		switch {
		case err != nil:
			slog.Debug("pull request lookup failed", "branch", name, "error", err)
		case ok:
			rs = append(rs, fmt.Sprintf("Open pull request #%d", pr.Number))
		}
		if len(rs) > 0 {
			result = append(result, branches.Warning{Name: name, Reasons: rs})
		}
	}
	return result
}

package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/fatih/color"

	"github.com/agrahamlincoln/branchbin/internal/branches"
	"github.com/agrahamlincoln/branchbin/internal/config"
	"github.com/agrahamlincoln/branchbin/internal/parallel"
	"github.com/agrahamlincoln/branchbin/internal/scanner"
)

// CheckCmd reports whether a path is a git repository.
type CheckCmd struct {
	Path string `arg:"" optional:"" type:"path" help:"Path to check. Defaults to --repo."`
}

// Run executes the check command. A non-repository is reported as an
// error so the exit status reflects the answer.
func (c *CheckCmd) Run(globals *CLI) error {
	a, err := newApp(globals)
	if err != nil {
		return err
	}
	defer a.close()

	path := c.Path
	if path == "" {
		path = globals.Repo
	}
	if !a.svc.ValidateRepository(path) {
		return fmt.Errorf("%s is not a git repository", path)
	}
	fmt.Printf("%s is a git repository\n", path)
	return nil
}

// OverviewCmd lists recycle bin contents across every repository under the
// projects directory.
type OverviewCmd struct {
	All bool `help:"Include repositories with an empty recycle bin."`
}

// repoBin is the overview result for one repository.
type repoBin struct {
	Path     string
	Total    int
	Recycled []branches.Branch
	Err      error
}

// Run executes the overview command.
func (c *OverviewCmd) Run(globals *CLI) error {
	a, err := newApp(globals)
	if err != nil {
		return err
	}
	defer a.close()

	projectsDir := a.cfg.ProjectsDir
	if globals.ProjectsDir != "" {
		projectsDir = config.ExpandHome(globals.ProjectsDir)
	}

	slog.Debug("scanning for repositories", "dir", projectsDir)
	repos, err := scanner.Scan(projectsDir, scanner.Options{
		ExcludePatterns: a.cfg.ExcludePatterns,
	})
	if err != nil {
		return fmt.Errorf("scanning repositories: %w", err)
	}
	slog.Debug("found repositories", "count", len(repos))

	if len(repos) == 0 {
		fmt.Printf("No repositories found under %s.\n", projectsDir)
		return nil
	}

	bins := collectBins(a.svc, repos, a.cfg.Workers)
	printOverview(os.Stdout, projectsDir, bins, c.All, time.Now())
	return nil
}

// collectBins lists each repository's branches on a bounded worker pool.
// Results follow the order of repos.
func collectBins(svc *branches.Service, repos []string, workers int) []repoBin {
	return parallel.Run(repos, workers, func(repoPath string) repoBin {
		bs, err := svc.ListBranches(repoPath)
		if err != nil {
			slog.Warn("skipping repo: could not list branches", "repo", repoPath, "error", err)
			return repoBin{Path: repoPath, Err: err}
		}
		return repoBin{
			Path:     repoPath,
			Total:    len(bs),
			Recycled: filterBranches(bs, listRecycled, ""),
		}
	}, nil)
}

func printOverview(w io.Writer, root string, bins []repoBin, all bool, now time.Time) {
	bold := color.New(color.Bold)
	dim := color.New(color.FgHiBlack)
	red := color.New(color.FgRed)

	recycledTotal, reposWithBin := 0, 0
	for _, bin := range bins {
		if len(bin.Recycled) > 0 {
			recycledTotal += len(bin.Recycled)
			reposWithBin++
		}
	}

	for _, bin := range bins {
		if bin.Err == nil && len(bin.Recycled) == 0 && !all {
			continue
		}
		name := scanner.Rel(root, bin.Path)
		if bin.Err != nil {
			_, _ = fmt.Fprintf(w, "  %s  %s\n", bold.Sprint(name), red.Sprint("unreadable"))
			continue
		}
		_, _ = fmt.Fprintf(w, "  %s  %s\n", bold.Sprint(name),
			dim.Sprintf("%d branch(es), %d recycled", bin.Total, len(bin.Recycled)))
		for _, b := range bin.Recycled {
			_, _ = fmt.Fprintf(w, "    %s  %s\n", b.Name, dim.Sprintf("(%s)", formatAge(b.LastCommitDate, now)))
		}
	}

	_, _ = fmt.Fprintf(w, "\n%s\n", bold.Sprintf("%d recycled branch(es) in %d of %d repositories.",
		recycledTotal, reposWithBin, len(bins)))
}

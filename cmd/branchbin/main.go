// Package main provides the branchbin CLI tool for recycling local git
// branches instead of deleting them.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"github.com/agrahamlincoln/branchbin/internal/branches"
	"github.com/agrahamlincoln/branchbin/internal/config"
	"github.com/agrahamlincoln/branchbin/internal/journal"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// CLI defines the top-level command structure for branchbin.
type CLI struct {
	Repo        string `name:"repo" short:"C" help:"Repository to operate on." default:"." type:"path"`
	DryRun      bool   `name:"dry-run" short:"n" help:"Show what would be done without making changes."`
	Verbose     bool   `name:"verbose" short:"v" help:"Verbose output."`
	Yes         bool   `name:"yes" short:"y" help:"Skip confirmation prompts."`
	ProjectsDir string `name:"projects-dir" short:"p" help:"Projects directory for overview."`

	List     ListCmd     `cmd:"" help:"Show every local branch and its sync status."`
	Warnings WarningsCmd `cmd:"" help:"Show the risks of removing branches."`
	Delete   DeleteCmd   `cmd:"" help:"Move branches into the recycle bin."`
	Restore  RestoreCmd  `cmd:"" help:"Move recycled branches back to their original names."`
	Purge    PurgeCmd    `cmd:"" help:"Permanently delete everything in the recycle bin."`
	Check    CheckCmd    `cmd:"" help:"Check whether a path is a git repository."`
	Overview OverviewCmd `cmd:"" help:"Show recycle bin contents across all repositories."`
	History  HistoryCmd  `cmd:"" help:"Show recorded recycle bin operations."`
	Version  VersionCmd  `cmd:"" help:"Show version information."`
}

// app bundles the collaborators shared by every command.
type app struct {
	cfg     config.Config
	svc     *branches.Service
	journal *journal.Journal
}

// newApp applies global flags and loads configuration. The journal is
// only opened for real runs when enabled in the config.
func newApp(globals *CLI) (*app, error) {
	if globals.Verbose {
		slog.SetLogLoggerLevel(slog.LevelDebug)
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	a := &app{cfg: cfg, svc: branches.Default()}
	if cfg.Journal && !globals.DryRun {
		a.journal = journal.NewOrNil()
	}
	return a, nil
}

// close releases the journal. The journal is best-effort and must never
// fail a command, so its error is discarded.
func (a *app) close() {
	_ = a.journal.Close()
}

// requireRepo fails unless globals.Repo is a git repository.
func (a *app) requireRepo(globals *CLI) error {
	if !a.svc.ValidateRepository(globals.Repo) {
		return fmt.Errorf("%s is not a git repository", globals.Repo)
	}
	return nil
}

// shouldConfirm reports whether destructive commands must prompt first.
func (a *app) shouldConfirm(globals *CLI) bool {
	return a.cfg.Confirm && !globals.Yes
}

// VersionCmd shows version information.
type VersionCmd struct{}

// Run executes the version command.
func (c *VersionCmd) Run() error {
	fmt.Printf("branchbin %s (commit: %s, built: %s)\n", version, commit, date)
	return nil
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("branchbin"),
		kong.Description(`branchbin - a recycle bin for git branches

Shows the sync status of every local branch, warns before removing branches
that hold unpushed work, and moves unwanted branches into a recyclebin/
namespace where they can be restored or purged later.`),
		kong.UsageOnError(),
		kong.Vars{"version": fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date)},
	)
	err := ctx.Run(&cli)
	ctx.FatalIfErrorf(err)
	// Explicitly exit with 0 on success so tests can verify exit behavior.
	os.Exit(0)
}

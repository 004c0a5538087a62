package main

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"

	"github.com/agrahamlincoln/branchbin/internal/branches"
	"github.com/agrahamlincoln/branchbin/internal/journal"
)

// HistoryCmd shows recorded recycle bin operations for the repository.
type HistoryCmd struct {
	All   bool `help:"Show operations for every repository."`
	Limit int  `help:"Show at most N most recent operations." default:"20"`
}

// Run executes the history command.
func (c *HistoryCmd) Run(globals *CLI) error {
	dir, err := journal.DefaultDir()
	if err != nil {
		return err
	}

	repo := globals.Repo
	if c.All {
		repo = ""
	}
	events, err := journal.Events(dir, repo)
	if err != nil {
		return fmt.Errorf("reading journal: %w", err)
	}
	if len(events) == 0 {
		fmt.Println("No recorded operations.")
		return nil
	}
	if c.Limit > 0 && len(events) > c.Limit {
		events = events[len(events)-c.Limit:]
	}
	printHistory(os.Stdout, events, c.All)
	return nil
}

func printHistory(w io.Writer, events []journal.Event, showRepo bool) {
	bold := color.New(color.Bold)
	dim := color.New(color.FgHiBlack)

	for _, e := range events {
		header := fmt.Sprintf("%s  %s", e.Timestamp.Local().Format("2006-01-02 15:04"), bold.Sprint(e.Op))
		if showRepo {
			header += "  " + e.Repo
		}
		if e.Failed > 0 {
			header += dim.Sprintf("  (%d failed)", e.Failed)
		}
		_, _ = fmt.Fprintln(w, header)

		for _, b := range e.Branches {
			switch {
			case e.Op == journal.OpPurge:
				_, _ = fmt.Fprintf(w, "    %s  %s\n", b.Name, dim.Sprint(recoverHint(b)))
			case b.Target != "":
				_, _ = fmt.Fprintf(w, "    %s -> %s\n", b.Name, b.Target)
			default:
				_, _ = fmt.Fprintf(w, "    %s\n", b.Name)
			}
		}
	}
}

// recoverHint returns the command that recreates a purged branch under
// its original name.
func recoverHint(e journal.Entry) string {
	if e.Tip == "" {
		return "(tip not recorded)"
	}
	name := e.Name
	if _, original, ok := branches.SplitRecycled(e.Name); ok {
		name = original
	}
	return fmt.Sprintf("git branch %s %s", name, e.Tip)
}

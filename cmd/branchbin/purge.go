package main

import (
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"

	"github.com/agrahamlincoln/branchbin/internal/journal"
)

// PurgeCmd permanently deletes every branch in every recycle bin generation.
type PurgeCmd struct{}

// Run executes the purge command.
func (c *PurgeCmd) Run(globals *CLI) error {
	a, err := newApp(globals)
	if err != nil {
		return err
	}
	defer a.close()

	if err := a.requireRepo(globals); err != nil {
		return err
	}

	all, err := a.svc.ListBranches(globals.Repo)
	if err != nil {
		return fmt.Errorf("listing branches: %w", err)
	}
	recycled := filterBranches(all, listRecycled, "")
	if len(recycled) == 0 {
		fmt.Println("Recycle bin is empty.")
		return nil
	}

	bold := color.New(color.Bold)
	fmt.Printf("\n%s\n\n", bold.Sprintf("Recycle bin holds %d branch(es):", len(recycled)))
	printBranchTable(os.Stdout, recycled, time.Now())
	fmt.Println()

	if globals.DryRun {
		return nil
	}

	if a.shouldConfirm(globals) {
		ok, err := promptConfirm(
			fmt.Sprintf("Permanently delete %d branch(es)?", len(recycled)),
			"This cannot be undone from branchbin.",
		)
		if err != nil {
			return err
		}
		if !ok {
			fmt.Println("Cancelled.")
			return nil
		}
	}

	// Tips come from the listing taken before the purge, so the journal can
	// point at commits that no longer have a branch.
	tips := tipsByName(recycled)

	out, err := a.svc.Purge(globals.Repo)
	if err != nil {
		return fmt.Errorf("purging recycle bin: %w", err)
	}

	entries := make([]journal.Entry, 0, len(out.Deleted))
	for _, name := range out.Deleted {
		fmt.Printf("  deleted %s\n", name)
		entries = append(entries, journal.Entry{Name: name, Tip: tips[name]})
	}
	printBranchErrors(os.Stdout, out.Errors)
	_ = a.journal.Record(journal.OpPurge, globals.Repo, entries, len(out.Errors))

	if len(out.Deleted) > 0 {
		fmt.Println(bold.Sprintf("\nPurged %d branch(es).", len(out.Deleted)))
	}
	return failureError("purge", out.Errors)
}

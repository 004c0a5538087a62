package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"

	"github.com/agrahamlincoln/branchbin/internal/branches"
	"github.com/agrahamlincoln/branchbin/internal/journal"
)

// RestoreCmd moves recycled branches back to their original names.
type RestoreCmd struct {
	Branches []string `arg:"" optional:"" help:"Recycled branches, or their original names. Prompts for a selection when omitted."`
}

// Run executes the restore command.
func (c *RestoreCmd) Run(globals *CLI) error {
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

	names := resolveRestoreNames(c.Branches, recycled)
	if len(c.Branches) == 0 {
		if len(recycled) == 0 {
			fmt.Println("Recycle bin is empty.")
			return nil
		}
		if globals.Yes {
			return fmt.Errorf("no branches given; name them explicitly when using --yes")
		}
		names, err = promptForBranches("Select branches to restore", recycled)
		if err != nil {
			return err
		}
		if len(names) == 0 {
			fmt.Println("No branches selected.")
			return nil
		}
	}

	if globals.DryRun {
		for _, name := range names {
			if _, original, ok := branches.SplitRecycled(name); ok {
				fmt.Printf("  would restore %s -> %s\n", name, original)
			} else {
				fmt.Printf("  %s is not in the recycle bin\n", name)
			}
		}
		return nil
	}

	out, err := a.svc.Restore(globals.Repo, names)
	if err != nil {
		return fmt.Errorf("restoring branches: %w", err)
	}

	tips := tipsByName(all)
	entries := make([]journal.Entry, 0, len(out.Restored))
	for _, name := range out.Restored {
		_, original, _ := branches.SplitRecycled(name)
		fmt.Printf("  restored %s -> %s\n", name, original)
		entries = append(entries, journal.Entry{Name: name, Target: original, Tip: tips[name]})
	}
	printBranchErrors(os.Stdout, out.Errors)
	_ = a.journal.Record(journal.OpRestore, globals.Repo, entries, len(out.Errors))

	if len(out.Restored) > 0 {
		fmt.Println(color.New(color.Bold).Sprintf("\nRestored %d branch(es).", len(out.Restored)))
	}
	return failureError("restore", out.Errors)
}

// resolveRestoreNames maps each argument to a recycled branch name. An
// argument that is already recycled is kept. An original name maps to its
// recycled branch when exactly one generation holds it; otherwise it is
// kept unchanged and reported as not recycled by the restore itself.
func resolveRestoreNames(args []string, recycled []branches.Branch) []string {
	byOriginal := make(map[string][]string)
	for _, b := range recycled {
		if _, original, ok := branches.SplitRecycled(b.Name); ok {
			byOriginal[original] = append(byOriginal[original], b.Name)
		}
	}

	names := make([]string, 0, len(args))
	for _, arg := range args {
		if !branches.IsRecycled(arg) {
			if matches := byOriginal[arg]; len(matches) == 1 {
				names = append(names, matches[0])
				continue
			}
		}
		names = append(names, arg)
	}
	return names
}

package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"

	"github.com/agrahamlincoln/branchbin/internal/branches"
	"github.com/agrahamlincoln/branchbin/internal/journal"
)

// DeleteCmd soft-deletes branches by moving them into the recycle bin.
type DeleteCmd struct {
	Branches []string `arg:"" optional:"" help:"Branches to recycle. Prompts for a selection when omitted."`
}

// Run executes the delete command.
func (c *DeleteCmd) Run(globals *CLI) error {
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

	names := c.Branches
	if len(names) == 0 {
		candidates := deleteCandidates(all)
		if len(candidates) == 0 {
			fmt.Println("No branches to recycle.")
			return nil
		}
		if globals.Yes {
			return fmt.Errorf("no branches given; name them explicitly when using --yes")
		}
		names, err = promptForBranches("Select branches to move to the recycle bin", candidates)
		if err != nil {
			return err
		}
		if len(names) == 0 {
			fmt.Println("No branches selected.")
			return nil
		}
	}

	ws, err := a.warnings(globals.Repo, names)
	if err != nil {
		return err
	}
	if len(ws) > 0 {
		fmt.Println(color.New(color.Bold).Sprintf("\n%d branch(es) may hold work that exists nowhere else:", len(ws)))
		printWarnings(os.Stdout, ws)
		fmt.Println()
	}

	if globals.DryRun {
		prefix := branches.AllocatePrefix(branchNames(all))
		for _, name := range names {
			fmt.Printf("  would move %s -> %s\n", name, branches.RecycledName(prefix, name))
		}
		return nil
	}

	if a.shouldConfirm(globals) {
		ok, err := promptConfirm(
			fmt.Sprintf("Move %d branch(es) to the recycle bin?", len(names)),
			"Recycled branches can be restored until the bin is purged.",
		)
		if err != nil {
			return err
		}
		if !ok {
			fmt.Println("Cancelled.")
			return nil
		}
	}

	out, err := a.svc.SoftDelete(globals.Repo, names)
	if err != nil {
		return fmt.Errorf("recycling branches: %w", err)
	}

	tips := tipsByName(all)
	entries := make([]journal.Entry, 0, len(out.Moved))
	for _, name := range out.Moved {
		target := branches.RecycledName(out.Prefix, name)
		fmt.Printf("  moved %s -> %s\n", name, target)
		entries = append(entries, journal.Entry{Name: name, Target: target, Tip: tips[name]})
	}
	printBranchErrors(os.Stdout, out.Errors)
	_ = a.journal.Record(journal.OpSoftDelete, globals.Repo, entries, len(out.Errors))

	if len(out.Moved) > 0 {
		fmt.Println(color.New(color.Bold).Sprintf("\nRecycled %d branch(es).", len(out.Moved)))
	}
	return failureError("recycle", out.Errors)
}

// deleteCandidates returns the branches offered for recycling: everything
// outside the bin except the checked-out branch.
func deleteCandidates(all []branches.Branch) []branches.Branch {
	var result []branches.Branch
	for _, b := range all {
		if !b.IsRecycled && !b.IsCurrent {
			result = append(result, b)
		}
	}
	return result
}

func branchNames(bs []branches.Branch) []string {
	names := make([]string, len(bs))
	for i, b := range bs {
		names[i] = b.Name
	}
	return names
}

func tipsByName(bs []branches.Branch) map[string]string {
	tips := make(map[string]string, len(bs))
	for _, b := range bs {
		tips[b.Name] = b.Tip
	}
	return tips
}

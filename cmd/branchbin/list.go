package main

import (
	"fmt"
	"os"
	"time"
)

// ListCmd shows the status of every local branch.
type ListCmd struct {
	Recycled bool   `help:"Show only recycled branches." xor:"scope"`
	Active   bool   `help:"Show only branches outside the recycle bin." xor:"scope"`
	Match    string `short:"m" help:"Only show branches whose name fuzzy-matches TEXT." placeholder:"TEXT"`
}

func (c *ListCmd) mode() listMode {
	switch {
	case c.Recycled:
		return listRecycled
	case c.Active:
		return listActive
	default:
		return listAll
	}
}

// Run executes the list command.
func (c *ListCmd) Run(globals *CLI) error {
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

	shown := filterBranches(all, c.mode(), c.Match)
	if len(shown) == 0 {
		fmt.Println("No branches found.")
		return nil
	}
	printBranchTable(os.Stdout, shown, time.Now())
	return nil
}

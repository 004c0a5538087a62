package main

import (
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/agrahamlincoln/branchbin/internal/branches"
)

// promptForBranches shows a multi-select of bs and returns the chosen names.
func promptForBranches(title string, bs []branches.Branch) ([]string, error) {
	options := make([]huh.Option[string], len(bs))
	for i, b := range bs {
		options[i] = huh.NewOption(fmt.Sprintf("%s  (%s)", b.Name, b.StatusText), b.Name)
	}

	var selected []string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewMultiSelect[string]().
				Title(title).
				Options(options...).
				Value(&selected),
		),
	)
	if err := form.Run(); err != nil {
		return nil, fmt.Errorf("prompt failed: %w", err)
	}
	return selected, nil
}

// promptConfirm asks a yes/no question. The default answer is no.
func promptConfirm(title, description string) (bool, error) {
	var ok bool
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Description(description).
				Affirmative("Yes").
				Negative("No").
				Value(&ok),
		),
	)
	if err := form.Run(); err != nil {
		return false, fmt.Errorf("prompt failed: %w", err)
	}
	return ok, nil
}

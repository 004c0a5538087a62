package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/sahilm/fuzzy"

	"github.com/agrahamlincoln/branchbin/internal/branches"
)

// Maximum characters for commit message display.
const maxCommitSummaryLen = 50

// listMode selects which part of the branch list to show.
type listMode int

const (
	listAll listMode = iota
	listActive
	listRecycled
)

// branchSource implements fuzzy.Source over branch names.
type branchSource []branches.Branch

func (s branchSource) String(i int) string { return s[i].Name }
func (s branchSource) Len() int            { return len(s) }

// filterBranches narrows bs by mode and, when match is non-empty, by a
// fuzzy match on the name. The input order is preserved.
func filterBranches(bs []branches.Branch, mode listMode, match string) []branches.Branch {
	var scoped []branches.Branch
	for _, b := range bs {
		switch {
		case mode == listActive && b.IsRecycled:
		case mode == listRecycled && !b.IsRecycled:
		default:
			scoped = append(scoped, b)
		}
	}
	if match == "" {
		return scoped
	}

	hits := make(map[int]bool)
	for _, m := range fuzzy.FindFrom(match, branchSource(scoped)) {
		hits[m.Index] = true
	}
	var result []branches.Branch
	for i, b := range scoped {
		if hits[i] {
			result = append(result, b)
		}
	}
	return result
}

// stateColor picks the display color for a branch's sync state.
func stateColor(s branches.State) *color.Color {
	switch s {
	case branches.UpToDate:
		return color.New(color.FgGreen)
	case branches.Ahead, branches.Behind, branches.Diverged:
		return color.New(color.FgYellow)
	case branches.UpstreamGone:
		return color.New(color.FgRed)
	default:
		return color.New(color.FgHiBlack)
	}
}

// printBranchTable writes one line per branch: current marker, name,
// status, age and subject.
func printBranchTable(w io.Writer, bs []branches.Branch, now time.Time) {
	dim := color.New(color.FgHiBlack)

	width := 0
	for _, b := range bs {
		width = max(width, len(b.Name))
	}

	for _, b := range bs {
		marker := " "
		if b.IsCurrent {
			marker = "*"
		}
		name := fmt.Sprintf("%-*s", width, b.Name)
		if b.IsRecycled {
			name = dim.Sprint(name)
		}
		_, _ = fmt.Fprintf(w, "%s %s  %s  %s  %s\n",
			marker,
			name,
			stateColor(b.State).Sprint(b.StatusText),
			dim.Sprintf("(%s)", formatAge(b.LastCommitDate, now)),
			dim.Sprint(truncate(b.LastCommitMessage, maxCommitSummaryLen)),
		)
	}
}

// printWarnings writes each warning with its reasons indented below it.
func printWarnings(w io.Writer, ws []branches.Warning) {
	yellow := color.New(color.FgYellow)
	for _, warn := range ws {
		_, _ = fmt.Fprintf(w, "  %s\n", yellow.Sprint(warn.Name))
		for _, r := range warn.Reasons {
			_, _ = fmt.Fprintf(w, "    - %s\n", r)
		}
	}
}

// printBranchErrors writes one line per failed branch.
func printBranchErrors(w io.Writer, errs []branches.BranchError) {
	red := color.New(color.FgRed)
	for _, e := range errs {
		_, _ = fmt.Fprintf(w, "  %s %s: %s\n", red.Sprint("failed"), e.Branch, firstLine(e.Message))
	}
}

// failureError summarises per-branch failures as a single command error.
func failureError(verb string, errs []branches.BranchError) error {
	if len(errs) == 0 {
		return nil
	}
	names := make([]string, len(errs))
	for i, e := range errs {
		names[i] = e.Branch
	}
	return fmt.Errorf("failed to %s %d branch(es): %s", verb, len(errs), strings.Join(names, ", "))
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

// formatAge renders an ISO-8601 commit date relative to now.
func formatAge(date string, now time.Time) string {
	t, err := time.Parse(time.RFC3339, date)
	if err != nil {
		return "unknown date"
	}
	days := int(now.Sub(t).Hours() / 24)
	switch {
	case days <= 0:
		return "today"
	case days == 1:
		return "1 day ago"
	case days < 30:
		return fmt.Sprintf("%d days ago", days)
	case days < 365:
		months := days / 30
		if months == 1 {
			return "1 month ago"
		}
		return fmt.Sprintf("%d months ago", months)
	default:
		years := days / 365
		if years == 1 {
			return "1 year ago"
		}
		return fmt.Sprintf("%d years ago", years)
	}
}

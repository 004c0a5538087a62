package branches

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// fieldSep separates fields in for-each-ref output. The ASCII unit
// separator cannot appear in ref names, ISO dates or object names.
const fieldSep = "\x1f"

// refField is a for-each-ref format atom.
type refField string

const (
	fieldName     refField = "%(refname:lstrip=2)"
	fieldUpstream refField = "%(upstream:short)"
	fieldTrack    refField = "%(upstream:track)"
	fieldDate     refField = "%(committerdate:iso-strict)"
	fieldTip      refField = "%(objectname)"
	fieldSubject  refField = "%(subject)"
)

// branchFields is the query shape used for full listings. The subject must
// stay last: lines are split into at most len(branchFields) parts, so a
// separator byte inside a subject ends up in the subject.
var branchFields = []refField{fieldName, fieldUpstream, fieldTrack, fieldDate, fieldTip, fieldSubject}

// trackingFields is the reduced query shape used for warnings.
var trackingFields = []refField{fieldName, fieldUpstream, fieldTrack}

// refFormat joins fields with the separator in git's format language.
func refFormat(fields []refField) string {
	parts := make([]string, len(fields))
	for i, f := range fields {
		parts[i] = string(f)
	}
	return strings.Join(parts, "%1f")
}

// readRefs runs one batched for-each-ref over local branches and returns
// one map per parseable line, keyed by field. Lines with too few fields
// or an empty name are skipped.
func readRefs(git Git, repoPath string, fields []refField) ([]map[refField]string, error) {
	out, err := git.ForEachRef(repoPath, refFormat(fields), "refs/heads/")
	if err != nil {
		return nil, fmt.Errorf("%w: listing branches in %s: %w", ErrRepositoryAccess, repoPath, err)
	}
	if out == "" {
		return nil, nil
	}

	var rows []map[refField]string
	for _, line := range strings.Split(out, "\n") {
		if line == "" {
			continue
		}
		parts := strings.SplitN(line, fieldSep, len(fields))
		if len(parts) != len(fields) || parts[0] == "" {
			slog.Warn("skipping malformed ref line",
				"repo", repoPath, "fields", len(parts), "line", line)
			continue
		}
		row := make(map[refField]string, len(fields))
		for i, f := range fields {
			row[f] = parts[i]
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// listBranches reads and interprets every local branch, sorted by name.
func listBranches(git Git, repoPath string) ([]Branch, error) {
	current, err := git.CurrentBranch(repoPath)
	if err != nil {
		return nil, fmt.Errorf("%w: reading HEAD of %s: %w", ErrRepositoryAccess, repoPath, err)
	}

	rows, err := readRefs(git, repoPath, branchFields)
	if err != nil {
		return nil, err
	}

	result := make([]Branch, 0, len(rows))
	for _, row := range rows {
		result = append(result, interpret(row, current))
	}
	sortByName(result)
	return result, nil
}

// interpret turns one raw ref row into a Branch.
func interpret(row map[refField]string, current string) Branch {
	name := row[fieldName]
	tracking, ahead, behind, gone := classify(row[fieldUpstream], row[fieldTrack])
	return Branch{
		Name:              name,
		IsCurrent:         current != "" && name == current,
		TrackingBranch:    tracking,
		Ahead:             ahead,
		Behind:            behind,
		UpstreamGone:      gone,
		State:             stateOf(tracking, ahead, behind, gone),
		StatusText:        statusText(tracking, ahead, behind, gone),
		LastCommitDate:    row[fieldDate],
		LastCommitMessage: row[fieldSubject],
		Tip:               row[fieldTip],
		IsRecycled:        IsRecycled(name),
	}
}

// sortByName orders branches with a Unicode collator so that, for
// example, "alpha" sorts before "Beta". Collation ties fall back to a
// bytewise comparison to keep the order deterministic.
func sortByName(bs []Branch) {
	c := collate.New(language.Und)
	sort.SliceStable(bs, func(i, j int) bool {
		if r := c.CompareString(bs[i].Name, bs[j].Name); r != 0 {
			return r < 0
		}
		return bs[i].Name < bs[j].Name
	})
}

package branches

import "fmt"

// Reasons reported by warnings.
const (
	reasonNoTracking = "No remote tracking branch, this branch is local only and has never been pushed"
	reasonGone       = "Remote tracking branch has been deleted"
)

// warnings returns one entry per candidate that carries any risk, in
// candidate order. Only a live upstream makes the ahead count meaningful.
func warnings(git Git, repoPath string, candidates []string) ([]Warning, error) {
	if len(candidates) == 0 {
		return nil, nil
	}

	rows, err := readRefs(git, repoPath, trackingFields)
	if err != nil {
		return nil, err
	}
	byName := make(map[string]map[refField]string, len(rows))
	for _, row := range rows {
		byName[row[fieldName]] = row
	}

	var result []Warning
	for _, name := range candidates {
		if reasons := reasonsFor(byName[name]); len(reasons) > 0 {
			result = append(result, Warning{Name: name, Reasons: reasons})
		}
	}
	return result, nil
}

// reasonsFor derives the risk reasons for one ref row. A nil row (unknown
// branch) is treated like a branch without an upstream.
func reasonsFor(row map[refField]string) []string {
	if row == nil || row[fieldUpstream] == "" {
		return []string{reasonNoTracking}
	}
	t := parseTrack(row[fieldTrack])
	if t.Gone {
		return []string{reasonGone}
	}
	if t.Ahead > 0 {
		return []string{fmt.Sprintf("%d unpushed %s that exist only locally", t.Ahead, plural(t.Ahead, "commit"))}
	}
	return nil
}

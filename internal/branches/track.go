package branches

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	aheadRe  = regexp.MustCompile(`ahead (\d+)`)
	behindRe = regexp.MustCompile(`behind (\d+)`)
	goneRe   = regexp.MustCompile(`\bgone\b`)
)

// track is the parsed form of git's %(upstream:track) descriptor, e.g.
// "[ahead 2, behind 1]", "[gone]" or "".
type track struct {
	Ahead  int
	Behind int
	Gone   bool
}

// parseTrack parses an upstream track descriptor. All knowledge of the
// descriptor grammar lives here.
func parseTrack(descriptor string) track {
	var t track
	if m := aheadRe.FindStringSubmatch(descriptor); m != nil {
		t.Ahead, _ = strconv.Atoi(m[1])
	}
	if m := behindRe.FindStringSubmatch(descriptor); m != nil {
		t.Behind, _ = strconv.Atoi(m[1])
	}
	t.Gone = goneRe.MatchString(descriptor)
	return t
}

// classify derives the tracking fields of a branch from its raw upstream
// name and track descriptor. A gone upstream is not a usable tracking
// target, so it is reported as absent with zero counts.
func classify(upstream, descriptor string) (tracking string, ahead, behind int, gone bool) {
	t := parseTrack(descriptor)
	if t.Gone {
		return "", 0, 0, true
	}
	if upstream == "" {
		return "", 0, 0, false
	}
	return upstream, t.Ahead, t.Behind, false
}

// stateOf mirrors the priority order of statusText.
func stateOf(tracking string, ahead, behind int, gone bool) State {
	switch {
	case gone:
		return UpstreamGone
	case tracking == "":
		return NoUpstream
	case ahead > 0 && behind > 0:
		return Diverged
	case ahead > 0:
		return Ahead
	case behind > 0:
		return Behind
	default:
		return UpToDate
	}
}

// statusText returns the human-readable summary of a branch's tracking state.
func statusText(tracking string, ahead, behind int, gone bool) string {
	if gone {
		return "Remote branch deleted"
	}
	if tracking == "" {
		return "No remote tracking branch (local only)"
	}
	if ahead == 0 && behind == 0 {
		return "Up to date with remote"
	}

	var parts []string
	if ahead > 0 {
		parts = append(parts, fmt.Sprintf("%d unpushed %s", ahead, plural(ahead, "commit")))
	}
	if behind > 0 {
		parts = append(parts, fmt.Sprintf("%d %s behind remote", behind, plural(behind, "commit")))
	}
	return strings.Join(parts, ", ")
}

func plural(n int, word string) string {
	if n > 1 {
		return word + "s"
	}
	return word
}

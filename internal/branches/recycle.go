package branches

import (
	"regexp"
	"strconv"
	"strings"
)

// RecyclePrefix is the base name of the recycle namespace. Later
// generations append a counter: recyclebin2, recyclebin3, ...
const RecyclePrefix = "recyclebin"

var recycledRe = regexp.MustCompile(`^` + RecyclePrefix + `(\d*)/(.+)$`)

// IsRecycled reports whether name lives in any generation of the recycle
// bin. The check is purely syntactic.
func IsRecycled(name string) bool {
	_, _, ok := SplitRecycled(name)
	return ok
}

// SplitRecycled splits a recycled branch name into its recycle prefix and
// the original branch name. ok is false for names outside the recycle bin.
func SplitRecycled(name string) (prefix, original string, ok bool) {
	m := recycledRe.FindStringSubmatch(name)
	if m == nil {
		return "", "", false
	}
	return RecyclePrefix + m[1], m[2], true
}

// AllocatePrefix returns a recycle prefix that is not itself the name of an
// existing branch. Git stores refs as paths, so a branch literally named
// "recyclebin" would make "recyclebin/<anything>" impossible to create.
func AllocatePrefix(existing []string) string {
	taken := make(map[string]bool, len(existing))
	for _, name := range existing {
		if strings.HasPrefix(name, RecyclePrefix) {
			taken[name] = true
		}
	}

	prefix := RecyclePrefix
	for n := 2; taken[prefix]; n++ {
		prefix = RecyclePrefix + strconv.Itoa(n)
	}
	return prefix
}

// RecycledName returns the name a branch gets when moved under prefix.
func RecycledName(prefix, name string) string {
	return prefix + "/" + name
}

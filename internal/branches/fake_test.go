package branches

import (
	"errors"
	"sort"
	"strings"
)

// fakeGit implements Git over an in-memory set of branch names.
type fakeGit struct {
	isRepo  bool
	current string
	names   map[string]bool

	// refOutput, when set, is returned verbatim by ForEachRef.
	refOutput string

	currentErr error
	listErr    error
	refErr     error
	renameErrs map[string]error // keyed by old name
	deleteErrs map[string]error

	// Track calls for verification.
	renameCalls [][2]string
	deleteCalls []string
	forcedFlags []bool
	refCalls    []string
}

func newFakeGit(names ...string) *fakeGit {
	f := &fakeGit{
		isRepo:     true,
		current:    "main",
		names:      make(map[string]bool),
		renameErrs: make(map[string]error),
		deleteErrs: make(map[string]error),
	}
	for _, n := range names {
		f.names[n] = true
	}
	return f
}

func (f *fakeGit) IsRepo(_ string) bool {
	return f.isRepo
}

func (f *fakeGit) CurrentBranch(_ string) (string, error) {
	return f.current, f.currentErr
}

func (f *fakeGit) ListBranches(_ string) ([]string, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.sorted(), nil
}

func (f *fakeGit) ForEachRef(_, format, pattern string) (string, error) {
	f.refCalls = append(f.refCalls, format+" "+pattern)
	if f.refErr != nil {
		return "", f.refErr
	}
	return f.refOutput, nil
}

func (f *fakeGit) RenameBranch(_, oldName, newName string) error {
	f.renameCalls = append(f.renameCalls, [2]string{oldName, newName})
	if err := f.renameErrs[oldName]; err != nil {
		return err
	}
	if !f.names[oldName] {
		return errors.New("fatal: no branch named '" + oldName + "'")
	}
	if f.names[newName] {
		return errors.New("fatal: a branch named '" + newName + "' already exists")
	}
	delete(f.names, oldName)
	f.names[newName] = true
	return nil
}

func (f *fakeGit) DeleteLocalBranch(_, branch string, force bool) error {
	f.deleteCalls = append(f.deleteCalls, branch)
	f.forcedFlags = append(f.forcedFlags, force)
	if err := f.deleteErrs[branch]; err != nil {
		return err
	}
	delete(f.names, branch)
	return nil
}

func (f *fakeGit) sorted() []string {
	out := make([]string, 0, len(f.names))
	for n := range f.names {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// refLine builds one for-each-ref output line from field values.
func refLine(fields ...string) string {
	return strings.Join(fields, fieldSep)
}

// Package helpers provides test utilities for creating git repositories and scenarios.
package helpers

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// TestRepo represents a test git repository
type TestRepo struct {
	Path string
	t    *testing.T
}

// NewTestRepo creates a new test repository in a temporary directory
// with a single commit on main.
func NewTestRepo(t *testing.T, name string) *TestRepo {
	t.Helper()

	tmpDir := t.TempDir()
	repoPath := filepath.Join(tmpDir, name)

	if err := os.MkdirAll(repoPath, 0750); err != nil {
		t.Fatalf("Failed to create test repo directory: %v", err)
	}

	repo := &TestRepo{
		Path: repoPath,
		t:    t,
	}

	repo.run("git", "init", "-b", "main")
	repo.configureIdentity()

	repo.WriteFile("README.md", "# Test Repository\n")
	repo.run("git", "add", "README.md")
	repo.CommitWithDate("Initial commit", time.Now())

	return repo
}

// NewClonedRepo creates a bare "origin" repository seeded with a commit
// on main and returns a clone of it whose main tracks origin/main.
func NewClonedRepo(t *testing.T, name string) *TestRepo {
	t.Helper()

	seed := NewTestRepo(t, name+"-seed")

	tmpDir := t.TempDir()
	barePath := filepath.Join(tmpDir, name+"-origin.git")
	clonePath := filepath.Join(tmpDir, name)

	// #nosec G204 - git command with controlled inputs in test code
	cmd := exec.Command("git", "clone", "--bare", seed.Path, barePath)
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("Failed to create bare clone: %v\n%s", err, out)
	}
	// #nosec G204 - git command with controlled inputs in test code
	cmd = exec.Command("git", "clone", barePath, clonePath)
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("Failed to clone bare repo: %v\n%s", err, out)
	}

	repo := &TestRepo{Path: clonePath, t: t}
	repo.configureIdentity()
	return repo
}

func (r *TestRepo) configureIdentity() {
	r.t.Helper()
	r.run("git", "config", "user.name", "Test User")
	r.run("git", "config", "user.email", "test@example.com")
}

// WriteFile writes a file to the repository
func (r *TestRepo) WriteFile(filename, content string) {
	r.t.Helper()
	path := filepath.Join(r.Path, filename)
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		r.t.Fatalf("Failed to write file %s: %v", filename, err)
	}
}

// AddFile stages a file for commit
func (r *TestRepo) AddFile(filename string) {
	r.t.Helper()
	r.run("git", "add", filename)
}

// Commit creates a commit with the current timestamp
func (r *TestRepo) Commit(message string) {
	r.t.Helper()
	r.CommitWithDate(message, time.Now())
}

// CommitFile writes, stages and commits a file in one step.
func (r *TestRepo) CommitFile(filename, content, message string) {
	r.t.Helper()
	r.WriteFile(filename, content)
	r.AddFile(filename)
	r.Commit(message)
}

// CommitWithDate creates a commit with a specific timestamp
func (r *TestRepo) CommitWithDate(message string, date time.Time) {
	r.t.Helper()
	dateStr := date.Format(time.RFC3339)
	// #nosec G204 - git command with controlled inputs in test code
	cmd := exec.Command("git", "commit", "-m", message, "--date", dateStr)
	cmd.Dir = r.Path
	cmd.Env = append(os.Environ(),
		fmt.Sprintf("GIT_AUTHOR_DATE=%s", dateStr),
		fmt.Sprintf("GIT_COMMITTER_DATE=%s", dateStr),
	)
	if output, err := cmd.CombinedOutput(); err != nil {
		r.t.Fatalf("Failed to commit: %v\n%s", err, output)
	}
}

// CreateBranch creates a new branch and checks it out
func (r *TestRepo) CreateBranch(name string) {
	r.t.Helper()
	r.run("git", "checkout", "-b", name)
}

// Branch creates a branch at HEAD without checking it out.
func (r *TestRepo) Branch(name string) {
	r.t.Helper()
	r.run("git", "branch", name)
}

// Checkout switches to a branch
func (r *TestRepo) Checkout(branch string) {
	r.t.Helper()
	r.run("git", "checkout", branch)
}

// DetachHead checks out the current commit directly.
func (r *TestRepo) DetachHead() {
	r.t.Helper()
	r.run("git", "checkout", "--detach")
}

// Push pushes a branch to a remote and sets it as upstream.
func (r *TestRepo) Push(remote, branch string) {
	r.t.Helper()
	r.run("git", "push", "-u", remote, branch)
}

// DeleteRemoteBranch deletes a branch on the remote and prunes the
// remote-tracking ref, leaving the local upstream configured but gone.
func (r *TestRepo) DeleteRemoteBranch(remote, branch string) {
	r.t.Helper()
	r.run("git", "push", remote, "--delete", branch)
	r.run("git", "fetch", "--prune", remote)
}

// ResetHard moves the current branch to ref.
func (r *TestRepo) ResetHard(ref string) {
	r.t.Helper()
	r.run("git", "reset", "--hard", ref)
}

// RevParse resolves a revision to its full object name.
func (r *TestRepo) RevParse(rev string) string {
	r.t.Helper()
	return r.output("git", "rev-parse", rev)
}

// Upstream returns the configured upstream of a branch, or "" if none.
func (r *TestRepo) Upstream(branch string) string {
	r.t.Helper()
	// #nosec G204 - git command with controlled inputs in test code
	cmd := exec.Command("git", "rev-parse", "--abbrev-ref", branch+"@{upstream}")
	cmd.Dir = r.Path
	out, err := cmd.Output()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(out))
}

// CurrentBranch returns the current branch name
func (r *TestRepo) CurrentBranch() string {
	r.t.Helper()
	return r.output("git", "branch", "--show-current")
}

// Branches returns a list of all branch names
func (r *TestRepo) Branches() []string {
	r.t.Helper()
	var branches []string
	for _, line := range strings.Split(r.output("git", "branch", "--format=%(refname:lstrip=2)"), "\n") {
		if line != "" {
			branches = append(branches, line)
		}
	}
	return branches
}

// HasBranch reports whether a local branch exists.
func (r *TestRepo) HasBranch(name string) bool {
	r.t.Helper()
	for _, b := range r.Branches() {
		if b == name {
			return true
		}
	}
	return false
}

// run executes a git command in the repository
func (r *TestRepo) run(args ...string) {
	r.t.Helper()
	// #nosec G204 - git command with controlled inputs in test code
	cmd := exec.Command(args[0], args[1:]...)
	cmd.Dir = r.Path
	if output, err := cmd.CombinedOutput(); err != nil {
		r.t.Fatalf("Git command failed: %v\n%s", args, output)
	}
}

func (r *TestRepo) output(args ...string) string {
	r.t.Helper()
	// #nosec G204 - git command with controlled inputs in test code
	cmd := exec.Command(args[0], args[1:]...)
	cmd.Dir = r.Path
	out, err := cmd.Output()
	if err != nil {
		r.t.Fatalf("Git command failed: %v: %v", args, err)
	}
	return strings.TrimSpace(string(out))
}

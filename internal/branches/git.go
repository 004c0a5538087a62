package branches

import "github.com/agrahamlincoln/branchbin/pkg/git"

// Git defines the repository operations the branch engine needs.
// This interface enables testing with fakes.
type Git interface {
	IsRepo(path string) bool
	CurrentBranch(repoPath string) (string, error)
	ListBranches(repoPath string) ([]string, error)
	ForEachRef(repoPath, format, pattern string) (string, error)
	RenameBranch(repoPath, oldName, newName string) error
	DeleteLocalBranch(repoPath, branch string, force bool) error
}

// RealGit implements Git using the pkg/git package.
type RealGit struct{}

// IsRepo returns true if the given path is inside a git repository.
func (RealGit) IsRepo(path string) bool {
	return git.IsRepo(path)
}

// CurrentBranch returns the checked-out branch, or "" for a detached HEAD.
func (RealGit) CurrentBranch(repoPath string) (string, error) {
	return git.CurrentBranch(repoPath)
}

// ListBranches returns all local branch names.
func (RealGit) ListBranches(repoPath string) ([]string, error) {
	return git.ListBranches(repoPath)
}

// ForEachRef runs git for-each-ref with the given format.
func (RealGit) ForEachRef(repoPath, format, pattern string) (string, error) {
	return git.ForEachRef(repoPath, format, pattern)
}

// RenameBranch renames a local branch without overwriting an existing one.
func (RealGit) RenameBranch(repoPath, oldName, newName string) error {
	return git.RenameBranch(repoPath, oldName, newName)
}

// DeleteLocalBranch deletes a local branch.
func (RealGit) DeleteLocalBranch(repoPath, branch string, force bool) error {
	return git.DeleteLocalBranch(repoPath, branch, force)
}

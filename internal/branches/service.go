package branches

import "os"

// Service exposes branch status and recycle bin operations. It holds no
// per-repository state: every call takes the repository path and queries
// git afresh, so one Service can serve any number of repositories.
type Service struct {
	git Git
}

// NewService creates a Service backed by the given Git implementation.
func NewService(git Git) *Service {
	return &Service{git: git}
}

// Default returns a Service backed by the git CLI.
func Default() *Service {
	return NewService(RealGit{})
}

// ValidateRepository reports whether repoPath is a usable git repository.
// It never fails: anything that cannot be determined is reported as false.
func (s *Service) ValidateRepository(repoPath string) bool {
	if repoPath == "" {
		return false
	}
	info, err := os.Stat(repoPath)
	if err != nil || !info.IsDir() {
		return false
	}
	return s.git.IsRepo(repoPath)
}

// ListBranches returns the status of every local branch, sorted by name.
// It fails with ErrRepositoryAccess when git cannot be queried.
func (s *Service) ListBranches(repoPath string) ([]Branch, error) {
	return listBranches(s.git, repoPath)
}

// ListWarnings returns the risks of removing each candidate branch.
// Candidates without risk are omitted.
func (s *Service) ListWarnings(repoPath string, names []string) ([]Warning, error) {
	return warnings(s.git, repoPath, names)
}

// SoftDelete moves the named branches into a fresh recycle bin prefix.
// Per-branch failures are reported in the outcome; the error is only set
// when the repository could not be queried at all.
func (s *Service) SoftDelete(repoPath string, names []string) (DeleteOutcome, error) {
	return softDelete(s.git, repoPath, names)
}

// Purge permanently deletes every branch in every recycle bin generation.
// Purging an empty bin succeeds and does nothing.
func (s *Service) Purge(repoPath string) (PurgeOutcome, error) {
	return purge(s.git, repoPath)
}

// Restore renames recycled branches back to their original names.
func (s *Service) Restore(repoPath string, names []string) (RestoreOutcome, error) {
	return restore(s.git, repoPath, names)
}

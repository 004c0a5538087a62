package branches

import (
	"fmt"
	"log/slog"
	"strings"
)

// softDelete renames each branch to <prefix>/<name>. Branches are handled
// one at a time in input order and a failure never stops the rest.
func softDelete(git Git, repoPath string, names []string) (DeleteOutcome, error) {
	if len(names) == 0 {
		return DeleteOutcome{Success: true}, nil
	}

	existing, err := git.ListBranches(repoPath)
	if err != nil {
		return DeleteOutcome{}, fmt.Errorf("%w: listing branches in %s: %w", ErrRepositoryAccess, repoPath, err)
	}
	prefix := AllocatePrefix(existing)

	out := DeleteOutcome{Prefix: prefix}
	for _, name := range names {
		target := RecycledName(prefix, name)
		slog.Debug("moving branch to recycle bin", "repo", repoPath, "branch", name, "target", target)
		if err := git.RenameBranch(repoPath, name, target); err != nil {
			out.Errors = append(out.Errors, branchError(name, err))
			continue
		}
		out.Moved = append(out.Moved, name)
	}
	out.Success = len(out.Errors) == 0
	return out, nil
}

// purge force-deletes every branch in every recycle bin generation. The
// branch list is always re-read so that nothing stale is deleted.
func purge(git Git, repoPath string) (PurgeOutcome, error) {
	existing, err := git.ListBranches(repoPath)
	if err != nil {
		return PurgeOutcome{}, fmt.Errorf("%w: listing branches in %s: %w", ErrRepositoryAccess, repoPath, err)
	}

	var out PurgeOutcome
	for _, name := range existing {
		if !IsRecycled(name) {
			continue
		}
		// Recycle bin membership already signals intent to discard, so
		// the unmerged check of `git branch -d` is skipped.
		slog.Debug("purging branch", "repo", repoPath, "branch", name)
		if err := git.DeleteLocalBranch(repoPath, name, true); err != nil {
			out.Errors = append(out.Errors, branchError(name, err))
			continue
		}
		out.Deleted = append(out.Deleted, name)
	}
	out.Success = len(out.Errors) == 0
	return out, nil
}

// restore renames recycled branches back to their original names.
func restore(git Git, repoPath string, names []string) (RestoreOutcome, error) {
	if len(names) == 0 {
		return RestoreOutcome{Success: true}, nil
	}

	existing, err := git.ListBranches(repoPath)
	if err != nil {
		return RestoreOutcome{}, fmt.Errorf("%w: listing branches in %s: %w", ErrRepositoryAccess, repoPath, err)
	}
	present := make(map[string]bool, len(existing))
	for _, name := range existing {
		present[name] = true
	}

	var out RestoreOutcome
	for _, name := range names {
		_, original, ok := SplitRecycled(name)
		if !ok || !present[name] {
			out.Errors = append(out.Errors, BranchError{
				Branch:  name,
				Message: "not in the recycle bin",
			})
			continue
		}
		slog.Debug("restoring branch", "repo", repoPath, "branch", name, "target", original)
		if err := git.RenameBranch(repoPath, name, original); err != nil {
			out.Errors = append(out.Errors, branchError(name, err))
			continue
		}
		out.Restored = append(out.Restored, name)
	}
	out.Success = len(out.Errors) == 0
	return out, nil
}

func branchError(name string, err error) BranchError {
	return BranchError{Branch: name, Message: strings.TrimSpace(err.Error())}
}

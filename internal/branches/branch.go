// Package branches computes the status of local branches and manages the
// recycle bin: soft delete by renaming into a reserved namespace, restore,
// and permanent purge.
package branches

import (
	"errors"
	"fmt"
)

// ErrRepositoryAccess is returned when the repository cannot be queried at
// all, for example because the path is no longer a git repository.
var ErrRepositoryAccess = errors.New("repository not accessible")

// State classifies a branch relative to its upstream.
type State int

const (
	// UpToDate means the branch matches its upstream.
	UpToDate State = iota
	// Ahead means the branch has commits the upstream lacks.
	Ahead
	// Behind means the upstream has commits the branch lacks.
	Behind
	// Diverged means both sides have commits the other lacks.
	Diverged
	// NoUpstream means no upstream is configured.
	NoUpstream
	// UpstreamGone means an upstream is configured but no longer exists.
	UpstreamGone
)

// String returns the human-readable name of a State value.
func (s State) String() string {
	switch s {
	case UpToDate:
		return "UpToDate"
	case Ahead:
		return "Ahead"
	case Behind:
		return "Behind"
	case Diverged:
		return "Diverged"
	case NoUpstream:
		return "NoUpstream"
	case UpstreamGone:
		return "UpstreamGone"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Branch is the status of one local branch at query time.
type Branch struct {
	Name      string
	IsCurrent bool
	// TrackingBranch is empty when no upstream is configured or the
	// configured upstream is gone.
	TrackingBranch string
	// Ahead and Behind are zero whenever TrackingBranch is empty.
	Ahead        int
	Behind       int
	UpstreamGone bool
	State        State
	StatusText   string
	// LastCommitDate is the committer date of the tip in ISO-8601 form.
	LastCommitDate    string
	LastCommitMessage string
	Tip               string
	IsRecycled        bool
}

// BranchError records a failed operation on a single branch.
type BranchError struct {
	Branch  string
	Message string
}

// DeleteOutcome is the result of a soft delete.
type DeleteOutcome struct {
	Success bool
	// Prefix is the recycle prefix the branches were moved under.
	Prefix string
	Moved  []string
	Errors []BranchError
}

// PurgeOutcome is the result of emptying the recycle bin.
type PurgeOutcome struct {
	Success bool
	Deleted []string
	Errors  []BranchError
}

// RestoreOutcome is the result of moving recycled branches back.
type RestoreOutcome struct {
	Success  bool
	Restored []string
	Errors   []BranchError
}

// Warning lists the risks of removing a single branch.
type Warning struct {
	Name    string
	Reasons []string
}

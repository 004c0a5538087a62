package branches_test

import (
	"errors"
	"path/filepath"
	"testing"

	gogit "github.com/go-git/go-git/v6"
	"github.com/go-git/go-git/v6/plumbing"

	"github.com/agrahamlincoln/branchbin/internal/branches"
	"github.com/agrahamlincoln/branchbin/test/helpers"
)

func findBranch(t *testing.T, bs []branches.Branch, name string) branches.Branch {
	t.Helper()
	for _, b := range bs {
		if b.Name == name {
			return b
		}
	}
	t.Fatalf("branch %q not found", name)
	return branches.Branch{}
}

func tipOf(t *testing.T, repoPath, branch string) plumbing.Hash {
	t.Helper()
	repo, err := gogit.PlainOpenWithOptions(repoPath, &gogit.PlainOpenOptions{})
	if err != nil {
		t.Fatalf("opening %s: %v", repoPath, err)
	}
	ref, err := repo.Reference(plumbing.NewBranchReferenceName(branch), true)
	if err != nil {
		t.Fatalf("resolving %s: %v", branch, err)
	}
	return ref.Hash()
}

// setupTracking builds a clone with branches in every sync state:
// main (up to date), ahead, behind, diverged, gone and local.
func setupTracking(t *testing.T) *helpers.TestRepo {
	t.Helper()
	repo := helpers.NewClonedRepo(t, "project")

	repo.CreateBranch("ahead")
	repo.Push("origin", "ahead")
	repo.CommitFile("a1.txt", "1", "ahead one")
	repo.CommitFile("a2.txt", "2", "ahead two")

	repo.Checkout("main")
	repo.CreateBranch("behind")
	repo.CommitFile("b1.txt", "1", "behind one")
	repo.Push("origin", "behind")
	repo.ResetHard("HEAD~1")

	repo.Checkout("main")
	repo.CreateBranch("diverged")
	repo.CommitFile("d1.txt", "1", "shared")
	repo.Push("origin", "diverged")
	repo.ResetHard("HEAD~1")
	repo.CommitFile("d2.txt", "2", "local only")

	repo.Checkout("main")
	repo.CreateBranch("gone")
	repo.CommitFile("g1.txt", "1", "gone work")
	repo.Push("origin", "gone")
	repo.DeleteRemoteBranch("origin", "gone")

	repo.Checkout("main")
	repo.CreateBranch("local")
	repo.CommitFile("l1.txt", "1", "local work")

	repo.Checkout("main")
	return repo
}

func TestIntegration_ListBranches(t *testing.T) {
	repo := setupTracking(t)
	svc := branches.Default()

	got, err := svc.ListBranches(repo.Path)
	if err != nil {
		t.Fatalf("ListBranches: %v", err)
	}

	want := []string{"ahead", "behind", "diverged", "gone", "local", "main"}
	if len(got) != len(want) {
		t.Fatalf("expected %d branches, got %d: %+v", len(want), len(got), got)
	}
	for i, name := range want {
		if got[i].Name != name {
			t.Errorf("branch[%d] = %q, want %q", i, got[i].Name, name)
		}
	}

	tests := []struct {
		name   string
		state  branches.State
		ahead  int
		behind int
		status string
	}{
		{"main", branches.UpToDate, 0, 0, "Up to date with remote"},
		{"ahead", branches.Ahead, 2, 0, "2 unpushed commits"},
		{"behind", branches.Behind, 0, 1, "1 commit behind remote"},
		{"diverged", branches.Diverged, 1, 1, "1 unpushed commit, 1 commit behind remote"},
		{"gone", branches.UpstreamGone, 0, 0, "Remote branch deleted"},
		{"local", branches.NoUpstream, 0, 0, "No remote tracking branch (local only)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := findBranch(t, got, tt.name)
			if b.State != tt.state {
				t.Errorf("state = %v, want %v", b.State, tt.state)
			}
			if b.Ahead != tt.ahead || b.Behind != tt.behind {
				t.Errorf("ahead/behind = %d/%d, want %d/%d", b.Ahead, b.Behind, tt.ahead, tt.behind)
			}
			if b.StatusText != tt.status {
				t.Errorf("status = %q, want %q", b.StatusText, tt.status)
			}
			if b.Tip != repo.RevParse(tt.name) {
				t.Errorf("tip = %q, want %q", b.Tip, repo.RevParse(tt.name))
			}
			if b.LastCommitDate == "" {
				t.Error("expected a commit date")
			}
		})
	}

	if !findBranch(t, got, "main").IsCurrent {
		t.Error("main should be current")
	}
	if gone := findBranch(t, got, "gone"); gone.TrackingBranch != "" || !gone.UpstreamGone {
		t.Errorf("gone branch should have no tracking branch, got %+v", gone)
	}
	if ahead := findBranch(t, got, "ahead"); ahead.TrackingBranch != "origin/ahead" {
		t.Errorf("ahead tracking = %q", ahead.TrackingBranch)
	}
}

func TestIntegration_ListWarnings(t *testing.T) {
	repo := setupTracking(t)
	svc := branches.Default()

	got, err := svc.ListWarnings(repo.Path, []string{"main", "ahead", "behind", "gone", "local"})
	if err != nil {
		t.Fatalf("ListWarnings: %v", err)
	}

	want := map[string]string{
		"ahead": "2 unpushed commits that exist only locally",
		"gone":  "Remote tracking branch has been deleted",
		"local": "No remote tracking branch, this branch is local only and has never been pushed",
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d warnings, got %+v", len(want), got)
	}
	order := []string{"ahead", "gone", "local"}
	for i, w := range got {
		if w.Name != order[i] {
			t.Errorf("warning[%d] = %q, want %q", i, w.Name, order[i])
		}
		if len(w.Reasons) != 1 || w.Reasons[0] != want[w.Name] {
			t.Errorf("%s reasons = %v, want [%s]", w.Name, w.Reasons, want[w.Name])
		}
	}
}

func TestIntegration_SoftDeleteRestoreRoundTrip(t *testing.T) {
	repo := setupTracking(t)
	svc := branches.Default()

	tipBefore := tipOf(t, repo.Path, "ahead")
	upstreamBefore := repo.Upstream("ahead")
	if upstreamBefore != "origin/ahead" {
		t.Fatalf("precondition: upstream = %q", upstreamBefore)
	}

	del, err := svc.SoftDelete(repo.Path, []string{"ahead", "local"})
	if err != nil {
		t.Fatalf("SoftDelete: %v", err)
	}
	if !del.Success || del.Prefix != "recyclebin" {
		t.Fatalf("unexpected outcome %+v", del)
	}
	if repo.HasBranch("ahead") || !repo.HasBranch("recyclebin/ahead") {
		t.Fatalf("ahead was not moved, branches: %v", repo.Branches())
	}
	if got := tipOf(t, repo.Path, "recyclebin/ahead"); got != tipBefore {
		t.Errorf("recycled tip = %s, want %s", got, tipBefore)
	}

	listed, err := svc.ListBranches(repo.Path)
	if err != nil {
		t.Fatalf("ListBranches: %v", err)
	}
	if !findBranch(t, listed, "recyclebin/local").IsRecycled {
		t.Error("recyclebin/local should be reported as recycled")
	}

	res, err := svc.Restore(repo.Path, []string{"recyclebin/ahead"})
	if err != nil || !res.Success {
		t.Fatalf("Restore: %v %+v", err, res)
	}
	if got := tipOf(t, repo.Path, "ahead"); got != tipBefore {
		t.Errorf("restored tip = %s, want %s", got, tipBefore)
	}
	if got := repo.Upstream("ahead"); got != upstreamBefore {
		t.Errorf("restored upstream = %q, want %q", got, upstreamBefore)
	}
}

func TestIntegration_SoftDeleteCurrentBranchIsAllowed(t *testing.T) {
	repo := helpers.NewTestRepo(t, "current")
	repo.CreateBranch("work")
	svc := branches.Default()

	del, err := svc.SoftDelete(repo.Path, []string{"work"})
	if err != nil || !del.Success {
		t.Fatalf("SoftDelete: %v %+v", err, del)
	}
	if got := repo.CurrentBranch(); got != "recyclebin/work" {
		t.Errorf("current branch = %q, want recyclebin/work", got)
	}
}

func TestIntegration_PrefixAvoidsLiteralBranch(t *testing.T) {
	repo := helpers.NewTestRepo(t, "literal")
	repo.Branch("recyclebin")
	repo.Branch("topic")
	svc := branches.Default()

	del, err := svc.SoftDelete(repo.Path, []string{"topic"})
	if err != nil || !del.Success {
		t.Fatalf("SoftDelete: %v %+v", err, del)
	}
	if del.Prefix != "recyclebin2" {
		t.Errorf("prefix = %q, want recyclebin2", del.Prefix)
	}
	if !repo.HasBranch("recyclebin2/topic") {
		t.Errorf("expected recyclebin2/topic, branches: %v", repo.Branches())
	}
}

func TestIntegration_PartialFailure(t *testing.T) {
	repo := helpers.NewTestRepo(t, "partial")
	repo.Branch("feature/a")
	svc := branches.Default()

	del, err := svc.SoftDelete(repo.Path, []string{"feature/a", "feature/b"})
	if err != nil {
		t.Fatalf("SoftDelete: %v", err)
	}
	if del.Success {
		t.Error("expected success=false")
	}
	if len(del.Moved) != 1 || del.Moved[0] != "feature/a" {
		t.Errorf("moved = %v", del.Moved)
	}
	if len(del.Errors) != 1 || del.Errors[0].Branch != "feature/b" {
		t.Errorf("errors = %+v", del.Errors)
	}
}

func TestIntegration_Purge(t *testing.T) {
	repo := helpers.NewTestRepo(t, "purge")
	repo.Branch("recyclebin/x")
	repo.Branch("recyclebin2/y")
	repo.CreateBranch("unmerged")
	repo.CommitFile("u.txt", "u", "unmerged work")
	repo.Checkout("main")
	svc := branches.Default()

	if del, err := svc.SoftDelete(repo.Path, []string{"unmerged"}); err != nil || !del.Success {
		t.Fatalf("SoftDelete: %v %+v", err, del)
	}

	out, err := svc.Purge(repo.Path)
	if err != nil {
		t.Fatalf("Purge: %v", err)
	}
	if !out.Success {
		t.Errorf("expected success, got %+v", out.Errors)
	}
	if len(out.Deleted) != 3 {
		t.Errorf("deleted = %v, want 3 branches", out.Deleted)
	}
	if got := repo.Branches(); len(got) != 1 || got[0] != "main" {
		t.Errorf("branches after purge = %v", got)
	}

	again, err := svc.Purge(repo.Path)
	if err != nil || !again.Success || len(again.Deleted) != 0 {
		t.Errorf("second purge = %+v, %v", again, err)
	}
}

func TestIntegration_NotARepository(t *testing.T) {
	dir := t.TempDir()
	svc := branches.Default()

	if svc.ValidateRepository(dir) {
		t.Error("plain directory should not validate")
	}
	if svc.ValidateRepository(filepath.Join(dir, "missing")) {
		t.Error("missing path should not validate")
	}
	if _, err := svc.ListBranches(dir); !errors.Is(err, branches.ErrRepositoryAccess) {
		t.Errorf("expected ErrRepositoryAccess, got %v", err)
	}

	repo := helpers.NewTestRepo(t, "valid")
	if !svc.ValidateRepository(repo.Path) {
		t.Error("repository should validate")
	}
}

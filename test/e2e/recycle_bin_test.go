//go:build e2e

package e2e

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/agrahamlincoln/branchbin/test/helpers"
)

// binaryPath returns the absolute path to the branchbin-debug binary,
// resolving from the project root rather than using relative paths
// that break when cmd.Dir is set to a temp directory.
func binaryPath(t *testing.T) string {
	t.Helper()
	// The test runs from the test/e2e/ directory, so go up two levels.
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("failed to get working directory: %v", err)
	}
	return filepath.Join(wd, "..", "..", "bin", "branchbin-debug")
}

// isolatedEnv points config and journal lookups at per-test directories.
func isolatedEnv(t *testing.T) []string {
	t.Helper()
	env := os.Environ()
	return append(env,
		"XDG_CONFIG_HOME="+t.TempDir(),
		"XDG_DATA_HOME="+t.TempDir(),
	)
}

func runBranchbin(t *testing.T, dir string, env []string, args ...string) (string, error) {
	t.Helper()
	// #nosec G204 - test binary with controlled inputs
	cmd := exec.Command(binaryPath(t), args...)
	cmd.Dir = dir
	cmd.Env = env
	output, err := cmd.CombinedOutput()
	return string(output), err
}

func TestRecycleRestorePurge(t *testing.T) {
	repo := helpers.NewTestRepo(t, "test-repo")
	env := isolatedEnv(t)

	repo.CreateBranch("feature/done")
	repo.CommitFile("done.txt", "done", "Finish feature")
	repo.Checkout("main")
	repo.Branch("feature/keep")
	tip := repo.RevParse("feature/done")

	output, err := runBranchbin(t, repo.Path, env, "delete", "--yes", "feature/done", "feature/keep")
	if err != nil {
		t.Fatalf("delete exited with error: %v\nOutput: %s", err, output)
	}
	if !strings.Contains(output, "moved feature/done -> recyclebin/feature/done") {
		t.Errorf("expected move to be reported\nOutput: %s", output)
	}
	if !strings.Contains(output, "has never been pushed") {
		t.Errorf("expected local-only warning\nOutput: %s", output)
	}
	if repo.HasBranch("feature/done") || !repo.HasBranch("recyclebin/feature/done") {
		t.Fatalf("expected feature/done to be recycled, branches: %v", repo.Branches())
	}

	output, err = runBranchbin(t, repo.Path, env, "list", "--recycled")
	if err != nil {
		t.Fatalf("list exited with error: %v\nOutput: %s", err, output)
	}
	if !strings.Contains(output, "recyclebin/feature/keep") || strings.Contains(output, " main ") {
		t.Errorf("unexpected recycled listing\nOutput: %s", output)
	}

	output, err = runBranchbin(t, repo.Path, env, "restore", "--yes", "feature/keep")
	if err != nil {
		t.Fatalf("restore exited with error: %v\nOutput: %s", err, output)
	}
	if !repo.HasBranch("feature/keep") {
		t.Fatalf("expected feature/keep to be restored, branches: %v", repo.Branches())
	}

	output, err = runBranchbin(t, repo.Path, env, "purge", "--yes")
	if err != nil {
		t.Fatalf("purge exited with error: %v\nOutput: %s", err, output)
	}
	if repo.HasBranch("recyclebin/feature/done") {
		t.Errorf("expected recycle bin to be empty, branches: %v", repo.Branches())
	}

	output, err = runBranchbin(t, repo.Path, env, "history")
	if err != nil {
		t.Fatalf("history exited with error: %v\nOutput: %s", err, output)
	}
	for _, want := range []string{"soft_delete", "restore", "purge", "git branch feature/done " + tip} {
		if !strings.Contains(output, want) {
			t.Errorf("expected history to contain %q\nOutput: %s", want, output)
		}
	}
}

func TestDryRunLeavesBranches(t *testing.T) {
	repo := helpers.NewTestRepo(t, "test-dry-run")
	env := isolatedEnv(t)
	repo.Branch("feature/x")

	output, err := runBranchbin(t, repo.Path, env, "--dry-run", "delete", "feature/x")
	if err != nil {
		t.Fatalf("delete exited with error: %v\nOutput: %s", err, output)
	}
	if !strings.Contains(output, "would move feature/x -> recyclebin/feature/x") {
		t.Errorf("expected dry-run plan\nOutput: %s", output)
	}
	if !repo.HasBranch("feature/x") {
		t.Error("dry run should not rename branches")
	}
}

func TestCheckCommand(t *testing.T) {
	repo := helpers.NewTestRepo(t, "test-check")
	env := isolatedEnv(t)

	if output, err := runBranchbin(t, repo.Path, env, "check"); err != nil {
		t.Errorf("expected repository to pass check: %v\nOutput: %s", err, output)
	}

	notRepo := t.TempDir()
	output, err := runBranchbin(t, notRepo, env, "check")
	if err == nil {
		t.Errorf("expected check to fail outside a repository\nOutput: %s", output)
	}
	if !strings.Contains(output, "is not a git repository") {
		t.Errorf("expected explanation\nOutput: %s", output)
	}
}

func TestOverviewAcrossRepos(t *testing.T) {
	repo := helpers.NewTestRepo(t, "test-overview")
	env := isolatedEnv(t)
	repo.Branch("recyclebin/old")
	projectsDir := filepath.Dir(repo.Path)

	output, err := runBranchbin(t, repo.Path, env, "overview", "--projects-dir", projectsDir)
	if err != nil {
		t.Fatalf("overview exited with error: %v\nOutput: %s", err, output)
	}
	if !strings.Contains(output, "test-overview") || !strings.Contains(output, "recyclebin/old") {
		t.Errorf("expected repository bin listing\nOutput: %s", output)
	}
}

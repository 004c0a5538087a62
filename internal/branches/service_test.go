package branches

import (
	"os"
	"path/filepath"
	"testing"
)

func TestValidateRepository(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "plain.txt")
	if err := os.WriteFile(file, []byte("x"), 0600); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name   string
		path   string
		isRepo bool
		want   bool
	}{
		{"empty path", "", true, false},
		{"missing path", filepath.Join(dir, "nope"), true, false},
		{"regular file", file, true, false},
		{"directory that is not a repo", dir, false, false},
		{"repository", dir, true, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fg := newFakeGit()
			fg.isRepo = tt.isRepo
			if got := NewService(fg).ValidateRepository(tt.path); got != tt.want {
				t.Errorf("ValidateRepository(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

func TestService_DelegatesPerPath(t *testing.T) {
	fg := newFakeGit("main", "feature/a", "recyclebin/old")
	svc := NewService(fg)

	del, err := svc.SoftDelete("/repo", []string{"feature/a"})
	if err != nil || !del.Success {
		t.Fatalf("SoftDelete: %v %+v", err, del)
	}
	pur, err := svc.Purge("/repo")
	if err != nil || !pur.Success {
		t.Fatalf("Purge: %v %+v", err, pur)
	}
	if len(pur.Deleted) != 2 {
		t.Errorf("expected both recycled branches purged, got %v", pur.Deleted)
	}
	if got := fg.sorted(); len(got) != 1 || got[0] != "main" {
		t.Errorf("branches after purge = %v", got)
	}
}

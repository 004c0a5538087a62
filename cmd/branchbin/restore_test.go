package main

import (
	"reflect"
	"testing"

	"github.com/agrahamlincoln/branchbin/internal/branches"
)

func TestResolveRestoreNames(t *testing.T) {
	recycled := []branches.Branch{
		{Name: "recyclebin/feature/a", IsRecycled: true},
		{Name: "recyclebin/dup", IsRecycled: true},
		{Name: "recyclebin2/dup", IsRecycled: true},
	}

	tests := []struct {
		name string
		args []string
		want []string
	}{
		{
			name: "recycled name kept",
			args: []string{"recyclebin/feature/a"},
			want: []string{"recyclebin/feature/a"},
		},
		{
			name: "unique original name resolved",
			args: []string{"feature/a"},
			want: []string{"recyclebin/feature/a"},
		},
		{
			name: "ambiguous original name kept",
			args: []string{"dup"},
			want: []string{"dup"},
		},
		{
			name: "unknown name kept",
			args: []string{"nope"},
			want: []string{"nope"},
		},
		{
			name: "order preserved",
			args: []string{"recyclebin2/dup", "feature/a", "nope"},
			want: []string{"recyclebin2/dup", "recyclebin/feature/a", "nope"},
		},
		{
			name: "no args",
			args: nil,
			want: []string{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := resolveRestoreNames(tt.args, recycled)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("resolveRestoreNames(%v) = %v, want %v", tt.args, got, tt.want)
			}
		})
	}
}

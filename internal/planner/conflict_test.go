package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dclews/portage-tools/internal/atom"
	"github.com/dclews/portage-tools/internal/envmap"
	"github.com/dclews/portage-tools/internal/fsops"
)

func newMapping(profile string, atoms ...string) *envmap.Mapping {
	m := envmap.New(fsops.NewMemFS(), "/etc/portage/package.env", profile)
	for _, a := range atoms {
		m.Insert(atom.MustParse(a))
	}
	return m
}

func TestConflictChecker_Check(t *testing.T) {
	m1 := newMapping("m1", "cat/a", "=cat/b-1.0")
	m2 := newMapping("m2")
	checker := NewConflictChecker([]*envmap.Mapping{m1, m2})

	tests := []struct {
		name    string
		atom    string
		wantHit *envmap.Mapping
	}{
		{"present in first mapping", "cat/a", m1},
		{"versioned present", "=cat/b-1.0", m1},
		{"different operator is free", ">=cat/b-1.0", nil},
		{"unversioned form of versioned entry is free", "cat/b", nil},
		{"unknown atom is free", "cat/z", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conflict := checker.Check(atom.MustParse(tt.atom))
			if tt.wantHit == nil {
				assert.Nil(t, conflict)
				assert.Nil(t, checker.Owner(atom.MustParse(tt.atom)))
				return
			}
			require.NotNil(t, conflict)
			assert.Same(t, tt.wantHit, conflict.Mapping)
			assert.Same(t, tt.wantHit, checker.Owner(atom.MustParse(tt.atom)))
		})
	}
}

func TestConflictChecker_DoesNotMutate(t *testing.T) {
	m1 := newMapping("m1", "cat/a")
	m2 := newMapping("m2")
	checker := NewConflictChecker([]*envmap.Mapping{m1, m2})

	conflict := checker.Check(atom.MustParse("cat/a"))
	require.NotNil(t, conflict)

	assert.Equal(t, 1, m1.Len())
	assert.Zero(t, m2.Len())
	assert.Contains(t, conflict.Reason(), "cat/a")
	assert.Contains(t, conflict.Reason(), m1.Name())
}

func TestConflictChecker_CheckAll(t *testing.T) {
	m1 := newMapping("m1", "cat/a")
	m2 := newMapping("m2", "cat/a", "cat/b")
	checker := NewConflictChecker([]*envmap.Mapping{m1, m2})

	conflicts := checker.CheckAll(atom.MustParse("cat/a"))
	require.Len(t, conflicts, 2)
	assert.Same(t, m1, conflicts[0].Mapping)
	assert.Same(t, m2, conflicts[1].Mapping)

	assert.Len(t, checker.CheckAll(atom.MustParse("cat/b")), 1)
	assert.Empty(t, checker.CheckAll(atom.MustParse("cat/c")))
}

func TestConflictChecker_NoMappings(t *testing.T) {
	checker := NewConflictChecker(nil)
	assert.Nil(t, checker.Check(atom.MustParse("cat/a")))
}

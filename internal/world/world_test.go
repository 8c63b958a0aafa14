package world

import (
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dclews/portage-tools/internal/atom"
	"github.com/dclews/portage-tools/internal/fsops"
)

const worldPath = "/var/lib/portage/world"

func setupWorld(t *testing.T, content string) *File {
	t.Helper()
	fs := fsops.NewMemFS()
	require.NoError(t, afero.WriteFile(fs.Afero(), worldPath, []byte(content), 0644))
	return New(fs, worldPath)
}

func TestFile_ContainsAfterLongLine(t *testing.T) {
	w := setupWorld(t, strings.Repeat("x", 70*1024)+"\ndev-lang/go\r\n")

	got, err := w.Contains(atom.MustParse("dev-lang/go"))
	require.NoError(t, err)
	assert.True(t, got)
}

func TestFile_Contains(t *testing.T) {
	w := setupWorld(t, "app-editors/vim\ndev-lang/go\nwww-client/firefox \n")

	tests := []struct {
		name string
		atom string
		want bool
	}{
		{"exact line", "dev-lang/go", true},
		{"versioned atom matches on category/package", ">=dev-lang/go-1.22", true},
		{"absent package", "dev-lang/rust", false},
		{"prefix is not a match", "dev-lang/g", false},
		{"trailing whitespace breaks exact match", "www-client/firefox", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := w.Contains(atom.MustParse(tt.atom))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFile_ContainsMissingFile(t *testing.T) {
	w := New(fsops.NewMemFS(), worldPath)

	_, err := w.Contains(atom.MustParse("dev-lang/go"))
	assert.Error(t, err)
	assert.False(t, w.Predicate()(atom.MustParse("dev-lang/go")))
}

func TestFile_PredicateSeesUpdates(t *testing.T) {
	w := setupWorld(t, "dev-lang/go\n")
	inWorld := w.Predicate()

	assert.True(t, inWorld(atom.MustParse("dev-lang/go")))
	assert.False(t, inWorld(atom.MustParse("dev-lang/rust")))

	fs := w.fs.(*fsops.RealFS)
	require.NoError(t, afero.WriteFile(fs.Afero(), worldPath, []byte("dev-lang/go\ndev-lang/rust\n"), 0644))
	assert.True(t, inWorld(atom.MustParse("dev-lang/rust")))
	assert.Equal(t, worldPath, w.Path())
}

package envmap

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/dclews/portage-tools/internal/atom"
	"github.com/dclews/portage-tools/internal/fsops"
)

const baseDir = "/etc/portage/package.env"

// setupFS creates an in-memory filesystem holding the given profile files.
func setupFS(t *testing.T, files map[string]string) *fsops.RealFS {
	t.Helper()

	fs := fsops.NewMemFS()
	require.NoError(t, fs.MkdirAll(baseDir, 0755))
	for name, content := range files {
		writeProfile(t, fs, name, content)
	}
	return fs
}

func writeProfile(t *testing.T, fs *fsops.RealFS, name, content string) {
	t.Helper()
	require.NoError(t, afero.WriteFile(fs.Afero(), filepath.Join(baseDir, name), []byte(content), 0644))
}

func atomStrings(atoms []atom.Atom) []string {
	out := make([]string, len(atoms))
	for i, a := range atoms {
		out[i] = a.String()
	}
	return out
}

func TestNew(t *testing.T) {
	fs := setupFS(t, nil)

	m := New(fs, baseDir, "no-lto")

	assert.Equal(t, filepath.Join(baseDir, "no-lto"), m.Name())
	assert.Equal(t, m.Name(), m.Path())
	assert.Equal(t, "no-lto", m.Profile())
	assert.False(t, m.Loaded())
	assert.Zero(t, m.Len())

	exists, err := fs.Exists(m.Path())
	require.NoError(t, err)
	assert.False(t, exists, "New must not touch the filesystem")
}

func TestMapping_Reload(t *testing.T) {
	t.Run("reads first token of every non-blank line", func(t *testing.T) {
		fs := setupFS(t, map[string]string{
			"no-lto": "dev-lang/go no-lto.conf\n\n   \n>=sys-devel/gcc-13.2 no-lto.conf extra\n\t=www-client/firefox-128.0\n",
		})
		m := New(fs, baseDir, "no-lto")

		require.NoError(t, m.Reload())

		assert.True(t, m.Loaded())
		assert.Equal(t, []string{"dev-lang/go", ">=sys-devel/gcc-13.2", "=www-client/firefox-128.0"}, atomStrings(m.Atoms()))
	})

	t.Run("duplicate lines collapse", func(t *testing.T) {
		fs := setupFS(t, map[string]string{
			"debug": "dev-lang/go\ndev-lang/go debug.conf\n=dev-lang/go-1.22\n",
		})
		m := New(fs, baseDir, "debug")

		require.NoError(t, m.Reload())
		assert.Equal(t, 2, m.Len())
	})

	t.Run("empty store yields no atoms", func(t *testing.T) {
		fs := setupFS(t, map[string]string{"empty": ""})
		m := New(fs, baseDir, "empty")

		require.NoError(t, m.Reload())
		assert.True(t, m.Loaded())
		assert.Zero(t, m.Len())
	})

	t.Run("missing store is created empty", func(t *testing.T) {
		fs := setupFS(t, nil)
		m := New(fs, baseDir, "fresh")

		require.NoError(t, m.Reload())
		assert.Zero(t, m.Len())

		data, err := fs.ReadFile(m.Path())
		require.NoError(t, err)
		assert.Empty(t, data)

		require.NoError(t, m.Reload())
		assert.Zero(t, m.Len())
	})

	t.Run("long lines are read whole", func(t *testing.T) {
		long := "dev-lang/go " + strings.Repeat("x.conf ", 12000)
		require.Greater(t, len(long), 64*1024)
		fs := setupFS(t, map[string]string{"p": long + "\ncat/b\n"})
		m := New(fs, baseDir, "p")

		require.NoError(t, m.Reload())
		assert.Equal(t, []string{"cat/b", "dev-lang/go"}, atomStrings(m.Atoms()))
	})

	t.Run("crlf line endings", func(t *testing.T) {
		fs := setupFS(t, map[string]string{"p": "cat/a\r\ncat/b conf\r\n"})
		m := New(fs, baseDir, "p")

		require.NoError(t, m.Reload())
		assert.Equal(t, []string{"cat/a", "cat/b"}, atomStrings(m.Atoms()))
	})

	t.Run("file without trailing newline", func(t *testing.T) {
		fs := setupFS(t, map[string]string{"p": "a/b\nc/d"})
		m := New(fs, baseDir, "p")

		require.NoError(t, m.Reload())
		assert.Equal(t, []string{"a/b", "c/d"}, atomStrings(m.Atoms()))
	})
}

func TestMapping_ReloadIsMonotonic(t *testing.T) {
	fs := setupFS(t, map[string]string{"p": "cat/a\ncat/b\n"})
	m := New(fs, baseDir, "p")
	require.NoError(t, m.Reload())
	assert.Equal(t, []string{"cat/a", "cat/b"}, atomStrings(m.Atoms()))

	writeProfile(t, fs, "p", "cat/a\ncat/b\ncat/c\n")
	require.NoError(t, m.Reload())
	assert.Equal(t, []string{"cat/a", "cat/b", "cat/c"}, atomStrings(m.Atoms()))

	writeProfile(t, fs, "p", "cat/a\ncat/c\n")
	require.NoError(t, m.Reload())
	assert.True(t, m.Contains(atom.MustParse("cat/b")), "reload must not drop atoms removed from the store")
	assert.Equal(t, 3, m.Len())
}

func TestMapping_ReloadErrors(t *testing.T) {
	t.Run("invalid atom aborts reload", func(t *testing.T) {
		fs := setupFS(t, map[string]string{"p": "cat/a\n# a comment\ncat/b\n"})
		m := New(fs, baseDir, "p")

		err := m.Reload()
		require.Error(t, err)
		assert.ErrorIs(t, err, atom.ErrInvalidAtom)
		assert.Contains(t, err.Error(), m.Path()+":2")

		var perr *atom.ParseError
		require.True(t, errors.As(err, &perr))
		assert.Equal(t, "#", perr.Input)
		assert.False(t, m.Loaded())
	})

	t.Run("invalid operator aborts reload", func(t *testing.T) {
		fs := setupFS(t, map[string]string{"p": ">>cat/pkg-1.0\n"})
		m := New(fs, baseDir, "p")

		err := m.Reload()
		assert.ErrorIs(t, err, atom.ErrInvalidOperator)
	})

	t.Run("store cannot be created", func(t *testing.T) {
		mem := afero.NewMemMapFs()
		require.NoError(t, mem.MkdirAll(baseDir, 0755))
		fs := fsops.New(afero.NewReadOnlyFs(mem))
		m := New(fs, baseDir, "p")

		err := m.Reload()
		require.Error(t, err)

		var serr *StoreError
		require.True(t, errors.As(err, &serr))
		assert.Equal(t, "create", serr.Op)
		assert.Equal(t, m.Path(), serr.Path)
	})
}

func TestMapping_ReloadSkipInvalid(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	fs := setupFS(t, map[string]string{"p": "cat/a\n# a comment\n>>cat/x-1\ncat/b\n"})
	m := New(fs, baseDir, "p", WithSkipInvalid(true), WithLogger(zap.New(core)))

	require.NoError(t, m.Reload())

	assert.Equal(t, []string{"cat/a", "cat/b"}, atomStrings(m.Atoms()))
	require.Equal(t, 2, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "skipping invalid atom", entry.Message)
	assert.Equal(t, int64(2), entry.ContextMap()["line"])
}

func TestMapping_ContainsAndInsert(t *testing.T) {
	m := New(fsops.NewMemFS(), baseDir, "p")
	a := atom.MustParse("=dev-lang/go-1.22.0")

	assert.False(t, m.Contains(a))
	assert.True(t, m.Insert(a))
	assert.False(t, m.Insert(atom.MustParse("=dev-lang/go-1.22.0")))
	assert.True(t, m.Contains(a))
	assert.False(t, m.Contains(atom.MustParse("dev-lang/go")))
	assert.False(t, m.Contains(atom.MustParse(">=dev-lang/go-1.22.0")))
}

func TestMapping_AtomsIsACopy(t *testing.T) {
	m := New(fsops.NewMemFS(), baseDir, "p")
	m.Insert(atom.MustParse("cat/a"))

	atoms := m.Atoms()
	atoms[0] = atom.MustParse("cat/z")

	assert.True(t, m.Contains(atom.MustParse("cat/a")))
	assert.False(t, m.Contains(atom.MustParse("cat/z")))
}

func TestMapping_Append(t *testing.T) {
	t.Run("appends to existing store", func(t *testing.T) {
		fs := setupFS(t, map[string]string{"p": "cat/a some.conf"})
		m := New(fs, baseDir, "p")
		require.NoError(t, m.Reload())

		require.NoError(t, m.Append(atom.MustParse(">=cat/b-2")))

		data, err := fs.ReadFile(m.Path())
		require.NoError(t, err)
		assert.Equal(t, "cat/a some.conf\n>=cat/b-2\n", string(data))
		assert.True(t, m.Contains(atom.MustParse(">=cat/b-2")))

		reloaded := New(fs, baseDir, "p")
		require.NoError(t, reloaded.Reload())
		assert.Equal(t, m.Atoms(), reloaded.Atoms())
	})

	t.Run("creates missing store", func(t *testing.T) {
		fs := setupFS(t, nil)
		m := New(fs, baseDir, "new")

		require.NoError(t, m.Append(atom.MustParse("cat/a")))

		data, err := fs.ReadFile(m.Path())
		require.NoError(t, err)
		assert.Equal(t, "cat/a\n", string(data))
	})

	t.Run("write failure leaves set untouched", func(t *testing.T) {
		mem := afero.NewMemMapFs()
		require.NoError(t, afero.WriteFile(mem, filepath.Join(baseDir, "p"), []byte("cat/a\n"), 0644))
		fs := fsops.New(afero.NewReadOnlyFs(mem))
		m := New(fs, baseDir, "p")
		require.NoError(t, m.Reload())

		err := m.Append(atom.MustParse("cat/b"))

		var serr *StoreError
		require.True(t, errors.As(err, &serr))
		assert.Equal(t, "write", serr.Op)
		assert.False(t, m.Contains(atom.MustParse("cat/b")))
	})
}

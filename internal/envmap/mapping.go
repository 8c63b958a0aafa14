// Package envmap manages environment mappings: the sets of atoms assigned to
// a named environment profile.
//
// Each profile is backed by one file under the package.env directory. Every
// non-blank line of that file holds whitespace-separated tokens of which only
// the first, an atom, is meaningful:
//
//	dev-lang/go        no-lto.conf
//	>=sys-devel/gcc-13 no-lto.conf
//
// Key components:
//   - Mapping: the atom set of one profile and its backing store
//   - Discover: enumeration of profile names in a directory
//   - StoreError: I/O failures against a backing store
package envmap

import (
	"bufio"
	"fmt"
	"io"
	"path/filepath"
	"slices"
	"strings"

	"go.uber.org/zap"

	"github.com/dclews/portage-tools/internal/atom"
	"github.com/dclews/portage-tools/internal/fsops"
)

// Mapping holds the atoms assigned to one environment profile.
//
// A Mapping starts unloaded and empty. Reload unions the backing store's
// atoms into the set; it never removes atoms, even if their lines were
// deleted from the store since the previous reload.
type Mapping struct {
	fs          fsops.FS
	logger      *zap.Logger
	profile     string
	path        string
	atoms       map[atom.Atom]struct{}
	loaded      bool
	skipInvalid bool
}

// Option configures a Mapping.
type Option func(*Mapping)

// WithLogger sets the logger used during reload.
func WithLogger(l *zap.Logger) Option {
	return func(m *Mapping) {
		if l != nil {
			m.logger = l
		}
	}
}

// WithSkipInvalid makes Reload log and skip lines whose atom does not parse
// instead of failing.
func WithSkipInvalid(skip bool) Option {
	return func(m *Mapping) {
		m.skipInvalid = skip
	}
}

// New creates an empty mapping for profile stored under baseDir.
// It does not touch the filesystem.
func New(fs fsops.FS, baseDir, profile string, opts ...Option) *Mapping {
	m := &Mapping{
		fs:      fs,
		logger:  zap.NewNop(),
		profile: profile,
		path:    filepath.Join(baseDir, profile),
		atoms:   make(map[atom.Atom]struct{}),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Reload reads the backing store and inserts every atom it lists.
// A missing store is created empty first. Lines are not length-limited.
func (m *Mapping) Reload() error {
	if err := m.fs.CreateIfMissing(m.path, 0644); err != nil {
		return &StoreError{Op: "create", Path: m.path, Err: err}
	}
	f, err := m.fs.Open(m.path)
	if err != nil {
		return &StoreError{Op: "open", Path: m.path, Err: err}
	}
	defer func() {
		_ = f.Close()
	}()

	r := bufio.NewReader(f)
	lineNo := 0
	added := 0
	for {
		line, readErr := r.ReadString('\n')
		if readErr != nil && readErr != io.EOF {
			return &StoreError{Op: "read", Path: m.path, Err: readErr}
		}
		if line != "" {
			lineNo++
			a, ok, err := m.parseLine(line, lineNo)
			if err != nil {
				return err
			}
			if ok && m.Insert(a) {
				added++
			}
		}
		if readErr == io.EOF {
			break
		}
	}

	m.loaded = true
	m.logger.Debug("reloaded environment mapping",
		zap.String("path", m.path),
		zap.Int("added", added),
		zap.Int("total", len(m.atoms)))
	return nil
}

// parseLine returns the atom named by the first token of line. Blank lines
// and, in lenient mode, unparsable ones yield ok == false.
func (m *Mapping) parseLine(line string, lineNo int) (atom.Atom, bool, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return atom.Atom{}, false, nil
	}

	a, err := atom.Parse(fields[0])
	if err != nil {
		if m.skipInvalid {
			m.logger.Warn("skipping invalid atom",
				zap.String("path", m.path),
				zap.Int("line", lineNo),
				zap.Error(err))
			return atom.Atom{}, false, nil
		}
		return atom.Atom{}, false, fmt.Errorf("%s:%d: %w", m.path, lineNo, err)
	}
	return a, true, nil
}

// Name returns the mapping's display identity, the path of its store.
func (m *Mapping) Name() string {
	return m.path
}

// Profile returns the profile name the mapping was created with.
func (m *Mapping) Profile() string {
	return m.profile
}

// Path returns the backing store location.
func (m *Mapping) Path() string {
	return m.path
}

// Loaded reports whether Reload has completed successfully at least once.
func (m *Mapping) Loaded() bool {
	return m.loaded
}

// Len returns the number of atoms in the mapping.
func (m *Mapping) Len() int {
	return len(m.atoms)
}

// Contains reports whether the mapping holds an atom equal to a.
func (m *Mapping) Contains(a atom.Atom) bool {
	_, ok := m.atoms[a]
	return ok
}

// Insert adds a to the mapping and reports whether it was not already there.
func (m *Mapping) Insert(a atom.Atom) bool {
	if _, ok := m.atoms[a]; ok {
		return false
	}
	m.atoms[a] = struct{}{}
	return true
}

// Atoms returns a sorted copy of the mapping's atoms.
func (m *Mapping) Atoms() []atom.Atom {
	out := make([]atom.Atom, 0, len(m.atoms))
	for a := range m.atoms {
		out = append(out, a)
	}
	slices.SortFunc(out, atom.Compare)
	return out
}

// Append inserts a and persists it as a new line at the end of the backing
// store. The store is rewritten atomically; existing lines are kept verbatim.
func (m *Mapping) Append(a atom.Atom) error {
	data, err := m.fs.ReadFile(m.path)
	if err != nil {
		exists, statErr := m.fs.Exists(m.path)
		if statErr != nil || exists {
			return &StoreError{Op: "read", Path: m.path, Err: err}
		}
		data = nil
	}

	var b strings.Builder
	b.Write(data)
	if len(data) > 0 && data[len(data)-1] != '\n' {
		b.WriteByte('\n')
	}
	b.WriteString(a.String())
	b.WriteByte('\n')

	if err := m.fs.AtomicWrite(m.path, []byte(b.String()), 0644); err != nil {
		return &StoreError{Op: "write", Path: m.path, Err: err}
	}

	m.Insert(a)
	return nil
}

// Package world answers whether a package is recorded in the world set, the
// file listing explicitly installed category/package pairs one per line.
//
// The world file is read on every query so the answer reflects its current
// contents.
package world

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/dclews/portage-tools/internal/atom"
	"github.com/dclews/portage-tools/internal/fsops"
)

// File is a world file at a fixed path.
type File struct {
	fs   fsops.FS
	path string
}

// New returns the world file at path.
func New(fs fsops.FS, path string) *File {
	return &File{fs: fs, path: path}
}

// Path returns the world file location.
func (w *File) Path() string {
	return w.path
}

// Contains reports whether a's category/package appears as an exact line of
// the world file. Version constraints are ignored.
func (w *File) Contains(a atom.Atom) (bool, error) {
	f, err := w.fs.Open(w.path)
	if err != nil {
		return false, fmt.Errorf("failed to open world file: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()

	want := a.CategoryPackage()
	r := bufio.NewReader(f)
	for {
		line, err := r.ReadString('\n')
		if err != nil && err != io.EOF {
			return false, fmt.Errorf("failed to read world file: %w", err)
		}
		if strings.TrimSuffix(strings.TrimSuffix(line, "\n"), "\r") == want {
			return true, nil
		}
		if err == io.EOF {
			return false, nil
		}
	}
}

// Predicate adapts Contains to a plain predicate. Read errors count as
// "not in the world set".
func (w *File) Predicate() func(atom.Atom) bool {
	return func(a atom.Atom) bool {
		ok, err := w.Contains(a)
		return err == nil && ok
	}
}

package envmap

import (
	"os"
	"path/filepath"

	"github.com/dclews/portage-tools/internal/fsops"
)

// Discover returns the profile names found in dir: the names of its
// non-directory entries, sorted. Symlinks are resolved, so a link to a
// directory is skipped; a dangling link still names a profile.
func Discover(fs fsops.FS, dir string) ([]string, error) {
	entries, err := fs.ReadDir(dir)
	if err != nil {
		return nil, &StoreError{Op: "list", Path: dir, Err: err}
	}

	profiles := make([]string, 0, len(entries))
	for _, entry := range entries {
		info := entry
		if entry.Mode()&os.ModeSymlink != 0 {
			if target, err := fs.Stat(filepath.Join(dir, entry.Name())); err == nil {
				info = target
			}
		}
		if info.IsDir() {
			continue
		}
		profiles = append(profiles, entry.Name())
	}
	return profiles, nil
}

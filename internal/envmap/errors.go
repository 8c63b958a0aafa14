package envmap

import "fmt"

// StoreError wraps a failure to open, read, write or list a backing store.
type StoreError struct {
	Op   string // Operation that failed
	Path string // Store file, or the directory for "list"
	Err  error  // Underlying error
}

func (e *StoreError) Error() string {
	if e.Op == "list" {
		return fmt.Sprintf("failed to list environment directory %q: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("failed to %s environment file %q: %v", e.Op, e.Path, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

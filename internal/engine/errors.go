package engine

import (
	"errors"
	"fmt"

	"github.com/dclews/portage-tools/internal/atom"
)

var (
	// ErrConflict indicates an atom is already assigned to a mapping.
	ErrConflict = errors.New("conflict detected")

	// ErrValidation indicates a validation failure.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound indicates a profile was not found.
	ErrNotFound = errors.New("not found")
)

// ConflictError reports the mapping that already holds an atom.
type ConflictError struct {
	Atom    atom.Atom
	Mapping string // Name of the mapping holding Atom
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("atom '%s' already exists in environment mapping '%s'", e.Atom, e.Mapping)
}

func (e *ConflictError) Unwrap() error {
	return ErrConflict
}

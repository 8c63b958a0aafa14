package planner

import (
	"fmt"

	"github.com/dclews/portage-tools/internal/atom"
	"github.com/dclews/portage-tools/internal/envmap"
)

// Conflict describes an atom that is already assigned to a mapping.
type Conflict struct {
	Atom    atom.Atom
	Mapping *envmap.Mapping
}

// Reason returns a human-readable description of the conflict.
func (c *Conflict) Reason() string {
	return fmt.Sprintf("Atom '%s' already exists in environment mapping '%s'", c.Atom, c.Mapping.Name())
}

// ConflictChecker checks atoms against a fixed set of mappings.
type ConflictChecker struct {
	mappings []*envmap.Mapping
}

// NewConflictChecker creates a new ConflictChecker.
func NewConflictChecker(mappings []*envmap.Mapping) *ConflictChecker {
	return &ConflictChecker{mappings: mappings}
}

// Check returns the first mapping, in load order, that already holds a,
// or nil if a is free to be assigned.
func (c *ConflictChecker) Check(a atom.Atom) *Conflict {
	for _, m := range c.mappings {
		if m.Contains(a) {
			return &Conflict{Atom: a, Mapping: m}
		}
	}
	return nil
}

// CheckAll returns every mapping holding a. Only one is expected; more
// indicate configuration written outside epenv.
func (c *ConflictChecker) CheckAll(a atom.Atom) []*Conflict {
	var conflicts []*Conflict
	for _, m := range c.mappings {
		if m.Contains(a) {
			conflicts = append(conflicts, &Conflict{Atom: a, Mapping: m})
		}
	}
	return conflicts
}

// Owner returns the mapping holding a, or nil.
func (c *ConflictChecker) Owner(a atom.Atom) *envmap.Mapping {
	if conflict := c.Check(a); conflict != nil {
		return conflict.Mapping
	}
	return nil
}

package engine

import "github.com/dclews/portage-tools/internal/atom"

// MappingSummary describes one loaded mapping.
type MappingSummary struct {
	// Name is the mapping's display identity (its store path)
	Name string `json:"name"`

	// Profile is the profile name
	Profile string `json:"profile"`

	// Count is the number of atoms in the mapping
	Count int `json:"count"`
}

// MappingDetails contains the atoms of one mapping.
type MappingDetails struct {
	MappingSummary

	// Atoms are the mapping's atoms, sorted
	Atoms []atom.Atom `json:"atoms"`
}

// SetResult represents the outcome of a set request.
type SetResult struct {
	// Atom is the parsed atom
	Atom atom.Atom `json:"atom"`

	// Profile is the profile the atom was recorded in, empty for a check only
	Profile string `json:"profile,omitempty"`

	// Path is the store the atom was written to
	Path string `json:"path,omitempty"`

	// Persisted is true if the atom was written to a store
	Persisted bool `json:"persisted"`

	// Checked is the number of mappings the atom was checked against
	Checked int `json:"checked"`
}

// Duplicate is an atom assigned to more than one mapping.
type Duplicate struct {
	Atom     atom.Atom `json:"atom"`
	Mappings []string  `json:"mappings"`
}

// CheckResult lists every cross-mapping duplicate.
type CheckResult struct {
	// Mappings is the number of mappings checked
	Mappings int `json:"mappings"`

	// Atoms is the total number of distinct atoms seen
	Atoms int `json:"atoms"`

	// Duplicates are atoms held by more than one mapping
	Duplicates []Duplicate `json:"duplicates"`
}

package engine

// SetRequest represents a request to assign an atom to a profile.
type SetRequest struct {
	// Atom is the atom text to parse and check
	Atom string

	// Profile is the mapping to record the atom in. When empty the atom is
	// only checked for conflicts.
	Profile string

	// DryRun checks without writing even when Profile is set
	DryRun bool
}

// ShowRequest represents a request for the contents of one mapping.
type ShowRequest struct {
	// Profile is the mapping to show
	Profile string
}

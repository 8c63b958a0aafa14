// Package atom parses and renders package atoms.
//
// An atom names a package by category and package name, optionally
// constrained to a version with a comparison operator:
//
//	[<op>]category/package[-version]
//
// Atoms are comparable values: two atoms are equal when category, package
// and version constraint (operator included) are all equal. No normalization
// is applied, so "dev-lang/Go" and "dev-lang/go" are different atoms.
package atom

import (
	"cmp"
	"strings"
)

// VersionConstraint pairs a comparison operator with a version string.
// The version is opaque and kept verbatim.
type VersionConstraint struct {
	Operator VersionOperator
	Version  string
}

// String renders the constraint as operator followed by version.
func (c VersionConstraint) String() string {
	return c.Operator.String() + c.Version
}

// Atom is an immutable package specifier.
type Atom struct {
	category   string
	pkg        string
	constraint VersionConstraint
	versioned  bool
}

// New creates an atom without a version constraint.
func New(category, pkg string) Atom {
	return Atom{category: category, pkg: pkg}
}

// NewVersioned creates an atom constrained to a version.
func NewVersioned(category, pkg string, constraint VersionConstraint) Atom {
	return Atom{
		category:   category,
		pkg:        pkg,
		constraint: constraint,
		versioned:  true,
	}
}

// Category returns the package category, e.g. "dev-lang".
func (a Atom) Category() string {
	return a.category
}

// Package returns the package name, e.g. "go".
func (a Atom) Package() string {
	return a.pkg
}

// Constraint returns the version constraint and whether the atom has one.
func (a Atom) Constraint() (VersionConstraint, bool) {
	return a.constraint, a.versioned
}

// IsVersioned reports whether the atom carries a version constraint.
func (a Atom) IsVersioned() bool {
	return a.versioned
}

// CategoryPackage returns "category/package" without any constraint.
func (a Atom) CategoryPackage() string {
	return a.category + "/" + a.pkg
}

// Equal reports whether a and other are structurally equal.
func (a Atom) Equal(other Atom) bool {
	return a == other
}

// String renders the atom in canonical form.
func (a Atom) String() string {
	var b strings.Builder
	if a.versioned {
		b.WriteString(a.constraint.Operator.String())
	}
	b.WriteString(a.category)
	b.WriteByte('/')
	b.WriteString(a.pkg)
	if a.versioned {
		b.WriteByte('-')
		b.WriteString(a.constraint.Version)
	}
	return b.String()
}

// MarshalText implements encoding.TextMarshaler so atoms encode as their
// canonical string in JSON output.
func (a Atom) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// Compare orders atoms by category, package, then constraint.
// Unversioned atoms sort before versioned ones of the same package.
func Compare(a, b Atom) int {
	if c := cmp.Compare(a.category, b.category); c != 0 {
		return c
	}
	if c := cmp.Compare(a.pkg, b.pkg); c != 0 {
		return c
	}
	if a.versioned != b.versioned {
		if !a.versioned {
			return -1
		}
		return 1
	}
	if c := cmp.Compare(a.constraint.Version, b.constraint.Version); c != 0 {
		return c
	}
	return cmp.Compare(a.constraint.Operator, b.constraint.Operator)
}

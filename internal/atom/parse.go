package atom

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidAtom indicates text matching neither the versioned nor the
	// unversioned atom form.
	ErrInvalidAtom = errors.New("invalid package atom")

	// ErrInvalidOperator indicates a version suffix preceded by an
	// unrecognized comparison token.
	ErrInvalidOperator = errors.New("invalid atom version operator")
)

// ParseError describes text that could not be parsed as an atom.
type ParseError struct {
	Input    string // Text being parsed
	Operator string // Offending operator token, if any
	Err      error  // ErrInvalidAtom or ErrInvalidOperator
}

func (e *ParseError) Error() string {
	if e.Operator != "" {
		return fmt.Sprintf("%v %q in %q", e.Err, e.Operator, e.Input)
	}
	return fmt.Sprintf("%v %q", e.Err, e.Input)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Parse parses text into an atom.
//
// The versioned form is tried first: a leading run of '<', '>' and '='
// followed by category/package-version, where version starts with a digit.
// Category ends at the rightmost '/' and package at the rightmost '-' that
// still leave a valid match. Failing that, the whole text is split at its
// last '/' into category and package.
func Parse(text string) (Atom, error) {
	a, ok, err := parseVersioned(text)
	if err != nil {
		return Atom{}, err
	}
	if ok {
		return a, nil
	}

	if i := strings.LastIndexByte(text, '/'); i >= 0 {
		return New(text[:i], text[i+1:]), nil
	}
	return Atom{}, &ParseError{Input: text, Err: ErrInvalidAtom}
}

// MustParse is like Parse but panics on error.
func MustParse(text string) Atom {
	a, err := Parse(text)
	if err != nil {
		panic(err)
	}
	return a
}

func parseVersioned(text string) (Atom, bool, error) {
	opEnd := 0
	for opEnd < len(text) && isOperatorChar(text[opEnd]) {
		opEnd++
	}
	if opEnd == 0 {
		return Atom{}, false, nil
	}

	category, pkg, version, ok := splitVersioned(text[opEnd:])
	if !ok {
		return Atom{}, false, nil
	}

	token := text[:opEnd]
	op, err := ParseOperator(token)
	if err != nil {
		return Atom{}, false, &ParseError{Input: text, Operator: token, Err: ErrInvalidOperator}
	}

	return NewVersioned(category, pkg, VersionConstraint{Operator: op, Version: version}), true, nil
}

// splitVersioned splits "category/package-version" preferring the rightmost
// '/' and then the rightmost "-<digit>" after it.
func splitVersioned(s string) (category, pkg, version string, ok bool) {
	for slash := strings.LastIndexByte(s, '/'); slash >= 0; slash = strings.LastIndexByte(s[:slash], '/') {
		rest := s[slash+1:]
		if hyphen := lastVersionHyphen(rest); hyphen >= 0 {
			return s[:slash], rest[:hyphen], rest[hyphen+1:], true
		}
	}
	return "", "", "", false
}

// lastVersionHyphen returns the index of the last '-' immediately followed
// by a digit, or -1.
func lastVersionHyphen(s string) int {
	for i := len(s) - 2; i >= 0; i-- {
		if s[i] == '-' && isDigit(s[i+1]) {
			return i
		}
	}
	return -1
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

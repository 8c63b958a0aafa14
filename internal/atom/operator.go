package atom

import "fmt"

// VersionOperator is the comparison applied to an atom's version.
// Operators are stored and rendered, never evaluated.
type VersionOperator int

const (
	LessThan VersionOperator = iota + 1
	LessOrEqual
	Equal
	GreaterOrEqual
	GreaterThan
)

// Operators lists every operator in token order.
var Operators = []VersionOperator{LessThan, LessOrEqual, Equal, GreaterOrEqual, GreaterThan}

// ParseOperator maps a textual token to its operator.
func ParseOperator(token string) (VersionOperator, error) {
	switch token {
	case "<":
		return LessThan, nil
	case "<=":
		return LessOrEqual, nil
	case "=":
		return Equal, nil
	case ">=":
		return GreaterOrEqual, nil
	case ">":
		return GreaterThan, nil
	}
	return 0, &ParseError{Input: token, Err: ErrInvalidOperator}
}

// String returns the operator's token.
func (o VersionOperator) String() string {
	switch o {
	case LessThan:
		return "<"
	case LessOrEqual:
		return "<="
	case Equal:
		return "="
	case GreaterOrEqual:
		return ">="
	case GreaterThan:
		return ">"
	}
	return fmt.Sprintf("VersionOperator(%d)", int(o))
}

func isOperatorChar(c byte) bool {
	return c == '<' || c == '>' || c == '='
}

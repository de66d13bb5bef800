package ast

import "github.com/roach88/filterql/internal/value"

// Expr is an expression node.
type Expr interface {
	exprNode() // Marker method - seals interface to this package
}

// Literal is a string, number, boolean or null constant.
type Literal struct {
	Value value.Value
	Raw   string // Source text, e.g. `'Al'` or `3.0`
}

func (*Literal) exprNode() {}

// Identifier is a bare name. In a filter body it references either the
// callback parameter (as the root of a member chain) or a dependency.
type Identifier struct {
	Name string
}

func (*Identifier) exprNode() {}

// MemberExpression is a property access: Object.Property, or
// Object[Property] when Computed is set.
//
// For non-computed access Property is always an *Identifier.
type MemberExpression struct {
	Object   Expr
	Property Expr
	Computed bool
}

func (*MemberExpression) exprNode() {}

// UnaryExpression is a prefix operator applied to Argument.
// The parser produces "!" and "-".
type UnaryExpression struct {
	Operator string
	Argument Expr
}

func (*UnaryExpression) exprNode() {}

// CallExpression is a call. Method calls have a *MemberExpression callee.
type CallExpression struct {
	Callee    Expr
	Arguments []Expr
}

func (*CallExpression) exprNode() {}

// BinaryExpression is an infix operation, including the logical && and ||.
type BinaryExpression struct {
	Left     Expr
	Operator string
	Right    Expr
}

func (*BinaryExpression) exprNode() {}

// ArrayExpression is an array literal. It only has meaning as the body of a
// dependency list such as `() => [threshold, prefix]`.
type ArrayExpression struct {
	Elements []Expr
}

func (*ArrayExpression) exprNode() {}

// ArrowFunction is a parsed single-expression arrow function.
// It is the unit the parser returns; it is not itself an Expr.
type ArrowFunction struct {
	Params []string
	Body   Expr
}

// Kind returns the ESTree-style node type name.
func Kind(e Expr) string {
	switch e.(type) {
	case *Literal:
		return "Literal"
	case *Identifier:
		return "Identifier"
	case *MemberExpression:
		return "MemberExpression"
	case *UnaryExpression:
		return "UnaryExpression"
	case *CallExpression:
		return "CallExpression"
	case *BinaryExpression:
		return "BinaryExpression"
	case *ArrayExpression:
		return "ArrayExpression"
	case nil:
		return "<nil>"
	default:
		return "Unknown"
	}
}

// PropertyName returns the name a member expression accesses: the identifier
// for dotted access, or the string value for a computed access with a string
// literal key. ok is false for any other computed key.
func PropertyName(m *MemberExpression) (name string, ok bool) {
	switch p := m.Property.(type) {
	case *Identifier:
		if m.Computed {
			return "", false
		}
		return p.Name, true
	case *Literal:
		if s, isString := p.Value.(value.String); isString && m.Computed {
			return string(s), true
		}
	}
	return "", false
}

// MethodName returns the method name of a call like `a.b.startsWith(...)`,
// along with the receiver expression (`a.b`).
func MethodName(c *CallExpression) (name string, receiver Expr, ok bool) {
	callee, isMember := c.Callee.(*MemberExpression)
	if !isMember {
		return "", nil, false
	}
	name, ok = PropertyName(callee)
	if !ok {
		return "", nil, false
	}
	return name, callee.Object, true
}

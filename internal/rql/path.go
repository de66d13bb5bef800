package rql

import (
	"strings"

	"github.com/roach88/filterql/internal/ast"
)

// propertyPath is a resolved member chain.
type propertyPath struct {
	segments []string
	any      bool // chain passes through .any()
}

func (p propertyPath) String() string {
	if p.any {
		return "ANY " + strings.Join(p.segments, ".")
	}
	return strings.Join(p.segments, ".")
}

// resolvePath walks a member chain from the outermost property back to its
// root identifier, which is dropped. Without nested, only the property and
// its immediate parent are kept.
func resolvePath(m *ast.MemberExpression, nested bool) (propertyPath, error) {
	var (
		segments []string
		anyCall  bool
	)

	var cur ast.Expr = m
	for {
		switch n := cur.(type) {
		case *ast.MemberExpression:
			name, ok := ast.PropertyName(n)
			if !ok {
				return propertyPath{}, unsupported(ast.Format(n), "computed property must be a string literal")
			}
			segments = append(segments, name)
			cur = n.Object
		case *ast.CallExpression:
			method, recv, ok := ast.MethodName(n)
			if !ok || method != "any" || len(n.Arguments) != 0 {
				return propertyPath{}, unsupported(ast.Format(n), "only .any() may appear inside a property path")
			}
			anyCall = true
			cur = recv
		case *ast.Identifier:
			// Root of the chain (the filter parameter).
			reverse(segments)
			if !nested && len(segments) > 2 {
				segments = segments[len(segments)-2:]
			}
			return propertyPath{segments: segments, any: anyCall}, nil
		default:
			return propertyPath{}, unsupported(ast.Format(m), "property path must start at an identifier, found %s", ast.Kind(cur))
		}
	}
}

func reverse(s []string) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}

package ast

import (
	"strings"

	"github.com/roach88/filterql/internal/value"
)

// Format renders e as JavaScript-like source. Binary expressions are fully
// parenthesized so the output shows how the parser grouped the input.
func Format(e Expr) string {
	var b strings.Builder
	format(&b, e)
	return b.String()
}

func format(b *strings.Builder, e Expr) {
	switch n := e.(type) {
	case *Literal:
		if n.Raw != "" {
			b.WriteString(n.Raw)
			return
		}
		if s, ok := n.Value.(value.String); ok {
			b.WriteString(`"` + strings.ReplaceAll(string(s), `"`, `\"`) + `"`)
			return
		}
		b.WriteString(value.Format(n.Value))
	case *Identifier:
		b.WriteString(n.Name)
	case *MemberExpression:
		format(b, n.Object)
		if n.Computed {
			b.WriteByte('[')
			format(b, n.Property)
			b.WriteByte(']')
			return
		}
		b.WriteByte('.')
		format(b, n.Property)
	case *UnaryExpression:
		b.WriteString(n.Operator)
		format(b, n.Argument)
	case *CallExpression:
		format(b, n.Callee)
		b.WriteByte('(')
		for i, arg := range n.Arguments {
			if i > 0 {
				b.WriteString(", ")
			}
			format(b, arg)
		}
		b.WriteByte(')')
	case *BinaryExpression:
		b.WriteByte('(')
		format(b, n.Left)
		b.WriteString(" " + n.Operator + " ")
		format(b, n.Right)
		b.WriteByte(')')
	case *ArrayExpression:
		b.WriteByte('[')
		for i, el := range n.Elements {
			if i > 0 {
				b.WriteString(", ")
			}
			format(b, el)
		}
		b.WriteByte(']')
	default:
		b.WriteString("<" + Kind(e) + ">")
	}
}

// FormatArrow renders an arrow function as `(a, b) => body`.
func FormatArrow(fn *ArrowFunction) string {
	return "(" + strings.Join(fn.Params, ", ") + ") => " + Format(fn.Body)
}

// Dump converts e into nested maps and slices in ESTree shape, ready for
// encoding/json. Keys follow the ESTree field names.
func Dump(e Expr) map[string]any {
	node := map[string]any{"type": Kind(e)}

	switch n := e.(type) {
	case *Literal:
		node["value"] = n.Value
		node["raw"] = n.Raw
	case *Identifier:
		node["name"] = n.Name
	case *MemberExpression:
		node["object"] = Dump(n.Object)
		node["property"] = Dump(n.Property)
		node["computed"] = n.Computed
	case *UnaryExpression:
		node["operator"] = n.Operator
		node["argument"] = Dump(n.Argument)
	case *CallExpression:
		node["callee"] = Dump(n.Callee)
		node["arguments"] = dumpList(n.Arguments)
	case *BinaryExpression:
		node["left"] = Dump(n.Left)
		node["operator"] = n.Operator
		node["right"] = Dump(n.Right)
	case *ArrayExpression:
		node["elements"] = dumpList(n.Elements)
	}

	return node
}

// DumpArrow converts an arrow function into ESTree shape.
func DumpArrow(fn *ArrowFunction) map[string]any {
	params := make([]any, len(fn.Params))
	for i, p := range fn.Params {
		params[i] = map[string]any{"type": "Identifier", "name": p}
	}
	return map[string]any{
		"type":   "ArrowFunctionExpression",
		"params": params,
		"body":   Dump(fn.Body),
	}
}

func dumpList(exprs []Expr) []any {
	out := make([]any, len(exprs))
	for i, e := range exprs {
		out[i] = Dump(e)
	}
	return out
}

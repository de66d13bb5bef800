package rql

import (
	"fmt"
	"log/slog"

	"github.com/roach88/filterql/internal/ast"
	"github.com/roach88/filterql/internal/value"
)

// DefaultMaxDepth bounds expression tree depth.
const DefaultMaxDepth = 256

// String operators, keyed by JavaScript method name.
var stringOperators = map[string]string{
	"startsWith": "BEGINSWITH",
	"endsWith":   "ENDSWITH",
	"endsWidth":  "ENDSWITH", // legacy spelling, still accepted
	"contains":   "CONTAINS",
	"like":       "LIKE",
}

// Operators whose operands are values rather than truth tests. A member
// chain directly under one of these emits its bare path.
var comparisonOperators = map[string]bool{
	"==": true, "===": true, "!=": true, "!==": true,
	"<": true, ">": true, "<=": true, ">=": true,
	"+": true, "-": true, "*": true, "/": true, "%": true,
}

var normalizedOperators = map[string]string{
	"===": "==",
	"!==": "!=",
}

// Option configures a Translator.
type Option func(*Translator)

// WithMaxDepth sets the expression depth limit. Values below 1 keep the
// default.
func WithMaxDepth(n int) Option {
	return func(t *Translator) {
		if n > 0 {
			t.maxDepth = n
		}
	}
}

// WithNestedPaths emits the full member chain (x.a.b.c yields a.b.c)
// instead of the last two segments.
func WithNestedPaths() Option {
	return func(t *Translator) {
		t.nestedPaths = true
	}
}

// WithLogger sets the logger used for per-node debug tracing.
func WithLogger(logger *slog.Logger) Option {
	return func(t *Translator) {
		if logger != nil {
			t.logger = logger
		}
	}
}

// Translator converts expression trees to RQL. It holds only configuration
// and is safe for concurrent use.
type Translator struct {
	maxDepth    int
	nestedPaths bool
	logger      *slog.Logger
}

// New creates a Translator.
func New(opts ...Option) *Translator {
	t := &Translator{
		maxDepth: DefaultMaxDepth,
		logger:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// MaxDepth returns the configured depth limit.
func (t *Translator) MaxDepth() int {
	return t.maxDepth
}

// NestedPaths reports whether full member chains are emitted.
func (t *Translator) NestedPaths() bool {
	return t.nestedPaths
}

// Translate converts expr to RQL using env for identifier lookups.
func (t *Translator) Translate(expr ast.Expr, env *Env) (string, error) {
	tr := &translation{Translator: t, env: env}
	return tr.node(expr, nil, 0)
}

// translation is the state of one Translate call.
type translation struct {
	*Translator
	env *Env
}

// node translates e. parent is the enclosing binary expression, or nil.
func (tr *translation) node(e ast.Expr, parent *ast.BinaryExpression, depth int) (string, error) {
	if depth >= tr.maxDepth {
		return "", &Error{
			Code:    ErrCodeTooComplex,
			Message: fmt.Sprintf("expression nesting exceeds %d levels", tr.maxDepth),
		}
	}
	tr.logger.Debug("translate node", "kind", ast.Kind(e), "depth", depth)

	switch n := e.(type) {
	case *ast.Literal:
		return tr.literal(n)
	case *ast.Identifier:
		return tr.identifier(n)
	case *ast.MemberExpression:
		return tr.member(n, parent)
	case *ast.UnaryExpression:
		return tr.unary(n)
	case *ast.CallExpression:
		return tr.call(n, depth)
	case *ast.BinaryExpression:
		return tr.binary(n, depth)
	case nil:
		return "", unsupported("", "missing expression")
	default:
		return "", unsupported(ast.Format(e), "%s has no RQL equivalent", ast.Kind(e))
	}
}

func (tr *translation) literal(n *ast.Literal) (string, error) {
	if !value.IsScalar(n.Value) {
		return "", unsupported(ast.Format(n), "%s literal has no RQL equivalent", value.TypeName(n.Value))
	}
	return value.Format(n.Value), nil
}

func (tr *translation) identifier(n *ast.Identifier) (string, error) {
	v, ok := tr.env.Lookup(n.Name)
	if !ok {
		return "", &Error{
			Code:    ErrCodeUndefinedArgument,
			Message: fmt.Sprintf("%q is not defined; add it to the dependency list", n.Name),
			Name:    n.Name,
		}
	}
	return value.Format(v), nil
}

func (tr *translation) member(n *ast.MemberExpression, parent *ast.BinaryExpression) (string, error) {
	path, err := resolvePath(n, tr.nestedPaths)
	if err != nil {
		return "", err
	}
	if parent != nil && comparisonOperators[parent.Operator] {
		return path.String(), nil
	}
	return path.String() + " == true", nil
}

func (tr *translation) unary(n *ast.UnaryExpression) (string, error) {
	if n.Operator != "!" {
		return "", unsupported(ast.Format(n), "unary operator %q is not supported", n.Operator)
	}
	m, ok := n.Argument.(*ast.MemberExpression)
	if !ok {
		return "", unsupported(ast.Format(n), "\"!\" can only negate a property, found %s", ast.Kind(n.Argument))
	}
	path, err := resolvePath(m, tr.nestedPaths)
	if err != nil {
		return "", err
	}
	return path.String() + " == false", nil
}

func (tr *translation) call(n *ast.CallExpression, depth int) (string, error) {
	method, recv, ok := ast.MethodName(n)
	if !ok {
		return "", unsupported(ast.Format(n), "only method calls on a property are supported")
	}
	m, ok := recv.(*ast.MemberExpression)
	if !ok {
		return "", unsupported(ast.Format(n), "method %q must be called on a property", method)
	}

	if method == "count" {
		if len(n.Arguments) != 0 {
			return "", unsupported(ast.Format(n), "count() takes no arguments")
		}
		path, err := resolvePath(m, tr.nestedPaths)
		if err != nil {
			return "", err
		}
		return path.String() + ".@count", nil
	}

	op, ok := stringOperators[method]
	if !ok {
		return "", unsupported(ast.Format(n), "method %q is not supported", method)
	}
	if len(n.Arguments) < 1 || len(n.Arguments) > 2 {
		return "", unsupported(ast.Format(n), "%s takes one or two arguments, got %d", method, len(n.Arguments))
	}

	path, err := resolvePath(m, tr.nestedPaths)
	if err != nil {
		return "", err
	}

	arg, err := tr.operand(n.Arguments[0], depth+1)
	if err != nil {
		return "", err
	}

	if len(n.Arguments) == 2 {
		insensitive, err := tr.isTrue(n.Arguments[1], depth+1)
		if err != nil {
			return "", err
		}
		if insensitive {
			op += "[c]"
		}
	}

	return fmt.Sprintf("(%s %s %s)", path, op, arg), nil
}

// operand translates a string-operator argument, which must be a literal or
// a dependency.
func (tr *translation) operand(e ast.Expr, depth int) (string, error) {
	switch e.(type) {
	case *ast.Literal, *ast.Identifier:
		return tr.node(e, nil, depth)
	default:
		return "", unsupported(ast.Format(e), "string operator argument must be a literal or dependency, found %s", ast.Kind(e))
	}
}

// isTrue reports whether a case-sensitivity flag is the boolean true.
func (tr *translation) isTrue(e ast.Expr, depth int) (bool, error) {
	var v value.Value
	switch n := e.(type) {
	case *ast.Literal:
		v = n.Value
	case *ast.Identifier:
		if _, err := tr.node(n, nil, depth); err != nil {
			return false, err
		}
		v, _ = tr.env.Lookup(n.Name)
	default:
		return false, unsupported(ast.Format(e), "case flag must be a literal or dependency, found %s", ast.Kind(e))
	}
	return v == value.Bool(true), nil
}

func (tr *translation) binary(n *ast.BinaryExpression, depth int) (string, error) {
	left, err := tr.node(n.Left, n, depth+1)
	if err != nil {
		return "", err
	}
	right, err := tr.node(n.Right, n, depth+1)
	if err != nil {
		return "", err
	}

	op := n.Operator
	if norm, ok := normalizedOperators[op]; ok {
		op = norm
	}
	return fmt.Sprintf("(%s %s %s)", left, op, right), nil
}

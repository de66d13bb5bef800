package parser

import (
	"strconv"

	"golang.org/x/text/unicode/norm"

	"github.com/roach88/filterql/internal/ast"
	"github.com/roach88/filterql/internal/value"
)

// DefaultMaxNesting bounds how deeply parentheses, unary operators and
// postfix chains may nest before parsing fails with ErrNestingTooDeep.
const DefaultMaxNesting = 256

// Option configures parsing.
type Option func(*parser)

// WithMaxNesting sets the nesting limit. Values below 1 keep the default.
func WithMaxNesting(n int) Option {
	return func(p *parser) {
		if n > 0 {
			p.maxNesting = n
		}
	}
}

// Precedence values (higher binds tighter).
const (
	precLowest = iota
	precOr
	precAnd
	precEquality
	precRelational
	precAdditive
	precMultiplicative
)

func precedence(op string) int {
	switch op {
	case "||":
		return precOr
	case "&&":
		return precAnd
	case "==", "!=", "===", "!==":
		return precEquality
	case "<", ">", "<=", ">=":
		return precRelational
	case "+", "-":
		return precAdditive
	case "*", "/", "%":
		return precMultiplicative
	default:
		return precLowest
	}
}

// Words the grammar reserves but does not support.
var unsupportedKeywords = map[string]bool{
	"async": true, "await": true, "class": true, "const": true, "delete": true,
	"function": true, "in": true, "instanceof": true, "let": true, "new": true,
	"return": true, "this": true, "typeof": true, "var": true, "void": true,
	"yield": true,
}

type parser struct {
	toks       []Token
	i          int
	depth      int
	maxNesting int
}

func newParser(src string, opts []Option) (*parser, error) {
	// Identifiers are matched by exact name, so normalize once up front.
	toks, err := Lex(norm.NFC.String(src))
	if err != nil {
		return nil, err
	}
	p := &parser{toks: toks, maxNesting: DefaultMaxNesting}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// ParseArrow parses a single-expression arrow function such as
// `x => x.age > 30` or `(a, b) => a.ok`. A trailing semicolon is allowed;
// anything else after the body is an error.
func ParseArrow(src string, opts ...Option) (*ast.ArrowFunction, error) {
	p, err := newParser(src, opts)
	if err != nil {
		return nil, err
	}

	params, err := p.parseParams()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect("=>"); err != nil {
		return nil, err
	}

	body, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if err := p.finish(); err != nil {
		return nil, err
	}

	return &ast.ArrowFunction{Params: params, Body: body}, nil
}

func (p *parser) cur() Token {
	return p.toks[p.i]
}

func (p *parser) peekAt(ahead int) Token {
	if p.i+ahead >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[p.i+ahead]
}

func (p *parser) advance() Token {
	t := p.toks[p.i]
	if t.Kind != TokenEOF {
		p.i++
	}
	return t
}

func (p *parser) isPunct(sym string) bool {
	t := p.cur()
	return t.Kind == TokenPunct && t.Text == sym
}

func (p *parser) match(sym string) bool {
	if p.isPunct(sym) {
		p.i++
		return true
	}
	return false
}

func (p *parser) expect(sym string) (Token, error) {
	t := p.cur()
	if t.Kind != TokenPunct || t.Text != sym {
		return Token{}, errorf(t.Pos, "expected %q, found %s", sym, t.describe())
	}
	p.i++
	return t, nil
}

// finish consumes an optional ';' and requires end of input.
func (p *parser) finish() error {
	p.match(";")
	if t := p.cur(); t.Kind != TokenEOF {
		return errorf(t.Pos, "unexpected %s after expression: only a single expression is supported", t.describe())
	}
	return nil
}

func (p *parser) enter() error {
	p.depth++
	if p.depth > p.maxNesting {
		return &SyntaxError{
			Pos:     p.cur().Pos,
			Message: "expression nesting exceeds " + strconv.Itoa(p.maxNesting) + " levels",
			Err:     ErrNestingTooDeep,
		}
	}
	return nil
}

func (p *parser) leave() {
	p.depth--
}

// parseParams parses `x`, `()`, `(x)` or `(a, b)` in front of "=>".
func (p *parser) parseParams() ([]string, error) {
	t := p.cur()
	if t.Kind == TokenIdent {
		if err := checkParamName(t); err != nil {
			return nil, err
		}
		p.advance()
		return []string{t.Text}, nil
	}
	if !p.match("(") {
		return nil, errorf(t.Pos, "expected arrow function, found %s", t.describe())
	}

	params := []string{}
	seen := make(map[string]bool)
	if p.match(")") {
		return params, nil
	}
	for {
		t := p.cur()
		if t.Kind != TokenIdent {
			return nil, errorf(t.Pos, "expected parameter name, found %s", t.describe())
		}
		if err := checkParamName(t); err != nil {
			return nil, err
		}
		if seen[t.Text] {
			return nil, errorf(t.Pos, "duplicate parameter name %q", t.Text)
		}
		seen[t.Text] = true
		params = append(params, t.Text)
		p.advance()

		if p.match(")") {
			return params, nil
		}
		if _, err := p.expect(","); err != nil {
			return nil, err
		}
	}
}

func checkParamName(t Token) error {
	switch {
	case unsupportedKeywords[t.Text]:
		return errorf(t.Pos, "unsupported keyword %q", t.Text)
	case t.Text == "true" || t.Text == "false" || t.Text == "null":
		return errorf(t.Pos, "%q cannot be a parameter name", t.Text)
	}
	return nil
}

func (p *parser) parseExpression() (ast.Expr, error) {
	return p.parseBinary(precOr)
}

// parseBinary implements precedence climbing; all binary operators are
// left-associative.
func (p *parser) parseBinary(minPrec int) (ast.Expr, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}

	for {
		t := p.cur()
		if t.Kind != TokenPunct {
			return left, nil
		}
		prec := precedence(t.Text)
		if prec == precLowest || prec < minPrec {
			return left, nil
		}
		p.advance()

		right, err := p.parseBinary(prec + 1)
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryExpression{Left: left, Operator: t.Text, Right: right}
	}
}

func (p *parser) parseUnary() (ast.Expr, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()

	t := p.cur()
	if t.Kind == TokenPunct {
		switch t.Text {
		case "!":
			p.advance()
			arg, err := p.parseUnary()
			if err != nil {
				return nil, err
			}
			return &ast.UnaryExpression{Operator: "!", Argument: arg}, nil
		case "-":
			p.advance()
			if next := p.cur(); next.Kind == TokenNumber {
				// Fold -<number> into a literal so `x.temp > -5` needs no
				// unary support downstream.
				p.advance()
				lit, err := numberLiteral(next)
				if err != nil {
					return nil, err
				}
				lit.Value = -lit.Value.(value.Number)
				lit.Raw = "-" + lit.Raw
				return p.parsePostfix(lit)
			}
			arg, err := p.parseUnary()
			if err != nil {
				return nil, err
			}
			return &ast.UnaryExpression{Operator: "-", Argument: arg}, nil
		case "+":
			return nil, errorf(t.Pos, "unary %q is not supported", t.Text)
		}
	}

	primary, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	return p.parsePostfix(primary)
}

// parsePostfix applies `.name`, `[expr]` and `(args)` to expr.
func (p *parser) parsePostfix(expr ast.Expr) (ast.Expr, error) {
	for {
		t := p.cur()
		if t.Kind != TokenPunct {
			return expr, nil
		}
		switch t.Text {
		case ".":
			p.advance()
			name := p.cur()
			if name.Kind != TokenIdent {
				return nil, errorf(name.Pos, "expected property name after '.', found %s", name.describe())
			}
			p.advance()
			expr = &ast.MemberExpression{Object: expr, Property: &ast.Identifier{Name: name.Text}}
		case "[":
			p.advance()
			prop, err := p.parseNested()
			if err != nil {
				return nil, err
			}
			if _, err := p.expect("]"); err != nil {
				return nil, err
			}
			expr = &ast.MemberExpression{Object: expr, Property: prop, Computed: true}
		case "(":
			p.advance()
			args, err := p.parseList(")")
			if err != nil {
				return nil, err
			}
			expr = &ast.CallExpression{Callee: expr, Arguments: args}
		default:
			return expr, nil
		}
	}
}

// parseNested parses a full expression inside brackets, counting the
// brackets as one nesting level.
func (p *parser) parseNested() (ast.Expr, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()
	return p.parseExpression()
}

// parseList parses comma separated expressions up to and including end.
// A trailing comma is allowed.
func (p *parser) parseList(end string) ([]ast.Expr, error) {
	list := []ast.Expr{}
	for !p.match(end) {
		expr, err := p.parseNested()
		if err != nil {
			return nil, err
		}
		list = append(list, expr)
		if p.match(end) {
			return list, nil
		}
		if _, err := p.expect(","); err != nil {
			return nil, err
		}
	}
	return list, nil
}

func (p *parser) parsePrimary() (ast.Expr, error) {
	t := p.cur()
	switch t.Kind {
	case TokenNumber:
		p.advance()
		return numberLiteral(t)
	case TokenString:
		p.advance()
		return &ast.Literal{Value: value.String(t.Text), Raw: t.Raw}, nil
	case TokenIdent:
		switch {
		case t.Text == "true" || t.Text == "false":
			p.advance()
			return &ast.Literal{Value: value.Bool(t.Text == "true"), Raw: t.Raw}, nil
		case t.Text == "null":
			p.advance()
			return &ast.Literal{Value: value.Null{}, Raw: t.Raw}, nil
		case unsupportedKeywords[t.Text]:
			return nil, errorf(t.Pos, "unsupported keyword %q", t.Text)
		}
		if next := p.peekAt(1); next.Kind == TokenPunct && next.Text == "=>" {
			return nil, errorf(next.Pos, "nested arrow functions are not supported")
		}
		p.advance()
		return &ast.Identifier{Name: t.Text}, nil
	case TokenPunct:
		switch t.Text {
		case "(":
			p.advance()
			expr, err := p.parseNested()
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(")"); err != nil {
				return nil, err
			}
			return expr, nil
		case "[":
			p.advance()
			elems, err := p.parseList("]")
			if err != nil {
				return nil, err
			}
			return &ast.ArrayExpression{Elements: elems}, nil
		}
	case TokenEOF:
		return nil, errorf(t.Pos, "unexpected end of input")
	}
	return nil, errorf(t.Pos, "unexpected %s", t.describe())
}

func numberLiteral(t Token) (*ast.Literal, error) {
	f, err := strconv.ParseFloat(t.Text, 64)
	if err != nil {
		return nil, &SyntaxError{Pos: t.Pos, Message: "invalid number " + t.Raw, Err: err}
	}
	return &ast.Literal{Value: value.Number(f), Raw: t.Raw}, nil
}

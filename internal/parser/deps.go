package parser

import (
	"github.com/roach88/filterql/internal/ast"
)

// ParseDependencies parses a dependency list such as `() => [threshold, prefix]`
// and returns the identifier names in declaration order.
//
// The body must be an array literal of bare identifiers and names must be
// unique. Errors point at the offending element.
func ParseDependencies(src string, opts ...Option) ([]string, error) {
	p, err := newParser(src, opts)
	if err != nil {
		return nil, err
	}

	if _, err := p.parseParams(); err != nil {
		return nil, err
	}
	if _, err := p.expect("=>"); err != nil {
		return nil, err
	}

	bodyPos := p.cur().Pos
	if !p.match("[") {
		body, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		return nil, errorf(bodyPos, "dependency list must be an array literal, found %s", ast.Kind(body))
	}

	names := []string{}
	seen := make(map[string]bool)
	for i := 0; !p.match("]"); i++ {
		pos := p.cur().Pos
		el, err := p.parseNested()
		if err != nil {
			return nil, err
		}

		id, ok := el.(*ast.Identifier)
		if !ok {
			return nil, errorf(pos, "dependency list element %d must be an identifier, found %s", i, ast.Kind(el))
		}
		if seen[id.Name] {
			return nil, errorf(pos, "duplicate dependency name %q", id.Name)
		}
		seen[id.Name] = true
		names = append(names, id.Name)

		if p.match("]") {
			break
		}
		if _, err := p.expect(","); err != nil {
			return nil, err
		}
	}

	if err := p.finish(); err != nil {
		return nil, err
	}
	return names, nil
}

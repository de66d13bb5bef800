package rql

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/filterql/internal/parser"
)

func valuesOf(vals ...any) ValuesFunc {
	return func() []any { return vals }
}

func TestParseFilterScenarios(t *testing.T) {
	tests := []struct {
		name   string
		filter string
		deps   string
		values ValuesFunc
		want   string
	}{
		{"comparison", "x => x.age > 30", "", nil, "(age > 30)"},
		{"dependency", "x => x.age > threshold", "() => [threshold]", valuesOf(30), "(age > 30)"},
		{"case insensitive prefix", "x => x.name.startsWith(prefix, true)", "() => [prefix]", valuesOf("Al"), `(name BEGINSWITH[c] "Al")`},
		{"bare truthy", "x => x.isActive", "", nil, "isActive == true"},
		{"negation", "x => !x.isActive", "", nil, "isActive == false"},
		{"strict equality", "x => x.name === 'Bob'", "", nil, `(name == "Bob")`},
		{"strict inequality", "x => x.name !== 'Bob'", "", nil, `(name != "Bob")`},
		{"count", "x => x.items.count() >= 2", "", nil, "(items.@count >= 2)"},
		{"any", "x => x.dogs.any().name == 'Rex'", "", nil, `(ANY dogs.name == "Rex")`},
		{"any with string op", "x => x.dogs.any().name.startsWith('R')", "", nil, `(ANY dogs.name BEGINSWITH "R")`},
		{"two level path", "x => x.owner.name == 'Al'", "", nil, `(owner.name == "Al")`},
		{"three level path keeps last two", "x => x.a.b.c == 1", "", nil, "(b.c == 1)"},
		{"logical and", "x => x.age > 30 && x.isActive", "", nil, "((age > 30) && isActive == true)"},
		{"logical or with not", "x => !x.deleted || x.age < 18", "", nil, "(deleted == false || (age < 18))"},
		{"grouping", "x => (x.a > 1 || x.b > 2) && x.c > 3", "", nil, "(((a > 1) || (b > 2)) && (c > 3))"},
		{"negative literal", "x => x.temp > -5", "", nil, "(temp > -5)"},
		{"fraction", "x => x.score >= 0.5", "", nil, "(score >= 0.5)"},
		{"null", "x => x.owner == null", "", nil, "(owner == null)"},
		{"arithmetic", "x => x.price * 2 > x.budget", "", nil, "((price * 2) > budget)"},
		{"ends with", "x => x.name.endsWith('z')", "", nil, `(name ENDSWITH "z")`},
		{"legacy ends with", "x => x.name.endsWidth('z')", "", nil, `(name ENDSWITH "z")`},
		{"contains", "x => x.name.contains(s, false)", "() => [s]", valuesOf("oo"), `(name CONTAINS "oo")`},
		{"like", "x => x.name.like('A*', true)", "", nil, `(name LIKE[c] "A*")`},
		{"computed key", "x => x['age'] > 1", "", nil, "(age > 1)"},
		{"surrogate pair escape", `x => x.a == "\uD83D\uDE00"`, "", nil, "(a == \"\U0001F600\")"},
		{"parenthesized params", "(item) => item.qty > 0", "", nil, "(qty > 0)"},
		{"trailing semicolon", "x => x.ok;", "", nil, "ok == true"},
		{"multiple dependencies", "x => x.a > lo && x.a < hi", "() => [lo, hi]", valuesOf(1, 9), "((a > 1) && (a < 9))"},
		{"boolean dependency", "x => x.flag == want", "() => [want]", valuesOf(false), "(flag == false)"},
		{"extra values ignored", "x => x.a == v", "() => [v]", valuesOf(1, 2, 3), "(a == 1)"},
		{"blank deps", "x => x.a > 1", "  ", valuesOf(5), "(a > 1)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseFilter(tt.filter, tt.deps, tt.values)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseFilterNestedPaths(t *testing.T) {
	got, err := ParseFilter("x => x.a.b.c == 1", "", nil, WithNestedPaths())
	require.NoError(t, err)
	assert.Equal(t, "(a.b.c == 1)", got)
}

func TestParseFilterErrors(t *testing.T) {
	tests := []struct {
		name   string
		filter string
		deps   string
		values ValuesFunc
		code   ErrorCode
	}{
		{"undefined identifier", "x => x.age > threshold", "", nil, ErrCodeUndefinedArgument},
		{"missing value", "x => x.age > threshold", "() => [threshold]", valuesOf(), ErrCodeUndefinedArgument},
		{"nil values func", "x => x.age > threshold", "() => [threshold]", nil, ErrCodeUndefinedArgument},
		{"unsupported method", "x => x.age.foo()", "", nil, ErrCodeUnsupportedOperator},
		{"unary minus", "x => -x.age", "", nil, ErrCodeUnsupportedOperator},
		{"not over comparison", "x => !(x.age > 3)", "", nil, ErrCodeUnsupportedOperator},
		{"array body", "x => [x.a]", "", nil, ErrCodeUnsupportedOperator},
		{"syntax", "x => x.age >", "", nil, ErrCodeParse},
		{"ternary", "x => x.a ? 1 : 2", "", nil, ErrCodeParse},
		{"not an arrow", "x.age > 30", "", nil, ErrCodeParse},
		{"bad deps", "x => x.a", "() => threshold", valuesOf(1), ErrCodeParse},
		{"duplicate deps", "x => x.a", "() => [a, a]", valuesOf(1, 2), ErrCodeParse},
		{"object value", "x => x.a == v", "() => [v]", valuesOf(map[string]any{"k": 1}), ErrCodeInvalidArgument},
		{"unsupported Go type", "x => x.a == v", "() => [v]", valuesOf(struct{}{}), ErrCodeInvalidArgument},
		{"too deep", "x => " + strings.Repeat("(", 200) + "x.a" + strings.Repeat(")", 200), "", nil, ErrCodeTooComplex},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseFilter(tt.filter, tt.deps, tt.values)
			require.Error(t, err)
			assert.Equal(t, tt.code, CodeOf(err), "got %v", err)
		})
	}
}

func TestParseFilterParseErrorWrapsSyntaxError(t *testing.T) {
	_, err := ParseFilter("x => x.age >", "", nil)
	require.Error(t, err)
	assert.True(t, IsParseError(err))

	var synErr *parser.SyntaxError
	require.True(t, errors.As(err, &synErr))
	assert.True(t, synErr.Pos.IsValid())
	assert.Contains(t, err.Error(), "PARSE_ERROR: filter: ")
}

func TestParseFilterTooComplexLongChain(t *testing.T) {
	terms := make([]string, 300)
	for i := range terms {
		terms[i] = "x.a > 1"
	}
	filter := "x => " + strings.Join(terms, " || ")

	_, err := ParseFilter(filter, "", nil)
	require.Error(t, err)
	assert.True(t, IsTooComplex(err))

	_, err = ParseFilter(filter, "", nil, WithMaxDepth(1000))
	require.NoError(t, err)
}

func TestParseFilterValuesCalledOnce(t *testing.T) {
	calls := 0
	values := func() []any {
		calls++
		return []any{1}
	}

	_, err := ParseFilter("x => x.a == v", "() => [v]", values)
	require.NoError(t, err)
	assert.Equal(t, 1, calls)

	_, err = ParseFilter("x => x.a == 1", "", values)
	require.NoError(t, err)
	assert.Equal(t, 1, calls, "values must not be called without deps")
}

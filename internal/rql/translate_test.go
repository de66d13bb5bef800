package rql

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/filterql/internal/ast"
	"github.com/roach88/filterql/internal/value"
)

func ident(name string) *ast.Identifier {
	return &ast.Identifier{Name: name}
}

func path(segments ...string) *ast.MemberExpression {
	var e ast.Expr = ident("x")
	for _, s := range segments {
		e = &ast.MemberExpression{Object: e, Property: ident(s)}
	}
	return e.(*ast.MemberExpression)
}

func lit(v value.Value) *ast.Literal {
	return &ast.Literal{Value: v}
}

func method(recv ast.Expr, name string, args ...ast.Expr) *ast.CallExpression {
	return &ast.CallExpression{
		Callee:    &ast.MemberExpression{Object: recv, Property: ident(name)},
		Arguments: args,
	}
}

func TestTranslateLiterals(t *testing.T) {
	tests := []struct {
		name string
		v    value.Value
		want string
	}{
		{"string", value.String("Al"), `"Al"`},
		{"string with quote is not escaped", value.String(`a"b`), `"a"b"`},
		{"empty string", value.String(""), `""`},
		{"integer", value.Number(30), "30"},
		{"fraction", value.Number(2.5), "2.5"},
		{"negative", value.Number(-4), "-4"},
		{"large", value.Number(1e21), "1e+21"},
		{"small", value.Number(1e-7), "1e-7"},
		{"true", value.Bool(true), "true"},
		{"false", value.Bool(false), "false"},
		{"null", value.Null{}, "null"},
	}
	tr := New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tr.Translate(lit(tt.v), EmptyEnv())
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTranslateStrictEqualityNormalized(t *testing.T) {
	tr := New()
	pairs := [][2]string{{"===", "=="}, {"!==", "!="}}
	for _, p := range pairs {
		t.Run(p[0], func(t *testing.T) {
			strict, err := tr.Translate(&ast.BinaryExpression{Left: path("age"), Operator: p[0], Right: lit(value.Number(3))}, EmptyEnv())
			require.NoError(t, err)
			loose, err := tr.Translate(&ast.BinaryExpression{Left: path("age"), Operator: p[1], Right: lit(value.Number(3))}, EmptyEnv())
			require.NoError(t, err)
			assert.Equal(t, loose, strict)
			assert.Equal(t, "(age "+p[1]+" 3)", strict)
		})
	}
}

func TestTranslateMemberContext(t *testing.T) {
	tr := New()

	got, err := tr.Translate(path("isActive"), EmptyEnv())
	require.NoError(t, err)
	assert.Equal(t, "isActive == true", got)

	got, err = tr.Translate(&ast.BinaryExpression{Left: path("age"), Operator: ">", Right: lit(value.Number(30))}, EmptyEnv())
	require.NoError(t, err)
	assert.Equal(t, "(age > 30)", got)

	got, err = tr.Translate(&ast.BinaryExpression{Left: path("a"), Operator: "&&", Right: path("b")}, EmptyEnv())
	require.NoError(t, err)
	assert.Equal(t, "(a == true && b == true)", got)
}

func TestTranslateUnaryNot(t *testing.T) {
	tr := New()

	got, err := tr.Translate(&ast.UnaryExpression{Operator: "!", Argument: path("done")}, EmptyEnv())
	require.NoError(t, err)
	assert.Equal(t, "done == false", got)

	_, err = tr.Translate(&ast.UnaryExpression{Operator: "-", Argument: path("done")}, EmptyEnv())
	require.Error(t, err)
	assert.True(t, IsUnsupportedOperator(err))

	_, err = tr.Translate(&ast.UnaryExpression{Operator: "!", Argument: lit(value.Bool(true))}, EmptyEnv())
	require.Error(t, err)
	assert.True(t, IsUnsupportedOperator(err))
}

func TestTranslateCount(t *testing.T) {
	got, err := New().Translate(method(path("items"), "count"), EmptyEnv())
	require.NoError(t, err)
	assert.Equal(t, "items.@count", got)

	_, err = New().Translate(method(path("items"), "count", lit(value.Number(1))), EmptyEnv())
	require.Error(t, err)
	assert.True(t, IsUnsupportedOperator(err))
}

func TestTranslateStringOperators(t *testing.T) {
	tests := []struct {
		method string
		op     string
	}{
		{"startsWith", "BEGINSWITH"},
		{"endsWith", "ENDSWITH"},
		{"endsWidth", "ENDSWITH"},
		{"contains", "CONTAINS"},
		{"like", "LIKE"},
	}
	tr := New()
	for _, tt := range tests {
		t.Run(tt.method, func(t *testing.T) {
			got, err := tr.Translate(method(path("name"), tt.method, lit(value.String("x"))), EmptyEnv())
			require.NoError(t, err)
			assert.Equal(t, `(name `+tt.op+` "x")`, got)

			got, err = tr.Translate(method(path("name"), tt.method, lit(value.String("x")), lit(value.Bool(true))), EmptyEnv())
			require.NoError(t, err)
			assert.Equal(t, `(name `+tt.op+`[c] "x")`, got)

			got, err = tr.Translate(method(path("name"), tt.method, lit(value.String("x")), lit(value.Bool(false))), EmptyEnv())
			require.NoError(t, err)
			assert.Equal(t, `(name `+tt.op+` "x")`, got)
		})
	}
}

func TestTranslateCaseFlagOnlyLiteralTrue(t *testing.T) {
	tr := New()
	for _, flag := range []value.Value{value.String("true"), value.Number(1), value.Null{}} {
		got, err := tr.Translate(method(path("name"), "startsWith", lit(value.String("x")), lit(flag)), EmptyEnv())
		require.NoError(t, err)
		assert.Equal(t, `(name BEGINSWITH "x")`, got)
	}

	env, err := BindArgs([]string{"ci"}, []any{true})
	require.NoError(t, err)
	got, err := tr.Translate(method(path("name"), "startsWith", lit(value.String("x")), ident("ci")), env)
	require.NoError(t, err)
	assert.Equal(t, `(name BEGINSWITH[c] "x")`, got)

	_, err = tr.Translate(method(path("name"), "startsWith", lit(value.String("x")), ident("missing")), env)
	require.Error(t, err)
	assert.True(t, IsUndefinedArgument(err))
}

func TestTranslateUnsupported(t *testing.T) {
	tests := []struct {
		name string
		expr ast.Expr
	}{
		{"unknown method", method(path("age"), "foo")},
		{"any as call result", method(path("dogs"), "any")},
		{"plain function call", &ast.CallExpression{Callee: ident("f")}},
		{"method on root", method(ident("x"), "startsWith", lit(value.String("a")))},
		{"string op without args", method(path("name"), "contains")},
		{"string op with three args", method(path("name"), "contains", lit(value.String("a")), lit(value.Bool(true)), lit(value.Bool(true)))},
		{"string op member arg", method(path("name"), "contains", path("other"))},
		{"array", &ast.ArrayExpression{}},
		{"nil", nil},
		{"computed numeric key", &ast.MemberExpression{Object: ident("x"), Property: lit(value.Number(0)), Computed: true}},
		{"literal root", &ast.MemberExpression{Object: lit(value.String("s")), Property: ident("length")}},
	}
	tr := New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tr.Translate(tt.expr, EmptyEnv())
			require.Error(t, err)
			assert.True(t, IsUnsupportedOperator(err), "got %v", err)
		})
	}
}

func TestTranslateIdentifier(t *testing.T) {
	env, err := BindArgs([]string{"threshold", "prefix", "none"}, []any{30, "Al", nil})
	require.NoError(t, err)

	tr := New()
	for name, want := range map[string]string{"threshold": "30", "prefix": `"Al"`, "none": "null"} {
		got, err := tr.Translate(ident(name), env)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err = tr.Translate(ident("nope"), env)
	require.Error(t, err)
	assert.True(t, IsUndefinedArgument(err))

	var re *Error
	require.ErrorAs(t, err, &re)
	assert.Equal(t, "nope", re.Name)
}

func TestTranslatePaths(t *testing.T) {
	anyChain := &ast.MemberExpression{
		Object:   method(path("dogs"), "any"),
		Property: ident("name"),
	}

	tests := []struct {
		name   string
		expr   ast.Expr
		legacy string
		nested string
	}{
		{"one level", path("age"), "age", "age"},
		{"two levels", path("owner", "name"), "owner.name", "owner.name"},
		{"three levels", path("a", "b", "c"), "b.c", "a.b.c"},
		{"through any", anyChain, "ANY dogs.name", "ANY dogs.name"},
		{"computed string key", &ast.MemberExpression{Object: path("owner"), Property: lit(value.String("first name")), Computed: true}, "owner.first name", "owner.first name"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmp := func(e ast.Expr) ast.Expr {
				return &ast.BinaryExpression{Left: e, Operator: "==", Right: lit(value.Number(1))}
			}

			got, err := New().Translate(cmp(tt.expr), EmptyEnv())
			require.NoError(t, err)
			assert.Equal(t, "("+tt.legacy+" == 1)", got)

			got, err = New(WithNestedPaths()).Translate(cmp(tt.expr), EmptyEnv())
			require.NoError(t, err)
			assert.Equal(t, "("+tt.nested+" == 1)", got)
		})
	}
}

func TestTranslateMaxDepth(t *testing.T) {
	var e ast.Expr = path("a")
	for i := 0; i < 10; i++ {
		e = &ast.BinaryExpression{Left: e, Operator: "&&", Right: path("b")}
	}

	_, err := New(WithMaxDepth(5)).Translate(e, EmptyEnv())
	require.Error(t, err)
	assert.True(t, IsTooComplex(err))

	got, err := New(WithMaxDepth(20)).Translate(e, EmptyEnv())
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(got, "((((((((((a == true && b == true)"))
}

func TestTranslateLogsNodes(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	_, err := New(WithLogger(logger)).Translate(&ast.BinaryExpression{Left: path("age"), Operator: ">", Right: lit(value.Number(1))}, EmptyEnv())
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "translate node")
	assert.Contains(t, out, "kind=BinaryExpression")
	assert.Contains(t, out, "kind=MemberExpression")
	assert.Contains(t, out, "depth=1")
}

func TestTranslatorOptions(t *testing.T) {
	tr := New()
	assert.Equal(t, DefaultMaxDepth, tr.MaxDepth())
	assert.False(t, tr.NestedPaths())

	tr = New(WithMaxDepth(0), WithNestedPaths(), WithLogger(nil))
	assert.Equal(t, DefaultMaxDepth, tr.MaxDepth())
	assert.True(t, tr.NestedPaths())
}

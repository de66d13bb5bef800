package value

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValueSealed(t *testing.T) {
	var _ Value = Null{}
	var _ Value = String("test")
	var _ Value = Number(42)
	var _ Value = Bool(true)
	var _ Value = Array{String("a"), Number(1)}
	var _ Value = Object{"key": String("value")}
}

func TestFromGo(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want Value
	}{
		{"nil", nil, Null{}},
		{"string", "Al", String("Al")},
		{"bool", true, Bool(true)},
		{"int", 30, Number(30)},
		{"int64", int64(-7), Number(-7)},
		{"uint8", uint8(255), Number(255)},
		{"float32", float32(0.5), Number(0.5)},
		{"float64", 1.25, Number(1.25)},
		{"json number", json.Number("12.5"), Number(12.5)},
		{"already a value", String("x"), String("x")},
		{"array", []any{"a", 1}, Array{String("a"), Number(1)}},
		{"object", map[string]any{"k": false}, Object{"k": Bool(false)}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := FromGo(tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestFromGoRejects(t *testing.T) {
	tests := []struct {
		name string
		in   any
	}{
		{"NaN", math.NaN()},
		{"+Inf", math.Inf(1)},
		{"-Inf value", Number(math.Inf(-1))},
		{"struct", struct{}{}},
		{"nested struct", []any{struct{ A int }{1}}},
		{"bad json number", json.Number("1x")},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := FromGo(tc.in)
			assert.Error(t, err)
		})
	}
}

func TestIsScalar(t *testing.T) {
	assert.True(t, IsScalar(Null{}))
	assert.True(t, IsScalar(String("")))
	assert.True(t, IsScalar(Number(0)))
	assert.True(t, IsScalar(Bool(false)))
	assert.False(t, IsScalar(Array{}))
	assert.False(t, IsScalar(Object{}))
}

func TestTypeName(t *testing.T) {
	assert.Equal(t, "null", TypeName(Null{}))
	assert.Equal(t, "string", TypeName(String("")))
	assert.Equal(t, "number", TypeName(Number(1)))
	assert.Equal(t, "boolean", TypeName(Bool(true)))
	assert.Equal(t, "array", TypeName(Array{}))
	assert.Equal(t, "object", TypeName(Object{}))
}

func TestObjectSortedKeysRFC8785Order(t *testing.T) {
	obj := Object{
		"a":  Number(1),
		"A":  Number(2),
		"aa": Number(3),
		"aA": Number(4),
		"Aa": Number(5),
		"AA": Number(6),
	}

	// 'A' = 65, 'a' = 97
	assert.Equal(t, []string{"A", "AA", "Aa", "a", "aA", "aa"}, obj.SortedKeys())
}

func TestObjectSortedKeysSurrogatePairs(t *testing.T) {
	// U+1F600 encodes as surrogates 0xD83D 0xDE00, which sort before U+FF21
	// in UTF-16 even though the UTF-8 bytes sort after.
	obj := Object{
		"\uFF21":     Number(1),
		"\U0001F600": Number(2),
	}

	assert.Equal(t, []string{"\U0001F600", "\uFF21"}, obj.SortedKeys())
}

func TestNumberMarshalJSON(t *testing.T) {
	data, err := json.Marshal(map[string]Value{"n": Number(30)})
	require.NoError(t, err)
	assert.JSONEq(t, `{"n":30}`, string(data))
}

package filterql

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFilterPublicAPI(t *testing.T) {
	out, err := ParseFilter("x => x.age > threshold", "() => [threshold]", func() []any { return []any{30} })
	require.NoError(t, err)
	assert.Equal(t, "(age > 30)", out)

	_, err = ParseFilter("x => x.age.foo()", "", nil)
	require.Error(t, err)
	assert.True(t, IsUnsupportedOperator(err))
	assert.Equal(t, ErrCodeUnsupportedOperator, CodeOf(err))

	var qErr *Error
	require.ErrorAs(t, err, &qErr)
	assert.Equal(t, "x.age.foo()", qErr.Expr)
}

func TestPublicOptions(t *testing.T) {
	_, err := ParseFilter("x => x.a && x.b && x.c", "", nil, WithMaxDepth(2))
	require.Error(t, err)
	assert.True(t, IsTooComplex(err))

	tr := New(WithMaxDepth(8))
	assert.Equal(t, 8, tr.MaxDepth())
	assert.Equal(t, 256, DefaultMaxDepth)

	_, err = ParseFilter("x => x.a == v", "() => [v]", func() []any { return []any{[]any{1}} })
	assert.True(t, IsInvalidArgument(err))

	_, err = ParseFilter("x =>", "", nil)
	assert.True(t, IsParseError(err))
}

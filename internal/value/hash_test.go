package value

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranslationKeyDeterministic(t *testing.T) {
	args := []Value{Number(30)}
	k1, err := TranslationKey("x => x.age > threshold", "() => [threshold]", args, false, 256)
	require.NoError(t, err)
	k2, err := TranslationKey("x => x.age > threshold", "() => [threshold]", args, false, 256)
	require.NoError(t, err)

	assert.Equal(t, k1, k2)
	assert.Len(t, k1, 64)
}

func mustKey(t *testing.T, filter, deps string, args []Value, nested bool, maxDepth int) string {
	t.Helper()
	key, err := TranslationKey(filter, deps, args, nested, maxDepth)
	require.NoError(t, err)
	return key
}

func TestTranslationKeyDistinguishesInputs(t *testing.T) {
	base := mustKey(t, "x => x.age > t", "() => [t]", []Value{Number(30)}, false, 256)

	assert.NotEqual(t, base, mustKey(t, "x => x.age > t", "() => [t]", []Value{Number(31)}, false, 256))
	assert.NotEqual(t, base, mustKey(t, "x => x.age >= t", "() => [t]", []Value{Number(30)}, false, 256))
	assert.NotEqual(t, base, mustKey(t, "x => x.age > t", "() => [t]", []Value{Number(30)}, true, 256))
	assert.NotEqual(t, base, mustKey(t, "x => x.age > t", "", []Value{Number(30)}, false, 256))
	assert.NotEqual(t, base, mustKey(t, "x => x.age > t", "() => [t]", []Value{Number(30)}, false, 1))
}

func TestTranslationKeyNilArgsEqualsEmpty(t *testing.T) {
	assert.Equal(t,
		mustKey(t, "x => x.ok", "", nil, false, 256),
		mustKey(t, "x => x.ok", "", []Value{}, false, 256))
}

func TestHashDomainSeparation(t *testing.T) {
	obj := Object{"a": Number(1)}
	h1, err := Hash("filterql/a/v1", obj)
	require.NoError(t, err)
	h2, err := Hash("filterql/b/v1", obj)
	require.NoError(t, err)
	assert.NotEqual(t, h1, h2)
}

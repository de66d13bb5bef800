package suite

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/filterql/internal/rql"
)

func TestRun_Golden(t *testing.T) {
	for _, name := range []string{"basics", "errors", "nested"} {
		t.Run(name, func(t *testing.T) {
			s, err := Load("testdata/suites/" + name + ".yaml")
			require.NoError(t, err)

			result := Run(s)
			assert.True(t, result.Pass(), Report(result))
			AssertGolden(t, result)
		})
	}
}

func TestRun_Failures(t *testing.T) {
	s := &Suite{
		Name: "failing",
		Cases: []Case{
			{Name: "wrong_rql", Filter: "x => x.a > 1", Expect: "(a > 2)"},
			{Name: "unexpected_error", Filter: "x => x.a > v", Expect: "(a > 1)"},
			{Name: "missing_error", Filter: "x => x.a > 1", ExpectError: "PARSE_ERROR"},
			{Name: "wrong_error", Filter: "x => x.a.foo()", ExpectError: "PARSE_ERROR"},
			{Name: "ok", Filter: "x => x.a", Expect: "a == true"},
		},
	}

	result := Run(s)
	assert.False(t, result.Pass())
	assert.Equal(t, 1, result.Passed)
	assert.Equal(t, 4, result.Failed)

	assert.Equal(t, `expected "(a > 2)", got "(a > 1)"`, result.Cases[0].Message)
	assert.Contains(t, result.Cases[1].Message, "got error UNDEFINED_ARGUMENT")
	assert.Equal(t, `expected error PARSE_ERROR, got "(a > 1)"`, result.Cases[2].Message)
	assert.Contains(t, result.Cases[3].Message, "expected error PARSE_ERROR, got UNSUPPORTED_OPERATOR")

	want := `suite: failing
  FAIL wrong_rql: (a > 1)
       expected "(a > 2)", got "(a > 1)"
  FAIL unexpected_error: UNDEFINED_ARGUMENT
       ` + result.Cases[1].Message + `
  FAIL missing_error: (a > 1)
       expected error PARSE_ERROR, got "(a > 1)"
  FAIL wrong_error: UNSUPPORTED_OPERATOR
       ` + result.Cases[3].Message + `
  PASS ok: a == true
1 passed, 4 failed
`
	assert.Equal(t, want, Report(result))
}

func TestRun_BaseOptionsOverridden(t *testing.T) {
	s := &Suite{
		Name:    "opts",
		Options: &Options{NestedPaths: true},
		Cases:   []Case{{Name: "deep", Filter: "x => x.a.b.c == 1", Expect: "(a.b.c == 1)"}},
	}

	result := Run(s, rql.WithMaxDepth(64))
	assert.True(t, result.Pass(), Report(result))

	s.Options = nil
	result = Run(s, rql.WithNestedPaths())
	assert.True(t, result.Pass(), Report(result))

	result = Run(s)
	assert.False(t, result.Pass())
}

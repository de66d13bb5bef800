package suite

import (
	"fmt"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
)

// Report renders a result as text. Output depends only on the result, so it
// is stable enough for golden files.
func Report(r *Result) string {
	var b strings.Builder
	fmt.Fprintf(&b, "suite: %s\n", r.Suite)
	for _, c := range r.Cases {
		status := "PASS"
		if !c.Pass {
			status = "FAIL"
		}

		outcome := c.Got
		if c.ErrorCode != "" {
			outcome = c.ErrorCode
		} else if c.Error != "" {
			outcome = "error: " + c.Error
		}
		fmt.Fprintf(&b, "  %s %s: %s\n", status, c.Name, outcome)
		if c.Message != "" {
			fmt.Fprintf(&b, "       %s\n", c.Message)
		}
	}
	fmt.Fprintf(&b, "%d passed, %d failed\n", r.Passed, r.Failed)
	return b.String()
}

// AssertGolden compares Report(r) against testdata/golden/<suite>.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/suite -update
func AssertGolden(t *testing.T, r *Result) {
	t.Helper()

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, r.Suite, []byte(Report(r)))
}

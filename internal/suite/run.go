package suite

import (
	"fmt"

	"github.com/roach88/filterql/internal/rql"
)

// CaseResult is the outcome of one case.
type CaseResult struct {
	Name string `json:"name"`
	Pass bool   `json:"pass"`

	// Got is the RQL produced, or "" on error.
	Got string `json:"got,omitempty"`

	// ErrorCode and Error describe a translation failure.
	ErrorCode string `json:"error_code,omitempty"`
	Error     string `json:"error,omitempty"`

	// Message explains a mismatch. Empty when Pass is true.
	Message string `json:"message,omitempty"`
}

// Result is the outcome of a suite run.
type Result struct {
	Suite  string
	Cases  []CaseResult
	Passed int
	Failed int
}

// Pass reports whether every case passed.
func (r *Result) Pass() bool {
	return r.Failed == 0
}

// Run translates every case. base options apply first; the suite's own
// options override them.
func Run(s *Suite, base ...rql.Option) *Result {
	opts := append(append([]rql.Option{}, base...), s.translatorOptions()...)
	tr := rql.New(opts...)

	result := &Result{Suite: s.Name, Cases: make([]CaseResult, 0, len(s.Cases))}
	for _, c := range s.Cases {
		cr := runCase(tr, c)
		if cr.Pass {
			result.Passed++
		} else {
			result.Failed++
		}
		result.Cases = append(result.Cases, cr)
	}
	return result
}

func runCase(tr *rql.Translator, c Case) CaseResult {
	values := c.Values
	got, err := tr.ParseFilter(c.Filter, c.Deps, func() []any { return values })

	cr := CaseResult{Name: c.Name, Got: got}
	if err != nil {
		cr.ErrorCode = string(rql.CodeOf(err))
		cr.Error = err.Error()
	}

	switch {
	case c.ExpectError != "" && err == nil:
		cr.Message = fmt.Sprintf("expected error %s, got %q", c.ExpectError, got)
	case c.ExpectError != "" && cr.ErrorCode != c.ExpectError:
		cr.Message = fmt.Sprintf("expected error %s, got %s", c.ExpectError, err)
	case c.Expect != "" && err != nil:
		cr.Message = fmt.Sprintf("expected %q, got error %s", c.Expect, err)
	case c.Expect != "" && got != c.Expect:
		cr.Message = fmt.Sprintf("expected %q, got %q", c.Expect, got)
	default:
		cr.Pass = true
	}
	return cr
}

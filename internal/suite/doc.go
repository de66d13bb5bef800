// Package suite runs YAML conformance suites against the translator.
//
// A suite lists filters and the RQL (or error code) each must produce:
//
//	name: basics
//	description: Comparison and dependency handling
//	options:
//	  nested_paths: false
//	cases:
//	  - name: comparison
//	    filter: "x => x.age > 30"
//	    expect: "(age > 30)"
//	  - name: dependency
//	    filter: "x => x.age > threshold"
//	    deps: "() => [threshold]"
//	    values: [30]
//	    expect: "(age > 30)"
//	  - name: undefined
//	    filter: "x => x.age > threshold"
//	    expect_error: UNDEFINED_ARGUMENT
//
// Suites are decoded strictly: unknown fields are errors, so a typo such as
// "expected:" fails loudly instead of silently skipping the check.
//
// Report renders a Result as deterministic text; AssertGolden compares that
// text against testdata/golden/<suite>.golden using goldie.
package suite

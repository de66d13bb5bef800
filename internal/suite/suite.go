package suite

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/roach88/filterql/internal/rql"
)

// Suite is a named list of translation cases.
type Suite struct {
	// Name identifies the suite and names its golden file.
	Name string `yaml:"name"`

	// Description explains what the suite covers.
	Description string `yaml:"description"`

	// Options override translator settings for every case.
	Options *Options `yaml:"options,omitempty"`

	// Cases run in file order.
	Cases []Case `yaml:"cases"`
}

// Options mirror the translator options a suite may set.
type Options struct {
	MaxDepth    int  `yaml:"max_depth,omitempty"`
	NestedPaths bool `yaml:"nested_paths,omitempty"`
}

// Case is one filter and its expected outcome.
type Case struct {
	Name   string `yaml:"name"`
	Filter string `yaml:"filter"`

	// Deps is the dependency list source, e.g. "() => [threshold]".
	Deps string `yaml:"deps,omitempty"`

	// Values are bound to Deps by position.
	Values []any `yaml:"values,omitempty"`

	// Exactly one of Expect and ExpectError is set.
	Expect      string `yaml:"expect,omitempty"`
	ExpectError string `yaml:"expect_error,omitempty"`
}

var knownErrorCodes = map[string]bool{
	string(rql.ErrCodeParse):               true,
	string(rql.ErrCodeUnsupportedOperator): true,
	string(rql.ErrCodeUndefinedArgument):   true,
	string(rql.ErrCodeTooComplex):          true,
	string(rql.ErrCodeInvalidArgument):     true,
}

// Load reads and validates a suite file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func Load(path string) (*Suite, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read suite file: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates suite YAML.
func Parse(data []byte) (*Suite, error) {
	var s Suite
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true) // Reject unknown fields
	if err := decoder.Decode(&s); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateSuite(&s); err != nil {
		return nil, fmt.Errorf("invalid suite: %w", err)
	}
	return &s, nil
}

// FindSuiteFiles returns the .yaml and .yml files directly in dir, sorted.
func FindSuiteFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch filepath.Ext(e.Name()) {
		case ".yaml", ".yml":
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(files)
	return files, nil
}

// validateSuite checks that required fields are present and valid.
func validateSuite(s *Suite) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if len(s.Cases) == 0 {
		return fmt.Errorf("cases list is required and must be non-empty")
	}
	if s.Options != nil && s.Options.MaxDepth < 0 {
		return fmt.Errorf("options.max_depth must not be negative")
	}

	seen := make(map[string]bool, len(s.Cases))
	for i, c := range s.Cases {
		if c.Name == "" {
			return fmt.Errorf("cases[%d]: name is required", i)
		}
		if seen[c.Name] {
			return fmt.Errorf("cases[%d]: duplicate case name %q", i, c.Name)
		}
		seen[c.Name] = true

		if c.Filter == "" {
			return fmt.Errorf("cases[%d] (%s): filter is required", i, c.Name)
		}
		if (c.Expect == "") == (c.ExpectError == "") {
			return fmt.Errorf("cases[%d] (%s): exactly one of expect and expect_error is required", i, c.Name)
		}
		if c.ExpectError != "" && !knownErrorCodes[c.ExpectError] {
			return fmt.Errorf("cases[%d] (%s): unknown error code %q", i, c.Name, c.ExpectError)
		}
		if len(c.Values) > 0 && c.Deps == "" {
			return fmt.Errorf("cases[%d] (%s): values given without deps", i, c.Name)
		}
	}

	return nil
}

// translatorOptions returns the suite's option overrides.
func (s *Suite) translatorOptions() []rql.Option {
	if s.Options == nil {
		return nil
	}
	var opts []rql.Option
	if s.Options.MaxDepth > 0 {
		opts = append(opts, rql.WithMaxDepth(s.Options.MaxDepth))
	}
	if s.Options.NestedPaths {
		opts = append(opts, rql.WithNestedPaths())
	}
	return opts
}

// Package config loads translator settings from CUE files.
//
// A config file is plain CUE (JSON is also accepted) unified with an
// embedded #Config schema, so unknown fields, wrong types and out-of-range
// values are reported with file positions:
//
//	max_depth:    512
//	nested_paths: true
package config

import (
	_ "embed"
	"fmt"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"

	"github.com/roach88/filterql/internal/rql"
)

//go:embed schema.cue
var schemaSource string

// Config holds translator settings.
type Config struct {
	MaxDepth    int  `json:"max_depth"`
	NestedPaths bool `json:"nested_paths"`
}

// Error reports an invalid or unreadable config file.
type Error struct {
	Message string
	Pos     token.Pos // CUE position if available
}

func (e *Error) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s", e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(), e.Message)
	}
	return e.Message
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{MaxDepth: rql.DefaultMaxDepth}
}

// Load reads and validates the config file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &Error{Message: fmt.Sprintf("reading config: %v", err)}
	}
	return Parse(path, data)
}

// Parse validates config source. filename is used in error positions.
func Parse(filename string, data []byte) (*Config, error) {
	ctx := cuecontext.New()

	schema := ctx.CompileString(schemaSource, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return nil, fmt.Errorf("compiling config schema: %w", err)
	}
	def := schema.LookupPath(cue.ParsePath("#Config"))

	v := ctx.CompileBytes(data, cue.Filename(filename))
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err, filename)
	}

	unified := def.Unify(v)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return nil, formatCUEError(err, filename)
	}

	cfg := &Config{}
	if err := unified.Decode(cfg); err != nil {
		return nil, formatCUEError(err, filename)
	}
	return cfg, nil
}

// Options converts the config into translator options.
func (c *Config) Options() []rql.Option {
	opts := []rql.Option{rql.WithMaxDepth(c.MaxDepth)}
	if c.NestedPaths {
		opts = append(opts, rql.WithNestedPaths())
	}
	return opts
}

// formatCUEError keeps the first CUE error, positioned in the config file
// itself when CUE reports a position there.
func formatCUEError(err error, filename string) error {
	errs := errors.Errors(err)
	if len(errs) == 0 {
		return &Error{Message: err.Error()}
	}

	first := errs[0]
	cfgErr := &Error{Message: first.Error()}
	for i, pos := range errors.Positions(first) {
		if i == 0 || pos.Filename() == filename {
			cfgErr.Pos = pos
		}
		if pos.Filename() == filename {
			break
		}
	}
	return cfgErr
}

package cli

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/filterql/internal/ast"
	"github.com/roach88/filterql/internal/parser"
)

// ParseOptions holds flags for the parse command.
type ParseOptions struct {
	*RootOptions
	Dependencies bool
}

// NewParseCommand creates the parse command.
func NewParseCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ParseOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "parse <source>",
		Short: "Parse a filter or dependency list and print its syntax tree",
		Long: `Parse an arrow function and print it back in canonical form (text) or as
an ESTree-style syntax tree (json). With --dependencies the source is read as a
dependency list such as '() => [min, name]' and the declared names are printed.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(cmd, opts, args[0])
		},
	}

	cmd.Flags().BoolVar(&opts.Dependencies, "dependencies", false, "parse a dependency list instead of a filter")

	return cmd
}

func runParse(cmd *cobra.Command, opts *ParseOptions, src string) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	cfg, err := opts.loadConfig()
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeConfig, err.Error(), nil)
	}
	nesting := parser.WithMaxNesting(cfg.MaxDepth)

	if opts.Dependencies {
		names, err := parser.ParseDependencies(src, nesting)
		if err != nil {
			return formatter.Fail(ExitFailure, ErrCodeParse, err.Error(), syntaxDetails(err))
		}
		if names == nil {
			names = []string{}
		}
		return formatter.Success(map[string]any{"names": names}, strings.Join(names, "\n"))
	}

	fn, err := parser.ParseArrow(src, nesting)
	if err != nil {
		return formatter.Fail(ExitFailure, ErrCodeParse, err.Error(), syntaxDetails(err))
	}
	return formatter.Success(ast.DumpArrow(fn), ast.FormatArrow(fn))
}

func syntaxDetails(err error) any {
	var synErr *parser.SyntaxError
	if errors.As(err, &synErr) && synErr.Pos.IsValid() {
		return map[string]int{"line": synErr.Pos.Line, "column": synErr.Pos.Column}
	}
	return nil
}

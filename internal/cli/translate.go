package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/roach88/filterql/internal/rql"
	"github.com/roach88/filterql/internal/store"
	"github.com/roach88/filterql/internal/value"
)

// TranslateOptions holds flags for the translate command.
type TranslateOptions struct {
	*RootOptions
	Deps   string
	Values string
	DB     string
}

// TranslateResult is the JSON payload of a successful translation.
type TranslateResult struct {
	RQL    string `json:"rql"`
	Cached bool   `json:"cached"`
	ID     string `json:"id,omitempty"`
}

// NewTranslateCommand creates the translate command.
func NewTranslateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TranslateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "translate <filter>",
		Short: "Translate a filter arrow function to RQL",
		Long: `Translate a JavaScript filter arrow function to a Realm Query Language string.

Dependencies are declared as an arrow function returning an array of names and
are bound positionally to a YAML sequence of values:

  filterql translate 'x => x.age > min' --deps '() => [min]' --values '[30]'

With --db, results are recorded in a SQLite history and identical inputs are
answered from it.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTranslate(cmd, opts, args[0])
		},
	}

	cmd.Flags().StringVar(&opts.Deps, "deps", "", "dependency list, e.g. '() => [min, name]'")
	cmd.Flags().StringVar(&opts.Values, "values", "", "YAML sequence of dependency values, e.g. '[30, \"A\"]'")
	cmd.Flags().StringVar(&opts.DB, "db", "", "SQLite history database")

	return cmd
}

func runTranslate(cmd *cobra.Command, opts *TranslateOptions, filter string) error {
	formatter := newFormatter(opts.RootOptions, cmd)
	logger := newLogger(cmd.ErrOrStderr(), opts.Verbose)

	values, err := parseValues(opts.Values)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeValues, err.Error(), nil)
	}

	trOpts, err := opts.translatorOptions(logger)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeConfig, err.Error(), nil)
	}
	tr := rql.New(trOpts...)
	valuesFn := func() []any { return values }

	var st *store.Store
	if opts.DB != "" {
		st, err = store.Open(opts.DB)
		if err != nil {
			return formatter.Fail(ExitCommandError, ErrCodeStore, err.Error(), nil)
		}
		defer st.Close()
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	rec := store.Translation{
		Filter:      filter,
		Deps:        opts.Deps,
		NestedPaths: tr.NestedPaths(),
		MaxDepth:    tr.MaxDepth(),
	}

	// Only a successful bind yields arguments that can key the history.
	if env, bindErr := tr.Bind(opts.Deps, valuesFn); bindErr == nil {
		rec.Args = env.Values()
		rec.Key, err = value.TranslationKey(filter, opts.Deps, rec.Args, rec.NestedPaths, rec.MaxDepth)
		if err != nil {
			return formatter.Fail(ExitCommandError, ErrCodeGeneric, err.Error(), nil)
		}
	}

	if st != nil && rec.Key != "" {
		cached, ok, err := st.Lookup(ctx, rec.Key)
		if err != nil {
			return formatter.Fail(ExitCommandError, ErrCodeStore, err.Error(), nil)
		}
		if ok {
			logger.Debug("history hit", "id", cached.ID, "key", cached.Key)
			return formatter.Success(TranslateResult{RQL: cached.RQL, Cached: true, ID: cached.ID}, cached.RQL)
		}
	}

	out, trErr := tr.ParseFilter(filter, opts.Deps, valuesFn)
	if trErr != nil {
		rec.ErrorCode = string(rql.CodeOf(trErr))
		rec.ErrorMessage = trErr.Error()
	} else {
		rec.RQL = out
	}

	if st != nil {
		rec, err = st.Record(ctx, rec)
		if err != nil {
			return formatter.Fail(ExitCommandError, ErrCodeStore, err.Error(), nil)
		}
		formatter.VerboseLog("recorded %s", rec.ID)
	}

	if trErr != nil {
		details := map[string]string{"rql_code": rec.ErrorCode}
		if rec.ID != "" {
			details["id"] = rec.ID
		}
		return formatter.Fail(ExitFailure, ErrCodeTranslate, trErr.Error(), details)
	}
	return formatter.Success(TranslateResult{RQL: out, ID: rec.ID}, out)
}

// parseValues decodes a YAML sequence. Blank input means no values.
func parseValues(src string) ([]any, error) {
	if strings.TrimSpace(src) == "" {
		return nil, nil
	}
	var values []any
	if err := yaml.Unmarshal([]byte(src), &values); err != nil {
		return nil, fmt.Errorf("--values must be a YAML sequence: %w", err)
	}
	return values, nil
}

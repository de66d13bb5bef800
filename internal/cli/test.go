package cli

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/roach88/filterql/internal/suite"
)

// TestOptions holds flags for the test command.
type TestOptions struct {
	*RootOptions
	Filter string // glob over suite names
	Golden string // directory of <suite>.golden reports
	Update bool
}

// SuiteSummary is the JSON payload for one suite run.
type SuiteSummary struct {
	Suite   string             `json:"suite"`
	File    string             `json:"file"`
	Passed  int                `json:"passed"`
	Failed  int                `json:"failed"`
	Golden  string             `json:"golden,omitempty"` // "match", "mismatch", "missing", "updated"
	Results []suite.CaseResult `json:"results"`
}

// NewTestCommand creates the test command.
func NewTestCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TestOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "test <suites-dir>",
		Short: "Run YAML translation suites",
		Long: `Run every *.yaml suite in a directory. Each case translates a filter and
checks the RQL or the error code it produces.

With --golden, each suite's text report is compared against
<golden>/<suite>.golden; --update rewrites those files.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTest(cmd, opts, args[0])
		},
	}

	cmd.Flags().StringVar(&opts.Filter, "filter", "", "only run suites whose name matches this glob")
	cmd.Flags().StringVar(&opts.Golden, "golden", "", "directory of golden reports")
	cmd.Flags().BoolVar(&opts.Update, "update", false, "rewrite golden reports instead of comparing")

	return cmd
}

func runTest(cmd *cobra.Command, opts *TestOptions, dir string) error {
	formatter := newFormatter(opts.RootOptions, cmd)
	logger := newLogger(cmd.ErrOrStderr(), opts.Verbose)

	if opts.Filter != "" {
		if _, err := filepath.Match(opts.Filter, ""); err != nil {
			return formatter.Fail(ExitCommandError, ErrCodeGeneric, fmt.Sprintf("invalid --filter: %v", err), nil)
		}
	}
	if opts.Update && opts.Golden == "" {
		return formatter.Fail(ExitCommandError, ErrCodeGeneric, "--update requires --golden", nil)
	}

	files, err := suite.FindSuiteFiles(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return formatter.Fail(ExitCommandError, ErrCodeNotFound, fmt.Sprintf("suite directory not found: %s", dir), nil)
		}
		return formatter.Fail(ExitCommandError, ErrCodeSuiteLoad, err.Error(), nil)
	}

	trOpts, err := opts.translatorOptions(logger)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeConfig, err.Error(), nil)
	}

	var summaries []SuiteSummary
	var reports bytes.Buffer
	failed := 0
	for _, file := range files {
		s, err := suite.Load(file)
		if err != nil {
			return formatter.Fail(ExitCommandError, ErrCodeSuiteLoad, err.Error(), map[string]string{"file": file})
		}
		if opts.Filter != "" {
			if ok, _ := filepath.Match(opts.Filter, s.Name); !ok {
				formatter.VerboseLog("skipping suite %s", s.Name)
				continue
			}
		}

		r := suite.Run(s, trOpts...)
		report := suite.Report(r)
		reports.WriteString(report)

		summary := SuiteSummary{
			Suite:   s.Name,
			File:    file,
			Passed:  r.Passed,
			Failed:  r.Failed,
			Results: r.Cases,
		}
		if !r.Pass() {
			failed++
		}

		if opts.Golden != "" {
			status, err := checkGolden(opts.Golden, s.Name, []byte(report), opts.Update)
			if err != nil {
				return formatter.Fail(ExitCommandError, ErrCodeWriteFailed, err.Error(), nil)
			}
			summary.Golden = status
			if status == "mismatch" || status == "missing" {
				fmt.Fprintf(&reports, "golden %s: %s\n", s.Name, status)
				failed++
			}
		}
		summaries = append(summaries, summary)
	}

	if failed > 0 {
		if opts.Format == "json" {
			return formatter.Fail(ExitFailure, ErrCodeSuiteFailed, fmt.Sprintf("%d suite(s) failed", failed), summaries)
		}
		fmt.Fprint(formatter.Writer, reports.String())
		return formatter.Fail(ExitFailure, ErrCodeSuiteFailed, fmt.Sprintf("%d suite(s) failed", failed), nil)
	}

	if summaries == nil {
		summaries = []SuiteSummary{}
	}
	return formatter.Success(summaries, reports.String()+fmt.Sprintf("%d suite(s) passed", len(summaries)))
}

// checkGolden compares report with dir/<name>.golden, or writes it when update
// is set.
func checkGolden(dir, name string, report []byte, update bool) (string, error) {
	file := filepath.Join(dir, name+".golden")
	if update {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("create golden dir: %w", err)
		}
		if err := os.WriteFile(file, report, 0o644); err != nil {
			return "", fmt.Errorf("write golden file: %w", err)
		}
		return "updated", nil
	}

	want, err := os.ReadFile(file)
	if errors.Is(err, fs.ErrNotExist) {
		return "missing", nil
	}
	if err != nil {
		return "", fmt.Errorf("read golden file: %w", err)
	}
	if !bytes.Equal(want, report) {
		return "mismatch", nil
	}
	return "match", nil
}

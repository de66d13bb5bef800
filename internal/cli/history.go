package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/filterql/internal/store"
)

// HistoryOptions holds flags for the history command.
type HistoryOptions struct {
	*RootOptions
	DB    string
	Limit int
}

// HistoryEntry is the JSON form of a recorded translation.
type HistoryEntry struct {
	ID          string `json:"id"`
	Seq         int64  `json:"seq"`
	Filter      string `json:"filter"`
	Deps        string `json:"deps,omitempty"`
	NestedPaths bool   `json:"nested_paths"`
	MaxDepth    int    `json:"max_depth"`
	RQL         string `json:"rql,omitempty"`
	ErrorCode   string `json:"error_code,omitempty"`
	Error       string `json:"error,omitempty"`
}

// NewHistoryCommand creates the history command.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &HistoryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded translations, most recent first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.DB, "db", "", "SQLite history database (required)")
	cmd.Flags().IntVar(&opts.Limit, "limit", 20, "maximum entries to show (0 for all)")
	_ = cmd.MarkFlagRequired("db")

	return cmd
}

func runHistory(cmd *cobra.Command, opts *HistoryOptions) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	st, err := store.Open(opts.DB)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeStore, err.Error(), nil)
	}
	defer st.Close()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	rows, err := st.List(ctx, opts.Limit)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeStore, err.Error(), nil)
	}

	entries := make([]HistoryEntry, 0, len(rows))
	lines := make([]string, 0, len(rows))
	for _, t := range rows {
		entries = append(entries, HistoryEntry{
			ID:          t.ID,
			Seq:         t.Seq,
			Filter:      t.Filter,
			Deps:        t.Deps,
			NestedPaths: t.NestedPaths,
			MaxDepth:    t.MaxDepth,
			RQL:         t.RQL,
			ErrorCode:   t.ErrorCode,
			Error:       t.ErrorMessage,
		})
		outcome := t.RQL
		if !t.Succeeded() {
			outcome = t.ErrorCode
		}
		lines = append(lines, fmt.Sprintf("%d  %s  =>  %s", t.Seq, t.Filter, outcome))
	}

	if len(lines) == 0 {
		lines = append(lines, "no translations recorded")
	}
	return formatter.Success(entries, strings.Join(lines, "\n"))
}

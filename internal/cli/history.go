package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/roach88/precisemath/internal/store"
)

// HistoryOptions holds flags for the history command.
type HistoryOptions struct {
	*RootOptions
	DB      string
	Limit   int
	Session string
}

// SessionSummary is one session in history output.
type SessionSummary struct {
	ID        string `json:"id"`
	Label     string `json:"label"`
	Scalar    string `json:"scalar"`
	Pass      *bool  `json:"pass,omitempty"`
	TraceHash string `json:"trace_hash,omitempty"`
}

// SessionDetail is a session with its evaluations.
type SessionDetail struct {
	SessionSummary
	Evaluations []EvaluationRecord `json:"evaluations"`
}

// EvaluationRecord is one stored step. Record holds the canonical JSON
// written at evaluation time.
type EvaluationRecord struct {
	ID     string          `json:"id"`
	Seq    int64           `json:"seq"`
	Op     string          `json:"op"`
	Record json.RawMessage `json:"record"`
}

// NewHistoryCommand creates the history command.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &HistoryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recorded evaluations",
		Long: `Show sessions recorded by eval --db and test --db.

Without --session, lists the most recent sessions. With --session, prints
every evaluation of that session in sequence order.

Examples:
  precisemath history --db history.db
  precisemath history --db history.db --session demo --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(cmd.Context(), opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.DB, "db", "", "path to the history database (required)")
	cmd.Flags().IntVar(&opts.Limit, "limit", 20, "maximum sessions to list (0 for all)")
	cmd.Flags().StringVar(&opts.Session, "session", "", "show the evaluations of one session")
	_ = cmd.MarkFlagRequired("db")

	return cmd
}

func runHistory(ctx context.Context, opts *HistoryOptions, cmd *cobra.Command) error {
	st, err := openStore(opts.DB, true)
	if err != nil {
		return err
	}
	defer st.Close()

	if opts.Session != "" {
		return showSession(ctx, opts, st, cmd)
	}

	sessions, err := st.ReadSessions(ctx, opts.Limit)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read history", err)
	}

	summaries := make([]SessionSummary, len(sessions))
	for i, s := range sessions {
		summaries[i] = summarize(s)
	}

	return newFormatter(opts.RootOptions, cmd).Success(summaries, func(w io.Writer) {
		if len(summaries) == 0 {
			fmt.Fprintln(w, "No sessions recorded.")
			return
		}
		for _, s := range summaries {
			fmt.Fprintf(w, "%s  %-6s %s  %s\n", s.ID, s.Scalar, passStatus(s.Pass), s.Label)
		}
	})
}

func showSession(ctx context.Context, opts *HistoryOptions, st *store.Store, cmd *cobra.Command) error {
	sess, err := st.ReadSession(ctx, opts.Session)
	if errors.Is(err, store.ErrNotFound) {
		return NewExitError(ExitCommandError, fmt.Sprintf("session not found: %s", opts.Session))
	}
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read session", err)
	}

	evals, err := st.ReadEvaluations(ctx, sess.ID)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read evaluations", err)
	}

	detail := SessionDetail{
		SessionSummary: summarize(sess),
		Evaluations:    make([]EvaluationRecord, len(evals)),
	}
	for i, e := range evals {
		detail.Evaluations[i] = EvaluationRecord{
			ID:     e.ID,
			Seq:    e.Seq,
			Op:     e.Op,
			Record: json.RawMessage(e.Record),
		}
	}

	return newFormatter(opts.RootOptions, cmd).Success(detail, func(w io.Writer) {
		fmt.Fprintf(w, "Session: %s\n", detail.ID)
		fmt.Fprintf(w, "Label:   %s\n", detail.Label)
		fmt.Fprintf(w, "Scalar:  %s\n", detail.Scalar)
		fmt.Fprintf(w, "Status:  %s\n", passStatus(detail.Pass))
		if detail.TraceHash != "" {
			fmt.Fprintf(w, "Trace:   %s\n", detail.TraceHash)
		}
		fmt.Fprintln(w)
		for _, e := range detail.Evaluations {
			fmt.Fprintf(w, "[%d] %-7s %s\n", e.Seq, e.Op, e.Record)
		}
	})
}

func summarize(s store.Session) SessionSummary {
	return SessionSummary{
		ID:        s.ID,
		Label:     s.Label,
		Scalar:    s.Scalar,
		Pass:      s.Pass,
		TraceHash: s.TraceHash,
	}
}

// passStatus renders a session outcome. Plain eval sessions have none.
func passStatus(pass *bool) string {
	switch {
	case pass == nil:
		return "-"
	case *pass:
		return "pass"
	default:
		return "fail"
	}
}

package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/roach88/precisemath/internal/harness"
)

// EvalOptions holds flags for the eval command.
type EvalOptions struct {
	*RootOptions
	Scalar  string // "int" | "float"
	DB      string // history database; empty disables recording
	Session string // session to append to; empty starts a new one
}

// NewEvalCommand creates the eval command.
func NewEvalCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &EvalOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "eval <op> <operands...>",
		Short: "Evaluate a single fraction operation",
		Long: `Evaluate a single fraction operation and print the result.

Operands are scalars given positionally:
  new     <num> <den>
  from    <value>
  equal   <num> <den> <num> <den>
  add, sub, mul, div
          <num> <den> <num> <den>
  doubles <text>

Results are not reduced: "eval add 1 2 1 2" prints 4/4.

Flags go before <op>. Everything after <op> is an operand, so negative
values need no escaping. A leading "--" is also accepted.

With --db the evaluation is appended to a session in the history
database. Repeat --session to collect several evaluations in one session.

Exit codes:
  0 - Success
  2 - Command error (unknown op, bad operand, database error)

Examples:
  precisemath eval add 1 2 1 3
  precisemath eval add -1 2 1 3
  precisemath eval -- sub -1 2 -1 3
  precisemath eval --scalar float div 0.5 1 1 4
  precisemath --format json eval equal 1 2 2 4
  precisemath eval --db history.db --session demo mul 2 3 3 4`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEval(cmd.Context(), opts, args[0], args[1:], cmd)
		},
	}

	// Operands may be negative numbers; stop flag parsing at <op>.
	cmd.Flags().SetInterspersed(false)
	cmd.Flags().StringVar(&opts.Scalar, "scalar", harness.ScalarInt, "scalar kind (int|float)")
	cmd.Flags().StringVar(&opts.DB, "db", "", "record the evaluation in this database")
	cmd.Flags().StringVar(&opts.Session, "session", "", "session ID to append to (requires --db)")

	return cmd
}

func runEval(ctx context.Context, opts *EvalOptions, op string, operands []string, cmd *cobra.Command) error {
	if opts.Session != "" && opts.DB == "" {
		return NewExitError(ExitCommandError, "--session requires --db")
	}

	step, err := buildStep(op, operands)
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid operation", err)
	}

	event, err := harness.Evaluate(opts.Scalar, step)
	if err != nil {
		return WrapExitError(ExitCommandError, "evaluation failed", err)
	}

	out := newFormatter(opts.RootOptions, cmd)
	if opts.DB != "" {
		out.Session, event.Seq, err = recordEval(ctx, opts, event)
		if err != nil {
			return err
		}
		out.Logger.Debug("evaluation recorded",
			"session", out.Session,
			"seq", event.Seq,
			"op", event.Op,
		)
	}

	return out.Success(event.Canonical(), func(w io.Writer) {
		fmt.Fprintln(w, formatResult(event))
		if out.Session != "" {
			fmt.Fprintf(w, "recorded in session %s (seq %d)\n", out.Session, event.Seq)
		}
	})
}

// buildStep maps positional operands onto a harness step.
func buildStep(op string, operands []string) (harness.Step, error) {
	want := map[string]int{
		harness.OpNew:     2,
		harness.OpFrom:    1,
		harness.OpEqual:   4,
		harness.OpAdd:     4,
		harness.OpSub:     4,
		harness.OpMul:     4,
		harness.OpDiv:     4,
		harness.OpDoubles: 1,
	}
	n, ok := want[op]
	if !ok {
		return harness.Step{}, fmt.Errorf("%w %q", harness.ErrUnknownOp, op)
	}
	if len(operands) != n {
		return harness.Step{}, fmt.Errorf("%w %s: want %d operands, got %d", harness.ErrOperandArity, op, n, len(operands))
	}

	step := harness.Step{Op: op}
	switch n {
	case 1:
		if op == harness.OpDoubles {
			step.Text = &operands[0]
		} else {
			step.Value = operands[0]
		}
	case 2:
		step.Left = harness.Pair{operands[0], operands[1]}
	case 4:
		step.Left = harness.Pair{operands[0], operands[1]}
		step.Right = harness.Pair{operands[2], operands[3]}
	}
	return step, nil
}

func recordEval(ctx context.Context, opts *EvalOptions, event harness.TraceEvent) (string, int64, error) {
	st, err := openStore(opts.DB, false)
	if err != nil {
		return "", 0, err
	}
	defer st.Close()

	sessionID, err := ensureSession(ctx, st, opts.Session, "eval", opts.Scalar)
	if err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			return "", 0, err
		}
		return "", 0, WrapExitError(ExitCommandError, "failed to record evaluation", err)
	}

	seq, err := st.NextSeq(ctx, sessionID)
	if err != nil {
		return "", 0, WrapExitError(ExitCommandError, "failed to record evaluation", err)
	}
	event.Seq = seq

	if err := recordEvents(ctx, st, sessionID, []harness.TraceEvent{event}); err != nil {
		return "", 0, WrapExitError(ExitCommandError, "failed to record evaluation", err)
	}
	return sessionID, seq, nil
}

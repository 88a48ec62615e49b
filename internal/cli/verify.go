package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/roach88/precisemath/internal/harness"
)

// VerifyOptions holds flags for the verify command.
type VerifyOptions struct {
	*RootOptions
	Scalar string
	Grid   []int64
}

// VerifyResult holds the outcome of every property check.
type VerifyResult struct {
	Scalar     string                   `json:"scalar"`
	Properties []harness.PropertyResult `json:"properties"`
	Failed     int                      `json:"failed"`
}

// NewVerifyCommand creates the verify command.
func NewVerifyCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &VerifyOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Check the fraction laws over a value grid",
		Long: `Check the fraction laws over every fraction built from the grid:
equality under scaling, commutativity of addition and multiplication,
the additive and multiplicative identities, and division undoing
multiplication.

Exit codes:
  0 - All properties hold
  1 - One or more properties failed
  2 - Command error (unknown scalar)

Examples:
  precisemath verify
  precisemath verify --scalar float --grid -2,-1,1,3`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVerify(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Scalar, "scalar", harness.ScalarInt, "scalar kind (int|float)")
	cmd.Flags().Int64SliceVar(&opts.Grid, "grid", harness.DefaultGrid, "numerators and denominators to combine")

	return cmd
}

func runVerify(opts *VerifyOptions, cmd *cobra.Command) error {
	props, err := harness.CheckProperties(opts.Scalar, opts.Grid)
	if err != nil {
		return WrapExitError(ExitCommandError, "verify failed", err)
	}

	result := VerifyResult{Scalar: opts.Scalar, Properties: props}
	for _, p := range props {
		if !p.Pass() {
			result.Failed++
		}
	}

	out := newFormatter(opts.RootOptions, cmd)
	out.Logger.Debug("properties checked",
		"scalar", opts.Scalar,
		"grid", len(opts.Grid),
		"failed", result.Failed,
	)

	text := func(w io.Writer) {
		for _, p := range props {
			if p.Pass() {
				fmt.Fprintf(w, "✓ %s (%d cases)\n", p.Name, p.Checked)
				continue
			}
			fmt.Fprintf(w, "✗ %s (%d cases)\n", p.Name, p.Checked)
			for _, f := range p.Failures {
				fmt.Fprintf(w, "  %s\n", f)
			}
		}
	}

	if result.Failed > 0 {
		return out.Failure("E_PROPERTY_FAILED",
			fmt.Sprintf("%d property(ies) failed", result.Failed), result, text)
	}
	return out.Success(result, text)
}

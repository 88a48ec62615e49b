package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/roach88/precisemath/doubles"
)

// DoublesOptions holds flags for the doubles command.
type DoublesOptions struct {
	*RootOptions
	NFC bool
}

// DoublesResult is the JSON payload of the doubles command.
type DoublesResult struct {
	Function string `json:"function"`
	Text     string `json:"text"`
	Count    uint64 `json:"count"`
}

// NewDoublesCommand creates the doubles command.
func NewDoublesCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &DoublesOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "doubles <text>",
		Short: "Count adjacent equal characters",
		Long: `Count the positions where a character equals the one before it.

Characters are Unicode code points. "aaa" counts 2. With --nfc the text is
normalized to NFC first, so a decomposed "e" plus combining accent compares
equal to the precomposed character.

Examples:
  precisemath doubles "bookkeeper"
  precisemath doubles --nfc "$TEXT" --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDoubles(opts, args[0], cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.NFC, "nfc", false, "normalize to NFC before counting")

	return cmd
}

func runDoubles(opts *DoublesOptions, text string, cmd *cobra.Command) error {
	count := doubles.Count(text)
	if opts.NFC {
		count = doubles.CountNormalized(text)
	}

	result := DoublesResult{
		Function: doubles.ModuleName + "." + doubles.FunctionName,
		Text:     text,
		Count:    count,
	}
	return newFormatter(opts.RootOptions, cmd).Success(result, func(w io.Writer) {
		fmt.Fprintln(w, count)
	})
}

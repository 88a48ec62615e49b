package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"
)

// Process exit codes. main passes GetExitCode(err) to os.Exit.
const (
	ExitSuccess = 0

	// ExitFailure means the command ran but something did not hold:
	// a scenario expectation, a golden file or a fraction law.
	ExitFailure = 1

	// ExitCommandError means the command could not run at all, for example
	// an unknown op, an unparsable operand or a missing database.
	ExitCommandError = 2
)

// ExitError carries the exit code a failed command should terminate with.
type ExitError struct {
	Code    int
	Message string
	Err     error // may be nil
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *ExitError) Unwrap() error { return e.Err }

// NewExitError returns an ExitError without a cause.
func NewExitError(code int, message string) *ExitError {
	return &ExitError{Code: code, Message: message}
}

// WrapExitError returns an ExitError whose cause is err.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode returns the code of the first ExitError in err's chain.
// Any other error maps to ExitFailure.
func GetExitCode(err error) int {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

// CLIResponse is the envelope written for --format json.
// Status is "ok" or "error". Session names the history session the
// result was recorded in, if any.
type CLIResponse struct {
	Status  string    `json:"status"`
	Data    any       `json:"data,omitempty"`
	Error   *CLIError `json:"error,omitempty"`
	Session string    `json:"session,omitempty"`
}

// CLIError describes why a command reported failure. Code is
// E_TEST_FAILED or E_PROPERTY_FAILED.
type CLIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// TextFunc prints the human-readable form of a result.
type TextFunc func(w io.Writer)

// OutputFormatter renders command results as text or as a JSON CLIResponse
// on stdout, and carries the diagnostic logger for stderr.
type OutputFormatter struct {
	Format string
	Writer io.Writer
	Logger *slog.Logger

	// Session is copied into JSON responses once the result is recorded.
	Session string
}

// newFormatter binds a formatter to cmd's output streams.
func newFormatter(opts *RootOptions, cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format: opts.Format,
		Writer: cmd.OutOrStdout(),
		Logger: opts.Logger(cmd.ErrOrStderr()),
	}
}

// Success writes data. Text mode prints via text instead.
func (f *OutputFormatter) Success(data any, text TextFunc) error {
	if f.Format == "json" {
		return f.encode(CLIResponse{Status: "ok", Data: data, Session: f.Session})
	}
	text(f.Writer)
	return nil
}

// Failure writes a report that did not pass and returns an ExitFailure
// error, so the command exits 1 after its output is complete.
func (f *OutputFormatter) Failure(code, message string, data any, text TextFunc) error {
	if f.Format == "json" {
		err := f.encode(CLIResponse{
			Status:  "error",
			Data:    data,
			Error:   &CLIError{Code: code, Message: message},
			Session: f.Session,
		})
		if err != nil {
			return err
		}
	} else {
		text(f.Writer)
	}
	return NewExitError(ExitFailure, message)
}

// Textf prints a progress line in text mode. JSON output stays a single
// document, so nothing is written there.
func (f *OutputFormatter) Textf(format string, args ...any) {
	if f.Format == "json" {
		return
	}
	fmt.Fprintf(f.Writer, format, args...)
}

func (f *OutputFormatter) encode(resp CLIResponse) error {
	enc := json.NewEncoder(f.Writer)
	enc.SetIndent("", "  ")
	return enc.Encode(resp)
}

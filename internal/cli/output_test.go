package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func printText(s string) TextFunc {
	return func(w io.Writer) { fmt.Fprintln(w, s) }
}

func TestOutputFormatter_JSONSuccess(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{Format: "json", Writer: buf}

	err := formatter.Success(map[string]string{"result": "4/2"}, printText("4/2"))
	require.NoError(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Nil(t, resp.Error)
	assert.Empty(t, resp.Session)
	assert.Equal(t, map[string]any{"result": "4/2"}, resp.Data)
}

func TestOutputFormatter_JSONSession(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{Format: "json", Writer: buf}
	formatter.Session = "demo"

	require.NoError(t, formatter.Success("4/2", printText("4/2")))

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "demo", resp.Session)
}

func TestOutputFormatter_JSONFailure(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{Format: "json", Writer: buf}

	err := formatter.Failure("E_PROPERTY_FAILED", "1 property(ies) failed",
		map[string]int{"failed": 1}, printText("✗ add commutes"))
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Equal(t, "1 property(ies) failed", err.Error())

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "E_PROPERTY_FAILED", resp.Error.Code)
	assert.Equal(t, "1 property(ies) failed", resp.Error.Message)
	assert.Equal(t, map[string]any{"failed": float64(1)}, resp.Data)
}

func TestOutputFormatter_TextSuccess(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{Format: "text", Writer: buf}

	require.NoError(t, formatter.Success("ignored", printText("4/2")))
	assert.Equal(t, "4/2\n", buf.String())
}

func TestOutputFormatter_TextFailure(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{Format: "text", Writer: buf}

	err := formatter.Failure("E_TEST_FAILED", "2 scenario(s) failed", nil, printText("✗ division"))
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Equal(t, "✗ division\n", buf.String())
}

func TestOutputFormatter_Textf(t *testing.T) {
	tests := []struct {
		format string
		want   string
	}{
		{"text", "✓ addition (golden updated)\n"},
		{"json", ""},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			buf := &bytes.Buffer{}
			formatter := &OutputFormatter{Format: tt.format, Writer: buf}

			formatter.Textf("✓ %s%s\n", "addition", " (golden updated)")
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestNewFormatter(t *testing.T) {
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	cmd := &cobra.Command{}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	formatter := newFormatter(&RootOptions{Format: "json", Verbose: true}, cmd)
	assert.Equal(t, "json", formatter.Format)

	formatter.Logger.Debug("evaluation recorded", "seq", 2)
	assert.Contains(t, stderr.String(), "seq=2")

	require.NoError(t, formatter.Success(nil, printText("")))
	assert.Contains(t, stdout.String(), `"status": "ok"`)
}

func TestGetExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"exit_error", NewExitError(ExitCommandError, "bad operand"), ExitCommandError},
		{"wrapped_exit_error", fmt.Errorf("eval: %w", NewExitError(ExitFailure, "failed")), ExitFailure},
		{"plain_error", errors.New("boom"), ExitFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GetExitCode(tt.err))
		})
	}
}

func TestWrapExitError(t *testing.T) {
	cause := errors.New("disk full")
	err := WrapExitError(ExitCommandError, "failed to record evaluation", cause)

	assert.Equal(t, "failed to record evaluation: disk full", err.Error())
	assert.ErrorIs(t, err, cause)
}

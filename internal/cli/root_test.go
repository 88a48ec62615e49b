package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "precisemath", cmd.Use)
	assert.Contains(t, cmd.Long, "fraction arithmetic")
}

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand()
	commands := []string{"eval", "doubles", "test", "verify", "history"}

	for _, cmdName := range commands {
		t.Run(cmdName, func(t *testing.T) {
			subCmd, _, err := cmd.Find([]string{cmdName})
			require.NoError(t, err, "Command %s should exist", cmdName)
			require.NotNil(t, subCmd)
			assert.Equal(t, cmdName, subCmd.Name())
		})
	}
}

func TestGlobalFlags(t *testing.T) {
	cmd := NewRootCommand()

	verboseFlag := cmd.PersistentFlags().Lookup("verbose")
	require.NotNil(t, verboseFlag)
	assert.Equal(t, "v", verboseFlag.Shorthand)
	assert.Equal(t, "false", verboseFlag.DefValue)

	formatFlag := cmd.PersistentFlags().Lookup("format")
	require.NotNil(t, formatFlag)
	assert.Equal(t, "text", formatFlag.DefValue)
}

func TestCommandFlags(t *testing.T) {
	tests := []struct {
		command  string
		flag     string
		defValue string
	}{
		{"eval", "scalar", "int"},
		{"eval", "db", ""},
		{"eval", "session", ""},
		{"doubles", "nfc", "false"},
		{"test", "update", "false"},
		{"test", "filter", ""},
		{"test", "db", ""},
		{"verify", "scalar", "int"},
		{"verify", "grid", "[-7,-3,-1,0,1,2,5,12]"},
		{"history", "db", ""},
		{"history", "limit", "20"},
		{"history", "session", ""},
	}

	for _, tt := range tests {
		t.Run(tt.command+"/"+tt.flag, func(t *testing.T) {
			cmd := NewRootCommand()
			sub, _, err := cmd.Find([]string{tt.command})
			require.NoError(t, err)

			flag := sub.Flags().Lookup(tt.flag)
			require.NotNil(t, flag)
			assert.Equal(t, tt.defValue, flag.DefValue)
		})
	}
}

func TestFormatValidation(t *testing.T) {
	// Test valid formats
	assert.True(t, isValidFormat("text"))
	assert.True(t, isValidFormat("json"))

	// Test invalid formats
	assert.False(t, isValidFormat("xml"))
	assert.False(t, isValidFormat(""))
	assert.False(t, isValidFormat("TEXT"))
}

func TestFormatValidationIntegration(t *testing.T) {
	cmd := NewRootCommand()
	_, err := execute(t, cmd, "--format", "invalid", "verify")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid format")
}

func TestRootDispatch(t *testing.T) {
	out, err := execute(t, NewRootCommand(), "eval", "add", "1", "2", "1", "3")
	require.NoError(t, err)
	assert.Equal(t, "5/6\n", out)

	out, err = execute(t, NewRootCommand(), "eval", "--format", "text", "sub", "-1", "2", "1", "3")
	require.NoError(t, err)
	assert.Equal(t, "-5/6\n", out)
}

func TestLogger_Level(t *testing.T) {
	buf := &bytes.Buffer{}

	quiet := (&RootOptions{}).Logger(buf)
	quiet.Debug("hidden")
	quiet.Info("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")

	buf.Reset()
	verbose := (&RootOptions{Verbose: true}).Logger(buf)
	verbose.Debug("detail", "seq", 3)
	assert.Contains(t, buf.String(), "level=DEBUG")
	assert.Contains(t, buf.String(), "seq=3")
}

func TestVersionFlag(t *testing.T) {
	out, err := execute(t, NewRootCommand(), "--version")
	require.NoError(t, err)
	assert.Contains(t, out, Version)
}

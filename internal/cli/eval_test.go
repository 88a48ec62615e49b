package cli

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/precisemath/internal/harness"
)

func TestEvalCommand_Text(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"add", []string{"add", "1", "2", "1", "3"}, "5/6\n"},
		{"add unreduced", []string{"add", "1", "2", "1", "2"}, "4/4\n"},
		{"sub", []string{"sub", "1", "2", "1", "3"}, "1/6\n"},
		{"mul", []string{"mul", "2", "3", "3", "4"}, "6/12\n"},
		{"div", []string{"div", "1", "2", "3", "4"}, "4/6\n"},
		{"equal", []string{"equal", "1", "2", "2", "4"}, "true\n"},
		{"not equal", []string{"equal", "1", "2", "2", "3"}, "false\n"},
		{"new", []string{"new", "4", "2"}, "4/2\n"},
		{"new zero denominator", []string{"new", "3", "0"}, "3/0\n"},
		{"from", []string{"from", "7"}, "7/1\n"},
		{"doubles", []string{"doubles", "aabb"}, "2\n"},
		{"float", []string{"--scalar", "float", "div", "0.5", "1", "1", "4"}, "2/1\n"},
		{"negative operand", []string{"add", "-1", "2", "1", "3"}, "-1/6\n"},
		{"negative after dashes", []string{"--", "add", "-1", "2", "1", "3"}, "-1/6\n"},
		{"negative denominators", []string{"sub", "1", "-2", "-1", "3"}, "1/-6\n"},
		{"negative from", []string{"from", "-3"}, "-3/1\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := NewEvalCommand(&RootOptions{Format: "text"})
			out, err := execute(t, cmd, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestEvalCommand_JSON(t *testing.T) {
	cmd := NewEvalCommand(&RootOptions{Format: "json"})
	out, err := execute(t, cmd, "equal", "1", "2", "2", "4")
	require.NoError(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Empty(t, resp.Session)

	data, ok := resp.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "equal", data["op"])
	assert.Equal(t, true, data["result"])
	assert.Len(t, data["operands"], 2)
}

func TestEvalCommand_Errors(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr error
	}{
		{"unknown op", []string{"pow", "1", "2", "1", "2"}, harness.ErrUnknownOp},
		{"too few operands", []string{"add", "1", "2", "1"}, harness.ErrOperandArity},
		{"too many operands", []string{"from", "1", "2"}, harness.ErrOperandArity},
		{"bad operand", []string{"add", "1", "x", "1", "2"}, harness.ErrBadScalar},
		{"float operand for int", []string{"from", "0.5"}, harness.ErrBadScalar},
		{"unknown scalar", []string{"--scalar", "decimal", "from", "1"}, harness.ErrUnknownScalar},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := NewEvalCommand(&RootOptions{Format: "text"})
			_, err := execute(t, cmd, tt.args...)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, ExitCommandError, GetExitCode(err))
		})
	}
}

func TestEvalCommand_MissingOp(t *testing.T) {
	cmd := NewEvalCommand(&RootOptions{Format: "text"})
	_, err := execute(t, cmd)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "requires at least 1 arg")
}

func TestEvalCommand_SessionRequiresDB(t *testing.T) {
	cmd := NewEvalCommand(&RootOptions{Format: "text"})
	_, err := execute(t, cmd, "--session", "demo", "from", "1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--session requires --db")
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestEvalCommand_Records(t *testing.T) {
	useSessionIDs(t, "session-1")
	dbPath := filepath.Join(t.TempDir(), "history.db")

	cmd := NewEvalCommand(&RootOptions{Format: "text"})
	out, err := execute(t, cmd, "--db", dbPath, "add", "1", "2", "1", "3")
	require.NoError(t, err)
	assert.Equal(t, "5/6\nrecorded in session session-1 (seq 1)\n", out)

	st := openTestStore(t, dbPath)
	ctx := context.Background()

	sess, err := st.ReadSession(ctx, "session-1")
	require.NoError(t, err)
	assert.Equal(t, "eval", sess.Label)
	assert.Equal(t, "int", sess.Scalar)
	assert.Nil(t, sess.Pass)

	evals, err := st.ReadEvaluations(ctx, "session-1")
	require.NoError(t, err)
	require.Len(t, evals, 1)
	assert.Equal(t, "add", evals[0].Op)
	assert.Equal(t,
		`{"op":"add","operands":[{"denominator":"2","numerator":"1"},{"denominator":"3","numerator":"1"}],"result":{"denominator":"6","numerator":"5"},"seq":1}`,
		evals[0].Record)
}

func TestEvalCommand_AppendsToSession(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "history.db")

	for _, args := range [][]string{
		{"new", "1", "2"},
		{"mul", "1", "2", "2", "3"},
		{"equal", "2", "6", "1", "3"},
	} {
		cmd := NewEvalCommand(&RootOptions{Format: "json"})
		out, err := execute(t, cmd, append([]string{"--db", dbPath, "--session", "demo"}, args...)...)
		require.NoError(t, err)

		var resp CLIResponse
		require.NoError(t, json.Unmarshal([]byte(out), &resp))
		assert.Equal(t, "demo", resp.Session)
	}

	st := openTestStore(t, dbPath)
	evals, err := st.ReadEvaluations(context.Background(), "demo")
	require.NoError(t, err)
	require.Len(t, evals, 3)
	for i, op := range []string{"new", "mul", "equal"} {
		assert.Equal(t, int64(i+1), evals[i].Seq)
		assert.Equal(t, op, evals[i].Op)
	}
}

func TestEvalCommand_SessionScalarMismatch(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "history.db")

	_, err := execute(t, NewEvalCommand(&RootOptions{Format: "text"}),
		"--db", dbPath, "--session", "demo", "from", "1")
	require.NoError(t, err)

	_, err = execute(t, NewEvalCommand(&RootOptions{Format: "text"}),
		"--scalar", "float", "--db", dbPath, "--session", "demo", "from", "1.5")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `uses scalar "int"`)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestEvalCommand_FlagsAfterOpAreOperands(t *testing.T) {
	cmd := NewEvalCommand(&RootOptions{Format: "text"})
	_, err := execute(t, cmd, "from", "1", "--scalar", "float")
	require.Error(t, err)
	assert.ErrorIs(t, err, harness.ErrOperandArity)
}

func TestBuildStep(t *testing.T) {
	step, err := buildStep("div", []string{"1", "2", "3", "4"})
	require.NoError(t, err)
	assert.Equal(t, harness.Pair{"1", "2"}, step.Left)
	assert.Equal(t, harness.Pair{"3", "4"}, step.Right)

	step, err = buildStep("doubles", []string{""})
	require.NoError(t, err)
	require.NotNil(t, step.Text)
	assert.Equal(t, "", *step.Text)

	step, err = buildStep("from", []string{"9"})
	require.NoError(t, err)
	assert.Equal(t, "9", step.Value)
	assert.Nil(t, step.Left)
}

package harness

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunWithGolden_Integer(t *testing.T) {
	scenario := &Scenario{
		Name:        "golden_add",
		Description: "integer trace snapshot",
		Steps: []Step{
			{Op: OpAdd, Left: Pair{"1", "1"}, Right: Pair{"2", "2"}, Expect: Pair{"2", "1"}},
			{Op: OpDoubles, Text: ptr("aabbcc"), ExpectCount: ptr(uint64(3))},
			{Op: OpEqual, Left: Pair{"1", "1"}, Right: Pair{"2", "2"}, ExpectEqual: ptr(true)},
		},
	}

	result, err := RunWithGolden(t, scenario)
	require.NoError(t, err)
	assert.True(t, result.Pass)
}

func TestRunWithGolden_Float(t *testing.T) {
	scenario := &Scenario{
		Name:        "golden_float",
		Description: "float trace snapshot",
		Scalar:      ScalarFloat,
		Steps: []Step{
			{Op: OpFrom, Value: "0.5"},
			{Op: OpDiv, Left: Pair{"1", "4"}, Right: Pair{"1", "2"}, Expect: Pair{"1", "2"}},
		},
	}

	result, err := RunWithGolden(t, scenario)
	require.NoError(t, err)
	assert.True(t, result.Pass)
}

func TestSnapshot_Deterministic(t *testing.T) {
	scenario := &Scenario{
		Name:        "deterministic",
		Description: "two runs produce identical bytes",
		Steps: []Step{
			{Op: OpSub, Left: Pair{"4", "2"}, Right: Pair{"1", "1"}},
			{Op: OpDoubles, Text: ptr("éé")},
		},
	}

	r1, err := Run(context.Background(), scenario)
	require.NoError(t, err)
	r2, err := Run(context.Background(), scenario)
	require.NoError(t, err)

	s1, err := Snapshot(scenario, r1)
	require.NoError(t, err)
	s2, err := Snapshot(scenario, r2)
	require.NoError(t, err)
	assert.Equal(t, s1, s2)

	h1, err := TraceHash(scenario, r1)
	require.NoError(t, err)
	h2, err := TraceHash(scenario, r2)
	require.NoError(t, err)
	assert.Equal(t, h1, h2)
}

func TestTraceHash_ChangesWithTrace(t *testing.T) {
	a := &Scenario{Name: "h", Description: "h", Steps: []Step{{Op: OpNew, Left: Pair{"1", "2"}}}}
	b := &Scenario{Name: "h", Description: "h", Steps: []Step{{Op: OpNew, Left: Pair{"2", "4"}}}}

	ra, err := Run(context.Background(), a)
	require.NoError(t, err)
	rb, err := Run(context.Background(), b)
	require.NoError(t, err)

	ha, err := TraceHash(a, ra)
	require.NoError(t, err)
	hb, err := TraceHash(b, rb)
	require.NoError(t, err)
	assert.NotEqual(t, ha, hb)
}

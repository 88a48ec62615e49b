package harness

import (
	"context"
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/roach88/precisemath/internal/canonical"
)

// Snapshot renders a run as canonical JSON. Identical scenarios produce
// byte-identical snapshots, which is what golden files store.
func Snapshot(scenario *Scenario, result *Result) ([]byte, error) {
	trace := make([]any, len(result.Trace))
	for i, event := range result.Trace {
		trace[i] = event.Canonical()
	}
	scalar := scenario.Scalar
	if scalar == "" {
		scalar = ScalarInt
	}
	return canonical.Marshal(map[string]any{
		"scenario_name": scenario.Name,
		"scalar":        scalar,
		"trace":         trace,
	})
}

// TraceHash returns the content hash of a run's snapshot.
func TraceHash(scenario *Scenario, result *Result) (string, error) {
	data, err := Snapshot(scenario, result)
	if err != nil {
		return "", err
	}
	return canonical.HashBytes(canonical.DomainTrace, data), nil
}

// RunWithGolden executes a scenario and compares its snapshot against
// testdata/golden/{scenario.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
func RunWithGolden(t *testing.T, scenario *Scenario) (*Result, error) {
	t.Helper()

	result, err := Run(context.Background(), scenario)
	if err != nil {
		return nil, err
	}
	if err := AssertGolden(t, scenario, result); err != nil {
		return nil, err
	}
	return result, nil
}

// AssertGolden compares an existing result against its golden file.
func AssertGolden(t *testing.T, scenario *Scenario, result *Result) error {
	t.Helper()

	data, err := Snapshot(scenario, result)
	if err != nil {
		return err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenario.Name, data)

	return nil
}

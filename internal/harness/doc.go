// Package harness runs conformance scenarios against the fraction and
// doubles packages.
//
// # Scenario Format
//
// Scenarios are YAML (.yaml, .yml) or CUE (.cue) files:
//
//	name: integer_addition
//	description: "Addition keeps the unreduced product denominator"
//	scalar: int            # int (int64) or float (float64); default int
//	steps:
//	  - op: add
//	    left: [1, 1]
//	    right: [2, 2]
//	    expect: [2, 1]        # compared with fraction.Equal
//	    expect_exact: [4, 2]  # compared field by field
//	  - op: equal
//	    left: [1, 1]
//	    right: [2, 2]
//	    expect_equal: true
//	  - op: from
//	    value: 3
//	    expect: [6, 2]
//	  - op: doubles
//	    text: aabbcc
//	    expect_count: 3
//	assertions:
//	  - type: trace_count
//	    op: add
//	    count: 1
//
// CUE scenarios use the same field names and are evaluated to concrete JSON
// before decoding, so they may use CUE definitions and references.
//
// # Assertion Types
//
//   - trace_contains: an op appears in the trace
//   - trace_order: ops appear in the given relative order
//   - trace_count: an op appears exactly N times
//
// # Deterministic Testing
//
// Every step gets a logical sequence number from a Clock that starts at 1
// for each run. Scalars are rendered as decimal strings, so the canonical
// snapshot of a run is byte-identical across machines and suitable for
// golden file comparison.
//
// # Usage
//
//	scenario, err := harness.LoadScenario("testdata/scenarios/addition.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	result, err := harness.Run(ctx, scenario)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, msg := range result.Errors {
//	    log.Println(msg)
//	}
package harness

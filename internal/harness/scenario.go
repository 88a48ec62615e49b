package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"gopkg.in/yaml.v3"
)

// Scalar kinds a scenario can run over.
const (
	ScalarInt   = "int"
	ScalarFloat = "float"
)

// Step ops.
const (
	OpNew     = "new"
	OpFrom    = "from"
	OpEqual   = "equal"
	OpAdd     = "add"
	OpSub     = "sub"
	OpMul     = "mul"
	OpDiv     = "div"
	OpDoubles = "doubles"
)

// Ops lists every supported step op.
var Ops = []string{OpNew, OpFrom, OpEqual, OpAdd, OpSub, OpMul, OpDiv, OpDoubles}

// Assertion type constants.
const (
	AssertTraceContains = "trace_contains"
	AssertTraceOrder    = "trace_order"
	AssertTraceCount    = "trace_count"
)

// Scenario is a sequence of fraction operations with expected outcomes.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Scalar selects the numeric type: "int" (int64) or "float" (float64).
	// Empty means "int".
	Scalar string `yaml:"scalar,omitempty"`

	// Steps are evaluated in order.
	Steps []Step `yaml:"steps"`

	// Assertions validate the trace after all steps have run.
	Assertions []Assertion `yaml:"assertions,omitempty"`
}

// Pair is a [numerator, denominator] literal. Numbers and quoted strings
// are both accepted and parsed according to the scenario's scalar kind.
type Pair []string

// Step is a single operation.
type Step struct {
	Op string `yaml:"op"`

	// Left and Right are the operands of new, equal and the arithmetic ops.
	// new uses Left only.
	Left  Pair `yaml:"left,omitempty"`
	Right Pair `yaml:"right,omitempty"`

	// Value is the scalar converted by from.
	Value string `yaml:"value,omitempty"`

	// Text is the input of doubles. A pointer so that "" is expressible.
	Text *string `yaml:"text,omitempty"`

	// Expect is compared with fraction equality, so [2, 1] matches 4/2.
	Expect Pair `yaml:"expect,omitempty"`

	// ExpectExact is compared field by field, so [2, 1] does not match 4/2.
	ExpectExact Pair `yaml:"expect_exact,omitempty"`

	// ExpectEqual is the expected result of equal.
	ExpectEqual *bool `yaml:"expect_equal,omitempty"`

	// ExpectCount is the expected result of doubles.
	ExpectCount *uint64 `yaml:"expect_count,omitempty"`
}

// Assertion validates the trace.
type Assertion struct {
	// Type is one of trace_contains, trace_order, trace_count.
	Type string `yaml:"type"`

	// Op is the step op (trace_contains, trace_count).
	Op string `yaml:"op,omitempty"`

	// Count is the expected number of occurrences (trace_count).
	Count int `yaml:"count,omitempty"`

	// Ops is the expected relative order (trace_order).
	Ops []string `yaml:"ops,omitempty"`
}

// LoadScenario reads a scenario file. The format is chosen by extension:
// .yaml and .yml are decoded directly, .cue is evaluated first.
// Unknown fields are rejected so typos fail loudly.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
	case ".cue":
		data, err = evaluateCUE(path, data)
		if err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported scenario extension %q", ext)
	}

	return ParseScenario(data)
}

// ParseScenario decodes and validates YAML (or JSON) scenario data.
func ParseScenario(data []byte) (*Scenario, error) {
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse scenario: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// IsScenarioFile reports whether path has a scenario extension.
func IsScenarioFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml", ".cue":
		return true
	}
	return false
}

// evaluateCUE compiles a CUE scenario and exports it as JSON, which the
// YAML decoder accepts unchanged.
func evaluateCUE(path string, data []byte) ([]byte, error) {
	ctx := cuecontext.New()
	v := ctx.CompileBytes(data, cue.Filename(path))
	if err := v.Err(); err != nil {
		return nil, fmt.Errorf("failed to compile CUE: %s", cueerrors.Details(err, nil))
	}
	if err := v.Validate(cue.Concrete(true)); err != nil {
		return nil, fmt.Errorf("CUE scenario is not concrete: %s", cueerrors.Details(err, nil))
	}
	out, err := v.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("failed to export CUE: %w", err)
	}
	return out, nil
}

// validateScenario checks required fields and fills defaults.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	switch s.Scalar {
	case "":
		s.Scalar = ScalarInt
	case ScalarInt, ScalarFloat:
	default:
		return fmt.Errorf("%w %q: must be %q or %q", ErrUnknownScalar, s.Scalar, ScalarInt, ScalarFloat)
	}

	if len(s.Steps) == 0 {
		return fmt.Errorf("steps list is required and must be non-empty")
	}

	for i := range s.Steps {
		if err := validateStep(&s.Steps[i]); err != nil {
			return fmt.Errorf("steps[%d]: %w", i, err)
		}
	}

	for i, a := range s.Assertions {
		if err := validateAssertion(a); err != nil {
			return fmt.Errorf("assertions[%d]: %w", i, err)
		}
	}

	return nil
}

// validateStep checks that a step carries exactly the operands and
// expectations its op uses.
func validateStep(st *Step) error {
	pairs := []struct {
		name string
		p    Pair
	}{
		{"left", st.Left},
		{"right", st.Right},
		{"expect", st.Expect},
		{"expect_exact", st.ExpectExact},
	}
	for _, f := range pairs {
		if f.p != nil && len(f.p) != 2 {
			return fmt.Errorf("%s must be a [numerator, denominator] pair, got %d values", f.name, len(f.p))
		}
	}

	hasFraction := st.Expect != nil || st.ExpectExact != nil

	switch st.Op {
	case "":
		return fmt.Errorf("op is required")
	case OpNew:
		if st.Left == nil || st.Right != nil || st.Value != "" || st.Text != nil {
			return fmt.Errorf("%w %s: needs left only", ErrOperandArity, st.Op)
		}
		if st.ExpectEqual != nil || st.ExpectCount != nil {
			return fmt.Errorf("%s produces a fraction: use expect or expect_exact", st.Op)
		}
	case OpFrom:
		if st.Value == "" || st.Left != nil || st.Right != nil || st.Text != nil {
			return fmt.Errorf("%w %s: needs value only", ErrOperandArity, st.Op)
		}
		if st.ExpectEqual != nil || st.ExpectCount != nil {
			return fmt.Errorf("%s produces a fraction: use expect or expect_exact", st.Op)
		}
	case OpEqual:
		if st.Left == nil || st.Right == nil || st.Value != "" || st.Text != nil {
			return fmt.Errorf("%w %s: needs left and right", ErrOperandArity, st.Op)
		}
		if hasFraction || st.ExpectCount != nil {
			return fmt.Errorf("%s produces a bool: use expect_equal", st.Op)
		}
	case OpAdd, OpSub, OpMul, OpDiv:
		if st.Left == nil || st.Right == nil || st.Value != "" || st.Text != nil {
			return fmt.Errorf("%w %s: needs left and right", ErrOperandArity, st.Op)
		}
		if st.ExpectEqual != nil || st.ExpectCount != nil {
			return fmt.Errorf("%s produces a fraction: use expect or expect_exact", st.Op)
		}
	case OpDoubles:
		if st.Text == nil || st.Left != nil || st.Right != nil || st.Value != "" {
			return fmt.Errorf("%w %s: needs text only", ErrOperandArity, st.Op)
		}
		if hasFraction || st.ExpectEqual != nil {
			return fmt.Errorf("%s produces a count: use expect_count", st.Op)
		}
	default:
		return fmt.Errorf("%w %q", ErrUnknownOp, st.Op)
	}

	return nil
}

// validateAssertion validates a single assertion based on its type.
func validateAssertion(a Assertion) error {
	switch a.Type {
	case "":
		return fmt.Errorf("type is required")
	case AssertTraceContains:
		if a.Op == "" {
			return fmt.Errorf("op is required for trace_contains")
		}
	case AssertTraceOrder:
		if len(a.Ops) == 0 {
			return fmt.Errorf("ops list is required for trace_order")
		}
	case AssertTraceCount:
		if a.Op == "" {
			return fmt.Errorf("op is required for trace_count")
		}
		if a.Count < 0 {
			return fmt.Errorf("count must be non-negative for trace_count")
		}
	default:
		return fmt.Errorf("unknown assertion type %q", a.Type)
	}
	return nil
}

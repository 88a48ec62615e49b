package harness

import (
	"fmt"

	"github.com/roach88/precisemath/fraction"
)

// DefaultGrid is the set of numerators and denominators CheckProperties
// combines when the caller has no preference. Products of four entries stay
// exact in both int64 and float64.
var DefaultGrid = []int64{-7, -3, -1, 0, 1, 2, 5, 12}

// maxFailuresPerProperty bounds the report size for badly broken scalars.
const maxFailuresPerProperty = 10

// PropertyResult is the outcome of one algebraic law over a grid.
type PropertyResult struct {
	Name     string   `json:"name"`
	Checked  int      `json:"checked"`
	Failures []string `json:"failures,omitempty"`
}

// Pass reports whether the property held for every case.
func (p PropertyResult) Pass() bool {
	return len(p.Failures) == 0
}

// CheckProperties verifies the fraction laws over every fraction n/d with
// n, d from values and d non-zero:
//
//   - equality under scaling: (n·k)/(d·k) == n/d for k != 0
//   - commutativity of + and ×
//   - x + from(0) == x and x × from(1) == x
//   - (x × y) ÷ y == x for y with a non-zero numerator
func CheckProperties(scalar string, values []int64) ([]PropertyResult, error) {
	switch scalar {
	case ScalarInt, "":
		return checkProperties(intCodec, values), nil
	case ScalarFloat:
		return checkProperties(floatCodec, values), nil
	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownScalar, scalar)
	}
}

type propertyRecorder struct {
	result PropertyResult
}

func (r *propertyRecorder) check(ok bool, format string, args ...any) {
	r.result.Checked++
	if !ok && len(r.result.Failures) < maxFailuresPerProperty {
		r.result.Failures = append(r.result.Failures, fmt.Sprintf(format, args...))
	}
}

func checkProperties[N fraction.Number](c codec[N], values []int64) []PropertyResult {
	var grid []frac[N]
	var factors []N
	for _, n := range values {
		if n != 0 {
			factors = append(factors, N(n))
		}
		for _, d := range values {
			if d != 0 {
				grid = append(grid, fraction.Of(N(n), N(d)))
			}
		}
	}

	zero := fraction.FromNumber(N(0))
	one := fraction.FromNumber(N(1))

	scaling := &propertyRecorder{result: PropertyResult{Name: "equality_under_scaling"}}
	addComm := &propertyRecorder{result: PropertyResult{Name: "addition_commutes"}}
	mulComm := &propertyRecorder{result: PropertyResult{Name: "multiplication_commutes"}}
	addID := &propertyRecorder{result: PropertyResult{Name: "additive_identity"}}
	mulID := &propertyRecorder{result: PropertyResult{Name: "multiplicative_identity"}}
	divInv := &propertyRecorder{result: PropertyResult{Name: "division_inverts_multiplication"}}

	for _, x := range grid {
		n, d := fraction.Numbers(x)
		for _, k := range factors {
			scaling.check(fraction.Equal(fraction.Of(n*k, d*k), x), "x=%s k=%s", c.pair(x), c.format(k))
		}

		addID.check(fraction.Equal(fraction.Add(x, zero), x), "x=%s", c.pair(x))
		mulID.check(fraction.Equal(fraction.Mul(x, one), x), "x=%s", c.pair(x))

		for _, y := range grid {
			addComm.check(fraction.Equal(fraction.Add(x, y), fraction.Add(y, x)), "x=%s y=%s", c.pair(x), c.pair(y))
			mulComm.check(fraction.Equal(fraction.Mul(x, y), fraction.Mul(y, x)), "x=%s y=%s", c.pair(x), c.pair(y))
			if yn, _ := fraction.Numbers(y); yn != 0 {
				divInv.check(fraction.Equal(fraction.Div(fraction.Mul(x, y), y), x), "x=%s y=%s", c.pair(x), c.pair(y))
			}
		}
	}

	return []PropertyResult{
		scaling.result,
		addComm.result,
		mulComm.result,
		addID.result,
		mulID.result,
		divInv.result,
	}
}

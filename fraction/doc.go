// Package fraction provides an exact ratio of two scalars.
//
// A Fraction holds a numerator and a denominator of the same scalar type and
// never divides them. Operations are package-level generic functions, each
// constrained only by the capabilities it needs:
//
//	Equal        Mul + Equal
//	Add          Add + Mul
//	Sub          Sub + Mul
//	Mul, Div     Mul (MulAs/DivAs allow the product to change type)
//	From         One
//
// Built-in numbers are adapted through Scalar, so fractions over int64 or
// float64 need no extra code:
//
//	a := fraction.Of[int64](1, 2)
//	b := fraction.FromNumber[int64](3)
//	fraction.Equal(fraction.Add(a, b), fraction.Of[int64](7, 2)) // true
//
// # Canonical form
//
// Fractions are never reduced. 2/2 and 1/1 are distinct values that compare
// equal, because Equal tests a·d == b·c. Repeated arithmetic grows the
// numerator and denominator; over fixed-width integers this can overflow.
//
// # Zero denominators
//
// Construction is permissive: any denominator is accepted, including zero.
// No arithmetic operation divides, so a zero denominator never panics
// here. It shows up only through the scalar type itself, for example as
// NaN or Inf once a float fraction is converted with Float64. Callers that
// need to reject such values must do so at their own boundary.
//
// # Concurrency
//
// Fractions are plain values. Every operation returns a new Fraction and
// leaves its operands untouched, so values can be shared freely between
// goroutines.
package fraction

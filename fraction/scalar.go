package fraction

// Number is the set of built-in numeric kinds Scalar can wrap.
type Number interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr |
		~float32 | ~float64
}

// Scalar adapts a built-in number to the capability constraints.
// Arithmetic follows Go semantics: integers wrap on overflow and floats
// round, produce Inf, or produce NaN.
type Scalar[N Number] struct {
	v N
}

// S wraps n.
func S[N Number](n N) Scalar[N] {
	return Scalar[N]{v: n}
}

// Value returns the wrapped number.
func (s Scalar[N]) Value() N { return s.v }

// One, Add, Sub, Mul and Equal make Scalar a Field.
func (s Scalar[N]) One() Scalar[N] { return Scalar[N]{v: 1} }
func (s Scalar[N]) Add(o Scalar[N]) Scalar[N] { return Scalar[N]{v: s.v + o.v} }
func (s Scalar[N]) Sub(o Scalar[N]) Scalar[N] { return Scalar[N]{v: s.v - o.v} }
func (s Scalar[N]) Mul(o Scalar[N]) Scalar[N] { return Scalar[N]{v: s.v * o.v} }
func (s Scalar[N]) Equal(o Scalar[N]) bool { return s.v == o.v }

// Of builds n/d over built-in numbers.
func Of[N Number](n, d N) Fraction[Scalar[N]] {
	return New(S(n), S(d))
}

// FromNumber builds v/1 over built-in numbers.
func FromNumber[N Number](v N) Fraction[Scalar[N]] {
	return From(S(v))
}

// Numbers unwraps a built-in fraction.
func Numbers[N Number](f Fraction[Scalar[N]]) (numerator, denominator N) {
	return f.Numerator.v, f.Denominator.v
}

// Float64 evaluates the ratio as a float64. This is the only place the
// package divides; a zero denominator gives ±Inf or NaN.
func Float64[N Number](f Fraction[Scalar[N]]) float64 {
	return float64(f.Numerator.v) / float64(f.Denominator.v)
}

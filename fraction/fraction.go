package fraction

// Fraction is the ratio Numerator / Denominator.
type Fraction[T any] struct {
	Numerator   T
	Denominator T
}

// New stores the pair verbatim. The denominator is not checked.
func New[T any](numerator, denominator T) Fraction[T] {
	return Fraction[T]{Numerator: numerator, Denominator: denominator}
}

// From returns value / 1.
func From[T Unital[T]](value T) Fraction[T] {
	return Fraction[T]{Numerator: value, Denominator: value.One()}
}

// Parts returns the numerator and denominator.
func (f Fraction[T]) Parts() (numerator, denominator T) {
	return f.Numerator, f.Denominator
}

// Equal reports whether a and b denote the same ratio, using a.n·b.d == a.d·b.n.
//
// Over floats the products are rounded, so equality is only as exact as the
// scalar multiplication.
func Equal[T Equatable[T]](a, b Fraction[T]) bool {
	return a.Numerator.Mul(b.Denominator).Equal(a.Denominator.Mul(b.Numerator))
}

// Add returns (a.n·b.d + b.n·a.d) / (a.d·b.d).
func Add[T Additive[T]](a, b Fraction[T]) Fraction[T] {
	return Fraction[T]{
		Numerator:   a.Numerator.Mul(b.Denominator).Add(b.Numerator.Mul(a.Denominator)),
		Denominator: a.Denominator.Mul(b.Denominator),
	}
}

// Sub returns (a.n·b.d - b.n·a.d) / (a.d·b.d).
func Sub[T Subtractive[T]](a, b Fraction[T]) Fraction[T] {
	return Fraction[T]{
		Numerator:   a.Numerator.Mul(b.Denominator).Sub(b.Numerator.Mul(a.Denominator)),
		Denominator: a.Denominator.Mul(b.Denominator),
	}
}

// MulAs returns (a.n·b.n) / (a.d·b.d) in the product type U.
//
// U is named explicitly and T is inferred:
//
//	area := fraction.MulAs[Area](width, height)
func MulAs[U any, T Product[T, U]](a, b Fraction[T]) Fraction[U] {
	return Fraction[U]{
		Numerator:   a.Numerator.Mul(b.Numerator),
		Denominator: a.Denominator.Mul(b.Denominator),
	}
}

// DivAs returns (a.n·b.d) / (a.d·b.n) in the product type U.
// A zero numerator in b yields a zero denominator.
func DivAs[U any, T Product[T, U]](a, b Fraction[T]) Fraction[U] {
	return Fraction[U]{
		Numerator:   a.Numerator.Mul(b.Denominator),
		Denominator: a.Denominator.Mul(b.Numerator),
	}
}

// Mul is MulAs where the product keeps the operand type.
func Mul[T Product[T, T]](a, b Fraction[T]) Fraction[T] {
	return MulAs[T](a, b)
}

// Div is DivAs where the product keeps the operand type.
func Div[T Product[T, T]](a, b Fraction[T]) Fraction[T] {
	return DivAs[T](a, b)
}

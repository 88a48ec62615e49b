package fraction

// Unital is implemented by scalars with a multiplicative identity.
// One must not depend on the receiver's value.
type Unital[T any] interface {
	One() T
}

// Product is implemented by scalars whose product with a T is a U.
// For most scalars U is T; unit-carrying quantities may differ
// (length × length = area).
type Product[T, U any] interface {
	Mul(T) U
}

// Equatable is what Equal needs.
type Equatable[T any] interface {
	Product[T, T]
	Equal(T) bool
}

// Additive is what Add needs.
type Additive[T any] interface {
	Product[T, T]
	Add(T) T
}

// Subtractive is what Sub needs.
type Subtractive[T any] interface {
	Product[T, T]
	Sub(T) T
}

// Field collects every capability used by this package with a closed
// multiplication. Scalar satisfies it for all built-in numbers.
type Field[T any] interface {
	Unital[T]
	Equatable[T]
	Add(T) T
	Sub(T) T
}

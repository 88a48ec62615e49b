package harness

import "errors"

var (
	// ErrUnknownOp is returned for a step op the harness does not implement.
	ErrUnknownOp = errors.New("unknown op")

	// ErrUnknownScalar is returned for a scalar kind other than int or float.
	ErrUnknownScalar = errors.New("unknown scalar")

	// ErrOperandArity is returned when a step has missing or extra operands.
	ErrOperandArity = errors.New("wrong operands for op")

	// ErrBadScalar is returned when an operand cannot be parsed as the
	// scenario's scalar kind.
	ErrBadScalar = errors.New("invalid scalar value")
)

package simvalue

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupported indicates the operation is not defined for the kind (or
	// the pair of kinds) of its operands.
	ErrUnsupported = errors.New("operation not supported")
	// ErrIncomparableTypes indicates the operands' types are incomparable and
	// their least upper bound cannot represent both of them.
	ErrIncomparableTypes = errors.New("incomparable types")
	// ErrDimensionMismatch indicates array lengths or matrix shapes that cannot
	// be combined.
	ErrDimensionMismatch = errors.New("dimension mismatch")
	// ErrUnitMismatch indicates scalar operands with different physical units.
	ErrUnitMismatch = errors.New("unit mismatch")
	// ErrConversion indicates a value cannot be converted to the requested type.
	ErrConversion = errors.New("conversion failed")
	// ErrPrecisionMismatch indicates fixed-point operands with different bit
	// layouts.
	ErrPrecisionMismatch = errors.New("precision mismatch")
	// ErrParse indicates the textual form of a value could not be parsed.
	ErrParse = errors.New("parse failed")
	// ErrDivideByZero indicates an integer or fixed-point division by zero.
	ErrDivideByZero = errors.New("division by zero")
	// ErrIndexOutOfRange indicates an array index or matrix region outside the
	// bounds of its container.
	ErrIndexOutOfRange = errors.New("index out of range")
)

// OperationError reports a failed binary operation together with both of its
// original operands, i.e. before any type conversion took place.
type OperationError struct {
	Op    string
	Left  Value
	Right Value
	Err   error
}

func (e *OperationError) Error() string {
	return fmt.Sprintf("%s %s and %s: %v", e.Op, describe(e.Left), describe(e.Right), e.Err)
}

func (e *OperationError) Unwrap() error { return e.Err }

// describe formats v along with its type, e.g. "3 (int)".
func describe(v Value) string {
	if v == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%s (%s)", v, v.Type())
}

func unitMismatch(a, b UnitVector) error {
	return fmt.Errorf("%w: %s and %s", ErrUnitMismatch, a, b)
}

func conversionError(t Type, v Value) error {
	return fmt.Errorf("%w: %s to %s", ErrConversion, describe(v), t)
}

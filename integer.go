package simvalue

import (
	"fmt"
	"math"
	"strconv"
)

type integer interface {
	int16 | int32 | int64
}

// Integer is a signed integer scalar of 16, 32 or 64 bits. Arithmetic wraps
// around on overflow.
type Integer[T integer] struct {
	scalar
	v T
}

type (
	// Short is a 16-bit integer; its textual form carries an "s" suffix.
	Short = Integer[int16]
	// Int is a 32-bit integer.
	Int = Integer[int32]
	// Long is a 64-bit integer; its textual form carries an "L" suffix.
	Long = Integer[int64]
)

// NewShort returns a unitless 16-bit integer.
func NewShort(v int16) Short { return Short{v: v} }

// NewInt returns a unitless 32-bit integer.
func NewInt(v int32) Int { return Int{v: v} }

// NewLong returns a unitless 64-bit integer.
func NewLong(v int64) Long { return Long{v: v} }

// WithUnits returns a copy of x in the given units.
func (x Integer[T]) WithUnits(units UnitVector) Integer[T] {
	x.units = units.clone()
	return x
}

// Value returns the integer.
func (x Integer[T]) Value() T { return x.v }

// Float64 returns the integer as a float64.
func (x Integer[T]) Float64() float64 { return float64(x.v) }

func (x Integer[T]) Type() Type {
	switch any(x.v).(type) {
	case int16:
		return ShortType
	case int32:
		return IntType
	}
	return LongType
}

func (x Integer[T]) String() string {
	s := strconv.FormatInt(int64(x.v), 10)
	switch any(x.v).(type) {
	case int16:
		s += "s"
	case int64:
		s += "L"
	}
	return x.format(s)
}

func (x Integer[T]) add(v Value) (Value, error) {
	y := v.(Integer[T])
	s, err := x.sameUnits(y.scalar)
	if err != nil {
		return nil, err
	}
	return Integer[T]{scalar: s, v: x.v + y.v}, nil
}

func (x Integer[T]) subtract(v Value) (Value, error) {
	y := v.(Integer[T])
	s, err := x.sameUnits(y.scalar)
	if err != nil {
		return nil, err
	}
	return Integer[T]{scalar: s, v: x.v - y.v}, nil
}

func (x Integer[T]) multiply(v Value) (Value, error) {
	y := v.(Integer[T])
	return Integer[T]{scalar: x.productUnits(y.scalar), v: x.v * y.v}, nil
}

func (x Integer[T]) divide(v Value) (Value, error) {
	y := v.(Integer[T])
	if y.v == 0 {
		return nil, ErrDivideByZero
	}
	return Integer[T]{scalar: x.quotientUnits(y.scalar), v: x.v / y.v}, nil
}

func (x Integer[T]) modulo(v Value) (Value, error) {
	y := v.(Integer[T])
	s, err := x.sameUnits(y.scalar)
	if err != nil {
		return nil, err
	}
	if y.v == 0 {
		return nil, ErrDivideByZero
	}
	return Integer[T]{scalar: s, v: x.v % y.v}, nil
}

func (x Integer[T]) isEqualTo(v Value) (bool, error) {
	y := v.(Integer[T])
	return x.units.Equal(y.units) && x.v == y.v, nil
}

func (x Integer[T]) isCloseTo(v Value, epsilon float64) (bool, error) {
	y := v.(Integer[T])
	if !x.units.Equal(y.units) {
		return false, unitMismatch(x.units, y.units)
	}
	return math.Abs(float64(x.v)-float64(y.v)) <= epsilon, nil
}

func (x Integer[T]) isLessThan(v Value) (bool, error) {
	y := v.(Integer[T])
	if !x.units.Equal(y.units) {
		return false, unitMismatch(x.units, y.units)
	}
	return x.v < y.v, nil
}

func (x Integer[T]) zero() Value { return Integer[T]{scalar: x.scalar} }
func (x Integer[T]) one() Value  { return Integer[T]{v: 1} }

// integerValue extracts the integer held by one of the integer kinds.
func integerValue(v Value) (int64, error) {
	switch x := v.(type) {
	case Short:
		return int64(x.v), nil
	case Int:
		return int64(x.v), nil
	case Long:
		return x.v, nil
	}
	return 0, fmt.Errorf("%w: %s is not an integer", ErrConversion, describe(v))
}

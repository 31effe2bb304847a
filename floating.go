package simvalue

import "math"

type floating interface {
	float32 | float64
}

// Floating is an IEEE 754 floating point scalar. Division by zero follows
// IEEE semantics and yields an infinity or NaN.
type Floating[T floating] struct {
	scalar
	v T
}

type (
	// Float is a 32-bit floating point number; its textual form carries an "f"
	// suffix.
	Float = Floating[float32]
	// Double is a 64-bit floating point number.
	Double = Floating[float64]
)

// NewFloat returns a unitless 32-bit floating point number.
func NewFloat(v float32) Float { return Float{v: v} }

// NewDouble returns a unitless 64-bit floating point number.
func NewDouble(v float64) Double { return Double{v: v} }

// WithUnits returns a copy of x in the given units.
func (x Floating[T]) WithUnits(units UnitVector) Floating[T] {
	x.units = units.clone()
	return x
}

// Value returns the number.
func (x Floating[T]) Value() T { return x.v }

// Float64 returns the number as a float64.
func (x Floating[T]) Float64() float64 { return float64(x.v) }

func (x Floating[T]) Type() Type {
	if _, ok := any(x.v).(float32); ok {
		return FloatType
	}
	return DoubleType
}

func (x Floating[T]) String() string {
	if _, ok := any(x.v).(float32); ok {
		return x.format(formatFloat(float64(x.v), 32) + "f")
	}
	return x.format(formatFloat(float64(x.v), 64))
}

func (x Floating[T]) add(v Value) (Value, error) {
	y := v.(Floating[T])
	s, err := x.sameUnits(y.scalar)
	if err != nil {
		return nil, err
	}
	return Floating[T]{scalar: s, v: x.v + y.v}, nil
}

func (x Floating[T]) subtract(v Value) (Value, error) {
	y := v.(Floating[T])
	s, err := x.sameUnits(y.scalar)
	if err != nil {
		return nil, err
	}
	return Floating[T]{scalar: s, v: x.v - y.v}, nil
}

func (x Floating[T]) multiply(v Value) (Value, error) {
	y := v.(Floating[T])
	return Floating[T]{scalar: x.productUnits(y.scalar), v: x.v * y.v}, nil
}

func (x Floating[T]) divide(v Value) (Value, error) {
	y := v.(Floating[T])
	return Floating[T]{scalar: x.quotientUnits(y.scalar), v: x.v / y.v}, nil
}

func (x Floating[T]) modulo(v Value) (Value, error) {
	y := v.(Floating[T])
	s, err := x.sameUnits(y.scalar)
	if err != nil {
		return nil, err
	}
	return Floating[T]{scalar: s, v: T(math.Mod(float64(x.v), float64(y.v)))}, nil
}

func (x Floating[T]) isEqualTo(v Value) (bool, error) {
	y := v.(Floating[T])
	return x.units.Equal(y.units) && x.v == y.v, nil
}

func (x Floating[T]) isCloseTo(v Value, epsilon float64) (bool, error) {
	y := v.(Floating[T])
	if !x.units.Equal(y.units) {
		return false, unitMismatch(x.units, y.units)
	}
	return math.Abs(float64(x.v)-float64(y.v)) <= epsilon, nil
}

func (x Floating[T]) isLessThan(v Value) (bool, error) {
	y := v.(Floating[T])
	if !x.units.Equal(y.units) {
		return false, unitMismatch(x.units, y.units)
	}
	return x.v < y.v, nil
}

func (x Floating[T]) zero() Value { return Floating[T]{scalar: x.scalar} }
func (x Floating[T]) one() Value  { return Floating[T]{v: 1} }

package simvalue

import (
	"fmt"
	"math"
	"slices"
	"strings"
)

// Order limits the number of derivatives a Smooth value carries. Quantized
// state integrators usually configure it once per model; excess derivatives
// passed to Order.Smooth are discarded.
type Order int

// DefaultOrder is the Order used by NewSmooth.
const DefaultOrder Order = 3

// Smooth returns a value sampled at time t with the given derivatives,
// truncated to at most o of them. A nil time marks the value timeless: it is
// never extrapolated and adopts the time of whatever it is combined with.
func (o Order) Smooth(value float64, t SampleTime, derivatives ...float64) Smooth {
	n := min(len(derivatives), max(int(o), 0))
	var d []float64
	if n > 0 {
		d = slices.Clone(derivatives[:n])
	}
	return Smooth{v: value, t: t, d: d}
}

// NewSmooth is DefaultOrder.Smooth.
func NewSmooth(value float64, t SampleTime, derivatives ...float64) Smooth {
	return DefaultOrder.Smooth(value, t, derivatives...)
}

// Smooth is a double together with its time derivatives, sampled at a point
// in time. Arithmetic between Smooth values first extrapolates the earlier
// operand to the later time, then propagates derivatives by the sum, product
// and quotient rules.
//
// Comparisons (IsEqualTo, IsCloseTo and the orderings) only consider the
// values as sampled, ignoring derivatives and time.
type Smooth struct {
	scalar
	v float64
	t SampleTime
	// d[i] is the (i+1)-th derivative. It is never mutated once assigned, so
	// copies of a Smooth may share it.
	d []float64
}

// WithUnits returns a copy of x in the given units.
func (x Smooth) WithUnits(units UnitVector) Smooth {
	x.units = units.clone()
	return x
}

// Float64 returns the value as sampled.
func (x Smooth) Float64() float64 { return x.v }

// Time returns the sample time, or nil if x is timeless.
func (x Smooth) Time() SampleTime { return x.t }

// DerivativeValues returns a copy of the derivatives, first derivative first.
func (x Smooth) DerivativeValues() []float64 { return slices.Clone(x.d) }

// Order returns the number of derivatives x carries.
func (x Smooth) Order() int { return len(x.d) }

// Extrapolate returns x advanced to time t using its Taylor expansion. A
// timeless x is only stamped with t.
func (x Smooth) Extrapolate(t SampleTime) Smooth {
	if x.t == nil {
		x.t = t
		return x
	}
	if t == nil || t.Compare(x.t) == 0 {
		return x
	}
	x.v, x.d = taylorShift(x.v, x.d, t.Sub(x.t))
	x.t = t
	return x
}

func (x Smooth) Type() Type { return SmoothType }

// String formats x as "smooth(value, time, {d1, d2})", omitting the time of a
// timeless value.
func (x Smooth) String() string {
	var b strings.Builder
	b.WriteString("smooth(")
	b.WriteString(formatFloat(x.v, 64))
	if x.t != nil {
		fmt.Fprintf(&b, ", %v", x.t)
	}
	b.WriteString(", {")
	for i, d := range x.d {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(formatFloat(d, 64))
	}
	b.WriteString("})")
	return x.format(b.String())
}

func (x Smooth) add(v Value) (Value, error) {
	y := v.(Smooth)
	s, err := x.sameUnits(y.scalar)
	if err != nil {
		return nil, err
	}
	x, y = align(x, y)
	return Smooth{scalar: s, v: x.v + y.v, t: later(x, y), d: sumDerivatives(x.d, y.d, 1)}, nil
}

func (x Smooth) subtract(v Value) (Value, error) {
	y := v.(Smooth)
	s, err := x.sameUnits(y.scalar)
	if err != nil {
		return nil, err
	}
	x, y = align(x, y)
	return Smooth{scalar: s, v: x.v - y.v, t: later(x, y), d: sumDerivatives(x.d, y.d, -1)}, nil
}

func (x Smooth) multiply(v Value) (Value, error) {
	y := v.(Smooth)
	s := x.productUnits(y.scalar)
	x, y = align(x, y)
	return Smooth{scalar: s, v: x.v * y.v, t: later(x, y), d: productDerivatives(x.v, x.d, y.v, y.d)}, nil
}

func (x Smooth) divide(v Value) (Value, error) {
	y := v.(Smooth)
	s := x.quotientUnits(y.scalar)
	x, y = align(x, y)
	return Smooth{scalar: s, v: x.v / y.v, t: later(x, y), d: quotientDerivatives(x.v, x.d, y.v, y.d)}, nil
}

func (x Smooth) modulo(v Value) (Value, error) {
	y := v.(Smooth)
	s, err := x.sameUnits(y.scalar)
	if err != nil {
		return nil, err
	}
	x, y = align(x, y)
	r, d := moduloDerivatives(x.v, x.d, y.v, y.d)
	return Smooth{scalar: s, v: r, t: later(x, y), d: d}, nil
}

func (x Smooth) isEqualTo(v Value) (bool, error) {
	y := v.(Smooth)
	return x.units.Equal(y.units) && x.v == y.v, nil
}

func (x Smooth) isCloseTo(v Value, epsilon float64) (bool, error) {
	y := v.(Smooth)
	if !x.units.Equal(y.units) {
		return false, unitMismatch(x.units, y.units)
	}
	return math.Abs(x.v-y.v) <= epsilon, nil
}

func (x Smooth) isLessThan(v Value) (bool, error) {
	y := v.(Smooth)
	if !x.units.Equal(y.units) {
		return false, unitMismatch(x.units, y.units)
	}
	return x.v < y.v, nil
}

func (x Smooth) zero() Value { return Smooth{scalar: x.scalar, t: x.t} }
func (x Smooth) one() Value  { return Smooth{v: 1, t: x.t} }

// align extrapolates the earlier of x and y to the time of the later one. A
// timeless operand neither moves nor causes the other to move.
func align(x, y Smooth) (Smooth, Smooth) {
	if x.t == nil || y.t == nil {
		return x, y
	}
	switch c := x.t.Compare(y.t); {
	case c < 0:
		return x.Extrapolate(y.t), y
	case c > 0:
		return x, y.Extrapolate(x.t)
	}
	return x, y
}

// later returns the common time of two aligned operands.
func later(x, y Smooth) SampleTime {
	if x.t == nil {
		return y.t
	}
	return x.t
}

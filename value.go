package simvalue

// Value is the atomic unit of information exchanged by simulation components.
// Values are immutable; every operation returns a new Value (or an error)
// without modifying its operands.
//
// Type-assert values in order to access the concrete kind and its accessors
// (e.g. Int.Value, Smooth.DerivativeValues).
type Value interface {
	// Type returns the value's position in the type lattice.
	Type() Type
	// String returns the textual form of the value, suitable for parsing back
	// into an equal value.
	String() string

	// simvalue is a no-op method that seals the interface; only the kinds
	// defined by this package implement Value.
	simvalue()
}

// element implements Value's sealing method. Every kind embeds it; it takes up
// no memory.
type element struct{}

func (element) simvalue() {}

// UnitBearing is implemented by every scalar kind (integers, floating point,
// fixed point and Smooth). Arrays, matrices and booleans carry no units.
type UnitBearing interface {
	Value
	// Units returns a copy of the value's unit exponents.
	Units() UnitVector
}

// The capabilities below are the kind-specific primitives invoked by the
// dispatch protocol. The protocol guarantees that the argument has the exact
// same concrete type as the receiver.

type addable interface {
	add(Value) (Value, error)
	subtract(Value) (Value, error)
}

type multipliable interface {
	multiply(Value) (Value, error)
}

type divisible interface {
	divide(Value) (Value, error)
}

type modular interface {
	modulo(Value) (Value, error)
}

type equatable interface {
	isEqualTo(Value) (bool, error)
}

type approximable interface {
	isCloseTo(v Value, epsilon float64) (bool, error)
}

type ordered interface {
	isLessThan(Value) (bool, error)
}

type identities interface {
	zero() Value
	one() Value
}

// isScalar reports whether v is one of the unit-bearing numeric kinds.
func isScalar(v Value) bool {
	_, ok := v.(UnitBearing)
	return ok
}

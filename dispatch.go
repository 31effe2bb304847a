package simvalue

import "fmt"

// operation names an arithmetic operation of the dispatch protocol.
type operation uint8

const (
	opAdd operation = iota
	opSubtract
	opMultiply
	opDivide
	opModulo
)

var operationNames = [...]string{
	opAdd:      "add",
	opSubtract: "subtract",
	opMultiply: "multiply",
	opDivide:   "divide",
	opModulo:   "modulo",
}

func (op operation) String() string { return operationNames[op] }

// apply invokes the kind-specific primitive of op. Both operands have the same
// concrete type.
func (op operation) apply(a, b Value) (Value, error) {
	switch op {
	case opAdd:
		if x, ok := a.(addable); ok {
			return x.add(b)
		}
	case opSubtract:
		if x, ok := a.(addable); ok {
			return x.subtract(b)
		}
	case opMultiply:
		if x, ok := a.(multipliable); ok {
			return x.multiply(b)
		}
	case opDivide:
		if x, ok := a.(divisible); ok {
			return x.divide(b)
		}
	case opModulo:
		if x, ok := a.(modular); ok {
			return x.modulo(b)
		}
	}
	return nil, unsupported(op.String(), a.Type())
}

func unsupported(op string, t Type) error {
	return fmt.Errorf("%w: %s on %s", ErrUnsupported, op, t)
}

// Add returns a + b.
func Add(a, b Value) (Value, error) { return arithmetic(opAdd, a, b) }

// Subtract returns a - b.
func Subtract(a, b Value) (Value, error) { return arithmetic(opSubtract, a, b) }

// Multiply returns a × b. For two matrices this is the matrix product.
func Multiply(a, b Value) (Value, error) { return arithmetic(opMultiply, a, b) }

// Divide returns a / b. Integer division truncates toward zero.
func Divide(a, b Value) (Value, error) { return arithmetic(opDivide, a, b) }

// Modulo returns the remainder of a / b, with the sign of a.
func Modulo(a, b Value) (Value, error) { return arithmetic(opModulo, a, b) }

// arithmetic routes a binary operation: arrays and matrix-scalar pairs
// broadcast, everything else is promoted to a common type and delegated to the
// kind's primitive.
func arithmetic(op operation, a, b Value) (Value, error) {
	mustOperands(a, b)
	var (
		r   Value
		err error
	)
	switch {
	case isArray(a) || isArray(b):
		r, err = arrayArithmetic(op, a, b)
	case isMatrix(a) && isScalar(b):
		r, err = a.(matrix).broadcast(op, b, false)
	case isScalar(a) && isMatrix(b):
		r, err = b.(matrix).broadcast(op, a, true)
	default:
		var x, y Value
		if x, y, err = promote(op.String(), a, b); err == nil {
			r, err = op.apply(x, y)
		}
	}
	if err != nil {
		return nil, fail(op.String(), a, b, err)
	}
	return r, nil
}

// promote converts a and b to a common type. The lower operand is converted
// to the type of the higher one; operands of incomparable types are both
// converted to their least upper bound, once.
func promote(op string, a, b Value) (Value, Value, error) {
	ta, tb := a.Type(), b.Type()
	switch Compare(ta, tb) {
	case Same:
		return a, b, nil
	case Higher:
		y, err := Convert(ta, b)
		if err != nil {
			return nil, nil, err
		}
		measurePromotion(op, tb, ta)
		return a, y, nil
	case Lower:
		x, err := Convert(tb, a)
		if err != nil {
			return nil, nil, err
		}
		measurePromotion(op, ta, tb)
		return x, b, nil
	}

	lub := LeastUpperBound(ta, tb)
	x, errA := Convert(lub, a)
	y, errB := Convert(lub, b)
	if errA != nil || errB != nil {
		return nil, nil, fmt.Errorf("%w: %s and %s have no concrete upper bound (%s)", ErrIncomparableTypes, ta, tb, lub)
	}
	measureRescue(op, ta, tb, lub)
	return x, y, nil
}

// fail wraps the error of a binary operation with both original operands.
// Element failures of arrays are wrapped once per level, outermost first.
func fail(op string, a, b Value, err error) error {
	measureFailure(op, a.Type(), b.Type())
	return &OperationError{Op: op, Left: a, Right: b, Err: err}
}

func mustOperands(a, b Value) {
	if a == nil || b == nil {
		panic("simvalue: nil operand")
	}
}

// IsEqualTo reports whether a and b denote the same value (with the same
// units). Values of different kinds compare after promotion, so the Int 1
// equals the Double 1.0; an array never equals a non-array, and values of
// different units are never equal.
func IsEqualTo(a, b Value) (bool, error) {
	mustOperands(a, b)
	const op = "isEqualTo"
	if isArray(a) || isArray(b) {
		eq, err := arraysEqual(a, b)
		if err != nil {
			return false, fail(op, a, b, err)
		}
		return eq, nil
	}
	x, y, err := promote(op, a, b)
	if err != nil {
		if !unitsOf(a).Equal(unitsOf(b)) {
			return false, nil
		}
		return false, fail(op, a, b, err)
	}
	e, ok := x.(equatable)
	if !ok {
		return false, fail(op, a, b, unsupported(op, x.Type()))
	}
	eq, err := e.isEqualTo(y)
	if err != nil {
		return false, fail(op, a, b, err)
	}
	return eq, nil
}

// IsCloseTo reports whether a and b differ by at most epsilon, elementwise
// for arrays and matrices. Scalars of different units fail with
// ErrUnitMismatch.
func IsCloseTo(a, b Value, epsilon float64) (bool, error) {
	mustOperands(a, b)
	const op = "isCloseTo"
	if isArray(a) || isArray(b) {
		near, err := arraysClose(a, b, epsilon)
		if err != nil {
			return false, fail(op, a, b, err)
		}
		return near, nil
	}
	x, y, err := promote(op, a, b)
	if err != nil {
		return false, fail(op, a, b, err)
	}
	c, ok := x.(approximable)
	if !ok {
		return false, fail(op, a, b, unsupported(op, x.Type()))
	}
	near, err := c.isCloseTo(y, epsilon)
	if err != nil {
		return false, fail(op, a, b, err)
	}
	return near, nil
}

// IsLessThan reports whether a < b. Only scalars are ordered.
func IsLessThan(a, b Value) (bool, error) {
	mustOperands(a, b)
	return lessThan("isLessThan", a, b, a, b)
}

// IsGreaterThan reports whether a > b. Only scalars are ordered.
func IsGreaterThan(a, b Value) (bool, error) {
	mustOperands(a, b)
	return lessThan("isGreaterThan", b, a, a, b)
}

// lessThan reports whether x < y, naming the original operands a and b in
// errors.
func lessThan(op string, x, y, a, b Value) (bool, error) {
	x, y, err := promote(op, x, y)
	if err != nil {
		return false, fail(op, a, b, err)
	}
	o, ok := x.(ordered)
	if !ok {
		return false, fail(op, a, b, unsupported(op, x.Type()))
	}
	less, err := o.isLessThan(y)
	if err != nil {
		return false, fail(op, a, b, err)
	}
	return less, nil
}

// Zero returns the additive identity of v's kind: a value that leaves v
// unchanged when added to it (with v's units).
func Zero(v Value) (Value, error) {
	if a, ok := v.(*Array); ok {
		r, err := a.mapElements(Zero)
		if err != nil {
			return nil, err
		}
		return r, nil
	}
	if i, ok := v.(identities); ok {
		return i.zero(), nil
	}
	return nil, unsupported("zero", v.Type())
}

// One returns the multiplicative identity of v's kind. The identity is
// unitless; for a matrix it is the square identity that multiplies v from the
// left.
func One(v Value) (Value, error) {
	if a, ok := v.(*Array); ok {
		r, err := a.mapElements(One)
		if err != nil {
			return nil, err
		}
		return r, nil
	}
	if i, ok := v.(identities); ok {
		return i.one(), nil
	}
	return nil, unsupported("one", v.Type())
}

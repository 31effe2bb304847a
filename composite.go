package simvalue

import "fmt"

// Containers (arrays and matrices) cannot take part in the promotion protocol
// as a whole: an array has no conversion to a scalar type, and a scalar
// combines with every element of a container rather than with the container.
// The functions below implement their part of the dispatch.

func isArray(v Value) bool {
	_, ok := v.(*Array)
	return ok
}

// arrayArithmetic combines arrays elementwise, or broadcasts a non-array
// operand against every element of the array operand.
func arrayArithmetic(op operation, a, b Value) (Value, error) {
	x, xArray := a.(*Array)
	y, yArray := b.(*Array)
	var (
		r   *Array
		err error
	)
	switch {
	case xArray && yArray:
		r, err = x.combine(op, y)
	case xArray && x.Len() == 0:
		r, err = emptyResult(x.elemType, b.Type())
	case xArray:
		r, err = x.mapElements(func(e Value) (Value, error) { return arithmetic(op, e, b) })
	case y.Len() == 0:
		r, err = emptyResult(a.Type(), y.elemType)
	default:
		r, err = y.mapElements(func(e Value) (Value, error) { return arithmetic(op, a, e) })
	}
	if err != nil {
		return nil, err
	}
	return r, nil
}

// combine applies op to corresponding elements of x and y. An array of length
// one broadcasts its single element against every element of the other.
func (x *Array) combine(op operation, y *Array) (*Array, error) {
	n, m := x.Len(), y.Len()
	switch {
	case n == 0 && m <= 1, m == 0 && n <= 1:
		return emptyResult(x.elemType, y.elemType)
	case n == m:
		elements := make([]Value, n)
		for i := range elements {
			r, err := arithmetic(op, x.store.at(i), y.store.at(i))
			if err != nil {
				return nil, fmt.Errorf("element %d: %w", i, err)
			}
			elements[i] = r
		}
		return newArray(elements)
	case n == 1:
		e := x.store.at(0)
		return y.mapElements(func(v Value) (Value, error) { return arithmetic(op, e, v) })
	case m == 1:
		e := y.store.at(0)
		return x.mapElements(func(v Value) (Value, error) { return arithmetic(op, v, e) })
	}
	return nil, fmt.Errorf("%w: arrays of length %d and %d", ErrDimensionMismatch, n, m)
}

// emptyResult returns the empty array an operation between elements of types
// a and b would produce: its element type is their least upper bound.
func emptyResult(a, b Type) (*Array, error) {
	lub := LeastUpperBound(a, b)
	if IsAbstract(lub) {
		return nil, fmt.Errorf("%w: %s and %s have no concrete upper bound (%s)", ErrIncomparableTypes, a, b, lub)
	}
	return NewEmptyArray(lub), nil
}

// mapElements returns the array of f applied to each element of a.
func (a *Array) mapElements(f func(Value) (Value, error)) (*Array, error) {
	if a.Len() == 0 {
		return a, nil
	}
	elements := make([]Value, a.Len())
	for i := range elements {
		r, err := f(a.store.at(i))
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		elements[i] = r
	}
	return newArray(elements)
}

// arraysEqual reports whether a and b are arrays of equal length with equal
// elements. An array is never equal to a non-array.
func arraysEqual(a, b Value) (bool, error) {
	x, xArray := a.(*Array)
	y, yArray := b.(*Array)
	if !xArray || !yArray || x.Len() != y.Len() {
		return false, nil
	}
	for i := range x.Len() {
		eq, err := IsEqualTo(x.store.at(i), y.store.at(i))
		if err != nil || !eq {
			return false, err
		}
	}
	return true, nil
}

// arraysClose reports whether a and b are arrays of equal length whose
// elements are pairwise close. Closeness between an array and a non-array is
// undefined.
func arraysClose(a, b Value, epsilon float64) (bool, error) {
	x, xArray := a.(*Array)
	y, yArray := b.(*Array)
	if !xArray || !yArray {
		return false, fmt.Errorf("%w: closeness of %s and %s", ErrUnsupported, a.Type(), b.Type())
	}
	if x.Len() != y.Len() {
		return false, nil
	}
	for i := range x.Len() {
		near, err := IsCloseTo(x.store.at(i), y.store.at(i), epsilon)
		if err != nil || !near {
			return false, err
		}
	}
	return true, nil
}

// matrix is implemented by every Matrix instantiation.
type matrix interface {
	Value
	// broadcast applies op between every element and the scalar s; reversed
	// makes s the left operand.
	broadcast(op operation, s Value, reversed bool) (Value, error)
}

func isMatrix(v Value) bool {
	_, ok := v.(matrix)
	return ok
}

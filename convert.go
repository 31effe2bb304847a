package simvalue

// Convert returns v as a value of type t. It succeeds whenever t is the same
// as or higher than v's type and t is not abstract; units survive the
// conversion between scalar kinds. A scalar converts to a 1×1 matrix only if
// it is unitless, and any value converts to an array of a higher element type
// as a singleton.
func Convert(t Type, v Value) (Value, error) {
	switch Compare(t, v.Type()) {
	case Same:
		return v, nil
	case Higher:
	default:
		return nil, conversionError(t, v)
	}

	var (
		r   Value
		err error
	)
	switch t {
	case IntType:
		r, err = toInteger[int32](v)
	case LongType:
		r, err = toInteger[int64](v)
	case FloatType:
		r, err = toFloating[float32](v)
	case DoubleType:
		r, err = toFloating[float64](v)
	case SmoothType:
		r, err = toSmooth(v)
	case IntMatrixType:
		r, err = toIntMatrix(v)
	case LongMatrixType:
		r, err = toLongMatrix(v)
	case DoubleMatrixType:
		r, err = toDoubleMatrix(v)
	case FixMatrixType:
		r, err = toFixMatrix(v)
	default:
		if at, ok := t.(ArrayType); ok {
			r, err = toArray(at, v)
		} else {
			err = conversionError(t, v)
		}
	}
	if err != nil {
		return nil, err
	}
	return r, nil
}

func toInteger[T int32 | int64](v Value) (Integer[T], error) {
	switch x := v.(type) {
	case Short:
		return Integer[T]{scalar: x.scalar, v: T(x.v)}, nil
	case Int:
		return Integer[T]{scalar: x.scalar, v: T(x.v)}, nil
	}
	return Integer[T]{}, conversionError(Integer[T]{}.Type(), v)
}

func toFloating[T floating](v Value) (Floating[T], error) {
	switch x := v.(type) {
	case Short:
		return Floating[T]{scalar: x.scalar, v: T(x.v)}, nil
	case Int:
		return Floating[T]{scalar: x.scalar, v: T(x.v)}, nil
	case Float:
		return Floating[T]{scalar: x.scalar, v: T(x.v)}, nil
	}
	return Floating[T]{}, conversionError(Floating[T]{}.Type(), v)
}

// toSmooth returns v as a timeless Smooth value without derivatives.
func toSmooth(v Value) (Smooth, error) {
	d, ok := v.(Double)
	if !ok {
		c, err := Convert(DoubleType, v)
		if err != nil {
			return Smooth{}, conversionError(SmoothType, v)
		}
		d = c.(Double)
	}
	return Smooth{scalar: d.scalar, v: d.v}, nil
}

// scalarElement converts the unitless scalar v to the element type of the
// matrix type t.
func scalarElement(t, elemType BaseType, v Value) (Value, error) {
	if !unitsOf(v).IsUnitless() {
		return nil, conversionError(t, v)
	}
	e, err := Convert(elemType, v)
	if err != nil {
		return nil, conversionError(t, v)
	}
	return e, nil
}

func toIntMatrix(v Value) (*IntMatrix, error) {
	e, err := scalarElement(IntMatrixType, IntType, v)
	if err != nil {
		return nil, err
	}
	return wrapMatrix[int32](intKernel{}, 1, 1, []int32{e.(Int).v})
}

func toLongMatrix(v Value) (*LongMatrix, error) {
	if m, ok := v.(*IntMatrix); ok {
		return mapMatrix[int32, int64](m, longKernel{}, func(x int32) int64 { return int64(x) }), nil
	}
	e, err := scalarElement(LongMatrixType, LongType, v)
	if err != nil {
		return nil, err
	}
	return wrapMatrix[int64](longKernel{}, 1, 1, []int64{e.(Long).v})
}

func toDoubleMatrix(v Value) (*DoubleMatrix, error) {
	if m, ok := v.(*IntMatrix); ok {
		return mapMatrix[int32, float64](m, doubleKernel{}, func(x int32) float64 { return float64(x) }), nil
	}
	e, err := scalarElement(DoubleMatrixType, DoubleType, v)
	if err != nil {
		return nil, err
	}
	return wrapMatrix[float64](doubleKernel{}, 1, 1, []float64{e.(Double).v})
}

func toFixMatrix(v Value) (*FixMatrix, error) {
	x, ok := v.(Fix)
	if !ok || !x.units.IsUnitless() {
		return nil, conversionError(FixMatrixType, v)
	}
	return wrapMatrix[Fix](fixKernel{p: x.p}, 1, 1, []Fix{x})
}

func mapMatrix[S, T any](m *Matrix[S], k kernel[T], f func(S) T) *Matrix[T] {
	data := make([]T, len(m.data))
	for i, x := range m.data {
		data[i] = f(x)
	}
	return &Matrix[T]{rows: m.rows, cols: m.cols, data: data, k: k}
}

// toArray converts arrays elementwise and wraps any other value in a
// singleton array.
func toArray(t ArrayType, v Value) (*Array, error) {
	a, ok := v.(*Array)
	if !ok {
		e, err := Convert(t.Elem, v)
		if err != nil {
			return nil, err
		}
		return wrapArray(t.Elem, []Value{e}), nil
	}
	elements := make([]Value, a.Len())
	for i := range elements {
		e, err := Convert(t.Elem, a.store.at(i))
		if err != nil {
			return nil, err
		}
		elements[i] = e
	}
	return wrapArray(t.Elem, elements), nil
}

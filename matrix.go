package simvalue

import (
	"fmt"
	"slices"
	"strings"
)

// Matrix is an immutable, dense, row-major matrix of at least 1×1 elements of
// one scalar kind. Matrices carry no units.
//
// Two matrices of the same kind add and subtract elementwise, and multiply as
// a matrix product; a matrix combines with a unitless scalar elementwise, in
// either operand order.
type Matrix[T any] struct {
	element
	rows, cols int
	data       []T
	k          kernel[T]
}

type (
	IntMatrix    = Matrix[int32]
	LongMatrix   = Matrix[int64]
	DoubleMatrix = Matrix[float64]
	// FixMatrix holds fixed-point elements that all share one Precision.
	FixMatrix = Matrix[Fix]
)

// NewIntMatrix returns a matrix of the given rows, which are copied.
func NewIntMatrix(rows [][]int32) (*IntMatrix, error) { return newMatrix[int32](intKernel{}, rows) }

// NewLongMatrix returns a matrix of the given rows, which are copied.
func NewLongMatrix(rows [][]int64) (*LongMatrix, error) { return newMatrix[int64](longKernel{}, rows) }

// NewDoubleMatrix returns a matrix of the given rows, which are copied.
func NewDoubleMatrix(rows [][]float64) (*DoubleMatrix, error) {
	return newMatrix[float64](doubleKernel{}, rows)
}

// NewFixMatrix returns a matrix of the given rows, which are copied. All
// elements must be unitless and share the precision of the first.
func NewFixMatrix(rows [][]Fix) (*FixMatrix, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, fmt.Errorf("%w: matrix must be at least 1x1", ErrDimensionMismatch)
	}
	k := fixKernel{p: rows[0][0].p}
	if err := k.p.Validate(); err != nil {
		return nil, err
	}
	m, err := newMatrix[Fix](k, rows)
	if err != nil {
		return nil, err
	}
	if err := k.check(m.data); err != nil {
		return nil, err
	}
	return m, nil
}

// WrapIntMatrix returns a rows×cols matrix backed by data, in row-major order.
// The matrix takes ownership of data: the caller must not modify it afterwards.
func WrapIntMatrix(rows, cols int, data []int32) (*IntMatrix, error) {
	return wrapMatrix[int32](intKernel{}, rows, cols, data)
}

// WrapLongMatrix is like WrapIntMatrix.
func WrapLongMatrix(rows, cols int, data []int64) (*LongMatrix, error) {
	return wrapMatrix[int64](longKernel{}, rows, cols, data)
}

// WrapDoubleMatrix is like WrapIntMatrix.
func WrapDoubleMatrix(rows, cols int, data []float64) (*DoubleMatrix, error) {
	return wrapMatrix[float64](doubleKernel{}, rows, cols, data)
}

// WrapFixMatrix is like WrapIntMatrix; the elements must share precision p.
func WrapFixMatrix(rows, cols int, data []Fix, p Precision) (*FixMatrix, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	k := fixKernel{p: p}
	if err := k.check(data); err != nil {
		return nil, err
	}
	return wrapMatrix[Fix](k, rows, cols, data)
}

func newMatrix[T any](k kernel[T], rows [][]T) (*Matrix[T], error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, fmt.Errorf("%w: matrix must be at least 1x1", ErrDimensionMismatch)
	}
	cols := len(rows[0])
	data := make([]T, 0, len(rows)*cols)
	for i, row := range rows {
		if len(row) != cols {
			return nil, fmt.Errorf("%w: row %d has %d columns, want %d", ErrDimensionMismatch, i, len(row), cols)
		}
		data = append(data, row...)
	}
	return &Matrix[T]{rows: len(rows), cols: cols, data: data, k: k}, nil
}

func wrapMatrix[T any](k kernel[T], rows, cols int, data []T) (*Matrix[T], error) {
	if rows < 1 || cols < 1 || len(data) != rows*cols {
		return nil, fmt.Errorf("%w: %d elements for a %dx%d matrix", ErrDimensionMismatch, len(data), rows, cols)
	}
	return &Matrix[T]{rows: rows, cols: cols, data: data, k: k}, nil
}

// filled returns a rows×cols matrix of x.
func filled[T any](k kernel[T], rows, cols int, x T) *Matrix[T] {
	data := make([]T, rows*cols)
	for i := range data {
		data[i] = x
	}
	return &Matrix[T]{rows: rows, cols: cols, data: data, k: k}
}

func (m *Matrix[T]) Type() Type { return m.k.matrixType() }

// String formats the matrix as "[1, 2; 3, 4]".
func (m *Matrix[T]) String() string {
	var b strings.Builder
	b.WriteByte('[')
	for i := range m.rows {
		if i > 0 {
			b.WriteString("; ")
		}
		for j := range m.cols {
			if j > 0 {
				b.WriteString(", ")
			}
			b.WriteString(m.k.format(m.data[i*m.cols+j]))
		}
	}
	b.WriteByte(']')
	return m.k.wrap(b.String())
}

func (m *Matrix[T]) Rows() int { return m.rows }
func (m *Matrix[T]) Cols() int { return m.cols }

// At returns the element at row r and column c. It panics if either is out of
// range.
func (m *Matrix[T]) At(r, c int) T {
	if r < 0 || r >= m.rows || c < 0 || c >= m.cols {
		panic(fmt.Sprintf("simvalue: matrix index (%d, %d) out of range %dx%d", r, c, m.rows, m.cols))
	}
	return m.data[r*m.cols+c]
}

// Element returns the element at row r and column c as a scalar Value.
func (m *Matrix[T]) Element(r, c int) Value { return m.k.element(m.At(r, c)) }

// Slices returns a copy of the matrix as a slice of rows.
func (m *Matrix[T]) Slices() [][]T {
	out := make([][]T, m.rows)
	for i := range out {
		out[i] = slices.Clone(m.data[i*m.cols : (i+1)*m.cols])
	}
	return out
}

// Zero returns the additive identity of m: a matrix of zeros of m's shape.
func (m *Matrix[T]) Zero() *Matrix[T] { return filled(m.k, m.rows, m.cols, m.k.zero()) }

// One returns the identity that multiplies m from the left (rows×rows).
func (m *Matrix[T]) One() *Matrix[T] { return identity(m.k, m.rows) }

// OneRight returns the identity that multiplies m from the right (cols×cols).
func (m *Matrix[T]) OneRight() *Matrix[T] { return identity(m.k, m.cols) }

func identity[T any](k kernel[T], n int) *Matrix[T] {
	id := filled(k, n, n, k.zero())
	for i := range n {
		id.data[i*n+i] = k.one()
	}
	return id
}

// Transpose returns the transpose of m.
func (m *Matrix[T]) Transpose() *Matrix[T] {
	data := make([]T, len(m.data))
	for i := range m.rows {
		for j := range m.cols {
			data[j*m.rows+i] = m.data[i*m.cols+j]
		}
	}
	return &Matrix[T]{rows: m.cols, cols: m.rows, data: data, k: m.k}
}

func (m *Matrix[T]) zero() Value { return m.Zero() }
func (m *Matrix[T]) one() Value  { return m.One() }

func (m *Matrix[T]) sameShape(n *Matrix[T]) error {
	if m.rows != n.rows || m.cols != n.cols {
		return fmt.Errorf("%w: %dx%d and %dx%d matrices", ErrDimensionMismatch, m.rows, m.cols, n.rows, n.cols)
	}
	return m.k.compatible(n.k)
}

// zip combines corresponding elements of m and n.
func (m *Matrix[T]) zip(v Value, f func(a, b T) (T, error)) (Value, error) {
	n := v.(*Matrix[T])
	if err := m.sameShape(n); err != nil {
		return nil, err
	}
	data := make([]T, len(m.data))
	for i := range data {
		x, err := f(m.data[i], n.data[i])
		if err != nil {
			return nil, err
		}
		data[i] = x
	}
	return &Matrix[T]{rows: m.rows, cols: m.cols, data: data, k: m.k}, nil
}

func (m *Matrix[T]) add(v Value) (Value, error) {
	return m.zip(v, func(a, b T) (T, error) { return m.k.add(a, b), nil })
}

func (m *Matrix[T]) subtract(v Value) (Value, error) {
	return m.zip(v, func(a, b T) (T, error) { return m.k.sub(a, b), nil })
}

func (m *Matrix[T]) modulo(v Value) (Value, error) {
	return m.zip(v, m.k.mod)
}

// multiply returns the matrix product m·n.
func (m *Matrix[T]) multiply(v Value) (Value, error) {
	n := v.(*Matrix[T])
	if m.cols != n.rows {
		return nil, fmt.Errorf("%w: cannot multiply %dx%d by %dx%d", ErrDimensionMismatch, m.rows, m.cols, n.rows, n.cols)
	}
	if err := m.k.compatible(n.k); err != nil {
		return nil, err
	}
	if p, ok := m.k.(productKernel[T]); ok {
		return &Matrix[T]{rows: m.rows, cols: n.cols, data: p.product(m.rows, m.cols, n.cols, m.data, n.data), k: m.k}, nil
	}
	data := make([]T, m.rows*n.cols)
	for i := range m.rows {
		for j := range n.cols {
			acc := m.k.zero()
			for l := range m.cols {
				acc = m.k.add(acc, m.k.mul(m.data[i*m.cols+l], n.data[l*n.cols+j]))
			}
			data[i*n.cols+j] = acc
		}
	}
	return &Matrix[T]{rows: m.rows, cols: n.cols, data: data, k: m.k}, nil
}

func (m *Matrix[T]) divide(Value) (Value, error) {
	return nil, unsupported("divide", m.Type())
}

func (m *Matrix[T]) isEqualTo(v Value) (bool, error) {
	n := v.(*Matrix[T])
	if m.rows != n.rows || m.cols != n.cols {
		return false, nil
	}
	for i := range m.data {
		if !m.k.equal(m.data[i], n.data[i]) {
			return false, nil
		}
	}
	return true, nil
}

func (m *Matrix[T]) isCloseTo(v Value, epsilon float64) (bool, error) {
	n := v.(*Matrix[T])
	if m.rows != n.rows || m.cols != n.cols {
		return false, nil
	}
	for i := range m.data {
		if m.k.distance(m.data[i], n.data[i]) > epsilon {
			return false, nil
		}
	}
	return true, nil
}

// broadcast applies op between every element of m and the scalar s. When s
// does not fit m's element kind, m is first widened to the least upper bound
// of both types (e.g. an int matrix scaled by a double becomes a double
// matrix).
func (m *Matrix[T]) broadcast(op operation, s Value, reversed bool) (Value, error) {
	if u := unitsOf(s); !u.IsUnitless() {
		return nil, fmt.Errorf("%w: matrices are unitless, %s has units %s", ErrUnitMismatch, s, u)
	}
	e, err := Convert(m.k.elementType(), s)
	if err != nil {
		lub := LeastUpperBound(m.Type(), s.Type())
		if lub == m.Type() {
			return nil, err
		}
		wider, err := Convert(lub, m)
		if err != nil {
			return nil, fmt.Errorf("%w: %s and %s", ErrIncomparableTypes, m.Type(), s.Type())
		}
		return wider.(matrix).broadcast(op, s, reversed)
	}
	x, err := m.k.fromElement(e)
	if err != nil {
		return nil, err
	}

	data := make([]T, len(m.data))
	for i, y := range m.data {
		a, b := y, x
		if reversed {
			a, b = x, y
		}
		r, err := m.apply(op, a, b)
		if err != nil {
			return nil, err
		}
		data[i] = r
	}
	return &Matrix[T]{rows: m.rows, cols: m.cols, data: data, k: m.k}, nil
}

func (m *Matrix[T]) apply(op operation, a, b T) (T, error) {
	switch op {
	case opAdd:
		return m.k.add(a, b), nil
	case opSubtract:
		return m.k.sub(a, b), nil
	case opMultiply:
		return m.k.mul(a, b), nil
	case opDivide:
		return m.k.div(a, b)
	}
	return m.k.mod(a, b)
}

// check reports whether every element of data is unitless and has the
// kernel's precision.
func (k fixKernel) check(data []Fix) error {
	for _, x := range data {
		if x.p != k.p {
			return fmt.Errorf("%w: element %s in matrix of precision %s", ErrPrecisionMismatch, x, k.p)
		}
		if !x.units.IsUnitless() {
			return fmt.Errorf("%w: matrices are unitless, element %s has units", ErrUnitMismatch, x)
		}
	}
	return nil
}

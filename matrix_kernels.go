package simvalue

import (
	"fmt"
	"math"
	"math/big"
	"strconv"

	"gonum.org/v1/gonum/mat"
)

// kernel implements the element arithmetic of one matrix kind. Matrix is
// kind-agnostic and delegates every element operation to its kernel.
type kernel[T any] interface {
	matrixType() BaseType
	elementType() BaseType

	zero() T
	one() T
	add(a, b T) T
	sub(a, b T) T
	mul(a, b T) T
	div(a, b T) (T, error)
	mod(a, b T) (T, error)
	equal(a, b T) bool
	distance(a, b T) float64

	// element boxes x as a scalar Value; fromElement unboxes a Value of
	// elementType().
	element(x T) Value
	fromElement(v Value) (T, error)

	// format returns the textual form of x inside a matrix, and wrap that of
	// the whole matrix given its bracketed rows.
	format(x T) string
	wrap(body string) string

	// compatible reports whether matrices of both kernels may be combined.
	compatible(other kernel[T]) error
}

// productKernel is implemented by kernels with a specialized matrix product of
// a rows×inner by an inner×cols matrix, both in row-major order.
type productKernel[T any] interface {
	product(rows, inner, cols int, a, b []T) []T
}

type intKernel struct{}

func (intKernel) matrixType() BaseType               { return IntMatrixType }
func (intKernel) elementType() BaseType              { return IntType }
func (intKernel) zero() int32                        { return 0 }
func (intKernel) one() int32                         { return 1 }
func (intKernel) add(a, b int32) int32               { return a + b }
func (intKernel) sub(a, b int32) int32               { return a - b }
func (intKernel) mul(a, b int32) int32               { return a * b }
func (intKernel) div(a, b int32) (int32, error)      { return divideIntegers(a, b) }
func (intKernel) mod(a, b int32) (int32, error)      { return moduloIntegers(a, b) }
func (intKernel) equal(a, b int32) bool              { return a == b }
func (intKernel) distance(a, b int32) float64        { return math.Abs(float64(a) - float64(b)) }
func (intKernel) element(x int32) Value              { return NewInt(x) }
func (intKernel) fromElement(v Value) (int32, error) { return v.(Int).v, nil }
func (intKernel) format(x int32) string              { return strconv.FormatInt(int64(x), 10) }
func (intKernel) wrap(body string) string            { return body }
func (intKernel) compatible(kernel[int32]) error     { return nil }

type longKernel struct{}

func (longKernel) matrixType() BaseType               { return LongMatrixType }
func (longKernel) elementType() BaseType              { return LongType }
func (longKernel) zero() int64                        { return 0 }
func (longKernel) one() int64                         { return 1 }
func (longKernel) add(a, b int64) int64               { return a + b }
func (longKernel) sub(a, b int64) int64               { return a - b }
func (longKernel) mul(a, b int64) int64               { return a * b }
func (longKernel) div(a, b int64) (int64, error)      { return divideIntegers(a, b) }
func (longKernel) mod(a, b int64) (int64, error)      { return moduloIntegers(a, b) }
func (longKernel) equal(a, b int64) bool              { return a == b }
func (longKernel) distance(a, b int64) float64        { return math.Abs(float64(a) - float64(b)) }
func (longKernel) element(x int64) Value              { return NewLong(x) }
func (longKernel) fromElement(v Value) (int64, error) { return v.(Long).v, nil }
func (longKernel) format(x int64) string              { return strconv.FormatInt(x, 10) + "L" }
func (longKernel) wrap(body string) string            { return body }
func (longKernel) compatible(kernel[int64]) error     { return nil }

func divideIntegers[T integer](a, b T) (T, error) {
	if b == 0 {
		return 0, ErrDivideByZero
	}
	return a / b, nil
}

func moduloIntegers[T integer](a, b T) (T, error) {
	if b == 0 {
		return 0, ErrDivideByZero
	}
	return a % b, nil
}

type doubleKernel struct{}

func (doubleKernel) matrixType() BaseType                 { return DoubleMatrixType }
func (doubleKernel) elementType() BaseType                { return DoubleType }
func (doubleKernel) zero() float64                        { return 0 }
func (doubleKernel) one() float64                         { return 1 }
func (doubleKernel) add(a, b float64) float64             { return a + b }
func (doubleKernel) sub(a, b float64) float64             { return a - b }
func (doubleKernel) mul(a, b float64) float64             { return a * b }
func (doubleKernel) div(a, b float64) (float64, error)    { return a / b, nil }
func (doubleKernel) mod(a, b float64) (float64, error)    { return math.Mod(a, b), nil }
func (doubleKernel) equal(a, b float64) bool              { return a == b }
func (doubleKernel) distance(a, b float64) float64        { return math.Abs(a - b) }
func (doubleKernel) element(x float64) Value              { return NewDouble(x) }
func (doubleKernel) fromElement(v Value) (float64, error) { return v.(Double).v, nil }
func (doubleKernel) format(x float64) string              { return formatFloat(x, 64) }
func (doubleKernel) wrap(body string) string              { return body }
func (doubleKernel) compatible(kernel[float64]) error     { return nil }

// product delegates to gonum's dense multiplication. The operands are never
// modified, so they back the gonum matrices directly.
func (doubleKernel) product(rows, inner, cols int, a, b []float64) []float64 {
	var c mat.Dense
	c.Mul(mat.NewDense(rows, inner, a), mat.NewDense(inner, cols, b))
	return c.RawMatrix().Data
}

// fixKernel operates at a single precision: sums saturate, and products and
// quotients are quantized back to it.
type fixKernel struct {
	p Precision
}

func (k fixKernel) matrixType() BaseType  { return FixMatrixType }
func (k fixKernel) elementType() BaseType { return FixType }
func (k fixKernel) zero() Fix             { return Fix{m: new(big.Int), p: k.p} }
func (k fixKernel) one() Fix              { return Fix{m: new(big.Int), p: k.p}.one().(Fix) }

func (k fixKernel) add(a, b Fix) Fix {
	r, _ := a.add(b)
	return r.(Fix)
}

func (k fixKernel) sub(a, b Fix) Fix {
	r, _ := a.subtract(b)
	return r.(Fix)
}

func (k fixKernel) mul(a, b Fix) Fix {
	r, _ := a.multiply(b)
	return r.(Fix).quantize(k.p)
}

func (k fixKernel) div(a, b Fix) (Fix, error) {
	r, err := a.divide(b)
	if err != nil {
		return Fix{}, err
	}
	return r.(Fix), nil
}

func (k fixKernel) mod(a, b Fix) (Fix, error) {
	return Fix{}, unsupported("modulo", FixType)
}

func (k fixKernel) equal(a, b Fix) bool { return a.cmp(b) == 0 }

func (k fixKernel) distance(a, b Fix) float64 {
	return math.Abs(a.Float64() - b.Float64())
}

func (k fixKernel) element(x Fix) Value { return x }

func (k fixKernel) fromElement(v Value) (Fix, error) {
	x := v.(Fix)
	if x.p != k.p {
		return Fix{}, fmt.Errorf("%w: element %s in matrix of precision %s", ErrPrecisionMismatch, x.p, k.p)
	}
	x.units = nil
	return x, nil
}

func (k fixKernel) format(x Fix) string { return x.decimal() }

func (k fixKernel) wrap(body string) string {
	return "fix(" + body + ", " + formatPrecision(k.p) + ")"
}

func (k fixKernel) compatible(other kernel[Fix]) error {
	if o := other.(fixKernel); o.p != k.p {
		return fmt.Errorf("%w: %s and %s", ErrPrecisionMismatch, k.p, o.p)
	}
	return nil
}

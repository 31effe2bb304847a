/*
Package latticetest provides a suite of tests designed to assess the type
lattice of simvalue: the relation computed by [simvalue.Compare], the bound
computed by [simvalue.LeastUpperBound], and the conversions performed by
[simvalue.Convert] along the lattice.

Call latticetest.Run in its own test to invoke the test-suite over a set of
types:

	func TestLattice(t *testing.T) {
		latticetest.Run(t, latticetest.DefaultTypes()...)
	}

and latticetest.RunConversions to check that sample values convert to every
type above their own:

	func TestConversions(t *testing.T) {
		latticetest.RunConversions(t, latticetest.DefaultTypes(), latticetest.DefaultValues()...)
	}

The suite checks the laws over the given types only. Packages that add types
(e.g. by nesting arrays deeper) are encouraged to pass them explicitly.
*/
package latticetest

import (
	"errors"
	"testing"

	"github.com/go-digitaltwin/go-simvalue"
)

// DefaultTypes returns every base type together with a selection of array
// types, including a nested one.
func DefaultTypes() []simvalue.Type {
	return []simvalue.Type{
		simvalue.UnknownType,
		simvalue.BooleanType,
		simvalue.ShortType,
		simvalue.IntType,
		simvalue.LongType,
		simvalue.FloatType,
		simvalue.DoubleType,
		simvalue.FixType,
		simvalue.SmoothType,
		simvalue.ScalarType,
		simvalue.IntMatrixType,
		simvalue.LongMatrixType,
		simvalue.DoubleMatrixType,
		simvalue.FixMatrixType,
		simvalue.GeneralType,
		simvalue.ArrayType{Elem: simvalue.ShortType},
		simvalue.ArrayType{Elem: simvalue.IntType},
		simvalue.ArrayType{Elem: simvalue.DoubleType},
		simvalue.ArrayType{Elem: simvalue.SmoothType},
		simvalue.ArrayType{Elem: simvalue.BooleanType},
		simvalue.ArrayType{Elem: simvalue.ArrayType{Elem: simvalue.IntType}},
	}
}

// DefaultValues returns a unitless sample value of every concrete kind.
func DefaultValues() []simvalue.Value {
	p := simvalue.Precision{Total: 8, Integer: 4}
	intMatrix, _ := simvalue.NewIntMatrix([][]int32{{1, 2}, {3, 4}})
	longMatrix, _ := simvalue.NewLongMatrix([][]int64{{1 << 40}})
	doubleMatrix, _ := simvalue.NewDoubleMatrix([][]float64{{0.5, -1}})
	fixMatrix, _ := simvalue.NewFixMatrix([][]simvalue.Fix{{simvalue.MustFix(1.25, p)}})
	return []simvalue.Value{
		simvalue.True,
		simvalue.NewShort(3),
		simvalue.NewInt(-7),
		simvalue.NewLong(1 << 40),
		simvalue.NewFloat(0.5),
		simvalue.NewDouble(2.25),
		simvalue.MustFix(1.25, p),
		simvalue.NewSmooth(1.5, nil, 2),
		intMatrix,
		longMatrix,
		doubleMatrix,
		fixMatrix,
		simvalue.MustArray(simvalue.NewInt(1), simvalue.NewInt(2)),
	}
}

// Run tests that Compare and LeastUpperBound obey the laws of a lattice over
// the given types.
func Run(t *testing.T, types ...simvalue.Type) {
	t.Helper()
	t.Run("reflexive", func(t *testing.T) {
		for _, a := range types {
			if problem := reflexive(a); problem != "" {
				t.Error(problem)
			}
		}
	})
	t.Run("mirror", func(t *testing.T) {
		forEachPair(types, func(a, b simvalue.Type) {
			if problem := mirror(a, b); problem != "" {
				t.Error(problem)
			}
		})
	})
	t.Run("transitive", func(t *testing.T) {
		forEachPair(types, func(a, b simvalue.Type) {
			for _, c := range types {
				if problem := transitive(a, b, c); problem != "" {
					t.Error(problem)
				}
			}
		})
	})
	t.Run("commutative-bound", func(t *testing.T) {
		forEachPair(types, func(a, b simvalue.Type) {
			if problem := commutative(a, b); problem != "" {
				t.Error(problem)
			}
		})
	})
	t.Run("upper-bound", func(t *testing.T) {
		forEachPair(types, func(a, b simvalue.Type) {
			if problem := upperBound(a, b); problem != "" {
				t.Error(problem)
			}
		})
	})
	t.Run("least-upper-bound", func(t *testing.T) {
		forEachPair(types, func(a, b simvalue.Type) {
			for _, u := range types {
				if problem := least(a, b, u); problem != "" {
					t.Error(problem)
				}
			}
		})
	})
}

// RunConversions tests that every value converts to each of the given
// concrete types that is the same as or higher than the value's type, and
// that the conversion preserves the value. Conversions to any other type
// must fail with simvalue.ErrConversion.
func RunConversions(t *testing.T, types []simvalue.Type, values ...simvalue.Value) {
	t.Helper()
	for _, v := range values {
		t.Run(v.Type().String(), func(t *testing.T) {
			for _, target := range types {
				c, err := simvalue.Convert(target, v)
				if !atLeast(target, v.Type()) || simvalue.IsAbstract(target) {
					if !errors.Is(err, simvalue.ErrConversion) {
						t.Errorf("Convert(%v, %v) error = %v, want %v", target, v, err, simvalue.ErrConversion)
					}
					continue
				}
				if err != nil {
					t.Errorf("Convert(%v, %v) unexpected error: %v", target, v, err)
					continue
				}
				if c.Type() != target {
					t.Errorf("Convert(%v, %v).Type() = %v", target, v, c.Type())
				}
				eq, err := preserves(c, v)
				if err != nil || !eq {
					t.Errorf("Convert(%v, %v) = %v, does not equal the original (err = %v)", target, v, c, err)
				}
			}
		})
	}
}

func forEachPair(types []simvalue.Type, f func(a, b simvalue.Type)) {
	for _, a := range types {
		for _, b := range types {
			f(a, b)
		}
	}
}

// preserves reports whether c, the conversion of v to a type at least as high,
// denotes the same value. Converting to a deeper array type wraps a non-array
// v in a singleton array, and wraps every element of an array v.
func preserves(c, v simvalue.Value) (bool, error) {
	if depth(c) <= depth(v) {
		return simvalue.IsEqualTo(c, v)
	}
	a := c.(*simvalue.Array)
	b, ok := v.(*simvalue.Array)
	if !ok {
		if a.Len() != 1 {
			return false, nil
		}
		return preserves(a.At(0), v)
	}
	if a.Len() != b.Len() {
		return false, nil
	}
	for i := range a.Len() {
		eq, err := preserves(a.At(i), b.At(i))
		if err != nil || !eq {
			return false, err
		}
	}
	return true, nil
}

func depth(v simvalue.Value) int {
	a, ok := v.(*simvalue.Array)
	if !ok {
		return -1
	}
	return a.Depth()
}

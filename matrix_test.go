package simvalue_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	. "github.com/go-digitaltwin/go-simvalue"
)

func intMatrix(t *testing.T, rows ...[]int32) *IntMatrix {
	t.Helper()
	m, err := NewIntMatrix(rows)
	if err != nil {
		t.Fatal(err)
	}
	return m
}

func doubleMatrix(t *testing.T, rows ...[]float64) *DoubleMatrix {
	t.Helper()
	m, err := NewDoubleMatrix(rows)
	if err != nil {
		t.Fatal(err)
	}
	return m
}

func TestMatrixArithmetic(t *testing.T) {
	m := intMatrix(t, []int32{1, 2}, []int32{3, 4})
	tests := []struct {
		name string
		op   binaryFunc
		a, b Value
		want string
	}{
		{"add", Add, m, m, "[2, 4; 6, 8]"},
		{"subtract", Subtract, m, intMatrix(t, []int32{1, 1}, []int32{1, 1}), "[0, 1; 2, 3]"},
		{"product", Multiply, m, m, "[7, 10; 15, 22]"},
		{"double product", Multiply, doubleMatrix(t, []float64{1, 2}, []float64{3, 4}), doubleMatrix(t, []float64{5}, []float64{6}), "[17.0; 39.0]"},
		{"promoted product", Multiply, m, doubleMatrix(t, []float64{0.5, 0}, []float64{0, 0.5}), "[0.5, 1.0; 1.5, 2.0]"},
		{"modulo", Modulo, m, intMatrix(t, []int32{2, 2}, []int32{2, 2}), "[1, 0; 1, 0]"},
		{"scalar on the right", Add, m, NewInt(1), "[2, 3; 4, 5]"},
		{"scalar on the left", Subtract, NewInt(10), m, "[9, 8; 7, 6]"},
		{"scalar divides elements", Divide, m, NewShort(2), "[0, 1; 1, 2]"},
		{"scalar widens matrix", Multiply, m, NewDouble(0.5), "[0.5, 1.0; 1.5, 2.0]"},
		{"long scalar widens matrix", Add, NewLong(1), m, "[2L, 3L; 4L, 5L]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.op(tt.a, tt.b)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.String() != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMatrixErrors(t *testing.T) {
	m := intMatrix(t, []int32{1, 2}, []int32{3, 4})
	long, _ := NewLongMatrix([][]int64{{1, 2}, {3, 4}})
	tests := []struct {
		name string
		op   binaryFunc
		a, b Value
		want error
	}{
		{"shapes", Add, m, intMatrix(t, []int32{1, 2, 3}), ErrDimensionMismatch},
		{"product shapes", Multiply, m, intMatrix(t, []int32{1, 2, 3}), ErrDimensionMismatch},
		{"matrix division", Divide, m, m, ErrUnsupported},
		{"division by zero", Divide, m, NewInt(0), ErrDivideByZero},
		{"scalar with units", Add, m, NewInt(1).WithUnits(meter), ErrUnitMismatch},
		{"incomparable kinds", Add, long, doubleMatrix(t, []float64{1, 2}, []float64{3, 4}), ErrIncomparableTypes},
		{"incomparable scalar", Add, m, MustFix(1, Precision{8, 4}), ErrIncomparableTypes},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := tt.op(tt.a, tt.b); !errors.Is(err, tt.want) {
				t.Errorf("error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestMatrixComparisons(t *testing.T) {
	m := intMatrix(t, []int32{1, 2}, []int32{3, 4})
	if eq, err := IsEqualTo(m, doubleMatrix(t, []float64{1, 2}, []float64{3, 4})); err != nil || !eq {
		t.Errorf("IsEqualTo(int matrix, equal double matrix) = %v, %v; want true", eq, err)
	}
	if eq, err := IsEqualTo(intMatrix(t, []int32{5}), NewInt(5)); err != nil || !eq {
		t.Errorf("IsEqualTo([5], 5) = %v, %v; want true", eq, err)
	}
	if eq, err := IsEqualTo(m, NewInt(1)); err != nil || eq {
		t.Errorf("IsEqualTo(2x2 matrix, scalar) = %v, %v; want false", eq, err)
	}
	if near, err := IsCloseTo(m, doubleMatrix(t, []float64{1.01, 2}, []float64{3, 3.99}), 0.05); err != nil || !near {
		t.Errorf("IsCloseTo(nearby matrices) = %v, %v; want true", near, err)
	}
	if _, err := IsLessThan(m, m); !errors.Is(err, ErrUnsupported) {
		t.Errorf("IsLessThan(matrices) error = %v, want %v", err, ErrUnsupported)
	}
}

func TestMatrixIdentities(t *testing.T) {
	m := intMatrix(t, []int32{1, 2, 3}, []int32{4, 5, 6})
	if got, want := m.One().String(), "[1, 0; 0, 1]"; got != want {
		t.Errorf("One() = %v, want %v", got, want)
	}
	if got, want := m.OneRight().String(), "[1, 0, 0; 0, 1, 0; 0, 0, 1]"; got != want {
		t.Errorf("OneRight() = %v, want %v", got, want)
	}
	if got, want := m.Zero().String(), "[0, 0, 0; 0, 0, 0]"; got != want {
		t.Errorf("Zero() = %v, want %v", got, want)
	}

	for _, tt := range []struct {
		name string
		a, b Value
	}{
		{"one times m", m.One(), m},
		{"m times one right", m, m.OneRight()},
	} {
		got, err := Multiply(tt.a, tt.b)
		if err != nil {
			t.Fatal(err)
		}
		if eq, _ := IsEqualTo(got, m); !eq {
			t.Errorf("%s = %v, want %v", tt.name, got, m)
		}
	}

	got, err := Add(m, m.Zero())
	if err != nil {
		t.Fatal(err)
	}
	if eq, _ := IsEqualTo(got, m); !eq {
		t.Errorf("m + zero = %v, want %v", got, m)
	}
}

func TestMatrixAccessors(t *testing.T) {
	m := intMatrix(t, []int32{1, 2, 3}, []int32{4, 5, 6})
	if m.Rows() != 2 || m.Cols() != 3 {
		t.Errorf("shape = %dx%d, want 2x3", m.Rows(), m.Cols())
	}
	if got := m.At(1, 2); got != 6 {
		t.Errorf("At(1, 2) = %v, want 6", got)
	}
	if got := m.Element(0, 1); got.String() != "2" {
		t.Errorf("Element(0, 1) = %v, want 2", got)
	}
	if diff := cmp.Diff([][]int32{{1, 4}, {2, 5}, {3, 6}}, m.Transpose().Slices()); diff != "" {
		t.Errorf("Transpose() mismatch (-want +got):\n%s", diff)
	}

	crop, err := m.Crop(0, 1, 2, 2)
	if err != nil {
		t.Fatal(err)
	}
	if got, want := crop.String(), "[2, 3; 5, 6]"; got != want {
		t.Errorf("Crop() = %v, want %v", got, want)
	}
	if _, err := m.Crop(1, 1, 2, 1); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("Crop(out of bounds) error = %v, want %v", err, ErrIndexOutOfRange)
	}

	if _, err := NewIntMatrix([][]int32{{1, 2}, {3}}); !errors.Is(err, ErrDimensionMismatch) {
		t.Errorf("NewIntMatrix(ragged) error = %v, want %v", err, ErrDimensionMismatch)
	}
	if _, err := WrapDoubleMatrix(2, 2, []float64{1, 2, 3}); !errors.Is(err, ErrDimensionMismatch) {
		t.Errorf("WrapDoubleMatrix(3 elements for 2x2) error = %v, want %v", err, ErrDimensionMismatch)
	}
}

func TestMatrixSplitJoin(t *testing.T) {
	m := intMatrix(t,
		[]int32{1, 2, 3},
		[]int32{4, 5, 6},
		[]int32{7, 8, 9},
	)

	t.Run("round trip", func(t *testing.T) {
		blocks, err := m.Split([]int{1, 2}, []int{2, 1})
		if err != nil {
			t.Fatal(err)
		}
		if got, want := blocks[1][0].String(), "[4, 5; 7, 8]"; got != want {
			t.Errorf("block (1, 0) = %v, want %v", got, want)
		}
		joined, err := Join(blocks)
		if err != nil {
			t.Fatal(err)
		}
		if diff := cmp.Diff(m.Slices(), joined.Slices()); diff != "" {
			t.Errorf("Join(Split()) mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("split clips", func(t *testing.T) {
		blocks, err := m.Split([]int{2, 2}, []int{3})
		if err != nil {
			t.Fatal(err)
		}
		if got, want := blocks[1][0].String(), "[7, 8, 9]"; got != want {
			t.Errorf("clipped block = %v, want %v", got, want)
		}
	})

	t.Run("split past the boundary", func(t *testing.T) {
		if _, err := m.Split([]int{3, 1}, []int{3}); !errors.Is(err, ErrDimensionMismatch) {
			t.Errorf("error = %v, want %v", err, ErrDimensionMismatch)
		}
	})

	tests := []struct {
		name  string
		tiles [][]*IntMatrix
		want  string
	}{
		{
			name: "gaps are zero",
			tiles: [][]*IntMatrix{
				{intMatrix(t, []int32{1}), intMatrix(t, []int32{2, 3})},
				{intMatrix(t, []int32{4}, []int32{5}), intMatrix(t, []int32{6})},
			},
			want: "[1, 2, 3; 4, 6, 0; 5, 0, 0]",
		},
		{
			name: "later tiles overwrite",
			tiles: [][]*IntMatrix{
				{intMatrix(t, []int32{1}), intMatrix(t, []int32{2}, []int32{3})},
				{intMatrix(t, []int32{4}), intMatrix(t, []int32{5})},
			},
			want: "[1, 2; 4, 5]",
		},
		{
			name: "tiles are clipped",
			tiles: [][]*IntMatrix{
				{intMatrix(t, []int32{1}), intMatrix(t, []int32{2})},
				{intMatrix(t, []int32{3, 4, 5}), intMatrix(t, []int32{6})},
			},
			want: "[1, 2; 3, 6]",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Join(tt.tiles)
			if err != nil {
				t.Fatal(err)
			}
			if got.String() != tt.want {
				t.Errorf("Join() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFixMatrix(t *testing.T) {
	p := Precision{Total: 8, Integer: 4}
	m, err := NewFixMatrix([][]Fix{{MustFix(1.5, p), MustFix(2, p)}})
	if err != nil {
		t.Fatal(err)
	}
	if got, want := m.String(), "fix([1.5, 2.0], 8, 4)"; got != want {
		t.Errorf("String() = %v, want %v", got, want)
	}

	product, err := Multiply(m, m.Transpose())
	if err != nil {
		t.Fatal(err)
	}
	// 1.5² + 2² = 6.25, quantized back to the matrix precision.
	if got, want := product.String(), "fix([6.25], 8, 4)"; got != want {
		t.Errorf("Multiply() = %v, want %v", got, want)
	}

	scaled, err := Multiply(m, MustFix(2, p))
	if err != nil {
		t.Fatal(err)
	}
	if got, want := scaled.String(), "fix([3.0, 4.0], 8, 4)"; got != want {
		t.Errorf("Multiply(scalar) = %v, want %v", got, want)
	}

	if _, err := NewFixMatrix([][]Fix{{MustFix(1, p), MustFix(1, Precision{16, 8})}}); !errors.Is(err, ErrPrecisionMismatch) {
		t.Errorf("NewFixMatrix(mixed precisions) error = %v, want %v", err, ErrPrecisionMismatch)
	}
	if _, err := Multiply(m, MustFix(2, Precision{16, 8})); !errors.Is(err, ErrPrecisionMismatch) {
		t.Errorf("Multiply(scalar of another precision) error = %v, want %v", err, ErrPrecisionMismatch)
	}
	other, _ := NewFixMatrix([][]Fix{{MustFix(1, Precision{16, 8}), MustFix(1, Precision{16, 8})}})
	if _, err := Add(m, other); !errors.Is(err, ErrPrecisionMismatch) {
		t.Errorf("Add(matrices of different precisions) error = %v, want %v", err, ErrPrecisionMismatch)
	}
}

package simvalue_test

import (
	"errors"
	"testing"

	. "github.com/go-digitaltwin/go-simvalue"
)

func TestConvert(t *testing.T) {
	intMatrix, _ := NewIntMatrix([][]int32{{1, 2}, {3, 4}})
	tests := []struct {
		name string
		to   Type
		v    Value
		want string
	}{
		{"same type", IntType, NewInt(3), "3"},
		{"widen keeps units", LongType, NewInt(3).WithUnits(meter), "3L * units{1}"},
		{"short to float", FloatType, NewShort(2), "2.0f"},
		{"int to double", DoubleType, NewInt(-2), "-2.0"},
		{"double to smooth", SmoothType, NewDouble(2), "smooth(2.0, {})"},
		{"int to smooth", SmoothType, NewInt(2), "smooth(2.0, {})"},
		{"scalar to matrix", IntMatrixType, NewShort(2), "[2]"},
		{"float to double matrix", DoubleMatrixType, NewFloat(0.5), "[0.5]"},
		{"fix to matrix", FixMatrixType, MustFix(1.5, Precision{8, 4}), "fix([1.5], 8, 4)"},
		{"widen matrix", DoubleMatrixType, intMatrix, "[1.0, 2.0; 3.0, 4.0]"},
		{"widen int matrix to long", LongMatrixType, intMatrix, "[1L, 2L; 3L, 4L]"},
		{"singleton array", ArrayType{Elem: DoubleType}, NewInt(2), "{2.0}"},
		{"nested singleton", ArrayType{Elem: ArrayType{Elem: IntType}}, NewShort(1), "{{1}}"},
		{"array elementwise", ArrayType{Elem: LongType}, MustArray(NewInt(1), NewShort(2)), "{1L, 2L}"},
		{"array to nested array", ArrayType{Elem: ArrayType{Elem: IntType}}, MustArray(NewInt(1), NewInt(2)), "{{1}, {2}}"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Convert(tt.to, tt.v)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.Type() != tt.to {
				t.Errorf("Type() = %v, want %v", got.Type(), tt.to)
			}
			if got.String() != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestConvertErrors(t *testing.T) {
	tests := []struct {
		name string
		to   Type
		v    Value
	}{
		{"narrowing", IntType, NewLong(3)},
		{"abstract", ScalarType, NewInt(1)},
		{"top", GeneralType, True},
		{"incomparable", FixType, NewInt(1)},
		{"matrix with units", IntMatrixType, NewInt(2).WithUnits(meter)},
		{"smooth to double", DoubleType, NewSmooth(1, nil)},
		{"array to scalar", IntType, MustArray(NewInt(1))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Convert(tt.to, tt.v); !errors.Is(err, ErrConversion) {
				t.Errorf("Convert(%v, %v) error = %v, want %v", tt.to, tt.v, err, ErrConversion)
			}
		})
	}
}

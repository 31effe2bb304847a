package simvalue_test

import (
	"errors"
	"testing"

	. "github.com/go-digitaltwin/go-simvalue"
)

func TestNewFix(t *testing.T) {
	p := Precision{Total: 8, Integer: 4}
	tests := []struct {
		x    float64
		want string
	}{
		{1.5, "fix(1.5, 8, 4)"},
		{0, "fix(0.0, 8, 4)"},
		{-8, "fix(-8.0, 8, 4)"},
		// Rounds half up, toward positive infinity.
		{0.03125, "fix(0.0625, 8, 4)"},
		{-0.03125, "fix(0.0, 8, 4)"},
		{0.1, "fix(0.125, 8, 4)"},
		// Saturates at the bounds of the precision.
		{100, "fix(7.9375, 8, 4)"},
		{-100, "fix(-8.0, 8, 4)"},
	}
	for _, tt := range tests {
		got, err := NewFix(tt.x, p)
		if err != nil {
			t.Fatalf("NewFix(%v) unexpected error: %v", tt.x, err)
		}
		if got.String() != tt.want {
			t.Errorf("NewFix(%v) = %v, want %v", tt.x, got, tt.want)
		}
	}

	if _, err := NewFix(1, Precision{Total: 4, Integer: 5}); err == nil {
		t.Errorf("NewFix(invalid precision) error = nil")
	}
}

func TestFixArithmetic(t *testing.T) {
	p := Precision{Total: 8, Integer: 4}
	tests := []struct {
		name string
		op   binaryFunc
		a, b Value
		want string
	}{
		{"add", Add, MustFix(1.5, p), MustFix(2.25, p), "fix(3.75, 8, 4)"},
		{"add saturates", Add, MustFix(7, p), MustFix(7, p), "fix(7.9375, 8, 4)"},
		{"subtract", Subtract, MustFix(1.5, p), MustFix(2.25, p), "fix(-0.75, 8, 4)"},
		{"multiply widens", Multiply, MustFix(1.5, p), MustFix(2.25, p), "fix(3.375, 16, 8)"},
		{"divide", Divide, MustFix(3, p), MustFix(2, p), "fix(1.5, 8, 4)"},
		{"divide rounds to dividend", Divide, MustFix(1, p), MustFix(3, p), "fix(0.3125, 8, 4)"},
		{"divide across precisions", Divide, MustFix(1, p), MustFix(0.5, Precision{16, 2}), "fix(2.0, 8, 4)"},
		{"units", Multiply, MustFix(2, p).WithUnits(meter), MustFix(1, p).WithUnits(meter), "fix(2.0, 16, 8) * units{2}"},
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

func TestFixErrors(t *testing.T) {
	p := Precision{Total: 8, Integer: 4}
	tests := []struct {
		name string
		op   binaryFunc
		a, b Value
		want error
	}{
		{"add different precisions", Add, MustFix(1, p), MustFix(1, Precision{16, 4}), ErrPrecisionMismatch},
		{"divide by zero", Divide, MustFix(1, p), MustFix(0, p), ErrDivideByZero},
		{"modulo", Modulo, MustFix(1, p), MustFix(1, p), ErrUnsupported},
		{"different units", Subtract, MustFix(1, p).WithUnits(meter), MustFix(1, p), ErrUnitMismatch},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := tt.op(tt.a, tt.b); !errors.Is(err, tt.want) {
				t.Errorf("error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestFixQuantize(t *testing.T) {
	x := MustFix(1.6875, Precision{Total: 16, Integer: 4})
	got, err := x.Quantize(Precision{Total: 6, Integer: 4})
	if err != nil {
		t.Fatal(err)
	}
	if want := "fix(1.75, 6, 4)"; got.String() != want {
		t.Errorf("Quantize() = %v, want %v", got, want)
	}
	if f := got.Float64(); f != 1.75 {
		t.Errorf("Float64() = %v, want 1.75", f)
	}
	if eq, _ := IsEqualTo(x, MustFix(1.6875, Precision{Total: 32, Integer: 8})); !eq {
		t.Errorf("IsEqualTo(same value at different precisions) = false, want true")
	}
}

package simvalue

import (
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"
)

// Precision is the bit layout of a fixed-point number: Total bits in two's
// complement, of which Integer bits (including the sign) lie left of the
// binary point.
type Precision struct {
	Total   int
	Integer int
}

// Validate reports whether p describes a usable layout.
func (p Precision) Validate() error {
	if p.Total < 1 || p.Integer < 0 || p.Integer > p.Total {
		return fmt.Errorf("simvalue: invalid precision %s", p)
	}
	return nil
}

func (p Precision) String() string { return fmt.Sprintf("(%d, %d)", p.Total, p.Integer) }

func (p Precision) fraction() uint { return uint(p.Total - p.Integer) }

// bounds returns the smallest and largest representable mantissas.
func (p Precision) bounds() (lo, hi *big.Int) {
	hi = new(big.Int).Lsh(big.NewInt(1), uint(p.Total-1))
	lo = new(big.Int).Neg(hi)
	hi.Sub(hi, big.NewInt(1))
	return lo, hi
}

// Fix is a fixed-point number: the mantissa scaled by 2^-(Total-Integer).
// Results that do not fit the precision saturate at its bounds, and results
// that need more fraction bits round half up.
type Fix struct {
	scalar
	m *big.Int
	p Precision
}

// NewFix quantizes x to the given precision.
func NewFix(x float64, p Precision) (Fix, error) {
	if err := p.Validate(); err != nil {
		return Fix{}, err
	}
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return Fix{}, fmt.Errorf("%w: %v to fixed point", ErrConversion, x)
	}
	r := new(big.Rat).SetFloat64(x)
	num := new(big.Int).Lsh(r.Num(), p.fraction())
	return Fix{m: saturate(divideHalfUp(num, r.Denom()), p), p: p}, nil
}

// MustFix is like NewFix but panics on error. It simplifies initialization of
// constants and tests.
func MustFix(x float64, p Precision) Fix {
	f, err := NewFix(x, p)
	if err != nil {
		panic(err)
	}
	return f
}

// WithUnits returns a copy of x in the given units.
func (x Fix) WithUnits(units UnitVector) Fix {
	x.units = units.clone()
	return x
}

// Precision returns the bit layout of x.
func (x Fix) Precision() Precision { return x.p }

// Float64 returns the nearest float64 to x.
func (x Fix) Float64() float64 {
	f, _ := x.float().Float64()
	return f
}

// Quantize returns x at precision p, rounding half up and saturating.
func (x Fix) Quantize(p Precision) (Fix, error) {
	if err := p.Validate(); err != nil {
		return Fix{}, err
	}
	return x.quantize(p), nil
}

func (x Fix) quantize(p Precision) Fix {
	if p == x.p {
		return x
	}
	m := x.mantissa()
	from, to := x.p.fraction(), p.fraction()
	if to >= from {
		m = new(big.Int).Lsh(m, to-from)
	} else {
		m = divideHalfUp(m, new(big.Int).Lsh(big.NewInt(1), from-to))
	}
	return Fix{scalar: x.scalar, m: saturate(m, p), p: p}
}

func (x Fix) Type() Type { return FixType }

func (x Fix) String() string {
	return x.format("fix(" + x.decimal() + ", " + formatPrecision(x.p) + ")")
}

// decimal formats the exact value of x.
func (x Fix) decimal() string {
	f := x.float()
	s := f.Text('g', -1)
	if !strings.ContainsAny(s, ".e") {
		s += ".0"
	}
	return s
}

func (x Fix) float() *big.Float {
	f := new(big.Float).SetPrec(uint(x.p.Total) + 64).SetInt(x.mantissa())
	return f.SetMantExp(f, -int(x.p.fraction()))
}

// mantissa treats the zero Fix as zero.
func (x Fix) mantissa() *big.Int {
	if x.m == nil {
		return new(big.Int)
	}
	return x.m
}

func (x Fix) samePrecision(y Fix) error {
	if x.p != y.p {
		return fmt.Errorf("%w: %s and %s", ErrPrecisionMismatch, x.p, y.p)
	}
	return nil
}

func (x Fix) add(v Value) (Value, error) {
	y := v.(Fix)
	if err := x.samePrecision(y); err != nil {
		return nil, err
	}
	s, err := x.sameUnits(y.scalar)
	if err != nil {
		return nil, err
	}
	m := new(big.Int).Add(x.mantissa(), y.mantissa())
	return Fix{scalar: s, m: saturate(m, x.p), p: x.p}, nil
}

func (x Fix) subtract(v Value) (Value, error) {
	y := v.(Fix)
	if err := x.samePrecision(y); err != nil {
		return nil, err
	}
	s, err := x.sameUnits(y.scalar)
	if err != nil {
		return nil, err
	}
	m := new(big.Int).Sub(x.mantissa(), y.mantissa())
	return Fix{scalar: s, m: saturate(m, x.p), p: x.p}, nil
}

// multiply is exact: the product's precision is the sum of both layouts.
func (x Fix) multiply(v Value) (Value, error) {
	y := v.(Fix)
	p := Precision{Total: x.p.Total + y.p.Total, Integer: x.p.Integer + y.p.Integer}
	m := new(big.Int).Mul(x.mantissa(), y.mantissa())
	return Fix{scalar: x.productUnits(y.scalar), m: m, p: p}, nil
}

// divide quantizes the quotient to the precision of the dividend.
func (x Fix) divide(v Value) (Value, error) {
	y := v.(Fix)
	if y.mantissa().Sign() == 0 {
		return nil, ErrDivideByZero
	}
	num := new(big.Int).Lsh(x.mantissa(), y.p.fraction())
	m := divideHalfUp(num, y.mantissa())
	return Fix{scalar: x.quotientUnits(y.scalar), m: saturate(m, x.p), p: x.p}, nil
}

func (x Fix) isEqualTo(v Value) (bool, error) {
	y := v.(Fix)
	return x.units.Equal(y.units) && x.cmp(y) == 0, nil
}

func (x Fix) isCloseTo(v Value, epsilon float64) (bool, error) {
	y := v.(Fix)
	if !x.units.Equal(y.units) {
		return false, unitMismatch(x.units, y.units)
	}
	d := new(big.Float).Sub(x.float(), y.float())
	diff, _ := d.Abs(d).Float64()
	return diff <= epsilon, nil
}

func (x Fix) isLessThan(v Value) (bool, error) {
	y := v.(Fix)
	if !x.units.Equal(y.units) {
		return false, unitMismatch(x.units, y.units)
	}
	return x.cmp(y) < 0, nil
}

// cmp compares the exact values of x and y regardless of their precisions.
func (x Fix) cmp(y Fix) int {
	a := new(big.Int).Lsh(x.mantissa(), y.p.fraction())
	b := new(big.Int).Lsh(y.mantissa(), x.p.fraction())
	return a.Cmp(b)
}

func (x Fix) zero() Value { return Fix{scalar: x.scalar, m: new(big.Int), p: x.p} }

func (x Fix) one() Value {
	m := new(big.Int).Lsh(big.NewInt(1), x.p.fraction())
	return Fix{m: saturate(m, x.p), p: x.p}
}

// divideHalfUp returns floor(num/den + 1/2).
func divideHalfUp(num, den *big.Int) *big.Int {
	n := new(big.Int).Lsh(num, 1)
	d := new(big.Int).Lsh(den, 1)
	if d.Sign() < 0 {
		n.Neg(n)
		d.Neg(d)
	}
	n.Add(n, new(big.Int).Abs(den))
	// Div rounds toward negative infinity for a positive divisor.
	return n.Div(n, d)
}

func saturate(m *big.Int, p Precision) *big.Int {
	lo, hi := p.bounds()
	switch {
	case m.Cmp(hi) > 0:
		return hi
	case m.Cmp(lo) < 0:
		return lo
	}
	return m
}

// formatPrecision is shared by Fix and FixMatrix textual forms.
func formatPrecision(p Precision) string {
	return strconv.Itoa(p.Total) + ", " + strconv.Itoa(p.Integer)
}

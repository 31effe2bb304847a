package simvalue

import (
	"strconv"
	"strings"
)

// UnitVector holds one integer exponent per base physical-unit category (e.g.
// length, time, mass). A nil or all-zero vector means unitless. Which
// category each position denotes is configured by the surrounding simulation;
// this package only compares and combines exponents.
//
// Vectors of different lengths compare as if the shorter one were padded with
// zeros.
type UnitVector []int

// IsUnitless reports whether all exponents are zero.
func (u UnitVector) IsUnitless() bool {
	for _, e := range u {
		if e != 0 {
			return false
		}
	}
	return true
}

// Equal reports whether u and v denote the same unit.
func (u UnitVector) Equal(v UnitVector) bool {
	for i := range max(len(u), len(v)) {
		if u.at(i) != v.at(i) {
			return false
		}
	}
	return true
}

// Add returns the unit of a product of quantities in units u and v.
func (u UnitVector) Add(v UnitVector) UnitVector {
	return u.combine(v, 1)
}

// Sub returns the unit of a quotient of quantities in units u and v.
func (u UnitVector) Sub(v UnitVector) UnitVector {
	return u.combine(v, -1)
}

func (u UnitVector) combine(v UnitVector, sign int) UnitVector {
	out := make(UnitVector, max(len(u), len(v)))
	for i := range out {
		out[i] = u.at(i) + sign*v.at(i)
	}
	return out.normalize()
}

// String formats the exponents as "{1, 0, -2}".
func (u UnitVector) String() string {
	var b strings.Builder
	b.WriteByte('{')
	for i, e := range u {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(strconv.Itoa(e))
	}
	b.WriteByte('}')
	return b.String()
}

func (u UnitVector) at(i int) int {
	if i < len(u) {
		return u[i]
	}
	return 0
}

// normalize trims trailing zero exponents; a unitless vector becomes nil. The
// result never aliases a caller-owned slice when u was cloned beforehand.
func (u UnitVector) normalize() UnitVector {
	n := len(u)
	for n > 0 && u[n-1] == 0 {
		n--
	}
	if n == 0 {
		return nil
	}
	return u[:n:n]
}

func (u UnitVector) clone() UnitVector {
	if u.IsUnitless() {
		return nil
	}
	out := make(UnitVector, len(u))
	copy(out, u)
	return out.normalize()
}

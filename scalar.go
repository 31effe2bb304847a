package simvalue

import (
	"math"
	"strconv"
	"strings"
)

// scalar holds the physical units shared by every numeric kind. The vector is
// normalized (see UnitVector.normalize) and never mutated once assigned.
type scalar struct {
	element
	units UnitVector
}

// Units returns a copy of the scalar's unit exponents.
func (s scalar) Units() UnitVector { return s.units.clone() }

// sameUnits returns the units of a sum or difference of s and other.
func (s scalar) sameUnits(other scalar) (scalar, error) {
	if !s.units.Equal(other.units) {
		return scalar{}, unitMismatch(s.units, other.units)
	}
	return s, nil
}

func (s scalar) productUnits(other scalar) scalar {
	return scalar{units: s.units.Add(other.units)}
}

func (s scalar) quotientUnits(other scalar) scalar {
	return scalar{units: s.units.Sub(other.units)}
}

// format appends the units, if any, to the textual form of a number.
func (s scalar) format(number string) string {
	if s.units.IsUnitless() {
		return number
	}
	return number + " * units" + s.units.String()
}

// unitsOf returns the units of v, or nil if v bears none.
func unitsOf(v Value) UnitVector {
	if u, ok := v.(UnitBearing); ok {
		return u.Units()
	}
	return nil
}

// formatFloat formats f in its shortest round-trippable form, always with a
// decimal point (or exponent) so that it never reads as an integer.
func formatFloat(f float64, bitSize int) string {
	s := strconv.FormatFloat(f, 'g', -1, bitSize)
	if math.IsInf(f, 0) || math.IsNaN(f) || strings.ContainsAny(s, ".e") {
		return s
	}
	return s + ".0"
}

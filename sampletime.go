package simvalue

import (
	"cmp"
	"fmt"
)

// SampleTime is the simulation time at which a Smooth value was sampled. The
// simulation engine owns the representation of time; this package only orders
// times and measures the distance between them.
type SampleTime interface {
	// Compare returns -1, 0 or +1 if the receiver is before, equal to, or after
	// other.
	Compare(other SampleTime) int
	// Sub returns the receiver minus other, in seconds.
	Sub(other SampleTime) float64
}

// Seconds is a SampleTime measured in seconds since the start of a
// simulation. It only compares with other Seconds.
type Seconds float64

func (s Seconds) Compare(other SampleTime) int {
	return cmp.Compare(s, asSeconds(other))
}

func (s Seconds) Sub(other SampleTime) float64 {
	return float64(s - asSeconds(other))
}

func (s Seconds) String() string { return formatFloat(float64(s), 64) }

func asSeconds(t SampleTime) Seconds {
	s, ok := t.(Seconds)
	if !ok {
		panic(fmt.Sprintf("simvalue: cannot relate Seconds and %T", t))
	}
	return s
}

package latticetest

import (
	"fmt"

	"github.com/google/go-cmp/cmp"

	"github.com/go-digitaltwin/go-simvalue"
)

// Each check returns a description of the law it found broken, or an empty
// string.

// atLeast reports whether a is the same as or higher than b.
func atLeast(a, b simvalue.Type) bool {
	r := simvalue.Compare(a, b)
	return r == simvalue.Same || r == simvalue.Higher
}

func reflexive(a simvalue.Type) string {
	if r := simvalue.Compare(a, a); r != simvalue.Same {
		return fmt.Sprintf("Compare(%v, %v) = %v, want %v", a, a, r, simvalue.Same)
	}
	return ""
}

// Checks that comparing in reverse yields the mirror image.
func mirror(a, b simvalue.Type) string {
	ab, ba := simvalue.Compare(a, b), simvalue.Compare(b, a)
	if ba != ab.Mirror() {
		return fmt.Sprintf("Compare(%v, %v) = %v but Compare(%v, %v) = %v", a, b, ab, b, a, ba)
	}
	return ""
}

func transitive(a, b, c simvalue.Type) string {
	if atLeast(a, b) && atLeast(b, c) && !atLeast(a, c) {
		return fmt.Sprintf("%v >= %v >= %v but Compare(%v, %v) = %v", a, b, c, a, c, simvalue.Compare(a, c))
	}
	return ""
}

func commutative(a, b simvalue.Type) string {
	ab, ba := simvalue.LeastUpperBound(a, b), simvalue.LeastUpperBound(b, a)
	if diff := cmp.Diff(ab, ba); diff != "" {
		return fmt.Sprintf("LeastUpperBound(%v, %v) differs when reversed (-ab +ba):\n%v", a, b, diff)
	}
	return ""
}

func upperBound(a, b simvalue.Type) string {
	lub := simvalue.LeastUpperBound(a, b)
	if !atLeast(lub, a) || !atLeast(lub, b) {
		return fmt.Sprintf("LeastUpperBound(%v, %v) = %v, not an upper bound", a, b, lub)
	}
	return ""
}

// Checks that no other upper bound u of a and b lies below their least upper
// bound.
func least(a, b, u simvalue.Type) string {
	lub := simvalue.LeastUpperBound(a, b)
	if atLeast(u, a) && atLeast(u, b) && !atLeast(u, lub) {
		return fmt.Sprintf("%v is an upper bound of %v and %v, but Compare(%v, LeastUpperBound = %v) = %v", u, a, b, u, lub, simvalue.Compare(u, lub))
	}
	return ""
}

package simvalue

import "fmt"

// Type describes the kind of a Value and its position in the type lattice.
// The implementations are BaseType and ArrayType; both are comparable with ==.
type Type interface {
	String() string

	// lattice is a no-op method that seals the interface.
	lattice()
}

// BaseType enumerates the non-structured types of the lattice.
type BaseType uint8

const (
	// UnknownType is the bottom of the lattice; it is lower than every type.
	UnknownType BaseType = iota
	BooleanType
	ShortType
	IntType
	LongType
	FloatType
	DoubleType
	FixType
	SmoothType
	// ScalarType is the abstract upper bound of the numeric scalar kinds. No
	// value has this type and nothing converts to it.
	ScalarType
	IntMatrixType
	LongMatrixType
	DoubleMatrixType
	FixMatrixType
	// GeneralType is the top of the lattice; it is higher than every type.
	GeneralType

	numBaseTypes
)

var baseTypeNames = [numBaseTypes]string{
	UnknownType:      "unknown",
	BooleanType:      "boolean",
	ShortType:        "short",
	IntType:          "int",
	LongType:         "long",
	FloatType:        "float",
	DoubleType:       "double",
	FixType:          "fixedpoint",
	SmoothType:       "smooth",
	ScalarType:       "scalar",
	IntMatrixType:    "[int]",
	LongMatrixType:   "[long]",
	DoubleMatrixType: "[double]",
	FixMatrixType:    "[fixedpoint]",
	GeneralType:      "general",
}

func (t BaseType) String() string {
	if t < numBaseTypes {
		return baseTypeNames[t]
	}
	return fmt.Sprintf("BaseType(%d)", uint8(t))
}

func (BaseType) lattice() {}

// ArrayType is the type of an Array whose elements all have type Elem.
type ArrayType struct {
	Elem Type
}

func (t ArrayType) String() string { return "arrayType(" + t.Elem.String() + ")" }

func (ArrayType) lattice() {}

// IsAbstract reports whether no value can have type t, in which case
// converting to t always fails.
func IsAbstract(t Type) bool {
	switch t := t.(type) {
	case BaseType:
		return t == UnknownType || t == ScalarType || t == GeneralType
	case ArrayType:
		return IsAbstract(t.Elem)
	}
	return true
}

// Relation is the outcome of comparing two types.
type Relation int8

const (
	// Same means both types are identical.
	Same Relation = iota
	// Higher means the first type can losslessly represent every value of the
	// second type.
	Higher
	// Lower means the second type can losslessly represent every value of the
	// first type.
	Lower
	// Incomparable means neither type can represent all values of the other.
	Incomparable
)

func (r Relation) String() string {
	switch r {
	case Same:
		return "same"
	case Higher:
		return "higher"
	case Lower:
		return "lower"
	case Incomparable:
		return "incomparable"
	}
	return fmt.Sprintf("Relation(%d)", int8(r))
}

// Mirror returns the relation of the swapped comparison.
func (r Relation) Mirror() Relation {
	switch r {
	case Higher:
		return Lower
	case Lower:
		return Higher
	}
	return r
}

// Compare returns the relation of a to b.
//
// Arrays compare structurally: Array(E1) relates to Array(E2) the way E1
// relates to E2, and Array(E) is higher than a non-array type T whenever E is
// the same as or higher than T (a value of T converts to a singleton array).
func Compare(a, b Type) Relation {
	switch {
	case a == b:
		return Same
	case a == UnknownType, b == GeneralType:
		return Lower
	case a == GeneralType, b == UnknownType:
		return Higher
	}

	x, aArray := a.(ArrayType)
	y, bArray := b.(ArrayType)
	switch {
	case aArray && bArray:
		return Compare(x.Elem, y.Elem)
	case aArray:
		if r := Compare(x.Elem, b); r == Same || r == Higher {
			return Higher
		}
		return Incomparable
	case bArray:
		if r := Compare(a, y.Elem); r == Same || r == Lower {
			return Lower
		}
		return Incomparable
	}
	return baseLattice.compare(mustBase(a), mustBase(b))
}

// LeastUpperBound returns the lowest type that is the same as or higher than
// both a and b. The result may be abstract (e.g. ScalarType), in which case
// values of a and b cannot be combined.
func LeastUpperBound(a, b Type) Type {
	switch Compare(a, b) {
	case Same, Higher:
		return a
	case Lower:
		return b
	}

	x, aArray := a.(ArrayType)
	y, bArray := b.(ArrayType)
	switch {
	case aArray && bArray:
		return arrayOf(LeastUpperBound(x.Elem, y.Elem))
	case aArray:
		return arrayOf(LeastUpperBound(x.Elem, b))
	case bArray:
		return arrayOf(LeastUpperBound(a, y.Elem))
	}
	return baseLattice.lub[mustBase(a)][mustBase(b)]
}

// arrayOf returns the array type of elem, collapsing to the top of the
// lattice when elements have nothing in common.
func arrayOf(elem Type) Type {
	if elem == GeneralType {
		return GeneralType
	}
	return ArrayType{Elem: elem}
}

func mustBase(t Type) BaseType {
	b, ok := t.(BaseType)
	if !ok {
		panic(fmt.Sprintf("simvalue: unexpected type %T in lattice", t))
	}
	return b
}

// lattice holds the reflexive-transitive closure of the base type order and
// the table of least upper bounds derived from it.
type lattice struct {
	leq [numBaseTypes][numBaseTypes]bool
	lub [numBaseTypes][numBaseTypes]BaseType
}

// baseLattice is computed once at package initialization.
var baseLattice = newLattice([][2]BaseType{
	{ShortType, IntType},
	{IntType, LongType},
	{LongType, ScalarType},
	{ShortType, FloatType},
	{FloatType, DoubleType},
	{IntType, DoubleType},
	{DoubleType, SmoothType},
	{SmoothType, ScalarType},
	{FixType, ScalarType},
	{IntType, IntMatrixType},
	{LongType, LongMatrixType},
	{DoubleType, DoubleMatrixType},
	{FixType, FixMatrixType},
	{IntMatrixType, LongMatrixType},
	{IntMatrixType, DoubleMatrixType},
})

// newLattice closes the given covering edges (lower, higher) under
// reflexivity and transitivity. UnknownType is placed below and GeneralType
// above every type.
func newLattice(edges [][2]BaseType) *lattice {
	l := new(lattice)
	for t := range numBaseTypes {
		l.leq[t][t] = true
		l.leq[UnknownType][t] = true
		l.leq[t][GeneralType] = true
	}
	for _, e := range edges {
		l.leq[e[0]][e[1]] = true
	}
	for k := range numBaseTypes {
		for i := range numBaseTypes {
			for j := range numBaseTypes {
				if l.leq[i][k] && l.leq[k][j] {
					l.leq[i][j] = true
				}
			}
		}
	}
	for a := range numBaseTypes {
		for b := range numBaseTypes {
			l.lub[a][b] = l.leastUpper(a, b)
		}
	}
	return l
}

func (l *lattice) compare(a, b BaseType) Relation {
	switch {
	case a == b:
		return Same
	case l.leq[b][a]:
		return Higher
	case l.leq[a][b]:
		return Lower
	}
	return Incomparable
}

// leastUpper scans the common upper bounds of a and b, keeping the lowest
// seen so far. The base order is a lattice, so the scan ends at the unique
// minimum.
func (l *lattice) leastUpper(a, b BaseType) BaseType {
	best := GeneralType
	for u := range numBaseTypes {
		if l.leq[a][u] && l.leq[b][u] && l.leq[u][best] {
			best = u
		}
	}
	return best
}

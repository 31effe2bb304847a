package simvalue

import "strconv"

// Boolean is a truth value. It supports equality, and its identities are
// false (zero) and true (one); it takes part in no arithmetic.
type Boolean struct {
	element
	v bool
}

// True and False are the two Boolean values.
var (
	True  = Boolean{v: true}
	False = Boolean{v: false}
)

// NewBoolean returns True or False.
func NewBoolean(v bool) Boolean { return Boolean{v: v} }

// Value returns the truth value.
func (b Boolean) Value() bool { return b.v }

func (b Boolean) Type() Type     { return BooleanType }
func (b Boolean) String() string { return strconv.FormatBool(b.v) }

func (b Boolean) isEqualTo(v Value) (bool, error) {
	return b.v == v.(Boolean).v, nil
}

func (b Boolean) zero() Value { return False }
func (b Boolean) one() Value  { return True }

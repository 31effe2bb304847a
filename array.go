package simvalue

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// Array is an immutable sequence of values of one element type: the least
// upper bound of its elements' types, to which every element was converted at
// construction. Arrays broadcast against non-array operands, and combine
// elementwise with other arrays of equal length (or of length one).
type Array struct {
	element
	elemType Type
	store    arrayStore
}

// arrayStore is the backing storage of an Array. Implementations are never
// mutated after construction.
type arrayStore interface {
	len() int
	at(i int) Value
}

type flatStore []Value

func (s flatStore) len() int       { return len(s) }
func (s flatStore) at(i int) Value { return s[i] }

// patchStore overlays a single element on a base store, sharing the base
// instead of copying it.
type patchStore struct {
	base  arrayStore
	index int
	value Value
	depth int
}

func (s patchStore) len() int { return s.base.len() }

func (s patchStore) at(i int) Value {
	if i == s.index {
		return s.value
	}
	return s.base.at(i)
}

// maxPatchDepth bounds the chain of overlays produced by repeated updates;
// lookups cost one step per overlay.
const maxPatchDepth = 16

// errEmptyArray is returned by NewArray without elements: the element type of
// an empty array cannot be inferred.
var errEmptyArray = errors.New("simvalue: empty array needs an explicit element type")

// NewArray returns an array of the given elements, converted to their least
// upper bound type. The slice is copied.
func NewArray(elements ...Value) (*Array, error) {
	if len(elements) == 0 {
		return nil, errEmptyArray
	}
	return newArray(slices.Clone(elements))
}

// MustArray is like NewArray but panics on error.
func MustArray(elements ...Value) *Array {
	a, err := NewArray(elements...)
	if err != nil {
		panic(err)
	}
	return a
}

// NewEmptyArray returns an array with no elements of the given element type.
func NewEmptyArray(elemType Type) *Array {
	return wrapArray(elemType, nil)
}

// newArray takes ownership of elements, converting them in place.
func newArray(elements []Value) (*Array, error) {
	if len(elements) == 0 {
		return nil, errEmptyArray
	}
	var elemType Type
	for i, e := range elements {
		if e == nil {
			return nil, fmt.Errorf("simvalue: nil array element %d", i)
		}
		if i == 0 {
			elemType = e.Type()
			continue
		}
		elemType = LeastUpperBound(elemType, e.Type())
	}
	for i, e := range elements {
		c, err := Convert(elemType, e)
		if err != nil {
			return nil, fmt.Errorf("array element %d: %w", i, err)
		}
		elements[i] = c
	}
	return wrapArray(elemType, elements), nil
}

// wrapArray takes ownership of elements, which must already have elemType.
func wrapArray(elemType Type, elements []Value) *Array {
	return &Array{elemType: elemType, store: flatStore(elements)}
}

func (a *Array) Type() Type { return ArrayType{Elem: a.elemType} }

// String formats the array as "{1, 2, 3}".
func (a *Array) String() string {
	var b strings.Builder
	b.WriteByte('{')
	for i := range a.Len() {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(a.At(i).String())
	}
	b.WriteByte('}')
	return b.String()
}

// Len returns the number of elements.
func (a *Array) Len() int { return a.store.len() }

// At returns the i-th element. It panics if i is out of range.
func (a *Array) At(i int) Value {
	if i < 0 || i >= a.Len() {
		panic(fmt.Sprintf("simvalue: array index %d out of range [0, %d)", i, a.Len()))
	}
	return a.store.at(i)
}

// Elements returns a copy of the elements.
func (a *Array) Elements() []Value {
	return a.appendTo(make([]Value, 0, a.Len()))
}

func (a *Array) appendTo(dst []Value) []Value {
	if s, ok := a.store.(flatStore); ok {
		return append(dst, s...)
	}
	for i := range a.Len() {
		dst = append(dst, a.store.at(i))
	}
	return dst
}

// ElementType returns the type shared by all elements.
func (a *Array) ElementType() Type { return a.elemType }

// Depth returns the number of array levels nested inside a: zero for an array
// of scalars, one for an array of arrays of scalars, and so on.
func (a *Array) Depth() int {
	d := 0
	for t, ok := a.elemType.(ArrayType); ok; t, ok = t.Elem.(ArrayType) {
		d++
	}
	return d
}

// Update returns a copy of a with the i-th element replaced by v. When v fits
// the element type the copy shares a's storage.
func (a *Array) Update(i int, v Value) (*Array, error) {
	if i < 0 || i >= a.Len() {
		return nil, fmt.Errorf("%w: update index %d of array of length %d", ErrIndexOutOfRange, i, a.Len())
	}
	switch Compare(a.elemType, v.Type()) {
	case Same, Higher:
		c, err := Convert(a.elemType, v)
		if err != nil {
			return nil, err
		}
		return &Array{elemType: a.elemType, store: a.patch(i, c)}, nil
	}
	// The element type widens, every element converts.
	elements := a.Elements()
	elements[i] = v
	return newArray(elements)
}

func (a *Array) patch(i int, v Value) arrayStore {
	depth := 1
	if p, ok := a.store.(patchStore); ok {
		depth = p.depth + 1
	}
	if depth > maxPatchDepth {
		elements := a.Elements()
		elements[i] = v
		return flatStore(elements)
	}
	return patchStore{base: a.store, index: i, value: v, depth: depth}
}

// Append returns the elements of a followed by those of b.
func (a *Array) Append(b *Array) (*Array, error) {
	return Concat(a, b)
}

// Concat returns the concatenation of arrays, converting every element to the
// least upper bound of their element types. Arrays whose element types have
// no concrete upper bound cannot be concatenated, even when empty.
func Concat(arrays ...*Array) (*Array, error) {
	if len(arrays) == 0 {
		return nil, errEmptyArray
	}
	elemType := arrays[0].elemType
	n := 0
	for _, a := range arrays {
		elemType = LeastUpperBound(elemType, a.elemType)
		n += a.Len()
	}
	if IsAbstract(elemType) {
		return nil, fmt.Errorf("%w: concatenate arrays of %s", ErrIncomparableTypes, elemType)
	}

	elements := make([]Value, 0, n)
	for _, a := range arrays {
		// Elements of the target type are shared rather than converted. Nested
		// arrays still go through Convert, which returns them as they are.
		if a.Depth() == 0 && Compare(a.elemType, elemType) == Same {
			elements = a.appendTo(elements)
			continue
		}
		for i := range a.Len() {
			c, err := Convert(elemType, a.At(i))
			if err != nil {
				return nil, err
			}
			elements = append(elements, c)
		}
	}
	return wrapArray(elemType, elements), nil
}

// Subarray returns count elements starting at index. The count is clipped at
// the end of the array.
func (a *Array) Subarray(index, count int) (*Array, error) {
	if index < 0 || count < 0 || index > a.Len() {
		return nil, fmt.Errorf("%w: subarray(%d, %d) of array of length %d", ErrIndexOutOfRange, index, count, a.Len())
	}
	count = min(count, a.Len()-index)
	if s, ok := a.store.(flatStore); ok {
		return &Array{elemType: a.elemType, store: s[index : index+count : index+count]}, nil
	}
	elements := make([]Value, count)
	for i := range elements {
		elements[i] = a.store.at(index + i)
	}
	return wrapArray(a.elemType, elements), nil
}

// Extract selects elements of a. The selector is either an array of booleans
// of the same length as a (keeping the elements where it is true), or an
// array of integers (the indexes of the elements to keep, in order).
func (a *Array) Extract(selector *Array) (*Array, error) {
	var elements []Value
	switch selector.elemType {
	case BooleanType:
		if selector.Len() != a.Len() {
			return nil, fmt.Errorf("%w: mask of length %d for array of length %d", ErrDimensionMismatch, selector.Len(), a.Len())
		}
		for i := range a.Len() {
			if selector.At(i).(Boolean).v {
				elements = append(elements, a.store.at(i))
			}
		}
	case ShortType, IntType, LongType:
		elements = make([]Value, 0, selector.Len())
		for i := range selector.Len() {
			index, err := integerValue(selector.At(i))
			if err != nil {
				return nil, err
			}
			if index < 0 || index >= int64(a.Len()) {
				return nil, fmt.Errorf("%w: extract index %d from array of length %d", ErrIndexOutOfRange, index, a.Len())
			}
			elements = append(elements, a.store.at(int(index)))
		}
	default:
		if selector.Len() > 0 {
			return nil, fmt.Errorf("%w: extract with selector of %s", ErrUnsupported, selector.Type())
		}
	}
	return wrapArray(a.elemType, elements), nil
}

package jsonvalue

import (
	"iter"
	"slices"
)

// Array is an ordered sequence of values. Order is construction order.
type Array struct {
	elems []Value
}

// NewArray returns an Array holding a copy of vals.
func NewArray(vals ...Value) Array {
	return Array{elems: slices.Clone(vals)}
}

// WrapArray returns an Array that takes ownership of vals. The caller must
// not modify vals afterwards.
func WrapArray(vals []Value) Array {
	return Array{elems: vals}
}

// Len returns the number of elements.
func (a Array) Len() int {
	return len(a.elems)
}

// At returns the i'th element. It panics if i is out of range.
func (a Array) At(i int) Value {
	return a.elems[i]
}

// All iterates over index/element pairs in order.
func (a Array) All() iter.Seq2[int, Value] {
	return slices.All(a.elems)
}

// Values returns a copy of the elements.
func (a Array) Values() []Value {
	return slices.Clone(a.elems)
}

// Append returns a new Array with vals added at the end. a is unchanged.
func (a Array) Append(vals ...Value) Array {
	elems := make([]Value, 0, len(a.elems)+len(vals))
	elems = append(elems, a.elems...)
	return Array{elems: append(elems, vals...)}
}

// Compare orders arrays element by element; on a common prefix the shorter
// array comes first.
func (a Array) Compare(b Array) int {
	return slices.CompareFunc(a.elems, b.elems, Compare)
}

// Equal reports whether a and b hold equal elements in the same order.
func (a Array) Equal(b Array) bool {
	return slices.EqualFunc(a.elems, b.elems, Value.Equal)
}

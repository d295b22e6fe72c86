// Package jsonvalue holds the in-memory JSON value tree.
//
// A Value is one of exactly six kinds: null, bool, number, string, array and
// object. Values are immutable once built, whether by the parser or by the
// constructors here, so a tree can be shared freely between goroutines.
//
// Every Value has a total order (Compare), an equality consistent with it
// (Equal) and a hash consistent with equality (Hash), so values can be
// deduplicated and used as keys through Set.
//
// Strings are sequences of UTF-16 code units that may hold lone surrogates;
// see String.
package jsonvalue

import (
	"cmp"
	"encoding/binary"
	"fmt"

	"github.com/cespare/xxhash/v2"
)

// Kind identifies the type of a JSON value. Kinds are ordered; Compare sorts
// values of different kinds by Kind.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Value is a JSON value. The zero Value is null.
type Value struct {
	kind Kind
	b    bool
	num  Number
	str  String
	arr  Array
	obj  Object
}

// Null returns the null value.
func Null() Value {
	return Value{}
}

// BoolValue returns b as a Value.
func BoolValue(b bool) Value {
	return Value{kind: KindBool, b: b}
}

// NumberValue returns n as a Value.
func NumberValue(n Number) Value {
	return Value{kind: KindNumber, num: n}
}

// Float returns f as a number Value, or ErrNotFinite.
func Float(f float64) (Value, error) {
	n, err := NewNumber(f)
	if err != nil {
		return Value{}, err
	}
	return NumberValue(n), nil
}

// StringValue returns s as a Value.
func StringValue(s String) Value {
	return Value{kind: KindString, str: s}
}

// Text returns Go text as a string Value, or ErrInvalidUTF8.
func Text(s string) (Value, error) {
	str, err := FromText(s)
	if err != nil {
		return Value{}, err
	}
	return StringValue(str), nil
}

// ArrayValue returns a as a Value.
func ArrayValue(a Array) Value {
	return Value{kind: KindArray, arr: a}
}

// List returns an array Value holding vals.
func List(vals ...Value) Value {
	return ArrayValue(NewArray(vals...))
}

// ObjectValue returns o as a Value.
func ObjectValue(o Object) Value {
	return Value{kind: KindObject, obj: o}
}

// Kind returns the kind of v.
func (v Value) Kind() Kind {
	return v.kind
}

// IsNull reports whether v is null.
func (v Value) IsNull() bool {
	return v.kind == KindNull
}

// AsBool returns the boolean held by v and whether v is a bool.
func (v Value) AsBool() (bool, bool) {
	return v.b, v.kind == KindBool
}

// AsNumber returns the number held by v and whether v is a number.
func (v Value) AsNumber() (Number, bool) {
	return v.num, v.kind == KindNumber
}

// AsString returns the string held by v and whether v is a string.
func (v Value) AsString() (String, bool) {
	return v.str, v.kind == KindString
}

// AsArray returns the array held by v and whether v is an array.
func (v Value) AsArray() (Array, bool) {
	return v.arr, v.kind == KindArray
}

// AsObject returns the object held by v and whether v is an object.
func (v Value) AsObject() (Object, bool) {
	return v.obj, v.kind == KindObject
}

// Compare orders a and b: first by Kind, then false < true, numbers by
// Number.Compare, strings by code units, arrays and objects element by
// element (objects as key/value pairs in key order) with the shorter
// container first on a common prefix. It returns -1, 0 or +1.
func Compare(a, b Value) int {
	if c := cmp.Compare(a.kind, b.kind); c != 0 {
		return c
	}
	switch a.kind {
	case KindNull:
		return 0
	case KindBool:
		return compareBool(a.b, b.b)
	case KindNumber:
		return a.num.Compare(b.num)
	case KindString:
		return a.str.Compare(b.str)
	case KindArray:
		return a.arr.Compare(b.arr)
	case KindObject:
		return a.obj.Compare(b.obj)
	}
	panic(invalidKind(a.kind))
}

// Compare is Compare(v, other).
func (v Value) Compare(other Value) int {
	return Compare(v, other)
}

// Equal reports whether v and other are the same value.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindBool:
		return v.b == other.b
	case KindNumber:
		return v.num.Equal(other.num)
	case KindString:
		return v.str == other.str
	case KindArray:
		return v.arr.Equal(other.arr)
	case KindObject:
		return v.obj.Equal(other.obj)
	}
	panic(invalidKind(v.kind))
}

// Hash returns a 64-bit hash of v. Equal values have equal hashes.
func (v Value) Hash() uint64 {
	d := xxhash.New()
	v.writeHash(d)
	return d.Sum64()
}

// writeHash feeds a kind-tagged, length-prefixed encoding of v to d.
func (v Value) writeHash(d *xxhash.Digest) {
	var hdr [9]byte
	hdr[0] = byte(v.kind)
	switch v.kind {
	case KindNull:
		_, _ = d.Write(hdr[:1])
	case KindBool:
		if v.b {
			hdr[1] = 1
		}
		_, _ = d.Write(hdr[:2])
	case KindNumber:
		binary.LittleEndian.PutUint64(hdr[1:], v.num.Bits())
		_, _ = d.Write(hdr[:])
	case KindString:
		writeHashString(d, hdr, v.str)
	case KindArray:
		binary.LittleEndian.PutUint64(hdr[1:], uint64(v.arr.Len()))
		_, _ = d.Write(hdr[:])
		for _, e := range v.arr.elems {
			e.writeHash(d)
		}
	case KindObject:
		binary.LittleEndian.PutUint64(hdr[1:], uint64(v.obj.Len()))
		_, _ = d.Write(hdr[:])
		for _, m := range v.obj.members {
			writeHashString(d, hdr, m.Key)
			m.Value.writeHash(d)
		}
	}
}

func writeHashString(d *xxhash.Digest, hdr [9]byte, s String) {
	hdr[0] = byte(KindString)
	binary.LittleEndian.PutUint64(hdr[1:], uint64(len(s.wtf8)))
	_, _ = d.Write(hdr[:])
	_, _ = d.WriteString(s.wtf8)
}

func compareBool(a, b bool) int {
	switch {
	case a == b:
		return 0
	case a:
		return 1
	default:
		return -1
	}
}

func invalidKind(k Kind) string {
	return fmt.Sprintf("jsonvalue: invalid kind %d", int(k))
}

// Package jsoncanon writes jsonvalue trees as canonical JSON text.
//
// The output has no insignificant whitespace, object members appear in
// ascending UTF-16 code-unit order of their keys, strings use the minimal
// escape set, and numbers use the shortest round-trip form laid out as in
// ECMAScript. For trees that hold only well-formed strings and no negative
// zero, that is exactly the RFC 8785 (JCS) canonical form. Lone surrogates
// are written as \uXXXX escapes and negative zero as -0, so parsing the
// output always gives back an equal tree.
package jsoncanon

import (
	"fmt"

	"github.com/lattice-substrate/json-wtf/jsonvalue"
)

// Serialize returns the canonical text of v. The output is deterministic:
// equal values always produce identical bytes. No trailing newline is added.
func Serialize(v jsonvalue.Value) []byte {
	return Append(nil, v)
}

// Append appends the canonical text of v to dst.
func Append(dst []byte, v jsonvalue.Value) []byte {
	switch v.Kind() {
	case jsonvalue.KindNull:
		return append(dst, "null"...)
	case jsonvalue.KindBool:
		if b, _ := v.AsBool(); b {
			return append(dst, "true"...)
		}
		return append(dst, "false"...)
	case jsonvalue.KindNumber:
		n, _ := v.AsNumber()
		return n.AppendJSON(dst)
	case jsonvalue.KindString:
		s, _ := v.AsString()
		return s.AppendQuoted(dst)
	case jsonvalue.KindArray:
		a, _ := v.AsArray()
		return appendArray(dst, a)
	case jsonvalue.KindObject:
		o, _ := v.AsObject()
		return appendObject(dst, o)
	}
	panic(fmt.Sprintf("jsoncanon: unknown value kind %s", v.Kind()))
}

func appendArray(dst []byte, a jsonvalue.Array) []byte {
	dst = append(dst, '[')
	for i, e := range a.All() {
		if i > 0 {
			dst = append(dst, ',')
		}
		dst = Append(dst, e)
	}
	return append(dst, ']')
}

// appendObject relies on Object keeping its members in code-unit key order.
func appendObject(dst []byte, o jsonvalue.Object) []byte {
	dst = append(dst, '{')
	first := true
	for k, v := range o.All() {
		if !first {
			dst = append(dst, ',')
		}
		first = false
		dst = k.AppendQuoted(dst)
		dst = append(dst, ':')
		dst = Append(dst, v)
	}
	return append(dst, '}')
}

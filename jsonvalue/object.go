package jsonvalue

import (
	"iter"
	"maps"
	"slices"
)

// Member is one key/value pair of an Object.
type Member struct {
	Key   String
	Value Value
}

// Object is a mapping from String keys to values. Members are kept sorted
// by key in ascending code-unit order, so iteration, comparison and
// serialization all see the same order. Keys are unique.
type Object struct {
	members []Member
}

// NewObject returns an Object holding members. When a key repeats, the last
// occurrence wins.
func NewObject(members ...Member) Object {
	return WrapObject(slices.Clone(members))
}

// WrapObject is like NewObject but takes ownership of members, which it
// sorts in place. The caller must not use the slice afterwards.
func WrapObject(members []Member) Object {
	if len(members) < 2 {
		return Object{members: members}
	}
	slices.SortStableFunc(members, compareMemberKeys)
	// Stable sort keeps input order inside each run of equal keys; keep the
	// last of each run.
	out := members[:0]
	for i, m := range members {
		if i+1 < len(members) && members[i+1].Key == m.Key {
			continue
		}
		out = append(out, m)
	}
	clear(members[len(out):])
	return Object{members: out}
}

// FromMap returns an Object holding the entries of m.
func FromMap(m map[String]Value) Object {
	members := make([]Member, 0, len(m))
	for k, v := range m {
		members = append(members, Member{Key: k, Value: v})
	}
	slices.SortFunc(members, compareMemberKeys)
	return Object{members: members}
}

// Len returns the number of members.
func (o Object) Len() int {
	return len(o.members)
}

func (o Object) find(key String) (int, bool) {
	return slices.BinarySearchFunc(o.members, key, func(m Member, k String) int {
		return m.Key.Compare(k)
	})
}

// Get returns the value stored under key.
func (o Object) Get(key String) (Value, bool) {
	i, ok := o.find(key)
	if !ok {
		return Value{}, false
	}
	return o.members[i].Value, true
}

// GetText is Get for a key given as Go text.
func (o Object) GetText(key string) (Value, bool) {
	k, err := FromText(key)
	if err != nil {
		return Value{}, false
	}
	return o.Get(k)
}

// Has reports whether key is present.
func (o Object) Has(key String) bool {
	_, ok := o.find(key)
	return ok
}

// With returns a copy of o with key set to v. o is unchanged.
func (o Object) With(key String, v Value) Object {
	i, ok := o.find(key)
	if ok {
		members := slices.Clone(o.members)
		members[i].Value = v
		return Object{members: members}
	}
	members := make([]Member, 0, len(o.members)+1)
	members = append(members, o.members[:i]...)
	members = append(members, Member{Key: key, Value: v})
	members = append(members, o.members[i:]...)
	return Object{members: members}
}

// Without returns a copy of o with key removed. o is unchanged.
func (o Object) Without(key String) Object {
	i, ok := o.find(key)
	if !ok {
		return o
	}
	members := make([]Member, 0, len(o.members)-1)
	members = append(members, o.members[:i]...)
	members = append(members, o.members[i+1:]...)
	return Object{members: members}
}

// Members returns a copy of the members in key order.
func (o Object) Members() []Member {
	return slices.Clone(o.members)
}

// Keys returns the keys in order.
func (o Object) Keys() []String {
	keys := make([]String, len(o.members))
	for i, m := range o.members {
		keys[i] = m.Key
	}
	return keys
}

// All iterates over key/value pairs in key order.
func (o Object) All() iter.Seq2[String, Value] {
	return func(yield func(String, Value) bool) {
		for _, m := range o.members {
			if !yield(m.Key, m.Value) {
				return
			}
		}
	}
}

// Map returns the members as a Go map.
func (o Object) Map() map[String]Value {
	return maps.Collect(o.All())
}

// Compare orders objects as sequences of (key, value) pairs in key order;
// on a common prefix the object with fewer members comes first.
func (o Object) Compare(other Object) int {
	return slices.CompareFunc(o.members, other.members, func(a, b Member) int {
		if c := a.Key.Compare(b.Key); c != 0 {
			return c
		}
		return Compare(a.Value, b.Value)
	})
}

// Equal reports whether o and other hold the same members.
func (o Object) Equal(other Object) bool {
	return slices.EqualFunc(o.members, other.members, func(a, b Member) bool {
		return a.Key == b.Key && a.Value.Equal(b.Value)
	})
}

func compareMemberKeys(a, b Member) int {
	return a.Key.Compare(b.Key)
}

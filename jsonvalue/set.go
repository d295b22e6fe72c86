package jsonvalue

// Set is a collection of distinct values, keyed by Hash and resolved by
// Equal. The zero Set is empty and ready to use. A Set is not safe for
// concurrent mutation.
type Set struct {
	buckets map[uint64][]Value
	order   []Value
}

// NewSet returns a Set holding vals.
func NewSet(vals ...Value) *Set {
	s := &Set{}
	for _, v := range vals {
		s.Add(v)
	}
	return s
}

// Add inserts v and reports whether it was absent.
func (s *Set) Add(v Value) bool {
	h := v.Hash()
	for _, e := range s.buckets[h] {
		if e.Equal(v) {
			return false
		}
	}
	if s.buckets == nil {
		s.buckets = make(map[uint64][]Value)
	}
	s.buckets[h] = append(s.buckets[h], v)
	s.order = append(s.order, v)
	return true
}

// Contains reports whether v is in the set.
func (s *Set) Contains(v Value) bool {
	for _, e := range s.buckets[v.Hash()] {
		if e.Equal(v) {
			return true
		}
	}
	return false
}

// Len returns the number of distinct values.
func (s *Set) Len() int {
	return len(s.order)
}

// Values returns the values in insertion order.
func (s *Set) Values() []Value {
	out := make([]Value, len(s.order))
	copy(out, s.order)
	return out
}

// Dedup returns vals without repeats, keeping the first occurrence of each
// value.
func Dedup(vals []Value) []Value {
	return NewSet(vals...).Values()
}

package jsonvalue

import (
	"cmp"
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"github.com/cespare/xxhash/v2"

	"github.com/lattice-substrate/json-wtf/jsonfloat"
)

// ErrNotFinite is returned when a NaN or an infinity is offered as a Number.
var ErrNotFinite = errors.New("jsonvalue: number is not finite")

// Number is a JSON number held as an IEEE 754 double. It is never NaN or
// infinite.
//
// Identity is the bit pattern of the double: -0 and +0 are different
// Numbers, and ordering follows the IEEE 754 totalOrder predicate, which
// agrees with numeric order everywhere except that -0 sorts just before +0.
// NaN never needs a place in the order because it cannot be constructed.
type Number struct {
	f float64
}

// NewNumber returns f as a Number, or ErrNotFinite.
func NewNumber(f float64) (Number, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Number{}, ErrNotFinite
	}
	return Number{f: f}, nil
}

// MustNumber is like NewNumber but panics for non-finite input.
func MustNumber(f float64) Number {
	n, err := NewNumber(f)
	if err != nil {
		panic(err)
	}
	return n
}

// IntNumber returns i as a Number. Magnitudes above 2^53 are rounded to the
// nearest double.
func IntNumber(i int64) Number {
	return Number{f: float64(i)}
}

// Float64 returns the double.
func (n Number) Float64() float64 {
	return n.f
}

// Bits returns the IEEE 754 bit pattern of the double.
func (n Number) Bits() uint64 {
	return math.Float64bits(n.f)
}

// Compare orders numbers by IEEE 754 totalOrder. It returns -1, 0 or +1.
func (n Number) Compare(other Number) int {
	return cmp.Compare(totalOrderKey(n.f), totalOrderKey(other.f))
}

// Equal reports whether n and other have the same bit pattern.
func (n Number) Equal(other Number) bool {
	return n.Bits() == other.Bits()
}

// Hash returns a hash of the bit pattern.
func (n Number) Hash() uint64 {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], n.Bits())
	return xxhash.Sum64(b[:])
}

// AppendJSON appends the shortest decimal form that parses back to n.
func (n Number) AppendJSON(dst []byte) []byte {
	out, err := jsonfloat.AppendDouble(dst, n.f)
	if err != nil {
		// Number cannot hold NaN or an infinity.
		panic(fmt.Sprintf("jsonvalue: %v", err))
	}
	return out
}

// String returns the shortest decimal form that parses back to n.
func (n Number) String() string {
	return string(n.AppendJSON(make([]byte, 0, 24)))
}

// totalOrderKey maps the bits of f to an unsigned key whose natural order is
// the IEEE 754 totalOrder: negative values have all bits flipped, positive
// values get the sign bit set.
func totalOrderKey(f float64) uint64 {
	b := math.Float64bits(f)
	if b>>63 == 1 {
		return ^b
	}
	return b | 1<<63
}

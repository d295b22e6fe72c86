package jsonvalue

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/cespare/xxhash/v2"
)

// ErrInvalidUTF8 is returned when Go text handed to a constructor is not
// valid UTF-8.
var ErrInvalidUTF8 = errors.New("jsonvalue: text is not valid UTF-8")

// String is a JSON string: a sequence of UTF-16 code units that may contain
// unpaired ("lone") surrogates.
//
// The code units are kept WTF-8 encoded. Scalar values are plain UTF-8,
// surrogate pairs are merged into their supplementary scalar, and a lone
// surrogate is stored as its three-byte generalized UTF-8 form
// (0xED 0xA0..0xBF 0x80..0xBF). That encoding is a bijection with code-unit
// sequences, so == on two Strings is code-unit equality and a String can be
// used as a map key. A well-formed String holds exactly the UTF-8 bytes of
// its text.
type String struct {
	wtf8 string
}

// InvalidUnicodeError is returned when a String holding lone surrogates is
// converted to Go text. Str is the original, untouched value.
type InvalidUnicodeError struct {
	Str String
}

func (e *InvalidUnicodeError) Error() string {
	return fmt.Sprintf("jsonvalue: string %s contains a lone surrogate", e.Str)
}

// FromText returns the String whose code units are the UTF-16 encoding of s.
func FromText(s string) (String, error) {
	if !utf8.ValidString(s) {
		return String{}, fmt.Errorf("%w: %q", ErrInvalidUTF8, s)
	}
	return String{wtf8: s}, nil
}

// MustText is like FromText but panics on invalid UTF-8. It is meant for
// literals.
func MustText(s string) String {
	str, err := FromText(s)
	if err != nil {
		panic(err)
	}
	return str
}

// FromUnits returns the String made of exactly the given code units.
// Every sequence is accepted; correctly paired surrogates form one scalar
// value and unpaired ones are kept as they are.
func FromUnits(units []uint16) String {
	var b Builder
	b.Grow(len(units))
	for _, u := range units {
		b.WriteUnit(u)
	}
	return b.String()
}

// Units returns the code units of s.
func (s String) Units() []uint16 {
	units := make([]uint16, 0, len(s.wtf8))
	for i := 0; i < len(s.wtf8); {
		r, size := decodeCodePoint(s.wtf8[i:])
		if r >= 0x10000 {
			r1, r2 := utf16.EncodeRune(r)
			units = append(units, uint16(r1), uint16(r2))
		} else {
			units = append(units, uint16(r))
		}
		i += size
	}
	return units
}

// Len returns the number of code units in s.
func (s String) Len() int {
	n := 0
	for i := 0; i < len(s.wtf8); {
		r, size := decodeCodePoint(s.wtf8[i:])
		if r >= 0x10000 {
			n += 2
		} else {
			n++
		}
		i += size
	}
	return n
}

// IsEmpty reports whether s has no code units.
func (s String) IsEmpty() bool {
	return s.wtf8 == ""
}

// IsWellFormed reports whether s is valid UTF-16, i.e. holds no lone
// surrogate.
func (s String) IsWellFormed() bool {
	return utf8.ValidString(s.wtf8)
}

// Text returns s as Go text. It fails with *InvalidUnicodeError, carrying s,
// when s holds a lone surrogate; nothing is replaced or dropped.
func (s String) Text() (string, error) {
	if !s.IsWellFormed() {
		return "", &InvalidUnicodeError{Str: s}
	}
	return s.wtf8, nil
}

// TextLossy returns s as Go text with every lone surrogate replaced by
// U+FFFD. Use Text unless the substitution is acceptable to the caller.
func (s String) TextLossy() string {
	if s.IsWellFormed() {
		return s.wtf8
	}
	var sb strings.Builder
	sb.Grow(len(s.wtf8))
	for i := 0; i < len(s.wtf8); {
		r, size := decodeCodePoint(s.wtf8[i:])
		if utf16.IsSurrogate(r) {
			sb.WriteRune(utf8.RuneError)
		} else {
			sb.WriteString(s.wtf8[i : i+size])
		}
		i += size
	}
	return sb.String()
}

// Compare orders strings by their code units, the order used for object
// keys. It returns -1, 0 or +1.
func (s String) Compare(other String) int {
	if s.wtf8 == other.wtf8 {
		return 0
	}
	a := unitReader{s: s.wtf8}
	b := unitReader{s: other.wtf8}
	for {
		ua, okA := a.next()
		ub, okB := b.next()
		switch {
		case !okA && !okB:
			return 0
		case !okA:
			return -1
		case !okB:
			return 1
		case ua < ub:
			return -1
		case ua > ub:
			return 1
		}
	}
}

// Equal reports whether s and other hold the same code units.
func (s String) Equal(other String) bool {
	return s.wtf8 == other.wtf8
}

// Hash returns a hash of the code units of s.
func (s String) Hash() uint64 {
	return xxhash.Sum64String(s.wtf8)
}

// AppendQuoted appends s to dst as a JSON string literal.
//
// Quote and backslash are escaped, as are U+0008, U+0009, U+000A, U+000C and
// U+000D with their short forms; the remaining C0 controls become \u00xx.
// Lone surrogates are written as \uXXXX, one escape per code unit, so parsing
// the output yields s again. Everything else is copied literally. Hex digits
// are lowercase.
func (s String) AppendQuoted(dst []byte) []byte {
	dst = append(dst, '"')
	for i := 0; i < len(s.wtf8); {
		c := s.wtf8[i]
		if c < utf8.RuneSelf {
			switch c {
			case '"', '\\':
				dst = append(dst, '\\', c)
			case '\b':
				dst = append(dst, '\\', 'b')
			case '\f':
				dst = append(dst, '\\', 'f')
			case '\n':
				dst = append(dst, '\\', 'n')
			case '\r':
				dst = append(dst, '\\', 'r')
			case '\t':
				dst = append(dst, '\\', 't')
			default:
				if c < 0x20 {
					dst = appendUnitEscape(dst, uint16(c))
				} else {
					dst = append(dst, c)
				}
			}
			i++
			continue
		}
		r, size := decodeCodePoint(s.wtf8[i:])
		if utf16.IsSurrogate(r) {
			dst = appendUnitEscape(dst, uint16(r))
		} else {
			dst = append(dst, s.wtf8[i:i+size]...)
		}
		i += size
	}
	return append(dst, '"')
}

// String returns s as a JSON string literal.
func (s String) String() string {
	return string(s.AppendQuoted(nil))
}

const hexDigits = "0123456789abcdef"

func appendUnitEscape(dst []byte, u uint16) []byte {
	return append(dst, '\\', 'u',
		hexDigits[u>>12], hexDigits[u>>8&0xF], hexDigits[u>>4&0xF], hexDigits[u&0xF])
}

// decodeCodePoint decodes the first code point of a WTF-8 string, returning
// surrogate code points as themselves.
func decodeCodePoint(s string) (rune, int) {
	if len(s) >= 3 && s[0] == 0xED && s[1] >= 0xA0 {
		return 0xD000 | rune(s[1]&0x3F)<<6 | rune(s[2]&0x3F), 3
	}
	return utf8.DecodeRuneInString(s)
}

// unitReader yields the UTF-16 code units of a WTF-8 string.
type unitReader struct {
	s       string
	pending uint16
}

func (u *unitReader) next() (uint16, bool) {
	if u.pending != 0 {
		low := u.pending
		u.pending = 0
		return low, true
	}
	if u.s == "" {
		return 0, false
	}
	r, size := decodeCodePoint(u.s)
	u.s = u.s[size:]
	if r >= 0x10000 {
		r1, r2 := utf16.EncodeRune(r)
		u.pending = uint16(r2)
		return uint16(r1), true
	}
	return uint16(r), true
}

// Builder accumulates code units into a String. A high surrogate followed by
// a low surrogate is merged into one scalar value, whichever way the two
// were written. The zero Builder is ready to use.
type Builder struct {
	buf []byte
}

// Grow reserves room for at least n more bytes.
func (b *Builder) Grow(n int) {
	b.buf = slices.Grow(b.buf, n)
}

// WriteUnit appends one code unit.
func (b *Builder) WriteUnit(u uint16) {
	if u >= 0xDC00 && u <= 0xDFFF {
		n := len(b.buf)
		if n >= 3 && b.buf[n-3] == 0xED && b.buf[n-2] >= 0xA0 && b.buf[n-2] <= 0xAF {
			high := 0xD000 | rune(b.buf[n-2]&0x3F)<<6 | rune(b.buf[n-1]&0x3F)
			b.buf = utf8.AppendRune(b.buf[:n-3], utf16.DecodeRune(high, rune(u)))
			return
		}
	}
	if utf16.IsSurrogate(rune(u)) {
		b.buf = append(b.buf, 0xED, 0x80|byte(u>>6)&0x3F, 0x80|byte(u)&0x3F)
		return
	}
	b.buf = utf8.AppendRune(b.buf, rune(u))
}

// WriteRune appends a scalar value. Surrogate code points are written as
// single code units; other invalid runes are written as U+FFFD.
func (b *Builder) WriteRune(r rune) {
	if utf16.IsSurrogate(r) {
		b.WriteUnit(uint16(r))
		return
	}
	b.buf = utf8.AppendRune(b.buf, r)
}

// WriteText appends the code units of valid UTF-8 text. Invalid bytes are
// written as U+FFFD.
func (b *Builder) WriteText(s string) {
	if utf8.ValidString(s) {
		b.buf = append(b.buf, s...)
		return
	}
	for _, r := range s {
		b.buf = utf8.AppendRune(b.buf, r)
	}
}

// Reset empties the builder.
func (b *Builder) Reset() {
	b.buf = b.buf[:0]
}

// String returns the accumulated String. The builder may keep being used.
func (b *Builder) String() String {
	return String{wtf8: string(b.buf)}
}

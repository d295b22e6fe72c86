// Package jsonfloat formats doubles as the shortest decimal text that parses
// back to the same value.
//
// The layout follows ECMAScript Number::toString (ECMA-262, radix 10): plain
// integers up to 21 digits, fixed notation for exponents down to 1e-6, and
// exponential notation with an explicit sign otherwise. Negative zero is the
// one deliberate departure: it is written as "-0" so that the sign survives a
// parse/serialize round trip.
package jsonfloat

import (
	"errors"
	"math"
	"strconv"
)

// ErrNotFinite is returned for NaN and the infinities, which have no JSON form.
var ErrNotFinite = errors.New("jsonfloat: value is not finite (NaN or Infinity)")

// FormatDouble returns the text form of f.
func FormatDouble(f float64) (string, error) {
	b, err := AppendDouble(make([]byte, 0, 24), f)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// AppendDouble appends the text form of f to dst.
func AppendDouble(dst []byte, f float64) ([]byte, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return dst, ErrNotFinite
	}
	if f == 0 {
		if math.Signbit(f) {
			return append(dst, '-', '0'), nil
		}
		return append(dst, '0'), nil
	}

	negative := f < 0
	if negative {
		f = -f
	}
	var scratch [32]byte
	digits, n := shortestDigits(scratch[:0], f)
	return appendECMA(dst, negative, digits, n), nil
}

// shortestDigits returns the shortest significand digits of a positive finite
// f and the decimal exponent n such that f = 0.<digits> * 10^n.
func shortestDigits(buf []byte, f float64) ([]byte, int) {
	// 'e' with precision -1 gives d[.ddd]e±XX with the fewest digits that
	// round-trip.
	e := strconv.AppendFloat(buf, f, 'e', -1, 64)
	mark := 0
	for e[mark] != 'e' {
		mark++
	}
	exp, err := strconv.Atoi(string(e[mark+1:]))
	if err != nil {
		panic("jsonfloat: malformed exponent from strconv: " + string(e))
	}
	digits := e[:0]
	for _, c := range e[:mark] {
		if c != '.' {
			digits = append(digits, c)
		}
	}
	return digits, exp + 1
}

// appendECMA lays out digits with decimal exponent n (steps 6-9 of
// Number::toString).
func appendECMA(buf []byte, negative bool, digits []byte, n int) []byte {
	k := len(digits)
	if negative {
		buf = append(buf, '-')
	}

	switch {
	case k <= n && n <= 21:
		buf = append(buf, digits...)
		for range n - k {
			buf = append(buf, '0')
		}
	case 0 < n && n <= 21:
		buf = append(buf, digits[:n]...)
		buf = append(buf, '.')
		buf = append(buf, digits[n:]...)
	case -6 < n && n <= 0:
		buf = append(buf, '0', '.')
		for range -n {
			buf = append(buf, '0')
		}
		buf = append(buf, digits...)
	default:
		buf = append(buf, digits[0])
		if k > 1 {
			buf = append(buf, '.')
			buf = append(buf, digits[1:]...)
		}
		buf = append(buf, 'e')
		exp := n - 1
		if exp >= 0 {
			buf = append(buf, '+')
		}
		buf = strconv.AppendInt(buf, int64(exp), 10)
	}
	return buf
}

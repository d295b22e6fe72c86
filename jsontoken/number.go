package jsontoken

import (
	"errors"
	"math"
	"strconv"

	"github.com/lattice-substrate/json-wtf/jsonerr"
	"github.com/lattice-substrate/json-wtf/jsonvalue"
)

// parseNumber lexes an RFC 8259 number and converts it to the nearest double.
// Results that round to an infinity are INFINITE_FLOAT; results that round
// to zero are kept.
func (p *parser) parseNumber() (jsonvalue.Number, error) {
	start := p.pos
	lexeme, err := p.capture(p.skipNumber)
	if err != nil {
		return jsonvalue.Number{}, err
	}
	f, err := strconv.ParseFloat(string(lexeme), 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return jsonvalue.Number{}, jsonerr.Wrap(jsonerr.InternalError, start, "number lexeme rejected by strconv", err)
	}
	if math.IsInf(f, 0) {
		return jsonvalue.Number{}, jsonerr.New(jsonerr.InfiniteFloat, start,
			strconv.Quote(string(lexeme))+" overflows a double")
	}
	return jsonvalue.MustNumber(f), nil
}

// skipNumber consumes the bytes of a number without interpreting them.
func (p *parser) skipNumber() error {
	c, ok := p.peekByte()
	if !ok {
		return p.eof()
	}
	if c == '-' {
		p.pos++
	}

	off := p.pos
	b, err := p.readByte()
	if err != nil {
		return err
	}
	switch {
	case b == '0':
		if c, ok := p.peekByte(); ok && isDigit(c) {
			return jsonerr.AtByte(jsonerr.InvalidDigit, p.pos, c)
		}
	case b >= '1' && b <= '9':
		p.skipDigits()
	default:
		return jsonerr.AtByte(jsonerr.InvalidDigit, off, b)
	}

	if c, ok := p.peekByte(); ok && c == '.' {
		p.pos++
		if !p.skipDigits() {
			return p.invalidDigit()
		}
	}

	if c, ok := p.peekByte(); ok && (c == 'e' || c == 'E') {
		p.pos++
		if c, ok := p.peekByte(); ok && (c == '+' || c == '-') {
			p.pos++
		}
		if !p.skipDigits() {
			return p.invalidDigit()
		}
	}
	return nil
}

// skipDigits consumes a run of ASCII digits and reports whether there was at
// least one.
func (p *parser) skipDigits() bool {
	start := p.pos
	for p.pos < len(p.data) && isDigit(p.data[p.pos]) {
		p.pos++
	}
	return p.pos > start
}

// invalidDigit reports the byte found where a digit was required.
func (p *parser) invalidDigit() error {
	off := p.pos
	b, err := p.readByte()
	if err != nil {
		return err
	}
	return jsonerr.AtByte(jsonerr.InvalidDigit, off, b)
}

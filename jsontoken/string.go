package jsontoken

import (
	"github.com/lattice-substrate/json-wtf/jsonerr"
	"github.com/lattice-substrate/json-wtf/jsonvalue"
)

// parseString parses a string literal into code units. \uXXXX escapes are
// appended as single code units without pairing checks, so lone and
// reversed surrogates survive unchanged.
func (p *parser) parseString() (jsonvalue.String, error) {
	start := p.pos
	b, err := p.readByte()
	if err != nil {
		return jsonvalue.String{}, err
	}
	if b != '"' {
		return jsonvalue.String{}, jsonerr.AtByte(jsonerr.ExpectedDoubleQuote, start, b)
	}

	p.str.Reset()
	for {
		c, ok := p.peekByte()
		if !ok {
			return jsonvalue.String{}, p.eof()
		}
		switch {
		case c == '"':
			p.pos++
			return p.str.String(), nil
		case c == '\\':
			p.pos++
			if err := p.escape(); err != nil {
				return jsonvalue.String{}, err
			}
		case c < 0x20:
			return jsonvalue.String{}, jsonerr.AtByte(jsonerr.InvalidControlCharacter, p.pos, c)
		default:
			r, err := p.readScalar()
			if err != nil {
				return jsonvalue.String{}, err
			}
			p.str.WriteRune(r)
		}
	}
}

func (p *parser) escape() error {
	off := p.pos
	b, err := p.readByte()
	if err != nil {
		return err
	}
	switch b {
	case '"', '\\', '/':
		p.str.WriteUnit(uint16(b))
	case 'b':
		p.str.WriteUnit('\b')
	case 'f':
		p.str.WriteUnit('\f')
	case 'n':
		p.str.WriteUnit('\n')
	case 'r':
		p.str.WriteUnit('\r')
	case 't':
		p.str.WriteUnit('\t')
	case 'u':
		hexOff := p.pos
		hex, err := p.readFixed(4)
		if err != nil {
			return err
		}
		var u uint16
		for i, h := range hex {
			d, ok := hexValue(h)
			if !ok {
				return jsonerr.AtByte(jsonerr.InvalidHexChar, hexOff+i, h)
			}
			u = u<<4 | uint16(d)
		}
		p.str.WriteUnit(u)
	default:
		return jsonerr.AtByte(jsonerr.UnexpectedEscape, off, b)
	}
	return nil
}

func hexValue(c byte) (byte, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}

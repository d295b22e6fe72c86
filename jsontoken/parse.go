// Package jsontoken parses RFC 8259 JSON text into a jsonvalue tree.
//
// The grammar is applied byte for byte: no comments, no trailing commas, no
// leading zeros, no non-finite numbers. Strings are decoded to UTF-16 code
// units and \uXXXX escapes are stored verbatim, so lone surrogates are
// accepted and kept. Duplicate object keys are allowed; the last occurrence
// wins.
//
// Every failure is a *jsonerr.Error naming the violation and, where there is
// one, the offending byte.
package jsontoken

import (
	"fmt"

	"github.com/lattice-substrate/json-wtf/jsonerr"
	"github.com/lattice-substrate/json-wtf/jsonvalue"
)

// DefaultMaxDepth is the nesting limit for arrays and objects when
// Options.MaxDepth is zero.
const DefaultMaxDepth = 1000

// Options controls parser limits. A nil *Options uses the defaults.
type Options struct {
	MaxDepth     int // 0 means DefaultMaxDepth
	MaxInputSize int // 0 means unlimited
}

func (o *Options) maxDepth() int {
	if o != nil && o.MaxDepth > 0 {
		return o.MaxDepth
	}
	return DefaultMaxDepth
}

func (o *Options) maxInputSize() int {
	if o != nil && o.MaxInputSize > 0 {
		return o.MaxInputSize
	}
	return 0
}

type parser struct {
	reader
	depth    int
	maxDepth int
	str      jsonvalue.Builder
}

// Parse parses one JSON document. Whitespace may surround the value; any
// other trailing byte is TRAILING_DATA.
func Parse(data []byte) (jsonvalue.Value, error) {
	return ParseWithOptions(data, nil)
}

// ParseWithOptions is like Parse but applies opts.
func ParseWithOptions(data []byte, opts *Options) (jsonvalue.Value, error) {
	return parseAll(data, opts, (*parser).parseValue)
}

// ParseArray parses a document whose value must be an array.
func ParseArray(data []byte) (jsonvalue.Array, error) {
	return parseAll(data, nil, (*parser).parseArray)
}

// ParseObject parses a document whose value must be an object.
func ParseObject(data []byte) (jsonvalue.Object, error) {
	return parseAll(data, nil, (*parser).parseObject)
}

// ParseString parses a document whose value must be a string.
func ParseString(data []byte) (jsonvalue.String, error) {
	return parseAll(data, nil, (*parser).parseString)
}

// ParseNumber parses a document whose value must be a number.
func ParseNumber(data []byte) (jsonvalue.Number, error) {
	return parseAll(data, nil, (*parser).parseNumber)
}

// parseAll runs f over the whole input and requires that nothing but
// whitespace follows the value.
func parseAll[T any](data []byte, opts *Options, f func(*parser) (T, error)) (T, error) {
	var zero T
	if limit := opts.maxInputSize(); limit > 0 && len(data) > limit {
		return zero, jsonerr.New(jsonerr.InputTooLarge, -1,
			fmt.Sprintf("input size %d exceeds maximum %d", len(data), limit))
	}
	p := &parser{reader: reader{data: data}, maxDepth: opts.maxDepth()}
	p.skipWhitespace()
	v, err := f(p)
	if err != nil {
		return zero, err
	}
	p.skipWhitespace()
	if !p.atEnd() {
		return zero, jsonerr.New(jsonerr.TrailingData, p.pos, "")
	}
	return v, nil
}

func (p *parser) pushDepth() error {
	p.depth++
	if p.depth > p.maxDepth {
		return jsonerr.New(jsonerr.DepthExceeded, p.pos,
			fmt.Sprintf("nesting depth %d exceeds maximum %d", p.depth, p.maxDepth))
	}
	return nil
}

func (p *parser) popDepth() {
	p.depth--
}

// parseValue parses one value together with the whitespace on both sides of it.
func (p *parser) parseValue() (jsonvalue.Value, error) {
	p.skipWhitespace()
	c, ok := p.peekByte()
	if !ok {
		return jsonvalue.Value{}, p.eof()
	}

	var (
		v   jsonvalue.Value
		err error
	)
	switch {
	case c == 'n':
		err = p.literal("null", jsonerr.ExpectedNull)
	case c == 'f':
		err = p.literal("false", jsonerr.ExpectedFalse)
		v = jsonvalue.BoolValue(false)
	case c == 't':
		err = p.literal("true", jsonerr.ExpectedTrue)
		v = jsonvalue.BoolValue(true)
	case c == '-' || isDigit(c):
		var n jsonvalue.Number
		n, err = p.parseNumber()
		v = jsonvalue.NumberValue(n)
	case c == '"':
		var s jsonvalue.String
		s, err = p.parseString()
		v = jsonvalue.StringValue(s)
	case c == '[':
		var a jsonvalue.Array
		a, err = p.parseArray()
		v = jsonvalue.ArrayValue(a)
	case c == '{':
		var o jsonvalue.Object
		o, err = p.parseObject()
		v = jsonvalue.ObjectValue(o)
	default:
		return jsonvalue.Value{}, jsonerr.AtByte(jsonerr.UnexpectedStartOfValue, p.pos, c)
	}
	if err != nil {
		return jsonvalue.Value{}, err
	}
	p.skipWhitespace()
	return v, nil
}

func (p *parser) literal(lit string, class jsonerr.FailureClass) error {
	start := p.pos
	b, err := p.readFixed(len(lit))
	if err != nil {
		return err
	}
	if string(b) != lit {
		return jsonerr.New(class, start, "")
	}
	return nil
}

func (p *parser) parseArray() (jsonvalue.Array, error) {
	start := p.pos
	b, err := p.readByte()
	if err != nil {
		return jsonvalue.Array{}, err
	}
	if b != '[' {
		return jsonvalue.Array{}, jsonerr.AtByte(jsonerr.ExpectedLeftBracket, start, b)
	}
	if err := p.pushDepth(); err != nil {
		return jsonvalue.Array{}, err
	}
	defer p.popDepth()

	p.skipWhitespace()
	if c, ok := p.peekByte(); ok && c == ']' {
		p.pos++
		return jsonvalue.Array{}, nil
	}

	var elems []jsonvalue.Value
	for {
		v, err := p.parseValue()
		if err != nil {
			return jsonvalue.Array{}, err
		}
		elems = append(elems, v)

		off := p.pos
		b, err := p.readByte()
		if err != nil {
			return jsonvalue.Array{}, err
		}
		switch b {
		case ']':
			return jsonvalue.WrapArray(elems), nil
		case ',':
		default:
			return jsonvalue.Array{}, jsonerr.AtByte(jsonerr.ExpectedCommaOrRightBracket, off, b)
		}
	}
}

func (p *parser) parseObject() (jsonvalue.Object, error) {
	start := p.pos
	b, err := p.readByte()
	if err != nil {
		return jsonvalue.Object{}, err
	}
	if b != '{' {
		return jsonvalue.Object{}, jsonerr.AtByte(jsonerr.ExpectedLeftBrace, start, b)
	}
	if err := p.pushDepth(); err != nil {
		return jsonvalue.Object{}, err
	}
	defer p.popDepth()

	p.skipWhitespace()
	if c, ok := p.peekByte(); ok && c == '}' {
		p.pos++
		return jsonvalue.Object{}, nil
	}

	var members []jsonvalue.Member
	for {
		key, err := p.parseString()
		if err != nil {
			return jsonvalue.Object{}, err
		}

		p.skipWhitespace()
		off := p.pos
		b, err := p.readByte()
		if err != nil {
			return jsonvalue.Object{}, err
		}
		if b != ':' {
			return jsonvalue.Object{}, jsonerr.AtByte(jsonerr.ExpectedColon, off, b)
		}

		v, err := p.parseValue()
		if err != nil {
			return jsonvalue.Object{}, err
		}
		members = append(members, jsonvalue.Member{Key: key, Value: v})

		p.skipWhitespace()
		off = p.pos
		b, err = p.readByte()
		if err != nil {
			return jsonvalue.Object{}, err
		}
		switch b {
		case '}':
			// WrapObject sorts the members and keeps the last of each key.
			return jsonvalue.WrapObject(members), nil
		case ',':
			p.skipWhitespace()
		default:
			return jsonvalue.Object{}, jsonerr.AtByte(jsonerr.ExpectedCommaOrRightBrace, off, b)
		}
	}
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

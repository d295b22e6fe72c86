package jsontoken

import (
	"unicode/utf8"

	"github.com/lattice-substrate/json-wtf/jsonerr"
)

// reader is a forward-only cursor over the input. Every primitive that needs
// bytes fails with UNEXPECTED_EOF when they run out.
type reader struct {
	data []byte
	pos  int
}

func (r *reader) eof() error {
	return jsonerr.New(jsonerr.UnexpectedEOF, r.pos, "")
}

func (r *reader) atEnd() bool {
	return r.pos >= len(r.data)
}

func (r *reader) peekByte() (byte, bool) {
	if r.pos >= len(r.data) {
		return 0, false
	}
	return r.data[r.pos], true
}

func (r *reader) readByte() (byte, error) {
	if r.pos >= len(r.data) {
		return 0, r.eof()
	}
	b := r.data[r.pos]
	r.pos++
	return b, nil
}

// readFixed consumes exactly n bytes.
func (r *reader) readFixed(n int) ([]byte, error) {
	if len(r.data)-r.pos < n {
		return nil, r.eof()
	}
	b := r.data[r.pos : r.pos+n]
	r.pos += n
	return b, nil
}

// readScalar decodes one UTF-8 encoded scalar value. Overlong forms,
// encoded surrogates and truncated sequences are INVALID_UTF8_CHAR.
func (r *reader) readScalar() (rune, error) {
	if r.pos >= len(r.data) {
		return 0, r.eof()
	}
	c, size := utf8.DecodeRune(r.data[r.pos:])
	if c == utf8.RuneError && size <= 1 {
		return 0, jsonerr.New(jsonerr.InvalidUTF8Char, r.pos, "")
	}
	r.pos += size
	return c, nil
}

// skipWhitespace consumes tab, line feed, carriage return and space.
func (r *reader) skipWhitespace() {
	for r.pos < len(r.data) {
		switch r.data[r.pos] {
		case ' ', '\t', '\n', '\r':
			r.pos++
		default:
			return
		}
	}
}

// capture runs f and returns the bytes it consumed.
func (r *reader) capture(f func() error) ([]byte, error) {
	start := r.pos
	if err := f(); err != nil {
		return nil, err
	}
	return r.data[start:r.pos], nil
}

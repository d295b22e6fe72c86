// Package jsonfile reads, verifies and writes canonical JSON files.
//
// A canonical file is the canonical text of one value followed by a single
// LF. Verify accepts the body with or without that LF; everything else has to
// match the canonical bytes exactly.
package jsonfile

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/google/renameio/v2"

	"github.com/lattice-substrate/json-wtf/jsoncanon"
	"github.com/lattice-substrate/json-wtf/jsonerr"
	"github.com/lattice-substrate/json-wtf/jsontoken"
)

// NotCanonicalError reports a document that parses but whose bytes differ
// from its canonical form.
type NotCanonicalError struct {
	// Offset is the first byte that differs from the canonical text.
	Offset int
}

func (e *NotCanonicalError) Error() string {
	return fmt.Sprintf("jsonfile: input is not canonical (first difference at byte %d)", e.Offset)
}

// Unwrap exposes the failure class to jsonerr.ClassOf.
func (e *NotCanonicalError) Unwrap() error {
	return jsonerr.New(jsonerr.NotCanonical, e.Offset, "")
}

// Envelope returns body followed by a single LF.
func Envelope(body []byte) []byte {
	out := make([]byte, len(body)+1)
	copy(out, body)
	out[len(body)] = '\n'
	return out
}

// Canonicalize parses input and returns its canonical text, without a
// trailing LF.
func Canonicalize(input []byte, opts *jsontoken.Options) ([]byte, error) {
	v, err := jsontoken.ParseWithOptions(input, opts)
	if err != nil {
		return nil, fmt.Errorf("jsonfile: parse input: %w", err)
	}
	return jsoncanon.Serialize(v), nil
}

// Verify checks that data is canonical text, optionally followed by one LF.
// It returns the parse error for malformed input and a *NotCanonicalError
// when the input parses but is not in canonical form.
func Verify(data []byte, opts *jsontoken.Options) error {
	body := bytes.TrimSuffix(data, []byte{'\n'})
	canonical, err := Canonicalize(body, opts)
	if err != nil {
		return err
	}
	if !bytes.Equal(body, canonical) {
		return &NotCanonicalError{Offset: firstDifference(body, canonical)}
	}
	return nil
}

func firstDifference(a, b []byte) int {
	n := min(len(a), len(b))
	for i := range n {
		if a[i] != b[i] {
			return i
		}
	}
	return n
}

// ReadBounded reads r to the end, failing with INPUT_TOO_LARGE once more
// than limit bytes arrive. A limit of zero or less means no limit.
func ReadBounded(r io.Reader, limit int64) ([]byte, error) {
	if limit <= 0 {
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, jsonerr.Wrap(jsonerr.InternalIO, -1, "read input", err)
		}
		return data, nil
	}
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, jsonerr.Wrap(jsonerr.InternalIO, -1, "read input", err)
	}
	if int64(len(data)) > limit {
		return nil, jsonerr.New(jsonerr.InputTooLarge, -1,
			fmt.Sprintf("input exceeds maximum size %d bytes", limit))
	}
	return data, nil
}

// ReadFile reads the file at path with the same limit as ReadBounded.
func ReadFile(path string, limit int64) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, jsonerr.Wrap(jsonerr.CLIUsage, -1, "open input", err)
		}
		return nil, jsonerr.Wrap(jsonerr.InternalIO, -1, "open input", err)
	}
	defer func() {
		_ = f.Close()
	}()

	data, err := ReadBounded(f, limit)
	if err != nil {
		return nil, fmt.Errorf("read file %q: %w", path, err)
	}
	return data, nil
}

// WriteAtomic replaces the file at path with data. Readers see either the
// old content or the new content, never a partial write.
func WriteAtomic(path string, data []byte) error {
	if err := renameio.WriteFile(path, data, 0o644); err != nil {
		return jsonerr.Wrap(jsonerr.InternalIO, -1, fmt.Sprintf("write %q", path), err)
	}
	return nil
}

// WriteCanonical canonicalizes input and writes it, LF-terminated, to path
// with WriteAtomic.
func WriteCanonical(path string, input []byte, opts *jsontoken.Options) error {
	canonical, err := Canonicalize(input, opts)
	if err != nil {
		return err
	}
	return WriteAtomic(path, Envelope(canonical))
}

package jsonerr_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/lattice-substrate/json-wtf/jsonerr"
)

func TestFailureClassExitCodes(t *testing.T) {
	cases := []struct {
		class    jsonerr.FailureClass
		wantExit int
	}{
		{jsonerr.UnexpectedEOF, 1},
		{jsonerr.TrailingData, 1},
		{jsonerr.ExpectedColon, 1},
		{jsonerr.InvalidDigit, 1},
		{jsonerr.InfiniteFloat, 1},
		{jsonerr.InvalidUTF8Char, 1},
		{jsonerr.DepthExceeded, 1},
		{jsonerr.NotCanonical, 1},
		{jsonerr.CLIUsage, 2},
		{jsonerr.InternalIO, 10},
		{jsonerr.InternalError, 10},
	}
	for _, tc := range cases {
		if got := tc.class.ExitCode(); got != tc.wantExit {
			t.Errorf("%s.ExitCode() = %d, want %d", tc.class, got, tc.wantExit)
		}
	}
}

func TestErrorFormat(t *testing.T) {
	e := jsonerr.AtByte(jsonerr.ExpectedColon, 5, 'x')
	if e.Error() != `jsonerr: EXPECTED_COLON at byte 5: found 'x'` {
		t.Fatalf("unexpected error string: %s", e.Error())
	}

	e = jsonerr.AtByte(jsonerr.InvalidControlCharacter, 1, 0x01)
	if e.Error() != "jsonerr: INVALID_CONTROL_CHARACTER at byte 1: found 0x01" {
		t.Fatalf("unexpected error string: %s", e.Error())
	}
}

func TestErrorFormatNoOffset(t *testing.T) {
	e := jsonerr.New(jsonerr.InternalError, -1, "unexpected state")
	if e.Error() != "jsonerr: INTERNAL_ERROR: unexpected state" {
		t.Fatalf("unexpected error string: %s", e.Error())
	}
}

func TestErrorUnwrap(t *testing.T) {
	cause := errors.New("underlying")
	e := jsonerr.Wrap(jsonerr.InternalIO, -1, "write failed", cause)
	if !errors.Is(e, cause) {
		t.Fatal("Unwrap did not return cause")
	}
	if got := e.Error(); got != "jsonerr: INTERNAL_IO: write failed: underlying" {
		t.Fatalf("unexpected wrapped error string: %s", got)
	}
}

func TestErrorIsIgnoresOffset(t *testing.T) {
	err := fmt.Errorf("outer: %w", jsonerr.AtByte(jsonerr.ExpectedCommaOrRightBracket, 17, '}'))

	if !errors.Is(err, jsonerr.Byte(jsonerr.ExpectedCommaOrRightBracket, '}')) {
		t.Fatal("expected match on class and byte")
	}
	if errors.Is(err, jsonerr.Byte(jsonerr.ExpectedCommaOrRightBracket, ':')) {
		t.Fatal("unexpected match on different byte")
	}
	if !errors.Is(err, jsonerr.Class(jsonerr.ExpectedCommaOrRightBracket)) {
		t.Fatal("expected class-only match")
	}
	if errors.Is(err, jsonerr.Class(jsonerr.ExpectedCommaOrRightBrace)) {
		t.Fatal("unexpected match on different class")
	}
}

func TestClassOf(t *testing.T) {
	inner := jsonerr.New(jsonerr.TrailingData, 3, "")
	if got := jsonerr.ClassOf(fmt.Errorf("wrapped: %w", inner)); got != jsonerr.TrailingData {
		t.Fatalf("class = %s, want TRAILING_DATA", got)
	}
	if got := jsonerr.ClassOf(errors.New("plain")); got != jsonerr.InternalError {
		t.Fatalf("class = %s, want INTERNAL_ERROR", got)
	}
	if !jsonerr.Is(inner, jsonerr.TrailingData) || jsonerr.Is(inner, jsonerr.UnexpectedEOF) {
		t.Fatal("Is helper mismatch")
	}
}

func TestErrorAs(t *testing.T) {
	e := jsonerr.AtByte(jsonerr.UnexpectedEscape, 10, 'x')
	var target *jsonerr.Error
	if !errors.As(e, &target) {
		t.Fatal("errors.As failed")
	}
	if target.Class != jsonerr.UnexpectedEscape || target.Byte != 'x' {
		t.Fatalf("got %s/%d, want UNEXPECTED_ESCAPE/'x'", target.Class, target.Byte)
	}
}

// Package jsonerr defines the failure taxonomy for json-wtf.
//
// The taxonomy is flat: every distinguishable grammar violation has its own
// FailureClass, and the error carries the nearest offending byte when one
// exists. Every error returned by the parser, the file helpers, or the CLI
// maps to exactly one FailureClass, which also determines the exit code.
package jsonerr

import (
	"errors"
	"fmt"
)

// FailureClass is a stable failure category.
type FailureClass string

// Input and grammar failures.
const (
	UnexpectedEOF               FailureClass = "UNEXPECTED_EOF"
	TrailingData                FailureClass = "TRAILING_DATA"
	ExpectedLeftBracket         FailureClass = "EXPECTED_LEFT_BRACKET"
	ExpectedLeftBrace           FailureClass = "EXPECTED_LEFT_BRACE"
	ExpectedCommaOrRightBracket FailureClass = "EXPECTED_COMMA_OR_RIGHT_BRACKET"
	ExpectedCommaOrRightBrace   FailureClass = "EXPECTED_COMMA_OR_RIGHT_BRACE"
	ExpectedColon               FailureClass = "EXPECTED_COLON"
	ExpectedDoubleQuote         FailureClass = "EXPECTED_DOUBLE_QUOTE"
	ExpectedNull                FailureClass = "EXPECTED_NULL"
	ExpectedTrue                FailureClass = "EXPECTED_TRUE"
	ExpectedFalse               FailureClass = "EXPECTED_FALSE"
	InvalidDigit                FailureClass = "INVALID_DIGIT"
	InfiniteFloat               FailureClass = "INFINITE_FLOAT"
	InvalidControlCharacter     FailureClass = "INVALID_CONTROL_CHARACTER"
	UnexpectedEscape            FailureClass = "UNEXPECTED_ESCAPE"
	InvalidHexChar              FailureClass = "INVALID_HEX_CHAR"
	InvalidUTF8Char             FailureClass = "INVALID_UTF8_CHAR"
	UnexpectedStartOfValue      FailureClass = "UNEXPECTED_START_OF_VALUE"
	DepthExceeded               FailureClass = "DEPTH_EXCEEDED"
	InputTooLarge               FailureClass = "INPUT_TOO_LARGE"
)

// Tooling failures.
const (
	NotCanonical  FailureClass = "NOT_CANONICAL"
	CLIUsage      FailureClass = "CLI_USAGE"
	InternalIO    FailureClass = "INTERNAL_IO"
	InternalError FailureClass = "INTERNAL_ERROR"
)

// Exit codes shared by the commands.
const (
	ExitSuccess  = 0
	ExitRejected = 1
	ExitUsage    = 2
	ExitInternal = 10
)

// ExitCode returns the process exit code for this failure class.
// Rejected input exits 1, which is what JSONTestSuite-style runners expect.
func (fc FailureClass) ExitCode() int {
	switch fc {
	case InternalIO, InternalError:
		return ExitInternal
	case CLIUsage:
		return ExitUsage
	default:
		return ExitRejected
	}
}

// Error is the structured error type for all json-wtf failures.
type Error struct {
	Class FailureClass
	// Byte is the offending input byte, or -1 when there is none
	// (end of input, overflow, limits).
	Byte int
	// Offset is the byte offset of the failure in the input, or -1.
	Offset  int
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := string(e.Class)
	if e.Offset >= 0 {
		msg = fmt.Sprintf("%s at byte %d", msg, e.Offset)
	}
	if e.Byte >= 0 {
		msg = fmt.Sprintf("%s: found %s", msg, describeByte(byte(e.Byte)))
	}
	if e.Message != "" {
		msg = msg + ": " + e.Message
	}
	if e.Cause != nil {
		msg = msg + ": " + e.Cause.Error()
	}
	return "jsonerr: " + msg
}

// Unwrap returns the underlying cause, if any.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target is an *Error of the same class. A target with a
// non-negative Byte also has to match the offending byte. Offsets are
// diagnostics and never take part in the comparison.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Class == t.Class && (t.Byte < 0 || e.Byte == t.Byte)
}

// New creates a new Error with the given class and message.
func New(class FailureClass, offset int, message string) *Error {
	return &Error{Class: class, Byte: -1, Offset: offset, Message: message}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(class FailureClass, offset int, message string, cause error) *Error {
	return &Error{Class: class, Byte: -1, Offset: offset, Message: message, Cause: cause}
}

// AtByte creates an Error that reports the offending byte b found at offset.
func AtByte(class FailureClass, offset int, b byte) *Error {
	return &Error{Class: class, Byte: int(b), Offset: offset}
}

// Byte returns a comparison target for errors.Is that matches any offset.
func Byte(class FailureClass, b byte) *Error {
	return &Error{Class: class, Byte: int(b), Offset: -1}
}

// Class returns a comparison target for errors.Is that matches any error of
// the class.
func Class(class FailureClass) *Error {
	return &Error{Class: class, Byte: -1, Offset: -1}
}

// ClassOf returns the failure class of err, or InternalError when err does
// not wrap an *Error.
func ClassOf(err error) FailureClass {
	var je *Error
	if errors.As(err, &je) {
		return je.Class
	}
	return InternalError
}

// Is reports whether err wraps an *Error of the given class.
func Is(err error, class FailureClass) bool {
	var je *Error
	return errors.As(err, &je) && je.Class == class
}

func describeByte(b byte) string {
	if b >= 0x20 && b < 0x7f {
		return fmt.Sprintf("%q", rune(b))
	}
	return fmt.Sprintf("0x%02X", b)
}

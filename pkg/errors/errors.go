// Package errors defines the coded errors shared by the plate pipeline, the
// CLI and the HTTP service.
//
// Every failure a user can act on carries a [Code]. The CLI prints the
// message, the server maps the code to an HTTP status, and the pipeline
// uses [IsFatal] to tell aborting errors from warnings:
//
//   - LOAD_ERROR: the layout is missing, empty, too large or not KLE data
//   - INVALID_CONFIG: an option the plate builder cannot use
//   - INVALID_WALL: an unrecognized max wall value; the build continues
//     with the default thickness
//   - UNSUPPORTED: a sink cannot express part of a construction tree
//
// Construct with [New] or [Wrap] and test with [Is]:
//
//	err := errors.New(errors.ErrCodeInvalidConfig, "unknown stabilizer style %q", s)
//	if errors.Is(err, errors.ErrCodeInvalidConfig) {
//	    ...
//	}
package errors

import (
	"errors"
	"fmt"
)

// Code is a stable, machine-readable error category.
type Code string

const (
	ErrCodeLoad          Code = "LOAD_ERROR"
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidConfig Code = "INVALID_CONFIG"
	ErrCodeInvalidWall   Code = "INVALID_WALL"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"
	ErrCodeInvalidPath   Code = "INVALID_PATH"

	ErrCodeNotFound     Code = "NOT_FOUND"
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// Error is a coded error. Message is written for the person running the
// build; Cause is kept for errors.Is and errors.As.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	msg := string(e.Code) + ": " + e.Message
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Cause }

// New returns an Error with a formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap returns an Error with a formatted message around cause.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// outermost returns the first *Error in err's chain.
func outermost(err error) (*Error, bool) {
	var e *Error
	ok := errors.As(err, &e)
	return e, ok
}

// Is reports whether the first *Error in err's chain has code.
func Is(err error, code Code) bool {
	e, ok := outermost(err)
	return ok && e.Code == code
}

// GetCode returns the code of the first *Error in err's chain, or "".
func GetCode(err error) Code {
	if e, ok := outermost(err); ok {
		return e.Code
	}
	return ""
}

// UserMessage returns the message without its code prefix, or err.Error()
// when err carries no code.
func UserMessage(err error) string {
	if e, ok := outermost(err); ok {
		return e.Message
	}
	return err.Error()
}

// IsFatal reports whether err must abort a build. INVALID_WALL is the one
// recoverable code.
func IsFatal(err error) bool {
	return err != nil && !Is(err, ErrCodeInvalidWall)
}

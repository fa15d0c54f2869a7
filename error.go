package doxsearch

import (
	"errors"
	"fmt"
)

// Application error codes.
const (
	ECONFLICT = "conflict"
	EINTERNAL = "internal"
	EINVALID  = "invalid"
	ENOTFOUND = "not_found"
)

// Error represents an application-specific error. Application errors can be
// unwrapped by the caller to extract out the code & message.
//
// Any non-application error (such as a disk error) should be reported as an
// EINTERNAL error and the human user should only see "Internal error" as the
// message.
type Error struct {
	Code    string
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Message
}

// Errorf is a helper function to return an Error with a given code and
// formatted message.
func Errorf(code string, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// ErrorCode unwraps an application error and returns its code.
// Non-application errors always return EINTERNAL.
func ErrorCode(err error) string {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	var pe *ParseError
	if errors.As(err, &pe) {
		return EINVALID
	}
	return EINTERNAL
}

// ErrorMessage unwraps an application error and returns its message.
// Non-application errors always return "Internal error".
func ErrorMessage(err error) string {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	var pe *ParseError
	if errors.As(err, &pe) {
		return pe.Error()
	}
	return "Internal error."
}

// ParseError reports raw index data that does not have the expected shape.
// Index is the position of the offending pair in the raw sequence, or -1
// when the input as a whole is malformed.
type ParseError struct {
	Index  int
	Key    string
	Reason string
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	switch {
	case e.Index < 0:
		return "parse index: " + e.Reason
	case e.Key == "":
		return fmt.Sprintf("parse index: record %d: %s", e.Index, e.Reason)
	default:
		return fmt.Sprintf("parse index: record %d (%q): %s", e.Index, e.Key, e.Reason)
	}
}

func parseErrorf(index int, key string, format string, args ...any) *ParseError {
	return &ParseError{Index: index, Key: key, Reason: fmt.Sprintf(format, args...)}
}

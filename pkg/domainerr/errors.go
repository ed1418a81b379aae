// Package domainerr provides a small typed-code error used across this
// module's boundaries: DBF loading, registration JSON decoding, and record
// lookups. Domain logic returns these instead of bare errors so callers can
// branch on Code without string matching, and HTTP/CLI adapters can map a
// Code to a status/exit code in one place.
package domainerr

import (
	"errors"
	"fmt"
)

// Code classifies an Error for callers that need to branch on it.
type Code string

const (
	// CodeInvalidInput marks malformed or missing caller-supplied data,
	// e.g. an empty IGRA number or an unparsable registration batch.
	CodeInvalidInput Code = "invalid_input"
	// CodeNotFound marks a lookup that found nothing.
	CodeNotFound Code = "not_found"
	// CodeMalformedDBF marks a byte-level violation of the dBase III Plus
	// layout (bad header, truncated record, bad terminator byte).
	CodeMalformedDBF Code = "malformed_dbf"
	// CodeSchemaMismatch marks a DBF whose field descriptors don't match
	// the personnel schema this module expects to project.
	CodeSchemaMismatch Code = "schema_mismatch"
	// CodeInternal marks an unexpected failure that isn't the caller's fault.
	CodeInternal Code = "internal"
)

// Error is a domain error carrying a stable Code plus a human-readable
// message. The message is safe to log; whether it is safe to return to an
// external caller is a decision made by the transport layer.
type Error struct {
	Code    Code
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.cause
}

// New constructs an Error with the given code and message.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Newf constructs an Error with a formatted message.
func Newf(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a Code and message to an underlying error, preserving it for
// errors.Is/As and %w-style unwrapping.
func Wrap(cause error, code Code, message string) *Error {
	return &Error{Code: code, Message: message, cause: cause}
}

// HasCode reports whether err is a *Error (directly or via wrapping) with
// the given Code.
func HasCode(err error, code Code) bool {
	var de *Error
	if errors.As(err, &de) {
		return de.Code == code
	}
	return false
}

// CodeOf extracts the Code from err. ok is false when err is not a *Error,
// in which case code is CodeInternal, and when err is nil, in which case
// code is empty.
func CodeOf(err error) (code Code, ok bool) {
	if err == nil {
		return "", false
	}
	var de *Error
	if errors.As(err, &de) {
		return de.Code, true
	}
	return CodeInternal, false
}

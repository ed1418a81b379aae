// Package domain holds small value types shared across this module's
// packages, following the typed-ID convention observed throughout the
// teacher codebase (ParseXxx constructors that enforce an invariant at a
// trust boundary, rather than passing bare strings between layers).
package domain

import (
	"strings"

	"rodeovalidate/pkg/domainerr"
)

// IGRANumber is the four-character primary key of a Personnel Record (§3,
// §GLOSSARY). It is a distinct type so a caller cannot accidentally pass a
// raw name string where an identifier is expected.
type IGRANumber string

// ParseIGRANumber trims surrounding whitespace and rejects an empty result.
// It does not enforce the four-character length: real files have been
// observed with unpadded IGRA numbers, and rejecting them here would throw
// away data the rest of the pipeline could still use for exact lookups.
func ParseIGRANumber(s string) (IGRANumber, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return "", domainerr.New(domainerr.CodeInvalidInput, "igra number cannot be empty")
	}
	return IGRANumber(trimmed), nil
}

// String returns the underlying value.
func (n IGRANumber) String() string {
	return string(n)
}

// IsZero reports whether the IGRA number is unset.
func (n IGRANumber) IsZero() bool {
	return n == ""
}

// Package errors provides error handling for the wikibase client.
//
// This package re-exports github.com/cockroachdb/errors, providing:
//   - Stack traces for debugging
//   - Error wrapping and context
//   - Hints and details for user-facing messages
//
// Usage:
//
//	// Wrap with context
//	if err := c.login(ctx, password); err != nil {
//	    return nil, errors.Wrap(err, "failed to log in")
//	}
//
//	// Check the taxonomy
//	if errors.Is(err, errors.ErrServerOverloaded) {
//	    // back off at a higher level
//	}
//
// For full documentation see: https://pkg.go.dev/github.com/cockroachdb/errors
package errors

import (
	crdb "github.com/cockroachdb/errors"
)

// Core error creation and wrapping
var (
	New          = crdb.New
	Newf         = crdb.Newf
	Wrap         = crdb.Wrap
	Wrapf        = crdb.Wrapf
	WithStack    = crdb.WithStack
	WithMessage  = crdb.WithMessage
	WithMessagef = crdb.WithMessagef
	Mark         = crdb.Mark
)

// User-facing messages and details
var (
	WithHint    = crdb.WithHint
	WithHintf   = crdb.WithHintf
	WithDetail  = crdb.WithDetail
	WithDetailf = crdb.WithDetailf
)

// Error inspection
var (
	Is            = crdb.Is
	IsAny         = crdb.IsAny
	As            = crdb.As
	Unwrap        = crdb.Unwrap
	UnwrapAll     = crdb.UnwrapAll
	GetAllHints   = crdb.GetAllHints
	GetAllDetails = crdb.GetAllDetails
	FlattenHints  = crdb.FlattenHints
)

// Sentinel errors of the client taxonomy.
// Wrap these with errors.Wrap() or errors.Mark() to add context while preserving errors.Is().
var (
	// ErrLoginFailed indicates the login exchange did not end in "Success".
	// No client is usable without an authenticated session.
	ErrLoginFailed = New("login failed")

	// ErrServerOverloaded indicates the maxlag retry budget was exhausted
	ErrServerOverloaded = New("server overloaded")

	// ErrTokenExpired signals a rejected edit token. It drives the one-shot
	// token refresh and is never returned to callers.
	ErrTokenExpired = New("edit token expired")

	// ErrMalformedTimestamp indicates a wire time string that does not match
	// <sign><digits>-<digits>-<digits>T<digits>:<digits>:<digits>Z
	ErrMalformedTimestamp = New("malformed timestamp")

	// ErrInvalidFieldEncoding indicates a value field that cannot be rendered on the wire
	ErrInvalidFieldEncoding = New("invalid field encoding")

	// ErrUnsupportedValueType indicates a datavalue type tag with no decoder
	ErrUnsupportedValueType = New("unsupported value type")
)

// IsServerOverloaded checks if an error is or wraps ErrServerOverloaded
func IsServerOverloaded(err error) bool {
	return err != nil && Is(err, ErrServerOverloaded)
}

// IsLoginFailed checks if an error is or wraps ErrLoginFailed
func IsLoginFailed(err error) bool {
	return err != nil && Is(err, ErrLoginFailed)
}

// IsValueError reports whether err belongs to the value-layer failures
// (malformed timestamp, invalid field encoding, unsupported value type).
func IsValueError(err error) bool {
	return err != nil && IsAny(err, ErrMalformedTimestamp, ErrInvalidFieldEncoding, ErrUnsupportedValueType)
}

// NewUnsupportedValueType creates an unsupported-value-type error naming the tag
func NewUnsupportedValueType(tag string) error {
	return Wrapf(ErrUnsupportedValueType, "%q", tag)
}

// NewMalformedTimestamp creates a malformed-timestamp error quoting the input
func NewMalformedTimestamp(raw string) error {
	return Wrapf(ErrMalformedTimestamp, "%q", raw)
}

// NewInvalidFieldEncoding creates an invalid-field-encoding error with a formatted message
func NewInvalidFieldEncoding(format string, args ...interface{}) error {
	return Wrapf(ErrInvalidFieldEncoding, format, args...)
}

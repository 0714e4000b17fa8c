// Package errors provides standardized domain errors that express the class of a
// failure rather than infrastructure details. Use cases return errors wrapping one
// of these classes and handlers map them to HTTP status codes.
package errors

import (
	"errors"
	"fmt"
)

// Error classes shared by every domain module.
var (
	// ErrInvalidInput indicates missing or malformed input: PIN or PAN out of bounds,
	// bad hex or base64, unsupported key size.
	ErrInvalidInput = errors.New("invalid input")

	// ErrCryptoFailure indicates a cipher operation failed: RSA-OAEP decryption,
	// wrong block length or invalid padding on the zone key layer.
	ErrCryptoFailure = errors.New("crypto failure")

	// ErrProtocolViolation indicates data decrypted successfully but does not follow
	// the expected structure: bad PIN length nibble, transport payload not JSON.
	ErrProtocolViolation = errors.New("protocol violation")
)

// New creates a new error with the given message.
// This is a convenience wrapper around errors.New for consistency.
func New(message string) error {
	return errors.New(message)
}

// Wrap wraps an error with additional context while preserving the error chain.
// Use this to add context at each layer without losing the original error type.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Is reports whether any error in err's tree matches target.
// This is a convenience wrapper around errors.Is.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's tree that matches target.
// This is a convenience wrapper around errors.As.
func As(err error, target any) bool {
	return errors.As(err, target)
}

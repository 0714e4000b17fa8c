// Package domain defines the ISO 9564-1 Format 0 PIN block models and errors.
package domain

import (
	"github.com/allisson/pinshield/internal/errors"
)

// PIN block error definitions.
//
// These domain-specific errors wrap standard errors from internal/errors
// to provide context for PIN block failures.
var (
	// ErrInvalidPINLength indicates the PIN is shorter than 4 or longer than 12 digits.
	ErrInvalidPINLength = errors.Wrap(errors.ErrInvalidInput, "pin must have between 4 and 12 digits")

	// ErrInvalidPIN indicates the PIN contains characters other than decimal digits.
	ErrInvalidPIN = errors.Wrap(errors.ErrInvalidInput, "pin must contain only digits")

	// ErrInvalidPANLength indicates the PAN is shorter than 13 or longer than 19 digits.
	ErrInvalidPANLength = errors.Wrap(errors.ErrInvalidInput, "pan must have between 13 and 19 digits")

	// ErrInvalidPAN indicates the PAN contains characters other than decimal digits.
	ErrInvalidPAN = errors.Wrap(errors.ErrInvalidInput, "pan must contain only digits")

	// ErrInvalidClearBlockLength indicates a clear PIN block is not 8 bytes.
	ErrInvalidClearBlockLength = errors.Wrap(errors.ErrInvalidInput, "clear pin block must be 8 bytes")

	// ErrInvalidEncryptedBlockHex indicates the encrypted block is not valid hex.
	ErrInvalidEncryptedBlockHex = errors.Wrap(errors.ErrInvalidInput, "invalid encrypted block hex")

	// ErrInvalidDecodeMode indicates an unknown PIN_DECODE_MODE value.
	ErrInvalidDecodeMode = errors.Wrap(errors.ErrInvalidInput, "invalid pin decode mode")

	// ErrDecodeFailed indicates the recovered PIN field is not a Format 0 field.
	//
	// After the XOR with the PAN field, the control nibble must be 0, the length
	// nibble must be in [4, 12] and the PIN nibbles must be decimal. Anything else
	// means the block was decrypted with the wrong zone key or decoded with the
	// wrong PAN.
	ErrDecodeFailed = errors.Wrap(errors.ErrProtocolViolation, "pin block decode failed")
)

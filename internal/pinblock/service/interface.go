// Package service implements the ISO 9564-1 Format 0 PIN block codec.
package service

import (
	pinblockDomain "github.com/allisson/pinshield/internal/pinblock/domain"
)

// Codec builds and parses clear PIN blocks.
type Codec interface {
	// Encode builds the PIN field, the PAN field and their XOR.
	Encode(pin, pan string) (*pinblockDomain.Fields, error)

	// Decode recovers the PIN field and the PIN from a clear block and the PAN it
	// was built with.
	Decode(clearBlock []byte, pan string) (*pinblockDomain.Decoded, error)

	// Mode reports how out-of-range PIN fields are handled by Decode.
	Mode() pinblockDomain.DecodeMode
}

package domain

import (
	"encoding/hex"
	"strings"

	cryptoDomain "github.com/allisson/pinshield/internal/crypto/domain"
)

// Fields holds the intermediate values of a Format 0 encoding.
//
// PinField and PanField are uppercase hex strings of 16 digits; ClearBlock is the
// byte-wise XOR of both fields. ClearBlock is sensitive: call Zero once done.
type Fields struct {
	PinField   string
	PanField   string
	ClearBlock []byte
}

// ClearBlockHex returns ClearBlock as uppercase hex.
func (f *Fields) ClearBlockHex() string {
	return UpperHex(f.ClearBlock)
}

// Zero clears the clear PIN block.
func (f *Fields) Zero() {
	if f == nil {
		return
	}
	cryptoDomain.Zero(f.ClearBlock)
}

// Decoded holds the result of decoding a clear PIN block against a PAN.
type Decoded struct {
	PinField     string
	ExtractedPIN string
}

// EncryptResult is returned by the encrypt flow. The clear values are exposed for
// visualization of the protocol.
type EncryptResult struct {
	PinField       string
	PanField       string
	ClearBlock     string
	EncryptedBlock string
	Algorithm      cryptoDomain.Algorithm
}

// VerifyResult is returned by the verify flow.
type VerifyResult struct {
	PinField     string
	ExtractedPIN string
}

// UpperHex encodes b as uppercase hex without separators.
func UpperHex(b []byte) string {
	return strings.ToUpper(hex.EncodeToString(b))
}

package service

import (
	"encoding/hex"
	"fmt"
	"strings"

	cryptoDomain "github.com/allisson/pinshield/internal/crypto/domain"
	pinblockDomain "github.com/allisson/pinshield/internal/pinblock/domain"
)

// ISO0Codec implements Codec for Format 0.
//
// PIN field:  0 | L | P P P P (P/F ...) F F   with L = len(PIN) in hex
// PAN field:  0 0 0 0 | 12 rightmost PAN digits excluding the check digit
// Clear block: PIN field XOR PAN field
//
// ISO0Codec has no mutable state and is safe for concurrent use.
type ISO0Codec struct {
	mode pinblockDomain.DecodeMode
}

// NewISO0Codec creates a codec decoding in the given mode.
func NewISO0Codec(mode pinblockDomain.DecodeMode) *ISO0Codec {
	return &ISO0Codec{mode: mode}
}

// Mode returns the decode mode.
func (c *ISO0Codec) Mode() pinblockDomain.DecodeMode {
	return c.mode
}

// Encode validates pin and pan and returns the Format 0 fields.
func (c *ISO0Codec) Encode(pin, pan string) (*pinblockDomain.Fields, error) {
	if err := ValidatePIN(pin); err != nil {
		return nil, err
	}
	panField, err := buildPANField(pan)
	if err != nil {
		return nil, err
	}

	pinField := fmt.Sprintf("0%X%s%s", len(pin), pin, strings.Repeat("F", 14-len(pin)))

	pinBytes, err := hex.DecodeString(pinField)
	if err != nil {
		return nil, fmt.Errorf("failed to decode pin field: %w", err)
	}
	defer cryptoDomain.Zero(pinBytes)

	panBytes, err := hex.DecodeString(panField)
	if err != nil {
		return nil, fmt.Errorf("failed to decode pan field: %w", err)
	}

	return &pinblockDomain.Fields{
		PinField:   pinField,
		PanField:   panField,
		ClearBlock: xorBlocks(pinBytes, panBytes),
	}, nil
}

// Decode XORs clearBlock with the PAN field of pan and reads the PIN back.
//
// In DecodeStrict mode the recovered field must be a well formed Format 0 field,
// otherwise ErrDecodeFailed is returned. In DecodeLenient mode the nibbles
// following the length nibble are returned as they are.
func (c *ISO0Codec) Decode(clearBlock []byte, pan string) (*pinblockDomain.Decoded, error) {
	if len(clearBlock) != pinblockDomain.BlockSize {
		return nil, fmt.Errorf("%w: got %d bytes", pinblockDomain.ErrInvalidClearBlockLength, len(clearBlock))
	}

	panField, err := buildPANField(pan)
	if err != nil {
		return nil, err
	}

	panBytes, err := hex.DecodeString(panField)
	if err != nil {
		return nil, fmt.Errorf("failed to decode pan field: %w", err)
	}

	pinBytes := xorBlocks(clearBlock, panBytes)
	defer cryptoDomain.Zero(pinBytes)

	pinField := pinblockDomain.UpperHex(pinBytes)
	pinLen := int(pinBytes[0] & 0x0F)

	if c.mode == pinblockDomain.DecodeLenient {
		end := min(2+pinLen, len(pinField))
		return &pinblockDomain.Decoded{PinField: pinField, ExtractedPIN: pinField[2:end]}, nil
	}

	if err := checkPINField(pinField, pinLen); err != nil {
		return nil, err
	}

	return &pinblockDomain.Decoded{PinField: pinField, ExtractedPIN: pinField[2 : 2+pinLen]}, nil
}

// ValidatePIN checks that pin has 4 to 12 decimal digits.
func ValidatePIN(pin string) error {
	if len(pin) < pinblockDomain.MinPINLength || len(pin) > pinblockDomain.MaxPINLength {
		return fmt.Errorf("%w: got %d", pinblockDomain.ErrInvalidPINLength, len(pin))
	}
	if !isDigits(pin) {
		return pinblockDomain.ErrInvalidPIN
	}
	return nil
}

// ValidatePAN checks that pan has 13 to 19 decimal digits.
func ValidatePAN(pan string) error {
	if len(pan) < pinblockDomain.MinPANLength || len(pan) > pinblockDomain.MaxPANLength {
		return fmt.Errorf("%w: got %d", pinblockDomain.ErrInvalidPANLength, len(pan))
	}
	if !isDigits(pan) {
		return pinblockDomain.ErrInvalidPAN
	}
	return nil
}

// buildPANField returns "0000" followed by the 12 PAN digits preceding the check digit.
func buildPANField(pan string) (string, error) {
	if err := ValidatePAN(pan); err != nil {
		return "", err
	}
	return "0000" + pan[len(pan)-1-pinblockDomain.PANDigits:len(pan)-1], nil
}

func checkPINField(pinField string, pinLen int) error {
	if pinField[0] != '0' {
		return fmt.Errorf("%w: control nibble %c", pinblockDomain.ErrDecodeFailed, pinField[0])
	}
	if pinLen < pinblockDomain.MinPINLength || pinLen > pinblockDomain.MaxPINLength {
		return fmt.Errorf("%w: pin length nibble %d", pinblockDomain.ErrDecodeFailed, pinLen)
	}
	if !isDigits(pinField[2 : 2+pinLen]) {
		return fmt.Errorf("%w: non decimal pin nibble", pinblockDomain.ErrDecodeFailed)
	}
	if strings.Trim(pinField[2+pinLen:], "F") != "" {
		return fmt.Errorf("%w: filler nibble is not F", pinblockDomain.ErrDecodeFailed)
	}
	return nil
}

func xorBlocks(a, b []byte) []byte {
	out := make([]byte, len(a))
	for i := range a {
		out[i] = a[i] ^ b[i]
	}
	return out
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

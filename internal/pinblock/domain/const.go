package domain

// Format 0 PIN block dimensions.
const (
	// BlockSize is the size in bytes of the PIN field, the PAN field and the
	// clear PIN block.
	BlockSize = 8

	// FormatCode is the control nibble of a Format 0 PIN field.
	FormatCode = 0x0

	MinPINLength = 4
	MaxPINLength = 12
	MinPANLength = 13
	MaxPANLength = 19

	// PANDigits is the number of PAN digits carried by the PAN field: the 12
	// rightmost digits excluding the check digit.
	PANDigits = 12
)

// DecodeMode selects how Decode treats a recovered PIN field that is not valid.
type DecodeMode string

const (
	// DecodeStrict rejects any recovered PIN field with a bad control nibble,
	// a length nibble outside [4, 12] or non decimal PIN nibbles.
	DecodeStrict DecodeMode = "strict"

	// DecodeLenient returns the nibbles following the length nibble as they are,
	// truncated to the end of the field. A wrong key or PAN then shows up as a
	// garbage PIN instead of an error.
	DecodeLenient DecodeMode = "lenient"
)

// ParseDecodeMode parses a PIN_DECODE_MODE value. The empty string selects
// DecodeStrict.
func ParseDecodeMode(s string) (DecodeMode, error) {
	switch DecodeMode(s) {
	case "", DecodeStrict:
		return DecodeStrict, nil
	case DecodeLenient:
		return DecodeLenient, nil
	default:
		return "", ErrInvalidDecodeMode
	}
}

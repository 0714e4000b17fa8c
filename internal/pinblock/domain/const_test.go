package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/allisson/pinshield/internal/errors"
)

func TestParseDecodeMode(t *testing.T) {
	tests := []struct {
		input    string
		expected DecodeMode
	}{
		{"", DecodeStrict},
		{"strict", DecodeStrict},
		{"lenient", DecodeLenient},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			mode, err := ParseDecodeMode(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, mode)
		})
	}

	t.Run("unknown", func(t *testing.T) {
		_, err := ParseDecodeMode("LENIENT")
		assert.ErrorIs(t, err, ErrInvalidDecodeMode)
		assert.True(t, errors.Is(err, errors.ErrInvalidInput))
	})
}

func TestFields(t *testing.T) {
	fields := &Fields{ClearBlock: []byte{0x04, 0x12, 0x17, 0xBA, 0x98, 0x76, 0xFE, 0xDC}}
	assert.Equal(t, "041217BA9876FEDC", fields.ClearBlockHex())

	fields.Zero()
	assert.Equal(t, make([]byte, BlockSize), fields.ClearBlock)

	var nilFields *Fields
	assert.NotPanics(t, nilFields.Zero)
}

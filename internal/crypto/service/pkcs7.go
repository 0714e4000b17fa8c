package service

import (
	"crypto/subtle"

	cryptoDomain "github.com/allisson/pinshield/internal/crypto/domain"
)

// pkcs7Pad appends n bytes of value n so the result is a multiple of blockSize.
// A full block of padding is added when data is already aligned.
func pkcs7Pad(data []byte, blockSize int) []byte {
	n := blockSize - len(data)%blockSize
	padded := make([]byte, len(data)+n)
	copy(padded, data)
	for i := len(data); i < len(padded); i++ {
		padded[i] = byte(n)
	}
	return padded
}

// pkcs7Unpad strips PKCS#7 padding, checking every padding byte.
func pkcs7Unpad(data []byte, blockSize int) ([]byte, error) {
	if len(data) == 0 || len(data)%blockSize != 0 {
		return nil, cryptoDomain.ErrInvalidBlockLength
	}

	n := int(data[len(data)-1])
	if n == 0 || n > blockSize {
		return nil, cryptoDomain.ErrInvalidPadding
	}

	var diff byte
	for _, b := range data[len(data)-n:] {
		diff |= b ^ byte(n)
	}
	if subtle.ConstantTimeByteEq(diff, 0) != 1 {
		return nil, cryptoDomain.ErrInvalidPadding
	}

	return data[:len(data)-n], nil
}

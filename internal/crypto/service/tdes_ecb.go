package service

import (
	"crypto/cipher"
	"crypto/des"
	"fmt"

	cryptoDomain "github.com/allisson/pinshield/internal/crypto/domain"
)

// TripleDESECBCipher implements ZoneCipher using Triple-DES (EDE) in ECB mode with
// no padding, the classic ZPK setup where one 8-byte PIN block is one DES block.
type TripleDESECBCipher struct {
	block cipher.Block
}

// NewTripleDESECB creates a Triple-DES-ECB cipher from a 16-byte double length key
// (expanded to K1||K2||K1) or a 24-byte triple length key.
func NewTripleDESECB(key []byte) (*TripleDESECBCipher, error) {
	expanded, err := expandTripleDESKey(key)
	if err != nil {
		return nil, err
	}
	defer cryptoDomain.Zero(expanded)

	block, err := des.NewTripleDESCipher(expanded)
	if err != nil {
		return nil, fmt.Errorf("failed to create triple-des cipher: %w", err)
	}

	return &TripleDESECBCipher{block: block}, nil
}

// expandTripleDESKey returns a fresh 24-byte key. A 16-byte key has its first 8
// bytes appended.
func expandTripleDESKey(key []byte) ([]byte, error) {
	switch len(key) {
	case cryptoDomain.TripleDESDoubleKeySize:
		expanded := make([]byte, 0, cryptoDomain.TripleDESTripleKeySize)
		expanded = append(expanded, key...)
		expanded = append(expanded, key[:8]...)
		return expanded, nil
	case cryptoDomain.TripleDESTripleKeySize:
		expanded := make([]byte, len(key))
		copy(expanded, key)
		return expanded, nil
	default:
		return nil, fmt.Errorf(
			"%w: triple-des requires 16 or 24 bytes, got %d",
			cryptoDomain.ErrInvalidKeySize,
			len(key),
		)
	}
}

// EncryptBlock enciphers clear without padding. clear must be a non-empty
// multiple of 8 bytes, at most MaxBlockPayload.
func (t *TripleDESECBCipher) EncryptBlock(clear []byte) ([]byte, error) {
	return ecbEncrypt(t.block, clear)
}

// DecryptBlock deciphers ciphertext with the same length rules as EncryptBlock.
func (t *TripleDESECBCipher) DecryptBlock(ciphertext []byte) ([]byte, error) {
	return ecbDecrypt(t.block, ciphertext)
}

// Algorithm returns TripleDESECB.
func (t *TripleDESECBCipher) Algorithm() cryptoDomain.Algorithm {
	return cryptoDomain.TripleDESECB
}

// BlockSize returns the DES block size.
func (t *TripleDESECBCipher) BlockSize() int {
	return des.BlockSize
}

package service

import (
	"crypto/aes"
	"crypto/cipher"
	"fmt"

	cryptoDomain "github.com/allisson/pinshield/internal/crypto/domain"
)

// AESECBCipher implements ZoneCipher using AES-256 in ECB mode with PKCS#7 padding.
//
// This is the variant used when the zone key is 32 bytes. The 8-byte ISO-0 clear
// block is padded with eight 0x08 bytes to fill one 16-byte AES block, so every
// encrypted PIN block is exactly 16 bytes.
//
// The transform is deterministic with no IV. Inputs are limited to
// MaxBlockPayload bytes.
//
// Thread safety:
//
//	The cipher holds only the expanded AES key schedule and is safe for concurrent
//	use from multiple goroutines.
//
// Example usage:
//
//	zoneKey, _ := cryptoDomain.ParseZoneKeyHex(cfg.ZoneKeyHex)
//	zc, err := NewAESECB(zoneKey.Key)
//	if err != nil {
//	    return err
//	}
//	encrypted, err := zc.EncryptBlock(clearBlock) // 16 bytes
type AESECBCipher struct {
	block cipher.Block
}

// NewAESECB creates a new AES-256-ECB cipher. The key must be exactly 32 bytes.
func NewAESECB(key []byte) (*AESECBCipher, error) {
	if len(key) != cryptoDomain.AES256KeySize {
		return nil, fmt.Errorf("%w: aes-256 requires 32 bytes, got %d", cryptoDomain.ErrInvalidKeySize, len(key))
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create AES cipher: %w", err)
	}

	return &AESECBCipher{block: block}, nil
}

// EncryptBlock pads clear with PKCS#7 and enciphers it block by block.
//
// Returns ErrInvalidBlockLength when clear is empty or the padded result would
// exceed MaxBlockPayload.
func (a *AESECBCipher) EncryptBlock(clear []byte) ([]byte, error) {
	if len(clear) == 0 {
		return nil, fmt.Errorf("%w: empty input", cryptoDomain.ErrInvalidBlockLength)
	}

	padded := pkcs7Pad(clear, aes.BlockSize)
	defer cryptoDomain.Zero(padded)

	return ecbEncrypt(a.block, padded)
}

// DecryptBlock deciphers ciphertext and strips the PKCS#7 padding.
//
// Returns ErrInvalidBlockLength when ciphertext is not a non-empty multiple of 16
// bytes, and ErrInvalidPadding when the padding does not verify. The latter is the
// usual symptom of a wrong zone key.
func (a *AESECBCipher) DecryptBlock(ciphertext []byte) ([]byte, error) {
	padded, err := ecbDecrypt(a.block, ciphertext)
	if err != nil {
		return nil, err
	}

	clear, err := pkcs7Unpad(padded, aes.BlockSize)
	if err != nil {
		cryptoDomain.Zero(padded)
		return nil, err
	}

	return clear, nil
}

// Algorithm returns AES256ECB.
func (a *AESECBCipher) Algorithm() cryptoDomain.Algorithm {
	return cryptoDomain.AES256ECB
}

// BlockSize returns the AES block size.
func (a *AESECBCipher) BlockSize() int {
	return aes.BlockSize
}

package service

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"

	cryptoDomain "github.com/allisson/pinshield/internal/crypto/domain"
)

// RSAOAEPTransportCipher implements TransportCipher with RSA-OAEP using SHA-256 as
// both the label hash and the MGF1 hash, and an empty label. This matches the
// WebCrypto {name: "RSA-OAEP", hash: "SHA-256"} parameters used by browser clients.
type RSAOAEPTransportCipher struct{}

// NewRSAOAEPTransportCipher creates a new RSAOAEPTransportCipher.
func NewRSAOAEPTransportCipher() *RSAOAEPTransportCipher {
	return &RSAOAEPTransportCipher{}
}

// MaxPayloadSize returns the largest plaintext RSA-OAEP/SHA-256 can seal under
// publicKey: k - 2*hLen - 2 (190 bytes for a 2048-bit modulus).
func MaxPayloadSize(publicKey *rsa.PublicKey) int {
	return publicKey.Size() - 2*sha256.Size - 2
}

// Wrap serializes payload as JSON, encrypts it and returns standard base64.
// Returns ErrPayloadTooLarge if the JSON does not fit the modulus.
func (t *RSAOAEPTransportCipher) Wrap(
	payload *cryptoDomain.TransportPayload,
	publicKey *rsa.PublicKey,
) (string, error) {
	plaintext, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to serialize transport payload: %w", err)
	}
	defer cryptoDomain.Zero(plaintext)

	if limit := MaxPayloadSize(publicKey); len(plaintext) > limit {
		return "", fmt.Errorf("%w: %d bytes (limit %d)", cryptoDomain.ErrPayloadTooLarge, len(plaintext), limit)
	}

	ciphertext, err := rsa.EncryptOAEP(sha256.New(), rand.Reader, publicKey, plaintext, nil)
	if err != nil {
		return "", fmt.Errorf("failed to encrypt transport payload: %w", err)
	}

	return base64.StdEncoding.EncodeToString(ciphertext), nil
}

// Unwrap reverses Wrap.
//
// Returns ErrInvalidCiphertextEncoding for bad base64, ErrDecryptionFailed when
// OAEP rejects the ciphertext, and ErrMalformedPayload when the plaintext is not a
// JSON object with non-empty pin and pan.
func (t *RSAOAEPTransportCipher) Unwrap(
	ciphertext string,
	privateKey *rsa.PrivateKey,
) (*cryptoDomain.TransportPayload, error) {
	raw, err := base64.StdEncoding.DecodeString(strings.TrimSpace(ciphertext))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", cryptoDomain.ErrInvalidCiphertextEncoding, err)
	}

	plaintext, err := rsa.DecryptOAEP(sha256.New(), nil, privateKey, raw, nil)
	if err != nil {
		return nil, cryptoDomain.ErrDecryptionFailed
	}
	defer cryptoDomain.Zero(plaintext)

	var payload cryptoDomain.TransportPayload
	if err := json.Unmarshal(plaintext, &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", cryptoDomain.ErrMalformedPayload, err)
	}

	if payload.PIN == "" || payload.PAN == "" {
		return nil, fmt.Errorf("%w: missing pin or pan", cryptoDomain.ErrMalformedPayload)
	}

	return &payload, nil
}

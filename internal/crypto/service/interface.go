// Package service provides the cryptographic services behind the PIN block
// protocol: the zone key block ciphers (AES-256-ECB+PKCS7, Triple-DES-ECB) and the
// RSA-OAEP transport envelope.
package service

import (
	"context"
	"crypto/rsa"

	cryptoDomain "github.com/allisson/pinshield/internal/crypto/domain"
)

// ZoneCipher protects PIN blocks under a zone key. Implementations are stateless
// after construction and safe for concurrent use.
type ZoneCipher interface {
	// EncryptBlock enciphers a clear PIN block.
	EncryptBlock(clear []byte) ([]byte, error)

	// DecryptBlock reverses EncryptBlock.
	DecryptBlock(ciphertext []byte) ([]byte, error)

	// Algorithm reports the variant in use.
	Algorithm() cryptoDomain.Algorithm

	// BlockSize reports the underlying block cipher size in bytes.
	BlockSize() int
}

// ZoneCipherManager creates the ZoneCipher variant matching a zone key.
type ZoneCipherManager interface {
	// CreateCipher selects the variant from the key's algorithm.
	CreateCipher(zoneKey *cryptoDomain.ZoneKey) (ZoneCipher, error)
}

// TransportCipher seals and opens the {pin, pan} envelope sent from client to server.
type TransportCipher interface {
	// Wrap serializes payload and encrypts it for publicKey. Returns standard base64.
	Wrap(payload *cryptoDomain.TransportPayload, publicKey *rsa.PublicKey) (string, error)

	// Unwrap decodes and decrypts a base64 envelope with privateKey.
	Unwrap(ciphertext string, privateKey *rsa.PrivateKey) (*cryptoDomain.TransportPayload, error)
}

// KMSService opens gocloud.dev secrets keepers.
type KMSService interface {
	// OpenKeeper opens a keeper for the provider URI.
	// Returns an error if the URI is invalid or the provider is unreachable.
	OpenKeeper(ctx context.Context, keyURI string) (cryptoDomain.KMSKeeper, error)
}

// Package usecase composes the transport cipher, the Format 0 codec and the zone
// cipher into the two PIN block flows.
package usecase

import (
	"context"

	cryptoDomain "github.com/allisson/pinshield/internal/crypto/domain"
	pinblockDomain "github.com/allisson/pinshield/internal/pinblock/domain"
)

// PinBlockUseCase defines the PIN block protocol operations.
type PinBlockUseCase interface {
	// PublicKey returns the transport public key as SPKI PEM.
	PublicKey(ctx context.Context) (string, error)

	// Encrypt opens a transport envelope, builds the clear PIN block and encrypts
	// it under the zone key.
	Encrypt(ctx context.Context, encryptedData string) (*pinblockDomain.EncryptResult, error)

	// Decrypt decrypts a PIN block under the zone key and recovers the PIN with pan.
	Decrypt(ctx context.Context, encryptedBlockHex, pan string) (*pinblockDomain.VerifyResult, error)

	// Algorithm reports the active zone cipher.
	Algorithm() cryptoDomain.Algorithm
}

package service

import (
	"encoding/hex"
	"fmt"
	"strings"

	cryptoDomain "github.com/allisson/pinshield/internal/crypto/domain"
)

// kcvLength is the number of bytes shown in a key check value.
const kcvLength = 3

// ZoneCipherManagerService implements the ZoneCipherManager interface.
type ZoneCipherManagerService struct{}

// NewZoneCipherManager creates a new ZoneCipherManagerService.
func NewZoneCipherManager() *ZoneCipherManagerService {
	return &ZoneCipherManagerService{}
}

// CreateCipher creates the ZoneCipher for the zone key's algorithm.
// Returns ErrInvalidKeySize if the key is nil or does not fit the algorithm.
func (zm *ZoneCipherManagerService) CreateCipher(zoneKey *cryptoDomain.ZoneKey) (ZoneCipher, error) {
	if zoneKey == nil {
		return nil, cryptoDomain.ErrInvalidKeySize
	}

	switch zoneKey.Algorithm {
	case cryptoDomain.AES256ECB:
		return NewAESECB(zoneKey.Key)
	case cryptoDomain.TripleDESECB:
		return NewTripleDESECB(zoneKey.Key)
	default:
		return nil, fmt.Errorf("%w: unknown algorithm %q", cryptoDomain.ErrInvalidKeySize, zoneKey.Algorithm)
	}
}

// KeyCheckValue returns the first three bytes of the encryption of an all-zero
// block as uppercase hex. It identifies a zone key without revealing it.
func KeyCheckValue(zc ZoneCipher) (string, error) {
	zeros := make([]byte, zc.BlockSize())

	encrypted, err := zc.EncryptBlock(zeros)
	if err != nil {
		return "", fmt.Errorf("failed to compute key check value: %w", err)
	}

	return strings.ToUpper(hex.EncodeToString(encrypted[:kcvLength])), nil
}

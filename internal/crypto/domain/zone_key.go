package domain

import (
	"context"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"log/slog"
	"strings"

	"github.com/allisson/pinshield/internal/config"
)

// KMSKeeper is the subset of *secrets.Keeper used to wrap and unwrap zone keys.
type KMSKeeper interface {
	Encrypt(ctx context.Context, plaintext []byte) ([]byte, error)
	Decrypt(ctx context.Context, ciphertext []byte) ([]byte, error)
	Close() error
}

// KeeperOpener opens a KMSKeeper for a provider URI (gcpkms://, awskms://,
// azurekeyvault://, hashivault://, base64key://).
type KeeperOpener interface {
	OpenKeeper(ctx context.Context, keyURI string) (KMSKeeper, error)
}

// ZoneKey is the symmetric key shared between two nodes to protect PIN blocks in
// interchange (a ZPK). It is loaded once at startup and never mutated afterwards,
// so it can be read from any goroutine without locking.
//
// The Algorithm is derived from the key length:
//   - 32 bytes: AES256ECB
//   - 16 or 24 bytes: TripleDESECB
type ZoneKey struct {
	Key       []byte
	Algorithm Algorithm
}

// AlgorithmForKeySize returns the zone cipher variant for a key of n bytes.
func AlgorithmForKeySize(n int) (Algorithm, error) {
	switch n {
	case AES256KeySize:
		return AES256ECB, nil
	case TripleDESDoubleKeySize, TripleDESTripleKeySize:
		return TripleDESECB, nil
	default:
		return "", fmt.Errorf("%w: got %d bytes", ErrInvalidKeySize, n)
	}
}

// NewZoneKey copies key into a new ZoneKey after checking its size.
func NewZoneKey(key []byte) (*ZoneKey, error) {
	alg, err := AlgorithmForKeySize(len(key))
	if err != nil {
		return nil, err
	}

	k := make([]byte, len(key))
	copy(k, key)

	return &ZoneKey{Key: k, Algorithm: alg}, nil
}

// ParseZoneKeyHex decodes a zone key written as hex. Case and surrounding
// whitespace are ignored.
func ParseZoneKeyHex(s string) (*ZoneKey, error) {
	raw, err := hex.DecodeString(strings.TrimSpace(s))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidZoneKeyHex, err)
	}
	defer Zero(raw)

	return NewZoneKey(raw)
}

// Close zeroes the key material.
func (z *ZoneKey) Close() {
	if z == nil {
		return
	}
	Zero(z.Key)
	z.Key = nil
}

// LoadZoneKey resolves the zone key from configuration.
//
// When ZoneKeyCiphertext is set, it is treated as base64 ciphertext produced by the
// KMS keeper at KMSKeyURI and unwrapped through kms. Otherwise ZoneKeyHex is used
// as clear key material. Only the algorithm and source are logged, never the key.
func LoadZoneKey(
	ctx context.Context,
	cfg *config.Config,
	kms KeeperOpener,
	logger *slog.Logger,
) (*ZoneKey, error) {
	if cfg.ZoneKeyCiphertext != "" {
		return loadZoneKeyFromKMS(ctx, cfg, kms, logger)
	}

	if cfg.ZoneKeyHex == "" {
		return nil, ErrZoneKeyNotSet
	}

	zoneKey, err := ParseZoneKeyHex(cfg.ZoneKeyHex)
	if err != nil {
		return nil, err
	}

	logger.Info("zone key loaded",
		slog.String("source", "config"),
		slog.String("algorithm", string(zoneKey.Algorithm)),
	)

	return zoneKey, nil
}

func loadZoneKeyFromKMS(
	ctx context.Context,
	cfg *config.Config,
	kms KeeperOpener,
	logger *slog.Logger,
) (*ZoneKey, error) {
	if cfg.KMSKeyURI == "" {
		return nil, ErrKMSKeyURINotSet
	}

	ciphertext, err := base64.StdEncoding.DecodeString(strings.TrimSpace(cfg.ZoneKeyCiphertext))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCiphertextEncoding, err)
	}

	keeper, err := kms.OpenKeeper(ctx, cfg.KMSKeyURI)
	if err != nil {
		return nil, err
	}
	defer func() {
		if closeErr := keeper.Close(); closeErr != nil {
			logger.Warn("failed to close kms keeper", slog.Any("error", closeErr))
		}
	}()

	raw, err := keeper.Decrypt(ctx, ciphertext)
	if err != nil {
		return nil, fmt.Errorf("failed to unwrap zone key: %w", err)
	}
	defer Zero(raw)

	zoneKey, err := NewZoneKey(raw)
	if err != nil {
		return nil, err
	}

	logger.Info("zone key loaded",
		slog.String("source", "kms"),
		slog.String("kms_provider", cfg.KMSProvider),
		slog.String("algorithm", string(zoneKey.Algorithm)),
	)

	return zoneKey, nil
}

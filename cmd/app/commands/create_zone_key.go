package commands

import (
	"bytes"
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"io"
	"log/slog"
	"math/bits"

	cryptoDomain "github.com/allisson/pinshield/internal/crypto/domain"
	cryptoService "github.com/allisson/pinshield/internal/crypto/service"
	pinblockDomain "github.com/allisson/pinshield/internal/pinblock/domain"
)

// RunCreateZoneKey generates a random zone key and prints it with its key check
// value (KCV).
//
// Without kmsKeyURI the key is printed in clear as ZONE_KEY_HEX. With kmsKeyURI
// the key is wrapped by that KMS key and printed as ZONE_KEY_CIPHERTEXT together
// with KMS_PROVIDER and KMS_KEY_URI. Key material is zeroed once printed.
//
// Security: Never use localsecrets provider in production. Use cloud KMS providers (gcpkms, awskms, azurekeyvault).
func RunCreateZoneKey(
	ctx context.Context,
	kmsService cryptoService.KMSService,
	logger *slog.Logger,
	writer io.Writer,
	algorithmStr string,
	kmsProvider string,
	kmsKeyURI string,
) error {
	keySize, err := parseZoneKeyAlgorithm(algorithmStr)
	if err != nil {
		return err
	}

	if kmsKeyURI != "" && kmsProvider == "" {
		return fmt.Errorf("--kms-provider is required when --kms-key-uri is set")
	}

	key, err := generateZoneKey(keySize)
	if err != nil {
		return err
	}
	defer cryptoDomain.Zero(key)

	zoneKey, err := cryptoDomain.NewZoneKey(key)
	if err != nil {
		return err
	}
	defer zoneKey.Close()

	zoneCipher, err := cryptoService.NewZoneCipherManager().CreateCipher(zoneKey)
	if err != nil {
		return fmt.Errorf("failed to create zone cipher: %w", err)
	}

	kcv, err := cryptoService.KeyCheckValue(zoneCipher)
	if err != nil {
		return fmt.Errorf("failed to compute key check value: %w", err)
	}

	logger.Info("zone key generated",
		slog.String("algorithm", string(zoneKey.Algorithm)),
		slog.String("kcv", kcv),
	)

	_, _ = fmt.Fprintln(writer, "# Zone Key Configuration")
	_, _ = fmt.Fprintf(writer, "# Algorithm: %s\n", zoneKey.Algorithm)
	_, _ = fmt.Fprintf(writer, "# KCV: %s\n", kcv)
	_, _ = fmt.Fprintln(writer, "# Copy these environment variables to your .env file or secrets manager")
	_, _ = fmt.Fprintln(writer)

	if kmsKeyURI == "" {
		_, _ = fmt.Fprintf(writer, "ZONE_KEY_HEX=\"%s\"\n", pinblockDomain.UpperHex(key))
		return nil
	}

	wrapped, err := cryptoService.WrapZoneKey(ctx, kmsService, kmsKeyURI, key)
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintf(writer, "KMS_PROVIDER=\"%s\"\n", kmsProvider)
	_, _ = fmt.Fprintf(writer, "KMS_KEY_URI=\"%s\"\n", kmsKeyURI)
	_, _ = fmt.Fprintf(writer, "ZONE_KEY_CIPHERTEXT=\"%s\"\n", base64.StdEncoding.EncodeToString(wrapped))

	return nil
}

// parseZoneKeyAlgorithm maps an --algorithm value to a zone key size in bytes.
func parseZoneKeyAlgorithm(algorithmStr string) (int, error) {
	switch algorithmStr {
	case "aes-256":
		return cryptoDomain.AES256KeySize, nil
	case "tdes-2key":
		return cryptoDomain.TripleDESDoubleKeySize, nil
	case "tdes-3key":
		return cryptoDomain.TripleDESTripleKeySize, nil
	default:
		return 0, fmt.Errorf(
			"invalid algorithm: %s (valid options: aes-256, tdes-2key, tdes-3key)",
			algorithmStr,
		)
	}
}

// generateZoneKey returns size random bytes. Triple-DES keys get odd parity on
// every byte and distinct 8-byte components.
func generateZoneKey(size int) ([]byte, error) {
	key := make([]byte, size)
	for {
		if _, err := rand.Read(key); err != nil {
			return nil, fmt.Errorf("failed to generate zone key: %w", err)
		}
		if size == cryptoDomain.AES256KeySize {
			return key, nil
		}

		setOddParity(key)
		if distinctDESComponents(key) {
			return key, nil
		}
	}
}

func setOddParity(key []byte) {
	for i, b := range key {
		if bits.OnesCount8(b)%2 == 0 {
			key[i] = b ^ 0x01
		}
	}
}

func distinctDESComponents(key []byte) bool {
	for i := 0; i+8 < len(key); i += 8 {
		for j := i + 8; j+8 <= len(key); j += 8 {
			if bytes.Equal(key[i:i+8], key[j:j+8]) {
				return false
			}
		}
	}
	return true
}

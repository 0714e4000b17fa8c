package domain

import (
	"github.com/allisson/pinshield/internal/errors"
)

// Cryptographic operation error definitions.
//
// These domain-specific errors wrap the error classes from internal/errors so the
// HTTP layer can map them without knowing about individual ciphers.
var (
	// ErrInvalidKeySize indicates the zone key length matches no supported variant.
	//
	// Accepted sizes: 32 bytes (AES-256), 16 bytes (2-key Triple-DES, expanded to
	// K1||K2||K1) and 24 bytes (3-key Triple-DES).
	ErrInvalidKeySize = errors.Wrap(errors.ErrInvalidInput, "invalid zone key size")

	// ErrInvalidZoneKeyHex indicates the configured zone key is not valid hex.
	ErrInvalidZoneKeyHex = errors.Wrap(errors.ErrInvalidInput, "invalid zone key hex")

	// ErrZoneKeyNotSet indicates neither a clear nor a KMS-wrapped zone key is configured.
	ErrZoneKeyNotSet = errors.Wrap(errors.ErrInvalidInput, "zone key not configured")

	// ErrKMSKeyURINotSet indicates a KMS-wrapped zone key was configured without a key URI.
	ErrKMSKeyURINotSet = errors.Wrap(errors.ErrInvalidInput, "kms key uri not configured")

	// ErrInvalidBlockLength indicates a block cipher input has an unusable length:
	// empty, not a multiple of the cipher block size, or above MaxBlockPayload.
	ErrInvalidBlockLength = errors.Wrap(errors.ErrCryptoFailure, "invalid block length")

	// ErrInvalidPadding indicates the trailing bytes of a decrypted AES block are not
	// a valid PKCS#7 pattern, which in practice means the wrong zone key was used.
	ErrInvalidPadding = errors.Wrap(errors.ErrCryptoFailure, "invalid padding")

	// ErrDecryptionFailed indicates RSA-OAEP decryption of a transport envelope failed.
	//
	// The cause (corrupt ciphertext, wrong key, wrong hash) is not disclosed.
	ErrDecryptionFailed = errors.Wrap(errors.ErrCryptoFailure, "decryption failed")

	// ErrInvalidCiphertextEncoding indicates the transport envelope is not valid base64.
	ErrInvalidCiphertextEncoding = errors.Wrap(errors.ErrInvalidInput, "invalid ciphertext encoding")

	// ErrPayloadTooLarge indicates the serialized payload exceeds the RSA-OAEP capacity.
	ErrPayloadTooLarge = errors.Wrap(errors.ErrInvalidInput, "payload too large for transport key")

	// ErrMalformedPayload indicates the decrypted envelope is not a JSON object
	// carrying both pin and pan.
	ErrMalformedPayload = errors.Wrap(errors.ErrProtocolViolation, "malformed transport payload")

	// ErrInvalidPublicKey indicates a PEM document does not hold an RSA SPKI public key.
	ErrInvalidPublicKey = errors.Wrap(errors.ErrInvalidInput, "invalid public key")

	// ErrTransportKeyTooSmall indicates a transport keypair below MinTransportKeyBits was requested.
	ErrTransportKeyTooSmall = errors.Wrap(errors.ErrInvalidInput, "transport key too small")
)

package domain

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"fmt"
)

const publicKeyPEMType = "PUBLIC KEY"

// TransportKeypair is the ephemeral RSA keypair shielding {pin, pan} between a
// client and this server. It is generated once at process start and discarded at
// exit; only the public half ever leaves the process.
type TransportKeypair struct {
	privateKey   *rsa.PrivateKey
	publicKeyPEM string
}

// GenerateTransportKeypair creates a fresh RSA keypair with a modulus of bits.
// Sizes below MinTransportKeyBits are rejected.
func GenerateTransportKeypair(bits int) (*TransportKeypair, error) {
	if bits < MinTransportKeyBits {
		return nil, fmt.Errorf("%w: %d bits (minimum %d)", ErrTransportKeyTooSmall, bits, MinTransportKeyBits)
	}

	privateKey, err := rsa.GenerateKey(rand.Reader, bits)
	if err != nil {
		return nil, fmt.Errorf("failed to generate transport keypair: %w", err)
	}

	publicKeyPEM, err := EncodePublicKeyPEM(&privateKey.PublicKey)
	if err != nil {
		return nil, err
	}

	return &TransportKeypair{
		privateKey:   privateKey,
		publicKeyPEM: publicKeyPEM,
	}, nil
}

// PrivateKey returns the private half. It must never be serialized.
func (k *TransportKeypair) PrivateKey() *rsa.PrivateKey {
	return k.privateKey
}

// PublicKey returns the public half.
func (k *TransportKeypair) PublicKey() *rsa.PublicKey {
	return &k.privateKey.PublicKey
}

// PublicKeyPEM returns the public half as an SPKI "PUBLIC KEY" PEM document.
func (k *TransportKeypair) PublicKeyPEM() string {
	return k.publicKeyPEM
}

// Bits returns the modulus size.
func (k *TransportKeypair) Bits() int {
	return k.privateKey.N.BitLen()
}

// EncodePublicKeyPEM encodes an RSA public key as SPKI PEM.
func EncodePublicKeyPEM(publicKey *rsa.PublicKey) (string, error) {
	der, err := x509.MarshalPKIXPublicKey(publicKey)
	if err != nil {
		return "", fmt.Errorf("failed to marshal public key: %w", err)
	}

	return string(pem.EncodeToMemory(&pem.Block{Type: publicKeyPEMType, Bytes: der})), nil
}

// ParsePublicKeyPEM decodes an SPKI PEM document holding an RSA public key.
func ParsePublicKeyPEM(data []byte) (*rsa.PublicKey, error) {
	block, _ := pem.Decode(data)
	if block == nil || block.Type != publicKeyPEMType {
		return nil, fmt.Errorf("%w: no %s pem block", ErrInvalidPublicKey, publicKeyPEMType)
	}

	parsed, err := x509.ParsePKIXPublicKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPublicKey, err)
	}

	publicKey, ok := parsed.(*rsa.PublicKey)
	if !ok {
		return nil, fmt.Errorf("%w: not an rsa key", ErrInvalidPublicKey)
	}

	return publicKey, nil
}

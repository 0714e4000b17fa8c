package usecase

import (
	"context"
	"encoding/hex"
	"fmt"
	"strings"

	cryptoDomain "github.com/allisson/pinshield/internal/crypto/domain"
	cryptoService "github.com/allisson/pinshield/internal/crypto/service"
	pinblockDomain "github.com/allisson/pinshield/internal/pinblock/domain"
	pinblockService "github.com/allisson/pinshield/internal/pinblock/service"
)

// pinBlockUseCase holds only values fixed at startup, so a single instance serves
// all requests concurrently.
type pinBlockUseCase struct {
	zoneCipher      cryptoService.ZoneCipher
	transportCipher cryptoService.TransportCipher
	keypair         *cryptoDomain.TransportKeypair
	codec           pinblockService.Codec
}

// NewPinBlockUseCase creates a PinBlockUseCase.
func NewPinBlockUseCase(
	zoneCipher cryptoService.ZoneCipher,
	transportCipher cryptoService.TransportCipher,
	keypair *cryptoDomain.TransportKeypair,
	codec pinblockService.Codec,
) PinBlockUseCase {
	return &pinBlockUseCase{
		zoneCipher:      zoneCipher,
		transportCipher: transportCipher,
		keypair:         keypair,
		codec:           codec,
	}
}

// PublicKey returns the transport public key PEM.
func (p *pinBlockUseCase) PublicKey(ctx context.Context) (string, error) {
	return p.keypair.PublicKeyPEM(), nil
}

// Encrypt runs Unwrap, Encode and EncryptBlock.
func (p *pinBlockUseCase) Encrypt(
	ctx context.Context,
	encryptedData string,
) (*pinblockDomain.EncryptResult, error) {
	payload, err := p.transportCipher.Unwrap(encryptedData, p.keypair.PrivateKey())
	if err != nil {
		return nil, err
	}
	defer payload.Zero()

	fields, err := p.codec.Encode(payload.PIN, payload.PAN)
	if err != nil {
		return nil, err
	}
	defer fields.Zero()

	encrypted, err := p.zoneCipher.EncryptBlock(fields.ClearBlock)
	if err != nil {
		return nil, fmt.Errorf("failed to encrypt pin block: %w", err)
	}

	return &pinblockDomain.EncryptResult{
		PinField:       fields.PinField,
		PanField:       fields.PanField,
		ClearBlock:     fields.ClearBlockHex(),
		EncryptedBlock: pinblockDomain.UpperHex(encrypted),
		Algorithm:      p.zoneCipher.Algorithm(),
	}, nil
}

// Decrypt runs DecryptBlock and Decode.
//
// A zone cipher that succeeds but yields something other than an 8-byte block
// (AES with the wrong key and an accidentally valid padding) is reported as
// ErrDecodeFailed.
func (p *pinBlockUseCase) Decrypt(
	ctx context.Context,
	encryptedBlockHex, pan string,
) (*pinblockDomain.VerifyResult, error) {
	if err := pinblockService.ValidatePAN(pan); err != nil {
		return nil, err
	}

	encrypted, err := hex.DecodeString(strings.TrimSpace(encryptedBlockHex))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", pinblockDomain.ErrInvalidEncryptedBlockHex, err)
	}

	clearBlock, err := p.zoneCipher.DecryptBlock(encrypted)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt pin block: %w", err)
	}
	defer cryptoDomain.Zero(clearBlock)

	if len(clearBlock) != pinblockDomain.BlockSize {
		return nil, fmt.Errorf(
			"%w: decrypted block has %d bytes",
			pinblockDomain.ErrDecodeFailed,
			len(clearBlock),
		)
	}

	decoded, err := p.codec.Decode(clearBlock, pan)
	if err != nil {
		return nil, err
	}

	return &pinblockDomain.VerifyResult{
		PinField:     decoded.PinField,
		ExtractedPIN: decoded.ExtractedPIN,
	}, nil
}

// Algorithm returns the zone cipher algorithm.
func (p *pinBlockUseCase) Algorithm() cryptoDomain.Algorithm {
	return p.zoneCipher.Algorithm()
}

// Package mocks provides testify mocks of the crypto service interfaces.
package mocks

import (
	"crypto/rsa"

	"github.com/stretchr/testify/mock"

	cryptoDomain "github.com/allisson/pinshield/internal/crypto/domain"
)

// MockZoneCipher is a mock implementation of service.ZoneCipher.
type MockZoneCipher struct {
	mock.Mock
}

// EncryptBlock mocks the EncryptBlock method of ZoneCipher.
func (m *MockZoneCipher) EncryptBlock(clear []byte) ([]byte, error) {
	args := m.Called(clear)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

// DecryptBlock mocks the DecryptBlock method of ZoneCipher.
func (m *MockZoneCipher) DecryptBlock(ciphertext []byte) ([]byte, error) {
	args := m.Called(ciphertext)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

// Algorithm mocks the Algorithm method of ZoneCipher.
func (m *MockZoneCipher) Algorithm() cryptoDomain.Algorithm {
	args := m.Called()
	return args.Get(0).(cryptoDomain.Algorithm)
}

// BlockSize mocks the BlockSize method of ZoneCipher.
func (m *MockZoneCipher) BlockSize() int {
	args := m.Called()
	return args.Int(0)
}

// MockTransportCipher is a mock implementation of service.TransportCipher.
type MockTransportCipher struct {
	mock.Mock
}

// Wrap mocks the Wrap method of TransportCipher.
func (m *MockTransportCipher) Wrap(
	payload *cryptoDomain.TransportPayload,
	publicKey *rsa.PublicKey,
) (string, error) {
	args := m.Called(payload, publicKey)
	return args.String(0), args.Error(1)
}

// Unwrap mocks the Unwrap method of TransportCipher.
func (m *MockTransportCipher) Unwrap(
	ciphertext string,
	privateKey *rsa.PrivateKey,
) (*cryptoDomain.TransportPayload, error) {
	args := m.Called(ciphertext, privateKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cryptoDomain.TransportPayload), args.Error(1)
}

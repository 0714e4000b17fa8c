// Package mocks provides mock implementations for testing HTTP handlers.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	cryptoDomain "github.com/allisson/pinshield/internal/crypto/domain"
	pinblockDomain "github.com/allisson/pinshield/internal/pinblock/domain"
)

// MockPinBlockUseCase is a mock implementation of PinBlockUseCase for testing.
type MockPinBlockUseCase struct {
	mock.Mock
}

// PublicKey mocks the PublicKey method of PinBlockUseCase.
func (m *MockPinBlockUseCase) PublicKey(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

// Encrypt mocks the Encrypt method of PinBlockUseCase.
func (m *MockPinBlockUseCase) Encrypt(
	ctx context.Context,
	encryptedData string,
) (*pinblockDomain.EncryptResult, error) {
	args := m.Called(ctx, encryptedData)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*pinblockDomain.EncryptResult), args.Error(1)
}

// Decrypt mocks the Decrypt method of PinBlockUseCase.
func (m *MockPinBlockUseCase) Decrypt(
	ctx context.Context,
	encryptedBlockHex, pan string,
) (*pinblockDomain.VerifyResult, error) {
	args := m.Called(ctx, encryptedBlockHex, pan)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*pinblockDomain.VerifyResult), args.Error(1)
}

// Algorithm mocks the Algorithm method of PinBlockUseCase.
func (m *MockPinBlockUseCase) Algorithm() cryptoDomain.Algorithm {
	args := m.Called()
	return args.Get(0).(cryptoDomain.Algorithm)
}

package usecase

import (
	"context"
	"time"

	cryptoDomain "github.com/allisson/pinshield/internal/crypto/domain"
	"github.com/allisson/pinshield/internal/metrics"
	pinblockDomain "github.com/allisson/pinshield/internal/pinblock/domain"
)

// pinBlockUseCaseWithMetrics decorates PinBlockUseCase with metrics instrumentation.
type pinBlockUseCaseWithMetrics struct {
	next    PinBlockUseCase
	metrics metrics.BusinessMetrics
}

// NewPinBlockUseCaseWithMetrics wraps a PinBlockUseCase with metrics recording.
func NewPinBlockUseCaseWithMetrics(useCase PinBlockUseCase, m metrics.BusinessMetrics) PinBlockUseCase {
	return &pinBlockUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// PublicKey records metrics for public key retrieval.
func (p *pinBlockUseCaseWithMetrics) PublicKey(ctx context.Context) (string, error) {
	start := time.Now()
	publicKey, err := p.next.PublicKey(ctx)
	p.record(ctx, "public_key", start, err)
	return publicKey, err
}

// Encrypt records metrics for the encrypt flow.
func (p *pinBlockUseCaseWithMetrics) Encrypt(
	ctx context.Context,
	encryptedData string,
) (*pinblockDomain.EncryptResult, error) {
	start := time.Now()
	result, err := p.next.Encrypt(ctx, encryptedData)
	p.record(ctx, "encrypt", start, err)
	return result, err
}

// Decrypt records metrics for the verify flow.
func (p *pinBlockUseCaseWithMetrics) Decrypt(
	ctx context.Context,
	encryptedBlockHex, pan string,
) (*pinblockDomain.VerifyResult, error) {
	start := time.Now()
	result, err := p.next.Decrypt(ctx, encryptedBlockHex, pan)
	p.record(ctx, "decrypt", start, err)
	return result, err
}

// Algorithm delegates to the wrapped use case.
func (p *pinBlockUseCaseWithMetrics) Algorithm() cryptoDomain.Algorithm {
	return p.next.Algorithm()
}

func (p *pinBlockUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	status := metrics.StatusFromError(err)
	algorithm := string(p.next.Algorithm())

	p.metrics.RecordOperation(ctx, operation, algorithm, status)
	p.metrics.RecordDuration(ctx, operation, algorithm, time.Since(start), status)
}

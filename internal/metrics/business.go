package metrics

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/allisson/pinshield/internal/errors"
)

// Operation status values. Failures are labelled by error class so that wrong-key
// and wrong-PAN attempts (protocol_error) can be told apart from bad requests.
const (
	StatusSuccess      = "success"
	StatusInvalidInput = "invalid_input"
	StatusCryptoError  = "crypto_error"
	StatusProtocolErr  = "protocol_error"
	StatusError        = "error"
)

// BusinessMetrics records PIN block protocol operations.
type BusinessMetrics interface {
	// RecordOperation counts one operation.
	// Operation examples: "public_key", "encrypt", "decrypt"
	// Algorithm is the active zone cipher ("aes-256-ecb-pkcs7", "tdes-ecb").
	RecordOperation(ctx context.Context, operation, algorithm, status string)

	// RecordDuration records the duration of one operation in seconds.
	RecordDuration(ctx context.Context, operation, algorithm string, duration time.Duration, status string)
}

// StatusFromError maps an operation result to a status label.
func StatusFromError(err error) string {
	switch {
	case err == nil:
		return StatusSuccess
	case errors.Is(err, errors.ErrInvalidInput):
		return StatusInvalidInput
	case errors.Is(err, errors.ErrCryptoFailure):
		return StatusCryptoError
	case errors.Is(err, errors.ErrProtocolViolation):
		return StatusProtocolErr
	default:
		return StatusError
	}
}

type businessMetrics struct {
	operationCounter metric.Int64Counter
	durationHisto    metric.Float64Histogram
}

// NewBusinessMetrics creates the business instruments under namespace
// (e.g. "pinshield_pin_block_operations_total").
func NewBusinessMetrics(meterProvider metric.MeterProvider, namespace string) (BusinessMetrics, error) {
	meter := meterProvider.Meter(namespace)

	operationCounter, err := meter.Int64Counter(
		fmt.Sprintf("%s_pin_block_operations_total", namespace),
		metric.WithDescription("Total number of PIN block operations"),
		metric.WithUnit("{operation}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create operation counter: %w", err)
	}

	durationHisto, err := meter.Float64Histogram(
		fmt.Sprintf("%s_pin_block_operation_duration_seconds", namespace),
		metric.WithDescription("Duration of PIN block operations in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create duration histogram: %w", err)
	}

	return &businessMetrics{
		operationCounter: operationCounter,
		durationHisto:    durationHisto,
	}, nil
}

func (b *businessMetrics) RecordOperation(ctx context.Context, operation, algorithm, status string) {
	b.operationCounter.Add(ctx, 1, metric.WithAttributes(attrs(operation, algorithm, status)...))
}

func (b *businessMetrics) RecordDuration(
	ctx context.Context,
	operation, algorithm string,
	duration time.Duration,
	status string,
) {
	b.durationHisto.Record(ctx, duration.Seconds(), metric.WithAttributes(attrs(operation, algorithm, status)...))
}

func attrs(operation, algorithm, status string) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String("operation", operation),
		attribute.String("algorithm", algorithm),
		attribute.String("status", status),
	}
}

// NoOpBusinessMetrics is used when metrics are disabled.
type NoOpBusinessMetrics struct{}

// NewNoOpBusinessMetrics creates a no-op BusinessMetrics implementation.
func NewNoOpBusinessMetrics() BusinessMetrics {
	return &NoOpBusinessMetrics{}
}

// RecordOperation does nothing.
func (n *NoOpBusinessMetrics) RecordOperation(ctx context.Context, operation, algorithm, status string) {}

// RecordDuration does nothing.
func (n *NoOpBusinessMetrics) RecordDuration(
	ctx context.Context,
	operation, algorithm string,
	duration time.Duration,
	status string,
) {
}

package usecase

import (
	"context"
	"time"

	cryptoDomain "github.com/allisson/cipherbox/internal/crypto/domain"
	"github.com/allisson/cipherbox/internal/metrics"
)

const metricsDomain = "crypto"

// cryptoUseCaseWithMetrics decorates CryptoUseCase with metrics instrumentation.
type cryptoUseCaseWithMetrics struct {
	next    CryptoUseCase
	metrics metrics.BusinessMetrics
}

// NewCryptoUseCaseWithMetrics wraps a CryptoUseCase with metrics recording.
func NewCryptoUseCaseWithMetrics(useCase CryptoUseCase, m metrics.BusinessMetrics) CryptoUseCase {
	return &cryptoUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// AESEncrypt records metrics for AES encryption operations.
func (c *cryptoUseCaseWithMetrics) AESEncrypt(ctx context.Context, text string) (*cryptoDomain.Envelope, error) {
	start := time.Now()
	envelope, err := c.next.AESEncrypt(ctx, text)
	c.record(ctx, "aes_encrypt", start, err)
	return envelope, err
}

// AESDecrypt records metrics for AES decryption operations.
func (c *cryptoUseCaseWithMetrics) AESDecrypt(
	ctx context.Context,
	envelope *cryptoDomain.Envelope,
) (string, error) {
	start := time.Now()
	plaintext, err := c.next.AESDecrypt(ctx, envelope)
	c.record(ctx, "aes_decrypt", start, err)
	return plaintext, err
}

// RSAEncrypt records metrics for RSA encryption operations.
func (c *cryptoUseCaseWithMetrics) RSAEncrypt(ctx context.Context, text string) (string, error) {
	start := time.Now()
	ciphertext, err := c.next.RSAEncrypt(ctx, text)
	c.record(ctx, "rsa_encrypt", start, err)
	return ciphertext, err
}

// RSADecrypt records metrics for RSA decryption operations.
func (c *cryptoUseCaseWithMetrics) RSADecrypt(ctx context.Context, ciphertext string) (string, error) {
	start := time.Now()
	plaintext, err := c.next.RSADecrypt(ctx, ciphertext)
	c.record(ctx, "rsa_decrypt", start, err)
	return plaintext, err
}

func (c *cryptoUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}

	c.metrics.RecordOperation(ctx, metricsDomain, operation, status)
	c.metrics.RecordDuration(ctx, metricsDomain, operation, time.Since(start), status)
}

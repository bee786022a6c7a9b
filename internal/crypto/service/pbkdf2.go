package service

import (
	"context"
	"crypto/sha256"
	"fmt"
	"runtime"

	"golang.org/x/crypto/pbkdf2"
	"golang.org/x/sync/semaphore"

	cryptoDomain "github.com/allisson/cipherbox/internal/crypto/domain"
)

// PBKDF2KeyDeriver derives 32-byte keys with PBKDF2-HMAC-SHA256.
//
// Each derivation runs 100000 rounds and takes a few milliseconds of CPU. The
// number of derivations running at once is bounded so a burst of requests
// cannot starve the rest of the process.
type PBKDF2KeyDeriver struct {
	sem *semaphore.Weighted
}

// NewPBKDF2KeyDeriver creates a deriver that runs at most maxConcurrent
// derivations at a time. Values <= 0 mean GOMAXPROCS.
func NewPBKDF2KeyDeriver(maxConcurrent int) *PBKDF2KeyDeriver {
	if maxConcurrent <= 0 {
		maxConcurrent = runtime.GOMAXPROCS(0)
	}
	return &PBKDF2KeyDeriver{sem: semaphore.NewWeighted(int64(maxConcurrent))}
}

// DeriveKey waits for a free slot and derives the key. Once started the
// derivation is not interrupted by ctx.
func (d *PBKDF2KeyDeriver) DeriveKey(ctx context.Context, secret, salt []byte) ([]byte, error) {
	if err := d.sem.Acquire(ctx, 1); err != nil {
		return nil, fmt.Errorf("failed to acquire key derivation slot: %w", err)
	}
	defer d.sem.Release(1)

	return pbkdf2.Key(
		secret,
		salt,
		cryptoDomain.PBKDF2Iterations,
		cryptoDomain.KeySize,
		sha256.New,
	), nil
}

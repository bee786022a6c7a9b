// Package service provides the cryptographic primitives behind the crypto use case:
// PBKDF2 key derivation, AES-256-GCM sealing, RSA-OAEP and KMS unwrapping.
package service

import (
	"context"
)

// KeyDeriver derives a symmetric key from a secret and a salt.
type KeyDeriver interface {
	// DeriveKey returns a fresh key. It blocks while the derivation runs and
	// only observes ctx while waiting to start.
	DeriveKey(ctx context.Context, secret, salt []byte) ([]byte, error)
}

// AEAD defines authenticated encryption with a caller-supplied nonce and a
// detached authentication tag.
type AEAD interface {
	// Seal encrypts plaintext and returns the ciphertext and its tag.
	Seal(plaintext, nonce []byte) (ciphertext, tag []byte, err error)

	// Open verifies tag and decrypts ciphertext. No plaintext is returned
	// unless the tag matches.
	Open(ciphertext, nonce, tag []byte) ([]byte, error)
}

// AEADFactory creates an AEAD bound to a key.
type AEADFactory func(key []byte) (AEAD, error)

// AsymmetricCipher encrypts with a public key and decrypts with the matching
// private key.
type AsymmetricCipher interface {
	Encrypt(plaintext []byte) ([]byte, error)
	Decrypt(ciphertext []byte) ([]byte, error)

	// MaxMessageSize is the longest plaintext Encrypt accepts, in bytes.
	MaxMessageSize() int

	// PublicKeyPEM returns the public key as a PKIX PEM block.
	PublicKeyPEM() ([]byte, error)
}

// KMSKeeper decrypts data wrapped by a key management service.
// *secrets.Keeper from gocloud.dev satisfies it.
type KMSKeeper interface {
	Encrypt(ctx context.Context, plaintext []byte) ([]byte, error)
	Decrypt(ctx context.Context, ciphertext []byte) ([]byte, error)
	Close() error
}

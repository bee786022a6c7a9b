package service

import (
	"crypto/aes"
	"crypto/cipher"
	"errors"
	"fmt"

	cryptoDomain "github.com/allisson/cipherbox/internal/crypto/domain"
)

// AESGCMCipher implements the AEAD interface using AES-256-GCM
// (Advanced Encryption Standard with Galois/Counter Mode).
//
// The cipher is configured for the envelope format: a 16-byte nonce supplied by
// the caller and a 16-byte tag returned separately from the ciphertext. Nonces
// must never repeat under the same key; the crypto use case guarantees this by
// deriving a new key from a new salt for every message.
//
// Thread safety:
//
//	The cipher instance is stateless and safe for concurrent use from multiple
//	goroutines.
type AESGCMCipher struct {
	aead cipher.AEAD
}

// NewAESGCM creates a new AES-256-GCM cipher instance.
//
// The key must be exactly 32 bytes (256 bits) for AES-256.
func NewAESGCM(key []byte) (*AESGCMCipher, error) {
	if len(key) != cryptoDomain.KeySize {
		return nil, errors.New("key must be exactly 32 bytes")
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create AES cipher: %w", err)
	}

	aead, err := cipher.NewGCMWithNonceSize(block, cryptoDomain.IVSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}

	return &AESGCMCipher{aead: aead}, nil
}

// NewAESGCMAEAD adapts NewAESGCM to AEADFactory.
func NewAESGCMAEAD(key []byte) (AEAD, error) {
	return NewAESGCM(key)
}

// Seal encrypts plaintext under nonce and splits off the authentication tag.
//
// The returned ciphertext has the same length as plaintext; the tag is always
// 16 bytes.
func (a *AESGCMCipher) Seal(plaintext, nonce []byte) (ciphertext, tag []byte, err error) {
	if len(nonce) != a.aead.NonceSize() {
		return nil, nil, fmt.Errorf("invalid nonce length: got %d, want %d", len(nonce), a.aead.NonceSize())
	}

	sealed := a.aead.Seal(nil, nonce, plaintext, nil)
	split := len(sealed) - a.aead.Overhead()
	return sealed[:split], sealed[split:], nil
}

// Open verifies the tag and decrypts ciphertext.
//
// Verification and decryption happen in one step: on a tag mismatch nothing
// but an error is returned.
func (a *AESGCMCipher) Open(ciphertext, nonce, tag []byte) ([]byte, error) {
	if len(nonce) != a.aead.NonceSize() {
		return nil, fmt.Errorf("invalid nonce length: got %d, want %d", len(nonce), a.aead.NonceSize())
	}
	if len(tag) != a.aead.Overhead() {
		return nil, fmt.Errorf("invalid tag length: got %d, want %d", len(tag), a.aead.Overhead())
	}

	sealed := make([]byte, 0, len(ciphertext)+len(tag))
	sealed = append(sealed, ciphertext...)
	sealed = append(sealed, tag...)

	plaintext, err := a.aead.Open(nil, nonce, sealed, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt: %w", err)
	}
	return plaintext, nil
}

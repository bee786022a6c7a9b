package service

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"crypto/x509"
	"encoding/pem"
	"fmt"

	cryptoDomain "github.com/allisson/cipherbox/internal/crypto/domain"
)

// RSAOAEPCipher implements AsymmetricCipher with RSA-OAEP (SHA-256, empty label).
//
// The keypair lives in memory only. It is generated when the cipher is created
// and discarded with the process, so ciphertexts do not survive a restart.
type RSAOAEPCipher struct {
	privateKey *rsa.PrivateKey
}

// GenerateRSAOAEP generates a fresh keypair of the given size.
// Returns ErrKeyInitialization if generation fails.
func GenerateRSAOAEP(bits int) (*RSAOAEPCipher, error) {
	privateKey, err := rsa.GenerateKey(rand.Reader, bits)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", cryptoDomain.ErrKeyInitialization, err)
	}
	return NewRSAOAEP(privateKey), nil
}

// NewRSAOAEP wraps an existing private key.
func NewRSAOAEP(privateKey *rsa.PrivateKey) *RSAOAEPCipher {
	return &RSAOAEPCipher{privateKey: privateKey}
}

// Encrypt encrypts plaintext with the public key. Plaintexts longer than
// MaxMessageSize are rejected, never truncated.
func (r *RSAOAEPCipher) Encrypt(plaintext []byte) ([]byte, error) {
	if limit := r.MaxMessageSize(); len(plaintext) > limit {
		return nil, fmt.Errorf("message too long for RSA key size: %d bytes, max %d", len(plaintext), limit)
	}

	ciphertext, err := rsa.EncryptOAEP(sha256.New(), rand.Reader, &r.privateKey.PublicKey, plaintext, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to encrypt: %w", err)
	}
	return ciphertext, nil
}

// Decrypt decrypts ciphertext with the private key.
func (r *RSAOAEPCipher) Decrypt(ciphertext []byte) ([]byte, error) {
	plaintext, err := rsa.DecryptOAEP(sha256.New(), nil, r.privateKey, ciphertext, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt: %w", err)
	}
	return plaintext, nil
}

// MaxMessageSize returns k - 2*hLen - 2, which is 190 bytes for a 2048-bit key.
func (r *RSAOAEPCipher) MaxMessageSize() int {
	return r.privateKey.PublicKey.Size() - 2*sha256.Size - 2
}

// PublicKeyPEM returns the public key encoded as a PKIX "PUBLIC KEY" PEM block.
func (r *RSAOAEPCipher) PublicKeyPEM() ([]byte, error) {
	der, err := x509.MarshalPKIXPublicKey(&r.privateKey.PublicKey)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal public key: %w", err)
	}
	return pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: der}), nil
}

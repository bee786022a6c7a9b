package usecase

import (
	"context"

	cryptoDomain "github.com/allisson/cipherbox/internal/crypto/domain"
)

// CryptoUseCase defines the four text transformations exposed by the service.
//
// Every method either fully succeeds or returns an error classified by the
// sentinels in the crypto domain package; there are no partial results.
type CryptoUseCase interface {
	// AESEncrypt seals text under a key derived from the master secret and a
	// fresh salt, returning a self-describing envelope.
	AESEncrypt(ctx context.Context, text string) (*cryptoDomain.Envelope, error)

	// AESDecrypt verifies and opens an envelope produced by AESEncrypt.
	AESDecrypt(ctx context.Context, envelope *cryptoDomain.Envelope) (string, error)

	// RSAEncrypt encrypts text with the process public key and returns base64.
	RSAEncrypt(ctx context.Context, text string) (string, error)

	// RSADecrypt decrypts base64 ciphertext with the process private key.
	RSADecrypt(ctx context.Context, ciphertext string) (string, error)
}

// PublicKeyProvider exposes the process RSA public key.
type PublicKeyProvider interface {
	PublicKeyPEM() ([]byte, error)
	MaxMessageSize() int
}

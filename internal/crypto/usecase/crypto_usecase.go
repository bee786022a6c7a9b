// Package usecase implements the cryptographic service: AES-256-GCM with PBKDF2
// derived keys and RSA-OAEP, on top of the primitives in the service package.
//
// The use case is constructed once per process and shared by every request.
// It holds two read-only resources, the master secret and the RSA keypair, so
// concurrent calls need no locking. It never logs, retries or swallows errors:
// failures are returned to the boundary layer, which decides what to show.
//
// # Usage Example
//
//	rsaCipher, err := service.GenerateRSAOAEP(domain.RSAKeyBits)
//	if err != nil {
//	    return err // wraps domain.ErrKeyInitialization
//	}
//	secret, _ := domain.ParseMasterSecret(os.Getenv("ENCRYPTION_KEY")) // nil keeps RSA usable
//	uc := usecase.NewCryptoUseCase(secret, service.NewPBKDF2KeyDeriver(0), service.NewAESGCMAEAD, rsaCipher)
//
//	envelope, err := uc.AESEncrypt(ctx, "hello")
//	plaintext, err := uc.AESDecrypt(ctx, envelope)
package usecase

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"unicode/utf8"

	cryptoDomain "github.com/allisson/cipherbox/internal/crypto/domain"
	cryptoService "github.com/allisson/cipherbox/internal/crypto/service"
)

// cryptoUseCase implements CryptoUseCase.
type cryptoUseCase struct {
	secret    *cryptoDomain.MasterSecret
	deriver   cryptoService.KeyDeriver
	newAEAD   cryptoService.AEADFactory
	rsaCipher cryptoService.AsymmetricCipher
}

// NewCryptoUseCase creates the cryptographic service.
//
// secret may be nil: the RSA path keeps working and every AES call fails with
// ErrInvalidKey until the process is restarted with a valid ENCRYPTION_KEY.
func NewCryptoUseCase(
	secret *cryptoDomain.MasterSecret,
	deriver cryptoService.KeyDeriver,
	newAEAD cryptoService.AEADFactory,
	rsaCipher cryptoService.AsymmetricCipher,
) CryptoUseCase {
	return &cryptoUseCase{
		secret:    secret,
		deriver:   deriver,
		newAEAD:   newAEAD,
		rsaCipher: rsaCipher,
	}
}

// validateKey fails fast before any symmetric work starts.
func (c *cryptoUseCase) validateKey() error {
	if c.secret == nil || len(c.secret.Bytes()) != cryptoDomain.KeySize {
		return cryptoDomain.ErrInvalidKey
	}
	return nil
}

// validateText rejects text that no decrypt call could hand back.
func validateText(text string) error {
	if text == "" {
		return cryptoDomain.ErrTextRequired
	}
	if !utf8.ValidString(text) {
		return cryptoDomain.ErrInvalidText
	}
	return nil
}

// AESEncrypt generates a fresh IV and salt, derives the key and seals text.
func (c *cryptoUseCase) AESEncrypt(ctx context.Context, text string) (*cryptoDomain.Envelope, error) {
	if err := validateText(text); err != nil {
		return nil, err
	}
	if err := c.validateKey(); err != nil {
		return nil, err
	}

	iv, err := randomBytes(cryptoDomain.IVSize)
	if err != nil {
		return nil, cryptoDomain.EncryptionFailure(fmt.Errorf("failed to generate iv: %w", err))
	}
	salt, err := randomBytes(cryptoDomain.SaltSize)
	if err != nil {
		return nil, cryptoDomain.EncryptionFailure(fmt.Errorf("failed to generate salt: %w", err))
	}

	aead, err := c.aeadFor(ctx, salt)
	if err != nil {
		return nil, cryptoDomain.EncryptionFailure(err)
	}

	ciphertext, tag, err := aead.Seal([]byte(text), iv)
	if err != nil {
		return nil, cryptoDomain.EncryptionFailure(err)
	}

	return cryptoDomain.NewEnvelope(cryptoDomain.SealedData{
		Ciphertext: ciphertext,
		IV:         iv,
		Salt:       salt,
		AuthTag:    tag,
	}), nil
}

// AESDecrypt re-derives the key from the envelope salt and opens the envelope.
// Every failure after validation collapses to ErrDecryptionFailed.
func (c *cryptoUseCase) AESDecrypt(ctx context.Context, envelope *cryptoDomain.Envelope) (string, error) {
	if err := envelope.Validate(); err != nil {
		return "", err
	}
	if err := c.validateKey(); err != nil {
		return "", err
	}

	sealed, err := envelope.Decode()
	if err != nil {
		return "", cryptoDomain.DecryptionFailure(err)
	}

	aead, err := c.aeadFor(ctx, sealed.Salt)
	if err != nil {
		return "", cryptoDomain.DecryptionFailure(err)
	}

	plaintext, err := aead.Open(sealed.Ciphertext, sealed.IV, sealed.AuthTag)
	if err != nil {
		return "", cryptoDomain.DecryptionFailure(err)
	}
	defer cryptoDomain.Zero(plaintext)

	if !utf8.Valid(plaintext) {
		return "", cryptoDomain.DecryptionFailure(fmt.Errorf("plaintext is not valid UTF-8"))
	}
	return string(plaintext), nil
}

// RSAEncrypt encrypts text with the public key.
func (c *cryptoUseCase) RSAEncrypt(ctx context.Context, text string) (string, error) {
	if err := validateText(text); err != nil {
		return "", err
	}
	if c.rsaCipher == nil {
		return "", cryptoDomain.ErrKeyInitialization
	}

	ciphertext, err := c.rsaCipher.Encrypt([]byte(text))
	if err != nil {
		return "", cryptoDomain.EncryptionFailure(err)
	}
	return base64.StdEncoding.EncodeToString(ciphertext), nil
}

// RSADecrypt decodes and decrypts ciphertext with the private key.
func (c *cryptoUseCase) RSADecrypt(ctx context.Context, ciphertext string) (string, error) {
	if ciphertext == "" {
		return "", cryptoDomain.ErrTextRequired
	}
	if c.rsaCipher == nil {
		return "", cryptoDomain.ErrKeyInitialization
	}

	raw, err := base64.StdEncoding.DecodeString(ciphertext)
	if err != nil {
		return "", cryptoDomain.DecryptionFailure(fmt.Errorf("invalid ciphertext encoding: %w", err))
	}

	plaintext, err := c.rsaCipher.Decrypt(raw)
	if err != nil {
		return "", cryptoDomain.DecryptionFailure(err)
	}
	if !utf8.Valid(plaintext) {
		return "", cryptoDomain.DecryptionFailure(fmt.Errorf("plaintext is not valid UTF-8"))
	}
	return string(plaintext), nil
}

// aeadFor derives the per-message key and binds a cipher to it. The derived key
// is zeroed before returning; the cipher keeps its own expanded schedule.
func (c *cryptoUseCase) aeadFor(ctx context.Context, salt []byte) (cryptoService.AEAD, error) {
	key, err := c.deriver.DeriveKey(ctx, c.secret.Bytes(), salt)
	if err != nil {
		return nil, fmt.Errorf("failed to derive key: %w", err)
	}
	defer cryptoDomain.Zero(key)

	aead, err := c.newAEAD(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}
	return aead, nil
}

func randomBytes(n int) ([]byte, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return nil, err
	}
	return b, nil
}

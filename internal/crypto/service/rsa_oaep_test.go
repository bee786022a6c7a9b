package service

import (
	"crypto/x509"
	"encoding/pem"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cryptoDomain "github.com/allisson/cipherbox/internal/crypto/domain"
)

func TestGenerateRSAOAEP(t *testing.T) {
	t.Run("2048-bit key", func(t *testing.T) {
		cipher, err := GenerateRSAOAEP(cryptoDomain.RSAKeyBits)
		require.NoError(t, err)
		assert.Equal(t, 190, cipher.MaxMessageSize())
	})

	t.Run("insecure key size fails", func(t *testing.T) {
		cipher, err := GenerateRSAOAEP(256)
		assert.ErrorIs(t, err, cryptoDomain.ErrKeyInitialization)
		assert.Nil(t, cipher)
	})
}

func TestRSAOAEPCipher(t *testing.T) {
	cipher, err := GenerateRSAOAEP(cryptoDomain.RSAKeyBits)
	require.NoError(t, err)

	t.Run("round trip", func(t *testing.T) {
		plaintext := []byte("hello, rsa")
		ciphertext, err := cipher.Encrypt(plaintext)
		require.NoError(t, err)
		assert.Len(t, ciphertext, 256)

		decrypted, err := cipher.Decrypt(ciphertext)
		require.NoError(t, err)
		assert.Equal(t, plaintext, decrypted)
	})

	t.Run("existing key decrypts", func(t *testing.T) {
		ciphertext, err := cipher.Encrypt([]byte("shared key"))
		require.NoError(t, err)

		decrypted, err := NewRSAOAEP(cipher.privateKey).Decrypt(ciphertext)
		require.NoError(t, err)
		assert.Equal(t, []byte("shared key"), decrypted)
	})

	t.Run("randomized padding", func(t *testing.T) {
		first, err := cipher.Encrypt([]byte("same"))
		require.NoError(t, err)
		second, err := cipher.Encrypt([]byte("same"))
		require.NoError(t, err)
		assert.NotEqual(t, first, second)
	})

	t.Run("max size accepted", func(t *testing.T) {
		plaintext := []byte(strings.Repeat("a", cipher.MaxMessageSize()))
		ciphertext, err := cipher.Encrypt(plaintext)
		require.NoError(t, err)

		decrypted, err := cipher.Decrypt(ciphertext)
		require.NoError(t, err)
		assert.Equal(t, plaintext, decrypted)
	})

	t.Run("oversize rejected", func(t *testing.T) {
		ciphertext, err := cipher.Encrypt([]byte(strings.Repeat("a", cipher.MaxMessageSize()+1)))
		assert.ErrorContains(t, err, "message too long")
		assert.Nil(t, ciphertext)
	})

	t.Run("corrupted ciphertext", func(t *testing.T) {
		ciphertext, err := cipher.Encrypt([]byte("data"))
		require.NoError(t, err)
		ciphertext[10] ^= 0xff

		plaintext, err := cipher.Decrypt(ciphertext)
		assert.Error(t, err)
		assert.Nil(t, plaintext)
	})

	t.Run("wrong key", func(t *testing.T) {
		other, err := GenerateRSAOAEP(cryptoDomain.RSAKeyBits)
		require.NoError(t, err)

		ciphertext, err := cipher.Encrypt([]byte("data"))
		require.NoError(t, err)

		_, err = other.Decrypt(ciphertext)
		assert.Error(t, err)
	})

	t.Run("public key pem", func(t *testing.T) {
		data, err := cipher.PublicKeyPEM()
		require.NoError(t, err)

		block, _ := pem.Decode(data)
		require.NotNil(t, block)
		assert.Equal(t, "PUBLIC KEY", block.Type)

		pub, err := x509.ParsePKIXPublicKey(block.Bytes)
		require.NoError(t, err)
		assert.True(t, cipher.privateKey.PublicKey.Equal(pub))
	})
}

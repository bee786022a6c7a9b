package dto

import (
	cryptoDomain "github.com/allisson/cipherbox/internal/crypto/domain"
)

// EncryptResponse holds either an envelope (AES) or a base64 string (RSA).
type EncryptResponse struct {
	Encrypted any `json:"encrypted"`
}

// NewEnvelopeResponse wraps an AES envelope.
func NewEnvelopeResponse(envelope *cryptoDomain.Envelope) EncryptResponse {
	return EncryptResponse{Encrypted: envelope}
}

// NewCiphertextResponse wraps an RSA ciphertext.
func NewCiphertextResponse(ciphertext string) EncryptResponse {
	return EncryptResponse{Encrypted: ciphertext}
}

// DecryptResponse holds the recovered plaintext.
type DecryptResponse struct {
	Decrypted string `json:"decrypted"`
}

// PublicKeyResponse exposes the RSA public key and the largest message it accepts.
type PublicKeyResponse struct {
	PublicKey      string `json:"publicKey"`
	MaxMessageSize int    `json:"maxMessageSize"`
}

// Package domain defines the cryptographic data model: master secret, symmetric
// envelope, method selector and the error taxonomy shared by every layer.
package domain

// Method selects the encryption scheme applied to a request.
//
// The two schemes are unrelated: AES derives a fresh AES-256-GCM key from the
// process master secret on every call, RSA uses the ephemeral process keypair.
type Method string

const (
	// AES selects password-derived AES-256-GCM authenticated encryption.
	AES Method = "AES"

	// RSA selects RSA public-key encryption with OAEP padding.
	RSA Method = "RSA"
)

// Symmetric scheme parameters. They are fixed so that encryption and decryption
// always agree; changing any of them breaks every envelope issued before.
const (
	// KeySize is the length in bytes of the master secret and of every derived key.
	KeySize = 32

	// IVSize is the length in bytes of the GCM nonce carried in each envelope.
	IVSize = 16

	// SaltSize is the length in bytes of the PBKDF2 salt carried in each envelope.
	SaltSize = 16

	// TagSize is the length in bytes of the GCM authentication tag.
	TagSize = 16

	// PBKDF2Iterations is the PBKDF2-HMAC-SHA256 work factor.
	PBKDF2Iterations = 100000
)

// RSAKeyBits is the modulus size of the process RSA keypair.
const RSAKeyBits = 2048

// ParseMethod converts a request selector into a Method.
// Selectors are case-sensitive; ok is false for anything other than "AES" or "RSA".
func ParseMethod(method string) (m Method, ok bool) {
	switch Method(method) {
	case AES, RSA:
		return Method(method), true
	default:
		return "", false
	}
}

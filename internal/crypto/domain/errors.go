package domain

import (
	"fmt"

	"github.com/allisson/cipherbox/internal/errors"
)

// Cryptographic operation error definitions.
//
// Each sentinel wraps one of the standard kinds from internal/errors so the
// boundary layer can classify failures without knowing crypto details. Messages
// are surfaced to end users verbatim.
var (
	// ErrTextRequired indicates the text to encrypt or decrypt is empty.
	ErrTextRequired = errors.Define(errors.ErrInvalidInput, "text is required")

	// ErrInvalidText indicates the text to encrypt is not valid UTF-8, so it
	// could never be returned by a decrypt call.
	ErrInvalidText = errors.Define(errors.ErrInvalidInput, "text must be valid UTF-8")

	// ErrInvalidEnvelope indicates a symmetric envelope is missing one of
	// ciphertext, iv, salt or authTag.
	ErrInvalidEnvelope = errors.Define(errors.ErrInvalidInput, "invalid encrypted data format")

	// ErrInvalidEncryptionMethod indicates an encrypt request selected a method
	// other than AES or RSA.
	ErrInvalidEncryptionMethod = errors.Define(errors.ErrInvalidInput, "Invalid encryption method.")

	// ErrInvalidDecryptionMethod indicates a decrypt request selected a method
	// other than AES or RSA.
	ErrInvalidDecryptionMethod = errors.Define(errors.ErrInvalidInput, "Invalid decryption method.")

	// ErrInvalidKey indicates the master secret is absent or does not decode to
	// exactly 32 bytes. Every symmetric operation fails closed with it.
	ErrInvalidKey = errors.Define(errors.ErrInvalidKey, "invalid encryption key format or length")

	// ErrKeyInitialization indicates the RSA keypair could not be generated.
	// The service instance is unusable without it.
	ErrKeyInitialization = errors.Define(errors.ErrInternal, "failed to initialize RSA key")

	// ErrEncryptionFailed indicates an encryption primitive failed.
	ErrEncryptionFailed = errors.Define(errors.ErrInvalidInput, "encryption failed")

	// ErrDecryptionFailed indicates decryption failed. The cause (wrong key,
	// tag mismatch, malformed encoding, bad padding) is never part of the message.
	ErrDecryptionFailed = errors.Define(errors.ErrInvalidInput, "decryption failed")
)

// EncryptionFailure wraps a primitive failure as ErrEncryptionFailed. The cause
// message is kept in the error text.
func EncryptionFailure(cause error) error {
	return fmt.Errorf("%w: %v", ErrEncryptionFailed, cause)
}

// DecryptionFailure wraps a primitive failure as ErrDecryptionFailed. The error
// text is only "decryption failed"; use Cause to read the detail for logs.
func DecryptionFailure(cause error) error {
	return &hiddenCauseError{public: ErrDecryptionFailed, cause: cause}
}

// Cause returns the internal cause attached by DecryptionFailure, or nil.
func Cause(err error) error {
	var hidden *hiddenCauseError
	if errors.As(err, &hidden) {
		return hidden.cause
	}
	return nil
}

type hiddenCauseError struct {
	public error
	cause  error
}

func (e *hiddenCauseError) Error() string { return e.public.Error() }

// Unwrap only exposes the public sentinel so errors.Is cannot be used to inspect
// which step failed.
func (e *hiddenCauseError) Unwrap() error { return e.public }

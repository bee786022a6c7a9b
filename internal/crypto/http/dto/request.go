// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	"bytes"
	"encoding/json"
	"fmt"

	validation "github.com/jellydator/validation"

	cryptoDomain "github.com/allisson/cipherbox/internal/crypto/domain"
	customValidation "github.com/allisson/cipherbox/internal/validation"
)

// EncryptRequest contains the parameters for encrypting text.
type EncryptRequest struct {
	Text   string `json:"text"`
	Method string `json:"method"`
}

// Validate checks the text first and the method second, so a request missing
// both reports the missing text.
func (r *EncryptRequest) Validate() error {
	err := validation.ValidateStruct(r,
		validation.Field(&r.Text, validation.Required),
	)
	if err != nil {
		return customValidation.ReplaceValidationError(err, cryptoDomain.ErrTextRequired)
	}
	return customValidation.ReplaceValidationError(validateMethod(r.Method), cryptoDomain.ErrInvalidEncryptionMethod)
}

// DecryptRequest contains the parameters for decrypting text.
//
// For AES, Text holds an envelope object or a JSON string containing the
// envelope JSON. For RSA, Text holds the base64 ciphertext string.
type DecryptRequest struct {
	Text   json.RawMessage `json:"text"`
	Method string          `json:"method"`
}

// Validate checks if the decrypt request is valid.
func (r *DecryptRequest) Validate() error {
	err := validation.ValidateStruct(r,
		validation.Field(&r.Text, customValidation.NotEmptyJSON),
	)
	if err != nil {
		return customValidation.ReplaceValidationError(err, cryptoDomain.ErrTextRequired)
	}
	return customValidation.ReplaceValidationError(validateMethod(r.Method), cryptoDomain.ErrInvalidDecryptionMethod)
}

// validateMethod accepts exactly "AES" or "RSA"; selectors are case and
// whitespace sensitive.
func validateMethod(method string) error {
	return validation.Validate(method,
		validation.Required,
		customValidation.NotBlank,
		customValidation.NoWhitespace,
		validation.In(string(cryptoDomain.AES), string(cryptoDomain.RSA)),
	)
}

// Envelope parses Text as a symmetric envelope. Anything that is not an object
// with string fields fails with ErrInvalidEnvelope.
func (r *DecryptRequest) Envelope() (*cryptoDomain.Envelope, error) {
	raw := bytes.TrimSpace(r.Text)

	if len(raw) > 0 && raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, cryptoDomain.ErrInvalidEnvelope
		}
		raw = bytes.TrimSpace([]byte(s))
	}

	if len(raw) == 0 || raw[0] != '{' {
		return nil, cryptoDomain.ErrInvalidEnvelope
	}

	var envelope cryptoDomain.Envelope
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, cryptoDomain.ErrInvalidEnvelope
	}
	return &envelope, nil
}

// Ciphertext parses Text as the base64 string produced by RSA encryption.
func (r *DecryptRequest) Ciphertext() (string, error) {
	var s string
	if err := json.Unmarshal(r.Text, &s); err != nil {
		return "", cryptoDomain.DecryptionFailure(fmt.Errorf("text must be a string: %w", err))
	}
	return s, nil
}

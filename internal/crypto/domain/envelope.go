package domain

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
)

// Envelope is the unit of symmetric ciphertext interchange.
//
// It is self-describing: the salt selects the derived key and the IV is the GCM
// nonce, so no key versioning is needed to decrypt it. All fields hold standard
// base64 text.
//
//	{"ciphertext":"...","iv":"...","salt":"...","authTag":"..."}
type Envelope struct {
	Ciphertext string `json:"ciphertext"`
	IV         string `json:"iv"`
	Salt       string `json:"salt"`
	AuthTag    string `json:"authTag"`
}

// UnmarshalJSON decodes an envelope, accepting "encrypted" as an alias for
// the "ciphertext" field name.
func (e *Envelope) UnmarshalJSON(data []byte) error {
	var raw struct {
		Ciphertext string `json:"ciphertext"`
		Encrypted  string `json:"encrypted"`
		IV         string `json:"iv"`
		Salt       string `json:"salt"`
		AuthTag    string `json:"authTag"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	e.Ciphertext = raw.Ciphertext
	if e.Ciphertext == "" {
		e.Ciphertext = raw.Encrypted
	}
	e.IV = raw.IV
	e.Salt = raw.Salt
	e.AuthTag = raw.AuthTag
	return nil
}

// Validate returns ErrInvalidEnvelope when any of the four fields is missing.
func (e *Envelope) Validate() error {
	if e == nil || e.Ciphertext == "" || e.IV == "" || e.Salt == "" || e.AuthTag == "" {
		return ErrInvalidEnvelope
	}
	return nil
}

// SealedData holds the decoded bytes of an Envelope.
type SealedData struct {
	Ciphertext []byte
	IV         []byte
	Salt       []byte
	AuthTag    []byte
}

// NewEnvelope encodes sealed bytes into an Envelope.
func NewEnvelope(sealed SealedData) *Envelope {
	return &Envelope{
		Ciphertext: base64.StdEncoding.EncodeToString(sealed.Ciphertext),
		IV:         base64.StdEncoding.EncodeToString(sealed.IV),
		Salt:       base64.StdEncoding.EncodeToString(sealed.Salt),
		AuthTag:    base64.StdEncoding.EncodeToString(sealed.AuthTag),
	}
}

// Decode base64-decodes every field and checks the IV, salt and tag lengths.
// Errors describe the failing field; callers must not show them to end users.
func (e *Envelope) Decode() (SealedData, error) {
	var sealed SealedData
	var err error

	if sealed.Ciphertext, err = decodeField("ciphertext", e.Ciphertext, -1); err != nil {
		return SealedData{}, err
	}
	if sealed.IV, err = decodeField("iv", e.IV, IVSize); err != nil {
		return SealedData{}, err
	}
	if sealed.Salt, err = decodeField("salt", e.Salt, SaltSize); err != nil {
		return SealedData{}, err
	}
	if sealed.AuthTag, err = decodeField("authTag", e.AuthTag, TagSize); err != nil {
		return SealedData{}, err
	}

	return sealed, nil
}

// decodeField decodes a base64 field; size < 0 skips the length check.
func decodeField(name, value string, size int) ([]byte, error) {
	b, err := base64.StdEncoding.DecodeString(value)
	if err != nil {
		return nil, fmt.Errorf("invalid %s encoding: %w", name, err)
	}
	if size >= 0 && len(b) != size {
		return nil, fmt.Errorf("invalid %s length: got %d, want %d", name, len(b), size)
	}
	return b, nil
}

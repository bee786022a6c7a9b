package domain

import (
	"encoding/base64"
	"strings"
)

// MasterSecret is the 32-byte symmetric secret every AES key is derived from.
//
// It is decoded once from the ENCRYPTION_KEY configuration value and never
// mutated afterwards, so it can be shared by concurrent requests without
// locking. A nil *MasterSecret means the configuration was absent or invalid.
type MasterSecret struct {
	key []byte
}

// ParseMasterSecret decodes a base64 master secret and checks its length.
//
// Standard padded base64 is expected; unpadded and URL-safe alphabets are
// accepted as well. Returns ErrInvalidKey when the value is empty, does not
// decode, or decodes to anything other than KeySize bytes.
func ParseMasterSecret(encoded string) (*MasterSecret, error) {
	encoded = strings.TrimSpace(encoded)
	if encoded == "" {
		return nil, ErrInvalidKey
	}

	key, err := decodeLenient(encoded)
	if err != nil {
		return nil, ErrInvalidKey
	}
	if len(key) != KeySize {
		Zero(key)
		return nil, ErrInvalidKey
	}

	return &MasterSecret{key: key}, nil
}

// Bytes returns the raw secret. Callers must not modify the returned slice.
func (m *MasterSecret) Bytes() []byte {
	return m.key
}

// Close zeroes the secret. The MasterSecret must not be used afterwards.
func (m *MasterSecret) Close() {
	if m == nil {
		return
	}
	Zero(m.key)
	m.key = nil
}

// Zero overwrites b with zeros to clear sensitive data from memory.
func Zero(b []byte) {
	clear(b)
}

func decodeLenient(s string) ([]byte, error) {
	var firstErr error
	for _, enc := range []*base64.Encoding{
		base64.StdEncoding,
		base64.RawStdEncoding,
		base64.URLEncoding,
		base64.RawURLEncoding,
	} {
		b, err := enc.DecodeString(s)
		if err == nil {
			return b, nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return nil, firstErr
}

package commands

import (
	"context"
	"encoding/json"
	"fmt"

	cryptoDomain "github.com/allisson/cipherbox/internal/crypto/domain"
	"github.com/allisson/cipherbox/internal/crypto/http/dto"
	cryptoUseCase "github.com/allisson/cipherbox/internal/crypto/usecase"
)

// RunEncrypt seals text with the configured ENCRYPTION_KEY and writes the
// {"encrypted": envelope} document to io.Writer. An empty text is read from
// io.Reader.
func RunEncrypt(ctx context.Context, useCase cryptoUseCase.CryptoUseCase, io IOTuple, text string) error {
	text, err := readInput(text, io.Reader)
	if err != nil {
		return err
	}
	if text == "" {
		return cryptoDomain.ErrTextRequired
	}

	envelope, err := useCase.AESEncrypt(ctx, text)
	if err != nil {
		return err
	}

	return writeJSON(io, dto.NewEnvelopeResponse(envelope))
}

// RunDecrypt opens an envelope with the configured ENCRYPTION_KEY and writes the
// {"decrypted": text} document to io.Writer. The envelope may be given as a JSON
// object or as the full {"encrypted": envelope} output of RunEncrypt.
func RunDecrypt(ctx context.Context, useCase cryptoUseCase.CryptoUseCase, io IOTuple, input string) error {
	input, err := readInput(input, io.Reader)
	if err != nil {
		return err
	}

	request := dto.DecryptRequest{Text: unwrapEncrypted([]byte(input)), Method: string(cryptoDomain.AES)}
	if err := request.Validate(); err != nil {
		return err
	}

	envelope, err := request.Envelope()
	if err != nil {
		return err
	}

	plaintext, err := useCase.AESDecrypt(ctx, envelope)
	if err != nil {
		return err
	}

	return writeJSON(io, dto.DecryptResponse{Decrypted: plaintext})
}

// unwrapEncrypted returns the value of the "encrypted" member when data is an
// encrypt response, and data unchanged otherwise.
func unwrapEncrypted(data []byte) json.RawMessage {
	var response struct {
		Encrypted json.RawMessage `json:"encrypted"`
	}
	if err := json.Unmarshal(data, &response); err == nil && len(response.Encrypted) > 0 {
		var encoded string
		// An envelope using the legacy "encrypted" alias holds a string here.
		if json.Unmarshal(response.Encrypted, &encoded) != nil {
			return response.Encrypted
		}
	}
	return data
}

func writeJSON(io IOTuple, v any) error {
	encoder := json.NewEncoder(io.Writer)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

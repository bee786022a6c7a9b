package commands

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"io"
	"log/slog"

	cryptoDomain "github.com/allisson/cipherbox/internal/crypto/domain"
	cryptoService "github.com/allisson/cipherbox/internal/crypto/service"
)

// RunCreateEncryptionKey generates a random 32-byte master secret and prints it as
// an ENCRYPTION_KEY environment variable. Key material is zeroed after encoding.
//
// When kmsKeyURI is set, the secret is wrapped with the KMS key first and the
// output also carries KMS_KEY_URI so the server unwraps it on startup.
//
// Output format:
//   - ENCRYPTION_KEY="<base64 secret or base64 KMS ciphertext>"
//   - KMS_KEY_URI="<uri>" (KMS mode only)
func RunCreateEncryptionKey(
	ctx context.Context,
	kmsService cryptoService.KMSService,
	logger *slog.Logger,
	writer io.Writer,
	kmsKeyURI string,
) error {
	secret := make([]byte, cryptoDomain.KeySize)
	if _, err := rand.Read(secret); err != nil {
		return fmt.Errorf("failed to generate encryption key: %w", err)
	}
	defer cryptoDomain.Zero(secret)

	if kmsKeyURI == "" {
		logger.Warn("encryption key printed in plaintext, consider wrapping it with --kms-key-uri")

		_, _ = fmt.Fprintln(writer, "# Encryption Key Configuration")
		_, _ = fmt.Fprintln(writer, "# Copy this environment variable to your .env file or secrets manager")
		_, _ = fmt.Fprintln(writer)
		_, _ = fmt.Fprintf(writer, "ENCRYPTION_KEY=\"%s\"\n", base64.StdEncoding.EncodeToString(secret))
		return nil
	}

	wrapped, err := kmsService.WrapMasterSecret(ctx, kmsKeyURI, secret)
	if err != nil {
		return fmt.Errorf("failed to wrap encryption key: %w", err)
	}

	logger.Info("encryption key wrapped with KMS")

	_, _ = fmt.Fprintln(writer, "# Encryption Key Configuration (KMS Mode)")
	_, _ = fmt.Fprintln(writer, "# Copy these environment variables to your .env file or secrets manager")
	_, _ = fmt.Fprintln(writer)
	_, _ = fmt.Fprintf(writer, "KMS_KEY_URI=\"%s\"\n", kmsKeyURI)
	_, _ = fmt.Fprintf(writer, "ENCRYPTION_KEY=\"%s\"\n", wrapped)
	return nil
}

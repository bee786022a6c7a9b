package service

import (
	"context"
	"encoding/base64"
	"fmt"

	"gocloud.dev/secrets"

	cryptoDomain "github.com/allisson/cipherbox/internal/crypto/domain"

	// Register all KMS provider drivers
	_ "gocloud.dev/secrets/awskms"
	_ "gocloud.dev/secrets/azurekeyvault"
	_ "gocloud.dev/secrets/gcpkms"
	_ "gocloud.dev/secrets/hashivault"
	_ "gocloud.dev/secrets/localsecrets"
)

// KMSService wraps and unwraps the ENCRYPTION_KEY master secret with a key
// management service, so the raw secret never has to sit in the environment.
type KMSService interface {
	// OpenKeeper opens a keeper for keyURI.
	// Supports: gcpkms://, awskms://, azurekeyvault://, hashivault://, base64key://
	OpenKeeper(ctx context.Context, keyURI string) (KMSKeeper, error)

	// WrapMasterSecret encrypts raw secret bytes and returns the base64 KMS ciphertext.
	WrapMasterSecret(ctx context.Context, keyURI string, secret []byte) (string, error)

	// UnwrapMasterSecret decrypts a base64 KMS ciphertext and returns the
	// master secret as standard base64, ready for ParseMasterSecret.
	UnwrapMasterSecret(ctx context.Context, keyURI, wrapped string) (string, error)
}

// kmsService implements KMSService using gocloud.dev/secrets.
type kmsService struct{}

// NewKMSService creates a new KMS service instance.
func NewKMSService() KMSService {
	return &kmsService{}
}

// OpenKeeper opens a secrets.Keeper for the configured KMS provider using the keyURI.
func (k *kmsService) OpenKeeper(ctx context.Context, keyURI string) (KMSKeeper, error) {
	keeper, err := secrets.OpenKeeper(ctx, keyURI)
	if err != nil {
		return nil, fmt.Errorf("failed to open KMS keeper: %w", err)
	}
	return keeper, nil
}

// WrapMasterSecret encrypts secret with the keeper at keyURI.
func (k *kmsService) WrapMasterSecret(ctx context.Context, keyURI string, secret []byte) (string, error) {
	keeper, err := k.OpenKeeper(ctx, keyURI)
	if err != nil {
		return "", err
	}
	defer func() { _ = keeper.Close() }()

	ciphertext, err := keeper.Encrypt(ctx, secret)
	if err != nil {
		return "", fmt.Errorf("failed to encrypt master secret with KMS: %w", err)
	}
	return base64.StdEncoding.EncodeToString(ciphertext), nil
}

// UnwrapMasterSecret decrypts wrapped with the keeper at keyURI. The plaintext
// is zeroed once it has been re-encoded.
func (k *kmsService) UnwrapMasterSecret(ctx context.Context, keyURI, wrapped string) (string, error) {
	ciphertext, err := base64.StdEncoding.DecodeString(wrapped)
	if err != nil {
		return "", fmt.Errorf("invalid KMS ciphertext encoding: %w", err)
	}

	keeper, err := k.OpenKeeper(ctx, keyURI)
	if err != nil {
		return "", err
	}
	defer func() { _ = keeper.Close() }()

	secret, err := keeper.Decrypt(ctx, ciphertext)
	if err != nil {
		return "", fmt.Errorf("failed to decrypt master secret with KMS: %w", err)
	}
	defer cryptoDomain.Zero(secret)

	return base64.StdEncoding.EncodeToString(secret), nil
}

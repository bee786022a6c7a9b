package commands

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	cryptoDomain "github.com/allisson/cipherbox/internal/crypto/domain"
	cryptoService "github.com/allisson/cipherbox/internal/crypto/service"
)

// MockKMSService is a hand-written mock of cryptoService.KMSService.
type MockKMSService struct {
	mock.Mock
}

func (m *MockKMSService) OpenKeeper(ctx context.Context, uri string) (cryptoService.KMSKeeper, error) {
	args := m.Called(ctx, uri)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(cryptoService.KMSKeeper), args.Error(1)
}

func (m *MockKMSService) WrapMasterSecret(ctx context.Context, uri string, secret []byte) (string, error) {
	args := m.Called(ctx, uri, secret)
	return args.String(0), args.Error(1)
}

func (m *MockKMSService) UnwrapMasterSecret(ctx context.Context, uri, wrapped string) (string, error) {
	args := m.Called(ctx, uri, wrapped)
	return args.String(0), args.Error(1)
}

var encryptionKeyLine = regexp.MustCompile(`ENCRYPTION_KEY="([^"]+)"`)

func TestRunCreateEncryptionKey(t *testing.T) {
	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("plaintext key", func(t *testing.T) {
		var out bytes.Buffer

		err := RunCreateEncryptionKey(ctx, nil, logger, &out, "")
		require.NoError(t, err)

		match := encryptionKeyLine.FindStringSubmatch(out.String())
		require.Len(t, match, 2)
		secret, err := cryptoDomain.ParseMasterSecret(match[1])
		require.NoError(t, err)
		assert.Len(t, secret.Bytes(), cryptoDomain.KeySize)
		assert.NotContains(t, out.String(), "KMS_KEY_URI")
	})

	t.Run("keys are random", func(t *testing.T) {
		var first, second bytes.Buffer
		require.NoError(t, RunCreateEncryptionKey(ctx, nil, logger, &first, ""))
		require.NoError(t, RunCreateEncryptionKey(ctx, nil, logger, &second, ""))
		assert.NotEqual(t, first.String(), second.String())
	})

	t.Run("kms wrapped key", func(t *testing.T) {
		mockService := &MockKMSService{}
		mockService.On("WrapMasterSecret", ctx, "base64key://...", mock.AnythingOfType("[]uint8")).
			Return("d3JhcHBlZA==", nil).
			Once()

		var out bytes.Buffer
		err := RunCreateEncryptionKey(ctx, mockService, logger, &out, "base64key://...")
		require.NoError(t, err)

		assert.Contains(t, out.String(), `KMS_KEY_URI="base64key://..."`)
		assert.Contains(t, out.String(), `ENCRYPTION_KEY="d3JhcHBlZA=="`)
		mockService.AssertExpectations(t)
	})

	t.Run("kms wrap error", func(t *testing.T) {
		mockService := &MockKMSService{}
		mockService.On("WrapMasterSecret", ctx, "base64key://...", mock.AnythingOfType("[]uint8")).
			Return("", errors.New("kms unavailable")).
			Once()

		var out bytes.Buffer
		err := RunCreateEncryptionKey(ctx, mockService, logger, &out, "base64key://...")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "kms unavailable")
		assert.Empty(t, out.String())
		mockService.AssertExpectations(t)
	})

	t.Run("kms round trip with local secrets", func(t *testing.T) {
		keyURI := "base64key://smGbjm71Nxd1Ig5FS0wj9SlbzAIrnolCz9bQQ6uAhl4="
		kmsService := cryptoService.NewKMSService()

		var out bytes.Buffer
		require.NoError(t, RunCreateEncryptionKey(ctx, kmsService, logger, &out, keyURI))

		match := encryptionKeyLine.FindStringSubmatch(out.String())
		require.Len(t, match, 2)

		unwrapped, err := kmsService.UnwrapMasterSecret(ctx, keyURI, match[1])
		require.NoError(t, err)
		_, err = cryptoDomain.ParseMasterSecret(unwrapped)
		assert.NoError(t, err)
	})
}

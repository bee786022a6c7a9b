package httputil

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cryptoDomain "github.com/allisson/cipherbox/internal/crypto/domain"
)

func newTestContext() (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", nil)
	return c, w
}

func newBufferLogger() (*slog.Logger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	return slog.New(slog.NewJSONHandler(buf, nil)), buf
}

func TestHandleCryptoErrorGin(t *testing.T) {
	tests := []struct {
		name            string
		err             error
		expectedMessage string
	}{
		{
			name:            "invalid encryption method",
			err:             cryptoDomain.ErrInvalidEncryptionMethod,
			expectedMessage: "Invalid encryption method.",
		},
		{
			name:            "text required",
			err:             cryptoDomain.ErrTextRequired,
			expectedMessage: "text is required",
		},
		{
			name:            "invalid key",
			err:             cryptoDomain.ErrInvalidKey,
			expectedMessage: "invalid encryption key format or length",
		},
		{
			name:            "encryption failure keeps cause",
			err:             cryptoDomain.EncryptionFailure(errors.New("message too long")),
			expectedMessage: "encryption failed: message too long",
		},
		{
			name:            "decryption failure hides cause",
			err:             cryptoDomain.DecryptionFailure(errors.New("tag mismatch")),
			expectedMessage: "decryption failed",
		},
		{
			name:            "internal kind is replaced",
			err:             fmt.Errorf("%w: entropy exhausted", cryptoDomain.ErrKeyInitialization),
			expectedMessage: genericErrorMessage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := newTestContext()

			HandleCryptoErrorGin(c, tt.err, nil)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			var response ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
			assert.Equal(t, tt.expectedMessage, response.Error)
		})
	}
}

func TestHandleCryptoErrorGin_LogsHiddenCause(t *testing.T) {
	c, w := newTestContext()
	logger, buf := newBufferLogger()

	HandleCryptoErrorGin(c, cryptoDomain.DecryptionFailure(errors.New("tag mismatch")), logger)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.NotContains(t, w.Body.String(), "tag mismatch")
	assert.Contains(t, buf.String(), "tag mismatch")
	assert.Contains(t, buf.String(), "crypto request failed")
}

func TestHandleCryptoErrorGin_NilError(t *testing.T) {
	c, w := newTestContext()

	HandleCryptoErrorGin(c, nil, nil)

	assert.Empty(t, w.Body.String())
}

func TestHandleBadRequestGin(t *testing.T) {
	c, w := newTestContext()

	HandleBadRequestGin(c, errors.New("invalid JSON body"), nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"invalid JSON body"}`, w.Body.String())
}

func TestHandleInternalErrorGin(t *testing.T) {
	c, w := newTestContext()
	logger, buf := newBufferLogger()

	HandleInternalErrorGin(c, errors.New("pem encode failed"), logger)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"An internal error occurred"}`, w.Body.String())
	assert.Contains(t, buf.String(), "pem encode failed")
}

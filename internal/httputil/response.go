// Package httputil provides HTTP utility functions for request and response handling.
package httputil

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	cryptoDomain "github.com/allisson/cipherbox/internal/crypto/domain"
	apperrors "github.com/allisson/cipherbox/internal/errors"
)

// genericErrorMessage is returned for failures whose message must not reach the client.
const genericErrorMessage = "An internal error occurred"

// ErrorResponse represents a structured error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// HandleCryptoErrorGin writes a 400 Bad Request with the error message as the body.
//
// Crypto sentinels carry messages meant for end users, so they are written verbatim.
// Internal kinds are replaced with a generic message. The hidden cause of a
// decryption failure is only logged.
func HandleCryptoErrorGin(c *gin.Context, err error, logger *slog.Logger) {
	if err == nil {
		return
	}

	message := err.Error()
	if apperrors.Is(err, apperrors.ErrInternal) {
		message = genericErrorMessage
	}

	if logger != nil {
		attrs := []any{
			slog.Int("status_code", http.StatusBadRequest),
			slog.Any("error", err),
		}
		if cause := cryptoDomain.Cause(err); cause != nil {
			attrs = append(attrs, slog.Any("cause", cause))
		}
		logger.Warn("crypto request failed", attrs...)
	}

	c.JSON(http.StatusBadRequest, ErrorResponse{Error: message})
}

// HandleBadRequestGin writes a 400 Bad Request response for malformed JSON or parameters using Gin.
func HandleBadRequestGin(c *gin.Context, err error, logger *slog.Logger) {
	if logger != nil {
		logger.Warn("bad request", slog.Any("error", err))
	}

	c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
}

// HandleInternalErrorGin writes a 500 response without exposing err to the client.
func HandleInternalErrorGin(c *gin.Context, err error, logger *slog.Logger) {
	if logger != nil {
		logger.Error("request failed",
			slog.Int("status_code", http.StatusInternalServerError),
			slog.Any("error", err),
		)
	}

	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: genericErrorMessage})
}

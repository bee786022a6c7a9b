// Package http provides HTTP handlers for text encryption and decryption.
package http

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	cryptoDomain "github.com/allisson/cipherbox/internal/crypto/domain"
	"github.com/allisson/cipherbox/internal/crypto/http/dto"
	cryptoUseCase "github.com/allisson/cipherbox/internal/crypto/usecase"
	"github.com/allisson/cipherbox/internal/httputil"
)

// CryptoHandler handles HTTP requests for AES and RSA text transformations.
// Every failure is reported as 400 with the error message in the body.
type CryptoHandler struct {
	cryptoUseCase cryptoUseCase.CryptoUseCase
	publicKey     cryptoUseCase.PublicKeyProvider
	logger        *slog.Logger
}

// NewCryptoHandler creates a new crypto handler with required dependencies.
func NewCryptoHandler(
	cryptoUseCase cryptoUseCase.CryptoUseCase,
	publicKey cryptoUseCase.PublicKeyProvider,
	logger *slog.Logger,
) *CryptoHandler {
	return &CryptoHandler{
		cryptoUseCase: cryptoUseCase,
		publicKey:     publicKey,
		logger:        logger,
	}
}

// EncryptHandler encrypts text with the selected method.
// POST /encrypt
// Returns 200 OK with {"encrypted": envelope} for AES or {"encrypted": "<base64>"} for RSA.
func (h *CryptoHandler) EncryptHandler(c *gin.Context) {
	var req dto.EncryptRequest

	if err := bindJSON(c, &req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleCryptoErrorGin(c, err, h.logger)
		return
	}

	method, ok := cryptoDomain.ParseMethod(req.Method)
	if !ok {
		httputil.HandleCryptoErrorGin(c, cryptoDomain.ErrInvalidEncryptionMethod, h.logger)
		return
	}

	ctx := c.Request.Context()

	var response dto.EncryptResponse
	switch method {
	case cryptoDomain.AES:
		envelope, err := h.cryptoUseCase.AESEncrypt(ctx, req.Text)
		if err != nil {
			httputil.HandleCryptoErrorGin(c, err, h.logger)
			return
		}
		response = dto.NewEnvelopeResponse(envelope)
	case cryptoDomain.RSA:
		ciphertext, err := h.cryptoUseCase.RSAEncrypt(ctx, req.Text)
		if err != nil {
			httputil.HandleCryptoErrorGin(c, err, h.logger)
			return
		}
		response = dto.NewCiphertextResponse(ciphertext)
	}

	c.JSON(http.StatusOK, response)
}

// DecryptHandler decrypts text with the selected method.
// POST /decrypt
// Returns 200 OK with {"decrypted": "..."}.
func (h *CryptoHandler) DecryptHandler(c *gin.Context) {
	var req dto.DecryptRequest

	if err := bindJSON(c, &req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleCryptoErrorGin(c, err, h.logger)
		return
	}

	method, ok := cryptoDomain.ParseMethod(req.Method)
	if !ok {
		httputil.HandleCryptoErrorGin(c, cryptoDomain.ErrInvalidDecryptionMethod, h.logger)
		return
	}

	plaintext, err := h.decrypt(c, method, &req)
	if err != nil {
		httputil.HandleCryptoErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.DecryptResponse{Decrypted: plaintext})
}

func (h *CryptoHandler) decrypt(c *gin.Context, method cryptoDomain.Method, req *dto.DecryptRequest) (string, error) {
	ctx := c.Request.Context()

	if method == cryptoDomain.AES {
		envelope, err := req.Envelope()
		if err != nil {
			return "", err
		}
		return h.cryptoUseCase.AESDecrypt(ctx, envelope)
	}

	ciphertext, err := req.Ciphertext()
	if err != nil {
		return "", err
	}
	return h.cryptoUseCase.RSADecrypt(ctx, ciphertext)
}

// PublicKeyHandler returns the process RSA public key in PEM form.
// GET /public-key
func (h *CryptoHandler) PublicKeyHandler(c *gin.Context) {
	pemBytes, err := h.publicKey.PublicKeyPEM()
	if err != nil {
		httputil.HandleInternalErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.PublicKeyResponse{
		PublicKey:      string(pemBytes),
		MaxMessageSize: h.publicKey.MaxMessageSize(),
	})
}

// bindJSON binds the request body, treating an empty body as an empty object.
func bindJSON(c *gin.Context, obj any) error {
	if err := c.ShouldBindJSON(obj); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

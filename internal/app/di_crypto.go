package app

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	cryptoDomain "github.com/allisson/cipherbox/internal/crypto/domain"
	cryptoHTTP "github.com/allisson/cipherbox/internal/crypto/http"
	cryptoService "github.com/allisson/cipherbox/internal/crypto/service"
	cryptoUseCase "github.com/allisson/cipherbox/internal/crypto/usecase"
	apperrors "github.com/allisson/cipherbox/internal/errors"
)

// cryptoComponents groups the crypto module dependencies held by the Container.
type cryptoComponents struct {
	masterSecret  *cryptoDomain.MasterSecret
	kmsService    cryptoService.KMSService
	keyDeriver    *cryptoService.PBKDF2KeyDeriver
	rsaCipher     *cryptoService.RSAOAEPCipher
	cryptoUseCase cryptoUseCase.CryptoUseCase
	cryptoHandler *cryptoHTTP.CryptoHandler

	masterSecretInit  sync.Once
	kmsServiceInit    sync.Once
	keyDeriverInit    sync.Once
	rsaCipherInit     sync.Once
	cryptoUseCaseInit sync.Once
	cryptoHandlerInit sync.Once
}

// MasterSecret returns the AES master secret decoded from ENCRYPTION_KEY, unwrapping
// it through KMS first when KMS_KEY_URI is set. The error wraps ErrInvalidKey.
func (c *Container) MasterSecret() (*cryptoDomain.MasterSecret, error) {
	var err error
	c.masterSecretInit.Do(func() {
		c.masterSecret, err = c.initMasterSecret()
		if err != nil {
			c.initErrors["masterSecret"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["masterSecret"]; exists {
		return nil, storedErr
	}
	return c.masterSecret, nil
}

// KMSService returns the KMS service.
func (c *Container) KMSService() cryptoService.KMSService {
	c.kmsServiceInit.Do(func() {
		c.kmsService = cryptoService.NewKMSService()
	})
	return c.kmsService
}

// KeyDeriver returns the PBKDF2 key deriver.
func (c *Container) KeyDeriver() *cryptoService.PBKDF2KeyDeriver {
	c.keyDeriverInit.Do(func() {
		c.keyDeriver = cryptoService.NewPBKDF2KeyDeriver(c.config.KDFMaxConcurrency)
	})
	return c.keyDeriver
}

// RSACipher returns the process RSA-OAEP cipher. The keypair is generated on
// first access; failure wraps ErrKeyInitialization.
func (c *Container) RSACipher() (*cryptoService.RSAOAEPCipher, error) {
	var err error
	c.rsaCipherInit.Do(func() {
		c.rsaCipher, err = c.initRSACipher()
		if err != nil {
			c.initErrors["rsaCipher"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["rsaCipher"]; exists {
		return nil, storedErr
	}
	return c.rsaCipher, nil
}

// CryptoUseCase returns the crypto use case wrapped with metrics.
func (c *Container) CryptoUseCase() (cryptoUseCase.CryptoUseCase, error) {
	var err error
	c.cryptoUseCaseInit.Do(func() {
		c.cryptoUseCase, err = c.initCryptoUseCase()
		if err != nil {
			c.initErrors["cryptoUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["cryptoUseCase"]; exists {
		return nil, storedErr
	}
	return c.cryptoUseCase, nil
}

// CryptoHandler returns the HTTP handler for encrypt, decrypt and public key routes.
func (c *Container) CryptoHandler() (*cryptoHTTP.CryptoHandler, error) {
	var err error
	c.cryptoHandlerInit.Do(func() {
		c.cryptoHandler, err = c.initCryptoHandler()
		if err != nil {
			c.initErrors["cryptoHandler"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["cryptoHandler"]; exists {
		return nil, storedErr
	}
	return c.cryptoHandler, nil
}

// SymmetricCryptoUseCase returns a use case for one-shot AES operations that does
// not generate an RSA keypair. Unlike CryptoUseCase it fails when the master
// secret is invalid. Its RSA methods fail with ErrKeyInitialization.
func (c *Container) SymmetricCryptoUseCase() (cryptoUseCase.CryptoUseCase, error) {
	secret, err := c.MasterSecret()
	if err != nil {
		return nil, err
	}
	return cryptoUseCase.NewCryptoUseCase(secret, c.KeyDeriver(), cryptoService.NewAESGCMAEAD, nil), nil
}

// initMasterSecret decodes the configured master secret.
func (c *Container) initMasterSecret() (*cryptoDomain.MasterSecret, error) {
	encoded := c.config.EncryptionKey
	if encoded == "" {
		return nil, apperrors.Wrap(cryptoDomain.ErrInvalidKey, "ENCRYPTION_KEY is not set")
	}

	if c.config.KMSKeyURI != "" {
		unwrapped, err := c.KMSService().UnwrapMasterSecret(context.Background(), c.config.KMSKeyURI, encoded)
		if err != nil {
			return nil, apperrors.Wrapf(cryptoDomain.ErrInvalidKey, "failed to unwrap ENCRYPTION_KEY: %v", err)
		}
		encoded = unwrapped
	}

	secret, err := cryptoDomain.ParseMasterSecret(encoded)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to parse ENCRYPTION_KEY")
	}
	return secret, nil
}

// generateRSACipher is replaced in tests to simulate a keypair generation failure.
var generateRSACipher = cryptoService.GenerateRSAOAEP

// initRSACipher generates the 2048-bit RSA keypair.
func (c *Container) initRSACipher() (*cryptoService.RSAOAEPCipher, error) {
	return generateRSACipher(cryptoDomain.RSAKeyBits)
}

// initCryptoUseCase creates the crypto use case. An invalid master secret is logged
// and leaves the AES path failing with ErrInvalidKey while RSA keeps working.
func (c *Container) initCryptoUseCase() (cryptoUseCase.CryptoUseCase, error) {
	logger := c.Logger()

	secret, err := c.MasterSecret()
	if err != nil {
		logger.Warn("AES encryption unavailable", slog.Any("error", err))
		secret = nil
	}

	rsaCipher, err := c.RSACipher()
	if err != nil {
		return nil, fmt.Errorf("failed to get rsa cipher for crypto use case: %w", err)
	}

	businessMetrics, err := c.BusinessMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get business metrics for crypto use case: %w", err)
	}

	useCase := cryptoUseCase.NewCryptoUseCase(
		secret,
		c.KeyDeriver(),
		cryptoService.NewAESGCMAEAD,
		rsaCipher,
	)
	return cryptoUseCase.NewCryptoUseCaseWithMetrics(useCase, businessMetrics), nil
}

// initCryptoHandler creates the crypto HTTP handler.
func (c *Container) initCryptoHandler() (*cryptoHTTP.CryptoHandler, error) {
	useCase, err := c.CryptoUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get crypto use case for crypto handler: %w", err)
	}

	rsaCipher, err := c.RSACipher()
	if err != nil {
		return nil, fmt.Errorf("failed to get rsa cipher for crypto handler: %w", err)
	}

	return cryptoHTTP.NewCryptoHandler(useCase, rsaCipher, c.Logger()), nil
}

// Package http provides HTTP server implementation and request handlers.
package http

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/allisson/cipherbox/internal/config"
	cryptoHTTP "github.com/allisson/cipherbox/internal/crypto/http"
	"github.com/allisson/cipherbox/internal/metrics"
)

// maxBodyBytes caps request bodies at 100 KiB.
const maxBodyBytes = 100 << 10

// Server represents the HTTP server
type Server struct {
	server *http.Server
	logger *slog.Logger
	router *gin.Engine

	// symmetricKeyConfigured reports whether ENCRYPTION_KEY decoded to a valid key.
	symmetricKeyConfigured bool
	shuttingDown           atomic.Bool

	// ctx stops background work started by middleware, such as limiter cleanup.
	ctx    context.Context
	cancel context.CancelFunc
}

// NewServer creates a new HTTP server
func NewServer(
	host string,
	port int,
	symmetricKeyConfigured bool,
	logger *slog.Logger,
) *Server {
	ctx, cancel := context.WithCancel(context.Background())
	return &Server{
		logger:                 logger,
		symmetricKeyConfigured: symmetricKeyConfigured,
		ctx:                    ctx,
		cancel:                 cancel,
		server:                 newHTTPServer(host, port, nil),
	}
}

// newHTTPServer returns an http.Server with the timeouts shared by the API and
// metrics listeners.
func newHTTPServer(host string, port int, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              net.JoinHostPort(host, strconv.Itoa(port)),
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
}

// SetupRouter builds the gin engine with all middleware and routes.
// A nil metricsProvider disables HTTP metrics.
func (s *Server) SetupRouter(
	cfg *config.Config,
	cryptoHandler *cryptoHTTP.CryptoHandler,
	metricsProvider *metrics.Provider,
) {
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(requestid.New(requestid.WithGenerator(func() string {
		return uuid.Must(uuid.NewV7()).String()
	})))
	router.Use(CustomLoggerMiddleware(s.logger))
	router.Use(SecurityHeadersMiddleware())

	if corsMiddleware := newCORSMiddleware(cfg.CORSEnabled, cfg.CORSAllowOrigins, s.logger); corsMiddleware != nil {
		router.Use(corsMiddleware)
	}

	if metricsProvider != nil {
		router.Use(metrics.HTTPMetricsMiddleware(metricsProvider.MeterProvider(), cfg.MetricsNamespace))
	}

	router.GET("/health", s.healthHandler)
	router.GET("/ready", s.readinessHandler)
	router.GET("/public-key", cryptoHandler.PublicKeyHandler)

	crypto := router.Group("/")
	crypto.Use(BodyLimitMiddleware(maxBodyBytes))
	if cfg.RateLimitEnabled {
		crypto.Use(RateLimitMiddleware(s.ctx, cfg.RateLimitRequestsPerSec, cfg.RateLimitBurst, s.logger))
	}
	crypto.POST("/encrypt", cryptoHandler.EncryptHandler)
	crypto.POST("/decrypt", cryptoHandler.DecryptHandler)

	router.NoRoute(staticHandler(cfg.StaticDir))

	s.router = router
}

// GetHandler returns the http.Handler for testing purposes.
func (s *Server) GetHandler() http.Handler {
	return s.router
}

// Start starts the HTTP server
func (s *Server) Start(ctx context.Context) error {
	if s.router == nil {
		return fmt.Errorf("router not initialized")
	}
	s.server.Handler = s.router

	s.logger.Info("starting http server", slog.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	s.shuttingDown.Store(true)
	defer s.cancel()
	return s.server.Shutdown(ctx)
}

// healthHandler reports process liveness.
// GET /health
func (s *Server) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// readinessHandler reports whether the server accepts traffic. A missing or invalid
// ENCRYPTION_KEY degrades the aes component but does not fail readiness, since RSA
// keeps working.
// GET /ready
func (s *Server) readinessHandler(c *gin.Context) {
	aes := "ok"
	if !s.symmetricKeyConfigured {
		aes = "invalid_key"
	}
	components := gin.H{"rsa": "ok", "aes": aes}

	if s.shuttingDown.Load() || s.router == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not_ready", "components": components})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ready", "components": components})
}

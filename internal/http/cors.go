package http

import (
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

const corsMaxAge = 12 * time.Hour

// newCORSMiddleware builds the CORS middleware for the /encrypt and /decrypt API.
//
// The bundled page is same-origin, so CORS stays off unless CORS_ENABLED is set.
// allowOrigins is a comma-separated list of origins such as
// "https://app.example.com"; a single "*" allows any origin. Entries that are
// not a scheme and host are skipped. Returns nil when nothing is left to allow.
func newCORSMiddleware(enabled bool, allowOrigins string, logger *slog.Logger) gin.HandlerFunc {
	if !enabled {
		return nil
	}

	config := cors.Config{
		AllowMethods:  []string{http.MethodGet, http.MethodPost},
		AllowHeaders:  []string{"Content-Type"},
		ExposeHeaders: []string{"X-Request-Id", "Retry-After"},
		MaxAge:        corsMaxAge,
	}

	origins := parseOrigins(allowOrigins, logger)
	switch {
	case len(origins) == 1 && origins[0] == "*":
		config.AllowAllOrigins = true
		logger.Warn("CORS enabled for any origin")
	case len(origins) == 0:
		logger.Warn("CORS enabled but no valid origins configured, CORS will not be applied")
		return nil
	default:
		config.AllowOrigins = origins
		logger.Info("CORS enabled", slog.Any("origins", origins))
	}

	return cors.New(config)
}

// parseOrigins splits a comma-separated origin list, dropping blanks and entries
// that are not an http(s) origin.
func parseOrigins(allowOrigins string, logger *slog.Logger) []string {
	if strings.TrimSpace(allowOrigins) == "" {
		return nil
	}

	var origins []string
	for part := range strings.SplitSeq(allowOrigins, ",") {
		origin := strings.TrimRight(strings.TrimSpace(part), "/")
		if origin == "" {
			continue
		}
		if origin == "*" || validOrigin(origin) {
			origins = append(origins, origin)
			continue
		}
		logger.Warn("ignoring invalid CORS origin", slog.String("origin", origin))
	}
	return origins
}

func validOrigin(origin string) bool {
	u, err := url.Parse(origin)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != "" && u.Path == "" && u.RawQuery == ""
}

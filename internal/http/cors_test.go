package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOrigins(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{name: "empty", input: "", expected: nil},
		{name: "blank", input: "  , ", expected: nil},
		{
			name:     "comma separated with spaces",
			input:    " https://app.example.com , http://localhost:3000 ",
			expected: []string{"https://app.example.com", "http://localhost:3000"},
		},
		{name: "trailing slash trimmed", input: "https://app.example.com/", expected: []string{"https://app.example.com"}},
		{name: "wildcard", input: "*", expected: []string{"*"}},
		{
			name:     "invalid entries skipped",
			input:    "app.example.com,ftp://files.example.com,https://ok.example.com,https://x.example.com/path",
			expected: []string{"https://ok.example.com"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, parseOrigins(tt.input, discardLogger()))
		})
	}
}

func TestNewCORSMiddleware(t *testing.T) {
	t.Run("disabled", func(t *testing.T) {
		assert.Nil(t, newCORSMiddleware(false, "https://app.example.com", discardLogger()))
	})

	t.Run("enabled without valid origins", func(t *testing.T) {
		assert.Nil(t, newCORSMiddleware(true, "", discardLogger()))
		assert.Nil(t, newCORSMiddleware(true, "not-an-origin", discardLogger()))
	})

	t.Run("enabled", func(t *testing.T) {
		assert.NotNil(t, newCORSMiddleware(true, "https://app.example.com", discardLogger()))
	})
}

func corsTestRouter(t *testing.T, allowOrigins string) *gin.Engine {
	t.Helper()
	middleware := newCORSMiddleware(true, allowOrigins, discardLogger())
	require.NotNil(t, middleware)

	router := gin.New()
	router.Use(middleware)
	router.POST("/encrypt", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"encrypted": "x"})
	})
	return router
}

func TestCORSMiddleware_Requests(t *testing.T) {
	t.Run("allowed origin", func(t *testing.T) {
		router := corsTestRouter(t, "https://app.example.com")

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/encrypt", nil)
		req.Header.Set("Origin", "https://app.example.com")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "https://app.example.com", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Contains(t, w.Header().Get("Access-Control-Expose-Headers"), "Retry-After")
	})

	t.Run("foreign origin rejected", func(t *testing.T) {
		router := corsTestRouter(t, "https://app.example.com")

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/encrypt", nil)
		req.Header.Set("Origin", "https://evil.example.com")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("preflight", func(t *testing.T) {
		router := corsTestRouter(t, "https://app.example.com")

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodOptions, "/encrypt", nil)
		req.Header.Set("Origin", "https://app.example.com")
		req.Header.Set("Access-Control-Request-Method", http.MethodPost)
		req.Header.Set("Access-Control-Request-Headers", "Content-Type")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), http.MethodPost)
		assert.Equal(t, "43200", w.Header().Get("Access-Control-Max-Age"))
	})

	t.Run("wildcard", func(t *testing.T) {
		router := corsTestRouter(t, "*")

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/encrypt", nil)
		req.Header.Set("Origin", "https://anywhere.example.com")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	})
}

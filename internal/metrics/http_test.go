package metrics

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPMetricsMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	provider, err := NewProvider("test_app")
	require.NoError(t, err)
	defer func() {
		assert.NoError(t, provider.Shutdown(context.Background()))
	}()

	router := gin.New()
	router.Use(HTTPMetricsMiddleware(provider.MeterProvider(), "test_app"))
	router.POST("/encrypt", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"encrypted": "Y2lwaGVy"})
	})
	router.POST("/decrypt", func(c *gin.Context) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "decryption failed"})
	})

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/encrypt", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/decrypt", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/index.html", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)

	output := scrape(t, provider)

	assertMetricLine(t, output, "test_app_http_requests_total", "3",
		`method="POST"`, `path="/encrypt"`, `status_code="200"`)
	assertMetricLine(t, output, "test_app_http_requests_total", "1",
		`method="POST"`, `path="/decrypt"`, `status_code="400"`)
	assertMetricLine(t, output, "test_app_http_requests_total", "1",
		`method="GET"`, `path="unmatched"`, `status_code="404"`)
}

func TestRouteLabel(t *testing.T) {
	assert.Equal(t, "/encrypt", routeLabel("/encrypt"))
	assert.Equal(t, "/", routeLabel("/"))
	assert.Equal(t, unmatchedRoute, routeLabel(""))
}

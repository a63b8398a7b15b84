package middleware

import (
	"compress/gzip"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine(cm *CompressionMiddleware) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(cm.Handler())
	r.GET("/big", func(c *gin.Context) {
		c.String(http.StatusOK, strings.Repeat("missing qualification ", 200))
	})
	r.GET("/small", func(c *gin.Context) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "resume text is required"})
	})
	r.GET("/empty", func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return r
}

func get(r http.Handler, path string, gzipOK bool) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if gzipOK {
		req.Header.Set("Accept-Encoding", "gzip, deflate")
	}
	r.ServeHTTP(w, req)
	return w
}

func TestCompression_LargeBody(t *testing.T) {
	cm := NewCompressionMiddleware(DefaultCompressionConfig())
	w := get(newTestEngine(cm), "/big", true)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "gzip", w.Header().Get("Content-Encoding"))
	assert.Equal(t, "Accept-Encoding", w.Header().Get("Vary"))

	zr, err := gzip.NewReader(w.Body)
	require.NoError(t, err)
	body, err := io.ReadAll(zr)
	require.NoError(t, err)
	assert.Equal(t, strings.Repeat("missing qualification ", 200), string(body))

	stats := cm.GetStats()
	assert.Equal(t, int64(1), stats["compressed_requests"])
	assert.Less(t, stats["compression_ratio"].(float64), 1.0)
}

func TestCompression_Passthrough(t *testing.T) {
	cm := NewCompressionMiddleware(DefaultCompressionConfig())
	r := newTestEngine(cm)

	t.Run("client without gzip", func(t *testing.T) {
		w := get(r, "/big", false)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, w.Header().Get("Content-Encoding"))
		assert.True(t, strings.HasPrefix(w.Body.String(), "missing qualification"))
	})

	t.Run("small body keeps status", func(t *testing.T) {
		w := get(r, "/small", true)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Empty(t, w.Header().Get("Content-Encoding"))
		assert.JSONEq(t, `{"error":"resume text is required"}`, w.Body.String())
	})

	t.Run("no content", func(t *testing.T) {
		w := get(r, "/empty", true)
		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Empty(t, w.Body.String())
	})

	t.Run("unmatched route", func(t *testing.T) {
		w := get(r, "/missing", true)
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "404 page not found", w.Body.String())
	})
}

func TestCompression_ExcludedPrefix(t *testing.T) {
	cfg := DefaultCompressionConfig()
	cfg.ExcludedPrefixes = []string{"/big"}
	w := get(newTestEngine(NewCompressionMiddleware(cfg)), "/big", true)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Content-Encoding"))
}

func TestNewCompressionMiddleware_InvalidLevel(t *testing.T) {
	cfg := DefaultCompressionConfig()
	cfg.CompressionLevel = 42
	cm := NewCompressionMiddleware(cfg)

	assert.Equal(t, gzip.DefaultCompression, cm.config.CompressionLevel)
	w := get(newTestEngine(cm), "/big", true)
	assert.Equal(t, "gzip", w.Header().Get("Content-Encoding"))
}

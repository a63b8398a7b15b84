package monitoring

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsCounters(t *testing.T) {
	m := NewMetrics()
	m.IncrementRequest()
	m.IncrementRequest()
	m.IncrementError()
	m.IncrementCacheHit()
	m.IncrementCacheMiss()
	m.IncrementCacheMiss()
	m.IncrementCacheMiss()

	stats := m.GetStats()
	assert.Equal(t, int64(2), stats["total_requests"])
	assert.Equal(t, int64(1), stats["error_count"])
	assert.Equal(t, 50.0, stats["error_rate_percent"])
	assert.Equal(t, 25.0, stats["cache_hit_rate_percent"])
}

func TestRecordAnalysis(t *testing.T) {
	m := NewMetrics()
	m.RecordAnalysis("keyword", "Strong Fit", 2*time.Millisecond)
	m.RecordAnalysis("keyword", "Weak", 4*time.Millisecond)
	m.RecordAnalysis("fixture", "Strong Fit", 0)

	stats := m.GetAnalysisStats()
	assert.Equal(t, int64(3), stats["total"])
	assert.Equal(t, 2.0, stats["avg_ms"])
	assert.Equal(t, map[string]int64{"keyword": 2, "fixture": 1}, stats["by_mode"])
	assert.Equal(t, map[string]int64{"Strong Fit": 2, "Weak": 1}, stats["by_decision"])
}

func TestPercentiles(t *testing.T) {
	m := NewMetrics()
	assert.Equal(t, time.Duration(0), m.GetPercentileResponseTime(50))

	for i := 1; i <= 100; i++ {
		m.RecordResponseTime(time.Duration(i) * time.Millisecond)
	}
	assert.Equal(t, 50*time.Millisecond, m.GetPercentileResponseTime(50))
	assert.Equal(t, 100*time.Millisecond, m.GetPercentileResponseTime(100))
}

func TestResponseTimeWindowIsBounded(t *testing.T) {
	m := NewMetrics()
	for i := 0; i < 1500; i++ {
		m.RecordResponseTime(time.Millisecond)
	}
	assert.Len(t, m.ResponseTimes, 1000)
}

func TestRateLimitStats(t *testing.T) {
	m := NewMetrics()
	m.IncrementRateLimitIPBlock()
	m.IncrementRateLimitFallback()
	m.IncrementRateLimitFallback()

	stats := m.GetRateLimitStats()
	assert.Equal(t, int64(1), stats["ip_blocks"])
	assert.Equal(t, int64(0), stats["redis_errors"])
	assert.Equal(t, int64(2), stats["fallback_count"])
}

func TestAnalysisLoggerOmitsText(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter(&buf, slog.LevelDebug)

	logger.AnalysisLogger("keyword", 120, 340, 71, "Strong Fit", 3*time.Millisecond, false)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "Analysis Completed", entry["msg"])
	assert.Equal(t, float64(120), entry["resume_chars"])
	assert.Equal(t, float64(340), entry["job_chars"])
	assert.Equal(t, "Strong Fit", entry["decision"])
	assert.Contains(t, entry, "timestamp")
}

func TestCacheLoggerShortKey(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter(&buf, slog.LevelDebug)

	assert.NotPanics(t, func() { logger.CacheLogger("get", "abc", false) })
	logger.CacheLogger("get", "0123456789abcdef", true)
	assert.Contains(t, buf.String(), `"key_hash":"01234567..."`)
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel(""))
}

func TestMonitoringMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	var buf bytes.Buffer
	metrics := NewMetrics()
	logger := NewLoggerWithWriter(&buf, slog.LevelInfo)

	r := gin.New()
	r.Use(MonitoringMiddleware(metrics, logger))
	r.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/bad", func(c *gin.Context) { c.Status(http.StatusBadRequest) })

	for _, path := range []string{"/ok", "/ok", "/bad"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	}

	stats := metrics.GetStats()
	assert.Equal(t, int64(3), stats["total_requests"])
	assert.Equal(t, int64(1), stats["error_count"])
	assert.Equal(t, map[int]int64{200: 2, 400: 1}, metrics.GetStatusCodeDistribution())
	assert.Equal(t, 3, strings.Count(buf.String(), "HTTP Request"))
}

func TestSecurityMonitoringMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	var buf bytes.Buffer
	logger := NewLoggerWithWriter(&buf, slog.LevelInfo)

	r := gin.New()
	r.Use(SecurityMonitoringMiddleware(logger, 16))
	r.POST("/api/analyze", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/analyze", strings.NewReader("short"))
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, buf.String())

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/api/analyze", strings.NewReader(strings.Repeat("x", 64)))
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, buf.String(), "large_request_body")

	buf.Reset()
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/api/analyze", strings.NewReader("a"))
	req.Header.Set("User-Agent", "sqlmap/1.7")
	r.ServeHTTP(w, req)
	assert.Contains(t, buf.String(), "suspicious_user_agent")
}

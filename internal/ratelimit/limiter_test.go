package ratelimit

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/ZanzyTHEbar/resume-match-analyzer/internal/monitoring"
	"github.com/ZanzyTHEbar/resume-match-analyzer/internal/types"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFallbackLimiter(t *testing.T, config Config) *RateLimiter {
	t.Helper()
	limiter := NewRateLimiter(&RedisClient{enabled: false}, config, monitoring.NewMetrics())
	t.Cleanup(limiter.Close)
	return limiter
}

func TestRateLimiterFallbackMode(t *testing.T) {
	limiter := newFallbackLimiter(t, DefaultConfig())

	ctx := context.Background()
	rateLimit := Rate{Limit: 5, Period: time.Minute}

	for i := 0; i < 5; i++ {
		result, err := limiter.Allow(ctx, "test:ip:1", rateLimit)
		require.NoError(t, err)
		assert.True(t, result.Allowed, "request %d should be allowed", i+1)
		assert.Equal(t, 5, result.Limit)
	}

	result, err := limiter.Allow(ctx, "test:ip:1", rateLimit)
	require.NoError(t, err)
	assert.False(t, result.Allowed, "6th request should be blocked")
	assert.Greater(t, result.RetryAfter, time.Duration(0))
	assert.Equal(t, 0, result.Remaining)
}

func TestRateLimiterBurstCapacity(t *testing.T) {
	config := DefaultConfig()
	config.BurstMultiplier = 2
	limiter := newFallbackLimiter(t, config)

	ctx := context.Background()
	rateLimit := Rate{Limit: 5, Period: time.Minute}

	allowed := 0
	for i := 0; i < 15; i++ {
		result, err := limiter.Allow(ctx, "test:burst", rateLimit)
		require.NoError(t, err)
		if result.Allowed {
			allowed++
		}
	}
	assert.Equal(t, 10, allowed)
}

func TestRateLimiterMultipleKeys(t *testing.T) {
	limiter := newFallbackLimiter(t, DefaultConfig())

	ctx := context.Background()
	rateLimit := Rate{Limit: 3, Period: time.Minute}

	for _, key := range []string{"ip:1", "ip:2", "ip:3"} {
		for i := 0; i < 3; i++ {
			result, err := limiter.Allow(ctx, key, rateLimit)
			require.NoError(t, err)
			assert.True(t, result.Allowed, "key %s request %d should be allowed", key, i+1)
		}

		result, err := limiter.Allow(ctx, key, rateLimit)
		require.NoError(t, err)
		assert.False(t, result.Allowed, "key %s 4th request should be blocked", key)
	}
}

func TestRateLimiterAllowIP(t *testing.T) {
	config := DefaultConfig()
	config.IPLimit = 2
	limiter := newFallbackLimiter(t, config)

	ctx := context.Background()
	for i := 0; i < 2; i++ {
		result, err := limiter.AllowIP(ctx, "10.0.0.1")
		require.NoError(t, err)
		assert.True(t, result.Allowed)
	}
	result, err := limiter.AllowIP(ctx, "10.0.0.1")
	require.NoError(t, err)
	assert.False(t, result.Allowed)

	result, err = limiter.AllowIP(ctx, "10.0.0.2")
	require.NoError(t, err)
	assert.True(t, result.Allowed)
}

func TestRateLimiterStats(t *testing.T) {
	limiter := newFallbackLimiter(t, DefaultConfig())

	for i := 0; i < 3; i++ {
		_, _ = limiter.Allow(context.Background(), "test:stats", Rate{Limit: 5, Period: time.Minute})
	}

	stats := limiter.GetStats()
	assert.False(t, stats["redis_enabled"].(bool))
	assert.True(t, stats["fallback_enabled"].(bool))
	assert.Equal(t, 1, stats["fallback_limiters"])

	statsConfig := stats["config"].(map[string]interface{})
	assert.Equal(t, 30, statsConfig["ip_limit_per_min"])
}

func TestRateLimiterCleanup(t *testing.T) {
	config := DefaultConfig()
	config.CleanupInterval = 10 * time.Millisecond
	limiter := newFallbackLimiter(t, config)

	for i := 0; i < 100; i++ {
		_, _ = limiter.Allow(context.Background(), fmt.Sprintf("test:cleanup:%d", i), Rate{Limit: 5, Period: time.Minute})
	}

	time.Sleep(30 * time.Millisecond)
	limiter.cleanup()

	assert.Equal(t, 0, limiter.GetStats()["fallback_limiters"])
}

func TestRateLimiterConcurrency(t *testing.T) {
	limiter := newFallbackLimiter(t, DefaultConfig())

	rateLimit := Rate{Limit: 100, Period: time.Minute}

	var mu sync.Mutex
	allowed := 0

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 10; j++ {
				result, err := limiter.Allow(context.Background(), "test:concurrent", rateLimit)
				assert.NoError(t, err)
				if result.Allowed {
					mu.Lock()
					allowed++
					mu.Unlock()
				}
			}
		}()
	}
	wg.Wait()

	assert.GreaterOrEqual(t, allowed, 100)
	assert.LessOrEqual(t, allowed, 101)
}

func TestRateLimiterCancelledContext(t *testing.T) {
	limiter := newFallbackLimiter(t, DefaultConfig())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := limiter.Allow(ctx, "test:cancelled", Rate{Limit: 5, Period: time.Minute})
	require.NoError(t, err)
	assert.True(t, result.Allowed)
}

func TestRateLimiterCloseIsIdempotent(t *testing.T) {
	limiter := NewRateLimiter(nil, DefaultConfig(), nil)
	assert.NotPanics(t, func() {
		limiter.Close()
		limiter.Close()
	})
}

func TestIPRateLimitMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	config := DefaultConfig()
	config.IPLimit = 2
	limiter := newFallbackLimiter(t, config)

	r := gin.New()
	r.POST("/api/analyze", limiter.IPRateLimitMiddleware(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	codes := make([]int, 3)
	for i := range codes {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/analyze", nil)
		req.RemoteAddr = "192.0.2.10:1234"
		r.ServeHTTP(w, req)
		codes[i] = w.Code

		assert.Equal(t, "2", w.Header().Get("X-RateLimit-Limit"))
		if w.Code == http.StatusTooManyRequests {
			assert.NotEmpty(t, w.Header().Get("Retry-After"))

			var resp types.ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, "RATE_LIMIT_EXCEEDED", resp.Code)
			assert.Equal(t, "rate_limit", resp.Category)
		}
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestRedisClientDisabled(t *testing.T) {
	client, err := NewRedisClient("", "", 0)
	require.NoError(t, err)
	assert.False(t, client.IsEnabled())
	assert.Error(t, client.HealthCheck(context.Background()))
	assert.NoError(t, client.Close())
	assert.Equal(t, false, client.GetPoolStats()["enabled"])

	var nilClient *RedisClient
	assert.False(t, nilClient.IsEnabled())
}

package cache

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/ZanzyTHEbar/resume-match-analyzer/internal/monitoring"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheSetGet(t *testing.T) {
	c := NewCache(time.Minute)
	defer c.Close()
	ctx := context.Background()

	_, found := c.Get(ctx, "missing")
	assert.False(t, found)

	c.Set(ctx, "k", []byte("v"))
	data, found := c.Get(ctx, "k")
	require.True(t, found)
	assert.Equal(t, []byte("v"), data)
	assert.Equal(t, 1, c.Size())

	c.Delete(ctx, "k")
	_, found = c.Get(ctx, "k")
	assert.False(t, found)
}

func TestCacheExpiry(t *testing.T) {
	c := NewCache(10 * time.Millisecond)
	defer c.Close()
	ctx := context.Background()

	c.Set(ctx, "k", []byte("v"))
	time.Sleep(20 * time.Millisecond)

	stats := c.Stats()
	assert.Equal(t, 1, stats["expired_items"])
	assert.Equal(t, "memory", stats["backend"])

	_, found := c.Get(ctx, "k")
	assert.False(t, found)
	assert.Equal(t, 0, c.Size())
}

func TestCacheClear(t *testing.T) {
	c := NewCache(time.Minute)
	defer c.Close()
	c.Set(context.Background(), "a", []byte("1"))
	c.Set(context.Background(), "b", []byte("2"))
	c.Clear()
	assert.Equal(t, 0, c.Size())
}

func TestKeyIsStable(t *testing.T) {
	assert.Equal(t, Key([]byte("abc")), Key([]byte("abc")))
	assert.NotEqual(t, Key([]byte("abc")), Key([]byte("abd")))
	assert.Len(t, Key(nil), 64)
}

func newCachedRouter(c *Cache, metrics *monitoring.Metrics, logger *monitoring.Logger, status int, calls *int) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(c.Middleware("/api/analyze", metrics, logger))
	r.POST("/api/analyze", func(ctx *gin.Context) {
		*calls++
		body, _ := io.ReadAll(ctx.Request.Body)
		ctx.JSON(status, gin.H{"echo": string(body), "call": *calls})
	})
	r.POST("/other", func(ctx *gin.Context) {
		*calls++
		ctx.Status(http.StatusOK)
	})
	return r
}

func post(r http.Handler, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestMiddlewareCachesSuccessfulResponses(t *testing.T) {
	c := NewCache(time.Minute)
	defer c.Close()
	metrics := monitoring.NewMetrics()
	var logs bytes.Buffer
	logger := monitoring.NewLoggerWithWriter(&logs, slog.LevelDebug)
	calls := 0
	r := newCachedRouter(c, metrics, logger, http.StatusOK, &calls)

	first := post(r, "/api/analyze", `{"resumeText":"a","jobText":"b"}`)
	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, "MISS", first.Header().Get("X-Cache"))
	assert.Contains(t, first.Body.String(), `"echo"`)

	second := post(r, "/api/analyze", `{"resumeText":"a","jobText":"b"}`)
	assert.Equal(t, http.StatusOK, second.Code)
	assert.Equal(t, "HIT", second.Header().Get("X-Cache"))
	assert.Equal(t, first.Body.String(), second.Body.String())
	assert.Equal(t, 1, calls)

	post(r, "/api/analyze", `{"resumeText":"c","jobText":"b"}`)
	assert.Equal(t, 2, calls)

	stats := metrics.GetStats()
	assert.Equal(t, int64(1), stats["cache_hits"])
	assert.Equal(t, int64(2), stats["cache_misses"])

	var hits []bool
	dec := json.NewDecoder(&logs)
	for dec.More() {
		var entry map[string]interface{}
		require.NoError(t, dec.Decode(&entry))
		if entry["msg"] != "Cache Operation" {
			continue
		}
		assert.Len(t, entry["key_hash"], 11)
		hits = append(hits, entry["hit"].(bool))
	}
	assert.Equal(t, []bool{false, true, false}, hits)
}

func TestMiddlewareSkipsErrorsAndOtherPaths(t *testing.T) {
	c := NewCache(time.Minute)
	defer c.Close()
	calls := 0
	r := newCachedRouter(c, nil, nil, http.StatusBadRequest, &calls)

	post(r, "/api/analyze", `{}`)
	post(r, "/api/analyze", `{}`)
	assert.Equal(t, 2, calls)
	assert.Equal(t, 0, c.Size())

	post(r, "/other", `{}`)
	post(r, "/other", `{}`)
	assert.Equal(t, 4, calls)
}

func TestMiddlewarePassesReadErrorsThrough(t *testing.T) {
	c := NewCache(time.Minute)
	defer c.Close()

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(ctx *gin.Context) {
		ctx.Request.Body = io.NopCloser(errReader{errors.New("boom")})
		ctx.Next()
	})
	r.Use(c.Middleware("/api/analyze", nil, nil))
	r.POST("/api/analyze", func(ctx *gin.Context) {
		_, err := io.ReadAll(ctx.Request.Body)
		if err != nil {
			ctx.Status(http.StatusRequestEntityTooLarge)
			return
		}
		ctx.Status(http.StatusOK)
	})

	w := post(r, "/api/analyze", "x")
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	assert.Equal(t, 0, c.Size())
}

func TestCacheRedisUnavailable(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer client.Close()

	c := NewCacheWithRedis(time.Minute, client, "")
	defer c.Close()
	ctx := context.Background()

	c.Set(ctx, "k", []byte("report"))
	data, found := c.Get(ctx, "k")
	require.True(t, found)
	assert.Equal(t, []byte("report"), data)

	// A third failure opens the breaker; later calls skip Redis.
	_, _ = c.Get(ctx, "other")

	stats := c.Stats()
	assert.Equal(t, "redis", stats["backend"])
	breaker := stats["redis_breaker"].(map[string]interface{})
	assert.Equal(t, "open", breaker["state"])

	data, found = c.Get(ctx, "k")
	require.True(t, found)
	assert.Equal(t, []byte("report"), data)
	assert.Equal(t, int64(1), c.Stats()["redis_breaker"].(map[string]interface{})["rejected"])
}

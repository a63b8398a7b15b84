package cache

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/ZanzyTHEbar/resume-match-analyzer/internal/monitoring"
	"github.com/ZanzyTHEbar/resume-match-analyzer/internal/resilience"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

const redisOpTimeout = 500 * time.Millisecond

// CacheItem represents a cached item with expiration
type CacheItem struct {
	Data      []byte    `json:"data"`
	ExpiresAt time.Time `json:"expires_at"`
}

// IsExpired checks if the cache item has expired
func (c *CacheItem) IsExpired() bool {
	return time.Now().After(c.ExpiresAt)
}

// Cache stores analysis responses with a TTL. When a Redis client is
// attached it is the primary store and the in-memory map is the fallback.
type Cache struct {
	mu    sync.RWMutex
	items map[string]*CacheItem
	ttl   time.Duration

	redis   *redis.Client
	prefix  string
	breaker *resilience.CircuitBreaker

	stop     chan struct{}
	stopOnce sync.Once
}

// NewCache creates a new in-memory cache with the specified TTL
func NewCache(ttl time.Duration) *Cache {
	return NewCacheWithRedis(ttl, nil, "")
}

// NewCacheWithRedis creates a cache backed by client. A nil client gives an
// in-memory cache.
func NewCacheWithRedis(ttl time.Duration, client *redis.Client, prefix string) *Cache {
	if prefix == "" {
		prefix = "cache:analyze:"
	}
	cache := &Cache{
		items:  make(map[string]*CacheItem),
		ttl:    ttl,
		redis:  client,
		prefix: prefix,
		stop:   make(chan struct{}),
	}
	if client != nil {
		cache.breaker = resilience.NewCircuitBreaker(resilience.CircuitBreakerConfig{
			FailureThreshold: 3,
			RecoveryTimeout:  30 * time.Second,
		})
	}

	go cache.cleanup()

	return cache
}

// cleanup removes expired items periodically
func (c *Cache) cleanup() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-c.stop:
			return
		case <-ticker.C:
			c.purgeExpired()
		}
	}
}

func (c *Cache) purgeExpired() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for key, item := range c.items {
		if item.IsExpired() {
			delete(c.items, key)
		}
	}
}

// Close stops the cleanup goroutine
func (c *Cache) Close() {
	c.stopOnce.Do(func() { close(c.stop) })
}

// Key creates a consistent key from the input
func Key(input []byte) string {
	sum := sha256.Sum256(input)
	return hex.EncodeToString(sum[:])
}

// Get retrieves an item from the cache
func (c *Cache) Get(ctx context.Context, key string) ([]byte, bool) {
	if c.redis != nil {
		var data []byte
		found := false
		err := c.breaker.Call(func() error {
			rctx, cancel := context.WithTimeout(ctx, redisOpTimeout)
			defer cancel()

			var err error
			data, err = c.redis.Get(rctx, c.prefix+key).Bytes()
			if errors.Is(err, redis.Nil) {
				return nil
			}
			found = err == nil
			return err
		})
		switch {
		case err == nil && found:
			return data, true
		case err == nil:
			return nil, false
		case !errors.Is(err, resilience.ErrOpen):
			slog.Warn("Redis cache read failed, using memory", "error", err)
		}
	}

	c.mu.RLock()
	item, exists := c.items[key]
	c.mu.RUnlock()

	if !exists {
		return nil, false
	}
	if item.IsExpired() {
		c.Delete(ctx, key)
		return nil, false
	}

	return item.Data, true
}

// Set stores an item in the cache
func (c *Cache) Set(ctx context.Context, key string, data []byte) {
	if c.redis != nil {
		err := c.breaker.Call(func() error {
			rctx, cancel := context.WithTimeout(ctx, redisOpTimeout)
			defer cancel()
			return c.redis.Set(rctx, c.prefix+key, data, c.ttl).Err()
		})
		if err == nil {
			return
		}
		if !errors.Is(err, resilience.ErrOpen) {
			slog.Warn("Redis cache write failed, using memory", "error", err)
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.items[key] = &CacheItem{
		Data:      data,
		ExpiresAt: time.Now().Add(c.ttl),
	}
}

// Delete removes an item from the cache
func (c *Cache) Delete(ctx context.Context, key string) {
	if c.redis != nil {
		err := c.breaker.Call(func() error {
			rctx, cancel := context.WithTimeout(ctx, redisOpTimeout)
			defer cancel()
			return c.redis.Del(rctx, c.prefix+key).Err()
		})
		if err != nil && !errors.Is(err, resilience.ErrOpen) {
			slog.Warn("Redis cache delete failed", "error", err)
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.items, key)
}

// Clear removes all in-memory items. Redis entries expire on their own.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = make(map[string]*CacheItem)
}

// Size returns the number of in-memory items
func (c *Cache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.items)
}

// Stats returns cache statistics
func (c *Cache) Stats() map[string]interface{} {
	c.mu.RLock()
	defer c.mu.RUnlock()

	totalItems := len(c.items)
	expiredItems := 0

	for _, item := range c.items {
		if item.IsExpired() {
			expiredItems++
		}
	}

	stats := map[string]interface{}{
		"backend":       c.backend(),
		"total_items":   totalItems,
		"expired_items": expiredItems,
		"active_items":  totalItems - expiredItems,
		"ttl_seconds":   c.ttl.Seconds(),
	}
	if c.breaker != nil {
		stats["redis_breaker"] = c.breaker.GetStats()
	}
	return stats
}

func (c *Cache) backend() string {
	if c.redis != nil {
		return "redis"
	}
	return "memory"
}

// Middleware caches successful JSON responses for POST requests to path,
// keyed by the request body. metrics and logger may be nil.
func (c *Cache) Middleware(path string, metrics *monitoring.Metrics, logger *monitoring.Logger) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if ctx.Request.Method != http.MethodPost || ctx.Request.URL.Path != path {
			ctx.Next()
			return
		}

		body, err := io.ReadAll(ctx.Request.Body)
		if err != nil {
			// Let the handler surface the read error, e.g. an oversized body.
			ctx.Request.Body = io.NopCloser(io.MultiReader(bytes.NewReader(body), errReader{err}))
			ctx.Next()
			return
		}

		ctx.Request.Body = io.NopCloser(bytes.NewReader(body))

		cacheKey := Key(body)

		if cachedData, found := c.Get(ctx.Request.Context(), cacheKey); found {
			if logger != nil {
				logger.CacheLogger("get", cacheKey, true)
			}
			if metrics != nil {
				metrics.IncrementCacheHit()
			}
			ctx.Header("X-Cache", "HIT")
			ctx.Data(http.StatusOK, "application/json; charset=utf-8", cachedData)
			ctx.Abort()
			return
		}

		if logger != nil {
			logger.CacheLogger("get", cacheKey, false)
		}
		if metrics != nil {
			metrics.IncrementCacheMiss()
		}
		ctx.Header("X-Cache", "MISS")

		wrapper := &responseWriter{ResponseWriter: ctx.Writer, body: &bytes.Buffer{}}

		ctx.Writer = wrapper
		ctx.Next()

		if ctx.Writer.Status() == http.StatusOK {
			c.Set(ctx.Request.Context(), cacheKey, wrapper.body.Bytes())
		}
	}
}

type errReader struct{ err error }

func (r errReader) Read([]byte) (int, error) { return 0, r.err }

// responseWriter wraps gin.ResponseWriter to capture response body
type responseWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w *responseWriter) Write(data []byte) (int, error) {
	w.body.Write(data)
	return w.ResponseWriter.Write(data)
}

func (w *responseWriter) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}

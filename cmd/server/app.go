package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/ZanzyTHEbar/resume-match-analyzer/internal/analysis"
	"github.com/ZanzyTHEbar/resume-match-analyzer/internal/cache"
	"github.com/ZanzyTHEbar/resume-match-analyzer/internal/config"
	"github.com/ZanzyTHEbar/resume-match-analyzer/internal/database"
	apperrors "github.com/ZanzyTHEbar/resume-match-analyzer/internal/errors"
	"github.com/ZanzyTHEbar/resume-match-analyzer/internal/matching"
	"github.com/ZanzyTHEbar/resume-match-analyzer/internal/middleware"
	"github.com/ZanzyTHEbar/resume-match-analyzer/internal/monitoring"
	"github.com/ZanzyTHEbar/resume-match-analyzer/internal/ratelimit"
	"github.com/ZanzyTHEbar/resume-match-analyzer/internal/security"
)

// app holds the long-lived dependencies shared by the handlers.
type app struct {
	cfg      *config.Config
	metrics  *monitoring.Metrics
	logger   *monitoring.Logger
	security *security.SecurityMiddleware
	service  *matching.Service
	redis    *ratelimit.RedisClient
	limiter  *ratelimit.RateLimiter
	cache    *cache.Cache // nil when caching is disabled
	db       *database.DB // nil when the run log is disabled
	runs     *database.RunService
	gzip     *middleware.CompressionMiddleware // nil when compression is off
}

func newApp(cfg *config.Config, logger *monitoring.Logger) (*app, error) {
	a := &app{
		cfg:     cfg,
		metrics: monitoring.NewMetrics(),
		logger:  logger,
	}

	a.security = security.NewSecurityMiddleware(security.SecurityConfig{
		MaxInputChars:  cfg.Analyzer.MaxInputChars,
		RequestTimeout: cfg.Server.RequestTimeout,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
	})

	producer, err := newProducer(cfg)
	if err != nil {
		return nil, err
	}

	redisClient, err := ratelimit.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		slog.Warn("Continuing without Redis", "error", err)
	}
	a.redis = redisClient

	rlConfig := ratelimit.DefaultConfig()
	rlConfig.IPLimit = cfg.RateLimit.IPPerMin
	a.limiter = ratelimit.NewRateLimiter(redisClient, rlConfig, a.metrics)

	if cfg.Cache.Enabled {
		if redisClient.IsEnabled() {
			a.cache = cache.NewCacheWithRedis(cfg.Cache.TTL, redisClient.GetClient(), fmt.Sprintf("cache:analyze:%s:", cfg.Mode()))
		} else {
			a.cache = cache.NewCache(cfg.Cache.TTL)
		}
	}

	if cfg.Stats.Enabled {
		db, err := database.NewDB(cfg.DataDir)
		if err != nil {
			a.Close()
			return nil, apperrors.NewConfigurationError("failed to open run log database", err)
		}
		a.db = db
		a.runs = database.NewRunService(database.NewRepository(db))
	}

	if cfg.Server.Compression {
		a.gzip = middleware.NewCompressionMiddleware(middleware.DefaultCompressionConfig())
	}

	a.service = matching.NewService(producer, cfg.Mode(), a.metrics, logger, a.runs)

	return a, nil
}

func newProducer(cfg *config.Config) (analysis.Producer, error) {
	var lexicon *analysis.Lexicon
	if cfg.Analyzer.Lexicon != "" {
		lex, err := analysis.NewLexiconStore(cfg.DataDir).Load(cfg.Analyzer.Lexicon)
		if err != nil {
			return nil, apperrors.NewConfigurationError("failed to load lexicon", err)
		}
		lexicon = lex
	}

	producer, err := analysis.NewProducer(cfg.Mode(), lexicon, time.Now().Year())
	if err != nil {
		return nil, apperrors.NewConfigurationError("failed to build analyzer", err)
	}
	return producer, nil
}

// Close releases every resource the app opened
func (a *app) Close() {
	if a.cache != nil {
		a.cache.Close()
	}
	if a.limiter != nil {
		a.limiter.Close()
	}
	if a.db != nil {
		apperrors.SafeClose(a.db, "database")
	}
	if a.redis != nil {
		apperrors.SafeClose(a.redis, "redis")
	}
}

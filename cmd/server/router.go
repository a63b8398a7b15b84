package main

import (
	"log/slog"
	"net/http/pprof"
	"time"

	_ "github.com/ZanzyTHEbar/resume-match-analyzer/docs"
	apperrors "github.com/ZanzyTHEbar/resume-match-analyzer/internal/errors"
	"github.com/ZanzyTHEbar/resume-match-analyzer/internal/frontend"
	"github.com/ZanzyTHEbar/resume-match-analyzer/internal/monitoring"
	"github.com/ZanzyTHEbar/resume-match-analyzer/internal/security"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func setupRouter(a *app) *gin.Engine {
	r := gin.New()

	// Monitoring first so every request is counted
	r.Use(monitoring.MonitoringMiddleware(a.metrics, a.logger))
	r.Use(monitoring.SecurityMonitoringMiddleware(a.logger, a.security.Config().MaxBodyBytes()))

	// Outside recovery so a panic response is still flushed
	if a.gzip != nil {
		r.Use(a.gzip.Handler())
	}

	r.Use(apperrors.ErrorHandler())
	r.Use(apperrors.RecoveryHandler())

	// Global so preflight requests, which match no route, still get answered
	if origins := a.cfg.CORS.AllowedOrigins; len(origins) > 0 {
		r.Use(cors.New(corsConfig(origins)))
	}

	r.Use(security.SecurityHeadersMiddleware(a.cfg.Security.HSTS))
	r.Use(a.security.RequestTimeout)
	r.Use(a.security.ValidateContentType)
	r.Use(a.security.LimitBody)

	// The nonce CSP is scoped to the page; swagger-ui relies on inline scripts.
	pages := r.Group("/", security.CSPMiddleware(a.cfg.Security.CSPReportURI))
	frontend.NewPageHandler(a.service, a.security).Register(pages)

	api := r.Group("/api")

	analyzeChain := []gin.HandlerFunc{a.limiter.IPRateLimitMiddleware()}
	if a.cache != nil {
		analyzeChain = append(analyzeChain, a.cache.Middleware("/api/analyze", a.metrics, a.logger))
	}
	analyzeChain = append(analyzeChain, a.security.ValidateAnalyzeRequest, a.analyze)
	api.POST("/analyze", analyzeChain...)
	api.GET("/report/sample", a.sampleReport)

	r.GET("/health", a.health)
	r.GET("/metrics", a.metricsHandler)
	r.GET("/stats", a.stats)

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	if a.cfg.Server.Profiling {
		slog.Info("Enabling performance profiling endpoints")
		r.GET("/debug/pprof/", gin.WrapF(pprof.Index))
		r.GET("/debug/pprof/cmdline", gin.WrapF(pprof.Cmdline))
		r.GET("/debug/pprof/profile", gin.WrapF(pprof.Profile))
		r.GET("/debug/pprof/symbol", gin.WrapF(pprof.Symbol))
		r.GET("/debug/pprof/trace", gin.WrapF(pprof.Trace))
	}

	return r
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders: []string{"X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset", "Retry-After", "X-Cache"},
		MaxAge:        12 * time.Hour,
	}
	for _, origin := range origins {
		if origin == "*" {
			cfg.AllowAllOrigins = true
			return cfg
		}
	}
	cfg.AllowOrigins = origins
	return cfg
}

package main

import (
	"context"
	"net/http"
	"time"

	"github.com/ZanzyTHEbar/resume-match-analyzer/internal/analysis"
	apperrors "github.com/ZanzyTHEbar/resume-match-analyzer/internal/errors"
	"github.com/ZanzyTHEbar/resume-match-analyzer/internal/security"
	"github.com/ZanzyTHEbar/resume-match-analyzer/internal/types"
	"github.com/gin-gonic/gin"
)

// version is set at build time with -ldflags "-X main.version=..."
var version = "1.0.0"

// analyze godoc
// @Summary      Analyze a resume/job pair
// @Description  Scores a resume against a job description and returns the match report
// @Tags         analysis
// @Accept       json
// @Produce      json
// @Param        request  body      types.AnalyzeRequest  true  "Resume and job description text"
// @Success      200      {object}  report.MatchReport
// @Failure      400      {object}  types.ErrorResponse
// @Failure      413      {object}  types.ErrorResponse
// @Failure      415      {object}  types.ErrorResponse
// @Failure      429      {object}  types.ErrorResponse
// @Failure      504      {object}  types.ErrorResponse
// @Router       /api/analyze [post]
func (a *app) analyze(c *gin.Context) {
	req, ok := security.AnalyzeRequestFrom(c)
	if !ok {
		_ = c.Error(apperrors.NewInternalError("analyze request missing from context", nil))
		return
	}

	ctx := c.Request.Context()
	rep := a.service.Analyze(ctx, req.ResumeText, req.JobText)

	if err := ctx.Err(); err != nil {
		_ = c.Error(apperrors.NewTimeoutError("Analysis did not finish in time", err))
		return
	}

	c.JSON(http.StatusOK, rep)
}

// sampleReport godoc
// @Summary      Sample report
// @Description  Returns the fixed sample report
// @Tags         analysis
// @Produce      json
// @Success      200  {object}  report.MatchReport
// @Router       /api/report/sample [get]
func (a *app) sampleReport(c *gin.Context) {
	c.JSON(http.StatusOK, analysis.SampleReport())
}

// health godoc
// @Summary  Health check
// @Tags     ops
// @Produce  json
// @Success  200  {object}  types.HealthResponse
// @Failure  503  {object}  types.HealthResponse
// @Router   /health [get]
func (a *app) health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	resp := types.HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
		Version:   version,
		Mode:      string(a.service.Mode()),
		Database:  "disabled",
		Redis:     "disabled",
	}
	status := http.StatusOK

	if a.db != nil {
		resp.Database = "ok"
		if err := a.db.PingContext(ctx); err != nil {
			resp.Database = "error"
			resp.Status = "degraded"
			status = http.StatusServiceUnavailable
		}
	}

	// Redis failures only degrade caching and rate limiting to memory.
	if a.redis.IsEnabled() {
		resp.Redis = "ok"
		if err := a.redis.HealthCheck(ctx); err != nil {
			resp.Redis = "error"
		}
	}

	c.JSON(status, resp)
}

// metricsHandler godoc
// @Summary  Request, cache, rate limit and analysis counters
// @Tags     ops
// @Produce  json
// @Success  200  {object}  map[string]interface{}
// @Router   /metrics [get]
func (a *app) metricsHandler(c *gin.Context) {
	stats := a.metrics.GetStats()
	stats["ratelimiter"] = a.limiter.GetStats()
	stats["redis"] = a.redis.GetPoolStats()
	if a.cache != nil {
		stats["cache"] = a.cache.Stats()
	}
	if a.db != nil {
		stats["database"] = a.db.GetPoolStats()
	}
	if a.gzip != nil {
		stats["compression"] = a.gzip.GetStats()
	}
	c.JSON(http.StatusOK, stats)
}

// stats godoc
// @Summary  Aggregate scores from the run log
// @Tags     ops
// @Produce  json
// @Success  200  {object}  database.RunSummary
// @Failure  404
// @Router   /stats [get]
func (a *app) stats(c *gin.Context) {
	if a.runs == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "run log disabled"})
		return
	}

	summary, err := a.runs.Summary(c.Request.Context(), 7*24*time.Hour, 10)
	if err != nil {
		_ = c.Error(apperrors.NewInternalError("failed to read run log", err))
		return
	}

	c.JSON(http.StatusOK, summary)
}

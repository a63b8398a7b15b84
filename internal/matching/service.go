package matching

import (
	"context"
	"time"
	"unicode/utf8"

	"github.com/ZanzyTHEbar/resume-match-analyzer/internal/analysis"
	"github.com/ZanzyTHEbar/resume-match-analyzer/internal/database"
	"github.com/ZanzyTHEbar/resume-match-analyzer/internal/monitoring"
	"github.com/ZanzyTHEbar/resume-match-analyzer/internal/report"
)

// Service runs analyses for the HTTP handlers and records each outcome in
// metrics, the structured log and, when configured, the run log.
type Service struct {
	producer analysis.Producer
	mode     analysis.Mode
	metrics  *monitoring.Metrics
	logger   *monitoring.Logger
	runs     *database.RunService
}

// NewService creates a service around producer. metrics, logger and runs
// may be nil.
func NewService(producer analysis.Producer, mode analysis.Mode, metrics *monitoring.Metrics, logger *monitoring.Logger, runs *database.RunService) *Service {
	return &Service{
		producer: producer,
		mode:     mode,
		metrics:  metrics,
		logger:   logger,
		runs:     runs,
	}
}

// Mode returns the analyzer mode the service was built with
func (s *Service) Mode() analysis.Mode {
	return s.mode
}

// Analyze produces a report for the pair of texts
func (s *Service) Analyze(ctx context.Context, resumeText, jobText string) *report.MatchReport {
	r := s.Producer(ctx).Produce(resumeText, jobText)
	return &r
}

// Producer returns an instrumented producer bound to ctx, suitable for
// state.RunAnalysis.
func (s *Service) Producer(ctx context.Context) analysis.Producer {
	return analysis.ProducerFunc(func(resumeText, jobText string) report.MatchReport {
		start := time.Now()
		r := s.producer.Produce(resumeText, jobText)
		s.record(ctx, &r, utf8.RuneCountInString(resumeText), utf8.RuneCountInString(jobText), time.Since(start))
		return r
	})
}

func (s *Service) record(ctx context.Context, r *report.MatchReport, resumeChars, jobChars int, duration time.Duration) {
	mode := string(s.mode)

	if s.metrics != nil {
		s.metrics.RecordAnalysis(mode, r.Decision, duration)
	}
	if s.logger != nil {
		s.logger.AnalysisLogger(mode, resumeChars, jobChars, r.Score, r.Decision, duration, false)
	}
	s.runs.Record(ctx, mode, r, resumeChars, jobChars, duration)
}

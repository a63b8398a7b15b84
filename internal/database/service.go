package database

import (
	"context"
	"log/slog"
	"time"

	"github.com/ZanzyTHEbar/resume-match-analyzer/internal/report"
)

// RunService records analysis outcomes. Recording failures are logged and
// never surface to the caller, so a broken run log cannot fail an analysis.
type RunService struct {
	repo    *Repository
	timeout time.Duration
}

// NewRunService creates a new run service
func NewRunService(repo *Repository) *RunService {
	return &RunService{repo: repo, timeout: 2 * time.Second}
}

// Record logs one analysis outcome
func (s *RunService) Record(ctx context.Context, mode string, r *report.MatchReport, resumeChars, jobChars int, duration time.Duration) {
	if s == nil || r == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.timeout)
	defer cancel()

	run := NewAnalysisRun(mode, r, resumeChars, jobChars, duration)
	if err := s.repo.RecordRun(ctx, run); err != nil {
		slog.Warn("Failed to record analysis run", "error", err)
	}
}

// Summary returns stats for the last window and for all time, plus the
// latest runs newest first.
func (s *RunService) Summary(ctx context.Context, window time.Duration, latest int) (*RunSummary, error) {
	recent, err := s.repo.Stats(ctx, time.Now().Add(-window))
	if err != nil {
		return nil, err
	}

	all, err := s.repo.Stats(ctx, time.Time{})
	if err != nil {
		return nil, err
	}

	runs, err := s.repo.RecentRuns(ctx, latest)
	if err != nil {
		return nil, err
	}
	if runs == nil {
		runs = []AnalysisRun{}
	}

	return &RunSummary{Recent: recent, AllTime: all, Latest: runs}, nil
}

package database

import (
	"context"
	"time"

	apperrors "github.com/ZanzyTHEbar/resume-match-analyzer/internal/errors"
)

// Repository handles database operations
type Repository struct {
	db *DB
}

// NewRepository creates a new repository
func NewRepository(db *DB) *Repository {
	return &Repository{db: db}
}

// RecordRun inserts a run
func (r *Repository) RecordRun(ctx context.Context, run *AnalysisRun) error {
	stmt, err := r.db.GetPreparedStatement("insert_run")
	if err != nil {
		return err
	}

	_, err = stmt.ExecContext(ctx,
		run.ID, run.Mode, run.Score, run.Decision,
		run.Radar.Skills, run.Radar.Experience, run.Radar.Education, run.Radar.Keyword, run.Radar.Impact,
		run.HardGaps, run.SoftGaps, run.MatchedKeywords, run.MissingKeywords,
		run.ResumeChars, run.JobChars, run.DurationMs, run.CreatedAt,
	)
	if err != nil {
		return apperrors.WrapError(err, "failed to record run")
	}

	return nil
}

// RecentRuns returns up to limit runs, newest first
func (r *Repository) RecentRuns(ctx context.Context, limit int) ([]AnalysisRun, error) {
	if limit <= 0 {
		limit = 10
	}

	stmt, err := r.db.GetPreparedStatement("recent_runs")
	if err != nil {
		return nil, err
	}

	rows, err := stmt.QueryContext(ctx, limit)
	if err != nil {
		return nil, apperrors.WrapError(err, "failed to query runs")
	}
	defer rows.Close()

	var runs []AnalysisRun
	for rows.Next() {
		var run AnalysisRun
		if err := rows.Scan(
			&run.ID, &run.Mode, &run.Score, &run.Decision,
			&run.Radar.Skills, &run.Radar.Experience, &run.Radar.Education, &run.Radar.Keyword, &run.Radar.Impact,
			&run.HardGaps, &run.SoftGaps, &run.MatchedKeywords, &run.MissingKeywords,
			&run.ResumeChars, &run.JobChars, &run.DurationMs, &run.CreatedAt,
		); err != nil {
			return nil, apperrors.WrapError(err, "failed to scan run")
		}
		runs = append(runs, run)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.WrapError(err, "failed to iterate runs")
	}

	return runs, nil
}

// Stats aggregates runs created at or after since
func (r *Repository) Stats(ctx context.Context, since time.Time) (*RunStats, error) {
	stats := &RunStats{
		Since:      since.UTC(),
		ByDecision: make(map[string]int64),
		ByMode:     make(map[string]int64),
	}

	totals, err := r.db.GetPreparedStatement("run_totals")
	if err != nil {
		return nil, err
	}
	if err := totals.QueryRowContext(ctx, stats.Since).Scan(
		&stats.Total, &stats.AverageScore, &stats.MaxScore, &stats.MinScore,
	); err != nil {
		return nil, apperrors.WrapError(err, "failed to query run totals")
	}

	if err := r.countBy(ctx, "runs_by_decision", stats.Since, stats.ByDecision); err != nil {
		return nil, err
	}
	if err := r.countBy(ctx, "runs_by_mode", stats.Since, stats.ByMode); err != nil {
		return nil, err
	}

	return stats, nil
}

func (r *Repository) countBy(ctx context.Context, name string, since time.Time, into map[string]int64) error {
	stmt, err := r.db.GetPreparedStatement(name)
	if err != nil {
		return err
	}

	rows, err := stmt.QueryContext(ctx, since)
	if err != nil {
		return apperrors.WrapError(err, "failed to query %s", name)
	}
	defer rows.Close()

	for rows.Next() {
		var key string
		var count int64
		if err := rows.Scan(&key, &count); err != nil {
			return apperrors.WrapError(err, "failed to scan %s", name)
		}
		into[key] = count
	}

	return rows.Err()
}

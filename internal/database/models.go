package database

import (
	"time"

	"github.com/ZanzyTHEbar/resume-match-analyzer/internal/report"
	"github.com/google/uuid"
)

// AnalysisRun is one logged analysis. It records the outcome and input
// sizes only, never the resume or job text.
type AnalysisRun struct {
	ID              string       `json:"id" db:"id"`
	Mode            string       `json:"mode" db:"mode"`
	Score           int          `json:"score" db:"score"`
	Decision        string       `json:"decision" db:"decision"`
	Radar           report.Radar `json:"radar"`
	HardGaps        int          `json:"hard_gaps" db:"hard_gaps"`
	SoftGaps        int          `json:"soft_gaps" db:"soft_gaps"`
	MatchedKeywords int          `json:"matched_keywords" db:"matched_keywords"`
	MissingKeywords int          `json:"missing_keywords" db:"missing_keywords"`
	ResumeChars     int          `json:"resume_chars" db:"resume_chars"`
	JobChars        int          `json:"job_chars" db:"job_chars"`
	DurationMs      int64        `json:"duration_ms" db:"duration_ms"`
	CreatedAt       time.Time    `json:"created_at" db:"created_at"`
}

// RunStats summarizes logged runs since a point in time
type RunStats struct {
	Since        time.Time        `json:"since"`
	Total        int              `json:"total"`
	AverageScore float64          `json:"average_score"`
	MaxScore     int              `json:"max_score"`
	MinScore     int              `json:"min_score"`
	ByDecision   map[string]int64 `json:"by_decision"`
	ByMode       map[string]int64 `json:"by_mode"`
}

// RunSummary is the body served by the stats endpoint
type RunSummary struct {
	Recent  *RunStats     `json:"recent"`
	AllTime *RunStats     `json:"all_time"`
	Latest  []AnalysisRun `json:"latest"`
}

// NewAnalysisRun creates a run entry with a generated ID
func NewAnalysisRun(mode string, r *report.MatchReport, resumeChars, jobChars int, duration time.Duration) *AnalysisRun {
	run := &AnalysisRun{
		ID:              uuid.New().String(),
		Mode:            mode,
		Score:           r.Score,
		Decision:        r.Decision,
		Radar:           r.Radar,
		MatchedKeywords: len(r.Keywords.Matched),
		MissingKeywords: len(r.Keywords.Missing),
		ResumeChars:     resumeChars,
		JobChars:        jobChars,
		DurationMs:      duration.Milliseconds(),
		CreatedAt:       time.Now().UTC(),
	}

	for _, q := range r.MissingQualifications {
		if q.Severity == report.SeverityHard {
			run.HardGaps++
		} else {
			run.SoftGaps++
		}
	}

	return run
}

package database

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ZanzyTHEbar/resume-match-analyzer/internal/report"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepo(t *testing.T) (*DB, *Repository) {
	t.Helper()
	db, err := NewDB(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db, NewRepository(db)
}

func sampleReport(score int, decision string) *report.MatchReport {
	return &report.MatchReport{
		Score:    score,
		Decision: decision,
		Radar:    report.Radar{Skills: 20, Experience: 20, Education: 10, Keyword: 10, Impact: score - 60},
		MissingQualifications: []report.Qualification{
			{Text: "Kubernetes", Severity: report.SeverityHard, Penalty: 25},
			{Text: "SQL", Severity: report.SeveritySoft, Penalty: 4},
			{Text: "AWS", Severity: report.SeveritySoft, Penalty: 4},
		},
		Keywords: report.Keywords{Matched: []string{"Go"}, Missing: []string{"SQL", "AWS"}},
	}
}

func TestNewDBCreatesFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested")
	db, err := NewDB(dir)
	require.NoError(t, err)
	defer db.Close()

	_, err = os.Stat(filepath.Join(dir, DBFileName))
	assert.NoError(t, err)

	stats := db.GetPoolStats()
	assert.Equal(t, 4, stats["max_open_connections"])
}

func TestNewDBWrapsDirectoryError(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o600))

	_, err := NewDB(filepath.Join(blocker, "data"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create data directory: ")
	var pathErr *os.PathError
	assert.ErrorAs(t, err, &pathErr)
}

func TestGetPreparedStatementUnknown(t *testing.T) {
	db, _ := newTestRepo(t)
	_, err := db.GetPreparedStatement("nope")
	assert.Error(t, err)
}

func TestNewAnalysisRunCountsGaps(t *testing.T) {
	run := NewAnalysisRun("keyword", sampleReport(72, "Strong Fit"), 120, 340, 3*time.Millisecond)

	assert.NotEmpty(t, run.ID)
	assert.Equal(t, 1, run.HardGaps)
	assert.Equal(t, 2, run.SoftGaps)
	assert.Equal(t, 1, run.MatchedKeywords)
	assert.Equal(t, 2, run.MissingKeywords)
	assert.Equal(t, int64(3), run.DurationMs)
}

func TestRecordAndRecentRuns(t *testing.T) {
	_, repo := newTestRepo(t)
	ctx := context.Background()

	first := NewAnalysisRun("keyword", sampleReport(72, "Strong Fit"), 100, 200, time.Millisecond)
	first.CreatedAt = time.Now().UTC().Add(-time.Minute)
	second := NewAnalysisRun("fixture", sampleReport(78, "Strong Fit"), 5, 6, 0)

	require.NoError(t, repo.RecordRun(ctx, first))
	require.NoError(t, repo.RecordRun(ctx, second))

	runs, err := repo.RecentRuns(ctx, 10)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, second.ID, runs[0].ID)
	assert.Equal(t, first.ID, runs[1].ID)
	assert.Equal(t, first.Radar, runs[1].Radar)
	assert.Equal(t, 100, runs[1].ResumeChars)

	runs, err = repo.RecentRuns(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, runs, 1)
}

func TestStats(t *testing.T) {
	_, repo := newTestRepo(t)
	ctx := context.Background()

	old := NewAnalysisRun("keyword", sampleReport(62, "Moderate"), 1, 1, 0)
	old.CreatedAt = time.Now().UTC().Add(-30 * 24 * time.Hour)
	require.NoError(t, repo.RecordRun(ctx, old))
	require.NoError(t, repo.RecordRun(ctx, NewAnalysisRun("keyword", sampleReport(72, "Strong Fit"), 1, 1, 0)))
	require.NoError(t, repo.RecordRun(ctx, NewAnalysisRun("fixture", sampleReport(78, "Strong Fit"), 1, 1, 0)))

	all, err := repo.Stats(ctx, time.Time{})
	require.NoError(t, err)
	assert.Equal(t, 3, all.Total)
	assert.InDelta(t, 70.67, all.AverageScore, 0.01)
	assert.Equal(t, 78, all.MaxScore)
	assert.Equal(t, 62, all.MinScore)
	assert.Equal(t, map[string]int64{"Moderate": 1, "Strong Fit": 2}, all.ByDecision)
	assert.Equal(t, map[string]int64{"keyword": 2, "fixture": 1}, all.ByMode)

	recent, err := repo.Stats(ctx, time.Now().Add(-24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 2, recent.Total)
	assert.Equal(t, map[string]int64{"Strong Fit": 2}, recent.ByDecision)
}

func TestStatsEmpty(t *testing.T) {
	_, repo := newTestRepo(t)
	stats, err := repo.Stats(context.Background(), time.Time{})
	require.NoError(t, err)
	assert.Equal(t, 0, stats.Total)
	assert.Zero(t, stats.AverageScore)
	assert.Empty(t, stats.ByDecision)
}

func TestRunService(t *testing.T) {
	_, repo := newTestRepo(t)
	svc := NewRunService(repo)
	ctx := context.Background()

	svc.Record(ctx, "keyword", sampleReport(72, "Strong Fit"), 10, 20, time.Millisecond)
	svc.Record(ctx, "keyword", nil, 10, 20, 0)

	svc.Record(ctx, "semantic", sampleReport(64, "Moderate Fit"), 30, 40, time.Millisecond)

	summary, err := svc.Summary(ctx, 7*24*time.Hour, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Recent.Total)
	assert.Equal(t, 2, summary.AllTime.Total)
	require.Len(t, summary.Latest, 1)
	assert.Equal(t, 2, summary.Latest[0].SoftGaps)
	assert.NotEmpty(t, summary.Latest[0].ID)

	var nilSvc *RunService
	assert.NotPanics(t, func() { nilSvc.Record(ctx, "keyword", sampleReport(72, "Strong Fit"), 1, 1, 0) })
}

func TestRunServiceSummaryEmpty(t *testing.T) {
	_, repo := newTestRepo(t)

	summary, err := NewRunService(repo).Summary(context.Background(), time.Hour, 5)
	require.NoError(t, err)
	assert.Equal(t, 0, summary.AllTime.Total)
	assert.NotNil(t, summary.Latest)
	assert.Empty(t, summary.Latest)
}

func TestRunServiceSurvivesClosedDB(t *testing.T) {
	db, repo := newTestRepo(t)
	svc := NewRunService(repo)
	require.NoError(t, db.Close())

	assert.NotPanics(t, func() {
		svc.Record(context.Background(), "keyword", sampleReport(72, "Strong Fit"), 1, 1, 0)
	})
}

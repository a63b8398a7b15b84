package database

import (
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	apperrors "github.com/ZanzyTHEbar/resume-match-analyzer/internal/errors"
	_ "github.com/mattn/go-sqlite3"
)

// DBFileName is the sqlite file created under the data directory.
const DBFileName = "match_analyzer.db"

// DB represents the database connection with pooling
type DB struct {
	*sql.DB
	pool     *ConnectionPool
	prepared map[string]*sql.Stmt
	mutex    sync.RWMutex
}

// ConnectionPool manages database connection pooling
type ConnectionPool struct {
	db           *sql.DB
	maxOpenConns int
	maxIdleConns int
	maxLifetime  time.Duration
}

// NewConnectionPool creates a new database connection pool
func NewConnectionPool(db *sql.DB, maxOpen, maxIdle int, maxLifetime time.Duration) *ConnectionPool {
	db.SetMaxOpenConns(maxOpen)
	db.SetMaxIdleConns(maxIdle)
	db.SetConnMaxLifetime(maxLifetime)

	return &ConnectionPool{
		db:           db,
		maxOpenConns: maxOpen,
		maxIdleConns: maxIdle,
		maxLifetime:  maxLifetime,
	}
}

// GetStats returns connection pool statistics
func (cp *ConnectionPool) GetStats() map[string]interface{} {
	stats := cp.db.Stats()

	return map[string]interface{}{
		"open_connections":     stats.OpenConnections,
		"in_use":               stats.InUse,
		"idle":                 stats.Idle,
		"max_open_connections": cp.maxOpenConns,
		"max_idle_connections": cp.maxIdleConns,
		"max_lifetime_seconds": cp.maxLifetime.Seconds(),
		"wait_count":           stats.WaitCount,
		"wait_duration_ms":     stats.WaitDuration.Milliseconds(),
	}
}

// NewDB opens (creating if needed) the run log database in dataDir
func NewDB(dataDir string) (*DB, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, apperrors.WrapError(err, "failed to create data directory")
	}

	dbPath := filepath.Join(dataDir, DBFileName)
	connStr := fmt.Sprintf("file:%s?_journal_mode=WAL&_synchronous=NORMAL&_busy_timeout=5000", dbPath)

	db, err := sql.Open("sqlite3", connStr)
	if err != nil {
		return nil, apperrors.WrapError(err, "failed to open database")
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, apperrors.WrapError(err, "failed to ping database")
	}

	// sqlite serializes writers; a small pool avoids SQLITE_BUSY churn.
	pool := NewConnectionPool(db, 4, 2, 5*time.Minute)

	database := &DB{
		DB:       db,
		pool:     pool,
		prepared: make(map[string]*sql.Stmt),
	}

	if err := database.migrate(); err != nil {
		_ = db.Close()
		return nil, apperrors.WrapError(err, "failed to run migrations")
	}

	if err := database.initPreparedStatements(); err != nil {
		_ = database.Close()
		return nil, apperrors.WrapError(err, "failed to initialize prepared statements")
	}

	slog.Info("Database initialized",
		"path", dbPath,
		"max_open_conns", pool.maxOpenConns,
		"max_idle_conns", pool.maxIdleConns)

	return database, nil
}

// migrate creates the necessary tables. Submitted text is never stored.
func (db *DB) migrate() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS analysis_runs (
			id TEXT PRIMARY KEY,
			mode TEXT NOT NULL,
			score INTEGER NOT NULL,
			decision TEXT NOT NULL,
			skills INTEGER NOT NULL,
			experience INTEGER NOT NULL,
			education INTEGER NOT NULL,
			keyword INTEGER NOT NULL,
			impact INTEGER NOT NULL,
			hard_gaps INTEGER NOT NULL,
			soft_gaps INTEGER NOT NULL,
			matched_keywords INTEGER NOT NULL,
			missing_keywords INTEGER NOT NULL,
			resume_chars INTEGER NOT NULL,
			job_chars INTEGER NOT NULL,
			duration_ms INTEGER NOT NULL,
			created_at DATETIME NOT NULL
		)`,

		`CREATE INDEX IF NOT EXISTS idx_analysis_runs_created ON analysis_runs(created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_analysis_runs_decision ON analysis_runs(decision)`,
	}

	for _, query := range queries {
		if _, err := db.Exec(query); err != nil {
			return apperrors.WrapError(err, "failed to execute migration")
		}
	}

	return nil
}

// initPreparedStatements initializes frequently used prepared statements
func (db *DB) initPreparedStatements() error {
	statements := map[string]string{
		"insert_run": `INSERT INTO analysis_runs (
			id, mode, score, decision, skills, experience, education, keyword, impact,
			hard_gaps, soft_gaps, matched_keywords, missing_keywords,
			resume_chars, job_chars, duration_ms, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,

		"recent_runs": `SELECT id, mode, score, decision, skills, experience, education, keyword, impact,
			hard_gaps, soft_gaps, matched_keywords, missing_keywords,
			resume_chars, job_chars, duration_ms, created_at
			FROM analysis_runs ORDER BY created_at DESC LIMIT ?`,

		"run_totals": `SELECT COUNT(*), COALESCE(AVG(score), 0), COALESCE(MAX(score), 0), COALESCE(MIN(score), 0)
			FROM analysis_runs WHERE created_at >= ?`,

		"runs_by_decision": `SELECT decision, COUNT(*) FROM analysis_runs
			WHERE created_at >= ? GROUP BY decision`,

		"runs_by_mode": `SELECT mode, COUNT(*) FROM analysis_runs
			WHERE created_at >= ? GROUP BY mode`,
	}

	db.mutex.Lock()
	defer db.mutex.Unlock()

	for name, query := range statements {
		stmt, err := db.Prepare(query)
		if err != nil {
			return apperrors.WrapError(err, "failed to prepare statement %s", name)
		}
		db.prepared[name] = stmt

		slog.Debug("Prepared statement initialized", "name", name)
	}

	return nil
}

// GetPreparedStatement retrieves a prepared statement
func (db *DB) GetPreparedStatement(name string) (*sql.Stmt, error) {
	db.mutex.RLock()
	defer db.mutex.RUnlock()

	stmt, exists := db.prepared[name]
	if !exists {
		return nil, fmt.Errorf("prepared statement %s not found", name)
	}

	return stmt, nil
}

// GetPoolStats returns database connection pool statistics
func (db *DB) GetPoolStats() map[string]interface{} {
	return db.pool.GetStats()
}

// Close closes the database connection and prepared statements
func (db *DB) Close() error {
	db.mutex.Lock()
	defer db.mutex.Unlock()

	for name, stmt := range db.prepared {
		if err := stmt.Close(); err != nil {
			slog.Warn("Failed to close prepared statement", "name", name, "error", err)
		}
	}

	db.prepared = make(map[string]*sql.Stmt)

	return db.DB.Close()
}

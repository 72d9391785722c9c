package iocache

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/gitpulse/gitpulse/internal/contract"
	"github.com/gitpulse/gitpulse/schema"
)

// Table names for run history tracking.
const (
	runsTable     = "gitpulse_runs"
	repoRunsTable = "gitpulse_repo_runs"
)

// HistoryStoreImpl implements the HistoryStore interface.
type HistoryStoreImpl struct {
	db         *sql.DB
	backend    schema.DatabaseBackend
	driverName string
}

var _ contract.HistoryStore = &HistoryStoreImpl{} // Compile-time check

// NewHistoryStore creates a new HistoryStore with the specified backend.
func NewHistoryStore(backend schema.DatabaseBackend, connStr string) (contract.HistoryStore, error) {
	var db *sql.DB
	var err error
	var driverName string

	switch backend {
	case schema.SQLiteBackend:
		driverName = "sqlite"
		dbPath := connStr
		if dbPath == "" {
			dbPath = GetHistoryDBFilePath()
		}
		db, err = sql.Open(driverName, dbPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open SQLite database at %q: %w. Check that the directory is writable", dbPath, err)
		}
		// Limit SQLite to a single open connection to avoid "database is locked" errors
		db.SetMaxOpenConns(1)

	case schema.MySQLBackend:
		driverName = "mysql"
		db, err = sql.Open(driverName, connStr)
		if err != nil {
			return nil, fmt.Errorf("failed to open MySQL database: %w. Check connection string format: user:password@tcp(host:port)/dbname", err)
		}

	case schema.PostgreSQLBackend:
		driverName = "pgx"
		db, err = sql.Open(driverName, connStr)
		if err != nil {
			return nil, fmt.Errorf("failed to open PostgreSQL database: %w. Check connection string format: host=localhost port=5432 user=postgres dbname=mydb", err)
		}

	case schema.NoneBackend:
		// Return a no-op store for disabled tracking
		return &HistoryStoreImpl{
			db:         nil,
			backend:    backend,
			driverName: "",
		}, nil

	default:
		return nil, fmt.Errorf("unsupported backend: %s", backend)
	}

	// Ping to verify connection
	if err := db.Ping(); err != nil {
		_ = db.Close()
		var connDetail string
		switch backend {
		case schema.MySQLBackend:
			connDetail = "Check that MySQL is running and the connection string is correct. Ensure user/password are valid."
		case schema.PostgreSQLBackend:
			connDetail = "Check that PostgreSQL is running and the connection string is correct. Ensure user/password are valid."
		default:
			connDetail = "Verify the database server is running and accessible."
		}
		return nil, fmt.Errorf("failed to connect to %s database: %w. %s", backend, err, connDetail)
	}

	// Create the table schemas
	if err := createHistoryTables(db, backend); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create history tables: %w", err)
	}

	return &HistoryStoreImpl{
		db:         db,
		backend:    backend,
		driverName: driverName,
	}, nil
}

// createHistoryTables creates the run history tracking tables.
func createHistoryTables(db *sql.DB, backend schema.DatabaseBackend) error {
	tables := []struct {
		name  string
		query string
	}{
		{runsTable, getCreateRunsQuery(backend)},
		{repoRunsTable, getCreateRepoRunsQuery(backend)},
	}

	for _, table := range tables {
		if _, err := db.Exec(table.query); err != nil {
			return fmt.Errorf("failed to create table %s: %w", table.name, err)
		}
	}

	return nil
}

// getCreateRunsQuery returns the CREATE TABLE query for gitpulse_runs.
func getCreateRunsQuery(backend schema.DatabaseBackend) string {
	quotedTableName := quoteTableName(runsTable, backend)

	switch backend {
	case schema.MySQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id BIGINT AUTO_INCREMENT PRIMARY KEY,
				start_time DATETIME(6) NOT NULL,
				end_time DATETIME(6),
				run_duration_ms INT,
				total_repos INT,
				total_commits INT,
				lines_added BIGINT,
				lines_removed BIGINT,
				config_params TEXT
			);
		`, quotedTableName)

	case schema.PostgreSQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id BIGSERIAL PRIMARY KEY,
				start_time TIMESTAMPTZ NOT NULL,
				end_time TIMESTAMPTZ,
				run_duration_ms INT,
				total_repos INT,
				total_commits INT,
				lines_added BIGINT,
				lines_removed BIGINT,
				config_params TEXT
			);
		`, quotedTableName)

	default: // SQLite
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id INTEGER PRIMARY KEY AUTOINCREMENT,
				start_time TEXT NOT NULL,
				end_time TEXT,
				run_duration_ms INTEGER,
				total_repos INTEGER,
				total_commits INTEGER,
				lines_added INTEGER,
				lines_removed INTEGER,
				config_params TEXT
			);
		`, quotedTableName)
	}
}

// getCreateRepoRunsQuery returns the CREATE TABLE query for gitpulse_repo_runs.
func getCreateRepoRunsQuery(backend schema.DatabaseBackend) string {
	quotedTableName := quoteTableName(repoRunsTable, backend)

	switch backend {
	case schema.MySQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id BIGINT NOT NULL,
				repo_name VARCHAR(255) NOT NULL,
				repo_path VARCHAR(512) NOT NULL,
				analysis_time DATETIME(6) NOT NULL,
				total_commits INT NOT NULL,
				lines_added BIGINT NOT NULL,
				lines_removed BIGINT NOT NULL,
				files_changed INT NOT NULL,
				last_commit_hash VARCHAR(64),
				first_commit_date DATETIME(6),
				last_commit_date DATETIME(6),
				PRIMARY KEY (run_id, repo_path)
			);
		`, quotedTableName)

	case schema.PostgreSQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id BIGINT NOT NULL,
				repo_name TEXT NOT NULL,
				repo_path TEXT NOT NULL,
				analysis_time TIMESTAMPTZ NOT NULL,
				total_commits INT NOT NULL,
				lines_added BIGINT NOT NULL,
				lines_removed BIGINT NOT NULL,
				files_changed INT NOT NULL,
				last_commit_hash TEXT,
				first_commit_date TIMESTAMPTZ,
				last_commit_date TIMESTAMPTZ,
				PRIMARY KEY (run_id, repo_path)
			);
		`, quotedTableName)

	default: // SQLite
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id INTEGER NOT NULL,
				repo_name TEXT NOT NULL,
				repo_path TEXT NOT NULL,
				analysis_time TEXT NOT NULL,
				total_commits INTEGER NOT NULL,
				lines_added INTEGER NOT NULL,
				lines_removed INTEGER NOT NULL,
				files_changed INTEGER NOT NULL,
				last_commit_hash TEXT,
				first_commit_date TEXT,
				last_commit_date TEXT,
				PRIMARY KEY (run_id, repo_path)
			);
		`, quotedTableName)
	}
}

// BeginRun creates a new run row and returns its unique ID.
func (hs *HistoryStoreImpl) BeginRun(startTime time.Time, configParams map[string]any) (int64, error) {
	// Skip for NoneBackend
	if hs.backend == schema.NoneBackend || hs.db == nil {
		return 0, nil
	}

	// Serialize config params to JSON
	configJSON, err := json.Marshal(configParams)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal config params: %w", err)
	}

	quotedTableName := quoteTableName(runsTable, hs.backend)

	var runID int64
	switch hs.backend {
	case schema.PostgreSQLBackend:
		query := fmt.Sprintf(`INSERT INTO %s (start_time, config_params) VALUES ($1, $2) RETURNING run_id`, quotedTableName)
		err = hs.db.QueryRow(query, startTime, string(configJSON)).Scan(&runID)
	default: // SQLite and MySQL
		query := fmt.Sprintf(`INSERT INTO %s (start_time, config_params) VALUES (?, ?)`, quotedTableName)
		var result sql.Result
		result, err = hs.db.Exec(query, formatTime(startTime, hs.backend), string(configJSON))
		if err != nil {
			return 0, err
		}
		runID, err = result.LastInsertId()
	}

	if err != nil {
		return 0, fmt.Errorf("failed to insert run: %w", err)
	}

	return runID, nil
}

// EndRun updates the run with completion data.
func (hs *HistoryStoreImpl) EndRun(runID int64, endTime time.Time, totals schema.TotalStats) error {
	// Skip for NoneBackend
	if hs.backend == schema.NoneBackend || hs.db == nil {
		return nil
	}

	// First, get the start_time to calculate duration
	quotedTableName := quoteTableName(runsTable, hs.backend)
	var startTime time.Time

	var query string
	switch hs.backend {
	case schema.PostgreSQLBackend:
		query = fmt.Sprintf(`SELECT start_time FROM %s WHERE run_id = $1`, quotedTableName)
	default: // SQLite and MySQL
		query = fmt.Sprintf(`SELECT start_time FROM %s WHERE run_id = ?`, quotedTableName)
	}

	row := hs.db.QueryRow(query, runID)

	// Handle different time storage formats per backend
	switch hs.backend {
	case schema.SQLiteBackend:
		var startTimeStr string
		if err := row.Scan(&startTimeStr); err != nil {
			return fmt.Errorf("failed to get start_time for run %d: %w", runID, err)
		}
		var err error
		startTime, err = time.Parse(time.RFC3339Nano, startTimeStr)
		if err != nil {
			return fmt.Errorf("failed to parse start_time: %w", err)
		}
	default: // MySQL and PostgreSQL store as native datetime
		if err := row.Scan(&startTime); err != nil {
			return fmt.Errorf("failed to get start_time for run %d: %w", runID, err)
		}
	}

	// Calculate duration in milliseconds
	durationMs := endTime.Sub(startTime).Milliseconds()

	// Update the run with completion data
	var updateQuery string
	var args []any

	switch hs.backend {
	case schema.PostgreSQLBackend:
		updateQuery = fmt.Sprintf(`UPDATE %s SET end_time = $1, run_duration_ms = $2, total_repos = $3, total_commits = $4, lines_added = $5, lines_removed = $6 WHERE run_id = $7`, quotedTableName)
		args = []any{endTime, durationMs, totals.TotalRepos, totals.TotalCommits, totals.TotalLinesAdded, totals.TotalLinesRemoved, runID}
	default: // SQLite and MySQL
		updateQuery = fmt.Sprintf(`UPDATE %s SET end_time = ?, run_duration_ms = ?, total_repos = ?, total_commits = ?, lines_added = ?, lines_removed = ? WHERE run_id = ?`, quotedTableName)
		args = []any{formatTime(endTime, hs.backend), durationMs, totals.TotalRepos, totals.TotalCommits, totals.TotalLinesAdded, totals.TotalLinesRemoved, runID}
	}

	_, err := hs.db.Exec(updateQuery, args...)
	if err != nil {
		return fmt.Errorf("failed to update run: %w", err)
	}

	return nil
}

// RecordRepo stores per-repo results for a run.
func (hs *HistoryStoreImpl) RecordRepo(runID int64, repo *schema.RepoStats) error {
	// Skip for NoneBackend
	if hs.backend == schema.NoneBackend || hs.db == nil {
		return nil
	}

	quotedTableName := quoteTableName(repoRunsTable, hs.backend)

	var query string
	switch hs.backend {
	case schema.PostgreSQLBackend:
		query = fmt.Sprintf(`
			INSERT INTO %s (run_id, repo_name, repo_path, analysis_time, total_commits,
			                lines_added, lines_removed, files_changed, last_commit_hash,
			                first_commit_date, last_commit_date)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		`, quotedTableName)
	default: // SQLite and MySQL
		query = fmt.Sprintf(`
			INSERT INTO %s (run_id, repo_name, repo_path, analysis_time, total_commits,
			                lines_added, lines_removed, files_changed, last_commit_hash,
			                first_commit_date, last_commit_date)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, quotedTableName)
	}

	args := []any{
		runID, repo.Name, repo.Path, formatTime(time.Now(), hs.backend), repo.TotalCommits,
		repo.TotalLinesAdded, repo.TotalLinesRemoved, repo.TotalFilesChanged, repo.LastCommitHash,
		formatTimePtr(repo.FirstCommitDate, hs.backend), formatTimePtr(repo.LastCommitDate, hs.backend),
	}

	_, err := hs.db.Exec(query, args...)
	if err != nil {
		return fmt.Errorf("failed to insert repo run: %w", err)
	}

	return nil
}

// ListRuns returns recorded runs, newest first, at most limit rows.
func (hs *HistoryStoreImpl) ListRuns(limit int) ([]schema.RunRecord, error) {
	// Skip for NoneBackend
	if hs.backend == schema.NoneBackend || hs.db == nil {
		return nil, nil
	}

	quotedTableName := quoteTableName(runsTable, hs.backend)
	query := fmt.Sprintf("SELECT run_id, start_time, end_time, run_duration_ms, total_repos, total_commits, lines_added, lines_removed, config_params FROM %s ORDER BY run_id DESC", quotedTableName)
	if limit > 0 {
		query = fmt.Sprintf("%s LIMIT %d", query, limit)
	}

	rows, err := hs.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []schema.RunRecord

	for rows.Next() {
		var record schema.RunRecord
		var totalRepos, totalCommits sql.NullInt32
		var linesAdded, linesRemoved sql.NullInt64

		switch hs.backend {
		case schema.SQLiteBackend:
			var startTimeStr string
			var endTimeStr *string
			if err := rows.Scan(&record.RunID, &startTimeStr, &endTimeStr, &record.RunDurationMs,
				&totalRepos, &totalCommits, &linesAdded, &linesRemoved, &record.ConfigParams); err != nil {
				return nil, fmt.Errorf("failed to scan run: %w", err)
			}
			startTime, err := time.Parse(time.RFC3339Nano, startTimeStr)
			if err != nil {
				return nil, fmt.Errorf("failed to parse start_time: %w", err)
			}
			record.StartTime = startTime
			if endTimeStr != nil {
				endTime, err := time.Parse(time.RFC3339Nano, *endTimeStr)
				if err != nil {
					return nil, fmt.Errorf("failed to parse end_time: %w", err)
				}
				record.EndTime = &endTime
			}
		default: // MySQL and PostgreSQL
			if err := rows.Scan(&record.RunID, &record.StartTime, &record.EndTime, &record.RunDurationMs,
				&totalRepos, &totalCommits, &linesAdded, &linesRemoved, &record.ConfigParams); err != nil {
				return nil, fmt.Errorf("failed to scan run: %w", err)
			}
		}

		record.TotalRepos = totalRepos.Int32
		record.TotalCommits = totalCommits.Int32
		record.LinesAdded = linesAdded.Int64
		record.LinesRemoved = linesRemoved.Int64

		results = append(results, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating runs: %w", err)
	}

	return results, nil
}

// ListRepoRuns returns per-repo rows, newest first, at most limit rows.
func (hs *HistoryStoreImpl) ListRepoRuns(limit int) ([]schema.RepoRunRecord, error) {
	// Skip for NoneBackend
	if hs.backend == schema.NoneBackend || hs.db == nil {
		return nil, nil
	}

	quotedTableName := quoteTableName(repoRunsTable, hs.backend)
	query := fmt.Sprintf(`SELECT run_id, repo_name, repo_path, analysis_time, total_commits,
    lines_added, lines_removed, files_changed, last_commit_hash, first_commit_date, last_commit_date
    FROM %s ORDER BY run_id DESC, repo_path`, quotedTableName)
	if limit > 0 {
		query = fmt.Sprintf("%s LIMIT %d", query, limit)
	}

	rows, err := hs.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query repo runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []schema.RepoRunRecord

	for rows.Next() {
		var record schema.RepoRunRecord
		var lastCommitHash sql.NullString

		switch hs.backend {
		case schema.SQLiteBackend:
			var analysisTimeStr string
			var firstDateStr, lastDateStr *string
			if err := rows.Scan(&record.RunID, &record.RepoName, &record.RepoPath, &analysisTimeStr,
				&record.TotalCommits, &record.LinesAdded, &record.LinesRemoved, &record.FilesChanged,
				&lastCommitHash, &firstDateStr, &lastDateStr); err != nil {
				return nil, fmt.Errorf("failed to scan repo run: %w", err)
			}
			analysisTime, err := time.Parse(time.RFC3339Nano, analysisTimeStr)
			if err != nil {
				return nil, fmt.Errorf("failed to parse analysis_time: %w", err)
			}
			record.AnalysisTime = analysisTime
			if firstDateStr != nil {
				firstDate, err := time.Parse(time.RFC3339Nano, *firstDateStr)
				if err != nil {
					return nil, fmt.Errorf("failed to parse first_commit_date: %w", err)
				}
				record.FirstCommitDate = &firstDate
			}
			if lastDateStr != nil {
				lastDate, err := time.Parse(time.RFC3339Nano, *lastDateStr)
				if err != nil {
					return nil, fmt.Errorf("failed to parse last_commit_date: %w", err)
				}
				record.LastCommitDate = &lastDate
			}
		default: // MySQL and PostgreSQL
			if err := rows.Scan(&record.RunID, &record.RepoName, &record.RepoPath, &record.AnalysisTime,
				&record.TotalCommits, &record.LinesAdded, &record.LinesRemoved, &record.FilesChanged,
				&lastCommitHash, &record.FirstCommitDate, &record.LastCommitDate); err != nil {
				return nil, fmt.Errorf("failed to scan repo run: %w", err)
			}
		}

		record.LastCommitHash = lastCommitHash.String

		results = append(results, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating repo runs: %w", err)
	}

	return results, nil
}

// Clear removes all recorded runs.
func (hs *HistoryStoreImpl) Clear() error {
	// Skip for NoneBackend
	if hs.backend == schema.NoneBackend || hs.db == nil {
		return nil
	}

	for _, table := range []string{repoRunsTable, runsTable} {
		query := fmt.Sprintf("DELETE FROM %s", quoteTableName(table, hs.backend))
		if _, err := hs.db.Exec(query); err != nil {
			return fmt.Errorf("failed to clear table %s: %w", table, err)
		}
	}
	return nil
}

// Close closes the underlying connection.
func (hs *HistoryStoreImpl) Close() error {
	if hs.db != nil {
		return hs.db.Close()
	}
	return nil
}

// GetStatus returns status information about the history store.
func (hs *HistoryStoreImpl) GetStatus() (schema.HistoryStatus, error) {
	status := schema.HistoryStatus{
		Backend:   string(hs.backend),
		Connected: hs.db != nil,
	}

	if hs.backend == schema.NoneBackend || hs.db == nil {
		return status, nil
	}

	// Get total runs
	runsQuery := fmt.Sprintf("SELECT COUNT(*) FROM %s", quoteTableName(runsTable, hs.backend))
	row := hs.db.QueryRow(runsQuery)
	if err := row.Scan(&status.TotalRuns); err != nil {
		return status, fmt.Errorf("failed to get total runs: %w", err)
	}

	if status.TotalRuns == 0 {
		return status, nil
	}

	// Get last run info
	lastRunQuery := fmt.Sprintf("SELECT run_id, start_time FROM %s ORDER BY run_id DESC LIMIT 1", quoteTableName(runsTable, hs.backend))
	row = hs.db.QueryRow(lastRunQuery)

	switch hs.backend {
	case schema.SQLiteBackend:
		var lastRunID int64
		var lastRunTimeStr string
		if err := row.Scan(&lastRunID, &lastRunTimeStr); err != nil {
			return status, fmt.Errorf("failed to get last run info: %w", err)
		}
		status.LastRunID = lastRunID
		lastRunTime, err := time.Parse(time.RFC3339Nano, lastRunTimeStr)
		if err != nil {
			return status, fmt.Errorf("failed to parse last run time: %w", err)
		}
		status.LastRunTime = lastRunTime
	default: // MySQL and PostgreSQL store as native datetime
		if err := row.Scan(&status.LastRunID, &status.LastRunTime); err != nil {
			return status, fmt.Errorf("failed to get last run info: %w", err)
		}
	}

	// Get oldest run time
	oldestRunQuery := fmt.Sprintf("SELECT start_time FROM %s ORDER BY run_id ASC LIMIT 1", quoteTableName(runsTable, hs.backend))
	row = hs.db.QueryRow(oldestRunQuery)

	switch hs.backend {
	case schema.SQLiteBackend:
		var oldestRunTimeStr string
		if err := row.Scan(&oldestRunTimeStr); err != nil {
			return status, fmt.Errorf("failed to get oldest run time: %w", err)
		}
		oldestRunTime, err := time.Parse(time.RFC3339Nano, oldestRunTimeStr)
		if err != nil {
			return status, fmt.Errorf("failed to parse oldest run time: %w", err)
		}
		status.OldestRunTime = oldestRunTime
	default: // MySQL and PostgreSQL store as native datetime
		if err := row.Scan(&status.OldestRunTime); err != nil {
			return status, fmt.Errorf("failed to get oldest run time: %w", err)
		}
	}

	// Get total repos analyzed across all runs
	reposQuery := fmt.Sprintf("SELECT COUNT(*) FROM %s", quoteTableName(repoRunsTable, hs.backend))
	row = hs.db.QueryRow(reposQuery)
	if err := row.Scan(&status.TotalReposAnalyzed); err != nil {
		return status, fmt.Errorf("failed to get total repos analyzed: %w", err)
	}

	return status, nil
}

// formatTime converts a time.Time to the appropriate format for the backend.
func formatTime(t time.Time, backend schema.DatabaseBackend) any {
	switch backend {
	case schema.SQLiteBackend:
		return t.Format(time.RFC3339Nano)
	default:
		return t
	}
}

// formatTimePtr converts an optional time.Time to the appropriate format for the backend.
func formatTimePtr(t *time.Time, backend schema.DatabaseBackend) any {
	if t == nil {
		return nil
	}
	return formatTime(*t, backend)
}

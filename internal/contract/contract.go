// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"context"
	"time"

	"github.com/gitpulse/gitpulse/schema"
)

// GitClient defines the necessary operations for repository analysis.
// This allows the analysis logic to be tested without a real git executable.
type GitClient interface {
	// Run executes a git command and returns its output.
	// Its use should be minimized in favor of the explicit methods below.
	Run(ctx context.Context, repoPath string, args ...string) ([]byte, error)

	// GetActivityLog returns the raw commit log with numstat output for the
	// repository, optionally filtered by author and a time window.
	GetActivityLog(ctx context.Context, repoPath string, filter AuthorFilter, startTime, endTime time.Time) ([]byte, error)

	// GetRepoHash returns the current HEAD commit hash of the repository.
	GetRepoHash(ctx context.Context, repoPath string) (string, error)

	// GetRepoRoot returns the absolute path to the root of the Git repository
	// containing the given context path.
	GetRepoRoot(ctx context.Context, contextPath string) (string, error)

	// Clone clones a remote repository into targetDir.
	Clone(ctx context.Context, cloneURL, targetDir string) error
}

// AuthorFilter restricts the activity log to matching commit authors.
type AuthorFilter struct {
	Email string
	Name  string
}

// IsZero reports whether no filter is set.
func (f AuthorFilter) IsZero() bool {
	return f.Email == "" && f.Name == ""
}

// PersistenceManager defines the interface for managing backing stores.
// This allows the storage layer to be mocked for testing.
type PersistenceManager interface {
	GetActivityStore() CacheStore
	GetHistoryStore() HistoryStore
}

// CacheStore defines the interface for cache data storage.
type CacheStore interface {
	Get(key string) ([]byte, int, int64, error)
	Set(key string, value []byte, version int, timestamp int64) error
	Clear() error
	GetStatus() (schema.CacheStatus, error)
	Close() error
}

// HistoryStore defines the interface for tracking analysis runs.
type HistoryStore interface {
	// BeginRun creates a new run row and returns its unique ID.
	BeginRun(startTime time.Time, configParams map[string]any) (int64, error)

	// EndRun updates the run with completion data.
	EndRun(runID int64, endTime time.Time, totals schema.TotalStats) error

	// RecordRepo stores per-repo results for a run.
	RecordRepo(runID int64, repo *schema.RepoStats) error

	// ListRuns returns recorded runs, newest first, at most limit rows.
	ListRuns(limit int) ([]schema.RunRecord, error)

	// ListRepoRuns returns per-repo rows, newest first, at most limit rows.
	ListRepoRuns(limit int) ([]schema.RepoRunRecord, error)

	// Clear removes all recorded runs.
	Clear() error

	// GetStatus returns status information about the history store.
	GetStatus() (schema.HistoryStatus, error)

	// Close closes the underlying connection.
	Close() error
}

// Package parquet provides data structures and functions for exporting git
// activity data to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"time"

	"github.com/gitpulse/gitpulse/schema"
	"github.com/parquet-go/parquet-go"
)

// RepoActivity represents the aggregated activity for a single repository.
type RepoActivity struct {
	// RepoName is the repository directory name
	RepoName string `parquet:"repo_name,snappy"`

	// RepoPath is the absolute path to the repository
	RepoPath string `parquet:"repo_path,snappy"`

	// TotalCommits is the number of matching commits in the analysis window
	TotalCommits int32 `parquet:"total_commits,snappy"`

	// TotalLinesAdded is the number of lines added across all commits
	TotalLinesAdded int64 `parquet:"total_lines_added,snappy"`

	// TotalLinesRemoved is the number of lines removed across all commits
	TotalLinesRemoved int64 `parquet:"total_lines_removed,snappy"`

	// TotalFilesChanged is the number of file changes across all commits
	TotalFilesChanged int32 `parquet:"total_files_changed,snappy"`

	// FirstCommitDate is the earliest matching commit (nullable)
	FirstCommitDate *time.Time `parquet:"first_commit_date,optional,snappy"`

	// LastCommitDate is the latest matching commit (nullable)
	LastCommitDate *time.Time `parquet:"last_commit_date,optional,snappy"`

	// LastCommitHash is the HEAD commit hash at analysis time
	LastCommitHash string `parquet:"last_commit_hash,snappy"`
}

// CommitActivity represents a single commit with its change stats.
type CommitActivity struct {
	// RepoName is the repository the commit belongs to
	RepoName string `parquet:"repo_name,snappy"`

	// Hash is the full commit hash
	Hash string `parquet:"hash,snappy"`

	// Author is the commit author name
	Author string `parquet:"author,snappy"`

	// Email is the commit author email
	Email string `parquet:"email,snappy"`

	// Date is the author date (stored as TIMESTAMP with nanosecond precision)
	Date time.Time `parquet:"date,snappy"`

	// Message is the commit subject line
	Message string `parquet:"message,snappy"`

	// FilesChanged is the number of files touched by the commit
	FilesChanged int32 `parquet:"files_changed,snappy"`

	// LinesAdded is the number of lines added by the commit
	LinesAdded int32 `parquet:"lines_added,snappy"`

	// LinesRemoved is the number of lines removed by the commit
	LinesRemoved int32 `parquet:"lines_removed,snappy"`
}

// Run represents a single analysis run with metadata.
// This struct maps to the gitpulse_runs database table.
type Run struct {
	// RunID is the unique identifier for this run
	RunID int64 `parquet:"run_id,snappy"`

	// StartTime is when the run began (stored as TIMESTAMP with nanosecond precision)
	StartTime time.Time `parquet:"start_time,snappy"`

	// EndTime is when the run completed (nullable)
	EndTime *time.Time `parquet:"end_time,optional,snappy"`

	// RunDurationMs is the duration of the run in milliseconds (nullable)
	RunDurationMs *int32 `parquet:"run_duration_ms,optional,snappy"`

	// TotalRepos is the number of repositories analyzed in this run
	TotalRepos int32 `parquet:"total_repos,snappy"`

	// TotalCommits is the number of commits counted in this run
	TotalCommits int32 `parquet:"total_commits,snappy"`

	// LinesAdded is the number of lines added across the run
	LinesAdded int64 `parquet:"lines_added,snappy"`

	// LinesRemoved is the number of lines removed across the run
	LinesRemoved int64 `parquet:"lines_removed,snappy"`

	// ConfigParams contains the JSON-encoded configuration parameters (nullable)
	ConfigParams *string `parquet:"config_params,optional,snappy"`
}

// RepoRun represents per-repository results for a single run.
// This struct maps to the gitpulse_repo_runs database table.
type RepoRun struct {
	// RunID references the parent run
	RunID int64 `parquet:"run_id,snappy"`

	// RepoName is the repository directory name
	RepoName string `parquet:"repo_name,snappy"`

	// RepoPath is the absolute path to the repository
	RepoPath string `parquet:"repo_path,snappy"`

	// AnalysisTime is when the repository was analyzed
	AnalysisTime time.Time `parquet:"analysis_time,snappy"`

	// TotalCommits is the number of matching commits
	TotalCommits int32 `parquet:"total_commits,snappy"`

	// LinesAdded is the number of lines added
	LinesAdded int64 `parquet:"lines_added,snappy"`

	// LinesRemoved is the number of lines removed
	LinesRemoved int64 `parquet:"lines_removed,snappy"`

	// FilesChanged is the number of file changes
	FilesChanged int32 `parquet:"files_changed,snappy"`

	// LastCommitHash is the HEAD commit hash at analysis time
	LastCommitHash string `parquet:"last_commit_hash,snappy"`

	// FirstCommitDate is the earliest matching commit (nullable)
	FirstCommitDate *time.Time `parquet:"first_commit_date,optional,snappy"`

	// LastCommitDate is the latest matching commit (nullable)
	LastCommitDate *time.Time `parquet:"last_commit_date,optional,snappy"`
}

// writeParquet writes a slice of records to a Parquet file using struct
// schema inference from the parquet tags.
func writeParquet[T any](data []T, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	writer := parquet.NewGenericWriter[T](file)
	defer func() { _ = writer.Close() }()

	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	return nil
}

// WriteRepoActivityParquet writes a slice of RepoActivity structs to a Parquet file.
func WriteRepoActivityParquet(data []RepoActivity, outputPath string) error {
	return writeParquet(data, outputPath)
}

// WriteCommitActivityParquet writes a slice of CommitActivity structs to a Parquet file.
func WriteCommitActivityParquet(data []CommitActivity, outputPath string) error {
	return writeParquet(data, outputPath)
}

// WriteRunsParquet writes a slice of Run structs to a Parquet file.
func WriteRunsParquet(data []Run, outputPath string) error {
	return writeParquet(data, outputPath)
}

// WriteRepoRunsParquet writes a slice of RepoRun structs to a Parquet file.
func WriteRepoRunsParquet(data []RepoRun, outputPath string) error {
	return writeParquet(data, outputPath)
}

// ConvertRepoStats converts schema.RepoStats to RepoActivity for Parquet export.
func ConvertRepoStats(repos []*schema.RepoStats) []RepoActivity {
	result := make([]RepoActivity, len(repos))
	for i, repo := range repos {
		result[i] = RepoActivity{
			RepoName:          repo.Name,
			RepoPath:          repo.Path,
			TotalCommits:      int32(repo.TotalCommits),
			TotalLinesAdded:   int64(repo.TotalLinesAdded),
			TotalLinesRemoved: int64(repo.TotalLinesRemoved),
			TotalFilesChanged: int32(repo.TotalFilesChanged),
			FirstCommitDate:   repo.FirstCommitDate,
			LastCommitDate:    repo.LastCommitDate,
			LastCommitHash:    repo.LastCommitHash,
		}
	}
	return result
}

// ConvertCommits flattens per-repo commit lists into CommitActivity records.
func ConvertCommits(repos []*schema.RepoStats) []CommitActivity {
	var result []CommitActivity
	for _, repo := range repos {
		for _, commit := range repo.Commits {
			result = append(result, CommitActivity{
				RepoName:     repo.Name,
				Hash:         commit.Hash,
				Author:       commit.Author,
				Email:        commit.Email,
				Date:         commit.Date,
				Message:      commit.Message,
				FilesChanged: int32(commit.FilesChanged),
				LinesAdded:   int32(commit.LinesAdded),
				LinesRemoved: int32(commit.LinesRemoved),
			})
		}
	}
	return result
}

// ConvertRunRecords converts schema.RunRecord to Run for Parquet export.
func ConvertRunRecords(records []schema.RunRecord) []Run {
	result := make([]Run, len(records))
	for i, record := range records {
		result[i] = Run{
			RunID:         record.RunID,
			StartTime:     record.StartTime,
			EndTime:       record.EndTime,
			RunDurationMs: record.RunDurationMs,
			TotalRepos:    record.TotalRepos,
			TotalCommits:  record.TotalCommits,
			LinesAdded:    record.LinesAdded,
			LinesRemoved:  record.LinesRemoved,
			ConfigParams:  record.ConfigParams,
		}
	}
	return result
}

// ConvertRepoRunRecords converts schema.RepoRunRecord to RepoRun for Parquet export.
func ConvertRepoRunRecords(records []schema.RepoRunRecord) []RepoRun {
	result := make([]RepoRun, len(records))
	for i, record := range records {
		result[i] = RepoRun{
			RunID:           record.RunID,
			RepoName:        record.RepoName,
			RepoPath:        record.RepoPath,
			AnalysisTime:    record.AnalysisTime,
			TotalCommits:    record.TotalCommits,
			LinesAdded:      record.LinesAdded,
			LinesRemoved:    record.LinesRemoved,
			FilesChanged:    record.FilesChanged,
			LastCommitHash:  record.LastCommitHash,
			FirstCommitDate: record.FirstCommitDate,
			LastCommitDate:  record.LastCommitDate,
		}
	}
	return result
}

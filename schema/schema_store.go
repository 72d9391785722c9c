package schema

import "time"

// RunRecord represents a row from the gitpulse_runs table.
type RunRecord struct {
	RunID         int64
	StartTime     time.Time
	EndTime       *time.Time
	RunDurationMs *int32
	TotalRepos    int32
	TotalCommits  int32
	LinesAdded    int64
	LinesRemoved  int64
	ConfigParams  *string
}

// RepoRunRecord represents a row from the gitpulse_repo_runs table.
type RepoRunRecord struct {
	RunID           int64
	RepoName        string
	RepoPath        string
	AnalysisTime    time.Time
	TotalCommits    int32
	LinesAdded      int64
	LinesRemoved    int64
	FilesChanged    int32
	LastCommitHash  string
	FirstCommitDate *time.Time
	LastCommitDate  *time.Time
}

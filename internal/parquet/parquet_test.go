package parquet

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gitpulse/gitpulse/schema"
)

func TestRepoActivityStructTags(t *testing.T) {
	// Verify struct tags are properly defined for parquet schema inference
	sch := parquet.SchemaOf(new(RepoActivity))
	require.NotNil(t, sch)

	expectedColumns := []string{
		"repo_name",
		"repo_path",
		"total_commits",
		"total_lines_added",
		"total_lines_removed",
		"total_files_changed",
		"first_commit_date",
		"last_commit_date",
		"last_commit_hash",
	}

	for _, colName := range expectedColumns {
		col, ok := sch.Lookup(colName)
		require.True(t, ok, "Column %s should exist in schema", colName)
		require.NotNil(t, col, "Column %s should not be nil", colName)
	}
}

func TestRunStructTags(t *testing.T) {
	sch := parquet.SchemaOf(new(Run))
	require.NotNil(t, sch)

	expectedColumns := []string{
		"run_id",
		"start_time",
		"end_time",
		"run_duration_ms",
		"total_repos",
		"total_commits",
		"lines_added",
		"lines_removed",
		"config_params",
	}

	for _, colName := range expectedColumns {
		col, ok := sch.Lookup(colName)
		require.True(t, ok, "Column %s should exist in schema", colName)
		require.NotNil(t, col, "Column %s should not be nil", colName)
	}
}

func sampleRepoStats() []*schema.RepoStats {
	first := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)
	last := time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC)

	repo := schema.NewRepoStats("gitpulse", "/src/gitpulse")
	repo.TotalCommits = 2
	repo.TotalLinesAdded = 120
	repo.TotalLinesRemoved = 30
	repo.TotalFilesChanged = 8
	repo.FirstCommitDate = &first
	repo.LastCommitDate = &last
	repo.LastCommitHash = "abc123"
	repo.Commits = []schema.Commit{
		{Hash: "abc123", Author: "Alice", Email: "alice@example.com", Date: last, Message: "add feature", FilesChanged: 5, LinesAdded: 100, LinesRemoved: 20},
		{Hash: "def456", Author: "Alice", Email: "alice@example.com", Date: first, Message: "initial commit", FilesChanged: 3, LinesAdded: 20, LinesRemoved: 10},
	}
	return []*schema.RepoStats{repo}
}

func TestWriteRepoActivityParquet(t *testing.T) {
	tmpDir := t.TempDir()
	outputPath := filepath.Join(tmpDir, "repos.parquet")

	data := ConvertRepoStats(sampleRepoStats())
	require.Len(t, data, 1)

	err := WriteRepoActivityParquet(data, outputPath)
	require.NoError(t, err, "Writing Parquet file should not produce error")

	// Read the file back and verify the record round-trips
	rows, err := parquet.ReadFile[RepoActivity](outputPath)
	require.NoError(t, err, "Reading Parquet file should not produce error")
	require.Len(t, rows, 1)
	assert.Equal(t, "gitpulse", rows[0].RepoName)
	assert.Equal(t, int32(2), rows[0].TotalCommits)
	assert.Equal(t, "abc123", rows[0].LastCommitHash)
	require.NotNil(t, rows[0].FirstCommitDate)
}

func TestWriteCommitActivityParquet(t *testing.T) {
	tmpDir := t.TempDir()
	outputPath := filepath.Join(tmpDir, "commits.parquet")

	data := ConvertCommits(sampleRepoStats())
	require.Len(t, data, 2)
	assert.Equal(t, "gitpulse", data[0].RepoName)

	err := WriteCommitActivityParquet(data, outputPath)
	require.NoError(t, err, "Writing Parquet file should not produce error")

	rows, err := parquet.ReadFile[CommitActivity](outputPath)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "abc123", rows[0].Hash)
	assert.Equal(t, int32(100), rows[0].LinesAdded)
}

func TestConvertRunRecords(t *testing.T) {
	start := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	end := start.Add(time.Minute)
	durationMs := int32(60000)
	configParams := `{"workers":4}`

	records := []schema.RunRecord{
		{
			RunID:         1,
			StartTime:     start,
			EndTime:       &end,
			RunDurationMs: &durationMs,
			TotalRepos:    3,
			TotalCommits:  99,
			LinesAdded:    1000,
			LinesRemoved:  200,
			ConfigParams:  &configParams,
		},
		{
			RunID:     2,
			StartTime: start,
			// Nullable fields left nil for an in-flight run
		},
	}

	runs := ConvertRunRecords(records)
	require.Len(t, runs, 2)
	assert.Equal(t, int64(1), runs[0].RunID)
	assert.Equal(t, int32(3), runs[0].TotalRepos)
	require.NotNil(t, runs[0].EndTime)
	assert.Nil(t, runs[1].EndTime)
	assert.Nil(t, runs[1].ConfigParams)
}

func TestWriteRepoRunsParquet(t *testing.T) {
	tmpDir := t.TempDir()
	outputPath := filepath.Join(tmpDir, "repo_runs.parquet")

	now := time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC)
	records := []schema.RepoRunRecord{
		{
			RunID:          1,
			RepoName:       "gitpulse",
			RepoPath:       "/src/gitpulse",
			AnalysisTime:   now,
			TotalCommits:   17,
			LinesAdded:     500,
			LinesRemoved:   120,
			FilesChanged:   30,
			LastCommitHash: "abc123",
		},
	}

	err := WriteRepoRunsParquet(ConvertRepoRunRecords(records), outputPath)
	require.NoError(t, err, "Writing Parquet file should not produce error")

	rows, err := parquet.ReadFile[RepoRun](outputPath)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "gitpulse", rows[0].RepoName)
	assert.Equal(t, int32(17), rows[0].TotalCommits)
	assert.Nil(t, rows[0].FirstCommitDate)
}

package iocache

import (
	"testing"
	"time"

	"github.com/gitpulse/gitpulse/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHistoryStore(t *testing.T) *HistoryStoreImpl {
	t.Helper()
	store, err := NewHistoryStore(schema.SQLiteBackend, ":memory:")
	require.NoError(t, err, "Failed to create SQLite history store")
	t.Cleanup(func() { _ = store.Close() })
	return store.(*HistoryStoreImpl)
}

func TestHistoryStoreRunLifecycle(t *testing.T) {
	store := newTestHistoryStore(t)

	startTime := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	runID, err := store.BeginRun(startTime, map[string]any{"workers": 4})
	require.NoError(t, err, "BeginRun should not fail")
	assert.Greater(t, runID, int64(0), "Run ID should be positive")

	totals := schema.TotalStats{
		TotalRepos:        2,
		TotalCommits:      42,
		TotalLinesAdded:   1000,
		TotalLinesRemoved: 250,
	}
	endTime := startTime.Add(90 * time.Second)
	require.NoError(t, store.EndRun(runID, endTime, totals), "EndRun should not fail")

	runs, err := store.ListRuns(10)
	require.NoError(t, err, "ListRuns should not fail")
	require.Len(t, runs, 1)

	run := runs[0]
	assert.Equal(t, runID, run.RunID)
	assert.Equal(t, startTime, run.StartTime.UTC())
	require.NotNil(t, run.EndTime)
	assert.Equal(t, endTime, run.EndTime.UTC())
	require.NotNil(t, run.RunDurationMs)
	assert.Equal(t, int32(90000), *run.RunDurationMs)
	assert.Equal(t, int32(2), run.TotalRepos)
	assert.Equal(t, int32(42), run.TotalCommits)
	assert.Equal(t, int64(1000), run.LinesAdded)
	assert.Equal(t, int64(250), run.LinesRemoved)
	require.NotNil(t, run.ConfigParams)
	assert.Contains(t, *run.ConfigParams, "workers")
}

func TestHistoryStoreRecordRepo(t *testing.T) {
	store := newTestHistoryStore(t)

	runID, err := store.BeginRun(time.Now(), nil)
	require.NoError(t, err)

	first := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)
	last := time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC)
	repo := schema.NewRepoStats("gitpulse", "/src/gitpulse")
	repo.TotalCommits = 17
	repo.TotalLinesAdded = 500
	repo.TotalLinesRemoved = 120
	repo.TotalFilesChanged = 30
	repo.LastCommitHash = "abc123"
	repo.FirstCommitDate = &first
	repo.LastCommitDate = &last

	require.NoError(t, store.RecordRepo(runID, repo), "RecordRepo should not fail")

	repoRuns, err := store.ListRepoRuns(10)
	require.NoError(t, err, "ListRepoRuns should not fail")
	require.Len(t, repoRuns, 1)

	rec := repoRuns[0]
	assert.Equal(t, runID, rec.RunID)
	assert.Equal(t, "gitpulse", rec.RepoName)
	assert.Equal(t, "/src/gitpulse", rec.RepoPath)
	assert.Equal(t, int32(17), rec.TotalCommits)
	assert.Equal(t, int64(500), rec.LinesAdded)
	assert.Equal(t, int64(120), rec.LinesRemoved)
	assert.Equal(t, int32(30), rec.FilesChanged)
	assert.Equal(t, "abc123", rec.LastCommitHash)
	require.NotNil(t, rec.FirstCommitDate)
	assert.Equal(t, first, rec.FirstCommitDate.UTC())
	require.NotNil(t, rec.LastCommitDate)
	assert.Equal(t, last, rec.LastCommitDate.UTC())
}

func TestHistoryStoreRecordRepoNilDates(t *testing.T) {
	store := newTestHistoryStore(t)

	runID, err := store.BeginRun(time.Now(), nil)
	require.NoError(t, err)

	repo := schema.NewRepoStats("empty", "/src/empty")
	require.NoError(t, store.RecordRepo(runID, repo), "RecordRepo with nil dates should not fail")

	repoRuns, err := store.ListRepoRuns(10)
	require.NoError(t, err)
	require.Len(t, repoRuns, 1)
	assert.Nil(t, repoRuns[0].FirstCommitDate)
	assert.Nil(t, repoRuns[0].LastCommitDate)
}

func TestHistoryStoreListRunsOrderAndLimit(t *testing.T) {
	store := newTestHistoryStore(t)

	var ids []int64
	for i := 0; i < 3; i++ {
		id, err := store.BeginRun(time.Now().Add(time.Duration(i)*time.Minute), nil)
		require.NoError(t, err)
		ids = append(ids, id)
	}

	runs, err := store.ListRuns(2)
	require.NoError(t, err)
	require.Len(t, runs, 2, "Limit should cap the result")
	assert.Equal(t, ids[2], runs[0].RunID, "Newest run should come first")
	assert.Equal(t, ids[1], runs[1].RunID)
}

func TestHistoryStoreClear(t *testing.T) {
	store := newTestHistoryStore(t)

	runID, err := store.BeginRun(time.Now(), nil)
	require.NoError(t, err)
	require.NoError(t, store.RecordRepo(runID, schema.NewRepoStats("x", "/x")))

	require.NoError(t, store.Clear(), "Clear should not fail")

	runs, err := store.ListRuns(10)
	require.NoError(t, err)
	assert.Empty(t, runs)

	repoRuns, err := store.ListRepoRuns(10)
	require.NoError(t, err)
	assert.Empty(t, repoRuns)
}

func TestHistoryStoreGetStatus(t *testing.T) {
	store := newTestHistoryStore(t)

	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.Equal(t, "sqlite", status.Backend)
	assert.True(t, status.Connected)
	assert.Equal(t, 0, status.TotalRuns)

	runID, err := store.BeginRun(time.Now(), nil)
	require.NoError(t, err)
	require.NoError(t, store.RecordRepo(runID, schema.NewRepoStats("a", "/a")))
	require.NoError(t, store.RecordRepo(runID, schema.NewRepoStats("b", "/b")))

	status, err = store.GetStatus()
	require.NoError(t, err)
	assert.Equal(t, 1, status.TotalRuns)
	assert.Equal(t, runID, status.LastRunID)
	assert.Equal(t, 2, status.TotalReposAnalyzed)
}

func TestHistoryStoreNoneBackend(t *testing.T) {
	store, err := NewHistoryStore(schema.NoneBackend, "")
	require.NoError(t, err, "Failed to create none backend history store")

	runID, err := store.BeginRun(time.Now(), nil)
	assert.NoError(t, err)
	assert.Equal(t, int64(0), runID, "NoneBackend should return run ID 0")

	assert.NoError(t, store.EndRun(0, time.Now(), schema.TotalStats{}))
	assert.NoError(t, store.RecordRepo(0, schema.NewRepoStats("x", "/x")))

	runs, err := store.ListRuns(10)
	assert.NoError(t, err)
	assert.Nil(t, runs)

	status, err := store.GetStatus()
	assert.NoError(t, err)
	assert.False(t, status.Connected)

	assert.NoError(t, store.Clear())
	assert.NoError(t, store.Close())
}

package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleLog = "abc123\x00Jane Doe\x00jane@example.com\x002024-01-15T10:30:00Z\x00Initial commit\n" +
	"10\t5\tsrc/main.rs\n" +
	"3\t2\tREADME.md\n" +
	"def456\x00Jane Doe\x00jane@example.com\x002024-01-10T08:00:00Z\x00Add tests\n" +
	"20\t0\ttests/test_main.rs\n"

func newTestParser(opts ParseOptions) *LogParser {
	return NewLogParser(NewClassifier(), opts)
}

func TestParseBasic(t *testing.T) {
	p := newTestParser(ParseOptions{StoreCommits: true})
	stats, err := p.Parse("demo", "/tmp/demo", sampleLog)
	require.NoError(t, err)

	assert.Equal(t, "demo", stats.Name)
	assert.Equal(t, "/tmp/demo", stats.Path)
	assert.Equal(t, 2, stats.TotalCommits)
	assert.Len(t, stats.Commits, 2)
	assert.Equal(t, 33, stats.TotalLinesAdded)
	assert.Equal(t, 7, stats.TotalLinesRemoved)
	assert.Equal(t, 3, stats.TotalFilesChanged)

	// Newest commit comes first in git log output.
	assert.Equal(t, "abc123", stats.LastCommitHash)

	require.NotNil(t, stats.FirstCommitDate)
	require.NotNil(t, stats.LastCommitDate)
	assert.Equal(t, time.Date(2024, 1, 10, 8, 0, 0, 0, time.UTC), *stats.FirstCommitDate)
	assert.Equal(t, time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC), *stats.LastCommitDate)
}

func TestParseAggregation(t *testing.T) {
	p := newTestParser(ParseOptions{StoreCommits: true})
	stats, err := p.Parse("demo", "/tmp/demo", sampleLog)
	require.NoError(t, err)

	assert.Equal(t, 35, stats.Languages["Rust"], "src/main.rs + tests/test_main.rs churn")
	assert.Equal(t, 5, stats.Languages["Documentation"])
	assert.Equal(t, 15, stats.ContributionTypes["production_code"])
	assert.Equal(t, 20, stats.ContributionTypes["tests"])
	assert.Equal(t, 5, stats.ContributionTypes["documentation"])
	assert.Equal(t, 35, stats.FileExtensions[".rs"])
	assert.Equal(t, 5, stats.FileExtensions[".md"])
}

func TestParseEmptyInput(t *testing.T) {
	p := newTestParser(ParseOptions{})
	_, err := p.Parse("demo", "/tmp/demo", "   \n ")
	assert.ErrorIs(t, err, ErrEmptyLog)
}

func TestParseWithoutStoringCommits(t *testing.T) {
	p := newTestParser(ParseOptions{StoreCommits: false})
	stats, err := p.Parse("demo", "/tmp/demo", sampleLog)
	require.NoError(t, err)

	assert.Equal(t, 2, stats.TotalCommits)
	assert.Empty(t, stats.Commits)
	// Commit classifications are only kept when storing commits.
	assert.Equal(t, 3, stats.TotalFilesChanged)
}

func TestParseLegacyDelimiter(t *testing.T) {
	log := "abc123|Jane Doe|jane@example.com|2024-01-15T10:30:00Z|Fix build\n" +
		"4\t1\tsrc/app.py\n"

	p := newTestParser(ParseOptions{StoreCommits: true, LegacyDelimiter: true})
	stats, err := p.Parse("demo", "/tmp/demo", log)
	require.NoError(t, err)

	assert.Equal(t, 1, stats.TotalCommits)
	assert.Equal(t, "Fix build", stats.Commits[0].Message)
	assert.Equal(t, 5, stats.Languages["Python"])
}

func TestParseSkipsInvalidDates(t *testing.T) {
	log := "abc123\x00Jane\x00j@e.com\x00not-a-date\x00Broken\n" +
		"1\t1\tsrc/main.go\n" +
		"def456\x00Jane\x00j@e.com\x002024-02-01T00:00:00Z\x00Good\n" +
		"2\t2\tsrc/main.go\n"

	p := newTestParser(ParseOptions{StoreCommits: true})
	stats, err := p.Parse("demo", "/tmp/demo", log)
	require.NoError(t, err)

	assert.Equal(t, 1, stats.TotalCommits)
	assert.Equal(t, "def456", stats.Commits[0].Hash)
}

func TestParseBinaryNumstat(t *testing.T) {
	log := "abc123\x00Jane\x00j@e.com\x002024-02-01T00:00:00Z\x00Add image\n" +
		"-\t-\tassets/logo.png\n"

	p := newTestParser(ParseOptions{StoreCommits: true})
	stats, err := p.Parse("demo", "/tmp/demo", log)
	require.NoError(t, err)

	assert.Equal(t, 0, stats.TotalLinesAdded)
	assert.Equal(t, 0, stats.TotalLinesRemoved)
	assert.Equal(t, 1, stats.TotalFilesChanged)
	assert.Equal(t, 1, stats.Commits[0].FilesChanged)
}

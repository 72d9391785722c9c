package outwriter

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gitpulse/gitpulse/internal/contract"
	"github.com/gitpulse/gitpulse/schema"
)

func sampleDashboard() *schema.DashboardData {
	first := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	last := time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC)

	alpha := schema.RepoStats{
		Name:              "alpha",
		Path:              "/src/alpha",
		Description:       "Primary service",
		Technologies:      []string{"Go", "PostgreSQL"},
		TotalCommits:      1000,
		TotalLinesAdded:   4000,
		TotalLinesRemoved: 800,
		TotalFilesChanged: 250,
		FirstCommitDate:   &first,
		LastCommitDate:    &last,
		Languages:         map[string]int{"Go": 700, "Python": 100},
		ContributionTypes: map[string]int{"production_code": 500, "tests": 200, "documentation": 100},
		FileExtensions:    map[string]int{".go": 600, ".py": 200},
		Commits: []schema.Commit{
			{Hash: "abc123", Author: "Jane", Email: "jane@example.com", Date: last, Message: "tune worker pool", FilesChanged: 4, LinesAdded: 90, LinesRemoved: 10},
		},
	}
	beta := schema.RepoStats{
		Name:              "beta",
		Path:              "/src/beta",
		TotalCommits:      234,
		TotalLinesAdded:   1000,
		TotalLinesRemoved: 200,
		TotalFilesChanged: 50,
		Languages:         map[string]int{"Go": 100, "Python": 100},
		ContributionTypes: map[string]int{"production_code": 100, "tests": 50, "documentation": 50},
		FileExtensions:    map[string]int{".go": 100, ".py": 100},
	}

	types := map[string]int{"production_code": 600, "tests": 250, "documentation": 150}
	langs := map[string]int{"Go": 800, "Python": 200}
	exts := map[string]int{".go": 700, ".py": 300}

	weekly := []schema.ActivitySummary{
		{PeriodLabel: "Aug 24 - Aug 30", Commits: 5, LinesAdded: 80, LinesRemoved: 20, FilesChanged: 10, ReposActive: 2},
		{PeriodLabel: "Aug 17 - Aug 23", Commits: 12, LinesAdded: 300, LinesRemoved: 40, FilesChanged: 25, ReposActive: 1},
		{PeriodLabel: "Aug 10 - Aug 16"},
		{PeriodLabel: "Aug 03 - Aug 09", Commits: 3, LinesAdded: 50, LinesRemoved: 5, FilesChanged: 6, ReposActive: 1},
	}
	monthly := []schema.ActivitySummary{
		{PeriodLabel: "August 2026", Commits: 20, LinesAdded: 430, LinesRemoved: 65, FilesChanged: 41, ReposActive: 2},
		{PeriodLabel: "July 2026", Commits: 40, LinesAdded: 900, LinesRemoved: 150, FilesChanged: 80, ReposActive: 2},
	}

	return &schema.DashboardData{
		GeneratedAt: time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC),
		Summary: schema.TotalStats{
			TotalRepos:              2,
			TotalCommits:            1234,
			TotalLinesAdded:         5000,
			TotalLinesRemoved:       1000,
			TotalLinesChanged:       6000,
			TotalFilesChanged:       300,
			Languages:               langs,
			LanguagePercentages:     schema.CalculatePercentages(langs),
			ContributionTypes:       types,
			ContributionPercentages: schema.CalculatePercentages(types),
			FileExtensions:          exts,
			FileExtensionPercents:   schema.CalculatePercentages(exts),
		},
		Repositories:    []schema.RepoStats{beta, alpha},
		WeeklyActivity:  weekly,
		MonthlyActivity: monthly,
	}
}

func TestMarkdownExport(t *testing.T) {
	out := MarkdownExporter{}.Export(sampleDashboard())

	assert.Contains(t, out, "# Git Activity Dashboard")
	assert.Contains(t, out, "| Total Commits | 1,234 |")
	assert.Contains(t, out, "| Production Code | 600 | 60% |")
	assert.Contains(t, out, "| Go | 800 | 80% |")
	assert.Contains(t, out, "| Aug 24 - Aug 30 | 5 | 100 | 2 |")
	assert.Contains(t, out, "| August 2026 | 20 | 495 | 2 |")
	assert.Contains(t, out, "### alpha")
	assert.Contains(t, out, "> Primary service")
	assert.Contains(t, out, "**Active:** 2026-02-01 to 2026-08-20")

	// Repos are ordered by commit count, so alpha comes before beta.
	assert.Less(t, indexOf(out, "### alpha"), indexOf(out, "### beta"))
}

func TestLinkedInExport(t *testing.T) {
	out := LinkedInExporter{}.Export(sampleDashboard())

	assert.Contains(t, out, "My Developer Activity This Week")
	assert.Contains(t, out, "5 commits")
	assert.Contains(t, out, "100 lines of code")
	assert.Contains(t, out, "2 active repos")
	assert.Contains(t, out, "Tests: 25%")
	assert.Contains(t, out, "Documentation: 15%")
	assert.Contains(t, out, "Top Languages: Go, Python")
	assert.Contains(t, out, "#coding #developer #programming #softwareengineering")
}

func TestLinkedInExportQuietWeek(t *testing.T) {
	data := sampleDashboard()
	data.WeeklyActivity[0] = schema.ActivitySummary{PeriodLabel: "Aug 24 - Aug 30"}

	out := LinkedInExporter{}.Export(data)
	assert.NotContains(t, out, "active repos", "an empty week is omitted entirely")
}

func TestPortfolioExport(t *testing.T) {
	out := PortfolioExporter{}.Export(sampleDashboard())

	assert.Contains(t, out, "# Project Portfolio")
	assert.Contains(t, out, "- **Total Projects:** 2")
	assert.Contains(t, out, "- **Total Commits:** 1,234")
	assert.Contains(t, out, "- **Go**: 80.0% ################")
	assert.Contains(t, out, "| Tests | 25% |")
	assert.Contains(t, out, "**Technologies:** Go, PostgreSQL")
	assert.Contains(t, out, "- Project duration: 6 month(s)")
	assert.Contains(t, out, "- Primary languages: Go, Python")
}

func TestBadgeExport(t *testing.T) {
	out := BadgeExporter{}.Export(sampleDashboard())

	assert.Contains(t, out, "<!-- Git Activity Dashboard Widget -->")
	assert.Contains(t, out, "<!-- End Git Activity Dashboard Widget -->")
	assert.Contains(t, out, "| Commits | 1,234 | 5 |")
	assert.Contains(t, out, "| Lines Changed | 6,000 | 100 |")
	assert.Contains(t, out, "| Repositories | 2 | 2 |")
	assert.Contains(t, out, "**Code Quality:** Tests: 25% | Docs: 15%")
}

func TestJSONExport(t *testing.T) {
	out := JSONExporter{}.Export(sampleDashboard())

	var decoded schema.DashboardData
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, 1234, decoded.Summary.TotalCommits)
	assert.Len(t, decoded.Repositories, 2)
}

func TestWriteExportFilesAllDir(t *testing.T) {
	dir := t.TempDir()
	cfg := &contract.Config{
		Quiet:         true,
		AllExportsDir: dir,
		ExportFormats: []schema.ExportFormat{
			schema.JSONExport, schema.MarkdownExport, schema.LinkedInExport,
			schema.PortfolioExport, schema.BadgeExport,
		},
	}

	require.NoError(t, WriteExportFiles(sampleDashboard(), cfg))

	for _, name := range []string{"activity.json", "report.md", "linkedin.txt", "portfolio.md", "badge.md"} {
		_, err := os.Stat(filepath.Join(dir, name))
		assert.NoError(t, err, "expected %s to be written", name)
	}
}

func TestWriteExportFilesSelected(t *testing.T) {
	t.Chdir(t.TempDir())
	cfg := &contract.Config{
		Quiet:         true,
		ExportFormats: []schema.ExportFormat{schema.BadgeExport},
	}

	require.NoError(t, WriteExportFiles(sampleDashboard(), cfg))

	_, err := os.Stat("badge.md")
	assert.NoError(t, err)
	_, err = os.Stat("report.md")
	assert.True(t, os.IsNotExist(err), "unselected formats are not written")
}

func TestWriteDashboardText(t *testing.T) {
	var buf bytes.Buffer
	cfg := &contract.Config{Workers: 4, Width: 80, Output: schema.TextOut, CacheBackend: schema.SQLiteBackend}
	cadence := schema.CadenceStats{MeanCommits: 5.0, MedianCommits: 4.0, StdDevCommits: 4.6, PeakCommits: 12, ActivePeriods: 3}

	err := writeDashboardText(&buf, sampleDashboard(), cadence, cfg, 2*time.Second)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "GIT ACTIVITY DASHBOARD")
	assert.Contains(t, out, "Total commits: 1,234")
	assert.Contains(t, out, "CONTRIBUTION BREAKDOWN")
	assert.Contains(t, out, "Production Code")
	assert.Contains(t, out, "WEEKLY ACTIVITY")
	assert.Contains(t, out, "Cadence: mean 5.0, median 4.0, stddev 4.6 commits/week (peak 12, 3/4 weeks active)")
	assert.Contains(t, out, "alpha (1000 commits)")
	assert.Contains(t, out, "Cache backend: sqlite")
}

func TestWriteDashboardParquet(t *testing.T) {
	base := filepath.Join(t.TempDir(), "dashboard")
	cfg := &contract.Config{Quiet: true, Output: schema.ParquetOut, OutputFile: base}

	require.NoError(t, WriteDashboardResults(sampleDashboard(), schema.CadenceStats{}, cfg, time.Second))

	_, err := os.Stat(base + ".repos.parquet")
	assert.NoError(t, err)
	_, err = os.Stat(base + ".commits.parquet")
	assert.NoError(t, err)
}

func TestWriteDashboardParquetRequiresOutputFile(t *testing.T) {
	cfg := &contract.Config{Output: schema.ParquetOut}
	err := WriteDashboardResults(sampleDashboard(), schema.CadenceStats{}, cfg, time.Second)
	assert.ErrorContains(t, err, "--output-file is required")
}

func TestWriteDashboardJSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "activity.json")
	cfg := &contract.Config{Output: schema.JSONOut, OutputFile: path}

	require.NoError(t, WriteDashboardResults(sampleDashboard(), schema.CadenceStats{}, cfg, time.Second))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	var decoded schema.DashboardData
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, 2, decoded.Summary.TotalRepos)
}

func TestGetMaxBarWidth(t *testing.T) {
	assert.Equal(t, 40, GetMaxBarWidth(&contract.Config{Width: 200}), "wide terminals are capped")
	assert.Equal(t, 20, GetMaxBarWidth(&contract.Config{Width: 50}))
	assert.Equal(t, 10, GetMaxBarWidth(&contract.Config{Width: 30}), "narrow terminals get the floor")
}

func TestTopShares(t *testing.T) {
	shares := topShares(map[string]int{"Go": 75, "Python": 25}, 10)
	require.Len(t, shares, 2)
	assert.Equal(t, "Go", shares[0].key)
	assert.InDelta(t, 75.0, shares[0].pct, 0.001)

	assert.Nil(t, topShares(map[string]int{}, 5))
	assert.Len(t, topShares(map[string]int{"a": 1, "b": 1, "c": 1}, 2), 2)
}

func TestTopKeys(t *testing.T) {
	keys := topKeys(map[string]int{"Go": 800, "Python": 200, "Shell": 50}, 2)
	assert.Equal(t, []string{"Go", "Python"}, keys)
}

func indexOf(haystack, needle string) int {
	return bytes.Index([]byte(haystack), []byte(needle))
}

package schema

import "time"

// Commit holds the parsed metadata and change stats for one commit.
type Commit struct {
	Hash         string    `json:"hash"`
	Author       string    `json:"author"`
	Email        string    `json:"email"`
	Date         time.Time `json:"date"`
	Message      string    `json:"message"`
	FilesChanged int       `json:"files_changed"`
	LinesAdded   int       `json:"lines_added"`
	LinesRemoved int       `json:"lines_removed"`

	// Classifications is only populated when commit storage is enabled.
	Classifications []Classification `json:"file_classifications,omitempty"`
}

// RepoStats aggregates all activity for a single repository.
type RepoStats struct {
	Name         string `json:"name"`
	Path         string `json:"path"`
	Description  string `json:"description,omitempty"`
	Technologies []string `json:"technologies,omitempty"`

	TotalCommits      int `json:"total_commits"`
	TotalLinesAdded   int `json:"total_lines_added"`
	TotalLinesRemoved int `json:"total_lines_removed"`
	TotalFilesChanged int `json:"total_files_changed"`

	FirstCommitDate *time.Time `json:"first_commit_date,omitempty"`
	LastCommitDate  *time.Time `json:"last_commit_date,omitempty"`

	// LastCommitHash is the most recent commit seen, used for cache invalidation.
	LastCommitHash string `json:"last_commit_hash,omitempty"`

	// Line counts keyed by language, contribution type and file extension.
	Languages         map[string]int `json:"languages"`
	ContributionTypes map[string]int `json:"contribution_types"`
	FileExtensions    map[string]int `json:"file_extensions"`

	Commits []Commit `json:"commits,omitempty"`
}

// NewRepoStats returns a RepoStats with all aggregation maps initialized.
func NewRepoStats(name, path string) *RepoStats {
	return &RepoStats{
		Name:              name,
		Path:              path,
		Languages:         make(map[string]int),
		ContributionTypes: make(map[string]int),
		FileExtensions:    make(map[string]int),
	}
}

// TotalStats aggregates activity across all analyzed repositories.
type TotalStats struct {
	TotalRepos        int `json:"total_repos"`
	TotalCommits      int `json:"total_commits"`
	TotalLinesAdded   int `json:"total_lines_added"`
	TotalLinesRemoved int `json:"total_lines_removed"`
	TotalLinesChanged int `json:"total_lines_changed"`
	TotalFilesChanged int `json:"total_files_changed"`

	Languages               map[string]int     `json:"languages"`
	LanguagePercentages     map[string]float64 `json:"language_percentages"`
	ContributionTypes       map[string]int     `json:"contribution_types"`
	ContributionPercentages map[string]float64 `json:"contribution_percentages"`
	FileExtensions          map[string]int     `json:"file_extensions"`
	FileExtensionPercents   map[string]float64 `json:"file_extension_percentages"`
}

// ActivitySummary aggregates activity for a single time period.
type ActivitySummary struct {
	PeriodStart time.Time `json:"period_start"`
	PeriodEnd   time.Time `json:"period_end"`
	PeriodLabel string    `json:"period_label"`

	Commits      int `json:"commits"`
	LinesAdded   int `json:"lines_added"`
	LinesRemoved int `json:"lines_removed"`
	FilesChanged int `json:"files_changed"`
	ReposActive  int `json:"repos_active"`
}

// CadenceStats summarizes the commit cadence across a set of periods.
type CadenceStats struct {
	MeanCommits   float64 `json:"mean_commits"`
	MedianCommits float64 `json:"median_commits"`
	StdDevCommits float64 `json:"stddev_commits"`
	PeakCommits   int     `json:"peak_commits"`
	ActivePeriods int     `json:"active_periods"`
}

// DashboardData is the full JSON export payload.
type DashboardData struct {
	GeneratedAt     time.Time         `json:"generated_at"`
	Summary         TotalStats        `json:"summary"`
	Repositories    []RepoStats       `json:"repositories"`
	DailyActivity   []ActivitySummary `json:"daily_activity"`
	WeeklyActivity  []ActivitySummary `json:"weekly_activity"`
	MonthlyActivity []ActivitySummary `json:"monthly_activity"`
}

package core

import (
	"time"

	"github.com/montanaflynn/stats"

	"github.com/gitpulse/gitpulse/schema"
)

// Analyzer accumulates per-repo statistics and derives cross-repo summaries.
type Analyzer struct {
	AuthorEmail string
	AuthorName  string

	parser *LogParser
	repos  []schema.RepoStats
}

// NewAnalyzer creates an analyzer. Author filters are applied when the git
// log is collected, not here; they are carried for reporting and cache keys.
func NewAnalyzer(authorEmail, authorName string) *Analyzer {
	return &Analyzer{
		AuthorEmail: authorEmail,
		AuthorName:  authorName,
		parser:      NewLogParser(NewClassifier(), ParseOptions{StoreCommits: true}),
	}
}

// AddRepo registers pre-parsed repository data, e.g. from the cache.
func (a *Analyzer) AddRepo(rs schema.RepoStats) {
	a.repos = append(a.repos, rs)
}

// ParseLog parses raw git log output and registers the result.
func (a *Analyzer) ParseLog(repoName, repoPath, logOutput string) (*schema.RepoStats, error) {
	rs, err := a.parser.Parse(repoName, repoPath, logOutput)
	if err != nil {
		return nil, err
	}
	a.repos = append(a.repos, *rs)
	return rs, nil
}

// Repos returns all registered repository stats.
func (a *Analyzer) Repos() []schema.RepoStats {
	return a.repos
}

// TotalStats sums activity across all registered repositories and computes
// the percentage breakdowns.
func (a *Analyzer) TotalStats() schema.TotalStats {
	total := schema.TotalStats{
		TotalRepos:        len(a.repos),
		Languages:         make(map[string]int),
		ContributionTypes: make(map[string]int),
		FileExtensions:    make(map[string]int),
	}
	for i := range a.repos {
		r := &a.repos[i]
		total.TotalCommits += r.TotalCommits
		total.TotalLinesAdded += r.TotalLinesAdded
		total.TotalLinesRemoved += r.TotalLinesRemoved
		total.TotalFilesChanged += r.TotalFilesChanged
		for k, v := range r.Languages {
			total.Languages[k] += v
		}
		for k, v := range r.ContributionTypes {
			total.ContributionTypes[k] += v
		}
		for k, v := range r.FileExtensions {
			total.FileExtensions[k] += v
		}
	}
	total.TotalLinesChanged = total.TotalLinesAdded + total.TotalLinesRemoved
	total.LanguagePercentages = schema.CalculatePercentages(total.Languages)
	total.ContributionPercentages = schema.CalculatePercentages(total.ContributionTypes)
	total.FileExtensionPercents = schema.CalculatePercentages(total.FileExtensions)
	return total
}

// Activity summarizes commit activity for the n most recent periods of the
// given strategy, newest first.
func (a *Analyzer) Activity(strategy PeriodStrategy, n int) []schema.ActivitySummary {
	now := time.Now().UTC()
	summaries := make([]schema.ActivitySummary, 0, n)
	for i := 0; i < n; i++ {
		start, end := strategy.Boundaries(now, i)
		s := schema.ActivitySummary{
			PeriodStart: start,
			PeriodEnd:   end,
			PeriodLabel: strategy.Label(now, i),
		}
		active := make(map[string]struct{})
		for ri := range a.repos {
			r := &a.repos[ri]
			for ci := range r.Commits {
				c := &r.Commits[ci]
				if c.Date.Before(start) || c.Date.After(end) {
					continue
				}
				s.Commits++
				s.LinesAdded += c.LinesAdded
				s.LinesRemoved += c.LinesRemoved
				s.FilesChanged += c.FilesChanged
				active[r.Name] = struct{}{}
			}
		}
		s.ReposActive = len(active)
		summaries = append(summaries, s)
	}
	return summaries
}

// Cadence computes commit cadence statistics over a set of period summaries.
func Cadence(summaries []schema.ActivitySummary) schema.CadenceStats {
	var cs schema.CadenceStats
	if len(summaries) == 0 {
		return cs
	}
	counts := make(stats.Float64Data, 0, len(summaries))
	for _, s := range summaries {
		counts = append(counts, float64(s.Commits))
		if s.Commits > cs.PeakCommits {
			cs.PeakCommits = s.Commits
		}
		if s.Commits > 0 {
			cs.ActivePeriods++
		}
	}
	cs.MeanCommits, _ = stats.Mean(counts)
	cs.MedianCommits, _ = stats.Median(counts)
	cs.StdDevCommits, _ = stats.StandardDeviation(counts)
	return cs
}

// DashboardData assembles the full export payload.
func (a *Analyzer) DashboardData() schema.DashboardData {
	return schema.DashboardData{
		GeneratedAt:     time.Now().UTC(),
		Summary:         a.TotalStats(),
		Repositories:    a.repos,
		DailyActivity:   a.Activity(DailyPeriod{}, schema.DefaultDailyDays),
		WeeklyActivity:  a.Activity(WeeklyPeriod{}, schema.DefaultWeeklyWeeks),
		MonthlyActivity: a.Activity(MonthlyPeriod{}, schema.DefaultMonthlyMonths),
	}
}

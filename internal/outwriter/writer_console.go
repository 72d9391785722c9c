package outwriter

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/gitpulse/gitpulse/internal/contract"
	"github.com/gitpulse/gitpulse/schema"
)

const consoleRuleWidth = 60

// writeDashboardText generates and writes the human-readable console report.
func writeDashboardText(w io.Writer, data *schema.DashboardData, cadence schema.CadenceStats, cfg *contract.Config, duration time.Duration) error {
	color.NoColor = !cfg.UseColors
	stats := data.Summary
	barWidth := GetMaxBarWidth(cfg)
	title := color.New(color.Bold)

	fmt.Fprintln(w, strings.Repeat("=", consoleRuleWidth))
	title.Fprintln(w, "GIT ACTIVITY DASHBOARD")
	fmt.Fprintln(w, strings.Repeat("=", consoleRuleWidth))

	fmt.Fprintf(w, "\nRepositories analyzed: %d\n", stats.TotalRepos)
	fmt.Fprintf(w, "Total commits: %s\n", schema.FormatNumberFull(stats.TotalCommits))
	fmt.Fprintf(w, "Lines added: %s\n", schema.FormatNumberFull(stats.TotalLinesAdded))
	fmt.Fprintf(w, "Lines removed: %s\n", schema.FormatNumberFull(stats.TotalLinesRemoved))
	fmt.Fprintf(w, "Files changed: %s\n", schema.FormatNumberFull(stats.TotalFilesChanged))

	writeBreakdownSection(w, "CONTRIBUTION BREAKDOWN", stats.ContributionTypes,
		stats.ContributionPercentages, 0, schema.ContributionTypeLabel, barWidth)

	if len(stats.Languages) > 0 {
		writeBreakdownSection(w, "PROGRAMMING LANGUAGES", stats.Languages,
			stats.LanguagePercentages, 8, nil, barWidth)
	}

	if len(stats.FileExtensions) > 0 {
		writeBreakdownSection(w, "FILE TYPES (by extension)", stats.FileExtensions,
			stats.FileExtensionPercents, 10, nil, barWidth)
	}

	if len(data.WeeklyActivity) > 0 {
		writeSectionHeader(w, "WEEKLY ACTIVITY")
		if err := writeActivityTable(w, data.WeeklyActivity); err != nil {
			return err
		}
		fmt.Fprintf(w, "Cadence: mean %.1f, median %.1f, stddev %.1f commits/week (peak %d, %d/%d weeks active)\n",
			cadence.MeanCommits, cadence.MedianCommits, cadence.StdDevCommits,
			cadence.PeakCommits, cadence.ActivePeriods, len(data.WeeklyActivity))
	}

	if len(data.MonthlyActivity) > 0 {
		writeSectionHeader(w, "MONTHLY ACTIVITY")
		if err := writeActivityTable(w, data.MonthlyActivity); err != nil {
			return err
		}
	}

	writeSectionHeader(w, "REPOSITORIES (per-repo breakdown)")
	for i, repo := range sortedReposByCommits(data.Repositories) {
		if i >= 10 {
			break
		}
		fmt.Fprintf(w, "\n  %s (%d commits)\n", repo.Name, repo.TotalCommits)
		fmt.Fprintf(w, "    Lines: +%s / -%s\n",
			schema.FormatNumberFull(repo.TotalLinesAdded), schema.FormatNumberFull(repo.TotalLinesRemoved))
		if len(repo.Languages) > 0 {
			fmt.Fprintf(w, "    Languages: %s\n", strings.Join(topKeys(repo.Languages, 3), ", "))
		}
		if len(repo.ContributionTypes) > 0 {
			labels := make([]string, 0, 3)
			for _, key := range topKeys(repo.ContributionTypes, 3) {
				labels = append(labels, schema.ContributionTypeLabel(key))
			}
			fmt.Fprintf(w, "    Focus: %s\n", strings.Join(labels, ", "))
		}
		if len(repo.FileExtensions) > 0 {
			fmt.Fprintf(w, "    File types: %s\n", strings.Join(topKeys(repo.FileExtensions, 4), ", "))
		}
	}

	fmt.Fprintf(w, "\n%s\n", strings.Repeat("=", consoleRuleWidth))
	if _, err := fmt.Fprintf(w, "Analysis completed in %v with %d workers. Cache backend: %s\n",
		duration, cfg.Workers, cfg.CacheBackend); err != nil {
		return err
	}
	return nil
}

// writeSectionHeader writes a dashed section header.
func writeSectionHeader(w io.Writer, name string) {
	fmt.Fprintf(w, "\n%s\n", strings.Repeat("-", consoleRuleWidth*2/3))
	fmt.Fprintln(w, name)
	fmt.Fprintf(w, "%s\n", strings.Repeat("-", consoleRuleWidth*2/3))
}

// writeBreakdownSection writes one breakdown with proportional bar charts.
// A nil label function prints keys verbatim; limit 0 prints every entry.
func writeBreakdownSection(w io.Writer, name string, counts map[string]int, pcts map[string]float64, limit int, label func(string) string, barWidth int) {
	writeSectionHeader(w, name)

	sorted := schema.SortedByValue(counts)
	if limit > 0 && len(sorted) > limit {
		sorted = sorted[:limit]
	}
	maxVal := 0
	if len(sorted) > 0 {
		maxVal = sorted[0].Value
	}
	for _, kv := range sorted {
		key := kv.Key
		if label != nil {
			key = label(key)
		}
		fmt.Fprintf(w, "  %-20s %5.1f%% %s\n",
			schema.Truncate(key, 20), pcts[kv.Key], schema.BarChart(kv.Value, maxVal, barWidth))
	}
}

// writeActivityTable renders one period table with colored activity labels.
func writeActivityTable(w io.Writer, summaries []schema.ActivitySummary) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Period", "Commits", "Lines", "Files", "Repos", "Activity"})
	table.Configure(func(tc *tablewriter.Config) {
		tc.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for _, s := range summaries {
		data = append(data, []string{
			s.PeriodLabel,
			strconv.Itoa(s.Commits),
			schema.FormatNumber(s.LinesAdded + s.LinesRemoved),
			schema.FormatNumber(s.FilesChanged),
			strconv.Itoa(s.ReposActive),
			contract.GetColorActivityLabel(s.Commits),
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

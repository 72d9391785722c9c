package outwriter

import (
	"fmt"
	"strings"
	"time"

	"github.com/gitpulse/gitpulse/schema"
)

// MarkdownExporter renders the full activity report as a Markdown document.
type MarkdownExporter struct{}

// Name returns the exporter identifier.
func (MarkdownExporter) Name() string { return "Markdown" }

// Extension returns the default file extension.
func (MarkdownExporter) Extension() string { return ".md" }

// Export renders the Markdown report: overview, breakdowns, activity tables
// and a detailed per-repository section sorted by commit count.
func (MarkdownExporter) Export(data *schema.DashboardData) string {
	stats := data.Summary
	var b strings.Builder

	b.WriteString("# Git Activity Dashboard\n\n")
	fmt.Fprintf(&b, "*Generated on %s*\n\n", time.Now().UTC().Format("2006-01-02 15:04"))

	b.WriteString("## Overview\n\n")
	b.WriteString("| Metric | Value |\n")
	b.WriteString("|--------|-------|\n")
	fmt.Fprintf(&b, "| Repositories | %d |\n", stats.TotalRepos)
	fmt.Fprintf(&b, "| Total Commits | %s |\n", schema.FormatNumberFull(stats.TotalCommits))
	fmt.Fprintf(&b, "| Lines Added | %s |\n", schema.FormatNumberFull(stats.TotalLinesAdded))
	fmt.Fprintf(&b, "| Lines Removed | %s |\n", schema.FormatNumberFull(stats.TotalLinesRemoved))
	fmt.Fprintf(&b, "| Files Changed | %s |\n\n", schema.FormatNumberFull(stats.TotalFilesChanged))

	b.WriteString("## Contribution Breakdown\n\n")
	b.WriteString("| Type | Lines | Percentage |\n")
	b.WriteString("|------|-------|------------|\n")
	for _, kv := range schema.SortedByValue(stats.ContributionTypes) {
		pct := stats.ContributionPercentages[kv.Key]
		fmt.Fprintf(&b, "| %s | %s | %s%% |\n",
			schema.ContributionTypeLabel(kv.Key), schema.FormatNumberFull(kv.Value), fmtPct(pct))
	}
	b.WriteString("\n")

	if len(stats.Languages) > 0 {
		b.WriteString("## Programming Languages\n\n")
		b.WriteString("| Language | Lines | Percentage |\n")
		b.WriteString("|----------|-------|------------|\n")
		for i, kv := range schema.SortedByValue(stats.Languages) {
			if i >= 10 {
				break
			}
			pct := stats.LanguagePercentages[kv.Key]
			fmt.Fprintf(&b, "| %s | %s | %s%% |\n", kv.Key, schema.FormatNumberFull(kv.Value), fmtPct(pct))
		}
		b.WriteString("\n")
	}

	if len(stats.FileExtensions) > 0 {
		b.WriteString("## File Types (by extension)\n\n")
		b.WriteString("| Extension | Lines | Percentage |\n")
		b.WriteString("|-----------|-------|------------|\n")
		for i, kv := range schema.SortedByValue(stats.FileExtensions) {
			if i >= 15 {
				break
			}
			pct := stats.FileExtensionPercents[kv.Key]
			fmt.Fprintf(&b, "| %s | %s | %s%% |\n", kv.Key, schema.FormatNumberFull(kv.Value), fmtPct(pct))
		}
		b.WriteString("\n")
	}

	b.WriteString("## Weekly Activity\n\n")
	b.WriteString("| Week | Commits | Lines Changed | Repos |\n")
	b.WriteString("|------|---------|---------------|-------|\n")
	for _, week := range data.WeeklyActivity {
		fmt.Fprintf(&b, "| %s | %d | %s | %d |\n",
			week.PeriodLabel, week.Commits, schema.FormatNumberFull(week.LinesAdded+week.LinesRemoved), week.ReposActive)
	}
	b.WriteString("\n")

	b.WriteString("## Monthly Activity\n\n")
	b.WriteString("| Month | Commits | Lines Changed | Repos |\n")
	b.WriteString("|-------|---------|---------------|-------|\n")
	for _, month := range data.MonthlyActivity {
		fmt.Fprintf(&b, "| %s | %d | %s | %d |\n",
			month.PeriodLabel, month.Commits, schema.FormatNumberFull(month.LinesAdded+month.LinesRemoved), month.ReposActive)
	}
	b.WriteString("\n")

	b.WriteString("## Repositories (detailed)\n\n")
	for _, repo := range sortedReposByCommits(data.Repositories) {
		fmt.Fprintf(&b, "### %s\n\n", repo.Name)
		if repo.Description != "" {
			fmt.Fprintf(&b, "> %s\n\n", repo.Description)
		}

		fmt.Fprintf(&b, "**Commits:** %d | **Lines:** +%s / -%s\n",
			repo.TotalCommits, schema.FormatNumberFull(repo.TotalLinesAdded), schema.FormatNumberFull(repo.TotalLinesRemoved))
		if repo.FirstCommitDate != nil && repo.LastCommitDate != nil {
			fmt.Fprintf(&b, "**Active:** %s to %s\n",
				repo.FirstCommitDate.Format("2006-01-02"), repo.LastCommitDate.Format("2006-01-02"))
		}
		b.WriteString("\n")

		if len(repo.ContributionTypes) > 0 {
			b.WriteString("**Contribution Breakdown:**\n")
			for _, s := range topShares(repo.ContributionTypes, 5) {
				fmt.Fprintf(&b, "- %s: %.1f%%\n", schema.ContributionTypeLabel(s.key), s.pct)
			}
			b.WriteString("\n")
		}

		if len(repo.Languages) > 0 {
			b.WriteString("**Languages:**\n")
			for _, s := range topShares(repo.Languages, 5) {
				fmt.Fprintf(&b, "- %s: %.1f%%\n", s.key, s.pct)
			}
			b.WriteString("\n")
		}

		if len(repo.FileExtensions) > 0 {
			b.WriteString("**File Types:**\n")
			for _, s := range topShares(repo.FileExtensions, 5) {
				fmt.Fprintf(&b, "- %s: %.1f%%\n", s.key, s.pct)
			}
			b.WriteString("\n")
		}

		b.WriteString("---\n\n")
	}

	return b.String()
}

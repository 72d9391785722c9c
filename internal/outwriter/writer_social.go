package outwriter

import (
	"fmt"
	"strings"

	"github.com/gitpulse/gitpulse/schema"
)

// LinkedInExporter renders a short weekly summary ready to paste into a post.
type LinkedInExporter struct{}

// Name returns the exporter identifier.
func (LinkedInExporter) Name() string { return "LinkedIn" }

// Extension returns the default file extension.
func (LinkedInExporter) Extension() string { return ".txt" }

// Export renders this week's highlights with quality indicators and top languages.
func (LinkedInExporter) Export(data *schema.DashboardData) string {
	stats := data.Summary
	var b strings.Builder

	b.WriteString("My Developer Activity This Week\n\n")

	if len(data.WeeklyActivity) > 0 {
		week := data.WeeklyActivity[0]
		if week.Commits > 0 {
			fmt.Fprintf(&b, "%d commits\n", week.Commits)
			fmt.Fprintf(&b, "%s lines of code\n", schema.FormatNumberFull(week.LinesAdded+week.LinesRemoved))
			fmt.Fprintf(&b, "%d active repos\n\n", week.ReposActive)
		}
	}

	var quality []string
	if pct := stats.ContributionPercentages[string(schema.Tests)]; pct > 0 {
		quality = append(quality, fmt.Sprintf("Tests: %s%%", fmtPct(pct)))
	}
	if pct := stats.ContributionPercentages[string(schema.Documentation)]; pct > 0 {
		quality = append(quality, fmt.Sprintf("Documentation: %s%%", fmtPct(pct)))
	}
	if len(quality) > 0 {
		b.WriteString("Code Quality:\n")
		for _, metric := range quality {
			fmt.Fprintf(&b, "  %s\n", metric)
		}
		b.WriteString("\n")
	}

	if len(stats.Languages) > 0 {
		fmt.Fprintf(&b, "Top Languages: %s\n\n", strings.Join(topKeys(stats.Languages, 3), ", "))
	}

	b.WriteString("#coding #developer #programming #softwareengineering")
	return b.String()
}

// BadgeExporter renders a README-embeddable activity widget.
type BadgeExporter struct{}

// Name returns the exporter identifier.
func (BadgeExporter) Name() string { return "Badge" }

// Extension returns the default file extension.
func (BadgeExporter) Extension() string { return ".md" }

// Export renders the widget as an HTML-comment-wrapped Markdown block so it
// can be spliced into an existing README.
func (BadgeExporter) Export(data *schema.DashboardData) string {
	stats := data.Summary
	var b strings.Builder

	b.WriteString("<!-- Git Activity Dashboard Widget -->\n")
	b.WriteString("<div align=\"center\">\n\n")
	b.WriteString("### Developer Activity\n\n")
	b.WriteString("| Metric | All Time | This Week |\n")
	b.WriteString("|--------|----------|-----------|\n")

	var weekCommits, weekLines, weekRepos int
	if len(data.WeeklyActivity) > 0 {
		week := data.WeeklyActivity[0]
		weekCommits = week.Commits
		weekLines = week.LinesAdded + week.LinesRemoved
		weekRepos = week.ReposActive
	}

	fmt.Fprintf(&b, "| Commits | %s | %d |\n", schema.FormatNumberFull(stats.TotalCommits), weekCommits)
	fmt.Fprintf(&b, "| Lines Changed | %s | %s |\n",
		schema.FormatNumberFull(stats.TotalLinesChanged), schema.FormatNumberFull(weekLines))
	fmt.Fprintf(&b, "| Repositories | %d | %d |\n\n", stats.TotalRepos, weekRepos)

	var badges []string
	if pct := stats.ContributionPercentages[string(schema.Tests)]; pct > 0 {
		badges = append(badges, fmt.Sprintf("Tests: %s%%", fmtPct(pct)))
	}
	if pct := stats.ContributionPercentages[string(schema.Documentation)]; pct > 0 {
		badges = append(badges, fmt.Sprintf("Docs: %s%%", fmtPct(pct)))
	}
	if len(badges) > 0 {
		fmt.Fprintf(&b, "**Code Quality:** %s\n\n", strings.Join(badges, " | "))
	}

	b.WriteString("</div>\n")
	b.WriteString("<!-- End Git Activity Dashboard Widget -->")
	return b.String()
}

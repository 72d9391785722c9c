package outwriter

import (
	"fmt"
	"strings"
	"time"

	"github.com/gitpulse/gitpulse/schema"
)

// PortfolioExporter renders a project portfolio document from the analyzed repos.
type PortfolioExporter struct{}

// Name returns the exporter identifier.
func (PortfolioExporter) Name() string { return "Portfolio" }

// Extension returns the default file extension.
func (PortfolioExporter) Extension() string { return ".md" }

// Export renders the portfolio: summary, skill bars, code quality table and a
// per-project section sorted by commit count.
func (PortfolioExporter) Export(data *schema.DashboardData) string {
	stats := data.Summary
	var b strings.Builder

	b.WriteString("# Project Portfolio\n\n")
	fmt.Fprintf(&b, "*Generated on %s*\n\n", time.Now().UTC().Format("2006-01-02"))

	b.WriteString("## Summary\n\n")
	fmt.Fprintf(&b, "- **Total Projects:** %d\n", stats.TotalRepos)
	fmt.Fprintf(&b, "- **Total Commits:** %s\n", schema.FormatNumberFull(stats.TotalCommits))
	fmt.Fprintf(&b, "- **Total Lines of Code:** %s\n\n", schema.FormatNumberFull(stats.TotalLinesAdded))

	if len(stats.Languages) > 0 {
		b.WriteString("## Technical Skills\n\n")
		for _, s := range topShares(stats.Languages, 10) {
			bar := strings.Repeat("#", int(s.pct/5))
			fmt.Fprintf(&b, "- **%s**: %.1f%% %s\n", s.key, s.pct, bar)
		}
		b.WriteString("\n")
	}

	b.WriteString("## Code Quality Practices\n\n")
	b.WriteString("| Category | Percentage |\n")
	b.WriteString("|----------|------------|\n")
	fmt.Fprintf(&b, "| Production Code | %s%% |\n", fmtPct(stats.ContributionPercentages[string(schema.ProductionCode)]))
	fmt.Fprintf(&b, "| Tests | %s%% |\n", fmtPct(stats.ContributionPercentages[string(schema.Tests)]))
	fmt.Fprintf(&b, "| Documentation | %s%% |\n", fmtPct(stats.ContributionPercentages[string(schema.Documentation)]))
	fmt.Fprintf(&b, "| Infrastructure/DevOps | %s%% |\n\n", fmtPct(stats.ContributionPercentages[string(schema.Infrastructure)]))

	b.WriteString("## Projects\n\n")
	for _, repo := range sortedReposByCommits(data.Repositories) {
		fmt.Fprintf(&b, "### %s\n\n", repo.Name)

		if repo.Description != "" {
			fmt.Fprintf(&b, "%s\n\n", repo.Description)
		}

		if len(repo.Technologies) > 0 {
			fmt.Fprintf(&b, "**Technologies:** %s\n\n", strings.Join(repo.Technologies, ", "))
		}

		b.WriteString("**My Contribution:**\n")
		fmt.Fprintf(&b, "- %d commits\n", repo.TotalCommits)
		fmt.Fprintf(&b, "- %s lines added, %s lines removed\n",
			schema.FormatNumberFull(repo.TotalLinesAdded), schema.FormatNumberFull(repo.TotalLinesRemoved))

		if repo.FirstCommitDate != nil && repo.LastCommitDate != nil {
			days := int(repo.LastCommitDate.Sub(*repo.FirstCommitDate).Hours() / 24)
			if days > 30 {
				fmt.Fprintf(&b, "- Project duration: %d month(s)\n", days/30)
			} else {
				fmt.Fprintf(&b, "- Project duration: %d day(s)\n", days)
			}
		}

		if len(repo.Languages) > 0 {
			fmt.Fprintf(&b, "- Primary languages: %s\n", strings.Join(topKeys(repo.Languages, 3), ", "))
		}

		b.WriteString("\n---\n\n")
	}

	return b.String()
}

package outwriter

import (
	"fmt"
	"io"
	"strings"

	"github.com/gitpulse/gitpulse/internal/contract"
	"github.com/gitpulse/gitpulse/schema"
)

// WriteGitHubStatsResults outputs the account scan, dispatching based on the output format configured.
func WriteGitHubStatsResults(stats *schema.GitHubStats, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, stats)
		}, "Wrote JSON")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeGitHubStatsText(w, stats, cfg)
		}, "Wrote report")
	}
}

// writeGitHubStatsText renders the account-level console summary.
func writeGitHubStatsText(w io.Writer, stats *schema.GitHubStats, cfg *contract.Config) error {
	barWidth := GetMaxBarWidth(cfg)

	totalFiles := 0
	totalBytes := 0
	fileTypeTotals := make(map[string]schema.FileTypeStat)
	for _, repo := range stats.Repos {
		for ext, stat := range repo.FileTypes {
			totalFiles += stat.Count
			agg := fileTypeTotals[ext]
			agg.Count += stat.Count
			agg.Bytes += stat.Bytes
			fileTypeTotals[ext] = agg
		}
	}
	for _, bytes := range stats.Languages {
		totalBytes += bytes
	}

	fmt.Fprintln(w, strings.Repeat("=", consoleRuleWidth))
	fmt.Fprintln(w, "GITHUB REPOSITORY STATISTICS")
	fmt.Fprintln(w, strings.Repeat("=", consoleRuleWidth))

	fmt.Fprintf(w, "\nUser: %s\n", stats.User)
	fmt.Fprintf(w, "Repositories analyzed: %d\n", stats.TotalRepos)
	fmt.Fprintf(w, "Total stars: %s\n", schema.FormatNumberFull(stats.TotalStars))
	fmt.Fprintf(w, "Total files: %s\n", schema.FormatNumberFull(totalFiles))
	fmt.Fprintf(w, "Total code size: %.2f MB\n", float64(totalBytes)/1_000_000)
	fmt.Fprintf(w, "Estimated lines of code: %s\n", schema.FormatNumberFull(stats.EstimatedLines))

	if len(stats.Languages) > 0 {
		writeSectionHeader(w, "LANGUAGES BY SIZE")
		sorted := schema.SortedByValue(stats.Languages)
		if len(sorted) > 15 {
			sorted = sorted[:15]
		}
		maxVal := sorted[0].Value
		for _, kv := range sorted {
			pct := 0.0
			if totalBytes > 0 {
				pct = float64(kv.Value) / float64(totalBytes) * 100
			}
			fmt.Fprintf(w, "  %-20s %5.1f%%  ~%8s LOC  %s\n",
				schema.Truncate(kv.Key, 20), pct,
				schema.FormatNumber(kv.Value/40), schema.BarChart(kv.Value, maxVal, barWidth))
		}
	}

	if len(fileTypeTotals) > 0 {
		writeSectionHeader(w, "FILE TYPES (by extension)")
		counts := make(map[string]int, len(fileTypeTotals))
		for ext, stat := range fileTypeTotals {
			counts[ext] = stat.Count
		}
		sorted := schema.SortedByValue(counts)
		if len(sorted) > 20 {
			sorted = sorted[:20]
		}
		maxVal := sorted[0].Value
		for _, kv := range sorted {
			pct := 0.0
			if totalFiles > 0 {
				pct = float64(kv.Value) / float64(totalFiles) * 100
			}
			fmt.Fprintf(w, "  %-15s %6d files %5.1f%%  %6d KB  %s\n",
				kv.Key, kv.Value, pct, fileTypeTotals[kv.Key].Bytes/1024,
				schema.BarChart(kv.Value, maxVal, barWidth))
		}
	}

	writeSectionHeader(w, "REPOSITORIES")
	shown := 0
	for i := range stats.Repos {
		if shown >= 15 {
			break
		}
		repo := &stats.Repos[i]
		privateBadge := ""
		if repo.Private {
			privateBadge = " [private]"
		}
		lang := "Unknown"
		if len(repo.Languages) > 0 {
			lang = schema.SortedByValue(repo.Languages)[0].Key
		}
		files := 0
		for _, stat := range repo.FileTypes {
			files += stat.Count
		}
		fmt.Fprintf(w, "  %-30s %6d files %8s LOC  %s%s\n",
			schema.Truncate(repo.Name, 30), files,
			schema.FormatNumber(repo.EstimatedLines), lang, privateBadge)
		shown++
	}

	_, err := fmt.Fprintf(w, "\n%s\n", strings.Repeat("=", consoleRuleWidth))
	return err
}

// WriteCloneResults summarizes a clone scan on the console.
func WriteCloneResults(result *schema.CloneResult, cfg *contract.Config) error {
	if cfg.Output == schema.JSONOut {
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, result)
		}, "Wrote JSON")
	}

	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		fmt.Fprintf(w, "\nClone summary: %d cloned, %d existing, %d skipped, %d failed\n",
			len(result.Cloned), len(result.Existing), len(result.Skipped), len(result.Failed))
		for _, name := range result.Skipped {
			fmt.Fprintf(w, "  [skipped] %s\n", name)
		}
		for _, name := range result.Failed {
			fmt.Fprintf(w, "  [failed] %s\n", name)
		}
		return nil
	}, "Wrote report")
}

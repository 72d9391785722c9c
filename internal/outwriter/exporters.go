package outwriter

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/gitpulse/gitpulse/internal/contract"
	"github.com/gitpulse/gitpulse/schema"
)

// Exporter renders dashboard data into a shareable text format.
type Exporter interface {
	// Name identifies the exporter in log messages.
	Name() string

	// Extension is the default file extension for this format.
	Extension() string

	// Export renders the dashboard data to a string.
	Export(data *schema.DashboardData) string
}

// exportEntry binds a format to its exporter and default file name.
type exportEntry struct {
	exporter Exporter
	fileName string
}

// exportRegistry maps every export format to its exporter. The file names
// match what --all-exports writes into the target directory.
var exportRegistry = map[schema.ExportFormat]exportEntry{
	schema.JSONExport:      {JSONExporter{}, "activity.json"},
	schema.MarkdownExport:  {MarkdownExporter{}, "report.md"},
	schema.LinkedInExport:  {LinkedInExporter{}, "linkedin.txt"},
	schema.PortfolioExport: {PortfolioExporter{}, "portfolio.md"},
	schema.BadgeExport:     {BadgeExporter{}, "badge.md"},
}

// WriteExportFiles writes every requested export format to disk. With
// AllExportsDir set, all formats land in that directory; otherwise each
// selected format is written to its default file name in the working directory.
func WriteExportFiles(data *schema.DashboardData, cfg *contract.Config) error {
	if len(cfg.ExportFormats) == 0 {
		return nil
	}

	dir := cfg.AllExportsDir
	if dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create export directory %q: %w", dir, err)
		}
	}

	for _, format := range cfg.ExportFormats {
		entry, ok := exportRegistry[format]
		if !ok {
			return fmt.Errorf("unknown export format %q", format)
		}
		path := filepath.Join(dir, entry.fileName)
		content := entry.exporter.Export(data)
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			return fmt.Errorf("failed to write %s export: %w", entry.exporter.Name(), err)
		}
		if !cfg.Quiet && dir == "" {
			fmt.Printf("%s exported to: %s\n", entry.exporter.Name(), path)
		}
	}

	if !cfg.Quiet && dir != "" {
		fmt.Printf("All exports saved to: %s\n", dir)
	}
	return nil
}

// JSONExporter emits the full dashboard payload as pretty-printed JSON.
type JSONExporter struct{}

// Name returns the exporter identifier.
func (JSONExporter) Name() string { return "JSON" }

// Extension returns the default file extension.
func (JSONExporter) Extension() string { return ".json" }

// Export renders the dashboard data as indented JSON.
func (JSONExporter) Export(data *schema.DashboardData) string {
	out, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return ""
	}
	return string(out)
}

// share is a breakdown key with its percentage of the map total.
type share struct {
	key string
	pct float64
}

// topShares returns the largest entries of a breakdown map with their
// percentage of that map's own total, at most limit entries.
func topShares(m map[string]int, limit int) []share {
	sorted := schema.SortedByValue(m)
	total := 0
	for _, kv := range sorted {
		total += kv.Value
	}
	if total == 0 {
		return nil
	}
	if limit > 0 && len(sorted) > limit {
		sorted = sorted[:limit]
	}
	out := make([]share, 0, len(sorted))
	for _, kv := range sorted {
		out = append(out, share{key: kv.Key, pct: float64(kv.Value) / float64(total) * 100})
	}
	return out
}

// topKeys returns the keys of the largest entries, at most limit.
func topKeys(m map[string]int, limit int) []string {
	sorted := schema.SortedByValue(m)
	if limit > 0 && len(sorted) > limit {
		sorted = sorted[:limit]
	}
	keys := make([]string, 0, len(sorted))
	for _, kv := range sorted {
		keys = append(keys, kv.Key)
	}
	return keys
}

// sortedReposByCommits returns repositories ordered by commit count descending.
func sortedReposByCommits(repos []schema.RepoStats) []schema.RepoStats {
	out := make([]schema.RepoStats, len(repos))
	copy(out, repos)
	sort.SliceStable(out, func(i, j int) bool { return out[i].TotalCommits > out[j].TotalCommits })
	return out
}

package outwriter

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/gitpulse/gitpulse/internal/contract"
	"github.com/gitpulse/gitpulse/internal/parquet"
	"github.com/gitpulse/gitpulse/schema"
)

// WriteDashboardResults outputs the dashboard, dispatching based on the output format configured.
func WriteDashboardResults(data *schema.DashboardData, cadence schema.CadenceStats, cfg *contract.Config, duration time.Duration) error {
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeDashboardJSON(data, cfg); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.ParquetOut:
		if err := writeDashboardParquet(data, cfg); err != nil {
			return fmt.Errorf("error writing Parquet output: %w", err)
		}
	default:
		// Default to the human-readable console report
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeDashboardText(w, data, cadence, cfg, duration)
		}, "Wrote report")
	}
	return nil
}

// writeDashboardJSON handles opening the file and calling the JSON writer.
func writeDashboardJSON(data *schema.DashboardData, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeJSON(w, data)
	}, "Wrote JSON")
}

// writeDashboardParquet writes commit-level and repo-summary Parquet files
// next to the configured output path.
func writeDashboardParquet(data *schema.DashboardData, cfg *contract.Config) error {
	if cfg.OutputFile == "" {
		return errors.New("--output-file is required for parquet output")
	}

	repos := make([]*schema.RepoStats, len(data.Repositories))
	for i := range data.Repositories {
		repos[i] = &data.Repositories[i]
	}

	reposFile := cfg.OutputFile + ".repos.parquet"
	repoRows := parquet.ConvertRepoStats(repos)
	if err := parquet.WriteRepoActivityParquet(repoRows, reposFile); err != nil {
		return fmt.Errorf("failed to write repo summaries: %w", err)
	}

	commitsFile := cfg.OutputFile + ".commits.parquet"
	commitRows := parquet.ConvertCommits(repos)
	if err := parquet.WriteCommitActivityParquet(commitRows, commitsFile); err != nil {
		return fmt.Errorf("failed to write commits: %w", err)
	}

	if !cfg.Quiet {
		fmt.Printf("Exported %d repo summaries to: %s\n", len(repoRows), reposFile)
		fmt.Printf("Exported %d commits to: %s\n", len(commitRows), commitsFile)
	}
	return nil
}

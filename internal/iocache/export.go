package iocache

import (
	"errors"
	"fmt"

	"github.com/gitpulse/gitpulse/internal/parquet"
)

// ExecuteHistoryExport performs the actual export of run history to Parquet files.
func ExecuteHistoryExport(outputFile string) error {
	// Validate that output file is specified
	if outputFile == "" {
		return errors.New("--output-file is required for export command")
	}

	// Get the history store
	store := Manager.GetHistoryStore()
	if store == nil {
		return errors.New("history store is not initialized")
	}

	// Check if there's any data to export
	status, err := store.GetStatus()
	if err != nil {
		return fmt.Errorf("failed to get history status: %w", err)
	}

	if status.TotalRuns == 0 {
		return errors.New("no run history found to export")
	}

	fmt.Printf("Exporting data from %s backend...\n", status.Backend)
	fmt.Printf("Total runs: %d\n", status.TotalRuns)
	fmt.Printf("Total repo records: %d\n", status.TotalReposAnalyzed)

	// Retrieve all runs
	runs, err := store.ListRuns(0)
	if err != nil {
		return fmt.Errorf("failed to retrieve runs: %w", err)
	}

	// Retrieve all per-repo records
	repoRuns, err := store.ListRepoRuns(0)
	if err != nil {
		return fmt.Errorf("failed to retrieve repo runs: %w", err)
	}

	// Convert to Parquet format
	parquetRuns := parquet.ConvertRunRecords(runs)
	parquetRepoRuns := parquet.ConvertRepoRunRecords(repoRuns)

	// Write runs to Parquet
	runsFile := outputFile + ".runs.parquet"
	if err := parquet.WriteRunsParquet(parquetRuns, runsFile); err != nil {
		return fmt.Errorf("failed to write runs: %w", err)
	}
	fmt.Printf("Exported %d runs to: %s\n", len(parquetRuns), runsFile)

	// Write per-repo records to Parquet
	repoRunsFile := outputFile + ".repo_runs.parquet"
	if err := parquet.WriteRepoRunsParquet(parquetRepoRuns, repoRunsFile); err != nil {
		return fmt.Errorf("failed to write repo runs: %w", err)
	}
	fmt.Printf("Exported %d repo records to: %s\n", len(parquetRepoRuns), repoRunsFile)

	fmt.Println("\nExport complete! The Parquet files can be used with:")
	fmt.Println("  - Apache Spark")
	fmt.Println("  - Apache Arrow")
	fmt.Println("  - Pandas (via pyarrow)")
	fmt.Println("  - DuckDB")
	fmt.Println("  - Any other Parquet-compatible tool")

	return nil
}

// Package cmd defines the command-line interface for gitpulse.
package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/gitpulse/gitpulse/internal/contract"
	"github.com/gitpulse/gitpulse/schema"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(githubCmd)
	rootCmd.AddCommand(cacheCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(versionCmd)

	// Add the github subcommands to the parent github command
	githubCmd.AddCommand(githubStatsCmd)
	githubCmd.AddCommand(githubCloneCmd)

	// Add the cache subcommands to the parent cache command
	cacheCmd.AddCommand(cacheClearCmd)
	cacheCmd.AddCommand(cacheStatusCmd)

	// Add the history subcommands to the parent history command
	historyCmd.AddCommand(historyClearCmd)
	historyCmd.AddCommand(historyStatusCmd)
	historyCmd.AddCommand(historyExportCmd)
	historyCmd.AddCommand(historyMigrateCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().StringP("email", "e", "", "Filter commits by author email")
	rootCmd.PersistentFlags().StringP("author", "a", "", "Filter commits by author name")
	rootCmd.PersistentFlags().String("scan", "", "Directory to scan recursively for Git repositories")
	rootCmd.PersistentFlags().Int("depth", schema.DefaultScanDepth, "Maximum depth for the repository scan")
	rootCmd.PersistentFlags().String("since", "", "Only include commits after this date (YYYY-MM-DD, month name, 'last month', or 'N weeks ago')")
	rootCmd.PersistentFlags().String("until", "", "Only include commits before this date")
	rootCmd.PersistentFlags().Int("workers", schema.DefaultWorkers, "Number of concurrent workers")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "Suppress progress output")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or json or parquet")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().String("cache-backend", string(schema.SQLiteBackend), "Cache backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("cache-db-connect", "", "Database connection string for mysql/postgresql (e.g., user:pass@tcp(host:port)/dbname)")
	rootCmd.PersistentFlags().String("history-backend", string(schema.SQLiteBackend), "Run history backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("history-db-connect", "", "Database connection string for run history (must differ from cache-db-connect)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	// Export format flags are shared by analyze and export, so they live on
	// the root command rather than being bound twice.
	rootCmd.PersistentFlags().Bool("markdown", false, "Export a Markdown activity report (report.md)")
	rootCmd.PersistentFlags().Bool("linkedin", false, "Export a LinkedIn-ready weekly summary (linkedin.txt)")
	rootCmd.PersistentFlags().Bool("portfolio", false, "Export a project portfolio page (portfolio.md)")
	rootCmd.PersistentFlags().Bool("badge", false, "Export a README badge snippet (badge.md)")
	rootCmd.PersistentFlags().Bool("json", false, "Export the raw dashboard data (activity.json)")
	rootCmd.PersistentFlags().String("all-exports", "", "Write every export format into this directory")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of githubCmd to Viper
	githubCmd.PersistentFlags().StringP("user", "u", "", "GitHub username (defaults to the authenticated user)")
	githubCmd.PersistentFlags().String("clone-dir", "./github_repos", "Directory to clone repositories into")
	githubCmd.PersistentFlags().Bool("include-forks", false, "Include forked repositories")
	githubCmd.PersistentFlags().Bool("include-archived", false, "Include archived repositories")
	githubCmd.PersistentFlags().Bool("include-private", false, "Include private repositories")
	githubCmd.PersistentFlags().Bool("skip-clone", false, "Never clone; only use repositories already on disk")
	if err := viper.BindPFlags(githubCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding github flags", err)
	}

	// Bind all flags of historyMigrateCmd to Viper
	historyMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(historyMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding history migrate flags", err)
	}
}

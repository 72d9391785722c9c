package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/gitpulse/gitpulse/core"
	"github.com/gitpulse/gitpulse/internal/contract"
	"github.com/gitpulse/gitpulse/internal/iocache"
	"github.com/gitpulse/gitpulse/internal/outwriter"
)

// analyzeSetupWrapper defaults to the current directory when no repositories
// are given and no scan directory is configured.
func analyzeSetupWrapper(cmd *cobra.Command, args []string) error {
	if len(args) == 0 && viper.GetString("scan") == "" {
		args = []string{"."}
	}
	return sharedSetup(rootCtx, cmd, args)
}

// analyzeCmd builds the activity dashboard for local repositories.
var analyzeCmd = &cobra.Command{
	Use:   "analyze [repo-path...]",
	Short: "Analyze Git activity across one or more repositories.",
	Long: `Parse Git history from local repositories and build an activity dashboard.

Aggregates commits, line changes, languages, file types and contribution
focus (production code, tests, documentation, infrastructure) across all
given repositories, then renders a console dashboard with weekly and
monthly activity tables.

Examples:
  # Analyze the current repository
  gitpulse analyze

  # Analyze several repositories for one author
  gitpulse analyze ~/code/api ~/code/web --email me@example.com

  # Discover repositories under a directory
  gitpulse analyze --scan ~/code --depth 2

  # Limit the window and export shareable reports
  gitpulse analyze --since "3 months ago" --markdown --linkedin

  # Write every export format at once
  gitpulse analyze --all-exports ./reports`,
	PreRunE: analyzeSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		start := time.Now()
		analyzer, err := core.ExecuteAnalysis(rootCtx, cfg, contract.NewLocalGitClient(), iocache.Manager)
		if err != nil {
			contract.LogFatal("Cannot run analysis", err)
		}

		data := analyzer.DashboardData()
		cadence := core.Cadence(data.WeeklyActivity)
		if err := outwriter.WriteDashboardResults(&data, cadence, cfg, time.Since(start)); err != nil {
			contract.LogFatal("Cannot write results", err)
		}
		if len(cfg.ExportFormats) > 0 {
			if err := outwriter.WriteExportFiles(&data, cfg); err != nil {
				contract.LogFatal("Cannot write exports", err)
			}
		}
	},
}

// exportCmd runs the analysis and writes export files only.
var exportCmd = &cobra.Command{
	Use:   "export [repo-path...]",
	Short: "Generate shareable reports without the console dashboard.",
	Long: `Run the activity analysis and write the selected export formats.

Formats:
  --markdown   Detailed activity report (report.md)
  --linkedin   Weekly summary for social posts (linkedin.txt)
  --portfolio  Project portfolio page (portfolio.md)
  --badge      README widget snippet (badge.md)
  --json       Raw dashboard data (activity.json)

Use --all-exports DIR to write every format into one directory.

Examples:
  # Portfolio page for all repos under ~/code
  gitpulse export --scan ~/code --portfolio

  # Everything, in one place
  gitpulse export --all-exports ./reports`,
	PreRunE: analyzeSetupWrapper,
	RunE: func(_ *cobra.Command, _ []string) error {
		if len(cfg.ExportFormats) == 0 {
			return fmt.Errorf("no export format selected. Use --markdown, --linkedin, --portfolio, --badge, --json or --all-exports")
		}

		analyzer, err := core.ExecuteAnalysis(rootCtx, cfg, contract.NewLocalGitClient(), iocache.Manager)
		if err != nil {
			return err
		}

		data := analyzer.DashboardData()
		return outwriter.WriteExportFiles(&data, cfg)
	},
}

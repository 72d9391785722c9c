package contract

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gitpulse/gitpulse/schema"
)

// DateTimeFormat is the default date time representation.
var DateTimeFormat = time.RFC3339

// Config holds the runtime configuration for an analysis run.
// This struct remains the "final, validated" config.
type Config struct {
	// Repos are the repositories to analyze, resolved to absolute paths.
	Repos []string

	// ScanDir, when set, is recursively scanned for repositories.
	ScanDir   string
	ScanDepth int

	Author AuthorFilter

	StartTime time.Time
	EndTime   time.Time

	Workers    int
	Quiet      bool
	UseColors  bool
	Width      int // Terminal width override (0 = auto-detect)
	Output     schema.OutputMode
	OutputFile string

	// ExportFormats selects report exporters; AllExportsDir writes every
	// format into one directory.
	ExportFormats []schema.ExportFormat
	AllExportsDir string

	CacheBackend   schema.DatabaseBackend
	CacheDBConnect string // Please use env var as this is plaintext

	HistoryBackend   schema.DatabaseBackend
	HistoryDBConnect string // Please use env var as this is plaintext

	// GitHub options.
	GitHubUser      string
	CloneDir        string
	IncludeForks    bool
	IncludeArchived bool
	IncludePrivate  bool
	SkipClone       bool
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// Set manually from positional args, so no tag.
	RepoArgs []string

	// --- Fields from rootCmd.PersistentFlags() ---
	Email            string `mapstructure:"email"`
	Author           string `mapstructure:"author"`
	Scan             string `mapstructure:"scan"`
	Depth            int    `mapstructure:"depth"`
	Since            string `mapstructure:"since"`
	Until            string `mapstructure:"until"`
	Workers          int    `mapstructure:"workers"`
	Quiet            bool   `mapstructure:"quiet"`
	Color            string `mapstructure:"color"`
	Width            int    `mapstructure:"width"`
	Output           string `mapstructure:"output"`
	OutputFile       string `mapstructure:"output-file"`
	CacheBackend     string `mapstructure:"cache-backend"`
	CacheDBConnect   string `mapstructure:"cache-db-connect"`
	HistoryBackend   string `mapstructure:"history-backend"`
	HistoryDBConnect string `mapstructure:"history-db-connect"`

	// --- Fields from analyzeCmd / exportCmd flags ---
	Markdown   bool   `mapstructure:"markdown"`
	LinkedIn   bool   `mapstructure:"linkedin"`
	Portfolio  bool   `mapstructure:"portfolio"`
	Badge      bool   `mapstructure:"badge"`
	JSON       bool   `mapstructure:"json"`
	AllExports string `mapstructure:"all-exports"`

	// --- Fields from githubCmd flags ---
	User            string `mapstructure:"user"`
	CloneDir        string `mapstructure:"clone-dir"`
	IncludeForks    bool   `mapstructure:"include-forks"`
	IncludeArchived bool   `mapstructure:"include-archived"`
	IncludePrivate  bool   `mapstructure:"include-private"`
	SkipClone       bool   `mapstructure:"skip-clone"`
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and populates the final Config struct.
func ProcessAndValidate(ctx context.Context, cfg *Config, client GitClient, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := processTimeRange(cfg, input); err != nil {
		return err
	}
	if err := validateBackendConfigs(cfg, input); err != nil {
		return err
	}
	processExportFormats(cfg, input)
	processGitHubInputs(cfg, input)
	return resolveRepoPaths(ctx, cfg, client, input)
}

// validateSimpleInputs processes and validates all non-path related fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	cfg.Author = AuthorFilter{Email: input.Email, Name: input.Author}
	cfg.Quiet = input.Quiet
	cfg.Width = input.Width
	cfg.OutputFile = input.OutputFile

	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	if input.Workers <= 0 {
		return fmt.Errorf("workers must be greater than 0 (received %d)", input.Workers)
	}
	cfg.Workers = input.Workers

	if input.Depth <= 0 {
		return fmt.Errorf("depth must be greater than 0 (received %d)", input.Depth)
	}
	cfg.ScanDepth = input.Depth
	cfg.ScanDir = strings.TrimSpace(input.Scan)

	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, json, parquet", input.Output)
	}
	return nil
}

// processTimeRange parses the since/until inputs into the analysis window.
// A whole-month --since with no --until selects that entire month.
func processTimeRange(cfg *Config, input *ConfigRawInput) error {
	now := time.Now()

	if input.Since != "" {
		if start, end, ok := MonthWindow(input.Since, now); ok && input.Until == "" {
			cfg.StartTime = start
			cfg.EndTime = end
		} else {
			t, err := ParseDate(input.Since, now)
			if err != nil {
				return fmt.Errorf("invalid --since: %w", err)
			}
			cfg.StartTime = t
		}
	}
	if input.Until != "" {
		t, err := ParseDate(input.Until, now)
		if err != nil {
			return fmt.Errorf("invalid --until: %w", err)
		}
		cfg.EndTime = t
	}
	if !cfg.StartTime.IsZero() && !cfg.EndTime.IsZero() && cfg.StartTime.After(cfg.EndTime) {
		return fmt.Errorf("start time (%s) cannot be after end time (%s)",
			cfg.StartTime.Format(DateTimeFormat), cfg.EndTime.Format(DateTimeFormat))
	}
	return nil
}

// ValidateDatabaseConnectionString validates the format of database connection
// strings for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("db connection string is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("db connection string is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	}
	return nil
}

// validateBackendConfigs validates cache and history backend configurations.
func validateBackendConfigs(cfg *Config, input *ConfigRawInput) error {
	cfg.CacheBackend = schema.DatabaseBackend(strings.ToLower(input.CacheBackend))
	if _, ok := schema.ValidBackends[cfg.CacheBackend]; !ok {
		return fmt.Errorf("invalid cache backend '%s'. must be sqlite, mysql, postgresql, none", input.CacheBackend)
	}
	cfg.CacheDBConnect = input.CacheDBConnect
	if err := ValidateDatabaseConnectionString(cfg.CacheBackend, cfg.CacheDBConnect); err != nil {
		return err
	}

	cfg.HistoryBackend = schema.DatabaseBackend(strings.ToLower(input.HistoryBackend))
	if _, ok := schema.ValidBackends[cfg.HistoryBackend]; !ok {
		return fmt.Errorf("invalid history backend '%s'. must be sqlite, mysql, postgresql, none", input.HistoryBackend)
	}
	cfg.HistoryDBConnect = input.HistoryDBConnect
	if err := ValidateDatabaseConnectionString(cfg.HistoryBackend, cfg.HistoryDBConnect); err != nil {
		return err
	}

	// Cache and history must not share one SQLite file.
	if cfg.CacheBackend == schema.SQLiteBackend && cfg.HistoryBackend == schema.SQLiteBackend {
		cachePath := cfg.CacheDBConnect
		if cachePath == "" {
			cachePath = GetCacheDBFilePath()
		}
		historyPath := cfg.HistoryDBConnect
		if historyPath == "" {
			historyPath = GetHistoryDBFilePath()
		}
		if cachePath == historyPath {
			return fmt.Errorf("cache and history storage must use different SQLite database files. Both resolve to %q", cachePath)
		}
	}
	return nil
}

// processExportFormats collects the requested export formats.
func processExportFormats(cfg *Config, input *ConfigRawInput) {
	cfg.AllExportsDir = strings.TrimSpace(input.AllExports)
	if cfg.AllExportsDir != "" {
		cfg.ExportFormats = []schema.ExportFormat{
			schema.JSONExport, schema.MarkdownExport, schema.LinkedInExport,
			schema.PortfolioExport, schema.BadgeExport,
		}
		return
	}
	if input.JSON {
		cfg.ExportFormats = append(cfg.ExportFormats, schema.JSONExport)
	}
	if input.Markdown {
		cfg.ExportFormats = append(cfg.ExportFormats, schema.MarkdownExport)
	}
	if input.LinkedIn {
		cfg.ExportFormats = append(cfg.ExportFormats, schema.LinkedInExport)
	}
	if input.Portfolio {
		cfg.ExportFormats = append(cfg.ExportFormats, schema.PortfolioExport)
	}
	if input.Badge {
		cfg.ExportFormats = append(cfg.ExportFormats, schema.BadgeExport)
	}
}

// processGitHubInputs transfers the GitHub scan options.
func processGitHubInputs(cfg *Config, input *ConfigRawInput) {
	cfg.GitHubUser = strings.TrimSpace(input.User)
	cfg.CloneDir = input.CloneDir
	if cfg.CloneDir == "" {
		cfg.CloneDir = "./github_repos"
	}
	cfg.IncludeForks = input.IncludeForks
	cfg.IncludeArchived = input.IncludeArchived
	cfg.IncludePrivate = input.IncludePrivate
	cfg.SkipClone = input.SkipClone
}

// resolveRepoPaths resolves positional repo arguments and the scan directory
// into the final list of repositories to analyze.
func resolveRepoPaths(ctx context.Context, cfg *Config, client GitClient, input *ConfigRawInput) error {
	seen := make(map[string]struct{})
	add := func(path string) {
		if _, ok := seen[path]; !ok {
			seen[path] = struct{}{}
			cfg.Repos = append(cfg.Repos, path)
		}
	}

	for _, arg := range input.RepoArgs {
		abs, err := filepath.Abs(arg)
		if err != nil {
			return err
		}
		if _, err := os.Stat(abs); err != nil {
			return fmt.Errorf("repository path %q does not exist", arg)
		}
		root, err := client.GetRepoRoot(ctx, abs)
		if err != nil {
			return err
		}
		add(root)
	}

	if cfg.ScanDir != "" {
		found, err := FindRepositories(cfg.ScanDir, cfg.ScanDepth)
		if err != nil {
			return fmt.Errorf("scanning %q for repositories: %w", cfg.ScanDir, err)
		}
		for _, r := range found {
			add(r)
		}
	}
	return nil
}

package schema

// Custom string types for type safety.
type (
	// OutputMode represents the format of the output.
	OutputMode string

	// DatabaseBackend represents the database backend for caching and history.
	DatabaseBackend string

	// PeriodKind represents a period grouping strategy for activity summaries.
	PeriodKind string

	// ExportFormat represents a report export format.
	ExportFormat string
)

// All output modes supported.
const (
	TextOut    OutputMode = "text" // default
	JSONOut    OutputMode = "json"
	ParquetOut OutputMode = "parquet"
)

// All database backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// All period kinds supported.
const (
	DailyPeriod     PeriodKind = "daily"
	WeeklyPeriod    PeriodKind = "weekly"
	MonthlyPeriod   PeriodKind = "monthly"
	QuarterlyPeriod PeriodKind = "quarterly"
)

// All export formats supported.
const (
	MarkdownExport  ExportFormat = "markdown"
	LinkedInExport  ExportFormat = "linkedin"
	PortfolioExport ExportFormat = "portfolio"
	BadgeExport     ExportFormat = "badge"
	JSONExport      ExportFormat = "json"
)

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	TextOut:    {},
	JSONOut:    {},
	ParquetOut: {},
}

// ValidBackends lists all valid database backends.
var ValidBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}

// ValidExportFormats lists all valid export formats.
var ValidExportFormats = map[ExportFormat]struct{}{
	MarkdownExport:  {},
	LinkedInExport:  {},
	PortfolioExport: {},
	BadgeExport:     {},
	JSONExport:      {},
}

// Defaults shared across commands.
const (
	// DefaultScanDepth bounds the recursive repository discovery scan.
	DefaultScanDepth = 3

	// Default period counts for the activity views.
	DefaultDailyDays     = 7
	DefaultWeeklyWeeks   = 4
	DefaultMonthlyMonths = 6

	// DefaultWorkers bounds concurrent per-repo analysis.
	DefaultWorkers = 4

	// AppFolder is the per-user state directory under $HOME.
	AppFolder = ".gitpulse"
)

// Package outwriter has output and writer logic.
package outwriter

import (
	"os"
	"time"

	"golang.org/x/term"

	"github.com/gitpulse/gitpulse/internal/contract"
	"github.com/gitpulse/gitpulse/schema"
)

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API for the core logic.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WriteDashboard prints the dashboard using the configured output format.
func (ow *OutWriter) WriteDashboard(data *schema.DashboardData, cadence schema.CadenceStats, cfg *contract.Config, duration time.Duration) error {
	return WriteDashboardResults(data, cadence, cfg, duration)
}

// WriteExports writes the requested report exports to disk.
func (ow *OutWriter) WriteExports(data *schema.DashboardData, cfg *contract.Config) error {
	return WriteExportFiles(data, cfg)
}

// GetMaxBarWidth calculates the width available for console bar charts
// based on terminal width and table configuration.
func GetMaxBarWidth(cfg *contract.Config) int {
	var termWidth int

	// Check for absolute width override from flag/env
	if cfg.Width > 0 {
		termWidth = cfg.Width
	}

	if termWidth == 0 { // Not set by override
		detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || detectedWidth <= 0 {
			// Fallback to conservative default for narrow terminals and CI
			termWidth = 80
		} else {
			termWidth = detectedWidth
		}
	}

	// Reserve space for the label and percentage columns
	available := termWidth - 30
	if available < 10 {
		return 10
	}
	if available > 40 {
		return 40
	}
	return available
}

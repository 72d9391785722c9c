package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
)

// Activity label constants for the console report.
const (
	HighActivity     = "High"
	ModerateActivity = "Moderate"
	LowActivity      = "Low"
	QuietActivity    = "Quiet"
)

// Color variables for console output.
var (
	HighColor     = color.New(color.FgGreen, color.Bold)
	ModerateColor = color.New(color.FgCyan)
	LowColor      = color.New(color.FgYellow)
	QuietColor    = color.New(color.FgHiBlack)
)

// GetPlainActivityLabel buckets a commit count for a period into a label.
func GetPlainActivityLabel(commits int) string {
	switch {
	case commits >= 20:
		return HighActivity
	case commits >= 8:
		return ModerateActivity
	case commits >= 1:
		return LowActivity
	default:
		return QuietActivity
	}
}

// GetColorActivityLabel returns the colored label for console tables.
func GetColorActivityLabel(commits int) string {
	text := GetPlainActivityLabel(commits)
	switch text {
	case HighActivity:
		return HighColor.Sprint(text)
	case ModerateActivity:
		return ModerateColor.Sprint(text)
	case LowActivity:
		return LowColor.Sprint(text)
	default:
		return QuietColor.Sprint(text)
	}
}

// SelectOutputFile returns the appropriate file handle for output.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Warn %s: %v\n", msg, err)
}

// AppDir returns the per-user state directory, creating it if needed.
func AppDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".gitpulse"
	}
	dir := filepath.Join(homeDir, ".gitpulse")
	_ = os.MkdirAll(dir, 0o755)
	return dir
}

// GetCacheDBFilePath returns the path to the SQLite DB file for cache storage.
func GetCacheDBFilePath() string {
	return filepath.Join(AppDir(), "cache.db")
}

// GetHistoryDBFilePath returns the path to the SQLite DB file for run history.
func GetHistoryDBFilePath() string {
	return filepath.Join(AppDir(), "history.db")
}

// ParseBoolString parses a string value into a boolean.
// Accepts "yes", "no", "true", "false", "1", "0" (case-insensitive).
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean string: %s (expected yes/no/true/false/1/0)", s)
	}
}

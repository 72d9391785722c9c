package core

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/gitpulse/gitpulse/schema"
)

// ErrEmptyLog means the git log output had no content to parse.
var ErrEmptyLog = errors.New("git log output is empty")

// ParseOptions controls how the log parser behaves.
type ParseOptions struct {
	// StoreCommits keeps per-commit records on the RepoStats. Required for
	// the period activity views.
	StoreCommits bool

	// LegacyDelimiter accepts pipe-delimited commit lines from older log
	// formats. NUL-delimited input is always detected automatically.
	LegacyDelimiter bool
}

// LogParser turns raw `git log --numstat` output into RepoStats.
type LogParser struct {
	classifier *Classifier
	opts       ParseOptions
}

// NewLogParser creates a parser with the given options.
func NewLogParser(classifier *Classifier, opts ParseOptions) *LogParser {
	return &LogParser{classifier: classifier, opts: opts}
}

// Parse consumes git log output in the format
// `%H%x00%an%x00%ae%x00%aI%x00%s` followed by numstat lines, and aggregates
// it into a RepoStats. Commits with unparseable dates are skipped.
func (p *LogParser) Parse(repoName, repoPath, logOutput string) (*schema.RepoStats, error) {
	if strings.TrimSpace(logOutput) == "" {
		return nil, ErrEmptyLog
	}

	stats := schema.NewRepoStats(repoName, repoPath)

	delimiter := "\x00"
	if p.opts.LegacyDelimiter && !strings.Contains(logOutput, "\x00") {
		delimiter = "|"
	}

	var current *schema.Commit
	for _, line := range strings.Split(logOutput, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if isCommitLine(line, delimiter) {
			if parts := strings.SplitN(line, delimiter, 5); len(parts) == 5 {
				p.finalize(current, stats)
				current = nil

				date, err := time.Parse(time.RFC3339, parts[3])
				if err != nil {
					// Skip commits with invalid dates.
					continue
				}
				if stats.LastCommitHash == "" {
					// git log emits newest first.
					stats.LastCommitHash = parts[0]
				}
				current = &schema.Commit{
					Hash:    parts[0],
					Author:  parts[1],
					Email:   parts[2],
					Date:    date.UTC(),
					Message: parts[4],
				}
				continue
			}
		}

		if current != nil {
			p.parseNumstat(line, current, stats)
		}
	}
	p.finalize(current, stats)

	return stats, nil
}

func isCommitLine(line, delimiter string) bool {
	if delimiter == "\x00" {
		return strings.Contains(line, "\x00")
	}
	return strings.Count(line, "|") >= 4
}

// parseNumstat handles one `added\tremoved\tpath` line. Binary files show
// "-" for both counts and parse as zero.
func (p *LogParser) parseNumstat(line string, commit *schema.Commit, stats *schema.RepoStats) {
	parts := strings.Split(line, "\t")
	if len(parts) != 3 {
		return
	}

	added, _ := strconv.Atoi(parts[0])
	removed, _ := strconv.Atoi(parts[1])
	path := parts[2]
	churn := added + removed

	cls := p.classifier.Classify(path, added, removed)
	if cls.Language != "" {
		stats.Languages[cls.Language] += churn
	}
	stats.ContributionTypes[string(cls.Type)] += churn
	stats.FileExtensions[schema.FileExtension(path)] += churn

	commit.LinesAdded += added
	commit.LinesRemoved += removed
	commit.FilesChanged++

	stats.TotalLinesAdded += added
	stats.TotalLinesRemoved += removed
	stats.TotalFilesChanged++

	if p.opts.StoreCommits {
		commit.Classifications = append(commit.Classifications, cls)
	}
}

// finalize folds a completed commit into the repo stats.
func (p *LogParser) finalize(commit *schema.Commit, stats *schema.RepoStats) {
	if commit == nil {
		return
	}
	if stats.FirstCommitDate == nil || commit.Date.Before(*stats.FirstCommitDate) {
		d := commit.Date
		stats.FirstCommitDate = &d
	}
	if stats.LastCommitDate == nil || commit.Date.After(*stats.LastCommitDate) {
		d := commit.Date
		stats.LastCommitDate = &d
	}
	stats.TotalCommits++
	if p.opts.StoreCommits {
		stats.Commits = append(stats.Commits, *commit)
	}
}

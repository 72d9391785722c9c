package github

import (
	"context"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/gitpulse/gitpulse/internal/contract"
	"github.com/gitpulse/gitpulse/schema"
)

// statsFetchLimit bounds concurrent per-repo API calls.
const statsFetchLimit = 4

// bytesPerLine approximates lines of code from language byte counts.
const bytesPerLine = 40

// noExtensionKey buckets extension-less files in API scan results. The local
// dashboard uses the display form from schema instead.
const noExtensionKey = "no_extension"

// FilterOptions selects which repositories survive the scan.
type FilterOptions struct {
	IncludeForks    bool
	IncludeArchived bool
	IncludePrivate  bool

	// Since/Until filter on the repository's last push time. Zero means open-ended.
	Since time.Time
	Until time.Time
}

// FilterFromConfig derives the repository filter from the runtime config.
func FilterFromConfig(cfg *contract.Config) FilterOptions {
	return FilterOptions{
		IncludeForks:    cfg.IncludeForks,
		IncludeArchived: cfg.IncludeArchived,
		IncludePrivate:  cfg.IncludePrivate,
		Since:           cfg.StartTime,
		Until:           cfg.EndTime,
	}
}

// FilterRepos returns the repositories that pass the filter, plus the names
// of those skipped with the reason appended.
func FilterRepos(repos []schema.GitHubRepo, opts FilterOptions) (kept []schema.GitHubRepo, skipped []string) {
	for _, repo := range repos {
		switch {
		case repo.Fork && !opts.IncludeForks:
			skipped = append(skipped, repo.Name+" (fork)")
		case repo.Archived && !opts.IncludeArchived:
			skipped = append(skipped, repo.Name+" (archived)")
		case repo.Private && !opts.IncludePrivate:
			skipped = append(skipped, repo.Name+" (private)")
		case !inDateRange(repo.PushedAt, opts.Since, opts.Until):
			skipped = append(skipped, repo.Name+" (outside date range)")
		default:
			kept = append(kept, repo)
		}
	}
	return kept, skipped
}

// inDateRange checks the last push against the window. Repositories without
// push metadata are kept.
func inDateRange(pushedAt *time.Time, since, until time.Time) bool {
	if pushedAt == nil {
		return true
	}
	if !since.IsZero() && pushedAt.Before(since) {
		return false
	}
	if !until.IsZero() && !pushedAt.Before(until) {
		return false
	}
	return true
}

// FetchRepoStats fills in language and file-type statistics for each repo
// using API calls only, no cloning. Per-repo fetches run concurrently with a
// bounded errgroup; individual failures degrade to empty stats.
func (c *Client) FetchRepoStats(ctx context.Context, user string, repos []schema.GitHubRepo) ([]schema.GitHubRepo, error) {
	out := make([]schema.GitHubRepo, len(repos))
	copy(out, repos)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(statsFetchLimit)

	var mu sync.Mutex
	for i := range out {
		g.Go(func() error {
			repo := out[i]
			owner := repoOwner(repo.FullName, user)

			languages, _, err := c.rest.Repositories.ListLanguages(ctx, owner, repo.Name)
			if err != nil {
				contract.LogWarn("fetching languages for "+repo.Name, err)
				languages = map[string]int{}
			}

			fileTypes := c.fetchFileTypes(ctx, owner, repo.Name, repo.DefaultBranch)

			totalBytes := 0
			for _, b := range languages {
				totalBytes += b
			}

			mu.Lock()
			out[i].Languages = languages
			out[i].FileTypes = fileTypes
			out[i].EstimatedLines = totalBytes / bytesPerLine
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// fetchFileTypes walks the recursive tree of the default branch and buckets
// blobs by extension. Failures yield an empty map rather than an error.
func (c *Client) fetchFileTypes(ctx context.Context, owner, repo, branch string) map[string]schema.FileTypeStat {
	fileTypes := make(map[string]schema.FileTypeStat)
	if branch == "" {
		return fileTypes
	}

	tree, _, err := c.rest.Git.GetTree(ctx, owner, repo, branch, true)
	if err != nil {
		contract.LogWarn("fetching tree for "+repo, err)
		return fileTypes
	}

	for _, entry := range tree.Entries {
		if entry.GetType() != "blob" {
			continue
		}
		ext := schema.FileExtension(entry.GetPath())
		if ext == schema.NoExtension {
			ext = noExtensionKey
		}
		stat := fileTypes[ext]
		stat.Count++
		stat.Bytes += int64(entry.GetSize())
		fileTypes[ext] = stat
	}
	return fileTypes
}

// BuildStats rolls per-repo results up into the account-level summary.
func BuildStats(user string, repos []schema.GitHubRepo) schema.GitHubStats {
	stats := schema.GitHubStats{
		User:      user,
		Languages: make(map[string]int),
		Repos:     repos,
	}
	for _, repo := range repos {
		stats.TotalRepos++
		stats.TotalStars += repo.Stars
		stats.EstimatedLines += repo.EstimatedLines
		for lang, bytes := range repo.Languages {
			stats.Languages[lang] += bytes
		}
	}

	// Largest repos first so the console summary reads top-down.
	sort.SliceStable(stats.Repos, func(i, j int) bool {
		return stats.Repos[i].EstimatedLines > stats.Repos[j].EstimatedLines
	})
	return stats
}

// PrimaryLanguage returns the language with the most bytes for a repo.
func PrimaryLanguage(repo *schema.GitHubRepo) string {
	if len(repo.Languages) == 0 {
		return "Unknown"
	}
	return schema.SortedByValue(repo.Languages)[0].Key
}

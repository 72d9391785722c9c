package core

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/gitpulse/gitpulse/internal/contract"
	"github.com/gitpulse/gitpulse/schema"
)

// ExecuteAnalysis analyzes all configured repositories with a bounded worker
// pool and returns the populated analyzer. Repositories that fail to analyze
// are skipped with a warning so one broken checkout does not sink the run.
func ExecuteAnalysis(ctx context.Context, cfg *contract.Config, client contract.GitClient, mgr contract.PersistenceManager) (*Analyzer, error) {
	if len(cfg.Repos) == 0 {
		return nil, errors.New("no repositories to analyze. Pass repository paths or use --scan")
	}

	var activity contract.CacheStore
	var history contract.HistoryStore
	if mgr != nil {
		activity = mgr.GetActivityStore()
		history = mgr.GetHistoryStore()
	}

	// Begin a history run before analysis; failure to record is not fatal.
	var runID int64
	if history != nil {
		var err error
		runID, err = history.BeginRun(time.Now(), runConfigParams(cfg))
		if err != nil {
			contract.LogWarn("recording run start", err)
			runID = 0
		}
	}

	repoCh := make(chan string, len(cfg.Repos))
	resultCh := make(chan *schema.RepoStats, len(cfg.Repos))
	var wg sync.WaitGroup

	// Start worker pool
	for range cfg.Workers {
		wg.Go(func() {
			for repoPath := range repoCh {
				rs, err := cachedRepoStats(ctx, cfg, client, activity, repoPath)
				if err != nil {
					contract.LogWarn("skipping "+repoPath, err)
					continue
				}
				resultCh <- rs
			}
		})
	}

	// Send repositories to worker channel
	for _, repoPath := range cfg.Repos {
		repoCh <- repoPath
	}
	close(repoCh)

	// Wait for all workers to finish processing
	wg.Wait()
	close(resultCh)

	results := make([]*schema.RepoStats, 0, len(cfg.Repos))
	for rs := range resultCh {
		results = append(results, rs)
	}

	// Workers complete in arbitrary order; keep output deterministic.
	sort.Slice(results, func(i, j int) bool { return results[i].Name < results[j].Name })

	analyzer := NewAnalyzer(cfg.Author.Email, cfg.Author.Name)
	for _, rs := range results {
		analyzer.AddRepo(*rs)
	}

	// Record per-repo results and finish the history run.
	if history != nil && runID > 0 {
		for _, rs := range results {
			if err := history.RecordRepo(runID, rs); err != nil {
				contract.LogWarn("recording repo "+rs.Name, err)
			}
		}
		if err := history.EndRun(runID, time.Now(), analyzer.TotalStats()); err != nil {
			contract.LogWarn("recording run end", err)
		}
	}

	return analyzer, nil
}

// runConfigParams collects the analysis parameters worth persisting per run.
func runConfigParams(cfg *contract.Config) map[string]any {
	params := map[string]any{
		"repos":   len(cfg.Repos),
		"workers": cfg.Workers,
	}
	if cfg.Author.Email != "" {
		params["email"] = cfg.Author.Email
	}
	if cfg.Author.Name != "" {
		params["author"] = cfg.Author.Name
	}
	if !cfg.StartTime.IsZero() {
		params["since"] = cfg.StartTime.Format(contract.DateTimeFormat)
	}
	if !cfg.EndTime.IsZero() {
		params["until"] = cfg.EndTime.Format(contract.DateTimeFormat)
	}
	return params
}

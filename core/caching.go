package core

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/gitpulse/gitpulse/internal/contract"
	"github.com/gitpulse/gitpulse/schema"
)

// currentCacheVersion defines the version of the cache schema
const currentCacheVersion = 1

// cacheMaxAge is how long a cached repo result stays valid.
const cacheMaxAge = 7 * 24 * time.Hour

// cachedRepoStats returns the repository stats, consulting the activity cache
// before falling back to a fresh git log parse.
func cachedRepoStats(ctx context.Context, cfg *contract.Config, client contract.GitClient, activity contract.CacheStore, repoPath string) (*schema.RepoStats, error) {
	if activity == nil {
		// Fallback to direct computation
		return computeRepoStats(ctx, cfg, client, repoPath)
	}

	key := generateCacheKey(ctx, cfg, client, repoPath)

	// Check for cache hit
	if result := checkCacheHit(activity, key); result != nil {
		return result, nil
	}

	// Cache miss: compute and store
	return computeAndStore(ctx, cfg, client, activity, key, repoPath)
}

// checkCacheHit attempts to retrieve and validate a cached result
func checkCacheHit(activity contract.CacheStore, key string) *schema.RepoStats {
	data, version, ts, err := activity.Get(key)
	if err != nil {
		return nil // Cache miss
	}

	// Validate version and staleness
	if version == currentCacheVersion {
		entryTimestamp := time.Unix(ts, 0)
		if time.Since(entryTimestamp) <= cacheMaxAge {
			var result schema.RepoStats
			if err := json.Unmarshal(data, &result); err == nil {
				return &result // Cache hit
			}
		}
	}

	return nil // Cache miss (stale or version mismatch)
}

// computeAndStore computes the result and stores it in cache
func computeAndStore(ctx context.Context, cfg *contract.Config, client contract.GitClient, activity contract.CacheStore, key, repoPath string) (*schema.RepoStats, error) {
	result, err := computeRepoStats(ctx, cfg, client, repoPath)
	if err != nil {
		return nil, err
	}

	// Store in cache
	if data, err := json.Marshal(result); err == nil {
		_ = activity.Set(key, data, currentCacheVersion, time.Now().Unix())
	}

	return result, nil
}

// computeRepoStats collects the git log for one repository and parses it.
// A repository with no matching commits yields empty stats, not an error.
func computeRepoStats(ctx context.Context, cfg *contract.Config, client contract.GitClient, repoPath string) (*schema.RepoStats, error) {
	repoName := filepath.Base(repoPath)

	logOutput, err := client.GetActivityLog(ctx, repoPath, cfg.Author, cfg.StartTime, cfg.EndTime)
	if err != nil {
		return nil, err
	}

	parser := NewLogParser(NewClassifier(), ParseOptions{StoreCommits: true})
	rs, err := parser.Parse(repoName, repoPath, string(logOutput))
	if errors.Is(err, ErrEmptyLog) {
		return schema.NewRepoStats(repoName, repoPath), nil
	}
	if err != nil {
		return nil, err
	}
	return rs, nil
}

// generateCacheKey creates a unique key based on analysis parameters
func generateCacheKey(ctx context.Context, cfg *contract.Config, client contract.GitClient, repoPath string) string {
	// Include repo hash to invalidate cache when repository state changes
	repoHash, err := client.GetRepoHash(ctx, repoPath)
	if err != nil {
		repoHash = ""
	}

	key := fmt.Sprintf("%s:%s:%s:%d:%d:%s",
		repoPath,
		cfg.Author.Email,
		cfg.Author.Name,
		cfg.StartTime.Unix(),
		cfg.EndTime.Unix(),
		repoHash,
	)
	return fmt.Sprintf("%x", sha256.Sum256([]byte(key)))
}

package github

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	"github.com/gitpulse/gitpulse/internal/contract"
	"github.com/gitpulse/gitpulse/schema"
)

// CloneRepos clones the given repositories into cfg.CloneDir with the local
// git client, skipping checkouts that already exist. With cfg.SkipClone set,
// only existing checkouts are collected. The repositories are expected to be
// pre-filtered.
func (c *Client) CloneRepos(ctx context.Context, client contract.GitClient, repos []schema.GitHubRepo, cfg *contract.Config) (*schema.CloneResult, error) {
	result := &schema.CloneResult{}

	if !cfg.SkipClone {
		if err := os.MkdirAll(cfg.CloneDir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create clone directory %q: %w", cfg.CloneDir, err)
		}
	}

	for _, repo := range repos {
		repoPath := filepath.Join(cfg.CloneDir, repo.Name)

		if isGitCheckout(repoPath) {
			if !cfg.Quiet {
				fmt.Printf("  [exists] %s\n", repo.Name)
			}
			result.Existing = append(result.Existing, repo.Name)
			result.RepoPaths = append(result.RepoPaths, repoPath)
			continue
		}

		if cfg.SkipClone {
			result.Skipped = append(result.Skipped, repo.Name+" (not cloned locally)")
			continue
		}

		if !cfg.Quiet {
			fmt.Printf("  [cloning] %s...\n", repo.Name)
		}
		cloneURL := cloneURLWithToken(repo.CloneURL, c.token)
		if err := client.Clone(ctx, cloneURL, repoPath); err != nil {
			contract.LogWarn("cloning "+repo.Name, err)
			result.Failed = append(result.Failed, repo.Name)
			continue
		}
		result.Cloned = append(result.Cloned, repo.Name)
		result.RepoPaths = append(result.RepoPaths, repoPath)
	}

	return result, nil
}

// isGitCheckout reports whether path holds an existing git working copy.
func isGitCheckout(path string) bool {
	info, err := os.Stat(filepath.Join(path, ".git"))
	return err == nil && info.IsDir()
}

// cloneURLWithToken embeds token credentials into an HTTPS clone URL so
// private repositories clone without an interactive prompt. Non-HTTPS URLs
// and empty tokens pass through untouched.
func cloneURLWithToken(cloneURL, token string) string {
	if token == "" {
		return cloneURL
	}
	u, err := url.Parse(cloneURL)
	if err != nil || u.Scheme != "https" {
		return cloneURL
	}
	u.User = url.UserPassword("x-access-token", token)
	return u.String()
}

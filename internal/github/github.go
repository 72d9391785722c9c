// Package github lists and fetches repository statistics from the GitHub API.
package github

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gofri/go-github-ratelimit/github_ratelimit"
	gh "github.com/google/go-github/v62/github"
	"golang.org/x/oauth2"

	"github.com/gitpulse/gitpulse/schema"
)

// maxRepoPages bounds pagination as a safety limit.
const maxRepoPages = 50

// Client wraps the GitHub REST client with rate-limit-aware transport.
type Client struct {
	rest  *gh.Client
	token string
}

// TokenFromEnv resolves the API token from GITPULSE_GITHUB_TOKEN, falling
// back to the conventional GITHUB_TOKEN.
func TokenFromEnv() string {
	if token := os.Getenv("GITPULSE_GITHUB_TOKEN"); token != "" {
		return token
	}
	return os.Getenv("GITHUB_TOKEN")
}

// NewClient creates a GitHub client. An empty token yields an unauthenticated
// client, which only sees public repositories and has lower rate limits.
func NewClient(token string) (*Client, error) {
	rateLimitWaiter, err := github_ratelimit.NewRateLimitWaiter(nil, github_ratelimit.WithSingleSleepLimit(1*time.Hour, nil))
	if err != nil {
		return nil, fmt.Errorf("failed to create rate limit waiter: %w", err)
	}

	httpClient := &http.Client{Transport: rateLimitWaiter}
	if token != "" {
		httpClient.Transport = &oauth2.Transport{
			Base:   rateLimitWaiter,
			Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token}),
		}
	}

	return &Client{rest: gh.NewClient(httpClient), token: token}, nil
}

// newClientWithRest is used by tests to point the client at a fake server.
func newClientWithRest(rest *gh.Client, token string) *Client {
	return &Client{rest: rest, token: token}
}

// IsAuthenticated reports whether an API token is configured.
func (c *Client) IsAuthenticated() bool {
	return c.token != ""
}

// AuthenticatedUser returns the login of the token's owner.
func (c *Client) AuthenticatedUser(ctx context.Context) (string, error) {
	if c.token == "" {
		return "", fmt.Errorf("no GitHub token configured. Set GITPULSE_GITHUB_TOKEN or pass --user")
	}
	user, _, err := c.rest.Users.Get(ctx, "")
	if err != nil {
		return "", fmt.Errorf("failed to fetch authenticated user: %w", err)
	}
	return user.GetLogin(), nil
}

// ListRepos fetches all repositories for a user, paginating until exhausted.
// An empty user lists the authenticated user's own repositories, which
// includes private ones.
func (c *Client) ListRepos(ctx context.Context, user string) ([]schema.GitHubRepo, error) {
	var all []schema.GitHubRepo

	if user == "" {
		opts := &gh.RepositoryListByAuthenticatedUserOptions{
			Affiliation: "owner",
			Sort:        "updated",
			ListOptions: gh.ListOptions{PerPage: 100},
		}
		for page := 1; page <= maxRepoPages; page++ {
			repos, resp, err := c.rest.Repositories.ListByAuthenticatedUser(ctx, opts)
			if err != nil {
				return nil, fmt.Errorf("failed to list repositories: %w", err)
			}
			all = append(all, convertRepos(repos)...)
			if resp.NextPage == 0 {
				break
			}
			opts.Page = resp.NextPage
		}
		return all, nil
	}

	opts := &gh.RepositoryListByUserOptions{
		Sort:        "updated",
		ListOptions: gh.ListOptions{PerPage: 100},
	}
	for page := 1; page <= maxRepoPages; page++ {
		repos, resp, err := c.rest.Repositories.ListByUser(ctx, user, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to list repositories for %q: %w", user, err)
		}
		all = append(all, convertRepos(repos)...)
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}
	return all, nil
}

// convertRepos maps API repositories onto the wire-independent schema type.
func convertRepos(repos []*gh.Repository) []schema.GitHubRepo {
	out := make([]schema.GitHubRepo, 0, len(repos))
	for _, r := range repos {
		repo := schema.GitHubRepo{
			Name:          r.GetName(),
			FullName:      r.GetFullName(),
			Description:   r.GetDescription(),
			Private:       r.GetPrivate(),
			Fork:          r.GetFork(),
			Archived:      r.GetArchived(),
			Stars:         r.GetStargazersCount(),
			CloneURL:      r.GetCloneURL(),
			DefaultBranch: r.GetDefaultBranch(),
		}
		if ts := r.GetPushedAt(); !ts.IsZero() {
			t := ts.Time
			repo.PushedAt = &t
		}
		out = append(out, repo)
	}
	return out
}

// repoOwner extracts the owner from a full_name like "owner/repo", falling
// back to the given default.
func repoOwner(fullName, fallback string) string {
	if owner, _, ok := strings.Cut(fullName, "/"); ok && owner != "" {
		return owner
	}
	return fallback
}

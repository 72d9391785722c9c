package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/gitpulse/gitpulse/internal/contract"
	"github.com/gitpulse/gitpulse/internal/github"
	"github.com/gitpulse/gitpulse/internal/outwriter"
)

// githubCmd groups the GitHub account scan commands.
var githubCmd = &cobra.Command{
	Use:   "github",
	Short: "Scan a GitHub account's repositories",
	Long: `Scan repositories on GitHub via the REST API.

Authentication uses the GITPULSE_GITHUB_TOKEN or GITHUB_TOKEN environment
variable. A token is required for private repositories and for the
authenticated-user default; public scans of an explicit --user work
without one (subject to lower rate limits).

Forks, archived and private repositories are skipped unless the matching
--include-* flag is set, and --since/--until filter by last push date.

Subcommands:
  stats - Summarize languages, file types and estimated LOC per repository
  clone - Clone the account's repositories for local analysis

Examples:
  # Summarize your own account
  gitpulse github stats

  # Scan another user's public repositories
  gitpulse github stats --user torvalds

  # Mirror repositories locally, then analyze them
  gitpulse github clone --clone-dir ~/code/mirror
  gitpulse analyze --scan ~/code/mirror`,
}

// resolveGitHubUser returns the target login, falling back to the token owner.
func resolveGitHubUser(ctx context.Context, client *github.Client) (string, error) {
	if cfg.GitHubUser != "" {
		return cfg.GitHubUser, nil
	}
	return client.AuthenticatedUser(ctx)
}

// githubStatsCmd summarizes the account's repositories.
var githubStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Summarize languages, file types and code size across an account.",
	Long: `Fetch repository metadata, language bytes and file trees for every
repository in the account and build an aggregate summary.

Reports per repository and account-wide:
- Language distribution by bytes
- File type counts and sizes by extension
- Estimated lines of code (language bytes / 40)
- Star totals

Examples:
  # Your account, text summary
  gitpulse github stats

  # Another account, as JSON
  gitpulse github stats --user octocat --output json --output-file stats.json`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		client, err := github.NewClient(github.TokenFromEnv())
		if err != nil {
			contract.LogFatal("Cannot create GitHub client", err)
		}

		user, err := resolveGitHubUser(rootCtx, client)
		if err != nil {
			contract.LogFatal("Cannot resolve GitHub user", err)
		}

		repos, err := client.ListRepos(rootCtx, cfg.GitHubUser)
		if err != nil {
			contract.LogFatal("Cannot list repositories", err)
		}
		kept, skipped := github.FilterRepos(repos, github.FilterFromConfig(cfg))
		if !cfg.Quiet {
			for _, name := range skipped {
				contract.LogWarn("skipping "+name, nil)
			}
		}

		kept, err = client.FetchRepoStats(rootCtx, user, kept)
		if err != nil {
			contract.LogFatal("Cannot fetch repository stats", err)
		}

		stats := github.BuildStats(user, kept)
		if err := outwriter.WriteGitHubStatsResults(&stats, cfg); err != nil {
			contract.LogFatal("Cannot write results", err)
		}
	},
}

// githubCloneCmd clones the account's repositories to disk.
var githubCloneCmd = &cobra.Command{
	Use:   "clone",
	Short: "Clone an account's repositories for local analysis.",
	Long: `Clone every repository that passes the scan filters into --clone-dir.

Repositories that already have a Git checkout in the target directory are
left untouched. With --skip-clone, nothing is fetched and only existing
checkouts are reported. Private repositories are cloned with the token
injected into the clone URL.

Examples:
  # Mirror your account into the default ./github_repos
  gitpulse github clone

  # Refresh an existing mirror without cloning anything new
  gitpulse github clone --clone-dir ~/code/mirror --skip-clone`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		client, err := github.NewClient(github.TokenFromEnv())
		if err != nil {
			contract.LogFatal("Cannot create GitHub client", err)
		}

		repos, err := client.ListRepos(rootCtx, cfg.GitHubUser)
		if err != nil {
			contract.LogFatal("Cannot list repositories", err)
		}
		kept, skipped := github.FilterRepos(repos, github.FilterFromConfig(cfg))
		if !cfg.Quiet {
			for _, name := range skipped {
				contract.LogWarn("skipping "+name, nil)
			}
		}

		result, err := client.CloneRepos(rootCtx, contract.NewLocalGitClient(), kept, cfg)
		if err != nil {
			contract.LogFatal("Cannot clone repositories", err)
		}
		if err := outwriter.WriteCloneResults(result, cfg); err != nil {
			contract.LogFatal("Cannot write results", err)
		}
	},
}

package schema

import "time"

// GitHubRepo describes a remote repository and the stats fetched for it.
type GitHubRepo struct {
	Name        string     `json:"name"`
	FullName    string     `json:"full_name"`
	Description string     `json:"description,omitempty"`
	Private     bool       `json:"private"`
	Fork        bool       `json:"fork"`
	Archived    bool       `json:"archived"`
	Stars       int        `json:"stars"`
	PushedAt    *time.Time `json:"pushed_at,omitempty"`
	CloneURL    string     `json:"clone_url"`

	// DefaultBranch is needed to fetch the recursive file tree.
	DefaultBranch string `json:"default_branch,omitempty"`

	// Languages maps language name to bytes of code, per the GitHub API.
	Languages map[string]int `json:"languages,omitempty"`

	// EstimatedLines approximates LOC from language bytes.
	EstimatedLines int `json:"estimated_lines"`

	// FileTypes maps file extension to count/bytes from the repo tree.
	FileTypes map[string]FileTypeStat `json:"file_types,omitempty"`
}

// FileTypeStat counts files and bytes for one extension in a repo tree.
type FileTypeStat struct {
	Count int   `json:"count"`
	Bytes int64 `json:"bytes"`
}

// GitHubStats is the cross-repo rollup for a GitHub account.
type GitHubStats struct {
	User           string         `json:"user"`
	TotalRepos     int            `json:"total_repos"`
	TotalStars     int            `json:"total_stars"`
	EstimatedLines int            `json:"estimated_lines"`
	Languages      map[string]int `json:"languages"`
	Repos          []GitHubRepo   `json:"repos"`
}

// CloneResult reports the outcome of cloning a set of repositories.
type CloneResult struct {
	Cloned   []string `json:"cloned"`
	Existing []string `json:"existing"`
	Skipped  []string `json:"skipped"`
	Failed   []string `json:"failed"`

	// RepoPaths are the local checkouts ready for analysis.
	RepoPaths []string `json:"repo_paths"`
}

package contract

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// activityLogFormat is the pretty format consumed by the log parser:
// hash, author name, author email, ISO-8601 author date and subject,
// NUL-delimited so commit subjects with pipes stay parseable.
const activityLogFormat = "%H%x00%an%x00%ae%x00%aI%x00%s"

// LocalGitClient implements the GitClient interface by executing the
// local 'git' binary installed on the machine.
type LocalGitClient struct{}

var _ GitClient = &LocalGitClient{} // Compile-time check

// NewLocalGitClient creates a new instance of the local Git client.
func NewLocalGitClient() *LocalGitClient {
	return &LocalGitClient{}
}

// Run executes a git command and returns its stdout output.
func (c *LocalGitClient) Run(ctx context.Context, repoPath string, args ...string) ([]byte, error) {
	fullArgs := append([]string{"-C", repoPath}, args...)
	cmd := exec.CommandContext(ctx, "git", fullArgs...)
	out, err := cmd.Output()
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		stderr := strings.TrimSpace(string(exitErr.Stderr))
		return nil, fmt.Errorf("git command failed in %q: %s. If this is not a Git repository, verify the path or run 'git init'", repoPath, stderr)
	} else if err != nil {
		return nil, fmt.Errorf("git command failed: %w. Ensure Git is installed and available on your PATH", err)
	}
	return out, nil
}

// GetActivityLog implements the GitClient interface.
func (c *LocalGitClient) GetActivityLog(ctx context.Context, repoPath string, filter AuthorFilter, startTime, endTime time.Time) ([]byte, error) {
	args := []string{
		"log",
		"--format=" + activityLogFormat,
		"--numstat",
		"--no-merges",
	}
	if filter.Email != "" {
		args = append(args, "--author="+filter.Email)
	}
	if filter.Name != "" {
		args = append(args, "--author="+filter.Name)
	}
	if !startTime.IsZero() {
		args = append(args, "--since="+startTime.Format(time.RFC3339))
	}
	if !endTime.IsZero() {
		args = append(args, "--until="+endTime.Format(time.RFC3339))
	}
	return c.Run(ctx, repoPath, args...)
}

// GetRepoHash implements the GitClient interface.
func (c *LocalGitClient) GetRepoHash(ctx context.Context, repoPath string) (string, error) {
	out, err := c.Run(ctx, repoPath, "rev-parse", "HEAD")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}

// GetRepoRoot implements the GitClient interface.
func (c *LocalGitClient) GetRepoRoot(ctx context.Context, contextPath string) (string, error) {
	out, err := c.Run(ctx, contextPath, "rev-parse", "--show-toplevel")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}

// Clone implements the GitClient interface. The clone URL may embed a token
// for private repositories; stderr is suppressed so it never leaks.
func (c *LocalGitClient) Clone(ctx context.Context, cloneURL, targetDir string) error {
	cmd := exec.CommandContext(ctx, "git", "clone", "--quiet", cloneURL, targetDir)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("git clone into %q failed: %w. Ensure Git is installed and the URL is reachable", targetDir, err)
	}
	return nil
}

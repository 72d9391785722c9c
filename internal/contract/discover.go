package contract

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// FindRepositories scans baseDir for git repositories up to maxDepth
// directory levels deep. Hidden directories are skipped and discovered
// repositories are not descended into.
func FindRepositories(baseDir string, maxDepth int) ([]string, error) {
	base, err := filepath.Abs(baseDir)
	if err != nil {
		return nil, err
	}
	if _, err := os.Stat(base); err != nil {
		return nil, err
	}

	var repos []string
	err = filepath.WalkDir(base, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Unreadable subtrees are skipped, not fatal.
			return fs.SkipDir
		}
		if !d.IsDir() {
			return nil
		}
		if path != base && strings.HasPrefix(d.Name(), ".") {
			return fs.SkipDir
		}
		if depthOf(base, path) > maxDepth {
			return fs.SkipDir
		}
		if _, statErr := os.Stat(filepath.Join(path, ".git")); statErr == nil {
			repos = append(repos, path)
			return fs.SkipDir
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(repos)
	return repos, nil
}

func depthOf(base, path string) int {
	rel, err := filepath.Rel(base, path)
	if err != nil || rel == "." {
		return 0
	}
	return strings.Count(rel, string(filepath.Separator)) + 1
}

// IsGitRepo reports whether path contains a .git directory.
func IsGitRepo(path string) bool {
	info, err := os.Stat(filepath.Join(path, ".git"))
	return err == nil && info.IsDir()
}

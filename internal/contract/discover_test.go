package contract

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeRepo(t *testing.T, base string, parts ...string) string {
	t.Helper()
	dir := filepath.Join(append([]string{base}, parts...)...)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, ".git"), 0o755))
	return dir
}

func TestFindRepositories(t *testing.T) {
	base := t.TempDir()
	repoA := makeRepo(t, base, "alpha")
	repoB := makeRepo(t, base, "work", "beta")
	makeRepo(t, base, ".hidden", "gamma")             // hidden dirs are skipped
	nested := makeRepo(t, base, "alpha", "vendor", "dep") // inside repoA, not descended into
	_ = nested

	repos, err := FindRepositories(base, 3)
	require.NoError(t, err)
	assert.Equal(t, []string{repoA, repoB}, repos)
}

func TestFindRepositoriesDepthLimit(t *testing.T) {
	base := t.TempDir()
	makeRepo(t, base, "a", "b", "c", "deep")
	shallow := makeRepo(t, base, "shallow")

	repos, err := FindRepositories(base, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{shallow}, repos)
}

func TestFindRepositoriesMissingBase(t *testing.T) {
	_, err := FindRepositories(filepath.Join(t.TempDir(), "nope"), 2)
	assert.Error(t, err)
}

func TestIsGitRepo(t *testing.T) {
	base := t.TempDir()
	repo := makeRepo(t, base, "proj")
	assert.True(t, IsGitRepo(repo))
	assert.False(t, IsGitRepo(base))
}

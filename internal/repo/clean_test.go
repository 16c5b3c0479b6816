package repo_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhodgson615/gitripper/internal/repo"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestRemoveEmbeddedGit(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ".git", "config"), "[core]")
	writeFile(t, filepath.Join(dir, "vendor", "dep", ".git", "HEAD"), "ref: refs/heads/main")
	writeFile(t, filepath.Join(dir, "src", "main.go"), "package main")
	writeFile(t, filepath.Join(dir, ".github", "workflows", "ci.yml"), "on: push")

	require.NoError(t, repo.RemoveEmbeddedGit(dir, nil))

	_, err := os.Stat(filepath.Join(dir, ".git"))
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(filepath.Join(dir, "vendor", "dep", ".git"))
	assert.True(t, os.IsNotExist(err))

	// Everything that is not a .git directory survives.
	_, err = os.Stat(filepath.Join(dir, "src", "main.go"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, ".github", "workflows", "ci.yml"))
	assert.NoError(t, err)
}

func TestRemoveEmbeddedGit_SparesGitNamedFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "docs", ".git"), "gitdir: elsewhere")

	require.NoError(t, repo.RemoveEmbeddedGit(dir, nil))

	_, err := os.Stat(filepath.Join(dir, "docs", ".git"))
	assert.NoError(t, err)
}

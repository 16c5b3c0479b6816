package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhodgson615/gitripper/internal/domain"
)

func TestPrepareDest(t *testing.T) {
	t.Run("missing destination is fine", func(t *testing.T) {
		dest := filepath.Join(t.TempDir(), "new")
		require.NoError(t, prepareDest(dest, false))
	})

	t.Run("empty destination is fine", func(t *testing.T) {
		dest := t.TempDir()
		require.NoError(t, prepareDest(dest, false))
		_, err := os.Stat(dest)
		assert.NoError(t, err)
	})

	t.Run("non-empty destination refused without force", func(t *testing.T) {
		dest := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dest, "x"), []byte("x"), 0o644))

		err := prepareDest(dest, false)
		assert.ErrorIs(t, err, domain.ErrDestExists)
	})

	t.Run("force removes non-empty destination", func(t *testing.T) {
		dest := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dest, "x"), []byte("x"), 0o644))

		require.NoError(t, prepareDest(dest, true))
		_, err := os.Stat(dest)
		assert.True(t, os.IsNotExist(err))
	})
}

func TestRootCommandMetadata(t *testing.T) {
	assert.Equal(t, "gitripper [url]", rootCmd.Use)
	assert.NotNil(t, rootCmd.PersistentFlags().Lookup("branch"))
	assert.NotNil(t, rootCmd.PersistentFlags().Lookup("force"))
	assert.NotNil(t, rootCmd.PersistentFlags().Lookup("backend"))
}

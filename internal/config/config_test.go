package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/dhodgson615/gitripper/internal/config"
)

func TestParseSize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input   string
		want    int64
		wantErr bool
	}{
		{input: "10MB", want: 10 * 1024 * 1024},
		{input: "1GB", want: 1024 * 1024 * 1024},
		{input: "512KB", want: 512 * 1024},
		{input: "100", want: 100},
		{input: " 10mb ", want: 10 * 1024 * 1024},
		{input: "", wantErr: true},
		{input: "MB", wantErr: true},
		{input: "-5MB", wantErr: true},
		{input: "abcMB", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := config.ParseSize(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	t.Run("fills defaults", func(t *testing.T) {
		cfg := &config.Config{}
		require.NoError(t, cfg.Validate())

		assert.Equal(t, config.DefaultParallelThreshold, cfg.Extract.ParallelThreshold)
		assert.Equal(t, config.DefaultHTTPTimeout, cfg.HTTP.Timeout)
		assert.Equal(t, 0, cfg.Extract.Workers)
	})

	t.Run("rejects unknown backend", func(t *testing.T) {
		cfg := &config.Config{}
		cfg.Git.Backend = "subversion"
		require.Error(t, cfg.Validate())
	})

	t.Run("rejects bad threshold", func(t *testing.T) {
		cfg := &config.Config{}
		cfg.Extract.ParallelThreshold = "lots"
		require.Error(t, cfg.Validate())
	})

	t.Run("clamps negative workers", func(t *testing.T) {
		cfg := &config.Config{}
		cfg.Extract.Workers = -3
		require.NoError(t, cfg.Validate())
		assert.Equal(t, 0, cfg.Extract.Workers)
	})

	t.Run("clamps tiny timeout", func(t *testing.T) {
		cfg := &config.Config{}
		cfg.HTTP.Timeout = time.Millisecond
		require.NoError(t, cfg.Validate())
		assert.Equal(t, config.DefaultHTTPTimeout, cfg.HTTP.Timeout)
	})
}

func TestParallelThresholdBytes(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	assert.Equal(t, int64(10*1024*1024), cfg.ParallelThresholdBytes())

	cfg.Extract.ParallelThreshold = "1KB"
	assert.Equal(t, int64(1024), cfg.ParallelThresholdBytes())
}

func TestWriteDefault(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	path, err := config.WriteDefault()
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var cfg config.Config
	require.NoError(t, yaml.Unmarshal(data, &cfg))
	assert.Equal(t, config.DefaultGitBackend, cfg.Git.Backend)
	assert.Equal(t, config.DefaultParallelThreshold, cfg.Extract.ParallelThreshold)

	// A second call leaves the existing file alone.
	require.NoError(t, os.WriteFile(path, []byte("git:\n  backend: cli\n"), 0o644))
	again, err := config.WriteDefault()
	require.NoError(t, err)
	assert.Equal(t, path, again)

	data, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "cli")
}

func TestConfigDir(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	assert.Equal(t, filepath.Join(home, ".gitripper"), config.ConfigDir())
}

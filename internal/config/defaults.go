package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Default values
const (
	// Git defaults
	DefaultGitBackend = "embedded"

	// Extract defaults
	DefaultParallelThreshold = "10MB"

	// HTTP defaults
	DefaultHTTPTimeout = 60 * time.Second

	// Logging defaults
	DefaultLogLevel  = "info"
	DefaultLogFormat = "pretty"
)

// ConfigDir returns the config directory path
func ConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".gitripper"
	}
	return filepath.Join(home, ".gitripper")
}

// ConfigFilePath returns the config file path
func ConfigFilePath() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}

// Default returns the default configuration
func Default() *Config {
	return &Config{
		Git: GitConfig{
			Backend: DefaultGitBackend,
		},
		Extract: ExtractConfig{
			Workers:           0,
			ParallelThreshold: DefaultParallelThreshold,
		},
		HTTP: HTTPConfig{
			Timeout: DefaultHTTPTimeout,
		},
		Logging: LoggingConfig{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
	}
}

// setDefaults sets default values in viper
func setDefaults(v *viper.Viper) {
	v.SetDefault("git.backend", DefaultGitBackend)
	v.SetDefault("git.author_name", "")
	v.SetDefault("git.author_email", "")

	v.SetDefault("extract.workers", 0)
	v.SetDefault("extract.parallel_threshold", DefaultParallelThreshold)

	v.SetDefault("http.timeout", DefaultHTTPTimeout)

	v.SetDefault("logging.level", DefaultLogLevel)
	v.SetDefault("logging.format", DefaultLogFormat)
}

// EnsureConfigDir creates the config directory if it doesn't exist
func EnsureConfigDir() error {
	return os.MkdirAll(ConfigDir(), 0755)
}

package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Config represents the application configuration
type Config struct {
	Git     GitConfig     `mapstructure:"git" yaml:"git"`
	Extract ExtractConfig `mapstructure:"extract" yaml:"extract"`
	HTTP    HTTPConfig    `mapstructure:"http" yaml:"http"`
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"`
}

// GitConfig contains repository initialization settings
type GitConfig struct {
	Backend     string `mapstructure:"backend" yaml:"backend"` // "embedded" or "cli"
	AuthorName  string `mapstructure:"author_name" yaml:"author_name"`
	AuthorEmail string `mapstructure:"author_email" yaml:"author_email"`
}

// ExtractConfig contains extraction settings
type ExtractConfig struct {
	// Workers bounds the parallel write fan-out; 0 selects the hardware
	// parallelism at runtime
	Workers int `mapstructure:"workers" yaml:"workers"`

	// ParallelThreshold is the total payload size above which writes go
	// parallel, as a human-readable size string like "10MB"
	ParallelThreshold string `mapstructure:"parallel_threshold" yaml:"parallel_threshold"`
}

// HTTPConfig contains GitHub client settings
type HTTPConfig struct {
	Timeout time.Duration `mapstructure:"timeout" yaml:"timeout"`
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// Validate validates the configuration, clamping invalid values to defaults
func (c *Config) Validate() error {
	switch c.Git.Backend {
	case "", "embedded", "cli":
	default:
		return fmt.Errorf("invalid git.backend: %q", c.Git.Backend)
	}

	if c.Extract.Workers < 0 {
		c.Extract.Workers = 0
	}
	if c.Extract.ParallelThreshold == "" {
		c.Extract.ParallelThreshold = DefaultParallelThreshold
	} else {
		if _, err := ParseSize(c.Extract.ParallelThreshold); err != nil {
			return fmt.Errorf("invalid extract.parallel_threshold: %w", err)
		}
	}

	if c.HTTP.Timeout < time.Second {
		c.HTTP.Timeout = DefaultHTTPTimeout
	}

	return nil
}

// ParallelThresholdBytes returns the parsed parallel threshold in bytes
func (c *Config) ParallelThresholdBytes() int64 {
	n, err := ParseSize(c.Extract.ParallelThreshold)
	if err != nil {
		n, _ = ParseSize(DefaultParallelThreshold)
	}
	return n
}

// ParseSize parses a human-readable size string like "10MB" into bytes
func ParseSize(s string) (int64, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" {
		return 0, fmt.Errorf("empty size string")
	}

	var multiplier int64 = 1
	if strings.HasSuffix(s, "GB") {
		multiplier = 1024 * 1024 * 1024
		s = strings.TrimSuffix(s, "GB")
	} else if strings.HasSuffix(s, "MB") {
		multiplier = 1024 * 1024
		s = strings.TrimSuffix(s, "MB")
	} else if strings.HasSuffix(s, "KB") {
		multiplier = 1024
		s = strings.TrimSuffix(s, "KB")
	}

	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("no numeric value in size string")
	}

	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid numeric value: %w", err)
	}

	if n < 0 {
		return 0, fmt.Errorf("negative size not allowed")
	}

	return n * multiplier, nil
}

package config

import (
	"path/filepath"
	"runtime"
	"time"
)

const (
	// DefaultDetectionTimeout bounds a single version command.
	DefaultDetectionTimeout = 5 * time.Second

	// DefaultMaxTreeDepth mirrors dependency.DefaultMaxDepth.
	DefaultMaxTreeDepth = 50

	// DefaultLogLevel is used by CLI commands without --debug.
	DefaultLogLevel = "warn"
)

// GetDefaultConfig returns the configuration used when no config.yaml exists.
func GetDefaultConfig() Config {
	return Config{
		LogLevel: DefaultLogLevel,
		Detection: DetectionConfig{
			Workers: runtime.NumCPU(),
			Timeout: DefaultDetectionTimeout,
		},
		Dependencies: DependencyConfig{
			MaxTreeDepth: DefaultMaxTreeDepth,
		},
	}
}

// ApplyDefaults fills zero values left by a partial config.yaml.
func (c *Config) ApplyDefaults() {
	defaults := GetDefaultConfig()
	if c.LogLevel == "" {
		c.LogLevel = defaults.LogLevel
	}
	if c.Detection.Workers < 1 {
		c.Detection.Workers = defaults.Detection.Workers
	}
	if c.Detection.Timeout <= 0 {
		c.Detection.Timeout = defaults.Detection.Timeout
	}
	if c.Dependencies.MaxTreeDepth < 1 {
		c.Dependencies.MaxTreeDepth = defaults.Dependencies.MaxTreeDepth
	}
}

// EffectiveDownloadPath returns DownloadPath or, when unset, ~/Downloads.
func (c Config) EffectiveDownloadPath() (string, error) {
	if c.DownloadPath != "" {
		return c.DownloadPath, nil
	}
	home, err := osUserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, "Downloads"), nil
}

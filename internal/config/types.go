package config

import "time"

// Config is the content of config.yaml.
//
// Empty strings and zero numbers mean "use the default"; see EffectiveDownloadPath
// and ApplyDefaults.
type Config struct {
	// DownloadPath is where environment exports are written. Defaults to ~/Downloads.
	DownloadPath string `yaml:"downloadPath,omitempty" json:"downloadPath,omitempty"`
	// DefaultEditor is the editor used by "config open". Empty selects the system default.
	DefaultEditor string `yaml:"defaultEditor,omitempty" json:"defaultEditor,omitempty"`
	// LogLevel is the level used when --debug is not given.
	LogLevel string `yaml:"logLevel,omitempty" json:"logLevel,omitempty"`

	Detection    DetectionConfig  `yaml:"detection" json:"detection"`
	Dependencies DependencyConfig `yaml:"dependencies" json:"dependencies"`
}

// DetectionConfig tunes tool detection.
type DetectionConfig struct {
	Workers int           `yaml:"workers,omitempty" json:"workers,omitempty"` // Parallel probes (default: number of CPUs)
	Timeout time.Duration `yaml:"timeout,omitempty" json:"timeout,omitempty"` // Per version command (default: 5s)
}

// DependencyConfig tunes dependency resolution.
type DependencyConfig struct {
	MaxTreeDepth int `yaml:"maxTreeDepth,omitempty" json:"maxTreeDepth,omitempty"` // Tree expansion ceiling (default: 50)
}

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"devenv/pkg/logging"

	"gopkg.in/yaml.v3"
)

const (
	userConfigDir  = ".config/devenv"
	configFileName = "config.yaml"

	// ConfigPathEnv overrides the configuration directory.
	ConfigPathEnv = "DEVENV_CONFIG_PATH"
)

// Replaced in tests.
var osUserHomeDir = os.UserHomeDir

// GetDefaultConfigPath returns ~/.config/devenv.
func GetDefaultConfigPath() (string, error) {
	homeDir, err := osUserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine user config directory: %w", err)
	}
	return filepath.Join(homeDir, userConfigDir), nil
}

// ResolveConfigPath picks the configuration directory: the explicit flag
// value first, then $DEVENV_CONFIG_PATH, then the default.
func ResolveConfigPath(flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	if env := os.Getenv(ConfigPathEnv); env != "" {
		return env, nil
	}
	return GetDefaultConfigPath()
}

// ConfigFilePath returns the path of config.yaml inside configPath.
func ConfigFilePath(configPath string) string {
	return filepath.Join(configPath, configFileName)
}

// LoadConfig loads config.yaml from configPath. A missing file yields the
// defaults; a malformed one is reported as a *ConfigurationError.
func LoadConfig(configPath string) (Config, error) {
	configFilePath := ConfigFilePath(configPath)
	config := GetDefaultConfig()

	data, err := os.ReadFile(configFilePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logging.Debug("ConfigLoader", "No config.yaml found at %s, using defaults", configFilePath)
			return config, nil
		}
		logging.Error("ConfigLoader", err, "Error loading config.yaml from %s", configFilePath)
		return Config{}, NewConfigurationError(configFilePath, ErrorTypeIO, "cannot read configuration file", err)
	}

	if err := yaml.Unmarshal(data, &config); err != nil {
		return Config{}, NewConfigurationError(configFilePath, ErrorTypeParse, "malformed configuration file", err)
	}
	config.ApplyDefaults()

	logging.Debug("ConfigLoader", "Loaded configuration from %s", configFilePath)
	return config, nil
}

// SaveConfig writes config to configPath/config.yaml, creating the directory.
func SaveConfig(configPath string, config Config) error {
	if err := os.MkdirAll(configPath, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", configPath, err)
	}

	data, err := yaml.Marshal(&config)
	if err != nil {
		return fmt.Errorf("failed to encode configuration: %w", err)
	}

	configFilePath := ConfigFilePath(configPath)
	if err := os.WriteFile(configFilePath, data, 0644); err != nil {
		return fmt.Errorf("failed to write file %s: %w", configFilePath, err)
	}

	logging.Info("ConfigLoader", "Saved configuration to %s", configFilePath)
	return nil
}

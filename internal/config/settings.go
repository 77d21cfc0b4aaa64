package config

import (
	"fmt"
	"sort"
	"strconv"
	"time"
)

// setting binds a dotted key such as "detection.workers" to a Config field.
type setting struct {
	description string
	get         func(c *Config) string
	set         func(c *Config, value string) error
}

var settings = map[string]setting{
	"downloadPath": {
		description: "Directory for environment exports (default ~/Downloads)",
		get:         func(c *Config) string { return c.DownloadPath },
		set: func(c *Config, value string) error {
			value = NormalizePath(value)
			if value != "" {
				if err := ValidateDownloadPath(value); err != nil {
					return err
				}
			}
			c.DownloadPath = value
			return nil
		},
	},
	"defaultEditor": {
		description: "Editor used to open configuration files (default: system handler)",
		get:         func(c *Config) string { return c.DefaultEditor },
		set: func(c *Config, value string) error {
			value = NormalizePath(value)
			if value != "" {
				if err := ValidateEditorPath(value); err != nil {
					return err
				}
			}
			c.DefaultEditor = value
			return nil
		},
	},
	"logLevel": {
		description: "Log level without --debug: debug, info, warn or error",
		get:         func(c *Config) string { return c.LogLevel },
		set: func(c *Config, value string) error {
			if err := ValidateOneOf("logLevel", value, []string{"debug", "info", "warn", "error"}); err != nil {
				return err
			}
			c.LogLevel = value
			return nil
		},
	},
	"detection.workers": {
		description: "Number of tools probed in parallel",
		get:         func(c *Config) string { return strconv.Itoa(c.Detection.Workers) },
		set: func(c *Config, value string) error {
			n, err := strconv.Atoi(value)
			if err != nil || n < 1 {
				return ValidationError{Field: "detection.workers", Value: value, Message: "must be a positive integer"}
			}
			c.Detection.Workers = n
			return nil
		},
	},
	"detection.timeout": {
		description: "Timeout for a single version command, e.g. 5s",
		get:         func(c *Config) string { return c.Detection.Timeout.String() },
		set: func(c *Config, value string) error {
			d, err := time.ParseDuration(value)
			if err != nil || d <= 0 {
				return ValidationError{Field: "detection.timeout", Value: value, Message: "must be a positive duration such as 5s"}
			}
			c.Detection.Timeout = d
			return nil
		},
	},
	"dependencies.maxTreeDepth": {
		description: "Maximum depth of dependency trees",
		get:         func(c *Config) string { return strconv.Itoa(c.Dependencies.MaxTreeDepth) },
		set: func(c *Config, value string) error {
			n, err := strconv.Atoi(value)
			if err != nil || n < 1 || n > maxTreeDepthLimit {
				return ValidationError{Field: "dependencies.maxTreeDepth", Value: value, Message: fmt.Sprintf("must be an integer between 1 and %d", maxTreeDepthLimit)}
			}
			c.Dependencies.MaxTreeDepth = n
			return nil
		},
	},
}

// SettingKeys returns all keys accepted by Get and Set, sorted.
func SettingKeys() []string {
	keys := make([]string, 0, len(settings))
	for k := range settings {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// SettingDescription returns the help text of key.
func SettingDescription(key string) string {
	return settings[key].description
}

// Get returns the value of key as a string.
func (c *Config) Get(key string) (string, error) {
	s, ok := settings[key]
	if !ok {
		return "", fmt.Errorf("unknown setting %q", key)
	}
	return s.get(c), nil
}

// Set validates value and assigns it to key.
func (c *Config) Set(key, value string) error {
	s, ok := settings[key]
	if !ok {
		return fmt.Errorf("unknown setting %q", key)
	}
	return s.set(c, value)
}

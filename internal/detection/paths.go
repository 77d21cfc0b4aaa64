package detection

import (
	"fmt"
	"os"
	"strings"
)

func homeDir() string {
	if home := os.Getenv("HOME"); home != "" {
		return home
	}
	home, _ := os.UserHomeDir()
	return home
}

// ExpandPath expands a leading "~/" and every "$HOME" in path.
func ExpandPath(path string) string {
	home := homeDir()
	if home == "" {
		return path
	}
	if path == "~" {
		return home
	}
	if strings.HasPrefix(path, "~/") {
		path = home + path[1:]
	}
	return strings.ReplaceAll(path, "$HOME", home)
}

// ReadConfigFile returns the content of a configuration file given as in a
// template, e.g. "~/.config/fish/config.fish".
func ReadConfigFile(path string) (string, error) {
	data, err := os.ReadFile(ExpandPath(path))
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return string(data), nil
}

func checkConfigFile(path string) ConfigFileStatus {
	status := ConfigFileStatus{Path: path}
	expanded := ExpandPath(path)

	info, err := os.Stat(expanded)
	if err != nil {
		return status
	}
	status.Exists = true
	if info.IsDir() {
		return status
	}

	f, err := os.Open(expanded)
	if err == nil {
		status.CanRead = true
		f.Close()
	}
	return status
}

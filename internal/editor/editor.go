// Package editor opens files in the configured editor or the system default
// application.
package editor

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"
)

var (
	goos    = runtime.GOOS
	startFn = func(cmd *exec.Cmd) error { return cmd.Start() }
)

// Command returns the program and arguments that open file on goos. When
// editorPath is empty the platform's default opener is used.
func Command(goos, file, editorPath string) (string, []string, error) {
	if editorPath != "" {
		if goos == "darwin" {
			return "open", []string{"-a", editorPath, file}, nil
		}
		return editorPath, []string{file}, nil
	}

	switch goos {
	case "darwin":
		return "open", []string{file}, nil
	case "linux", "freebsd", "openbsd", "netbsd":
		return "xdg-open", []string{file}, nil
	case "windows":
		return "cmd", []string{"/C", "start", "", file}, nil
	default:
		return "", nil, fmt.Errorf("unsupported platform: %s", goos)
	}
}

// Open opens file with editorPath, or with the system default when
// editorPath is empty. It does not wait for the editor to exit.
func Open(file, editorPath string) error {
	if editorPath != "" {
		if _, err := os.Stat(editorPath); err != nil {
			return fmt.Errorf("editor not found: %s", editorPath)
		}
	}

	name, args, err := Command(goos, file, editorPath)
	if err != nil {
		return err
	}

	if err := startFn(exec.Command(name, args...)); err != nil {
		return fmt.Errorf("failed to open %s: %w", file, err)
	}
	return nil
}

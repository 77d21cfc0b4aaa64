package installer

import (
	"errors"
	"fmt"
)

var (
	// ErrBrewNotFound is returned when the brew executable is not on PATH.
	ErrBrewNotFound = errors.New("brew not found on PATH, install Homebrew from https://brew.sh")

	// ErrInstallFailed matches every *InstallError.
	ErrInstallFailed = errors.New("installation failed")

	// ErrNoInstallMethod is returned when a tool has no supported install method.
	ErrNoInstallMethod = errors.New("no supported install method")
)

// CommandError describes a command that exited unsuccessfully.
type CommandError struct {
	Command  string
	ExitCode int
	Stderr   string
}

func (e *CommandError) Error() string {
	if e.ExitCode < 0 {
		return fmt.Sprintf("command terminated by signal: %s", e.Command)
	}
	return fmt.Sprintf("command failed with exit code %d: %s", e.ExitCode, e.Command)
}

// InstallError wraps the failure of a single tool.
type InstallError struct {
	ToolID string
	Err    error
}

func (e *InstallError) Error() string {
	return fmt.Sprintf("failed to install %s: %v", e.ToolID, e.Err)
}

func (e *InstallError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrInstallFailed) true for any InstallError.
func (e *InstallError) Is(target error) bool {
	return target == ErrInstallFailed
}

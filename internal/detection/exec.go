package detection

import (
	"bytes"
	"context"
	"os/exec"
	"time"
)

// waitDelay bounds how long a probe's output is read after it was killed or
// exited.
const waitDelay = time.Second

// CommandRunner runs name with args and returns both output streams. A
// non-nil error does not mean the output is useless: plenty of tools print
// their version and exit non-zero.
type CommandRunner func(ctx context.Context, name string, args ...string) (stdout, stderr []byte, err error)

// CaskLister returns the names of the installed Homebrew casks.
type CaskLister func(ctx context.Context) ([]string, error)

// LookPathFunc resolves an executable name to a path.
type LookPathFunc func(file string) (string, error)

// ExecRunner is the CommandRunner backed by os/exec.
func ExecRunner(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	cmd.WaitDelay = waitDelay
	err := cmd.Run()
	return stdout.Bytes(), stderr.Bytes(), err
}

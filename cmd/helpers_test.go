package cmd

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"devenv/internal/detection"
	"devenv/internal/installer"
)

// resetFlags restores every flag of c and its subcommands to its default so
// that one test's flags do not leak into the next.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

// executeCommand runs the root command with args against configPath.
func executeCommand(t *testing.T, configPath string, args ...string) (string, string, error) {
	t.Helper()
	resetFlags(rootCmd)

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetIn(bytes.NewReader(nil))
	rootCmd.SetArgs(append(args, "--config-path", configPath, "--quiet"))
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetIn(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

// fakeHost makes detection see only the given executables, each reporting
// version 1.2.3.
func fakeHost(t *testing.T, executables ...string) {
	t.Helper()
	onPath := make(map[string]bool)
	for _, e := range executables {
		onPath[e] = true
	}
	lookPath := func(file string) (string, error) {
		if onPath[file] {
			return "/usr/local/bin/" + file, nil
		}
		return "", errors.New("executable file not found in $PATH")
	}
	run := func(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
		return []byte(filepath.Base(name) + " 1.2.3\n"), nil, nil
	}

	previous := detectorOptions
	detectorOptions = []detection.Option{
		detection.WithLookPath(lookPath),
		detection.WithRunner(run),
		detection.WithCaskLister(nil),
	}
	t.Cleanup(func() { detectorOptions = previous })
}

// fakeCasks makes detection see the given Homebrew casks. Call it after
// fakeHost.
func fakeCasks(t *testing.T, casks ...string) {
	t.Helper()
	previous := detectorOptions
	detectorOptions = append(slices.Clone(previous), detection.WithCaskLister(func(context.Context) ([]string, error) {
		return casks, nil
	}))
	t.Cleanup(func() { detectorOptions = previous })
}

// fakeInstaller records install commands instead of running them.
func fakeInstaller(t *testing.T, failing string) *[]string {
	t.Helper()
	var commands []string
	run := func(ctx context.Context, onLine func(string), name string, args ...string) error {
		cmd := name
		for _, a := range args {
			cmd += " " + a
		}
		commands = append(commands, cmd)
		onLine("==> " + cmd)
		if cmd == failing {
			return &installer.CommandError{Command: cmd, ExitCode: 1, Stderr: "Error: no bottle available"}
		}
		return nil
	}
	lookPath := func(file string) (string, error) {
		if file == "brew" {
			return "/opt/homebrew/bin/brew", nil
		}
		return "", errors.New("not found")
	}

	previous := installerOptions
	installerOptions = []installer.Option{installer.WithRunner(run), installer.WithLookPath(lookPath)}
	t.Cleanup(func() { installerOptions = previous })
	return &commands
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

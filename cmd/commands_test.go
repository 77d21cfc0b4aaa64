package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"devenv/internal/dependency"
	"devenv/internal/installer"
)

const cyclicTemplates = `
- id: alpha
  name: Alpha
  executable: alpha
  dependencies: [beta]
- id: beta
  name: Beta
  executable: beta
  dependencies: [alpha]
`

const ripgrepTemplate = `
id: ripgrep
name: ripgrep
executable: rg
installMethods:
  - type: brew
    brewFormulaName: ripgrep
dependencies: [brew]
`

func TestGetExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"unknown tool", &dependency.UnknownToolError{ID: "nope"}, ExitCodeUnknownTool},
		{"wrapped unknown tool", fmt.Errorf("resolve: %w", &dependency.UnknownToolError{ID: "nope"}), ExitCodeUnknownTool},
		{"cycle", dependency.ErrCircularDependency, ExitCodeCircularDependency},
		{"install failed", &installer.InstallError{ToolID: "uv", Err: errors.New("exit 1")}, ExitCodeInstallFailed},
		{"other", errors.New("boom"), ExitCodeError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, getExitCode(tt.err))
		})
	}
}

func TestOrderCommand(t *testing.T) {
	stdout, _, err := executeCommand(t, t.TempDir(), "order", "uv", "python", "-o", "json")
	require.NoError(t, err)
	assert.JSONEq(t, `{"order": ["python", "uv"]}`, stdout)
}

func TestOrderCommand_Table(t *testing.T) {
	stdout, _, err := executeCommand(t, t.TempDir(), "order", "n", "node")
	require.NoError(t, err)
	assert.Equal(t, "STEP   ID     NAME\n1      node   Node.js\n2      n      n\n", stdout)
}

func TestOrderCommand_UnknownTool(t *testing.T) {
	_, _, err := executeCommand(t, t.TempDir(), "order", "uv", "does-not-exist")
	require.Error(t, err)
	assert.Equal(t, ExitCodeUnknownTool, getExitCode(err))
}

func TestOrderCommand_InvalidOutputFormat(t *testing.T) {
	_, _, err := executeCommand(t, t.TempDir(), "order", "uv", "-o", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported output format")
}

func TestCustomAddAndCycle(t *testing.T) {
	configPath := t.TempDir()
	file := writeFile(t, t.TempDir(), "cycle.yaml", cyclicTemplates)

	_, _, err := executeCommand(t, configPath, "custom", "add", "-f", file)
	require.NoError(t, err)

	stdout, _, err := executeCommand(t, configPath, "custom", "list", "-o", "json")
	require.NoError(t, err)
	var customs []map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(stdout), &customs))
	assert.Len(t, customs, 2)

	_, _, err = executeCommand(t, configPath, "order", "alpha", "beta")
	require.Error(t, err)
	assert.True(t, dependency.IsCircularDependency(err))
	assert.Equal(t, ExitCodeCircularDependency, getExitCode(err))

	_, _, err = executeCommand(t, configPath, "custom", "remove", "alpha", "beta")
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(configPath, "tools", "alpha.yaml"))
	assert.True(t, os.IsNotExist(err))
}

func TestCustomAdd_RejectsBuiltin(t *testing.T) {
	file := writeFile(t, t.TempDir(), "node.yaml", "id: node\nname: My Node\nexecutable: node\n")
	_, _, err := executeCommand(t, t.TempDir(), "custom", "add", "-f", file)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "built-in")
}

func TestCustomRemove_Builtin(t *testing.T) {
	_, _, err := executeCommand(t, t.TempDir(), "custom", "remove", "node")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot modify built-in template")
}

func TestDependentsCommand(t *testing.T) {
	stdout, _, err := executeCommand(t, t.TempDir(), "dependents", "python", "-o", "json")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id": "uv", "name": "uv"}]`, stdout)

	stdout, _, err = executeCommand(t, t.TempDir(), "dependents", "claude", "-o", "json")
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, stdout)
}

func TestTreeCommand(t *testing.T) {
	fakeHost(t, "python3")

	stdout, _, err := executeCommand(t, t.TempDir(), "tree", "uv", "-o", "json")
	require.NoError(t, err)

	var tree dependency.Tree
	require.NoError(t, json.Unmarshal([]byte(stdout), &tree))
	assert.Equal(t, "uv", tree.Root.ToolID)
	assert.False(t, tree.Root.Installed)
	require.Len(t, tree.Root.Children, 1)
	assert.Equal(t, "python", tree.Root.Children[0].ToolID)
	assert.True(t, tree.Root.Children[0].Installed)
	assert.Equal(t, 2, tree.TotalTools)
	assert.Equal(t, 1, tree.InstalledCount)
	assert.Equal(t, 1, tree.MissingCount)
}

func TestTreeCommand_UnknownTool(t *testing.T) {
	fakeHost(t)
	_, _, err := executeCommand(t, t.TempDir(), "tree", "nope")
	require.Error(t, err)
	assert.Equal(t, ExitCodeUnknownTool, getExitCode(err))
}

func TestListCommand_Filter(t *testing.T) {
	fakeHost(t, "node")

	stdout, _, err := executeCommand(t, t.TempDir(), "list", "--filter", "n*", "-o", "json")
	require.NoError(t, err)

	var rows []toolRow
	require.NoError(t, json.Unmarshal([]byte(stdout), &rows))
	ids := make([]string, 0, len(rows))
	for _, r := range rows {
		ids = append(ids, r.ID)
	}
	assert.Equal(t, []string{"node", "n", "nvim"}, ids)
	assert.True(t, rows[0].Installed)
	assert.Equal(t, "1.2.3", rows[0].Version)
	assert.False(t, rows[1].Installed)
}

func TestListCommand_MissingOnly(t *testing.T) {
	fakeHost(t, "node")

	stdout, _, err := executeCommand(t, t.TempDir(), "list", "--filter", "n*", "--missing", "-o", "json")
	require.NoError(t, err)

	var rows []toolRow
	require.NoError(t, json.Unmarshal([]byte(stdout), &rows))
	require.Len(t, rows, 2)
	assert.Equal(t, "n", rows[0].ID)
	assert.Equal(t, "nvim", rows[1].ID)
}

func TestListCommand_CaskInstalled(t *testing.T) {
	fakeHost(t, "brew")
	fakeCasks(t, "wezterm", "aerospace")

	stdout, _, err := executeCommand(t, t.TempDir(), "list", "--installed", "-o", "json")
	require.NoError(t, err)

	var rows []toolRow
	require.NoError(t, json.Unmarshal([]byte(stdout), &rows))
	ids := make([]string, 0, len(rows))
	for _, r := range rows {
		ids = append(ids, r.ID)
	}
	assert.ElementsMatch(t, []string{"brew", "aerospace", "wezterm"}, ids)
}

func TestMatchesWildcard(t *testing.T) {
	tests := []struct {
		input    string
		pattern  string
		expected bool
	}{
		{"claude-code", "", true},
		{"claude-code", "claude-code", true},
		{"claude-code", "claude*", true},
		{"codex", "claude*", false},
		{"tree-sitter", "*-sitter", true},
		{"n", "?", true},
		{"uv", "?", false},
		{"uv", "[", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, matchesWildcard(tt.input, tt.pattern), "%s ~ %q", tt.input, tt.pattern)
	}
}

func TestInstallCommand_DryRun(t *testing.T) {
	fakeHost(t, "brew")

	stdout, _, err := executeCommand(t, t.TempDir(), "install", "aerospace", "--dry-run", "-o", "json")
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"target": "aerospace",
		"order": ["brew", "aerospace"],
		"install": ["aerospace"],
		"skipped": ["brew"]
	}`, stdout)
}

func TestInstallCommand(t *testing.T) {
	fakeHost(t, "brew")
	commands := fakeInstaller(t, "")

	_, _, err := executeCommand(t, t.TempDir(), "install", "aerospace", "--yes")
	require.NoError(t, err)
	assert.Equal(t, []string{
		"brew tap nikitabobko/tap",
		"brew install --cask aerospace",
	}, *commands)
}

func TestInstallCommand_StopsAtFirstFailure(t *testing.T) {
	fakeHost(t)
	commands := fakeInstaller(t, "brew install python")

	_, stderr, err := executeCommand(t, t.TempDir(), "install", "uv", "--yes")
	require.Error(t, err)
	assert.True(t, errors.Is(err, installer.ErrInstallFailed))
	assert.Equal(t, ExitCodeInstallFailed, getExitCode(err))
	assert.Equal(t, []string{"brew install python"}, *commands)
	assert.Contains(t, stderr, "python")
}

func TestInstallCommand_AlreadyInstalled(t *testing.T) {
	fakeHost(t, "python3", "uv")
	commands := fakeInstaller(t, "")

	_, _, err := executeCommand(t, t.TempDir(), "install", "uv", "--yes")
	require.NoError(t, err)
	assert.Empty(t, *commands)
}

func TestSettingsCommands(t *testing.T) {
	configPath := t.TempDir()

	_, _, err := executeCommand(t, configPath, "settings", "set", "detection.workers", "3")
	require.NoError(t, err)

	stdout, _, err := executeCommand(t, configPath, "settings", "get", "detection.workers")
	require.NoError(t, err)
	assert.Equal(t, "3\n", stdout)

	_, _, err = executeCommand(t, configPath, "settings", "set", "detection.workers", "0")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must be a positive integer")

	_, _, err = executeCommand(t, configPath, "settings", "set", "nope", "1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown setting "nope"`)

	_, _, err = executeCommand(t, configPath, "settings", "reset")
	require.NoError(t, err)

	stdout, _, err = executeCommand(t, configPath, "settings", "get", "-o", "json")
	require.NoError(t, err)
	var values map[string]string
	require.NoError(t, json.Unmarshal([]byte(stdout), &values))
	assert.Equal(t, "5s", values["detection.timeout"])
	assert.Equal(t, "50", values["dependencies.maxTreeDepth"])
}

func TestConfigShow_MalformedConfig(t *testing.T) {
	configPath := t.TempDir()
	writeFile(t, configPath, "config.yaml", "detection: [")

	_, _, err := executeCommand(t, configPath, "config", "show")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "malformed configuration file")
}

func TestConfigCat(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	writeFile(t, home, ".tmux.conf", "set -g mouse on\n")

	stdout, _, err := executeCommand(t, t.TempDir(), "config", "cat", "tmux")
	require.NoError(t, err)
	assert.Equal(t, "set -g mouse on\n", stdout)

	_, _, err = executeCommand(t, t.TempDir(), "config", "cat", "tmux", "2")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid index")
}

func TestEnvExportImport(t *testing.T) {
	fakeHost(t, "brew")

	source := t.TempDir()
	file := writeFile(t, t.TempDir(), "rg.yaml", ripgrepTemplate)
	_, _, err := executeCommand(t, source, "custom", "add", "-f", file)
	require.NoError(t, err)

	exportDir := t.TempDir()
	_, _, err = executeCommand(t, source, "env", "export", "--dir", exportDir, "--format", "yaml")
	require.NoError(t, err)
	matches, err := filepath.Glob(filepath.Join(exportDir, "dev-env-*.yaml"))
	require.NoError(t, err)
	require.Len(t, matches, 1)

	target := t.TempDir()
	stdout, _, err := executeCommand(t, target, "env", "import", matches[0], "-o", "json")
	require.NoError(t, err)
	var preview importOutput
	require.NoError(t, json.Unmarshal([]byte(stdout), &preview))
	assert.Equal(t, []string{"ripgrep"}, preview.New)
	assert.Empty(t, preview.Saved)

	stdout, _, err = executeCommand(t, target, "env", "import", matches[0], "--apply", "-o", "json")
	require.NoError(t, err)
	var applied importOutput
	require.NoError(t, json.Unmarshal([]byte(stdout), &applied))
	assert.Equal(t, []string{"ripgrep"}, applied.Saved)

	stdout, _, err = executeCommand(t, target, "env", "import", matches[0], "-o", "json")
	require.NoError(t, err)
	var again importOutput
	require.NoError(t, json.Unmarshal([]byte(stdout), &again))
	assert.Equal(t, []string{"ripgrep"}, again.Identical)
}

func TestEnvImport_InvalidStrategy(t *testing.T) {
	_, _, err := executeCommand(t, t.TempDir(), "env", "import", "whatever.json", "--strategy", "merge")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown merge strategy "merge"`)
}

func TestEnvExport_Stdout(t *testing.T) {
	fakeHost(t, "node")

	stdout, _, err := executeCommand(t, t.TempDir(), "env", "export", "--stdout")
	require.NoError(t, err)

	var doc map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(stdout), &doc))
	assert.Equal(t, "1.0", doc["schemaVersion"])
	assert.Len(t, doc["tools"], 19)
}

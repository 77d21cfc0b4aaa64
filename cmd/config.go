package cmd

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"devenv/internal/catalog"
	"devenv/internal/cli"
	"devenv/internal/config"
	"devenv/internal/detection"
	"devenv/internal/editor"
)

var configTool string

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect and edit configuration files",
	Long: `Inspect devenv's own settings file and the configuration files of
catalog tools.`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective settings",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

var configOpenCmd = &cobra.Command{
	Use:   "open",
	Short: "Open the settings file, or a tool's configuration file, in the editor",
	Long: `Open config.yaml with the configured defaultEditor or, when none is
set, the system default application. With --tool the first existing
configuration file of that tool is opened instead.

Examples:
  devenv config open
  devenv config open --tool fish`,
	Args: cobra.NoArgs,
	RunE: runConfigOpen,
}

var configFilesCmd = &cobra.Command{
	Use:   "files <tool-id>",
	Short: "List the configuration files of a tool",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigFiles,
}

var configCatCmd = &cobra.Command{
	Use:   "cat <tool-id> [index]",
	Short: "Print a configuration file of a tool",
	Long: `Print a configuration file of a tool. index selects the file as
numbered by "devenv config files" and defaults to the first existing one.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runConfigCat,
}

func init() {
	configOpenCmd.Flags().StringVar(&configTool, "tool", "", "Open the configuration file of this tool")
	configCmd.AddCommand(configShowCmd, configOpenCmd, configFilesCmd, configCatCmd)
	rootCmd.AddCommand(configCmd)
}

// configOutput is the structured output of "devenv config show".
type configOutput struct {
	Path   string        `json:"path" yaml:"path"`
	Config config.Config `json:"config" yaml:"config"`
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	env, err := loadEnvironment(cmd)
	if err != nil {
		return err
	}
	p := printer(cmd)
	if p.Structured() {
		return p.PrintData(configOutput{Path: config.ConfigFilePath(env.configPath), Config: env.config})
	}

	tw := p.Table("setting", "value", "description")
	for _, key := range config.SettingKeys() {
		value, err := env.config.Get(key)
		if err != nil {
			return err
		}
		tw.AppendRow([]string{key, cli.ValueOrDash(value), config.SettingDescription(key)})
	}
	tw.Render()
	p.Infof("\nConfig file: %s", config.ConfigFilePath(env.configPath))
	return nil
}

func runConfigOpen(cmd *cobra.Command, args []string) error {
	env, err := loadEnvironment(cmd)
	if err != nil {
		return err
	}

	file := config.ConfigFilePath(env.configPath)
	if configTool != "" {
		file, err = toolConfigFile(env, configTool)
		if err != nil {
			return err
		}
	} else if _, err := os.Stat(file); errors.Is(err, os.ErrNotExist) {
		if err := config.SaveConfig(env.configPath, env.config); err != nil {
			return err
		}
	}

	if err := editor.Open(file, env.config.DefaultEditor); err != nil {
		return err
	}
	printer(cmd).Infof("Opened %s", file)
	return nil
}

// toolConfigFile returns the first existing configuration file of id.
func toolConfigFile(env *environment, id string) (string, error) {
	t, err := env.store.Get(id)
	if err != nil {
		return "", err
	}
	for _, f := range t.ConfigFiles {
		path := detection.ExpandPath(f.Path)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	return "", fmt.Errorf("no configuration file of %s exists", id)
}

// configFileRow is the structured output of "devenv config files".
type configFileRow struct {
	Index       int    `json:"index" yaml:"index"`
	Path        string `json:"path" yaml:"path"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Exists      bool   `json:"exists" yaml:"exists"`
	CanRead     bool   `json:"canRead" yaml:"canRead"`
}

func configFileRows(t catalog.ToolTemplate, status []detection.ConfigFileStatus) []configFileRow {
	rows := make([]configFileRow, 0, len(t.ConfigFiles))
	for i, f := range t.ConfigFiles {
		row := configFileRow{Index: i + 1, Path: f.Path, Description: f.Description}
		if i < len(status) {
			row.Exists = status[i].Exists
			row.CanRead = status[i].CanRead
		}
		rows = append(rows, row)
	}
	return rows
}

func runConfigFiles(cmd *cobra.Command, args []string) error {
	env, err := loadEnvironment(cmd)
	if err != nil {
		return err
	}
	t, err := env.store.Get(args[0])
	if err != nil {
		return err
	}
	result := env.detector.DetectOne(cmd.Context(), t)
	rows := configFileRows(t, result.ConfigFiles)

	p := printer(cmd)
	if p.Structured() {
		return p.PrintData(rows)
	}
	if len(rows) == 0 {
		p.Infof("%s has no known configuration files", t.ID)
		return nil
	}
	tw := p.Table("#", "path", "exists", "readable", "description")
	for _, r := range rows {
		tw.AppendRow([]string{
			strconv.Itoa(r.Index),
			r.Path,
			strconv.FormatBool(r.Exists),
			strconv.FormatBool(r.CanRead),
			cli.ValueOrDash(r.Description),
		})
	}
	tw.Render()
	return nil
}

func runConfigCat(cmd *cobra.Command, args []string) error {
	env, err := loadEnvironment(cmd)
	if err != nil {
		return err
	}

	var path string
	if len(args) == 2 {
		t, err := env.store.Get(args[0])
		if err != nil {
			return err
		}
		idx, err := strconv.Atoi(args[1])
		if err != nil || idx < 1 || idx > len(t.ConfigFiles) {
			return fmt.Errorf("invalid index %q: %s has %s", args[1], t.ID, cli.Plural(len(t.ConfigFiles), "configuration file"))
		}
		path = t.ConfigFiles[idx-1].Path
	} else {
		path, err = toolConfigFile(env, args[0])
		if err != nil {
			return err
		}
	}

	content, err := detection.ReadConfigFile(path)
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), content)
	return nil
}

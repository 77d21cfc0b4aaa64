package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"devenv/internal/cli"
	"devenv/internal/config"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Read and change devenv settings",
	Long: `Read and change the settings stored in config.yaml.

Keys:
  downloadPath               Directory for environment exports
  defaultEditor              Editor used by "devenv config open"
  logLevel                   Log level without --debug
  detection.workers          Number of tools probed in parallel
  detection.timeout          Timeout for a single version command
  dependencies.maxTreeDepth  Maximum depth of dependency trees`,
}

var settingsGetCmd = &cobra.Command{
	Use:   "get [key]",
	Short: "Print one setting, or all of them",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runSettingsGet,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Validate and store a setting",
	Long: `Validate and store a setting. An empty value resets downloadPath and
defaultEditor to their defaults.

Examples:
  devenv settings set defaultEditor /usr/bin/nvim
  devenv settings set detection.timeout 10s`,
	Args: cobra.ExactArgs(2),
	RunE: runSettingsSet,
}

var settingsResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Restore the default settings",
	Args:  cobra.NoArgs,
	RunE:  runSettingsReset,
}

func init() {
	settingsCmd.AddCommand(settingsGetCmd, settingsSetCmd, settingsResetCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsGet(cmd *cobra.Command, args []string) error {
	env, err := loadEnvironment(cmd)
	if err != nil {
		return err
	}
	keys := config.SettingKeys()
	if len(args) == 1 {
		keys = args
	}

	values := make(map[string]string, len(keys))
	for _, key := range keys {
		v, err := env.config.Get(key)
		if err != nil {
			return err
		}
		values[key] = v
	}

	p := printer(cmd)
	if p.Structured() {
		return p.PrintData(values)
	}
	if len(args) == 1 {
		fmt.Fprintln(p.Out, values[args[0]])
		return nil
	}
	tw := p.Table("key", "value")
	for _, key := range keys {
		tw.AppendRow([]string{key, cli.ValueOrDash(values[key])})
	}
	tw.Render()
	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	env, err := loadEnvironment(cmd)
	if err != nil {
		return err
	}
	key, value := args[0], args[1]
	if err := env.config.Set(key, value); err != nil {
		return config.FormatValidationError("setting", key, err)
	}
	if err := env.config.Validate(); err != nil {
		return config.FormatValidationError("settings", config.ConfigFilePath(env.configPath), err)
	}
	if err := config.SaveConfig(env.configPath, env.config); err != nil {
		return err
	}
	printer(cmd).Infof("%s", cli.FormatSuccess(fmt.Sprintf("%s updated", key)))
	return nil
}

func runSettingsReset(cmd *cobra.Command, args []string) error {
	configPath, err := config.ResolveConfigPath(flags.ConfigPath)
	if err != nil {
		return err
	}
	if err := config.SaveConfig(configPath, config.GetDefaultConfig()); err != nil {
		return err
	}
	printer(cmd).Infof("%s", cli.FormatSuccess("Settings reset to defaults"))
	return nil
}

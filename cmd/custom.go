package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"devenv/internal/catalog"
	"devenv/internal/cli"
)

var customFile string

var customCmd = &cobra.Command{
	Use:   "custom",
	Short: "Manage custom tool templates",
	Long: `Manage custom tool templates. Custom templates extend the built-in
catalog and are stored as YAML files in the tools directory of the
configuration path. They cannot replace built-in tools.`,
}

var customListCmd = &cobra.Command{
	Use:   "list",
	Short: "List custom tool templates",
	Args:  cobra.NoArgs,
	RunE:  runCustomList,
}

var customAddCmd = &cobra.Command{
	Use:   "add -f <file>",
	Short: "Add or update custom tool templates from a YAML or JSON file",
	Long: `Add or update custom tool templates. The file holds one template or a
list of templates, as YAML or JSON.

Example file:
  id: ripgrep
  name: ripgrep
  executable: rg
  installMethods:
    - type: brew
      brewFormulaName: ripgrep
  dependencies: [brew]`,
	Args: cobra.NoArgs,
	RunE: runCustomAdd,
}

var customRemoveCmd = &cobra.Command{
	Use:     "remove <tool-id>...",
	Aliases: []string{"rm"},
	Short:   "Remove custom tool templates",
	Args:    cobra.MinimumNArgs(1),
	RunE:    runCustomRemove,
}

func init() {
	customAddCmd.Flags().StringVarP(&customFile, "file", "f", "", "Template file (- for stdin)")
	_ = customAddCmd.MarkFlagRequired("file")
	customCmd.AddCommand(customListCmd, customAddCmd, customRemoveCmd)
	rootCmd.AddCommand(customCmd)
}

func runCustomList(cmd *cobra.Command, args []string) error {
	env, err := loadEnvironment(cmd)
	if err != nil {
		return err
	}
	customs, err := env.customTemplates()
	if err != nil {
		return err
	}

	p := printer(cmd)
	if p.Structured() {
		return p.PrintData(customs)
	}
	if len(customs) == 0 {
		p.Infof("No custom templates in %s", env.store.Dir())
		return nil
	}
	tw := p.Table("id", "name", "executable", "install", "dependencies")
	for _, t := range customs {
		install := "-"
		if m, ok := t.PreferredInstallMethod(); ok {
			install = m.Type
		}
		tw.AppendRow([]string{t.ID, t.Name, t.Executable, install, cli.ValueOrDash(strings.Join(t.Dependencies, ","))})
	}
	tw.Render()
	return nil
}

func readInput(cmd *cobra.Command, file string) ([]byte, error) {
	if file == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", file, err)
	}
	return data, nil
}

func runCustomAdd(cmd *cobra.Command, args []string) error {
	env, err := loadEnvironment(cmd)
	if err != nil {
		return err
	}
	data, err := readInput(cmd, customFile)
	if err != nil {
		return err
	}
	templates, err := catalog.ParseTemplates(data)
	if err != nil {
		return err
	}

	p := printer(cmd)
	for _, t := range templates {
		if err := env.store.Save(t); err != nil {
			return err
		}
		p.Infof("%s", cli.FormatSuccess(fmt.Sprintf("Saved custom template %s", t.ID)))
	}

	// A new template may close a dependency loop or name a missing tool.
	ids := make([]string, 0, len(templates))
	for _, t := range templates {
		ids = append(ids, t.ID)
	}
	if _, err := env.service.ResolveInstallationOrder(cmd.Context(), ids); err != nil {
		p.Infof("%s", cli.FormatWarning(fmt.Sprintf("Saved templates do not resolve: %v", err)))
	}
	return nil
}

func runCustomRemove(cmd *cobra.Command, args []string) error {
	env, err := loadEnvironment(cmd)
	if err != nil {
		return err
	}
	p := printer(cmd)
	for _, id := range args {
		if err := env.store.Delete(id); err != nil {
			return err
		}
		p.Infof("%s", cli.FormatSuccess(fmt.Sprintf("Removed custom template %s", id)))
	}
	return nil
}

package cmd

import (
	"strconv"

	"github.com/spf13/cobra"

	"devenv/internal/catalog"
	"devenv/internal/cli"
)

var orderCmd = &cobra.Command{
	Use:   "order <tool-id>...",
	Short: "Print the installation order of tools",
	Long: `Order the given tools so that every tool comes after the tools it
depends on. Only the given tools are ordered; use "devenv install --dry-run"
to include missing dependencies.

Examples:
  devenv order uv python
  devenv order node claude-code codex -o json`,
	Args: cobra.MinimumNArgs(1),
	RunE: runOrder,
}

func init() {
	rootCmd.AddCommand(orderCmd)
}

// orderOutput is the structured output of "devenv order".
type orderOutput struct {
	Order []string `json:"order" yaml:"order"`
}

func runOrder(cmd *cobra.Command, args []string) error {
	env, err := loadEnvironment(cmd)
	if err != nil {
		return err
	}
	order, err := env.service.ResolveInstallationOrder(cmd.Context(), args)
	if err != nil {
		return err
	}

	p := printer(cmd)
	if p.Structured() {
		return p.PrintData(orderOutput{Order: order})
	}

	templates, err := env.store.Templates()
	if err != nil {
		return err
	}
	tw := p.Table("step", "id", "name")
	for i, id := range order {
		name := ""
		if t, ok := catalog.Find(templates, id); ok {
			name = t.Name
		}
		tw.AppendRow([]string{strconv.Itoa(i + 1), id, cli.ValueOrDash(name)})
	}
	tw.Render()
	return nil
}

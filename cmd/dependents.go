package cmd

import (
	"github.com/spf13/cobra"

	"devenv/internal/dependency"
)

var dependentsCmd = &cobra.Command{
	Use:   "dependents <tool-id>",
	Short: "List the tools that depend directly on a tool",
	Long: `List the catalog tools that name the given tool as a direct
dependency.

Examples:
  devenv dependents node
  devenv dependents brew -o yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runDependents,
}

func init() {
	rootCmd.AddCommand(dependentsCmd)
}

func runDependents(cmd *cobra.Command, args []string) error {
	env, err := loadEnvironment(cmd)
	if err != nil {
		return err
	}
	dependents, err := env.service.ReverseDependencies(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	if dependents == nil {
		dependents = []dependency.Dependent{}
	}

	p := printer(cmd)
	if p.Structured() {
		return p.PrintData(dependents)
	}
	if len(dependents) == 0 {
		p.Infof("No tools depend on %s", args[0])
		return nil
	}
	tw := p.Table("id", "name")
	for _, d := range dependents {
		tw.AppendRow([]string{d.ID, d.Name})
	}
	tw.Render()
	return nil
}

package cmd

import (
	"github.com/spf13/cobra"

	"devenv/internal/cli"
)

var treeCmd = &cobra.Command{
	Use:   "tree <tool-id>",
	Short: "Show the dependency tree of a tool",
	Long: `Show the transitive dependencies of a tool, each marked as installed
or missing.

Examples:
  devenv tree claude-code
  devenv tree uv -o json`,
	Args: cobra.ExactArgs(1),
	RunE: runTree,
}

func init() {
	rootCmd.AddCommand(treeCmd)
}

func runTree(cmd *cobra.Command, args []string) error {
	env, err := loadEnvironment(cmd)
	if err != nil {
		return err
	}

	stop := cli.StartSpinner(cmd.ErrOrStderr(), flags.Quiet || flags.Debug, "Detecting installed tools...")
	tree, err := env.service.DependencyTree(cmd.Context(), args[0])
	stop()
	if err != nil {
		return err
	}

	p := printer(cmd)
	if p.Structured() {
		return p.PrintData(tree)
	}
	cli.RenderTree(p.Out, tree)
	return nil
}

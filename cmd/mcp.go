package cmd

import (
	"github.com/spf13/cobra"

	"devenv/internal/mcpserver"
	"devenv/pkg/logging"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve devenv's tools to MCP clients on stdio",
	Long: `Run an MCP server on stdin and stdout so that AI assistants can query
the tool catalog. The server offers:

  resolve_installation_order  order tool IDs by their dependencies
  get_dependency_tree         annotated dependency tree of a tool
  get_reverse_dependencies    tools that depend directly on a tool
  detect_tools                detection results for the whole catalog

Logs are written to stderr as JSON lines.

Example client configuration:
  {"mcpServers": {"devenv": {"command": "devenv", "args": ["mcp"]}}}`,
	Args: cobra.NoArgs,
	RunE: runMCP,
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

func runMCP(cmd *cobra.Command, args []string) error {
	env, err := loadEnvironment(cmd)
	if err != nil {
		return err
	}

	// stdout carries the protocol.
	level := logging.LevelInfo
	if flags.Debug {
		level = logging.LevelDebug
	}
	logging.Init(logging.Options{Level: level, Format: logging.FormatJSON, Output: cmd.ErrOrStderr()})

	return mcpserver.New(env.service, env.detector, GetVersion()).ServeStdio()
}

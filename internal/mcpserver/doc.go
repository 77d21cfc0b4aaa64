// Package mcpserver serves devenv's dependency engine to AI assistants over
// the Model Context Protocol.
//
// The server speaks MCP on stdio and offers four tools:
//
//   - resolve_installation_order: order a comma separated list of tool IDs
//   - get_dependency_tree: dependency tree of a tool with install status
//   - get_reverse_dependencies: tools that directly depend on a tool
//   - detect_tools: detection results for the whole catalog
//
// Results are JSON text content. Domain failures such as an unknown tool or
// a dependency cycle are returned as tool errors, not protocol errors, so the
// assistant can read the message.
//
// Logs must not go to stdout while serving; the mcp command configures the
// logger to write JSON lines to stderr.
package mcpserver

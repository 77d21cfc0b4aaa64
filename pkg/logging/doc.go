// Package logging provides structured, subsystem-tagged logging for devenv.
//
// It is a thin layer over Go's standard slog package. Every entry carries a
// subsystem attribute so that output from detection, installation and the
// MCP server can be told apart when they run in the same process.
//
// # Log Levels
//   - **Debug**: Detailed information, enabled with --debug
//   - **Info**: Progress of long running operations
//   - **Warn**: Recoverable problems (the CLI default)
//   - **Error**: Failures, always with the causing error attached
//
// # Usage Examples
//
//	// CLI default: warnings and errors as text on stderr
//	logging.InitForCLI(logging.LevelWarn, os.Stderr)
//
//	// JSON lines, e.g. for the MCP server whose stdout carries the protocol
//	logging.Init(logging.Options{Level: logging.LevelInfo, Format: logging.FormatJSON})
//
//	logging.Info("Detection", "Detected %d of %d tools", installed, total)
//	logging.Error("Installer", err, "Failed to install %s", toolID)
//
// # Subsystems
//
//   - **Catalog**: Built-in and custom template merging
//   - **ConfigLoader**, **Storage**: Settings and custom template files
//   - **Detection**: PATH lookups and version probing
//   - **Installer**: Homebrew and script installation
//   - **Export**: Environment export and import
//   - **Watcher**: Custom template directory watching
//   - **MCPServer**: MCP tool calls
//
// # Thread Safety
//
// All functions are safe for concurrent use. Init may be called again to
// change the level or format; entries logged concurrently use either the old
// or the new logger.
package logging

// Package cli holds the presentation layer shared by devenv's commands.
//
// # Output Formats
//
// Every command accepts -o/--output:
//   - table: kubectl-style plain table (PlainTableWriter)
//   - wide: table with extra columns such as paths and config files
//   - json: indented JSON of the command's result
//   - yaml: the same data as YAML
//
// With json or yaml nothing but the data is written to stdout; progress and
// warnings go to stderr.
//
// # Components
//
//   - PlainTableWriter: aligned tables that survive ANSI colours
//   - RenderTree: dependency trees drawn with go-pretty lists
//   - StartSpinner and InstallProgress: progress while detecting and
//     installing
//   - Confirm: y/N prompt on the terminal
package cli

// Package installer installs tools with Homebrew or shell scripts.
//
// Progress is reported as Events on a channel supplied by the caller. Each
// event carries the run ID of its Installer, the tool it concerns and either
// a status message or one line of command output.
//
// Script commands are Go templates rendered with sprig functions and the
// host variables from internal/template, so a template can write
//
//	eval "$({{ .BrewPrefix }}/bin/brew shellenv)"
//
// A Plan installs a tool together with its missing dependencies in
// dependency order and stops at the first failure.
package installer

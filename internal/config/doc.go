// Package config provides configuration management for devenv.
//
// Configuration lives in a single directory. The default is ~/.config/devenv;
// it can be changed with the --config-path flag or the DEVENV_CONFIG_PATH
// environment variable (the flag wins).
//
// # Configuration Directory
//
//	~/.config/devenv/
//	├── config.yaml        settings (optional, defaults apply when missing)
//	└── tools/             one YAML file per custom tool template
//	    └── mytool.yaml
//
// # Settings
//
// config.yaml holds the user settings:
//
//	downloadPath: /Users/me/Downloads   # environment exports
//	defaultEditor: /usr/local/bin/nvim  # "config open"
//	logLevel: warn
//	detection:
//	  workers: 8
//	  timeout: 5s
//	dependencies:
//	  maxTreeDepth: 50
//
// Settings are addressed by dotted keys (see SettingKeys) from the
// "settings get/set" commands. Set validates before assigning: a download
// path must be an existing writable directory, an editor must be an
// executable file or, on macOS, an .app bundle.
//
// # Entity Storage
//
// Storage persists named entities as YAML files in type-specific
// subdirectories. Names are sanitized to [A-Za-z0-9_-] before they become
// file names. Writes go through a temp file and rename, so directory
// watchers only ever observe complete files.
//
// # Errors
//
// A config.yaml that cannot be read or parsed yields a *ConfigurationError
// carrying the file path and suggestions. Validation problems are reported as
// ValidationErrors, one entry per field.
package config

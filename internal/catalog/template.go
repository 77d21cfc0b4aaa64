package catalog

// Install method types.
const (
	MethodBrew   = "brew"
	MethodScript = "script"
)

// Version parsers select which output stream of the version command is read.
const (
	ParserStdout          = "stdout"
	ParserStderr          = "stderr"
	ParserStdoutFirstLine = "stdout-first-line"
)

// VersionParsers lists every accepted parser name.
var VersionParsers = []string{ParserStdout, ParserStderr, ParserStdoutFirstLine}

// ToolTemplate describes how to find, configure and install one CLI tool.
//
// Custom templates are read from YAML or JSON files, so every field carries
// both tags.
type ToolTemplate struct {
	ID             string               `json:"id" yaml:"id"`
	Name           string               `json:"name" yaml:"name"`
	Executable     string               `json:"executable" yaml:"executable"`
	VersionCommand string               `json:"versionCommand,omitempty" yaml:"versionCommand,omitempty"`
	VersionParser  string               `json:"versionParser,omitempty" yaml:"versionParser,omitempty"`
	ConfigFiles    []ConfigFileLocation `json:"configFiles,omitempty" yaml:"configFiles,omitempty"`
	InstallMethods []InstallMethod      `json:"installMethods,omitempty" yaml:"installMethods,omitempty"`
	Dependencies   []string             `json:"dependencies,omitempty" yaml:"dependencies,omitempty"`
}

// ConfigFileLocation is a configuration file of a tool. Path may start with
// "~/" or "$HOME".
type ConfigFileLocation struct {
	Path        string `json:"path" yaml:"path"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// InstallMethod is one way of installing a tool.
//
// For MethodBrew exactly one of BrewCaskName and BrewFormulaName is set;
// BrewTap is tapped first when present. For MethodScript the commands run
// in order through the shell and may use template expressions such as
// {{ .HomeDir }} or {{ env "SHELL" }}.
type InstallMethod struct {
	Type            string   `json:"type" yaml:"type"`
	BrewCaskName    string   `json:"brewCaskName,omitempty" yaml:"brewCaskName,omitempty"`
	BrewFormulaName string   `json:"brewFormulaName,omitempty" yaml:"brewFormulaName,omitempty"`
	BrewTap         string   `json:"brewTap,omitempty" yaml:"brewTap,omitempty"`
	ScriptCommands  []string `json:"scriptCommands,omitempty" yaml:"scriptCommands,omitempty"`
}

// EffectiveVersionCommand returns VersionCommand or "--version".
func (t ToolTemplate) EffectiveVersionCommand() string {
	if t.VersionCommand == "" {
		return "--version"
	}
	return t.VersionCommand
}

// EffectiveVersionParser returns VersionParser or ParserStdout.
func (t ToolTemplate) EffectiveVersionParser() string {
	if t.VersionParser == "" {
		return ParserStdout
	}
	return t.VersionParser
}

// PreferredInstallMethod returns the first install method of a supported
// type, or false if the tool cannot be installed automatically.
func (t ToolTemplate) PreferredInstallMethod() (InstallMethod, bool) {
	for _, m := range t.InstallMethods {
		if m.Type == MethodBrew || m.Type == MethodScript {
			return m, true
		}
	}
	return InstallMethod{}, false
}

// IsCask reports whether a brew method installs a cask.
func (m InstallMethod) IsCask() bool {
	return m.BrewCaskName != ""
}

// BrewPackage returns the cask or formula name.
func (m InstallMethod) BrewPackage() string {
	if m.BrewCaskName != "" {
		return m.BrewCaskName
	}
	return m.BrewFormulaName
}

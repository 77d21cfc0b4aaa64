package detection

import "time"

// Result is what detection found out about one tool template.
type Result struct {
	TemplateID     string             `json:"templateId" yaml:"templateId"`
	Installed      bool               `json:"installed" yaml:"installed"`
	Version        string             `json:"version,omitempty" yaml:"version,omitempty"`
	ExecutablePath string             `json:"executablePath,omitempty" yaml:"executablePath,omitempty"`
	ConfigFiles    []ConfigFileStatus `json:"configFiles" yaml:"configFiles"`
	DetectedAt     time.Time          `json:"detectedAt" yaml:"detectedAt"`
}

// ConfigFileStatus reports whether a configuration file is present. Path is
// kept as written in the template, e.g. "~/.tmux.conf".
type ConfigFileStatus struct {
	Path    string `json:"path" yaml:"path"`
	Exists  bool   `json:"exists" yaml:"exists"`
	CanRead bool   `json:"canRead" yaml:"canRead"`
}

package envexport

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"devenv/internal/catalog"
	"devenv/internal/detection"
	"devenv/pkg/logging"
)

// SchemaVersion is written to every exported document.
const SchemaVersion = "1.0"

// SupportedSchemaVersions can be imported without a warning.
var SupportedSchemaVersions = []string{"0.9", "1.0"}

// Format selects the encoding of an exported document.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// Document is a snapshot of a developer environment: what was detected on
// the machine plus the user's custom tool templates.
type Document struct {
	SchemaVersion   string                 `json:"schemaVersion" yaml:"schemaVersion"`
	ExportedAt      string                 `json:"exportedAt" yaml:"exportedAt"`
	Hostname        string                 `json:"hostname,omitempty" yaml:"hostname,omitempty"`
	Tools           []detection.Result     `json:"tools" yaml:"tools"`
	CustomTemplates []catalog.ToolTemplate `json:"customTemplates" yaml:"customTemplates"`
}

// NewDocument creates a Document exported at now.
func NewDocument(tools []detection.Result, customs []catalog.ToolTemplate, now time.Time) *Document {
	hostname, err := os.Hostname()
	if err != nil {
		logging.Debug("Export", "Could not determine hostname: %v", err)
		hostname = ""
	}
	if tools == nil {
		tools = []detection.Result{}
	}
	if customs == nil {
		customs = []catalog.ToolTemplate{}
	}
	return &Document{
		SchemaVersion:   SchemaVersion,
		ExportedAt:      now.UTC().Format(time.RFC3339),
		Hostname:        hostname,
		Tools:           tools,
		CustomTemplates: customs,
	}
}

// FileName returns "dev-env-YYYY-MM-DD" with the extension for format, using
// the local date of now.
func FileName(now time.Time, format Format) string {
	ext := "json"
	if format == FormatYAML {
		ext = "yaml"
	}
	return fmt.Sprintf("dev-env-%s.%s", now.Format("2006-01-02"), ext)
}

// Encode serializes doc.
func Encode(doc *Document, format Format) ([]byte, error) {
	switch format {
	case FormatYAML:
		return yaml.Marshal(doc)
	case FormatJSON, "":
		data, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	default:
		return nil, fmt.Errorf("unsupported export format %q", format)
	}
}

// Export writes doc into dir and returns the path of the written file.
func Export(dir string, doc *Document, format Format, now time.Time) (string, error) {
	data, err := Encode(doc, format)
	if err != nil {
		return "", fmt.Errorf("failed to serialize environment: %w", err)
	}

	path := filepath.Join(dir, FileName(now, format))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write export file: %w", err)
	}

	logging.Info("Export", "Exported %d tools and %d custom templates to %s", len(doc.Tools), len(doc.CustomTemplates), path)
	return path, nil
}

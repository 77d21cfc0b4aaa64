package envexport

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"
	"time"

	"sigs.k8s.io/yaml"

	"devenv/internal/config"
)

// ImportResult is a parsed document plus non-fatal findings.
type ImportResult struct {
	Document *Document
	Warnings []string
}

// ImportFile reads and parses an exported document.
func ImportFile(path string) (*ImportResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	result, err := Import(data)
	if err != nil {
		return nil, config.FormatValidationError("environment", path, err)
	}
	return result, nil
}

// Import parses a JSON or YAML document. Documents without a schema version
// are treated as 0.9 and migrated.
func Import(data []byte) (*ImportResult, error) {
	jsonData, err := yaml.YAMLToJSON(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse document: %w", err)
	}

	var raw map[string]interface{}
	if err := json.Unmarshal(jsonData, &raw); err != nil {
		return nil, errors.New("invalid data: expected an object")
	}

	result := &ImportResult{}
	if _, ok := raw["schemaVersion"]; !ok {
		raw["schemaVersion"] = "0.9"
	}
	if v, _ := raw["schemaVersion"].(string); v == "0.9" {
		result.Warnings = append(result.Warnings, migrateFrom09(raw)...)
	}

	warnings, err := validate(raw)
	result.Warnings = append(result.Warnings, warnings...)
	if err != nil {
		return nil, err
	}

	normalized, err := json.Marshal(raw)
	if err != nil {
		return nil, err
	}
	var doc Document
	if err := json.Unmarshal(normalized, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode document: %w", err)
	}
	result.Document = &doc
	return result, nil
}

// migrateFrom09 fills the fields added in 1.0 and bumps the version.
func migrateFrom09(raw map[string]interface{}) []string {
	var warnings []string

	if templates, ok := raw["customTemplates"].([]interface{}); ok {
		for _, t := range templates {
			m, ok := t.(map[string]interface{})
			if !ok {
				continue
			}
			if _, ok := m["dependencies"]; !ok {
				m["dependencies"] = []interface{}{}
			}
			if _, ok := m["installMethods"]; !ok {
				m["installMethods"] = []interface{}{}
			}
		}
		warnings = append(warnings, fmt.Sprintf("Migrated %d custom templates to schema %s", len(templates), SchemaVersion))
	}

	if tools, ok := raw["tools"].([]interface{}); ok {
		for _, t := range tools {
			if m, ok := t.(map[string]interface{}); ok {
				if _, ok := m["configFiles"]; !ok {
					m["configFiles"] = []interface{}{}
				}
			}
		}
	}

	raw["schemaVersion"] = SchemaVersion
	return append(warnings, "Migrated environment export from schema version 0.9 to "+SchemaVersion)
}

func validate(raw map[string]interface{}) ([]string, error) {
	var errs config.ValidationErrors
	var warnings []string

	if v, ok := raw["schemaVersion"].(string); !ok || v == "" {
		errs.Add("schemaVersion", "is missing or invalid")
	} else if !slices.Contains(SupportedSchemaVersions, v) {
		warnings = append(warnings, fmt.Sprintf("Schema version %s may not be fully supported (supported: %s)",
			v, strings.Join(SupportedSchemaVersions, ", ")))
	}

	if v, ok := raw["exportedAt"].(string); !ok || v == "" {
		errs.Add("exportedAt", "is missing or invalid")
	} else if _, err := time.Parse(time.RFC3339, v); err != nil {
		errs.Add("exportedAt", "is not an RFC 3339 timestamp", v)
	}

	tools, ok := raw["tools"].([]interface{})
	if !ok {
		errs.Add("tools", "is missing or not an array")
	}
	for i, t := range tools {
		field := fmt.Sprintf("tools[%d]", i)
		m, ok := t.(map[string]interface{})
		if !ok {
			errs.Add(field, "is not an object")
			continue
		}
		if id, _ := m["templateId"].(string); id == "" {
			errs.Add(field+".templateId", "is required")
		}
		if _, ok := m["installed"].(bool); !ok {
			errs.Add(field+".installed", "is missing or not a boolean")
		}
	}

	if v, ok := raw["customTemplates"]; ok && v != nil {
		if _, ok := v.([]interface{}); !ok {
			errs.Add("customTemplates", "is not an array")
		}
	}

	if v, ok := raw["hostname"]; ok && v != nil {
		if _, ok := v.(string); !ok {
			warnings = append(warnings, "Invalid hostname format")
			delete(raw, "hostname")
		}
	}

	return warnings, errs.ErrOrNil()
}

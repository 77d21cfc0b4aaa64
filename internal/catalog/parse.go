package catalog

import (
	"bytes"
	"fmt"

	"sigs.k8s.io/yaml"
)

// ParseTemplates decodes a user-supplied file holding either one template or
// a list of templates, as YAML or JSON.
func ParseTemplates(data []byte) ([]ToolTemplate, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("empty template file")
	}

	// sigs.k8s.io/yaml converts to JSON first, so a list and an object are
	// told apart by the first JSON token.
	jsonData, err := yaml.YAMLToJSON(trimmed)
	if err != nil {
		return nil, fmt.Errorf("failed to parse template file: %w", err)
	}

	if bytes.HasPrefix(bytes.TrimSpace(jsonData), []byte("[")) {
		var templates []ToolTemplate
		if err := yaml.UnmarshalStrict(trimmed, &templates); err != nil {
			return nil, fmt.Errorf("failed to parse template list: %w", err)
		}
		return templates, nil
	}

	var t ToolTemplate
	if err := yaml.UnmarshalStrict(trimmed, &t); err != nil {
		return nil, fmt.Errorf("failed to parse template: %w", err)
	}
	return []ToolTemplate{t}, nil
}

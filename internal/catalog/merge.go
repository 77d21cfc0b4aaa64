package catalog

import "devenv/internal/dependency"

// Merge returns builtins followed by the customs whose id is not already
// present. Neither input is modified.
func Merge(builtins, customs []ToolTemplate) []ToolTemplate {
	merged := make([]ToolTemplate, 0, len(builtins)+len(customs))
	seen := make(map[string]bool, len(builtins)+len(customs))
	for _, list := range [][]ToolTemplate{builtins, customs} {
		for _, t := range list {
			if seen[t.ID] {
				continue
			}
			seen[t.ID] = true
			merged = append(merged, t)
		}
	}
	return merged
}

// ToDependencyCatalog converts templates to the resolver's catalog,
// preserving order.
func ToDependencyCatalog(templates []ToolTemplate) *dependency.Catalog {
	defs := make([]dependency.Definition, 0, len(templates))
	for _, t := range templates {
		defs = append(defs, dependency.Definition{
			ID:           t.ID,
			Name:         t.Name,
			Dependencies: t.Dependencies,
		})
	}
	return dependency.NewCatalog(defs)
}

// Find returns the template with id.
func Find(templates []ToolTemplate, id string) (ToolTemplate, bool) {
	for _, t := range templates {
		if t.ID == id {
			return t, true
		}
	}
	return ToolTemplate{}, false
}

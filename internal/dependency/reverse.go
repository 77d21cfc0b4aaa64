package dependency

// Dependent is a catalog entry that depends on the queried tool.
type Dependent struct {
	ID   string `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
}

// ReverseDependencies returns every definition that lists id as a direct
// dependency, in catalog order. An id nobody depends on, or one that is not
// in the catalog at all, yields an empty result.
func ReverseDependencies(id string, c *Catalog) []Dependent {
	var out []Dependent
	for _, def := range c.Definitions() {
		for _, dep := range def.Dependencies {
			if dep == id {
				out = append(out, Dependent{ID: def.ID, Name: def.Name})
				break
			}
		}
	}
	return out
}

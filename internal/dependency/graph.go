package dependency

// Graph is the dependency graph restricted to one set of requested tools.
//
// Edges point from a dependency to the tools that need it, which is the
// direction installation has to follow. A Graph is built per call and is not
// thread-safe by itself.
type Graph struct {
	// nodes keeps the requested ids in request order, without duplicates.
	nodes []string
	// dependents maps a tool to the requested tools that list it as a dependency.
	dependents map[string][]string
	// inDegree counts the requested dependencies of each requested tool.
	inDegree map[string]int
}

// NewGraph builds the graph for ids. Every id must be in the catalog; the
// first unknown id is reported as an *UnknownToolError and nothing is built.
// Dependencies that were not requested are treated as already satisfied.
func NewGraph(ids []string, c *Catalog) (*Graph, error) {
	for _, id := range ids {
		if !c.Has(id) {
			return nil, &UnknownToolError{ID: id}
		}
	}

	g := &Graph{
		nodes:      make([]string, 0, len(ids)),
		dependents: make(map[string][]string, len(ids)),
		inDegree:   make(map[string]int, len(ids)),
	}
	for _, id := range ids {
		if _, seen := g.inDegree[id]; seen {
			continue
		}
		g.nodes = append(g.nodes, id)
		g.inDegree[id] = 0
	}

	for _, id := range g.nodes {
		for _, dep := range c.Dependencies(id) {
			if _, requested := g.inDegree[dep]; !requested {
				continue
			}
			g.dependents[dep] = append(g.dependents[dep], id)
			g.inDegree[id]++
		}
	}
	return g, nil
}

// Nodes returns the requested ids in request order.
func (g *Graph) Nodes() []string {
	out := make([]string, len(g.nodes))
	copy(out, g.nodes)
	return out
}

// Dependents returns the requested tools that directly depend on id.
func (g *Graph) Dependents(id string) []string {
	deps := g.dependents[id]
	out := make([]string, len(deps))
	copy(out, deps)
	return out
}

// InDegree returns the number of requested dependencies of id.
func (g *Graph) InDegree(id string) int {
	return g.inDegree[id]
}

package dependency

import "fmt"

// ResolveOrder returns ids ordered so that every tool comes after all of its
// requested dependencies.
//
// Errors:
//   - *UnknownToolError (matches ErrUnknownTool) if an id is not in the catalog
//   - ErrCircularDependency if the requested tools form a cycle
//
// Ties are broken by request order: tools that become ready together are
// emitted in the order they were requested or unblocked.
func ResolveOrder(ids []string, c *Catalog) ([]string, error) {
	g, err := NewGraph(ids, c)
	if err != nil {
		return nil, err
	}
	if g.HasCycle() {
		return nil, ErrCircularDependency
	}
	return g.TopologicalOrder()
}

// TopologicalOrder runs Kahn's algorithm over the graph.
//
// The ready queue is FIFO and seeded in request order, so the result is
// deterministic for a given input. If fewer nodes come out than went in the
// graph was cyclic after all and the call fails with ErrCircularDependency;
// a partial order is never returned.
func (g *Graph) TopologicalOrder() ([]string, error) {
	inDegree := make(map[string]int, len(g.inDegree))
	for id, d := range g.inDegree {
		inDegree[id] = d
	}

	queue := make([]string, 0, len(g.nodes))
	for _, id := range g.nodes {
		if inDegree[id] == 0 {
			queue = append(queue, id)
		}
	}

	order := make([]string, 0, len(g.nodes))
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		order = append(order, id)

		for _, next := range g.dependents[id] {
			inDegree[next]--
			if inDegree[next] == 0 {
				queue = append(queue, next)
			}
		}
	}

	if len(order) != len(g.nodes) {
		return nil, fmt.Errorf("%w: resolved %d of %d tools", ErrCircularDependency, len(order), len(g.nodes))
	}
	return order, nil
}

// Closure returns ids together with all of their transitive dependencies,
// in discovery order. Unlike BuildTree it is strict: a dependency missing
// from the catalog fails with *UnknownToolError. Cycles are not an error
// here; pass the result to ResolveOrder to detect them.
func Closure(ids []string, c *Catalog) ([]string, error) {
	seen := make(map[string]bool)
	var out []string

	var visit func(id string) error
	visit = func(id string) error {
		if seen[id] {
			return nil
		}
		def, err := c.Lookup(id)
		if err != nil {
			return err
		}
		seen[id] = true
		out = append(out, id)
		for _, dep := range def.Dependencies {
			if err := visit(dep); err != nil {
				return err
			}
		}
		return nil
	}

	for _, id := range ids {
		if err := visit(id); err != nil {
			return nil, err
		}
	}
	return out, nil
}

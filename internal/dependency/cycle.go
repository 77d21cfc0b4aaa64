package dependency

// HasCycle reports whether the graph contains a directed cycle, including a
// tool that lists itself as a dependency.
//
// Every node is tried as a start point so that disconnected components are
// covered. The visited set is shared between start points; the on-stack set
// only holds the current DFS path.
func (g *Graph) HasCycle() bool {
	visited := make(map[string]bool, len(g.nodes))
	onStack := make(map[string]bool, len(g.nodes))

	for _, id := range g.nodes {
		if visited[id] {
			continue
		}
		if g.hasCycleFrom(id, visited, onStack) {
			return true
		}
	}
	return false
}

func (g *Graph) hasCycleFrom(id string, visited, onStack map[string]bool) bool {
	visited[id] = true
	onStack[id] = true

	for _, next := range g.dependents[id] {
		if onStack[next] {
			return true
		}
		if !visited[next] && g.hasCycleFrom(next, visited, onStack) {
			return true
		}
	}

	onStack[id] = false
	return false
}

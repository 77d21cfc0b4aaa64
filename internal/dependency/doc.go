// Package dependency resolves installation order and dependency trees for
// developer CLI tools.
//
// This package is the core of devenv. It never touches the filesystem, PATH
// or package managers: the catalog of tool definitions and the set of
// installed tools are handed in by the caller (see internal/catalog and
// internal/detection).
//
// # Core Concepts
//
// Catalog: An immutable, ordered collection of tool definitions keyed by id.
// A Definition has:
//   - ID: Unique identifier of the tool (e.g. "uv")
//   - Name: Human-readable name (e.g. "uv")
//   - Dependencies: Ids of tools that must be installed first
//
// Graph: An ephemeral view of the catalog restricted to a set of requested
// ids. Only edges whose both endpoints are requested take part; dependencies
// outside the request are considered satisfied.
//
// # Operations
//
// ResolveOrder: Order a set of tools for installation
//   - Fails with ErrUnknownTool before building anything if an id is unknown
//   - Fails with ErrCircularDependency if the requested edges form a cycle
//   - Duplicate ids are collapsed, the first occurrence keeps its position
//   - Dependencies always precede their dependents
//
// BuildTree: Expand one tool into its full transitive dependency tree
//   - Each node is annotated with its installed status
//   - Unknown and self-referencing dependencies are skipped
//   - A failing branch is omitted instead of failing the whole tree
//   - Expansion stops at a maximum depth (DefaultMaxDepth unless configured)
//
// ReverseDependencies: List catalog entries that depend on a tool
//
// # Usage Example
//
//	catalog := dependency.NewCatalog([]dependency.Definition{
//	    {ID: "brew", Name: "Homebrew"},
//	    {ID: "python", Name: "Python"},
//	    {ID: "uv", Name: "uv", Dependencies: []string{"python"}},
//	})
//
//	order, err := dependency.ResolveOrder([]string{"uv", "python"}, catalog)
//	// order: ["python", "uv"]
//
//	tree, err := dependency.BuildTree("uv", dependency.NewInstalledSet("python"), catalog)
//	// tree.TotalTools: 2, tree.InstalledCount: 1, tree.MissingCount: 1
//
// # Strict vs. tolerant failures
//
// ResolveOrder is all-or-nothing: it never returns a partial order. BuildTree
// is best-effort per branch because it only feeds a display. A cycle longer
// than a direct self-reference is therefore not reported by BuildTree; the
// branch is cut at the depth ceiling and recorded in Tree.Pruned.
//
// # Thread Safety
//
// Catalog and InstalledSet are read-only after construction. Every call builds
// its own graph, so all functions may be used from multiple goroutines.
package dependency

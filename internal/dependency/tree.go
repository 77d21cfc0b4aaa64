package dependency

// DefaultMaxDepth is the deepest level BuildTree expands to. The root sits at
// depth 1.
const DefaultMaxDepth = 50

// TreeNode is one tool in a dependency tree.
type TreeNode struct {
	ToolID    string     `json:"toolId" yaml:"toolId"`
	Name      string     `json:"name" yaml:"name"`
	Installed bool       `json:"installed" yaml:"installed"`
	Children  []TreeNode `json:"dependencies" yaml:"dependencies"`
}

// PrunedBranch records a dependency that BuildTree left out of the tree.
type PrunedBranch struct {
	ParentID string `json:"parentId" yaml:"parentId"`
	ToolID   string `json:"toolId" yaml:"toolId"`
	Reason   string `json:"reason" yaml:"reason"`
}

// Tree is the result of BuildTree.
//
// TotalTools counts node visits, so a tool reachable through two paths is
// counted twice. MissingCount is always TotalTools - InstalledCount.
type Tree struct {
	Root           TreeNode       `json:"root" yaml:"root"`
	TotalTools     int            `json:"totalTools" yaml:"totalTools"`
	InstalledCount int            `json:"installedCount" yaml:"installedCount"`
	MissingCount   int            `json:"missingCount" yaml:"missingCount"`
	Pruned         []PrunedBranch `json:"pruned,omitempty" yaml:"pruned,omitempty"`
}

// TreeOption configures BuildTree.
type TreeOption func(*treeBuilder)

// WithMaxDepth overrides DefaultMaxDepth. Values below 1 are ignored.
func WithMaxDepth(depth int) TreeOption {
	return func(b *treeBuilder) {
		if depth >= 1 {
			b.maxDepth = depth
		}
	}
}

type treeBuilder struct {
	catalog   *Catalog
	installed InstalledSet
	maxDepth  int

	total    int
	installs int
	pruned   []PrunedBranch
}

// BuildTree expands rootID into its transitive dependency tree.
//
// Only the root is strict: an unknown root fails with *UnknownToolError.
// Below the root, dependencies missing from the catalog and direct
// self-references are skipped, and a child that fails to expand is left out
// and recorded in Tree.Pruned. Longer cycles are not detected here; they are
// cut off when the depth ceiling is reached.
func BuildTree(rootID string, installed InstalledSet, c *Catalog, opts ...TreeOption) (*Tree, error) {
	b := &treeBuilder{
		catalog:   c,
		installed: installed,
		maxDepth:  DefaultMaxDepth,
	}
	for _, opt := range opts {
		opt(b)
	}

	root, err := b.expand(rootID, 1)
	if err != nil {
		return nil, err
	}

	return &Tree{
		Root:           root,
		TotalTools:     b.total,
		InstalledCount: b.installs,
		MissingCount:   b.total - b.installs,
		Pruned:         b.pruned,
	}, nil
}

func (b *treeBuilder) expand(id string, depth int) (TreeNode, error) {
	if depth > b.maxDepth {
		return TreeNode{}, &TreeTooDeepError{ID: id, MaxDepth: b.maxDepth}
	}

	def, err := b.catalog.Lookup(id)
	if err != nil {
		return TreeNode{}, err
	}

	b.total++
	node := TreeNode{
		ToolID:    id,
		Name:      def.Name,
		Installed: b.installed.Has(id),
		Children:  []TreeNode{},
	}
	if node.Installed {
		b.installs++
	}

	for _, dep := range def.Dependencies {
		if dep == id || !b.catalog.Has(dep) {
			continue
		}
		child, err := b.expand(dep, depth+1)
		if err != nil {
			b.prune(id, dep, err)
			continue
		}
		node.Children = append(node.Children, child)
	}
	return node, nil
}

func (b *treeBuilder) prune(parent, id string, err error) {
	b.pruned = append(b.pruned, PrunedBranch{ParentID: parent, ToolID: id, Reason: err.Error()})
}

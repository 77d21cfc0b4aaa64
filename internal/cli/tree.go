package cli

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/list"
	"github.com/jedib0t/go-pretty/v6/text"

	"devenv/internal/dependency"
)

func treeLabel(n dependency.TreeNode) string {
	mark := text.FgGreen.Sprint("✓")
	if !n.Installed {
		mark = text.FgYellow.Sprint("✗")
	}
	if n.Name == "" || n.Name == n.ToolID {
		return fmt.Sprintf("%s %s", mark, n.ToolID)
	}
	return fmt.Sprintf("%s %s %s", mark, n.ToolID, text.Faint.Sprintf("(%s)", n.Name))
}

// RenderTree writes a dependency tree with connector lines, followed by a
// summary and any pruned branches.
func RenderTree(w io.Writer, tree *dependency.Tree) {
	l := list.NewWriter()
	l.SetStyle(list.StyleConnectedRounded)

	var add func(n dependency.TreeNode)
	add = func(n dependency.TreeNode) {
		l.AppendItem(treeLabel(n))
		if len(n.Children) == 0 {
			return
		}
		l.Indent()
		for _, child := range n.Children {
			add(child)
		}
		l.UnIndent()
	}
	add(tree.Root)

	fmt.Fprintln(w, l.Render())
	fmt.Fprintf(w, "\n%s, %d installed, %d missing\n",
		Plural(tree.TotalTools, "tool"), tree.InstalledCount, tree.MissingCount)

	for _, p := range tree.Pruned {
		fmt.Fprintln(w, FormatWarning(fmt.Sprintf("%s -> %s not shown: %s", p.ParentID, p.ToolID, p.Reason)))
	}
}

package cmd

import (
	"fmt"
	"os"
	"path"
	"strings"

	"github.com/spf13/cobra"

	"devenv/internal/catalog"
	"devenv/internal/cli"
	"devenv/internal/detection"
	pkgstrings "devenv/pkg/strings"
)

var (
	listFilter        string
	listInstalledOnly bool
	listMissingOnly   bool
)

// toolRow is the structured output of "devenv list".
type toolRow struct {
	ID           string                       `json:"id" yaml:"id"`
	Name         string                       `json:"name" yaml:"name"`
	Builtin      bool                         `json:"builtin" yaml:"builtin"`
	Installed    bool                         `json:"installed" yaml:"installed"`
	Version      string                       `json:"version,omitempty" yaml:"version,omitempty"`
	Path         string                       `json:"path,omitempty" yaml:"path,omitempty"`
	Dependencies []string                     `json:"dependencies,omitempty" yaml:"dependencies,omitempty"`
	ConfigFiles  []detection.ConfigFileStatus `json:"configFiles,omitempty" yaml:"configFiles,omitempty"`
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List catalog tools and whether they are installed",
	Long: `List every built-in and custom tool together with its detected status.

Examples:
  devenv list
  devenv list --filter "claude*"
  devenv list --missing -o json
  devenv list -o wide`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	listCmd.Flags().StringVar(&listFilter, "filter", "", "Only show tools whose ID matches the wildcard pattern (* and ?)")
	listCmd.Flags().BoolVar(&listInstalledOnly, "installed", false, "Only show installed tools")
	listCmd.Flags().BoolVar(&listMissingOnly, "missing", false, "Only show tools that are not installed")
	listCmd.MarkFlagsMutuallyExclusive("installed", "missing")
	rootCmd.AddCommand(listCmd)
}

// matchesWildcard checks if a name matches a wildcard pattern.
// Supports * (matches any sequence of characters) and ? (matches any single character).
func matchesWildcard(name, pattern string) bool {
	if pattern == "" {
		return true
	}
	matched, err := path.Match(pattern, name)
	if err != nil {
		return false
	}
	return matched
}

func filterTemplates(templates []catalog.ToolTemplate, pattern string) []catalog.ToolTemplate {
	if pattern == "" {
		return templates
	}
	var filtered []catalog.ToolTemplate
	for _, t := range templates {
		if matchesWildcard(t.ID, pattern) {
			filtered = append(filtered, t)
		}
	}
	return filtered
}

func buildToolRows(templates []catalog.ToolTemplate, results []detection.Result) []toolRow {
	byID := make(map[string]detection.Result, len(results))
	for _, r := range results {
		byID[r.TemplateID] = r
	}

	rows := make([]toolRow, 0, len(templates))
	for _, t := range templates {
		r := byID[t.ID]
		if listInstalledOnly && !r.Installed || listMissingOnly && r.Installed {
			continue
		}
		rows = append(rows, toolRow{
			ID:           t.ID,
			Name:         t.Name,
			Builtin:      catalog.IsBuiltin(t.ID),
			Installed:    r.Installed,
			Version:      r.Version,
			Path:         r.ExecutablePath,
			Dependencies: t.Dependencies,
			ConfigFiles:  r.ConfigFiles,
		})
	}
	return rows
}

func runList(cmd *cobra.Command, args []string) error {
	env, err := loadEnvironment(cmd)
	if err != nil {
		return err
	}
	templates, err := env.store.Templates()
	if err != nil {
		return err
	}
	templates = filterTemplates(templates, listFilter)

	results, err := env.detectWithSpinner(cmd.Context(), cmd, templates)
	if err != nil {
		return err
	}
	rows := buildToolRows(templates, results)

	p := printer(cmd)
	if p.Structured() {
		return p.PrintData(rows)
	}
	if len(rows) == 0 {
		p.Infof("No tools found")
		return nil
	}

	headers := []string{"ID", "NAME", "STATUS", "VERSION", "DEPENDENCIES"}
	if p.Wide() {
		headers = append(headers, "SOURCE", "PATH", "CONFIG FILES")
	}
	tw := p.Table(headers...)
	for _, r := range rows {
		row := []string{
			r.ID,
			pkgstrings.Truncate(r.Name, 30),
			cli.StatusText(r.Installed),
			cli.ValueOrDash(r.Version),
			cli.ValueOrDash(strings.Join(r.Dependencies, ",")),
		}
		if p.Wide() {
			source := "custom"
			if r.Builtin {
				source = "builtin"
			}
			row = append(row, source, cli.ValueOrDash(displayPath(r.Path)), configSummary(r.ConfigFiles))
		}
		tw.AppendRow(row)
	}
	tw.Render()
	return nil
}

func configSummary(files []detection.ConfigFileStatus) string {
	if len(files) == 0 {
		return "-"
	}
	found := 0
	for _, f := range files {
		if f.Exists {
			found++
		}
	}
	return fmt.Sprintf("%d/%d", found, len(files))
}

// displayPath shortens paths under the home directory for table cells.
func displayPath(p string) string {
	if p == "" {
		return ""
	}
	home, _ := os.UserHomeDir()
	return pkgstrings.TruncatePath(pkgstrings.TildePath(p, home), 40)
}

package cmd

import (
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"devenv/internal/catalog"
	"devenv/internal/cli"
	"devenv/internal/config"
	"devenv/internal/envexport"
)

var (
	exportFormat string
	exportDir    string
	exportStdout bool

	importApply    bool
	importStrategy string
)

var envCmd = &cobra.Command{
	Use:   "env",
	Short: "Export and import developer environments",
	Long: `Export a snapshot of this machine's developer environment (detected
tools plus custom templates) and import snapshots taken elsewhere.`,
}

var envExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the detected environment to a file",
	Long: `Detect every catalog tool and write the results together with all
custom templates to dev-env-YYYY-MM-DD.json (or .yaml) in the download
directory.

Examples:
  devenv env export
  devenv env export --format yaml --dir /tmp
  devenv env export --stdout | jq '.tools[] | select(.installed)'`,
	Args: cobra.NoArgs,
	RunE: runEnvExport,
}

var envImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Compare an exported environment with this one, optionally adding its templates",
	Long: `Read an exported environment, validate it and compare its custom
templates with the local ones. With --apply new templates are saved;
templates whose ID exists with different content are handled by --strategy:

  skip       keep the local template (default)
  overwrite  replace the local template
  rename     save the imported template under "<id>-imported"

Examples:
  devenv env import dev-env-2024-05-01.json
  devenv env import dev-env-2024-05-01.yaml --apply --strategy rename`,
	Args: cobra.ExactArgs(1),
	RunE: runEnvImport,
}

func init() {
	envExportCmd.Flags().StringVar(&exportFormat, "format", string(envexport.FormatJSON), "File format (json, yaml)")
	envExportCmd.Flags().StringVar(&exportDir, "dir", "", "Target directory (default: downloadPath setting)")
	envExportCmd.Flags().BoolVar(&exportStdout, "stdout", false, "Write the document to stdout instead of a file")

	envImportCmd.Flags().BoolVar(&importApply, "apply", false, "Save the imported custom templates")
	envImportCmd.Flags().StringVar(&importStrategy, "strategy", string(envexport.StrategySkip), "Conflict strategy (skip, overwrite, rename)")

	envCmd.AddCommand(envExportCmd, envImportCmd)
	rootCmd.AddCommand(envCmd)
}

func runEnvExport(cmd *cobra.Command, args []string) error {
	format := envexport.Format(exportFormat)
	if format != envexport.FormatJSON && format != envexport.FormatYAML {
		return fmt.Errorf("unsupported export format %q (valid: json, yaml)", exportFormat)
	}

	env, err := loadEnvironment(cmd)
	if err != nil {
		return err
	}
	templates, err := env.store.Templates()
	if err != nil {
		return err
	}
	results, err := env.detectWithSpinner(cmd.Context(), cmd, templates)
	if err != nil {
		return err
	}
	customs, err := env.customTemplates()
	if err != nil {
		return err
	}

	now := time.Now()
	doc := envexport.NewDocument(results, customs, now)

	if exportStdout {
		data, err := envexport.Encode(doc, format)
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	}

	dir := exportDir
	if dir == "" {
		dir, err = env.config.EffectiveDownloadPath()
		if err != nil {
			return err
		}
	}
	if err := config.ValidateDownloadPath(dir); err != nil {
		return err
	}
	path, err := envexport.Export(dir, doc, format, now)
	if err != nil {
		return err
	}

	p := printer(cmd)
	if p.Structured() {
		return p.PrintData(map[string]string{"path": path})
	}
	p.Infof("%s", cli.FormatSuccess(fmt.Sprintf("Exported %s and %s to %s",
		cli.Plural(len(doc.Tools), "tool"), cli.Plural(len(doc.CustomTemplates), "custom template"), path)))
	return nil
}

// importOutput is the structured output of "devenv env import".
type importOutput struct {
	SchemaVersion string   `json:"schemaVersion" yaml:"schemaVersion"`
	ExportedAt    string   `json:"exportedAt" yaml:"exportedAt"`
	Hostname      string   `json:"hostname,omitempty" yaml:"hostname,omitempty"`
	Warnings      []string `json:"warnings" yaml:"warnings"`
	New           []string `json:"new" yaml:"new"`
	Conflicts     []string `json:"conflicts" yaml:"conflicts"`
	Identical     []string `json:"identical" yaml:"identical"`
	Builtin       []string `json:"builtin" yaml:"builtin"`
	Saved         []string `json:"saved" yaml:"saved"`
}

func templateIDs(templates []catalog.ToolTemplate) []string {
	ids := make([]string, 0, len(templates))
	for _, t := range templates {
		ids = append(ids, t.ID)
	}
	return ids
}

func runEnvImport(cmd *cobra.Command, args []string) error {
	strategy := envexport.Strategy(importStrategy)
	if !slices.Contains(envexport.Strategies, importStrategy) {
		return fmt.Errorf("unknown merge strategy %q (valid: %s)", importStrategy, strings.Join(envexport.Strategies, ", "))
	}

	env, err := loadEnvironment(cmd)
	if err != nil {
		return err
	}
	imported, err := envexport.ImportFile(args[0])
	if err != nil {
		return err
	}
	doc := imported.Document

	existing, err := env.customTemplates()
	if err != nil {
		return err
	}
	merge := envexport.MergeCustomTemplates(existing, doc.CustomTemplates)

	out := importOutput{
		SchemaVersion: doc.SchemaVersion,
		ExportedAt:    doc.ExportedAt,
		Hostname:      doc.Hostname,
		Warnings:      nonNil(imported.Warnings),
		New:           templateIDs(merge.New),
		Conflicts:     []string{},
		Identical:     nonNil(merge.Identical),
		Builtin:       nonNil(merge.Builtin),
		Saved:         []string{},
	}
	for _, c := range merge.Conflicts {
		out.Conflicts = append(out.Conflicts, c.Imported.ID)
	}

	if importApply {
		all, err := env.store.Templates()
		if err != nil {
			return err
		}
		taken := make(map[string]bool, len(all))
		for _, t := range all {
			taken[t.ID] = true
		}
		toSave, err := merge.Resolve(strategy, taken)
		if err != nil {
			return err
		}
		for _, t := range toSave {
			if err := env.store.Save(t); err != nil {
				return err
			}
			out.Saved = append(out.Saved, t.ID)
		}
	}

	p := printer(cmd)
	if p.Structured() {
		return p.PrintData(out)
	}
	printImportSummary(p, cmd.ErrOrStderr(), doc, out)
	return nil
}

func printImportSummary(p *cli.Printer, errOut io.Writer, doc *envexport.Document, out importOutput) {
	for _, w := range out.Warnings {
		fmt.Fprintln(errOut, cli.FormatWarning(w))
	}

	installed := 0
	for _, t := range doc.Tools {
		if t.Installed {
			installed++
		}
	}
	host := cli.ValueOrDash(doc.Hostname)
	p.Infof("Environment from %s, exported %s (schema %s)", host, doc.ExportedAt, doc.SchemaVersion)
	p.Infof("%s detected there, %d installed", cli.Plural(len(doc.Tools), "tool"), installed)

	tw := p.Table("template", "status")
	for _, id := range out.New {
		tw.AppendRow([]string{id, "new"})
	}
	for _, id := range out.Conflicts {
		tw.AppendRow([]string{id, "conflict"})
	}
	for _, id := range out.Identical {
		tw.AppendRow([]string{id, "identical"})
	}
	for _, id := range out.Builtin {
		tw.AppendRow([]string{id, "built-in, ignored"})
	}
	if len(out.New)+len(out.Conflicts)+len(out.Identical)+len(out.Builtin) > 0 {
		tw.Render()
	}

	if len(out.Saved) > 0 {
		p.Infof("%s", cli.FormatSuccess(fmt.Sprintf("Saved %s: %s", cli.Plural(len(out.Saved), "template"), strings.Join(out.Saved, ", "))))
	} else if len(out.New)+len(out.Conflicts) > 0 {
		p.Infof("Run with --apply to save the imported templates")
	}
}

package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// OutputFormat represents the supported output formats for CLI commands.
type OutputFormat string

const (
	// OutputFormatTable formats output as a kubectl-style plain table
	OutputFormatTable OutputFormat = "table"
	// OutputFormatWide formats output as a table with additional columns
	OutputFormatWide OutputFormat = "wide"
	// OutputFormatJSON formats output as indented JSON
	OutputFormatJSON OutputFormat = "json"
	// OutputFormatYAML formats output as YAML
	OutputFormatYAML OutputFormat = "yaml"
)

// ValidOutputFormats contains all valid output format values.
var ValidOutputFormats = []OutputFormat{
	OutputFormatTable,
	OutputFormatWide,
	OutputFormatJSON,
	OutputFormatYAML,
}

// ValidateOutputFormat validates that the given format string is a supported output format.
// Returns nil if valid, or an error with a helpful message listing valid formats.
func ValidateOutputFormat(format string) error {
	switch OutputFormat(format) {
	case OutputFormatTable, OutputFormatWide, OutputFormatJSON, OutputFormatYAML:
		return nil
	default:
		return fmt.Errorf("unsupported output format: %q (valid: table, wide, json, yaml)", format)
	}
}

// Printer writes command results in the selected format.
type Printer struct {
	Out       io.Writer
	Format    OutputFormat
	NoHeaders bool
	Quiet     bool
}

// Structured reports whether the output is JSON or YAML. Commands must not
// print anything but the data in that case.
func (p *Printer) Structured() bool {
	return p.Format == OutputFormatJSON || p.Format == OutputFormatYAML
}

// Wide reports whether tables should include the extra columns.
func (p *Printer) Wide() bool {
	return p.Format == OutputFormatWide
}

// PrintData writes data as JSON or YAML. For table formats the caller
// renders its own table and PrintData is not used.
func (p *Printer) PrintData(data interface{}) error {
	switch p.Format {
	case OutputFormatYAML:
		out, err := yaml.Marshal(data)
		if err != nil {
			return fmt.Errorf("failed to format YAML: %w", err)
		}
		_, err = p.Out.Write(out)
		return err
	default:
		out, err := json.MarshalIndent(data, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to format JSON: %w", err)
		}
		_, err = fmt.Fprintln(p.Out, string(out))
		return err
	}
}

// Table returns a PlainTableWriter honouring --no-headers.
func (p *Printer) Table(headers ...string) *PlainTableWriter {
	tw := NewPlainTableWriter(p.Out)
	tw.SetHeaders(headers)
	tw.SetNoHeaders(p.NoHeaders)
	return tw
}

// Infof prints a human-oriented message unless --quiet is set or the output
// is structured.
func (p *Printer) Infof(format string, args ...interface{}) {
	if p.Quiet || p.Structured() {
		return
	}
	fmt.Fprintf(p.Out, format+"\n", args...)
}

package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/text"
)

// columnGap separates adjacent columns.
const columnGap = 3

// PlainTableWriter writes kubectl-style tables: upper-case headers, columns
// separated by spaces, no borders. Cell widths ignore ANSI colour codes so
// coloured status cells stay aligned.
type PlainTableWriter struct {
	out       io.Writer
	header    []string
	rows      [][]string
	noHeaders bool
}

// NewPlainTableWriter creates a table writer that shows headers.
func NewPlainTableWriter(out io.Writer) *PlainTableWriter {
	return &PlainTableWriter{out: out}
}

// SetHeaders sets the column headers and with them the number of columns.
func (w *PlainTableWriter) SetHeaders(headers []string) {
	w.header = make([]string, 0, len(headers))
	for _, h := range headers {
		w.header = append(w.header, strings.ToUpper(h))
	}
}

// SetNoHeaders suppresses the header row.
func (w *PlainTableWriter) SetNoHeaders(noHeaders bool) {
	w.noHeaders = noHeaders
}

// AppendRow adds a row. Missing cells are left empty, extra cells dropped.
func (w *PlainTableWriter) AppendRow(row []string) {
	cells := make([]string, len(w.header))
	copy(cells, row)
	w.rows = append(w.rows, cells)
}

// Render writes the table. A table without columns, or with neither rows
// nor a header row, writes nothing.
func (w *PlainTableWriter) Render() {
	if len(w.header) == 0 || (len(w.rows) == 0 && w.noHeaders) {
		return
	}

	lines := w.rows
	if !w.noHeaders {
		lines = append([][]string{w.header}, w.rows...)
	}

	widths := make([]int, len(w.header))
	for _, line := range append([][]string{w.header}, w.rows...) {
		for i, cell := range line {
			widths[i] = max(widths[i], text.RuneWidthWithoutEscSequences(cell))
		}
	}

	for _, line := range lines {
		var sb strings.Builder
		last := len(line) - 1
		for i, cell := range line {
			sb.WriteString(cell)
			if i < last {
				sb.WriteString(strings.Repeat(" ", widths[i]+columnGap-text.RuneWidthWithoutEscSequences(cell)))
			}
		}
		fmt.Fprintln(w.out, strings.TrimRight(sb.String(), " "))
	}
}

package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func renderTable(headers []string, noHeaders bool, rows ...[]string) string {
	var buf bytes.Buffer
	tw := NewPlainTableWriter(&buf)
	tw.SetHeaders(headers)
	tw.SetNoHeaders(noHeaders)
	for _, row := range rows {
		tw.AppendRow(row)
	}
	tw.Render()
	return buf.String()
}

func TestPlainTableWriter(t *testing.T) {
	tests := []struct {
		name      string
		headers   []string
		noHeaders bool
		rows      [][]string
		want      string
	}{
		{
			name:    "headers are upper-cased and columns padded to the widest cell",
			headers: []string{"id", "name", "status"},
			rows: [][]string{
				{"fish", "Fish Shell", "installed"},
				{"claude-code", "Claude Code", "missing"},
			},
			want: "ID            NAME          STATUS\n" +
				"fish          Fish Shell    installed\n" +
				"claude-code   Claude Code   missing\n",
		},
		{
			name:      "no headers",
			headers:   []string{"id", "status"},
			noHeaders: true,
			rows:      [][]string{{"tmux", "installed"}},
			want:      "tmux   installed\n",
		},
		{
			name:    "header only when there are no rows",
			headers: []string{"id", "status"},
			want:    "ID   STATUS\n",
		},
		{
			name:      "nothing when there are no rows and no headers",
			headers:   []string{"id", "status"},
			noHeaders: true,
		},
		{
			name: "nothing without columns",
			rows: [][]string{{"tmux"}},
		},
		{
			name:    "short rows leave trailing cells empty",
			headers: []string{"id", "version", "dependencies"},
			rows:    [][]string{{"uv", "0.5.1"}, {"n"}},
			want: "ID   VERSION   DEPENDENCIES\n" +
				"uv   0.5.1\n" +
				"n\n",
		},
		{
			name:    "extra cells are dropped",
			headers: []string{"id"},
			rows:    [][]string{{"nvim", "Neovim", "installed"}},
			want:    "ID\nnvim\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, renderTable(tt.headers, tt.noHeaders, tt.rows...))
		})
	}
}

func TestPlainTableWriter_ColouredCellsAlign(t *testing.T) {
	out := renderTable([]string{"status", "id"}, false,
		[]string{text.FgGreen.Sprint("installed"), "node"},
		[]string{"missing", "uv"},
	)

	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "STATUS      ID", lines[0])
	assert.Equal(t, "missing     uv", lines[2])
	assert.Equal(t, "installed   node", text.StripEscape(lines[1]))
}

func TestPlainTableWriter_NoTrailingSpaces(t *testing.T) {
	out := renderTable([]string{"id", "path"}, false,
		[]string{"aerospace", ""},
		[]string{"git", "/usr/bin/git"},
	)

	for _, line := range strings.Split(out, "\n") {
		assert.Equal(t, strings.TrimRight(line, " "), line)
	}
}

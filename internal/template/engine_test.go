package template

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEngine_Render(t *testing.T) {
	e := New()
	ctx := MergeContexts(
		map[string]interface{}{KeyHomeDir: "/home/dev", KeyArch: "arm64", KeyBrewPrefix: "/opt/homebrew"},
		ToolContext("fish", "Fish Shell"),
	)

	tests := []struct {
		name     string
		input    string
		expected string
		wantErr  string
	}{
		{
			name:     "plain command untouched",
			input:    "npm install -g tree-sitter-cli",
			expected: "npm install -g tree-sitter-cli",
		},
		{
			name:     "shell substitution untouched",
			input:    `/bin/bash -c "$(curl -fsSL https://example.com/install.sh)"`,
			expected: `/bin/bash -c "$(curl -fsSL https://example.com/install.sh)"`,
		},
		{
			name:     "context values",
			input:    `echo 'eval "$({{ .BrewPrefix }}/bin/brew shellenv)"' >> {{ .HomeDir }}/.zprofile`,
			expected: `echo 'eval "$(/opt/homebrew/bin/brew shellenv)"' >> /home/dev/.zprofile`,
		},
		{
			name:     "sprig functions",
			input:    `echo {{ .ToolID | upper }} {{ .ToolName | quote }}`,
			expected: `echo FISH "Fish Shell"`,
		},
		{
			name:    "missing key",
			input:   "cd {{ .WorkDir }}",
			wantErr: "failed to render",
		},
		{
			name:    "syntax error",
			input:   "echo {{ .HomeDir ",
			wantErr: "invalid template",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := e.Render(tt.input, ctx)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestEngine_RenderEnv(t *testing.T) {
	t.Setenv("DEVENV_TEST_SHELL", "/usr/bin/fish")

	got, err := New().Render(`chsh -s {{ env "DEVENV_TEST_SHELL" }}`, nil)
	require.NoError(t, err)
	assert.Equal(t, "chsh -s /usr/bin/fish", got)
}

func TestEngine_RenderAll(t *testing.T) {
	e := New()
	ctx := map[string]interface{}{KeyHomeDir: "/h"}

	got, err := e.RenderAll([]string{"ls {{ .HomeDir }}", "true"}, ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"ls /h", "true"}, got)

	_, err = e.RenderAll([]string{"true", "{{ .Nope }}"}, ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error at index 1")
}

func TestBrewPrefix(t *testing.T) {
	assert.Equal(t, "/opt/homebrew", BrewPrefix("darwin", "arm64"))
	assert.Equal(t, "/usr/local", BrewPrefix("darwin", "amd64"))
	assert.Equal(t, "/home/linuxbrew/.linuxbrew", BrewPrefix("linux", "amd64"))
}

func TestHostContext(t *testing.T) {
	ctx := HostContext()
	for _, key := range []string{KeyOS, KeyArch, KeyHomeDir, KeyBrewPrefix} {
		assert.Contains(t, ctx, key)
	}
}

func TestMergeContexts(t *testing.T) {
	merged := MergeContexts(
		map[string]interface{}{"a": 1, "b": 2},
		map[string]interface{}{"b": 3},
		nil,
	)
	assert.Equal(t, map[string]interface{}{"a": 1, "b": 3}, merged)
}

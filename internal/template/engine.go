package template

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"
)

// Engine renders install script commands. Commands are Go text templates
// with the sprig function library, so a command may use {{ .HomeDir }},
// {{ env "SHELL" }} or {{ .Arch | upper }}.
type Engine struct {
	funcs template.FuncMap
}

// New creates a new template engine
func New() *Engine {
	return &Engine{funcs: sprig.TxtFuncMap()}
}

// Render renders one command against context. Referencing a key that is not
// in context is an error rather than an empty string, so a typo never turns
// into a command like "rm -rf /".
func (e *Engine) Render(text string, context map[string]interface{}) (string, error) {
	if !strings.Contains(text, "{{") {
		return text, nil
	}

	tmpl, err := template.New("command").
		Funcs(e.funcs).
		Option("missingkey=error").
		Parse(text)
	if err != nil {
		return "", fmt.Errorf("invalid template %q: %w", text, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, context); err != nil {
		return "", fmt.Errorf("failed to render %q: %w", text, err)
	}
	return buf.String(), nil
}

// RenderAll renders every command, stopping at the first failure.
func (e *Engine) RenderAll(texts []string, context map[string]interface{}) ([]string, error) {
	result := make([]string, len(texts))
	for i, text := range texts {
		rendered, err := e.Render(text, context)
		if err != nil {
			return nil, fmt.Errorf("error at index %d: %w", i, err)
		}
		result[i] = rendered
	}
	return result, nil
}

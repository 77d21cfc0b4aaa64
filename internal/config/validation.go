package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"time"

	"devenv/pkg/logging"
)

// Replaced in tests to exercise the macOS .app bundle rules.
var goos = runtime.GOOS

const maxTreeDepthLimit = 1000

// ValidationError is a problem with a single field.
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

func (ve ValidationError) Error() string {
	if ve.Field == "" {
		return ve.Message
	}
	return fmt.Sprintf("field '%s': %s", ve.Field, ve.Message)
}

// ValidationErrors collects every problem found in one document so they can
// be reported together.
type ValidationErrors []ValidationError

func (ve ValidationErrors) Error() string {
	switch len(ve) {
	case 0:
		return "no validation errors"
	case 1:
		return ve[0].Error()
	}
	messages := make([]string, len(ve))
	for i, e := range ve {
		messages[i] = e.Error()
	}
	return "validation failed: " + strings.Join(messages, "; ")
}

// Add records a problem with field. The optional value is the offending input.
func (ve *ValidationErrors) Add(field, message string, value ...interface{}) {
	e := ValidationError{Field: field, Message: message}
	if len(value) > 0 {
		e.Value = value[0]
	}
	*ve = append(*ve, e)
}

// AddErr appends err under field if err is not nil. A ValidationError keeps
// its own field name.
func (ve *ValidationErrors) AddErr(field string, err error) {
	if err == nil {
		return
	}
	if v, ok := err.(ValidationError); ok {
		*ve = append(*ve, v)
		return
	}
	ve.Add(field, err.Error())
}

// ErrOrNil returns nil for an empty collection.
func (ve ValidationErrors) ErrOrNil() error {
	if len(ve) == 0 {
		return nil
	}
	return ve
}

// ValidateRequired fails for an empty or blank value.
func ValidateRequired(field, value, entityType string) error {
	if strings.TrimSpace(value) == "" {
		return ValidationError{
			Field:   field,
			Value:   value,
			Message: fmt.Sprintf("is required for %s", entityType),
		}
	}
	return nil
}

// ValidateOneOf fails unless value is one of allowed.
func ValidateOneOf(field, value string, allowed []string) error {
	if slices.Contains(allowed, value) {
		return nil
	}
	return ValidationError{
		Field:   field,
		Value:   value,
		Message: "must be one of: " + strings.Join(allowed, ", "),
	}
}

// FormatValidationError prefixes err with the entity it was found in.
func FormatValidationError(entityType, entityName string, err error) error {
	if err == nil {
		return nil
	}

	if entityName != "" {
		return fmt.Errorf("validation failed for %s '%s': %w", entityType, entityName, err)
	}
	return fmt.Errorf("validation failed for %s: %w", entityType, err)
}

// NormalizePath trims whitespace; an empty result means "unset".
func NormalizePath(path string) string {
	return strings.TrimSpace(path)
}

// ValidateDownloadPath checks that path is an existing, writable directory.
func ValidateDownloadPath(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("path does not exist: %s", path)
		}
		return fmt.Errorf("cannot access %s: %w", path, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("path is not a directory: %s", path)
	}

	probe, err := os.CreateTemp(path, ".devenv-write-test-*")
	if err != nil {
		return fmt.Errorf("path is not writable: %s (%w)", path, err)
	}
	name := probe.Name()
	_, writeErr := probe.WriteString("test")
	closeErr := probe.Close()
	if rmErr := os.Remove(name); rmErr != nil {
		logging.Warn("ConfigLoader", "Could not remove write probe %s: %v", name, rmErr)
	}
	if writeErr != nil {
		return fmt.Errorf("path is not writable: %s (%w)", path, writeErr)
	}
	if closeErr != nil {
		return fmt.Errorf("path is not writable: %s (%w)", path, closeErr)
	}
	return nil
}

// ValidateEditorPath checks that path is an executable file, or on macOS an
// application bundle with a Contents directory.
func ValidateEditorPath(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("editor path does not exist: %s", path)
		}
		return fmt.Errorf("cannot access editor %s: %w", path, err)
	}

	if info.IsDir() {
		if goos != "darwin" || !strings.HasSuffix(path, ".app") {
			return fmt.Errorf("editor path is a directory, not an application: %s", path)
		}
		contents, err := os.Stat(filepath.Join(path, "Contents"))
		if err != nil || !contents.IsDir() {
			return fmt.Errorf("editor path looks like an .app bundle but has no Contents directory: %s", path)
		}
		return nil
	}

	if !info.Mode().IsRegular() {
		return fmt.Errorf("editor path is not a file: %s", path)
	}
	if goos != "windows" && info.Mode().Perm()&0111 == 0 {
		return fmt.Errorf("editor path is not executable: %s", path)
	}
	return nil
}

// Validate checks every setting and returns all problems at once.
func (c Config) Validate() error {
	var errs ValidationErrors

	if c.DownloadPath != "" {
		errs.AddErr("downloadPath", ValidateDownloadPath(c.DownloadPath))
	}
	if c.DefaultEditor != "" {
		errs.AddErr("defaultEditor", ValidateEditorPath(c.DefaultEditor))
	}
	if c.LogLevel != "" {
		if _, err := logging.ParseLevel(c.LogLevel); err != nil {
			errs.AddErr("logLevel", err)
		}
	}
	if c.Detection.Workers < 1 {
		errs.Add("detection.workers", "must be at least 1", c.Detection.Workers)
	}
	if c.Detection.Timeout < 100*time.Millisecond {
		errs.Add("detection.timeout", "must be at least 100ms", c.Detection.Timeout)
	}
	if c.Dependencies.MaxTreeDepth < 1 || c.Dependencies.MaxTreeDepth > maxTreeDepthLimit {
		errs.Add("dependencies.maxTreeDepth", fmt.Sprintf("must be between 1 and %d", maxTreeDepthLimit), c.Dependencies.MaxTreeDepth)
	}

	return errs.ErrOrNil()
}

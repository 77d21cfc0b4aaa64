package catalog

import "errors"

var (
	// ErrBuiltinTemplate is returned when a custom template would replace or
	// delete a built-in one.
	ErrBuiltinTemplate = errors.New("cannot modify built-in template")

	// ErrTemplateNotFound is returned for ids that are neither built-in nor custom.
	ErrTemplateNotFound = errors.New("template not found")
)

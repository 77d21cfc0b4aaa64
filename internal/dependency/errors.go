package dependency

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownTool is matched by every error about an id missing from the catalog.
	ErrUnknownTool = errors.New("unknown tool")

	// ErrCircularDependency is returned when the requested tools depend on each other in a loop.
	ErrCircularDependency = errors.New("circular dependency detected")

	// ErrTreeTooDeep is returned when tree expansion exceeds the maximum depth.
	ErrTreeTooDeep = errors.New("dependency tree too deep")
)

// UnknownToolError reports the id that has no catalog entry.
type UnknownToolError struct {
	ID string
}

func (e *UnknownToolError) Error() string {
	return fmt.Sprintf("unknown tool ID: %s", e.ID)
}

// Is makes errors.Is(err, ErrUnknownTool) work for wrapped UnknownToolErrors.
func (e *UnknownToolError) Is(target error) bool {
	return target == ErrUnknownTool
}

// TreeTooDeepError reports where tree expansion hit the depth ceiling.
type TreeTooDeepError struct {
	ID       string
	MaxDepth int
}

func (e *TreeTooDeepError) Error() string {
	return fmt.Sprintf("dependency tree too deep at %s (max depth %d) - possible circular dependency", e.ID, e.MaxDepth)
}

func (e *TreeTooDeepError) Is(target error) bool {
	return target == ErrTreeTooDeep
}

// IsUnknownTool reports whether err is caused by a missing catalog entry.
func IsUnknownTool(err error) bool {
	return errors.Is(err, ErrUnknownTool)
}

// IsCircularDependency reports whether err is caused by a dependency cycle.
func IsCircularDependency(err error) bool {
	return errors.Is(err, ErrCircularDependency)
}

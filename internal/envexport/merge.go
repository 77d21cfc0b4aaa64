package envexport

import (
	"fmt"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"devenv/internal/catalog"
)

// Strategy decides what happens to an imported template whose ID is already
// taken by a different custom template.
type Strategy string

const (
	StrategySkip      Strategy = "skip"
	StrategyOverwrite Strategy = "overwrite"
	StrategyRename    Strategy = "rename"
)

// Strategies lists the valid strategies.
var Strategies = []string{string(StrategySkip), string(StrategyOverwrite), string(StrategyRename)}

// Conflict pairs an imported template with the existing one of the same ID.
type Conflict struct {
	Imported catalog.ToolTemplate
	Existing catalog.ToolTemplate
}

// MergeResult classifies imported custom templates against the existing ones.
type MergeResult struct {
	New       []catalog.ToolTemplate
	Conflicts []Conflict
	Identical []string
	// Builtin holds imported IDs that collide with a built-in template.
	Builtin []string
}

// HasConflicts reports whether any imported template differs from an
// existing one with the same ID.
func (r MergeResult) HasConflicts() bool {
	return len(r.Conflicts) > 0
}

func sameTemplate(a, b catalog.ToolTemplate) bool {
	return cmp.Equal(a, b, cmpopts.EquateEmpty())
}

// MergeCustomTemplates compares imported templates with existing ones.
// Imported templates keep their order in every list.
func MergeCustomTemplates(existing, imported []catalog.ToolTemplate) MergeResult {
	var result MergeResult
	seen := make(map[string]bool)

	for _, t := range imported {
		if seen[t.ID] {
			continue
		}
		seen[t.ID] = true

		if catalog.IsBuiltin(t.ID) {
			result.Builtin = append(result.Builtin, t.ID)
			continue
		}
		current, ok := catalog.Find(existing, t.ID)
		switch {
		case !ok:
			result.New = append(result.New, t)
		case sameTemplate(current, t):
			result.Identical = append(result.Identical, t.ID)
		default:
			result.Conflicts = append(result.Conflicts, Conflict{Imported: t, Existing: current})
		}
	}
	return result
}

// Resolve returns the templates to save for the given strategy: every new
// template plus the conflicting ones handled according to strategy. Renamed
// templates get a unique "<id>-imported" ID.
func (r MergeResult) Resolve(strategy Strategy, existingIDs map[string]bool) ([]catalog.ToolTemplate, error) {
	switch strategy {
	case StrategySkip, StrategyOverwrite, StrategyRename:
	default:
		return nil, fmt.Errorf("unknown merge strategy %q", strategy)
	}

	out := append([]catalog.ToolTemplate{}, r.New...)

	taken := make(map[string]bool, len(existingIDs)+len(r.New))
	for id := range existingIDs {
		taken[id] = true
	}
	for _, t := range r.New {
		taken[t.ID] = true
	}

	for _, c := range r.Conflicts {
		switch strategy {
		case StrategyOverwrite:
			out = append(out, c.Imported)
		case StrategyRename:
			renamed := c.Imported
			renamed.ID = UniqueID(c.Imported.ID, taken)
			renamed.Name = c.Imported.Name + " (imported)"
			taken[renamed.ID] = true
			out = append(out, renamed)
		}
	}
	return out, nil
}

// UniqueID returns "<base>-imported", or "<base>-imported-N" with the
// smallest N that is not taken.
func UniqueID(base string, taken map[string]bool) string {
	id := base + "-imported"
	for n := 1; taken[id]; n++ {
		id = fmt.Sprintf("%s-imported-%d", base, n)
	}
	return id
}

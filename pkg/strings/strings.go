package strings

import (
	"path/filepath"
	"strings"
)

// DefaultCellMaxLen is the widest a free-text cell may get in table output.
const DefaultCellMaxLen = 60

// MinTruncateLen is the smallest useful maxLen: one character plus "...".
const MinTruncateLen = 4

// SingleLine collapses all whitespace runs, including newlines, into single
// spaces and trims the ends. Version commands often print multi-line banners.
func SingleLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Truncate makes s single-line and cuts it to maxLen runes, ending in "..."
// when shortened. maxLen below MinTruncateLen is clamped.
func Truncate(s string, maxLen int) string {
	if maxLen < MinTruncateLen {
		maxLen = MinTruncateLen
	}
	s = SingleLine(s)

	runes := []rune(s)
	if len(runes) > maxLen {
		return string(runes[:maxLen-3]) + "..."
	}
	return s
}

// TruncatePath shortens a path from the left so that the file name stays
// visible, e.g. ".../fish/config.fish".
func TruncatePath(path string, maxLen int) string {
	if maxLen < MinTruncateLen {
		maxLen = MinTruncateLen
	}
	runes := []rune(path)
	if len(runes) <= maxLen {
		return path
	}
	return "..." + string(runes[len(runes)-(maxLen-3):])
}

// TildePath replaces a leading home directory with "~".
func TildePath(path, home string) string {
	if home == "" {
		return path
	}
	home = filepath.Clean(home)
	clean := filepath.Clean(path)
	if clean == home {
		return "~"
	}
	if rest, ok := strings.CutPrefix(clean, home+string(filepath.Separator)); ok {
		return "~" + string(filepath.Separator) + rest
	}
	return path
}

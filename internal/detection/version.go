package detection

import (
	"regexp"
	"strings"

	"devenv/internal/catalog"
)

var versionPattern = regexp.MustCompile(`[0-9][0-9.]*`)

// ParseVersion extracts the version from the output of a version command.
//
// ParserStdout reads stdout and falls back to stderr, ParserStderr does the
// opposite. Both return the first numeric run of the first line, so
// "NVIM v0.10.0" yields "0.10.0". ParserStdoutFirstLine returns the first
// stdout line as is. An empty string means no version was found.
func ParseVersion(parser string, stdout, stderr []byte) string {
	out, errOut := string(stdout), string(stderr)

	switch parser {
	case catalog.ParserStdoutFirstLine:
		return firstLine(out)
	case catalog.ParserStderr:
		out, errOut = errOut, out
	}

	text := out
	if strings.TrimSpace(text) == "" {
		text = errOut
	}
	return extractVersion(firstLine(text))
}

func extractVersion(line string) string {
	match := versionPattern.FindString(line)
	return strings.TrimRight(match, ".")
}

func firstLine(s string) string {
	s = strings.TrimLeft(s, "\r\n")
	if i := strings.IndexAny(s, "\r\n"); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}

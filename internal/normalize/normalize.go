// Package normalize converts raw source text into the comparable line
// sequences the rest of the pipeline works on. Normalization is lossy on
// purpose: indentation, interior whitespace runs, blank lines and
// comment-only lines never prevent a match.
package normalize

import (
	"path/filepath"
	"strings"
	"unicode"
)

// Line is one surviving source line: its 1-based position in the original
// file and its normalized text.
type Line struct {
	Number int
	Text   string
}

// commentPrefixes maps file extensions to their single-line comment marker.
var commentPrefixes = map[string]string{
	// C-style
	".go":    "//",
	".c":     "//",
	".h":     "//",
	".cpp":   "//",
	".hpp":   "//",
	".cc":    "//",
	".cxx":   "//",
	".java":  "//",
	".js":    "//",
	".jsx":   "//",
	".ts":    "//",
	".tsx":   "//",
	".cs":    "//",
	".swift": "//",
	".kt":    "//",
	".kts":   "//",
	".scala": "//",
	".rs":    "//",
	".php":   "//",
	".m":     "//",
	".mm":    "//",
	".dart":  "//",
	".zig":   "//",
	// Hash-style
	".py":   "#",
	".rb":   "#",
	".sh":   "#",
	".bash": "#",
	".zsh":  "#",
	".pl":   "#",
	".pm":   "#",
	".r":    "#",
	".yaml": "#",
	".yml":  "#",
	".toml": "#",
	".tf":   "#",
	".mk":   "#",
	".ps1":  "#",
	".nim":  "#",
	".jl":   "#",
	".ex":   "#",
	".exs":  "#",
	// Double-dash style
	".sql": "--",
	".lua": "--",
	".hs":  "--",
	".elm": "--",
	// Semicolon style
	".lisp": ";",
	".scm":  ";",
	".clj":  ";",
	".el":   ";",
	// Percent style
	".tex": "%",
	".erl": "%",
	".hrl": "%",
	// Apostrophe style
	".vb":  "'",
	".bas": "'",
	".vbs": "'",
}

// PrefixForFile returns the single-line comment marker for a file path,
// chosen by extension. Unknown extensions fall back to "//".
func PrefixForFile(path string) string {
	if prefix, ok := commentPrefixes[strings.ToLower(filepath.Ext(path))]; ok {
		return prefix
	}
	return "//"
}

// Normalize splits raw file text into lines, trims and collapses
// whitespace, and drops blank and comment-only lines. Surviving lines keep
// their original line numbers so reported spans point at the real source.
func Normalize(raw string, commentPrefix string) []Line {
	rawLines := strings.Split(raw, "\n")
	out := make([]Line, 0, len(rawLines))
	for i, rawLine := range rawLines {
		text := collapseWhitespace(rawLine)
		if text == "" {
			continue
		}
		if commentPrefix != "" && strings.HasPrefix(text, commentPrefix) {
			continue
		}
		out = append(out, Line{Number: i + 1, Text: text})
	}
	return out
}

// collapseWhitespace trims the line and reduces every interior whitespace
// run to a single space.
func collapseWhitespace(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	pendingSpace := false
	for _, r := range strings.TrimSpace(s) {
		if unicode.IsSpace(r) {
			pendingSpace = true
			continue
		}
		if pendingSpace {
			b.WriteByte(' ')
			pendingSpace = false
		}
		b.WriteRune(r)
	}
	return b.String()
}

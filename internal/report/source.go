package report

import (
	"fmt"
	"os"
	"strings"
)

// quoteSource reads lines start..end (1-based, inclusive) from a file and
// strips their common leading indentation so quoted blocks line up in the
// detail view.
func quoteSource(path string, start, end int) []string {
	data, err := os.ReadFile(path)
	if err != nil {
		return []string{fmt.Sprintf("(unreadable: %v)", err)}
	}

	all := strings.Split(string(data), "\n")
	if start < 1 {
		start = 1
	}
	if end > len(all) {
		end = len(all)
	}
	if start > end {
		return nil
	}
	lines := all[start-1 : end]

	minIndent := -1
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		indent := leadingWidth(line)
		if minIndent < 0 || indent < minIndent {
			minIndent = indent
		}
	}
	if minIndent <= 0 {
		return lines
	}

	out := make([]string, len(lines))
	for i, line := range lines {
		out[i] = stripIndent(line, minIndent)
	}
	return out
}

// leadingWidth measures leading whitespace, counting tabs as four columns.
func leadingWidth(line string) int {
	width := 0
	for _, r := range line {
		switch r {
		case ' ':
			width++
		case '\t':
			width += 4
		default:
			return width
		}
	}
	return width
}

// stripIndent removes up to width columns of leading whitespace.
func stripIndent(line string, width int) string {
	stripped := 0
	for i, r := range line {
		if stripped >= width {
			return line[i:]
		}
		switch r {
		case ' ':
			stripped++
		case '\t':
			stripped += 4
		default:
			return line[i:]
		}
	}
	return ""
}

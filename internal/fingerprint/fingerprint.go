// Package fingerprint slides a fixed-size window over each file's
// normalized lines and hashes every window position. Matching hashes across
// the corpus are the raw duplicate signal the matcher refines.
package fingerprint

import (
	"github.com/cespare/xxhash/v2"

	"dupscan/internal/normalize"
)

// Window is a contiguous run of exactly minLines normalized lines within
// one file.
type Window struct {
	File      string
	Index     int // start offset in the file's normalized line sequence
	StartLine int // original line number of the first line
	EndLine   int // original line number of the last line
	Hash      uint64
}

// Hash digests a window's worth of normalized lines. The digest is stable
// across runs but not collision-proof; the matcher verifies text equality
// before trusting it.
func Hash(lines []normalize.Line) uint64 {
	d := xxhash.New()
	for _, line := range lines {
		d.WriteString(line.Text)
		d.WriteString("\n")
	}
	return d.Sum64()
}

// File emits one window per valid start offset, sliding by one line.
// A file with fewer than minLines normalized lines emits nothing.
func File(path string, lines []normalize.Line, minLines int) []Window {
	if minLines < 1 || len(lines) < minLines {
		return nil
	}
	windows := make([]Window, 0, len(lines)-minLines+1)
	for i := 0; i+minLines <= len(lines); i++ {
		span := lines[i : i+minLines]
		windows = append(windows, Window{
			File:      path,
			Index:     i,
			StartLine: span[0].Number,
			EndLine:   span[minLines-1].Number,
			Hash:      Hash(span),
		})
	}
	return windows
}

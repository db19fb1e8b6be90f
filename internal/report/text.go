package report

import (
	"fmt"
	"io"

	"dupscan/internal/scan"
)

// Text writes the classic human-readable report.
type Text struct {
	Out io.Writer
}

// Write renders one entry per group: span length plus every occurrence,
// followed by the skipped-file warnings.
func (t Text) Write(res *scan.Result) error {
	if len(res.Groups) == 0 {
		if _, err := fmt.Fprintln(t.Out, "No duplicate code blocks found."); err != nil {
			return err
		}
	} else {
		if _, err := fmt.Fprintf(t.Out, "Code Duplication Report:\n\n"); err != nil {
			return err
		}
		for _, group := range res.Groups {
			fmt.Fprintf(t.Out, "Duplicate block (%d lines, %d occurrences):\n", group.Length, len(group.Occurrences))
			for _, occ := range group.Occurrences {
				fmt.Fprintf(t.Out, "  File: %s, Lines: %d-%d\n", occ.File, occ.StartLine, occ.EndLine)
			}
			fmt.Fprintln(t.Out)
		}
	}

	if len(res.Skipped) > 0 {
		fmt.Fprintln(t.Out, "Skipped files:")
		for _, skipped := range res.Skipped {
			fmt.Fprintf(t.Out, "  %s: %s\n", skipped.Path, skipped.Reason)
		}
	}
	return nil
}

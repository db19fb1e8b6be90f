package report

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"dupscan/internal/scan"
)

// GitHub emits GitHub Actions workflow annotations, one per group anchored
// at its first occurrence, so duplicates show up inline on pull requests.
type GitHub struct {
	Out   io.Writer
	Level string // notice, warning, or error
}

func (g GitHub) Write(res *scan.Result) error {
	level := g.Level
	if level == "" {
		level = "warning"
	}
	for _, group := range res.Groups {
		first := group.Occurrences[0]
		others := make([]string, 0, len(group.Occurrences)-1)
		for _, occ := range group.Occurrences[1:] {
			others = append(others, fmt.Sprintf("%s:%d", filepath.Base(occ.File), occ.StartLine))
		}
		_, err := fmt.Fprintf(g.Out, "::%s file=%s,line=%d,endLine=%d,title=Duplicate code (%d lines, %d occurrences)::Duplicate code also at: %s\n",
			level, first.File, first.StartLine, first.EndLine,
			group.Length, len(group.Occurrences), strings.Join(others, ", "))
		if err != nil {
			return err
		}
	}
	return nil
}

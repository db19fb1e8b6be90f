package report

import (
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"dupscan/internal/scan"
)

// Theme is the color scheme for console output.
type Theme struct {
	Span     lipgloss.Style
	Location lipgloss.Style
	LineNum  lipgloss.Style
	Summary  lipgloss.Style
	Dim      lipgloss.Style
	Warn     lipgloss.Style
}

// DefaultTheme is the default color scheme.
var DefaultTheme = Theme{
	Span:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212")),
	Location: lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
	LineNum:  lipgloss.NewStyle().Foreground(lipgloss.Color("221")),
	Summary:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("82")),
	Dim:      lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	Warn:     lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
}

// Terminal renders a styled console summary: the group listing, duplication
// hotspots, skip warnings, and a markdown detail view of the top groups.
type Terminal struct {
	Out   io.Writer
	Top   int // groups to quote in detail, 0 disables the detail view
	Theme Theme
}

// NewTerminal builds a Terminal reporter with the default theme.
func NewTerminal(out io.Writer, top int) Terminal {
	return Terminal{Out: out, Top: top, Theme: DefaultTheme}
}

func (t Terminal) Write(res *scan.Result) error {
	theme := t.Theme

	fmt.Fprintf(t.Out, "Found %s duplicate groups in %s files (%s lines) in %s\n",
		theme.Summary.Render(fmt.Sprintf("%d", len(res.Groups))),
		theme.Summary.Render(fmt.Sprintf("%d", res.FilesScanned)),
		theme.Summary.Render(fmt.Sprintf("%d", res.LineCount)),
		theme.Summary.Render(res.Elapsed.Round(time.Millisecond).String()))

	for _, group := range res.Groups {
		fmt.Fprintf(t.Out, "\n%s %s:\n",
			theme.Span.Render(fmt.Sprintf("%d lines", group.Length)),
			theme.Dim.Render(fmt.Sprintf("found %d times", len(group.Occurrences))))
		for _, occ := range group.Occurrences {
			fmt.Fprintf(t.Out, "  %s%s%s\n",
				theme.Location.Render(occ.File),
				theme.Dim.Render(":"),
				theme.LineNum.Render(fmt.Sprintf("%d-%d", occ.StartLine, occ.EndLine)))
		}
	}

	t.writeHotspots(res)

	if len(res.Skipped) > 0 {
		fmt.Fprintf(t.Out, "\n%s\n", theme.Warn.Render(fmt.Sprintf("Skipped %d files:", len(res.Skipped))))
		for _, skipped := range res.Skipped {
			fmt.Fprintf(t.Out, "  %s %s\n",
				theme.Location.Render(skipped.Path),
				theme.Dim.Render("("+skipped.Reason+")"))
		}
	}

	if t.Top > 0 && len(res.Groups) > 0 {
		if err := t.writeDetails(res); err != nil {
			return err
		}
	}
	return nil
}

// writeHotspots lists the files carrying the most duplicated lines.
func (t Terminal) writeHotspots(res *scan.Result) {
	dupLines := make(map[string]int)
	for _, group := range res.Groups {
		for _, occ := range group.Occurrences {
			dupLines[occ.File] += group.Length
		}
	}
	if len(dupLines) == 0 {
		return
	}

	type hotspot struct {
		file  string
		lines int
	}
	hotspots := make([]hotspot, 0, len(dupLines))
	for file, lines := range dupLines {
		hotspots = append(hotspots, hotspot{file, lines})
	}
	sort.Slice(hotspots, func(i, j int) bool {
		if hotspots[i].lines != hotspots[j].lines {
			return hotspots[i].lines > hotspots[j].lines
		}
		return hotspots[i].file < hotspots[j].file
	})
	if len(hotspots) > 5 {
		hotspots = hotspots[:5]
	}

	fmt.Fprintf(t.Out, "\n%s\n", t.Theme.Summary.Render("Duplication hotspots (lines):"))
	for _, h := range hotspots {
		fmt.Fprintf(t.Out, "  %s %s\n",
			t.Theme.LineNum.Render(fmt.Sprintf("%4d", h.lines)),
			t.Theme.Location.Render(h.file))
	}
}

// writeDetails renders the top groups as markdown with the duplicated
// source quoted, through glamour.
func (t Terminal) writeDetails(res *scan.Result) error {
	top := t.Top
	if len(res.Groups) < top {
		top = len(res.Groups)
	}

	var sb strings.Builder
	sb.WriteString("# Duplicate code\n\n")
	for i, group := range res.Groups[:top] {
		sb.WriteString(fmt.Sprintf("## Group %d — %d lines, %d occurrences\n\n", i+1, group.Length, len(group.Occurrences)))
		for _, occ := range group.Occurrences {
			sb.WriteString(fmt.Sprintf("### `%s:%d`\n\n", occ.File, occ.StartLine))
			sb.WriteString(fmt.Sprintf("```%s\n", languageForFile(occ.File)))
			for _, line := range quoteSource(occ.File, occ.StartLine, occ.EndLine) {
				sb.WriteString(line)
				sb.WriteByte('\n')
			}
			sb.WriteString("```\n\n")
		}
	}

	renderer, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(0))
	if err != nil {
		// No styled renderer available; fall back to plain markdown.
		_, werr := io.WriteString(t.Out, sb.String())
		return werr
	}
	rendered, err := renderer.Render(sb.String())
	if err != nil {
		_, werr := io.WriteString(t.Out, sb.String())
		return werr
	}
	_, err = io.WriteString(t.Out, rendered)
	return err
}

// languageForFile maps a file to a markdown code fence language hint.
func languageForFile(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".go":
		return "go"
	case ".py":
		return "python"
	case ".js", ".jsx":
		return "javascript"
	case ".ts", ".tsx":
		return "typescript"
	case ".java":
		return "java"
	case ".rb":
		return "ruby"
	case ".rs":
		return "rust"
	case ".c", ".h":
		return "c"
	case ".cpp", ".hpp", ".cc":
		return "cpp"
	case ".cs":
		return "csharp"
	case ".sh", ".bash":
		return "bash"
	case ".sql":
		return "sql"
	default:
		return strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	}
}

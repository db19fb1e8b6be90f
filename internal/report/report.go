// Package report renders completed scan results. The scan core only
// depends on the Reporter interface; every output format lives here.
package report

import (
	"dupscan/internal/scan"
)

// Reporter consumes a finished scan result and renders it somewhere.
type Reporter interface {
	Write(res *scan.Result) error
}

// Document is the serializable report shape shared by the JSON and YAML
// formats.
type Document struct {
	TotalGroups  int           `json:"total_groups" yaml:"total_groups"`
	FilesScanned int           `json:"files_scanned" yaml:"files_scanned"`
	TotalLines   int           `json:"total_lines" yaml:"total_lines"`
	Groups       []GroupEntry  `json:"groups" yaml:"groups"`
	SkippedFiles []SkipEntry   `json:"skipped_files,omitempty" yaml:"skipped_files,omitempty"`
}

// GroupEntry is one duplicate group in a serialized report.
type GroupEntry struct {
	Lines       int               `json:"lines" yaml:"lines"`
	Occurrences []OccurrenceEntry `json:"occurrences" yaml:"occurrences"`
}

// OccurrenceEntry is one location of a duplicated span.
type OccurrenceEntry struct {
	File      string `json:"file" yaml:"file"`
	StartLine int    `json:"start_line" yaml:"start_line"`
	EndLine   int    `json:"end_line" yaml:"end_line"`
}

// SkipEntry is a file the scan could not analyze.
type SkipEntry struct {
	File   string `json:"file" yaml:"file"`
	Reason string `json:"reason" yaml:"reason"`
}

// BuildDocument converts a scan result into its serializable form.
func BuildDocument(res *scan.Result) Document {
	doc := Document{
		TotalGroups:  len(res.Groups),
		FilesScanned: res.FilesScanned,
		TotalLines:   res.LineCount,
		Groups:       make([]GroupEntry, 0, len(res.Groups)),
	}
	for _, group := range res.Groups {
		entry := GroupEntry{Lines: group.Length}
		for _, occ := range group.Occurrences {
			entry.Occurrences = append(entry.Occurrences, OccurrenceEntry{
				File:      occ.File,
				StartLine: occ.StartLine,
				EndLine:   occ.EndLine,
			})
		}
		doc.Groups = append(doc.Groups, entry)
	}
	for _, skipped := range res.Skipped {
		doc.SkippedFiles = append(doc.SkippedFiles, SkipEntry{File: skipped.Path, Reason: skipped.Reason})
	}
	return doc
}

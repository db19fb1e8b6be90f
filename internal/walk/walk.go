// Package walk discovers candidate source files and applies exclusion
// patterns. The scan core trusts the list it produces and never re-checks
// exclusions.
package walk

import (
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
)

// defaultExtensions is the set scanned when the caller gives no explicit
// extension filter.
var defaultExtensions = []string{
	".go", ".c", ".h", ".cpp", ".hpp", ".cc", ".java", ".js", ".jsx",
	".ts", ".tsx", ".cs", ".swift", ".kt", ".scala", ".rs", ".php",
	".py", ".rb", ".sh", ".pl", ".lua", ".sql", ".ex", ".exs", ".dart",
}

// Discover walks root and returns a sorted, deduplicated list of candidate
// file paths. A file survives when its extension is in exts (or in the
// default source set when exts is empty) and neither its base name matches
// an exclude pattern (filepath.Match) nor its path contains a pattern as a
// substring. Directories matching a pattern are pruned whole; .git is
// always pruned.
func Discover(root string, exts []string, excludePatterns []string) ([]string, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	if len(exts) == 0 {
		exts = defaultExtensions
	}

	seen := make(map[string]struct{})
	var files []string
	err = filepath.WalkDir(absRoot, func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() {
			if entry.Name() == ".git" {
				return filepath.SkipDir
			}
			if path != absRoot && excluded(path, entry.Name(), excludePatterns) {
				return filepath.SkipDir
			}
			return nil
		}
		if !entry.Type().IsRegular() {
			return nil
		}
		if excluded(path, entry.Name(), excludePatterns) {
			return nil
		}
		if !hasExtension(path, exts) {
			return nil
		}
		if _, ok := seen[path]; ok {
			return nil
		}
		seen[path] = struct{}{}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

func excluded(path, base string, patterns []string) bool {
	for _, pattern := range patterns {
		if matched, _ := filepath.Match(pattern, base); matched {
			return true
		}
		if strings.Contains(path, pattern) {
			return true
		}
	}
	return false
}

func hasExtension(path string, exts []string) bool {
	ext := filepath.Ext(path)
	for _, want := range exts {
		if strings.EqualFold(ext, want) {
			return true
		}
	}
	return false
}

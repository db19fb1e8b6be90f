// Package match turns the fingerprint index into reportable duplicate
// groups: it verifies hash matches against the underlying text, merges
// adjacent window matches into maximal spans, and orders the result
// deterministically.
package match

import (
	"sort"
	"strings"

	"dupscan/internal/fingerprint"
	"dupscan/internal/normalize"
)

// Occurrence locates one copy of a duplicated span in the original source.
type Occurrence struct {
	File      string
	StartLine int
	EndLine   int
}

// Group is the reportable unit: a content-equal span of normalized lines
// found at two or more locations. Length counts normalized lines, so every
// occurrence covers the same amount of code even when their raw line ranges
// differ by blank or comment lines.
type Group struct {
	Length      int
	Occurrences []Occurrence
}

type position struct {
	file  string
	index int
}

// pairKey identifies a file pair at a fixed relative offset. Windows of the
// same pair whose start indices form a consecutive run merge into one
// maximal span.
type pairKey struct {
	fileA string
	fileB string
	delta int
}

type spanOcc struct {
	file   string
	index  int
	length int
}

type candidate struct {
	length int
	occs   []spanOcc
}

// Groups consumes the index and produces the final duplicate groups.
// corpus holds every scanned file's normalized lines and backs both the
// hash-collision guard and the line-number translation. The returned count
// is the number of hash buckets whose windows disagreed on text (excluded
// from grouping, surfaced as a statistic).
func Groups(idx *fingerprint.Index, corpus map[string][]normalize.Line, minLines int) ([]Group, int) {
	collisions := 0

	// Step 1: verify each bucket's windows really share their text. A
	// bucket can split into several verified sets when hashes collide.
	var verified [][]position
	idx.Buckets(func(_ uint64, windows []fingerprint.Window) {
		byText := make(map[string][]position)
		for _, w := range windows {
			text := spanText(corpus, w.File, w.Index, minLines)
			byText[text] = append(byText[text], position{file: w.File, index: w.Index})
		}
		if len(byText) > 1 {
			collisions++
		}
		for _, positions := range byText {
			if len(positions) >= 2 {
				verified = append(verified, positions)
			}
		}
	})

	// Step 2+3: pair up occurrences and merge runs of consecutive start
	// indices per (file pair, relative offset) into maximal spans.
	pairs := make(map[pairKey][]int)
	for _, positions := range verified {
		sort.Slice(positions, func(i, j int) bool {
			if positions[i].file != positions[j].file {
				return positions[i].file < positions[j].file
			}
			return positions[i].index < positions[j].index
		})
		for i := 0; i < len(positions); i++ {
			for j := i + 1; j < len(positions); j++ {
				a, b := positions[i], positions[j]
				key := pairKey{fileA: a.file, fileB: b.file, delta: b.index - a.index}
				pairs[key] = append(pairs[key], a.index)
			}
		}
	}

	// Step 4: group merged spans by their full content, deduplicating the
	// occurrences each file pair contributed.
	occsByContent := make(map[string]map[spanOcc]struct{})
	for key, starts := range pairs {
		sort.Ints(starts)
		for runStart := 0; runStart < len(starts); {
			runEnd := runStart
			for runEnd+1 < len(starts) && starts[runEnd+1] == starts[runEnd]+1 {
				runEnd++
			}
			first := starts[runStart]
			length := minLines + (runEnd - runStart)
			content := spanText(corpus, key.fileA, first, length)
			set := occsByContent[content]
			if set == nil {
				set = make(map[spanOcc]struct{})
				occsByContent[content] = set
			}
			set[spanOcc{file: key.fileA, index: first, length: length}] = struct{}{}
			set[spanOcc{file: key.fileB, index: first + key.delta, length: length}] = struct{}{}
			runStart = runEnd + 1
		}
	}

	var candidates []candidate
	for _, set := range occsByContent {
		occs := make([]spanOcc, 0, len(set))
		for occ := range set {
			occs = append(occs, occ)
		}
		occs = dropOverlapping(occs)
		if len(occs) < 2 {
			continue
		}
		candidates = append(candidates, candidate{length: occs[0].length, occs: occs})
	}

	// Longer spans first so subsumption checks only look at already-kept
	// candidates.
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].length != candidates[j].length {
			return candidates[i].length > candidates[j].length
		}
		if candidates[i].occs[0].file != candidates[j].occs[0].file {
			return candidates[i].occs[0].file < candidates[j].occs[0].file
		}
		return candidates[i].occs[0].index < candidates[j].occs[0].index
	})

	var kept []candidate
	for _, c := range candidates {
		if subsumed(c.occs, kept) {
			continue
		}
		kept = append(kept, c)
	}

	// Step 5: translate indices back to original line numbers. Candidates
	// are already in final order.
	groups := make([]Group, 0, len(kept))
	for _, c := range kept {
		group := Group{Length: c.length}
		for _, occ := range c.occs {
			lines := corpus[occ.file]
			group.Occurrences = append(group.Occurrences, Occurrence{
				File:      occ.file,
				StartLine: lines[occ.index].Number,
				EndLine:   lines[occ.index+occ.length-1].Number,
			})
		}
		groups = append(groups, group)
	}
	return groups, collisions
}

// spanText joins length normalized lines starting at index.
func spanText(corpus map[string][]normalize.Line, file string, index, length int) string {
	lines := corpus[file]
	var b strings.Builder
	for _, line := range lines[index : index+length] {
		b.WriteString(line.Text)
		b.WriteByte('\n')
	}
	return b.String()
}

// dropOverlapping sorts occurrences and removes those overlapping an
// earlier occurrence in the same file, so a periodic block is not reported
// against itself.
func dropOverlapping(occs []spanOcc) []spanOcc {
	sort.Slice(occs, func(i, j int) bool {
		if occs[i].file != occs[j].file {
			return occs[i].file < occs[j].file
		}
		return occs[i].index < occs[j].index
	})
	kept := occs[:0]
	lastFile := ""
	lastEnd := -1
	for _, occ := range occs {
		if occ.file == lastFile && occ.index < lastEnd {
			continue
		}
		kept = append(kept, occ)
		lastFile = occ.file
		lastEnd = occ.index + occ.length
	}
	return kept
}

// subsumed reports whether every occurrence is contained inside some
// occurrence of a longer, already-kept candidate.
func subsumed(occs []spanOcc, kept []candidate) bool {
	for _, k := range kept {
		if k.length <= occs[0].length {
			continue
		}
		if coveredBy(occs, k.occs) {
			return true
		}
	}
	return false
}

func coveredBy(occs, container []spanOcc) bool {
	for _, occ := range occs {
		contained := false
		for _, c := range container {
			if c.file == occ.file && c.index <= occ.index && occ.index+occ.length <= c.index+c.length {
				contained = true
				break
			}
		}
		if !contained {
			return false
		}
	}
	return true
}

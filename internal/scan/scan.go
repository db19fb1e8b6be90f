// Package scan drives the duplicate-detection pipeline: it feeds file
// contents through normalization and fingerprinting on parallel workers,
// then hands the completed index to the matcher.
package scan

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"dupscan/internal/fingerprint"
	"dupscan/internal/match"
	"dupscan/internal/normalize"
)

// DefaultMinLines is the smallest block reported when the caller does not
// choose a window size.
const DefaultMinLines = 5

// ErrMinLines rejects configurations with a non-positive window size.
var ErrMinLines = errors.New("min-lines must be a positive integer")

// Options configures a Scanner. The zero value scans with DefaultMinLines
// on one worker per CPU without logging.
type Options struct {
	MinLines int
	Workers  int
	Logger   *zap.Logger
}

// SkippedFile records a file the scan could not analyze and why. Skips are
// warnings, never fatal.
type SkippedFile struct {
	Path   string
	Reason string
}

// Result is the outcome of one completed scan.
type Result struct {
	Groups       []match.Group
	Skipped      []SkippedFile
	FilesScanned int
	LineCount    int // normalized lines across all scanned files
	WindowCount  int
	Collisions   int // hash buckets excluded by the text-equality guard
	Elapsed      time.Duration
}

// Scanner runs scans with a fixed configuration.
type Scanner struct {
	minLines int
	workers  int
	log      *zap.Logger
}

// New validates opts and builds a Scanner.
func New(opts Options) (*Scanner, error) {
	if opts.MinLines == 0 {
		opts.MinLines = DefaultMinLines
	}
	if opts.MinLines < 1 {
		return nil, fmt.Errorf("%w (got %d)", ErrMinLines, opts.MinLines)
	}
	if opts.Workers < 1 {
		opts.Workers = runtime.NumCPU()
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return &Scanner{minLines: opts.MinLines, workers: opts.Workers, log: opts.Logger}, nil
}

// MinLines reports the configured window size.
func (s *Scanner) MinLines() int { return s.minLines }

// Run scans the given files and returns the duplicate groups found.
// Normalization and fingerprinting run per file on parallel workers; the
// shared index insertion is the only synchronization point, and the matcher
// starts only after every file has finished. Unreadable and binary files
// are skipped with a warning. Cancellation is honored between files and
// never yields a partial result.
func (s *Scanner) Run(ctx context.Context, files []string) (*Result, error) {
	start := time.Now()
	res := &Result{}
	idx := fingerprint.NewIndex()
	corpus := make(map[string][]normalize.Line, len(files))

	var mu sync.Mutex // guards corpus, res counters and res.Skipped
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)

	for _, path := range files {
		path := path
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			lines, skipReason := s.loadFile(path)
			if skipReason != "" {
				s.log.Warn("skipping file", zap.String("path", path), zap.String("reason", skipReason))
				mu.Lock()
				res.Skipped = append(res.Skipped, SkippedFile{Path: path, Reason: skipReason})
				mu.Unlock()
				return nil
			}
			windows := fingerprint.File(path, lines, s.minLines)
			idx.AddAll(windows)
			mu.Lock()
			corpus[path] = lines
			res.FilesScanned++
			res.LineCount += len(lines)
			res.WindowCount += len(windows)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	res.Groups, res.Collisions = match.Groups(idx, corpus, s.minLines)
	sort.Slice(res.Skipped, func(i, j int) bool { return res.Skipped[i].Path < res.Skipped[j].Path })
	res.Elapsed = time.Since(start)
	s.log.Info("scan complete",
		zap.Int("files", res.FilesScanned),
		zap.Int("lines", res.LineCount),
		zap.Int("groups", len(res.Groups)),
		zap.Duration("elapsed", res.Elapsed))
	return res, nil
}

// loadFile reads and normalizes one file. A non-empty reason means the file
// is skipped.
func (s *Scanner) loadFile(path string) ([]normalize.Line, string) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err.Error()
	}
	if isBinary(data) {
		return nil, "binary content"
	}
	return normalize.Normalize(string(data), normalize.PrefixForFile(path)), ""
}

// Detect is the single-call entry point: same files and minLines always
// produce the same groups in the same order.
func Detect(ctx context.Context, files []string, minLines int) ([]match.Group, error) {
	if minLines < 1 {
		return nil, fmt.Errorf("%w (got %d)", ErrMinLines, minLines)
	}
	scanner, err := New(Options{MinLines: minLines})
	if err != nil {
		return nil, err
	}
	res, err := scanner.Run(ctx, files)
	if err != nil {
		return nil, err
	}
	return res.Groups, nil
}

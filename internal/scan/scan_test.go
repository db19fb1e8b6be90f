package scan

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dupscan/internal/match"
)

func writeFiles(t *testing.T, files map[string]string) []string {
	t.Helper()
	dir := t.TempDir()
	paths := make([]string, 0, len(files))
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
		paths = append(paths, path)
	}
	return paths
}

func TestDetectCrossFileDuplicate(t *testing.T) {
	paths := writeFiles(t, map[string]string{
		"a.go": "a;\nb;\nc;\nd;\ne;\n",
		"b.go": "x := 1\ny := 2\na;\nb;\nc;\nd;\ne;\n",
	})

	groups, err := Detect(context.Background(), paths, 3)
	require.NoError(t, err)
	require.Len(t, groups, 1)
	assert.Equal(t, 5, groups[0].Length)
	assert.Len(t, groups[0].Occurrences, 2)
}

func TestRunSkipsBinaryFiles(t *testing.T) {
	paths := writeFiles(t, map[string]string{
		"a.go":    "a;\nb;\nc;\nd;\ne;\n",
		"b.go":    "a;\nb;\nc;\nd;\ne;\n",
		"blob.go": "MZ\x00\x01\x02 not really source\n",
	})

	scanner, err := New(Options{MinLines: 3})
	require.NoError(t, err)
	res, err := scanner.Run(context.Background(), paths)
	require.NoError(t, err)

	require.Len(t, res.Skipped, 1)
	assert.Contains(t, res.Skipped[0].Path, "blob.go")
	assert.Equal(t, "binary content", res.Skipped[0].Reason)

	assert.Equal(t, 2, res.FilesScanned)
	require.Len(t, res.Groups, 1)
}

func TestRunSkipsUnreadableFiles(t *testing.T) {
	paths := writeFiles(t, map[string]string{
		"a.go": "a;\nb;\nc;\nd;\ne;\n",
		"b.go": "a;\nb;\nc;\nd;\ne;\n",
	})
	paths = append(paths, filepath.Join(t.TempDir(), "missing.go"))

	scanner, err := New(Options{MinLines: 3})
	require.NoError(t, err)
	res, err := scanner.Run(context.Background(), paths)
	require.NoError(t, err)

	require.Len(t, res.Skipped, 1)
	assert.Contains(t, res.Skipped[0].Path, "missing.go")
	require.Len(t, res.Groups, 1)
}

func TestShortFilesProduceNoWindows(t *testing.T) {
	paths := writeFiles(t, map[string]string{
		"a.go": "a;\nb;\n",
		"b.go": "a;\nb;\n",
	})

	scanner, err := New(Options{MinLines: 100})
	require.NoError(t, err)
	res, err := scanner.Run(context.Background(), paths)
	require.NoError(t, err)

	assert.Zero(t, res.WindowCount)
	assert.Empty(t, res.Groups)
	assert.Empty(t, res.Skipped)
	assert.Equal(t, 2, res.FilesScanned)
}

func TestInvalidMinLinesRejected(t *testing.T) {
	_, err := Detect(context.Background(), nil, 0)
	require.ErrorIs(t, err, ErrMinLines)

	_, err = New(Options{MinLines: -1})
	require.ErrorIs(t, err, ErrMinLines)
}

func TestZeroOptionsUseDefaults(t *testing.T) {
	scanner, err := New(Options{})
	require.NoError(t, err)
	assert.Equal(t, DefaultMinLines, scanner.MinLines())
}

func TestRunHonorsCancellation(t *testing.T) {
	paths := writeFiles(t, map[string]string{
		"a.go": "a;\nb;\nc;\nd;\ne;\n",
		"b.go": "a;\nb;\nc;\nd;\ne;\n",
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	scanner, err := New(Options{MinLines: 3})
	require.NoError(t, err)
	res, err := scanner.Run(ctx, paths)
	require.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, res, "no partial result on cancellation")
}

func TestRunIsDeterministic(t *testing.T) {
	paths := writeFiles(t, map[string]string{
		"a.go": "w();\nx();\ny();\nz();\nq();\n",
		"b.go": "pre();\nw();\nx();\ny();\nz();\n",
		"c.go": "w();\nx();\ny();\nother();\n",
	})

	scanner, err := New(Options{MinLines: 3, Workers: 4})
	require.NoError(t, err)

	var first []match.Group
	for i := 0; i < 5; i++ {
		res, err := scanner.Run(context.Background(), paths)
		require.NoError(t, err)
		if first == nil {
			first = res.Groups
			continue
		}
		assert.Equal(t, first, res.Groups)
	}
}

func TestIsBinary(t *testing.T) {
	assert.False(t, isBinary(nil))
	assert.False(t, isBinary([]byte("plain text\nwith lines\n")))
	assert.True(t, isBinary([]byte{0x00, 0x01, 0x02}))
	assert.True(t, isBinary([]byte{0xff, 0xfe, 0xfd}))
	assert.False(t, isBinary([]byte("utf-8 is fine: héllo wörld")))
}

package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeDropsBlankAndCommentLines(t *testing.T) {
	raw := `package main

// a comment
func main() {
	x := 1

	// another comment
	y := 2
}
`
	lines := Normalize(raw, "//")
	require.Len(t, lines, 5)

	assert.Equal(t, Line{Number: 1, Text: "package main"}, lines[0])
	assert.Equal(t, Line{Number: 4, Text: "func main() {"}, lines[1])
	assert.Equal(t, Line{Number: 5, Text: "x := 1"}, lines[2])
	assert.Equal(t, Line{Number: 8, Text: "y := 2"}, lines[3])
	assert.Equal(t, Line{Number: 9, Text: "}"}, lines[4])
}

func TestNormalizeCollapsesWhitespace(t *testing.T) {
	lines := Normalize("\t  a  :=\t\tcompute( x ,  y )  \r", "//")
	require.Len(t, lines, 1)
	assert.Equal(t, "a := compute( x , y )", lines[0].Text)
}

func TestNormalizeIndentationNeverPreventsMatch(t *testing.T) {
	a := Normalize("if ok {\n\treturn x\n}", "//")
	b := Normalize("    if ok {\n        return x\n    }", "//")
	require.Len(t, a, 3)
	require.Len(t, b, 3)
	for i := range a {
		assert.Equal(t, a[i].Text, b[i].Text)
	}
}

func TestNormalizeEmptyInput(t *testing.T) {
	assert.Empty(t, Normalize("", "//"))
	assert.Empty(t, Normalize("\n\n\n", "//"))
	assert.Empty(t, Normalize("// only\n// comments\n", "//"))
}

func TestNormalizeHashComments(t *testing.T) {
	raw := "import os\n# setup\nx = 1\n"
	lines := Normalize(raw, "#")
	require.Len(t, lines, 2)
	assert.Equal(t, 1, lines[0].Number)
	assert.Equal(t, 3, lines[1].Number)
}

func TestPrefixForFile(t *testing.T) {
	assert.Equal(t, "//", PrefixForFile("main.go"))
	assert.Equal(t, "#", PrefixForFile("script.py"))
	assert.Equal(t, "--", PrefixForFile("schema.SQL"))
	assert.Equal(t, "//", PrefixForFile("unknown.xyz"))
	assert.Equal(t, "//", PrefixForFile("noextension"))
}

package generator

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateDiff_Identical(t *testing.T) {
	same := []byte("/* USER CODE BEGIN A */\nx\n/* USER CODE END A */\n")
	assert.Empty(t, GenerateDiffDefault("a.c", "a.c", same, same))
}

func TestGenerateDiff_Basic(t *testing.T) {
	tests := []struct {
		name     string
		old, new string
		contains []string
		excludes []string
	}{
		{
			name:     "addition",
			old:      "a\nb\n",
			new:      "a\nb\nc\n",
			contains: []string{"+c", " a", " b"},
		},
		{
			name:     "deletion",
			old:      "a\nb\nc\n",
			new:      "a\nc\n",
			contains: []string{"-b"},
			excludes: []string{"+a", "-a"},
		},
		{
			name:     "modification",
			old:      "int x = 1;\n",
			new:      "int x = 2;\n",
			contains: []string{"-int x = 1;", "+int x = 2;"},
		},
		{
			name:     "from empty",
			old:      "",
			new:      "line 1\nline 2\n",
			contains: []string{"+line 1", "+line 2"},
		},
		{
			name:     "to empty",
			old:      "line 1\n",
			new:      "",
			contains: []string{"-line 1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GenerateDiffDefault("f.c", "f.c", []byte(tt.old), []byte(tt.new))
			require.NotEmpty(t, got)
			assert.Contains(t, got, "--- f.c")
			assert.Contains(t, got, "+++ f.c")
			for _, s := range tt.contains {
				assert.Contains(t, got, s)
			}
			for _, s := range tt.excludes {
				assert.NotContains(t, got, s)
			}
		})
	}
}

func TestGenerateDiff_HunkHeader(t *testing.T) {
	got := GenerateDiffDefault("f", "f", []byte("a\nb\nc\n"), []byte("a\nB\nc\n"))
	assert.Contains(t, got, "@@ -1,3 +1,3 @@")
}

func TestGenerateDiff_SeparateHunks(t *testing.T) {
	var old, newer []string
	for i := 1; i <= 30; i++ {
		old = append(old, fmt.Sprintf("line %d", i))
		newer = append(newer, fmt.Sprintf("line %d", i))
	}
	newer[1] = "changed 2"
	newer[27] = "changed 28"

	got := GenerateDiffDefault("f", "f",
		[]byte(strings.Join(old, "\n")+"\n"),
		[]byte(strings.Join(newer, "\n")+"\n"))

	assert.Equal(t, 2, strings.Count(got, "@@ -"))
	assert.NotContains(t, got, "line 15")
}

func TestGenerateDiff_Binary(t *testing.T) {
	got := GenerateDiffDefault("b", "b", []byte("a\x00b"), []byte("a\x00c"))
	assert.Equal(t, "Binary files differ\n", got)
}

func TestGenerateDiff_LineNumbers(t *testing.T) {
	got := GenerateDiff("f", "f", []byte("a\nb\n"), []byte("a\nc\n"), &DiffOptions{ShowLineNums: true})
	assert.Contains(t, got, "   1 ")
}

func TestDiffGenerator_Reuse(t *testing.T) {
	gen := NewDiffGenerator()
	first := gen.GenerateDiffDefault("f", "f", []byte("a\nb\nc\nd\n"), []byte("a\nx\nc\nd\n"))
	_ = gen.GenerateDiffDefault("g", "g", []byte("1\n"), []byte("2\n"))
	again := gen.GenerateDiffDefault("f", "f", []byte("a\nb\nc\nd\n"), []byte("a\nx\nc\nd\n"))

	assert.Equal(t, first, again)
}

func TestEditScript(t *testing.T) {
	a := []string{"a", "b", "c", "a", "b", "b", "a"}
	b := []string{"c", "b", "a", "b", "a", "c"}

	script := NewDiffGenerator().editScript(a, b)

	var rebuiltOld, rebuiltNew []string
	changes := 0
	for _, l := range script {
		switch l.op {
		case opUnchanged:
			rebuiltOld = append(rebuiltOld, l.content)
			rebuiltNew = append(rebuiltNew, l.content)
		case opRemoved:
			rebuiltOld = append(rebuiltOld, l.content)
			changes++
		case opAdded:
			rebuiltNew = append(rebuiltNew, l.content)
			changes++
		}
	}

	assert.Equal(t, a, rebuiltOld)
	assert.Equal(t, b, rebuiltNew)
	assert.Equal(t, 5, changes, "Myers' example has an edit distance of 5")
}

func TestExpandTabs(t *testing.T) {
	assert.Equal(t, "    x", expandTabs("\tx", 4))
	assert.Equal(t, "ab  x", expandTabs("ab\tx", 4))
	assert.Equal(t, "none", expandTabs("none", 4))
}

func TestTruncateLine(t *testing.T) {
	assert.Equal(t, "short", truncateLine("short", 10))
	assert.Equal(t, "abcdefg...", truncateLine("abcdefghijklmnop", 10))
	assert.Equal(t, "..", truncateLine("abcdef", 2))
}

func TestSplitLines(t *testing.T) {
	assert.Nil(t, splitLines(""))
	assert.Equal(t, []string{"a", "b"}, splitLines("a\nb\n"))
	assert.Equal(t, []string{"a", "b"}, splitLines("a\nb"))
	assert.Equal(t, []string{""}, splitLines("\n"))
}

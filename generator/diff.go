package generator

import (
	"bytes"
	"fmt"
	"os"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// DiffOptions tunes GenerateDiff. The zero value gives 3 lines of context,
// 4-column tabs and lines cut at the terminal width.
type DiffOptions struct {
	ContextLines int  // unchanged lines kept around each change
	TabWidth     int  // columns per tab stop
	ShowLineNums bool // prefix lines with their number in the old file
	Width        int  // maximum rendered width
}

// maxDiffLines bounds the quadratic worst case of the edit script.
const maxDiffLines = 10000

// DiffGenerator produces unified diffs, reusing its buffers between calls.
//
//	gen := NewDiffGenerator()
//	d1 := gen.GenerateDiff("a.h", "a.h", old1, new1, nil)
//	d2 := gen.GenerateDiff("a.c", "a.c", old2, new2, nil)
type DiffGenerator struct {
	v     []int
	trace [][]int
}

// NewDiffGenerator returns a generator whose buffers grow to fit the
// largest diff it has produced.
func NewDiffGenerator() *DiffGenerator {
	return &DiffGenerator{}
}

// GenerateDiffDefault is GenerateDiff with default options.
func (dg *DiffGenerator) GenerateDiffDefault(oldPath, newPath string, old, newer []byte) string {
	return dg.GenerateDiff(oldPath, newPath, old, newer, nil)
}

// GenerateDiff returns a styled unified diff, or "" when the inputs are equal.
func (dg *DiffGenerator) GenerateDiff(oldPath, newPath string, old, newer []byte, opts *DiffOptions) string {
	o := DiffOptions{ContextLines: 3, TabWidth: 4}
	if opts != nil {
		o = *opts
		if o.ContextLines == 0 {
			o.ContextLines = 3
		}
		if o.TabWidth == 0 {
			o.TabWidth = 4
		}
	}
	if o.Width == 0 {
		o.Width = terminalWidth()
	}

	if bytes.Equal(old, newer) {
		return ""
	}
	if isBinary(old) || isBinary(newer) {
		return "Binary files differ\n"
	}

	a, b := splitLines(string(old)), splitLines(string(newer))
	if slices.Equal(a, b) {
		return ""
	}
	if len(a) > maxDiffLines || len(b) > maxDiffLines {
		return fmt.Sprintf("Diff skipped: %d and %d lines exceed the %d line limit\n", len(a), len(b), maxDiffLines)
	}

	hunks := buildHunks(dg.editScript(a, b), o.ContextLines)
	if len(hunks) == 0 {
		return ""
	}

	var sb strings.Builder
	fmt.Fprintln(&sb, headerStyle.Render("--- "+oldPath))
	fmt.Fprintln(&sb, headerStyle.Render("+++ "+newPath))
	for _, h := range hunks {
		sb.WriteString(formatHunk(h, o))
	}
	return sb.String()
}

// GenerateDiffDefault is GenerateDiff with zero options.
func GenerateDiffDefault(oldPath, newPath string, old, newer []byte) string {
	return GenerateDiff(oldPath, newPath, old, newer, nil)
}

// GenerateDiff creates a unified diff with a throwaway generator.
func GenerateDiff(oldPath, newPath string, old, newer []byte, opts *DiffOptions) string {
	return NewDiffGenerator().GenerateDiff(oldPath, newPath, old, newer, opts)
}

type lineOp int

const (
	opUnchanged lineOp = iota
	opAdded
	opRemoved
)

// diffLine is one line of the edit script.
type diffLine struct {
	oldLineNum int // 0 if added
	newLineNum int // 0 if removed
	content    string
	op         lineOp
}

// hunk is a contiguous block of changes with surrounding context.
type hunk struct {
	oldStart int
	oldCount int
	newStart int
	newCount int
	lines    []diffLine
}

var (
	headerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	hunkStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("cyan")).Bold(true)
	addedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("22"))
	removedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("52"))
	lineNumStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Faint(true)
)

// editScript computes the shortest edit script between a and b using
// Myers' O(ND) algorithm. V is a flat slice indexed by k+offset.
func (dg *DiffGenerator) editScript(a, b []string) []diffLine {
	n, m := len(a), len(b)
	maxD := n + m
	offset := maxD + 1

	size := 2*maxD + 3
	if cap(dg.v) < size {
		dg.v = make([]int, size)
	}
	v := dg.v[:size]
	clear(v)
	dg.trace = dg.trace[:0]

search:
	for d := 0; d <= maxD; d++ {
		dg.trace = append(dg.trace, slices.Clone(v))

		for k := -d; k <= d; k += 2 {
			var x int
			if k == -d || (k != d && v[offset+k-1] < v[offset+k+1]) {
				x = v[offset+k+1] // down: insertion
			} else {
				x = v[offset+k-1] + 1 // right: deletion
			}
			y := x - k

			for x < n && y < m && a[x] == b[y] {
				x++
				y++
			}
			v[offset+k] = x

			if x >= n && y >= m {
				break search
			}
		}
	}

	// Walk the trace backwards, collecting lines in reverse.
	var script []diffLine
	x, y := n, m
	for d := len(dg.trace) - 1; d >= 0; d-- {
		tv := dg.trace[d]
		k := x - y

		prevK := k - 1
		if k == -d || (k != d && tv[offset+k-1] < tv[offset+k+1]) {
			prevK = k + 1
		}
		prevX := tv[offset+prevK]
		prevY := prevX - prevK

		for x > prevX && y > prevY {
			x--
			y--
			script = append(script, diffLine{oldLineNum: x + 1, newLineNum: y + 1, content: a[x], op: opUnchanged})
		}

		if d == 0 {
			break
		}
		if x == prevX {
			y--
			script = append(script, diffLine{newLineNum: y + 1, content: b[y], op: opAdded})
		} else {
			x--
			script = append(script, diffLine{oldLineNum: x + 1, content: a[x], op: opRemoved})
		}
	}

	slices.Reverse(script)
	return script
}

// buildHunks groups the edit script into hunks. Changes separated by no
// more than 2*contextLines unchanged lines share a hunk.
func buildHunks(lines []diffLine, contextLines int) []hunk {
	var hunks []hunk

	i := 0
	for i < len(lines) {
		if lines[i].op == opUnchanged {
			i++
			continue
		}

		first, last := i, i
		for j := i + 1; j < len(lines); j++ {
			if lines[j].op == opUnchanged {
				continue
			}
			if j-last-1 > contextLines*2 {
				break
			}
			last = j
		}

		from := max(0, first-contextLines)
		to := min(len(lines), last+contextLines+1)
		h := hunk{lines: slices.Clone(lines[from:to])}
		finalizeHunk(&h)
		hunks = append(hunks, h)

		i = last + 1
	}
	return hunks
}

// finalizeHunk fills in the start and count values of h.
func finalizeHunk(h *hunk) {
	for _, line := range h.lines {
		if line.oldLineNum > 0 && (h.oldStart == 0 || line.oldLineNum < h.oldStart) {
			h.oldStart = line.oldLineNum
		}
		if line.newLineNum > 0 && (h.newStart == 0 || line.newLineNum < h.newStart) {
			h.newStart = line.newLineNum
		}
		if line.op != opAdded {
			h.oldCount++
		}
		if line.op != opRemoved {
			h.newCount++
		}
	}
}

func formatHunk(h hunk, opts DiffOptions) string {
	var sb strings.Builder
	fmt.Fprintln(&sb, hunkStyle.Render(fmt.Sprintf("@@ -%d,%d +%d,%d @@", h.oldStart, h.oldCount, h.newStart, h.newCount)))

	for _, l := range h.lines {
		text := truncateLine(expandTabs(l.content, opts.TabWidth), opts.Width-10)
		switch l.op {
		case opAdded:
			text = addedStyle.Render("+" + text)
		case opRemoved:
			text = removedStyle.Render("-" + text)
		default:
			text = " " + text
		}
		if opts.ShowLineNums {
			gutter := strings.Repeat(" ", 4)
			if l.oldLineNum > 0 {
				gutter = fmt.Sprintf("%4d", l.oldLineNum)
			}
			text = lineNumStyle.Render(gutter) + " " + text
		}
		fmt.Fprintln(&sb, text)
	}
	return sb.String()
}

// isBinary reports whether the first 8KB contain a NUL byte.
func isBinary(data []byte) bool {
	return bytes.IndexByte(data[:min(len(data), 8192)], 0) != -1
}

// splitLines splits content into lines, dropping the empty element a final
// newline produces.
func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(s, "\n"), "\n")
}

func expandTabs(s string, tabWidth int) string {
	if !strings.Contains(s, "\t") {
		return s
	}

	var buf strings.Builder
	col := 0
	for _, r := range s {
		if r == '\t' {
			spaces := tabWidth - (col % tabWidth)
			buf.WriteString(strings.Repeat(" ", spaces))
			col += spaces
			continue
		}
		buf.WriteRune(r)
		col++
	}
	return buf.String()
}

// truncateLine shortens s to maxWidth runes, marking the cut with "...".
func truncateLine(s string, maxWidth int) string {
	if maxWidth <= 0 {
		maxWidth = 80
	}
	if utf8.RuneCountInString(s) <= maxWidth {
		return s
	}
	if maxWidth < 3 {
		return "..."[:maxWidth]
	}
	return string([]rune(s)[:maxWidth-3]) + "..."
}

func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80
	}
	return width
}

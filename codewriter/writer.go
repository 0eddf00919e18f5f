package codewriter

import (
	"fmt"
	"io"
	"strings"
)

// DefaultIndentSize is the number of spaces per indentation level.
const DefaultIndentSize = 4

// Writer writes lines to an io.Writer at the current indentation level.
type Writer struct {
	w           io.Writer
	indentLevel int
	indentSize  int
	withNewline bool // terminate Write output with a newline
}

// New creates a writer with four-space indentation that terminates every
// Write with a newline.
func New(w io.Writer) *Writer {
	return NewWithOptions(w, DefaultIndentSize, true)
}

// NewWithOptions creates a writer with a custom indent size and newline
// behaviour.
func NewWithOptions(w io.Writer, indentSize int, withNewline bool) *Writer {
	if indentSize < 0 {
		indentSize = 0
	}
	return &Writer{
		w:           w,
		indentSize:  indentSize,
		withNewline: withNewline,
	}
}

// SetWithNewline controls whether Write terminates its output with a newline.
func (cw *Writer) SetWithNewline(v bool) { cw.withNewline = v }

// WithNewline reports whether Write terminates its output with a newline.
func (cw *Writer) WithNewline() bool { return cw.withNewline }

// SetIndentSize sets the number of spaces per level.
func (cw *Writer) SetIndentSize(n int) { cw.indentSize = n }

// IndentSize returns the number of spaces per level.
func (cw *Writer) IndentSize() int { return cw.indentSize }

// IndentLevel returns the current indentation level.
func (cw *Writer) IndentLevel() int { return cw.indentLevel }

// Indent increases the indentation level.
func (cw *Writer) Indent() { cw.indentLevel++ }

// Dedent decreases the indentation level. It never goes below zero.
func (cw *Writer) Dedent() {
	if cw.indentLevel > 0 {
		cw.indentLevel--
	}
}

// Write writes content with every non-empty line indented. Content that
// already ends with a newline is written as is; otherwise a newline is
// appended when WithNewline is set.
func (cw *Writer) Write(content string) error {
	if content == "" {
		if cw.withNewline {
			return cw.put("\n")
		}
		return nil
	}

	indent := strings.Repeat(" ", cw.indentLevel*cw.indentSize)
	trailing := strings.HasSuffix(content, "\n")

	var b strings.Builder
	lines := strings.Split(strings.TrimSuffix(content, "\n"), "\n")
	for i, line := range lines {
		if i > 0 {
			b.WriteByte('\n')
		}
		if line != "" {
			b.WriteString(indent)
			b.WriteString(line)
		}
	}
	if trailing || cw.withNewline {
		b.WriteByte('\n')
	}

	return cw.put(b.String())
}

// Writeln writes content followed by a newline regardless of WithNewline.
func (cw *Writer) Writeln(content string) error {
	prev := cw.withNewline
	cw.withNewline = true
	err := cw.Write(content)
	cw.withNewline = prev
	return err
}

// WriteRaw writes s without indentation or newline handling.
func (cw *Writer) WriteRaw(s string) error {
	if s == "" {
		return nil
	}
	return cw.put(s)
}

// Newline writes a single newline.
func (cw *Writer) Newline() error {
	return cw.put("\n")
}

// Comment writes a line comment, or a block comment when the text spans
// several lines.
func (cw *Writer) Comment(text string) error {
	if !strings.Contains(text, "\n") {
		return cw.Writeln("// " + text)
	}

	if err := cw.Writeln("/*"); err != nil {
		return err
	}
	for _, line := range strings.Split(strings.TrimSuffix(text, "\n"), "\n") {
		if err := cw.Writeln(" * " + line); err != nil {
			return err
		}
	}
	return cw.Writeln(" */")
}

// Separator writes a one-line block comment used as a heading.
func (cw *Writer) Separator(title string) error {
	return cw.Writeln("/* " + title + " */")
}

// Flush flushes the underlying writer when it buffers (e.g. *bufio.Writer).
func (cw *Writer) Flush() error {
	if f, ok := cw.w.(interface{ Flush() error }); ok {
		if err := f.Flush(); err != nil {
			return fmt.Errorf("flushing output: %w", err)
		}
	}
	return nil
}

func (cw *Writer) put(s string) error {
	if _, err := io.WriteString(cw.w, s); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	return nil
}

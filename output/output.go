package output

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("green")).Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("red")).Bold(true)
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("yellow"))
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("cyan"))
	stepStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

var (
	mu          sync.Mutex
	out         io.Writer = os.Stdout
	errOut      io.Writer = os.Stderr
	verboseMode bool
)

// Field is a key/value pair appended to a message.
type Field struct {
	Key   string
	Value any
}

// F creates a field.
func F(key string, value any) Field {
	return Field{Key: key, Value: value}
}

// SetVerbose enables or disables Verbose messages.
// The CLI calls this when --verbose is set.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verboseMode = v
}

// IsVerbose reports whether verbose mode is on.
func IsVerbose() bool {
	mu.Lock()
	defer mu.Unlock()
	return verboseMode
}

// SetWriters redirects normal and error output. A nil writer leaves the
// current one in place. It returns a function restoring the previous
// writers.
func SetWriters(stdout, stderr io.Writer) (restore func()) {
	mu.Lock()
	defer mu.Unlock()

	prevOut, prevErr := out, errOut
	if stdout != nil {
		out = stdout
	}
	if stderr != nil {
		errOut = stderr
	}
	return func() {
		mu.Lock()
		defer mu.Unlock()
		out, errOut = prevOut, prevErr
	}
}

// Writer returns the current normal output writer.
func Writer() io.Writer {
	mu.Lock()
	defer mu.Unlock()
	return out
}

// Success reports a completed operation.
//
//	output.Success("Regenerated uart.c")
func Success(msg string, fields ...Field) {
	emit(false, successStyle, "✔ ", msg, fields)
}

// Error reports a failure that needs attention.
func Error(msg string, fields ...Field) {
	emit(true, errorStyle, "❌ ", msg, fields)
}

// Warn reports something suspicious that did not stop the command, such
// as regions that a regeneration would drop.
func Warn(msg string, fields ...Field) {
	emit(false, warnStyle, "⚠  ", msg, fields)
}

// Info prints a status line.
func Info(msg string, fields ...Field) {
	emit(false, infoStyle, "ℹ️  ", msg, fields)
}

// Step prints an indented sub-item.
func Step(msg string, fields ...Field) {
	emit(false, stepStyle, "   ", msg, fields)
}

// Verbose prints only in verbose mode.
func Verbose(msg string, fields ...Field) {
	if !IsVerbose() {
		return
	}
	emit(false, stepStyle, "🔍 ", msg, fields)
}

func emit(toErr bool, style lipgloss.Style, icon, msg string, fields []Field) {
	line := style.Render(icon+msg) + formatFields(fields)

	mu.Lock()
	defer mu.Unlock()
	w := out
	if toErr {
		w = errOut
	}
	fmt.Fprintln(w, line)
}

func formatFields(fields []Field) string {
	if len(fields) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString(" |")
	for _, f := range fields {
		fmt.Fprintf(&b, " %s=%v", f.Key, f.Value)
	}
	return stepStyle.Render(b.String())
}

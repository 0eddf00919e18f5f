// Package input asks the user simple questions on the terminal.
package input

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	promptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("cyan")).Bold(true)
	hintStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// Prompter reads answers from in and writes questions to out.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
}

// New creates a prompter. Nil arguments fall back to stdin and stdout.
func New(in io.Reader, out io.Writer) *Prompter {
	if in == nil {
		in = os.Stdin
	}
	if out == nil {
		out = os.Stdout
	}
	return &Prompter{in: bufio.NewReader(in), out: out}
}

// Prompt asks for text. An empty answer, or no answer at all, returns
// defaultValue.
//
//	path := p.Prompt("Output directory", "gen")
//	// Output directory (gen): _
func (p *Prompter) Prompt(message, defaultValue string) string {
	if defaultValue != "" {
		fmt.Fprint(p.out, promptStyle.Render(message)+" "+hintStyle.Render("("+defaultValue+")")+": ")
	} else {
		fmt.Fprint(p.out, promptStyle.Render(message)+": ")
	}

	answer, ok := p.readLine()
	if !ok || answer == "" {
		return defaultValue
	}
	return answer
}

// Confirm asks a yes/no question. "y" and "yes" in any case mean yes; an
// empty answer returns defaultYes.
//
//	if p.Confirm("Overwrite nest.yml?", false) { ... }
//	// Overwrite nest.yml? [y/N]: _
func (p *Prompter) Confirm(message string, defaultYes bool) bool {
	hint := "[y/N]"
	if defaultYes {
		hint = "[Y/n]"
	}
	fmt.Fprint(p.out, promptStyle.Render(message)+" "+hintStyle.Render(hint)+": ")

	answer, ok := p.readLine()
	if !ok || answer == "" {
		return defaultYes
	}

	answer = strings.ToLower(answer)
	return answer == "y" || answer == "yes"
}

// readLine returns the trimmed next line. A final line without a newline
// still counts.
func (p *Prompter) readLine() (string, bool) {
	line, err := p.in.ReadString('\n')
	if err != nil && line == "" {
		return "", false
	}
	return strings.TrimSpace(line), true
}

var std = New(nil, nil)

// Prompt asks on stdin/stdout. See Prompter.Prompt.
func Prompt(message, defaultValue string) string {
	return std.Prompt(message, defaultValue)
}

// Confirm asks on stdin/stdout. See Prompter.Confirm.
func Confirm(message string, defaultYes bool) bool {
	return std.Confirm(message, defaultYes)
}

package generator

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Resolution is the decision taken for a regenerated file whose content
// differs from what is on disk.
type Resolution int

const (
	Skip Resolution = iota
	Overwrite
	ShowDiff
	Cancel
)

func (r Resolution) String() string {
	switch r {
	case Skip:
		return "skip"
	case Overwrite:
		return "overwrite"
	case ShowDiff:
		return "diff"
	default:
		return "cancel"
	}
}

// Conflict describes an output file that regeneration would change.
type Conflict struct {
	Path      string
	Existing  []byte
	Generated []byte

	// Dropped lists captured regions the new content no longer contains.
	Dropped []string
}

// ConflictStrategy decides what happens to a Conflict.
type ConflictStrategy interface {
	Resolve(c Conflict) (Resolution, error)
}

// Resolver applies a strategy chosen from command-line flags.
type Resolver struct {
	strategy ConflictStrategy
	diffGen  *DiffGenerator
	out      io.Writer
}

var (
	warningStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("yellow")).Bold(true)
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("cyan")).Bold(true)
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	borderStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240"))
	titleStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("white")).Bold(true)
)

// ErrConflictFlags is returned when --force is combined with --skip or --diff.
var ErrConflictFlags = errors.New("--force cannot be combined with --skip or --diff")

// NewResolver returns a resolver for the given flags, writing diffs to out.
func NewResolver(force, skip, diff bool, out io.Writer) (*Resolver, error) {
	if force && (skip || diff) {
		return nil, ErrConflictFlags
	}
	if out == nil {
		out = os.Stdout
	}

	gen := NewDiffGenerator()
	r := &Resolver{diffGen: gen, out: out}

	switch {
	case force:
		r.strategy = ForceStrategy{}
	case skip:
		r.strategy = SkipStrategy{}
	case diff:
		r.strategy = &DiffStrategy{diffGen: gen, out: out, next: InteractiveStrategy{}}
	default:
		r.strategy = InteractiveStrategy{}
	}
	return r, nil
}

// NewResolverWithStrategy wraps an explicit strategy.
func NewResolverWithStrategy(s ConflictStrategy, out io.Writer) *Resolver {
	if out == nil {
		out = os.Stdout
	}
	return &Resolver{strategy: s, diffGen: NewDiffGenerator(), out: out}
}

// Resolve decides the fate of c.
func (r *Resolver) Resolve(c Conflict) (Resolution, error) {
	return r.strategy.Resolve(c)
}

// PrintDiff writes the diff between the existing and generated content.
func (r *Resolver) PrintDiff(c Conflict) {
	fmt.Fprintln(r.out, r.diffGen.GenerateDiffDefault(c.Path, c.Path, c.Existing, c.Generated))
}

// ForceStrategy always overwrites.
type ForceStrategy struct{}

func (ForceStrategy) Resolve(Conflict) (Resolution, error) { return Overwrite, nil }

// SkipStrategy always keeps the file on disk.
type SkipStrategy struct{}

func (SkipStrategy) Resolve(Conflict) (Resolution, error) { return Skip, nil }

// DiffStrategy shows the diff before handing over to next.
// Long diffs open a scrollable viewer when out is a terminal.
type DiffStrategy struct {
	diffGen *DiffGenerator
	out     io.Writer
	next    ConflictStrategy
}

func (s *DiffStrategy) Resolve(c Conflict) (Resolution, error) {
	diff := s.diffGen.GenerateDiffDefault(c.Path, c.Path, c.Existing, c.Generated)

	if strings.Count(diff, "\n") > 20 && s.out == os.Stdout {
		final, err := tea.NewProgram(newDiffViewerModel(c.Path, diff), tea.WithAltScreen()).Run()
		if err != nil {
			return Cancel, fmt.Errorf("showing diff: %w", err)
		}
		if final.(diffViewerModel).cancelled {
			return Cancel, nil
		}
	} else {
		fmt.Fprintln(s.out, diff)
	}

	return s.next.Resolve(c)
}

// InteractiveStrategy asks through a keyboard-driven menu. Choosing
// "Show diff" returns ShowDiff so the caller can print it and ask again.
type InteractiveStrategy struct{}

func (InteractiveStrategy) Resolve(c Conflict) (Resolution, error) {
	info, err := os.Stat(c.Path)
	if err != nil && !os.IsNotExist(err) {
		return Cancel, fmt.Errorf("stat %s: %w", c.Path, err)
	}

	final, err := tea.NewProgram(newConflictMenuModel(c, info)).Run()
	if err != nil {
		return Cancel, fmt.Errorf("showing menu: %w", err)
	}

	menu := final.(conflictMenuModel)
	if menu.selected == nil {
		return Cancel, nil
	}
	return *menu.selected, nil
}

var menuChoices = []struct {
	label      string
	resolution Resolution
}{
	{"Show diff and decide", ShowDiff},
	{"Skip (keep file on disk)", Skip},
	{"Overwrite (write regenerated file)", Overwrite},
	{"Cancel regeneration", Cancel},
}

type conflictMenuModel struct {
	conflict Conflict
	info     os.FileInfo
	cursor   int
	selected *Resolution
}

func newConflictMenuModel(c Conflict, info os.FileInfo) conflictMenuModel {
	return conflictMenuModel{conflict: c, info: info}
}

func (m conflictMenuModel) Init() tea.Cmd { return nil }

func (m conflictMenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "ctrl+c", "q", "esc":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(menuChoices)-1 {
			m.cursor++
		}
	case "enter":
		res := menuChoices[m.cursor].resolution
		m.selected = &res
		return m, tea.Quit
	}
	return m, nil
}

func (m conflictMenuModel) View() string {
	var b strings.Builder

	b.WriteString(warningStyle.Render("⚠️  Regenerated file differs: ") + titleStyle.Render(m.conflict.Path) + "\n")
	if m.info != nil {
		b.WriteString(mutedStyle.Render("    Last modified: ") + formatRelativeTime(m.info.ModTime()) + "\n")
		b.WriteString(mutedStyle.Render("    Size: ") + formatFileSize(m.info.Size()) + "\n")
	}
	if len(m.conflict.Dropped) > 0 {
		b.WriteString(warningStyle.Render("    Regions that would be lost: ") + strings.Join(m.conflict.Dropped, ", ") + "\n")
	}

	b.WriteString("\n")
	b.WriteString(mutedStyle.Render("    [↑/↓] Navigate    [Enter] Select    [q] Cancel") + "\n\n")

	for i, choice := range menuChoices {
		if i == m.cursor {
			b.WriteString("    " + selectedStyle.Render("> "+choice.label) + "\n")
			continue
		}
		b.WriteString("      " + choice.label + "\n")
	}
	return b.String()
}

type diffViewerModel struct {
	path      string
	diff      string
	viewport  viewport.Model
	ready     bool
	cancelled bool
}

func newDiffViewerModel(path, diff string) diffViewerModel {
	return diffViewerModel{path: path, diff: diff}
}

func (m diffViewerModel) Init() tea.Cmd { return nil }

func (m diffViewerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.cancelled = true
			return m, tea.Quit
		case "q", "esc":
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		const chrome = 5 // header, footer and borders
		if !m.ready {
			m.viewport = viewport.New(msg.Width-4, msg.Height-chrome)
			m.viewport.SetContent(m.diff)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width - 4
			m.viewport.Height = msg.Height - chrome
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m diffViewerModel) View() string {
	if !m.ready {
		return "Loading diff..."
	}

	var b strings.Builder
	width := m.viewport.Width

	title := fmt.Sprintf("─ Diff: %s ", m.path)
	b.WriteString(borderStyle.Render("┌" + title + strings.Repeat("─", max(0, width-len(title)+4)) + "┐\n"))

	for _, line := range strings.Split(m.viewport.View(), "\n") {
		pad := strings.Repeat(" ", max(0, width-lipgloss.Width(line)-1))
		b.WriteString(borderStyle.Render("│") + " " + line + pad + borderStyle.Render("│") + "\n")
	}

	footer := " [↑/↓] Scroll    [q] Back    [ctrl+c] Cancel "
	b.WriteString(borderStyle.Render("└" + strings.Repeat("─", max(0, width-len(footer)+4)) + footer + "┘\n"))
	return b.String()
}

// formatRelativeTime renders t as "3 hours ago" and similar.
func formatRelativeTime(t time.Time) string {
	d := time.Since(t)
	if d < time.Minute {
		return "just now"
	}

	units := []struct {
		name string
		size time.Duration
	}{
		{"year", 365 * 24 * time.Hour},
		{"month", 30 * 24 * time.Hour},
		{"week", 7 * 24 * time.Hour},
		{"day", 24 * time.Hour},
		{"hour", time.Hour},
		{"minute", time.Minute},
	}
	for _, u := range units {
		if n := int(d / u.size); n >= 1 {
			if n == 1 {
				return "1 " + u.name + " ago"
			}
			return fmt.Sprintf("%d %ss ago", n, u.name)
		}
	}
	return "just now"
}

// formatFileSize renders size using binary units.
func formatFileSize(size int64) string {
	const unit = 1024
	if size < unit {
		return fmt.Sprintf("%d B", size)
	}

	div, exp := int64(unit), 0
	for n := size / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(size)/float64(div), "KMGTPE"[exp])
}

package generator

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/simonhull/firebird-suite/nest/region"
)

// ErrCancelled is returned when the user cancels a regeneration.
var ErrCancelled = errors.New("regeneration cancelled")

// Target is one generated output file. Exactly one of Template, Text or
// Build produces its content.
type Target struct {
	Name     string
	Output   string
	Template string // template file on disk
	Text     string // inline template
	Data     any
	Mode     fs.FileMode

	// Build generates content directly, for generators written in Go.
	Build func(m *region.Manager) ([]byte, error)
}

// Result is the outcome of regenerating one target.
type Result struct {
	Target   Target
	Previous []byte // bytes on disk, nil if the output did not exist
	Content  []byte // in the same encoding as Previous
	Stats    region.Stats

	// Dropped lists regions captured from Previous that Content does not
	// contain. Their text is lost if Content is written.
	Dropped []string
}

// Exists reports whether the output file existed before regeneration.
func (r *Result) Exists() bool { return r.Previous != nil }

// Changed reports whether writing Content would alter the file on disk.
func (r *Result) Changed() bool {
	return !r.Exists() || !bytes.Equal(r.Previous, r.Content)
}

// Regenerate captures the user regions of t.Output, then produces the new
// content with every region carried over. Earlier captures held by m are
// discarded first. Nothing is written.
func Regenerate(ctx context.Context, r *Renderer, m *region.Manager, t Target) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if t.Output == "" {
		return nil, fmt.Errorf("target %q has no output path", t.Name)
	}

	previous, err := os.ReadFile(t.Output)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		previous = nil
	case err != nil:
		return nil, fmt.Errorf("capturing %s: %w", t.Output, &region.CaptureError{Path: t.Output, Err: err})
	}

	m.ClearCaptured()
	enc := region.Plain
	if previous != nil {
		var text string
		text, enc, err = region.Decode(previous)
		if err != nil {
			return nil, fmt.Errorf("capturing %s: %w", t.Output, &region.CaptureError{Path: t.Output, Err: err})
		}
		if err := m.Scan(text); err != nil {
			return nil, fmt.Errorf("capturing %s: %w", t.Output, err)
		}
	}
	m.ResetWritten()

	content, err := build(r, m, t)
	if err != nil {
		return nil, fmt.Errorf("generating %s: %w", t.Output, err)
	}

	// Keep the byte order mark the file was saved with.
	content, err = enc.Encode(string(content))
	if err != nil {
		return nil, fmt.Errorf("encoding %s: %w", t.Output, err)
	}

	return &Result{
		Target:   t,
		Previous: previous,
		Content:  content,
		Stats:    m.Stats(),
		Dropped:  m.Unwritten(),
	}, nil
}

func build(r *Renderer, m *region.Manager, t Target) ([]byte, error) {
	switch {
	case t.Build != nil:
		return t.Build(m)
	case t.Template != "":
		return r.RenderFile(m, t.Template, t.Data)
	case t.Text != "":
		name := t.Name
		if name == "" {
			name = t.Output
		}
		return r.RenderString(m, name, t.Text, t.Data)
	default:
		return nil, fmt.Errorf("target %q has no template", t.Name)
	}
}

// Plan turns a result into the operation that applies it. New files are
// created without asking; changed files go through resolver. A nil
// resolver overwrites.
func Plan(res *Result, resolver *Resolver) (Operation, error) {
	mode := res.Target.Mode
	if mode == 0 {
		mode = 0644
	}
	path := res.Target.Output

	if !res.Changed() {
		return &KeepFileOp{Path: path, Reason: "unchanged"}, nil
	}
	if !res.Exists() || resolver == nil {
		return &WriteFileOp{Path: path, Content: res.Content, Mode: mode, Overwrite: true}, nil
	}

	c := Conflict{Path: path, Existing: res.Previous, Generated: res.Content, Dropped: res.Dropped}
	for {
		decision, err := resolver.Resolve(c)
		if err != nil {
			return nil, err
		}

		switch decision {
		case Overwrite:
			return &WriteFileOp{Path: path, Content: res.Content, Mode: mode, Overwrite: true}, nil
		case Skip:
			return &KeepFileOp{Path: path, Reason: "skipped"}, nil
		case ShowDiff:
			resolver.PrintDiff(c)
		default:
			return nil, ErrCancelled
		}
	}
}

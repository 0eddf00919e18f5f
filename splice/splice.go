// Package splice keeps tool-owned blocks up to date inside files the tool
// does not otherwise own.
//
// A block is delimited by
//
//	/* GENERATED CODE BEGIN <tool> <purpose> */
//	/* GENERATED CODE END <tool> <purpose> */
//
// Everything between the markers belongs to the tool and is replaced
// wholesale; everything outside them is left alone. This is the inverse of
// package region, where the tool owns the file and the user owns the
// regions.
package splice

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"unicode"

	"github.com/simonhull/firebird-suite/nest/generator"
)

// ErrInvalidKey is returned for a tool or purpose that cannot appear in a marker.
var ErrInvalidKey = errors.New("splice: invalid block key")

// Key identifies a block.
type Key struct {
	Tool    string
	Purpose string
}

func (k Key) String() string { return k.Tool + " " + k.Purpose }

// BeginMarker returns the line that opens the block.
func (k Key) BeginMarker() string {
	return fmt.Sprintf("/* GENERATED CODE BEGIN %s %s */", k.Tool, k.Purpose)
}

// EndMarker returns the line that closes the block.
func (k Key) EndMarker() string {
	return fmt.Sprintf("/* GENERATED CODE END %s %s */", k.Tool, k.Purpose)
}

// Blocks is an ordered set of generated blocks.
type Blocks struct {
	order   []Key
	content map[Key]string
}

// New returns an empty set.
func New() *Blocks {
	return &Blocks{content: make(map[Key]string)}
}

// Set stores the content of a block. Setting an existing key replaces its
// content but keeps its position.
func (b *Blocks) Set(tool, purpose, content string) error {
	k := Key{Tool: tool, Purpose: purpose}
	if err := validKey(k); err != nil {
		return err
	}

	if _, ok := b.content[k]; !ok {
		b.order = append(b.order, k)
	}
	b.content[k] = content
	return nil
}

// Get returns the content stored for a block.
func (b *Blocks) Get(tool, purpose string) (string, bool) {
	c, ok := b.content[Key{Tool: tool, Purpose: purpose}]
	return c, ok
}

// Keys returns the block keys in insertion order.
func (b *Blocks) Keys() []Key {
	return append([]Key(nil), b.order...)
}

// Len returns the number of blocks.
func (b *Blocks) Len() int { return len(b.order) }

// Render returns the text of a new file holding every block, separated by
// blank lines.
func (b *Blocks) Render() string {
	var sb strings.Builder
	for i, k := range b.order {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(block(k, b.content[k]))
	}
	return sb.String()
}

// Apply returns existing with every block brought up to date. A block
// whose begin marker is found is replaced up to the last matching end
// marker; a block that is not found is appended after a blank line.
func (b *Blocks) Apply(existing string) string {
	out := existing
	for _, k := range b.order {
		out = apply(out, k, b.content[k])
	}
	return out
}

// EmbedFile applies the blocks to the file at path, creating it when it
// does not exist. The file is written atomically.
func (b *Blocks) EmbedFile(path string) error {
	_, err := b.Embed(path)
	return err
}

// Preview returns what EmbedFile would write, and the current content of
// the file (nil when missing).
func (b *Blocks) Preview(path string) (next, previous []byte, err error) {
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return []byte(b.Render()), nil, nil
	case err != nil:
		return nil, nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return []byte(b.Apply(string(data))), data, nil
}

// Embed is EmbedFile that also reports whether the file changed.
func (b *Blocks) Embed(path string) (bool, error) {
	next, previous, err := b.Preview(path)
	if err != nil {
		return false, err
	}
	if previous != nil && string(previous) == string(next) {
		return false, nil
	}

	mode := fs.FileMode(0644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}

	tx := generator.NewTransaction()
	tx.AddFile(path, next, mode)
	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("writing %s: %w", path, err)
	}
	return true, nil
}

func apply(text string, k Key, content string) string {
	begin := k.BeginMarker()
	end := k.EndMarker()

	bi := strings.Index(text, begin)
	ei := strings.LastIndex(text, end)
	if bi >= 0 && ei > bi {
		return text[:bi] + begin + "\n" + terminate(content) + text[ei:]
	}

	if text != "" && !strings.HasSuffix(text, "\n") {
		text += "\n"
	}
	if text != "" {
		text += "\n"
	}
	return text + block(k, content)
}

func block(k Key, content string) string {
	return k.BeginMarker() + "\n" + terminate(content) + k.EndMarker() + "\n"
}

func terminate(content string) string {
	if content != "" && !strings.HasSuffix(content, "\n") {
		return content + "\n"
	}
	return content
}

func validKey(k Key) error {
	for _, part := range []string{k.Tool, k.Purpose} {
		if part == "" || strings.Contains(part, "*/") || strings.IndexFunc(part, unicode.IsSpace) >= 0 {
			return fmt.Errorf("%w: %q", ErrInvalidKey, k.String())
		}
	}
	return nil
}

package region

import (
	"bytes"
	"errors"
	"io/fs"
	"os"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Captures is the content found between markers in one scanned file.
// Content never includes the marker lines themselves.
type Captures struct {
	named   map[string]string
	partial map[uint64]string
}

func newCaptures() *Captures {
	return &Captures{
		named:   make(map[string]string),
		partial: make(map[uint64]string),
	}
}

// Named returns the captured content of a named region.
func (c *Captures) Named(name string) (string, bool) {
	s, ok := c.named[name]
	return s, ok
}

// Partial returns the captured content of a partial region.
func (c *Captures) Partial(id uint64) (string, bool) {
	s, ok := c.partial[id]
	return s, ok
}

// NamedNames returns the captured region names in sorted order.
func (c *Captures) NamedNames() []string {
	names := make([]string, 0, len(c.named))
	for name := range c.named {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// PartialIDs returns the captured partial ids in ascending order.
func (c *Captures) PartialIDs() []uint64 {
	ids := make([]uint64, 0, len(c.partial))
	for id := range c.partial {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Len returns the number of named and partial regions captured.
func (c *Captures) Len() (named, partial int) {
	return len(c.named), len(c.partial)
}

type openKind int

const (
	openNone openKind = iota
	openNamed
	openPartial
)

// openRegion is the single region the scanner may be inside.
type openRegion struct {
	kind openKind
	name string
	id   uint64
}

func (o openRegion) label() string {
	if o.kind == openPartial {
		return PartialLabel(o.id)
	}
	return o.name
}

// Scan extracts every region from the text of a previously generated file.
//
// The scan is a single forward pass. Lines outside regions are ignored.
// The first well-formedness violation aborts the scan with a *ScanError and
// nothing is returned.
func Scan(text string) (*Captures, error) {
	caps := newCaptures()

	var open openRegion
	var content strings.Builder
	lineNum := 0

	for raw := range strings.Lines(text) {
		lineNum++
		line := strings.TrimSuffix(strings.TrimSuffix(raw, "\n"), "\r")

		if m := partialBeginPattern.FindStringSubmatch(line); m != nil {
			if open.kind != openNone {
				return nil, &ScanError{Kind: ErrNestedSection, Line: lineNum, Section: open.label()}
			}
			id, err := parsePartialID(m[1], lineNum)
			if err != nil {
				return nil, err
			}
			open = openRegion{kind: openPartial, id: id}
			content.Reset()
			continue
		}

		if m := namedBeginPattern.FindStringSubmatch(line); m != nil {
			if open.kind != openNone {
				return nil, &ScanError{Kind: ErrNestedSection, Line: lineNum, Section: open.label()}
			}
			open = openRegion{kind: openNamed, name: m[1]}
			content.Reset()
			continue
		}

		if m := partialEndPattern.FindStringSubmatch(line); m != nil {
			id, err := parsePartialID(m[1], lineNum)
			if err != nil {
				return nil, err
			}
			switch {
			case open.kind == openNone:
				return nil, &ScanError{
					Kind:    ErrInvalidSection,
					Line:    lineNum,
					Section: PartialLabel(id),
					Reason:  "no matching begin for '" + PartialLabel(id) + "'",
				}
			case open.kind == openNamed:
				return nil, &ScanError{Kind: ErrMismatchedSection, Line: lineNum, Expected: open.name, Found: PartialLabel(id)}
			case open.id != id:
				return nil, &ScanError{
					Kind:     ErrMismatchedSection,
					Line:     lineNum,
					Expected: strconv.FormatUint(open.id, 10),
					Found:    strconv.FormatUint(id, 10),
				}
			}
			caps.partial[id] = content.String()
			open = openRegion{}
			continue
		}

		if m := namedEndPattern.FindStringSubmatch(line); m != nil {
			name := m[1]
			switch {
			case open.kind == openNone:
				return nil, &ScanError{
					Kind:    ErrInvalidSection,
					Line:    lineNum,
					Section: name,
					Reason:  "no matching begin for '" + name + "'",
				}
			case open.kind == openPartial:
				return nil, &ScanError{Kind: ErrMismatchedSection, Line: lineNum, Expected: open.label(), Found: name}
			case open.name != name:
				return nil, &ScanError{Kind: ErrMismatchedSection, Line: lineNum, Expected: open.name, Found: name}
			}
			caps.named[name] = content.String()
			open = openRegion{}
			continue
		}

		if open.kind != openNone {
			content.WriteString(line)
			content.WriteByte('\n')
		}
	}

	if open.kind != openNone {
		return nil, &ScanError{Kind: ErrUnclosedSection, Line: lineNum, Section: open.label()}
	}

	return caps, nil
}

// ScanFile scans a previously generated file. A file that does not exist
// yet yields empty captures: generating a new file is not an error.
func ScanFile(path string) (*Captures, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return newCaptures(), nil
		}
		return nil, &CaptureError{Path: path, Err: err}
	}

	text, _, err := Decode(data)
	if err != nil {
		return nil, &CaptureError{Path: path, Err: err}
	}

	return Scan(text)
}

func parsePartialID(digits string, line int) (uint64, error) {
	id, err := strconv.ParseUint(digits, 10, 64)
	if err != nil {
		return 0, &ScanError{
			Kind:    ErrInvalidSection,
			Line:    line,
			Section: digits,
			Reason:  "partial section id " + digits + " is out of range",
		}
	}
	return id, nil
}

// Encoding is how a scanned file was stored on disk.
type Encoding int

const (
	Plain   Encoding = iota // UTF-8 or anything else without a byte order mark
	UTF8BOM                 // UTF-8 with a byte order mark
	UTF16BE                 // UTF-16, big endian, with a byte order mark
	UTF16LE                 // UTF-16, little endian, with a byte order mark
)

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16BE = []byte{0xFE, 0xFF}
	bomUTF16LE = []byte{0xFF, 0xFE}
)

// Decode converts file contents to the text Scan expects. Files saved with
// a byte order mark are decoded to plain UTF-8; anything else is passed
// through untouched so no byte of user code is rewritten.
func Decode(data []byte) (string, Encoding, error) {
	var enc Encoding
	switch {
	case bytes.HasPrefix(data, bomUTF8):
		enc = UTF8BOM
	case bytes.HasPrefix(data, bomUTF16BE):
		enc = UTF16BE
	case bytes.HasPrefix(data, bomUTF16LE):
		enc = UTF16LE
	default:
		return string(data), Plain, nil
	}

	out, _, err := transform.Bytes(unicode.BOMOverride(unicode.UTF8.NewDecoder()), data)
	if err != nil {
		return "", enc, err
	}
	return string(out), enc, nil
}

// Encode converts text back to the encoding a file was read with, byte
// order mark included.
func (e Encoding) Encode(text string) ([]byte, error) {
	var enc encoding.Encoding
	switch e {
	case UTF8BOM:
		enc = unicode.UTF8BOM
	case UTF16BE:
		enc = unicode.UTF16(unicode.BigEndian, unicode.UseBOM)
	case UTF16LE:
		enc = unicode.UTF16(unicode.LittleEndian, unicode.UseBOM)
	default:
		return []byte(text), nil
	}
	return enc.NewEncoder().Bytes([]byte(text))
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

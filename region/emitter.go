package region

import "strings"

// Formatter is the text writer regions are emitted through.
// codewriter.Writer implements it.
type Formatter interface {
	// Writeln writes one line at the current indentation.
	Writeln(line string) error
	// WriteRaw writes s exactly as given.
	WriteRaw(s string) error
	// Newline writes an empty line.
	Newline() error
	// Separator writes a one-line comment such as "/* title */".
	Separator(title string) error
}

type emitMode int

const (
	withDescription emitMode = 1 << iota
	withMarkers
)

// Emitter writes regions during a regeneration pass and guarantees each
// named region is written at most once per pass.
type Emitter struct {
	store   *Store
	written map[string]struct{}
}

// NewEmitter creates an emitter reading from store.
func NewEmitter(store *Store) *Emitter {
	return &Emitter{
		store:   store,
		written: make(map[string]struct{}),
	}
}

// EmitNamed writes the region's description, markers and content.
func (e *Emitter) EmitNamed(f Formatter, name string) error {
	return e.emit(f, name, withDescription|withMarkers)
}

// EmitNamedNoDescription writes the region's markers and content.
func (e *Emitter) EmitNamedNoDescription(f Formatter, name string) error {
	return e.emit(f, name, withMarkers)
}

// EmitContentOnly writes only the region's content. The surrounding
// template is expected to supply the framing.
func (e *Emitter) EmitContentOnly(f Formatter, name string) error {
	return e.emit(f, name, 0)
}

// EmitPartial writes a partial region: the captured content if there is
// any, otherwise inlineDefault. Partial regions are not deduplicated.
func (e *Emitter) EmitPartial(f Formatter, id uint64, inlineDefault string) error {
	content, ok := e.store.ResolvePartial(id)
	if !ok {
		content = inlineDefault
	}

	if err := f.Writeln(PartialBegin(id)); err != nil {
		return err
	}
	if err := f.WriteRaw(normalizeContent(content)); err != nil {
		return err
	}
	return f.Writeln(PartialEnd(id))
}

// ResetWritten starts a new pass.
func (e *Emitter) ResetWritten() {
	clear(e.written)
}

// Written reports whether name was emitted in the current pass.
func (e *Emitter) Written(name string) bool {
	_, ok := e.written[name]
	return ok
}

func (e *Emitter) emit(f Formatter, name string, mode emitMode) error {
	def, ok := e.store.registry.Lookup(name)
	if !ok {
		return &UnknownSectionError{Name: name}
	}
	// A name outside the marker grammar would never be captured again.
	if err := def.checkName(); err != nil {
		return err
	}

	// A second emission in the same pass would duplicate the markers.
	if e.Written(name) {
		return nil
	}

	if mode&withDescription != 0 && def.Description != "" {
		if err := def.checkDescription(); err != nil {
			return err
		}
		if err := f.Separator(def.Description); err != nil {
			return err
		}
	}

	if mode&withMarkers != 0 {
		if err := f.Writeln(NamedBegin(name)); err != nil {
			return err
		}
	}

	if err := f.WriteRaw(normalizeContent(e.store.Resolve(name))); err != nil {
		return err
	}

	if mode&withMarkers != 0 {
		if err := f.Writeln(NamedEnd(name)); err != nil {
			return err
		}
		if err := f.Newline(); err != nil {
			return err
		}
	}

	e.written[name] = struct{}{}
	return nil
}

// normalizeContent makes sure non-empty content ends with a newline so the
// end marker starts on its own line.
func normalizeContent(content string) string {
	if content != "" && !strings.HasSuffix(content, "\n") {
		return content + "\n"
	}
	return content
}

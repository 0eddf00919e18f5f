package region

// Stats summarises a manager's definitions and captures.
type Stats struct {
	Defined     int
	Captured    int
	Partial     int
	WithDefault int
}

// Manager ties a registry, its content store and an emitter together.
// It is the entry point generators use.
type Manager struct {
	registry *Registry
	store    *Store
	emitter  *Emitter
}

// NewManager creates a manager with an empty registry.
func NewManager() *Manager {
	return NewManagerWithRegistry(NewRegistry())
}

// NewManagerWithRegistry creates a manager around an existing registry.
func NewManagerWithRegistry(registry *Registry) *Manager {
	store := NewStore(registry)
	return &Manager{
		registry: registry,
		store:    store,
		emitter:  NewEmitter(store),
	}
}

// Registry returns the manager's registry.
func (m *Manager) Registry() *Registry { return m.registry }

// Store returns the manager's content store.
func (m *Manager) Store() *Store { return m.store }

// Define declares a region with no description and no default.
func (m *Manager) Define(name string) {
	m.registry.Define(name)
}

// DefineWithDescription declares a region with a description.
func (m *Manager) DefineWithDescription(name, description string) {
	m.registry.DefineWithDescription(name, description)
}

// DefineWithDefault declares a region with default content.
func (m *Manager) DefineWithDefault(name, description, content string) {
	m.registry.DefineWithDefault(name, description, content)
}

// Scan captures regions from the text of a previously generated file.
// On error nothing from text is captured and earlier captures are kept.
func (m *Manager) Scan(text string) error {
	caps, err := Scan(text)
	if err != nil {
		return err
	}
	m.store.Merge(caps)
	return nil
}

// CaptureFile captures regions from a file on disk. A missing file is not
// an error.
func (m *Manager) CaptureFile(path string) error {
	caps, err := ScanFile(path)
	if err != nil {
		return err
	}
	m.store.Merge(caps)
	return nil
}

// Resolve returns captured content, else the default, else "".
func (m *Manager) Resolve(name string) string {
	return m.store.Resolve(name)
}

// Lookup is Resolve that also reports whether any content exists.
func (m *Manager) Lookup(name string) (string, bool) {
	return m.store.Lookup(name)
}

// ResolvePartial returns captured content for a partial region.
func (m *Manager) ResolvePartial(id uint64) (string, bool) {
	return m.store.ResolvePartial(id)
}

// HasPartial reports whether partial region id was captured.
func (m *Manager) HasPartial(id uint64) bool {
	return m.store.HasPartial(id)
}

// EmitNamed writes a named region with its description and markers.
func (m *Manager) EmitNamed(f Formatter, name string) error {
	return m.emitter.EmitNamed(f, name)
}

// EmitNamedNoDescription writes a named region with markers only.
func (m *Manager) EmitNamedNoDescription(f Formatter, name string) error {
	return m.emitter.EmitNamedNoDescription(f, name)
}

// EmitContentOnly writes a named region's content without markers.
func (m *Manager) EmitContentOnly(f Formatter, name string) error {
	return m.emitter.EmitContentOnly(f, name)
}

// EmitPartial writes a partial region.
func (m *Manager) EmitPartial(f Formatter, id uint64, inlineDefault string) error {
	return m.emitter.EmitPartial(f, id, inlineDefault)
}

// ResetWritten starts a new emission pass.
func (m *Manager) ResetWritten() {
	m.emitter.ResetWritten()
}

// Written reports whether name was emitted in the current pass.
func (m *Manager) Written(name string) bool {
	return m.emitter.Written(name)
}

// Unwritten returns captured region names, sorted, that were not emitted in
// the current pass. Their content will be missing from the new output.
func (m *Manager) Unwritten() []string {
	var names []string
	for _, name := range m.store.CapturedNames() {
		if !m.emitter.Written(name) {
			names = append(names, name)
		}
	}
	return names
}

// ClearCaptured discards all captured content and resets the written
// tracker, ready for a capture from a different snapshot.
func (m *Manager) ClearCaptured() {
	m.store.Clear()
	m.emitter.ResetWritten()
}

// Stats reports counts of defined, captured and partial regions.
func (m *Manager) Stats() Stats {
	return Stats{
		Defined:     m.registry.Len(),
		Captured:    len(m.store.named),
		Partial:     len(m.store.partial),
		WithDefault: m.registry.withDefaultCount(),
	}
}

// Validate checks that every captured named region is defined. It is
// opt-in: capturing before defining is a legitimate order.
func (m *Manager) Validate() error {
	for _, name := range m.store.CapturedNames() {
		if !m.registry.Has(name) {
			return &UnknownSectionError{Name: name}
		}
	}
	return nil
}

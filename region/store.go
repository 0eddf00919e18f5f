package region

import "sort"

// Store is the lookup surface consulted during emission. It holds captured
// content and falls back to the registry's defaults.
type Store struct {
	registry *Registry
	named    map[string]string
	partial  map[uint64]string
}

// NewStore creates an empty store backed by registry.
func NewStore(registry *Registry) *Store {
	return &Store{
		registry: registry,
		named:    make(map[string]string),
		partial:  make(map[uint64]string),
	}
}

// Merge installs the result of a scan. Regions captured again replace
// earlier content; everything else is kept.
func (s *Store) Merge(c *Captures) {
	for name, content := range c.named {
		s.named[name] = content
	}
	for id, content := range c.partial {
		s.partial[id] = content
	}
}

// Lookup returns captured content, else the registry default. The boolean
// is false when neither exists.
func (s *Store) Lookup(name string) (string, bool) {
	if content, ok := s.named[name]; ok {
		return content, true
	}
	if def, ok := s.registry.Lookup(name); ok && def.HasDefault {
		return def.Default, true
	}
	return "", false
}

// Resolve returns captured content, else the registry default, else "".
func (s *Store) Resolve(name string) string {
	content, _ := s.Lookup(name)
	return content
}

// ResolvePartial returns the captured content of a partial region.
// Partial regions have no registry default.
func (s *Store) ResolvePartial(id uint64) (string, bool) {
	content, ok := s.partial[id]
	return content, ok
}

// HasCaptured reports whether content was captured for name.
func (s *Store) HasCaptured(name string) bool {
	_, ok := s.named[name]
	return ok
}

// HasPartial reports whether content was captured for partial region id.
func (s *Store) HasPartial(id uint64) bool {
	_, ok := s.partial[id]
	return ok
}

// CapturedNames returns captured region names in sorted order.
func (s *Store) CapturedNames() []string {
	names := make([]string, 0, len(s.named))
	for name := range s.named {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// PartialIDs returns captured partial ids in ascending order.
func (s *Store) PartialIDs() []uint64 {
	ids := make([]uint64, 0, len(s.partial))
	for id := range s.partial {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Clear discards all captured content.
func (s *Store) Clear() {
	clear(s.named)
	clear(s.partial)
}

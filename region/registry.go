package region

import (
	"sort"
	"strings"
)

// Definition declares a named region a generator knows how to emit.
type Definition struct {
	Name        string
	Description string // optional, emitted as a comment above the region
	Default     string // content used when nothing was captured
	HasDefault  bool
}

// Check reports why d cannot be emitted, or nil. Defining never fails;
// emission runs the same checks.
func (d Definition) Check() error {
	if err := d.checkName(); err != nil {
		return err
	}
	return d.checkDescription()
}

func (d Definition) checkName() error {
	if !ValidName(d.Name) {
		return &DefinitionError{Name: d.Name, Reason: "names may only contain letters, digits and '_'"}
	}
	return nil
}

// checkDescription rejects descriptions that break out of the separator
// comment or turn it into a marker.
func (d Definition) checkDescription() error {
	desc := d.Description
	switch {
	case strings.ContainsAny(desc, "\r\n"):
		return &DefinitionError{Name: d.Name, Reason: "description must be a single line"}
	case strings.Contains(desc, "*/"):
		return &DefinitionError{Name: d.Name, Reason: "description must not contain '*/'"}
	case desc != "" && IsMarker("/* "+desc+" */"):
		return &DefinitionError{Name: d.Name, Reason: "description reads as a region marker"}
	}
	return nil
}

// Registry holds the named regions a generator declares.
// Redefining a name replaces the previous definition.
type Registry struct {
	defs map[string]Definition
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		defs: make(map[string]Definition),
	}
}

// Define declares a region with no description and no default.
func (r *Registry) Define(name string) {
	r.defs[name] = Definition{Name: name}
}

// DefineWithDescription declares a region with a description.
func (r *Registry) DefineWithDescription(name, description string) {
	r.defs[name] = Definition{Name: name, Description: description}
}

// DefineWithDefault declares a region with default content.
// An empty description means none.
func (r *Registry) DefineWithDefault(name, description, content string) {
	r.defs[name] = Definition{
		Name:        name,
		Description: description,
		Default:     content,
		HasDefault:  true,
	}
}

// Load defines every entry in defs, in order.
func (r *Registry) Load(defs []Definition) {
	for _, d := range defs {
		r.defs[d.Name] = d
	}
}

// Lookup returns the definition for name.
func (r *Registry) Lookup(name string) (Definition, bool) {
	d, ok := r.defs[name]
	return d, ok
}

// Has reports whether name is defined.
func (r *Registry) Has(name string) bool {
	_, ok := r.defs[name]
	return ok
}

// Names returns all defined names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.defs))
	for name := range r.defs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of defined regions.
func (r *Registry) Len() int {
	return len(r.defs)
}

func (r *Registry) withDefaultCount() int {
	n := 0
	for _, d := range r.defs {
		if d.HasDefault {
			n++
		}
	}
	return n
}

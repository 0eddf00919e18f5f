package generator

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"sync"
	"text/template"

	"github.com/simonhull/firebird-suite/nest/codewriter"
	"github.com/simonhull/firebird-suite/nest/region"
)

// Renderer parses and caches templates and executes them against a
// region.Manager.
type Renderer struct {
	funcMap    template.FuncMap
	cache      map[string]*template.Template
	mu         sync.RWMutex // Protect cache for concurrent access
	indentSize int
}

// NewRenderer creates a renderer with the built-in helper functions.
func NewRenderer() *Renderer {
	return &Renderer{
		funcMap:    defaultFuncMap(),
		cache:      make(map[string]*template.Template),
		indentSize: codewriter.DefaultIndentSize,
	}
}

// SetIndentSize sets the spaces per level used when a template asks for an
// indented region, as in {{ region "Init" 1 }}.
func (r *Renderer) SetIndentSize(n int) { r.indentSize = n }

// IndentSize returns the spaces per indentation level.
func (r *Renderer) IndentSize() int { return r.indentSize }

// RenderString renders a template from a string.
// The name is used for caching and error messages.
func (r *Renderer) RenderString(m *region.Manager, name, templateStr string, data any) ([]byte, error) {
	tmpl, err := r.load("string:"+name, func() (string, error) { return templateStr, nil })
	if err != nil {
		return nil, err
	}
	return r.execute(tmpl, m, data)
}

// RenderFS renders a template from a filesystem such as an embed.FS.
func (r *Renderer) RenderFS(m *region.Manager, fsys fs.FS, path string, data any) ([]byte, error) {
	tmpl, err := r.load("fs:"+path, func() (string, error) {
		b, err := fs.ReadFile(fsys, path)
		if err != nil {
			return "", fmt.Errorf("failed to read template from fs '%s': %w", path, err)
		}
		return string(b), nil
	})
	if err != nil {
		return nil, err
	}
	return r.execute(tmpl, m, data)
}

// RenderFile renders a template file from disk.
func (r *Renderer) RenderFile(m *region.Manager, path string, data any) ([]byte, error) {
	tmpl, err := r.load("file:"+path, func() (string, error) {
		b, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("failed to read template file '%s': %w", path, err)
		}
		return string(b), nil
	})
	if err != nil {
		return nil, err
	}
	return r.execute(tmpl, m, data)
}

// ClearCache clears the template cache (useful for testing)
func (r *Renderer) ClearCache() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cache = make(map[string]*template.Template)
}

func (r *Renderer) load(key string, source func() (string, error)) (*template.Template, error) {
	r.mu.RLock()
	if tmpl, ok := r.cache[key]; ok {
		r.mu.RUnlock()
		return tmpl, nil
	}
	r.mu.RUnlock()

	text, err := source()
	if err != nil {
		return nil, err
	}

	name := key[strings.Index(key, ":")+1:]
	tmpl, err := template.New(name).Funcs(r.funcMap).Parse(text)
	if err != nil {
		return nil, fmt.Errorf("failed to parse template '%s': %w", name, err)
	}

	r.mu.Lock()
	r.cache[key] = tmpl
	r.mu.Unlock()

	return tmpl, nil
}

// execute runs a clone of tmpl with the region functions bound to m.
// Cached templates are shared, so they are never bound directly.
func (r *Renderer) execute(tmpl *template.Template, m *region.Manager, data any) ([]byte, error) {
	clone, err := tmpl.Clone()
	if err != nil {
		return nil, fmt.Errorf("failed to clone template '%s': %w", tmpl.Name(), err)
	}
	clone.Funcs(regionFuncs(m, r.indentSize))

	var buf bytes.Buffer
	if err := clone.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to render template '%s': %w", tmpl.Name(), err)
	}
	return buf.Bytes(), nil
}

// regionFuncs returns the template functions that emit user regions. The
// named-region functions take an optional indentation level for their
// markers and description.
func regionFuncs(m *region.Manager, indentSize int) template.FuncMap {
	emit := func(level []int, fn func(region.Formatter) error) (string, error) {
		if m == nil {
			return "", fmt.Errorf("no region manager bound to this render")
		}
		var b strings.Builder
		w := codewriter.NewWithOptions(&b, indentSize, true)
		if len(level) > 0 {
			for range level[0] {
				w.Indent()
			}
		}
		if err := fn(w); err != nil {
			return "", err
		}
		return b.String(), nil
	}

	return template.FuncMap{
		"region": func(name string, level ...int) (string, error) {
			return emit(level, func(f region.Formatter) error { return m.EmitNamed(f, name) })
		},
		"regionBare": func(name string, level ...int) (string, error) {
			return emit(level, func(f region.Formatter) error { return m.EmitNamedNoDescription(f, name) })
		},
		"regionContent": func(name string) (string, error) {
			return emit(nil, func(f region.Formatter) error { return m.EmitContentOnly(f, name) })
		},
		"partial": func(id any, inlineDefault ...string) (string, error) {
			n, err := toID(id)
			if err != nil {
				return "", err
			}
			return emit(nil, func(f region.Formatter) error {
				return m.EmitPartial(f, n, strings.Join(inlineDefault, ""))
			})
		},
	}
}

// toID converts a template number to a partial region id.
func toID(v any) (uint64, error) {
	switch n := v.(type) {
	case int:
		if n >= 0 {
			return uint64(n), nil
		}
	case int64:
		if n >= 0 {
			return uint64(n), nil
		}
	case uint64:
		return n, nil
	case uint:
		return uint64(n), nil
	}
	return 0, fmt.Errorf("partial region id must be a non-negative integer, got %v (%T)", v, v)
}

// defaultFuncMap returns the default template function map. The region
// functions are placeholders so templates parse; execute rebinds them.
func defaultFuncMap() template.FuncMap {
	funcs := template.FuncMap{
		// Case conversion
		"pascalCase": PascalCase, // user_name → UserName
		"camelCase":  CamelCase,  // user_name → userName
		"snakeCase":  SnakeCase,  // UserName → user_name
		"identifier": Identifier, // 2nd-pass → _nd_pass

		// String manipulation
		"quote":     Quote,
		"upper":     strings.ToUpper,
		"lower":     strings.ToLower,
		"trim":      strings.TrimSpace,
		"join":      strings.Join,
		"repeat":    strings.Repeat,
		"hasPrefix": strings.HasPrefix,
		"hasSuffix": strings.HasSuffix,
		"replace":   strings.ReplaceAll,

		// Utilities
		"dict":    Dict,
		"default": Default,
	}
	for name, fn := range regionFuncs(nil, codewriter.DefaultIndentSize) {
		funcs[name] = fn
	}
	return funcs
}

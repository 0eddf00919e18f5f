package filesystem

import (
	"io/fs"
	"path/filepath"
	"slices"
	"strings"
)

// DefaultSourceExtensions are the file types searched for regions.
var DefaultSourceExtensions = []string{".c", ".h", ".cc", ".cpp", ".hh", ".hpp", ".cxx", ".hxx", ".s", ".S"}

// SourceOptions configures DiscoverSources.
type SourceOptions struct {
	WalkOptions
	Extensions []string // default: DefaultSourceExtensions
}

// DiscoverSources returns the source files under root, sorted. A root that
// is itself a file is returned as is, whatever its extension.
func DiscoverSources(root string, opts SourceOptions) ([]string, error) {
	exts := opts.Extensions
	if len(exts) == 0 {
		exts = DefaultSourceExtensions
	}

	var files []string
	err := Walk(root, opts.WalkOptions, func(path string, d fs.DirEntry) error {
		if d.IsDir() {
			return nil
		}
		if path == root || hasExtension(path, exts) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slices.Sort(files)
	return files, nil
}

// hasExtension matches the extension of path case-insensitively.
func hasExtension(path string, exts []string) bool {
	ext := filepath.Ext(path)
	if ext == "" {
		return false
	}
	return slices.ContainsFunc(exts, func(e string) bool { return strings.EqualFold(e, ext) })
}

package filesystem

import (
	"io/fs"
	"path/filepath"
	"slices"
	"strings"
)

// DefaultIgnoreDirs are skipped unless WalkOptions.IgnoreDirs is set.
var DefaultIgnoreDirs = []string{
	".git", ".svn", ".hg",
	"node_modules", "vendor", "third_party",
	"build", "dist", "bin", "obj", "out", "tmp",
	".idea", ".vscode", ".vs",
}

// WalkOptions configures a traversal.
type WalkOptions struct {
	IgnoreDirs     []string // directory names to skip (default: DefaultIgnoreDirs)
	IgnorePatterns []string // file name globs to skip, e.g. "*.o"
	IncludeHidden  bool     // visit dot files and dot directories
}

// Walk calls visit for every file and directory under root that the
// options do not exclude. Returning fs.SkipDir from visit skips a
// directory.
func Walk(root string, opts WalkOptions, visit func(path string, d fs.DirEntry) error) error {
	ignoreDirs := opts.IgnoreDirs
	if ignoreDirs == nil {
		ignoreDirs = DefaultIgnoreDirs
	}

	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		name := d.Name()
		if path != root {
			if !opts.IncludeHidden && strings.HasPrefix(name, ".") {
				if d.IsDir() {
					return fs.SkipDir
				}
				return nil
			}
			if d.IsDir() && slices.Contains(ignoreDirs, name) {
				return fs.SkipDir
			}
		}

		if !d.IsDir() && matchesAny(name, opts.IgnorePatterns) {
			return nil
		}

		return visit(path, d)
	})
}

// WalkWithDefaults is Walk with zero options.
func WalkWithDefaults(root string, visit func(path string, d fs.DirEntry) error) error {
	return Walk(root, WalkOptions{}, visit)
}

func matchesAny(name string, patterns []string) bool {
	for _, p := range patterns {
		if ok, _ := filepath.Match(p, name); ok {
			return true
		}
	}
	return false
}

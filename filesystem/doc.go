// Package filesystem walks source trees looking for files that may hold
// generated regions.
//
// Walk skips version-control and build directories by default:
//
//	err := filesystem.Walk("firmware", filesystem.WalkOptions{}, func(path string, d fs.DirEntry) error {
//	    fmt.Println(path)
//	    return nil
//	})
//
// DiscoverSources narrows the walk to source files:
//
//	files, err := filesystem.DiscoverSources("firmware", filesystem.SourceOptions{
//	    Extensions: []string{".c", ".h"},
//	})
package filesystem

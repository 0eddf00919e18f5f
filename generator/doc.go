// Package generator regenerates files without losing user code.
//
// # Features
//
//   - Template rendering with region functions bound to a region.Manager
//   - Regeneration: capture the previous output, render, compare
//   - Conflict resolution (interactive, --force, --skip, --diff)
//   - Myers diff for reviewing what a regeneration changes
//   - Atomic writes and multi-file transactions
//
// # Templates
//
// Templates call region functions instead of writing markers by hand:
//
//	{{ region "Includes" }}
//	int main(void) {
//	{{ regionBare "Main" 1 -}}
//	{{ partial 1 "    return 0;" -}}
//	}
//
// The optional number after a region name is an indentation level for its
// markers; see Renderer.SetIndentSize. Region content is never re-indented.
//
// # Transactions
//
// Use transactions when several files must change together:
//
//	tx := generator.NewTransaction()
//	tx.AddFile("example.h", header, 0644)
//	tx.AddFile("example.c", source, 0644)
//
//	if err := tx.Commit(); err != nil {
//	    // Files written before the failure are restored
//	    return err
//	}
//
// Every file is written to a temporary sibling and renamed into place, so a
// reader never observes a half-written output.
package generator

package generator

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Operation represents a file system operation that can be validated and executed.
//
// Validate checks if the operation would succeed without executing it.
// force=true skips conflict checks (e.g., file already exists).
//
// Execute performs the actual operation. This should only be called after Validate succeeds.
//
// Description returns a human-readable description for output (e.g., "Write gen/example.h (234 bytes)").
type Operation interface {
	Validate(ctx context.Context, force bool) error
	Execute(ctx context.Context) error
	Description() string
}

// WriteFileOp writes a generated file.
//
// Validation behavior:
//   - Creates parent directories if they don't exist
//   - Rejects an existing file unless force=true or Overwrite is set
//   - Allows empty content (zero bytes) but rejects nil content
//
// Execution writes to a temporary file in the same directory and renames
// it over Path, so the previous content stays intact if anything fails.
type WriteFileOp struct {
	Path      string      // File path to write
	Content   []byte      // File content (can be empty, must not be nil)
	Mode      fs.FileMode // File permissions (e.g., 0644)
	Overwrite bool        // Replacing an existing file is expected (regeneration)
}

func (op *WriteFileOp) Validate(ctx context.Context, force bool) error {
	dir := filepath.Dir(op.Path)

	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("cannot create directory %s: %w", dir, err)
	}

	if !force && !op.Overwrite {
		if _, err := os.Stat(op.Path); err == nil {
			return fmt.Errorf("file already exists: %s", op.Path)
		}
	}

	if op.Content == nil {
		return fmt.Errorf("content is nil for file: %s", op.Path)
	}

	return nil
}

func (op *WriteFileOp) Execute(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return writeFileAtomic(op.Path, op.Content, op.Mode)
}

func (op *WriteFileOp) Description() string {
	verb := "Create"
	if _, err := os.Stat(op.Path); err == nil {
		verb = "Update"
	}
	return fmt.Sprintf("%s %s (%d bytes)", verb, op.Path, len(op.Content))
}

// KeepFileOp leaves a file alone. It records the decision so it shows up
// in the execution report.
type KeepFileOp struct {
	Path   string
	Reason string // e.g. "unchanged", "skipped"
}

func (op *KeepFileOp) Validate(ctx context.Context, force bool) error { return nil }

func (op *KeepFileOp) Execute(ctx context.Context) error { return nil }

func (op *KeepFileOp) Description() string {
	return fmt.Sprintf("Keep %s (%s)", op.Path, op.Reason)
}

// writeFileAtomic writes data next to path and renames it into place.
func writeFileAtomic(path string, data []byte, mode fs.FileMode) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temporary file for %s: %w", path, err)
	}
	tmpPath := tmp.Name()

	cleanup := func() {
		tmp.Close()
		os.Remove(tmpPath) // Best effort
	}

	if _, err := tmp.Write(data); err != nil {
		cleanup()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := tmp.Chmod(mode); err != nil {
		cleanup()
		return fmt.Errorf("failed to set mode on %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}

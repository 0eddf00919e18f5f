package generator

import (
	"context"
	"fmt"
	"io"
	"os"
)

// ExecuteOptions controls Execute.
type ExecuteOptions struct {
	DryRun bool      // report without touching the disk
	Force  bool      // passed to Operation.Validate
	Writer io.Writer // report destination, os.Stdout when nil
}

// Execute validates every operation before running any of them, then runs
// them in order and reports one line per operation.
func Execute(ctx context.Context, ops []Operation, opts ExecuteOptions) error {
	w := opts.Writer
	if w == nil {
		w = os.Stdout
	}

	for _, op := range ops {
		if err := op.Validate(ctx, opts.Force); err != nil {
			return fmt.Errorf("validation failed: %w", err)
		}
	}

	prefix := "✓ "
	if opts.DryRun {
		prefix = "✓ [DRY RUN] "
	}

	for _, op := range ops {
		// The description inspects the disk, so take it before executing.
		line := prefix + op.Description()
		if !opts.DryRun {
			if err := op.Execute(ctx); err != nil {
				return fmt.Errorf("execution failed: %w", err)
			}
		}
		fmt.Fprintln(w, line)
	}
	return nil
}

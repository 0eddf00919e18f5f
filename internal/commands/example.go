package commands

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/simonhull/firebird-suite/nest/generator"
	"github.com/simonhull/firebird-suite/nest/internal/config"
	"github.com/simonhull/firebird-suite/nest/internal/demo"
	"github.com/simonhull/firebird-suite/nest/output"
	"github.com/simonhull/firebird-suite/nest/region"
)

// ExampleCmd creates the 'example' command.
func ExampleCmd() *cobra.Command {
	var capture string
	var indent int
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "example",
		Short: "Generate the example C header and source files",
		Long: `Generate a C header or source file from a generator written in Go.

The regions of the output file are kept when it already exists. Use
--capture to take them from another file instead.

Examples:
  nest example header example.h
  nest example source example.c --header example.h
  nest example header new.h --capture old.h`,
	}

	cmd.PersistentFlags().StringVar(&capture, "capture", "", "File to capture regions from (default: the output file)")
	cmd.PersistentFlags().IntVar(&indent, "indent", 0, "Indent size (default: indent_size from nest.yml, or 4)")
	cmd.PersistentFlags().BoolVar(&dryRun, "dry-run", false, "Report what would be written without writing")

	header := &cobra.Command{
		Use:   "header <output>",
		Short: "Generate the example header",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			size, err := indentSize(cmd, indent)
			if err != nil {
				return err
			}
			return writeExample(cmd.Context(), args[0], capture, dryRun, demo.HeaderManager(),
				func(m *region.Manager) ([]byte, error) { return demo.Header(m, size) })
		},
	}

	var headerName string
	source := &cobra.Command{
		Use:   "source <output>",
		Short: "Generate the example source file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			size, err := indentSize(cmd, indent)
			if err != nil {
				return err
			}
			return writeExample(cmd.Context(), args[0], capture, dryRun, demo.SourceManager(),
				func(m *region.Manager) ([]byte, error) { return demo.Source(m, headerName, size) })
		},
	}
	source.Flags().StringVar(&headerName, "header", "example.h", "Header included by the source file")

	cmd.AddCommand(header, source)
	return cmd
}

func writeExample(ctx context.Context, out, capture string, dryRun bool, m *region.Manager, build func(*region.Manager) ([]byte, error)) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if capture == "" {
		capture = out
	}

	if err := m.CaptureFile(capture); err != nil {
		return fmt.Errorf("failed to capture user regions from %s: %w", capture, err)
	}
	stats := m.Stats()
	output.Verbose("captured", output.F("path", capture), output.F("named", stats.Captured))

	content, err := build(m)
	if err != nil {
		return fmt.Errorf("generating %s: %w", out, err)
	}
	if dropped := m.Unwritten(); len(dropped) > 0 {
		output.Warn(fmt.Sprintf("regions not emitted by the example: %v", dropped))
	}

	op := &generator.WriteFileOp{Path: filepath.Clean(out), Content: content, Mode: 0644, Overwrite: true}
	return generator.Execute(ctx, []generator.Operation{op}, generator.ExecuteOptions{
		DryRun: dryRun,
		Writer: output.Writer(),
	})
}

// indentSize prefers the flag, then nest.yml, then the default.
func indentSize(cmd *cobra.Command, flag int) (int, error) {
	if flag > 0 {
		return flag, nil
	}

	cfg, err := loadConfig(cmd)
	switch {
	case errors.Is(err, config.ErrNotFound):
		return 0, nil
	case err != nil:
		return 0, err
	}
	return cfg.IndentSize, nil
}

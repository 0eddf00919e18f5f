package commands

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/simonhull/firebird-suite/nest/filesystem"
	"github.com/simonhull/firebird-suite/nest/internal/config"
	"github.com/simonhull/firebird-suite/nest/output"
	"github.com/simonhull/firebird-suite/nest/region"
)

// CheckCmd creates the 'check' command.
func CheckCmd() *cobra.Command {
	var exts, ignore []string

	cmd := &cobra.Command{
		Use:   "check [dir]",
		Short: "Check every source file in a tree for malformed regions",
		Long: `Walk a directory and scan every source file that contains region
markers. All files are checked; the command fails if any is malformed.

Extensions and ignored directories come from the scan section of nest.yml
when it exists, and can be overridden with flags.

Examples:
  nest check
  nest check firmware --ext .c --ext .h`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := "."
			if len(args) > 0 {
				root = args[0]
			}

			opts, err := sourceOptions(cmd)
			if err != nil {
				return err
			}
			if len(exts) > 0 {
				opts.Extensions = exts
			}
			if len(ignore) > 0 {
				opts.IgnoreDirs = ignore
			}

			files, err := filesystem.DiscoverSources(root, opts)
			if err != nil {
				return fmt.Errorf("walking %s: %w", root, err)
			}

			var checked, failed int
			for _, path := range files {
				data, err := os.ReadFile(path)
				if err != nil {
					return fmt.Errorf("reading %s: %w", path, err)
				}
				if !region.HasMarkers(string(data)) {
					output.Verbose("no markers", output.F("path", path))
					continue
				}

				checked++
				caps, err := region.ScanFile(path)
				if err != nil {
					failed++
					output.Error(fmt.Sprintf("%s: %v", path, err))
					continue
				}
				named, partial := caps.Len()
				output.Verbose("ok", output.F("path", path), output.F("named", named), output.F("partial", partial))
			}

			if failed > 0 {
				return fmt.Errorf("%d of %d files with regions are malformed", failed, checked)
			}
			output.Success(fmt.Sprintf("%d files with regions checked", checked), output.F("scanned", len(files)))
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&exts, "ext", nil, "File extensions to check (default: C and C++ sources)")
	cmd.Flags().StringSliceVar(&ignore, "ignore", nil, "Directory names to skip")
	return cmd
}

// sourceOptions reads the scan section of the config, if there is one.
func sourceOptions(cmd *cobra.Command) (filesystem.SourceOptions, error) {
	var opts filesystem.SourceOptions

	cfg, err := loadConfig(cmd)
	switch {
	case errors.Is(err, config.ErrNotFound):
		return opts, nil
	case err != nil:
		return opts, err
	}

	opts.Extensions = cfg.Scan.Extensions
	if len(cfg.Scan.IgnoreDirs) > 0 {
		opts.IgnoreDirs = cfg.Scan.IgnoreDirs
	}
	return opts, nil
}

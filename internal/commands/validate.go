package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/simonhull/firebird-suite/nest/output"
	"github.com/simonhull/firebird-suite/nest/region"
)

// ValidateCmd creates the 'validate' command.
func ValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <file>...",
		Short: "Check that files only contain regions declared in nest.yml",
		Long: `Scan files and report regions that nest.yml does not declare. Such
regions are captured but no template emits them, so their content would be
lost on the next regeneration.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			registry := cfg.Registry()

			var bad int
			for _, path := range args {
				m := region.NewManagerWithRegistry(registry)
				if err := m.CaptureFile(path); err != nil {
					return fmt.Errorf("%s: %w", path, err)
				}

				if err := m.Validate(); err != nil {
					bad++
					output.Error(fmt.Sprintf("%s: %v", path, err))
					continue
				}

				stats := m.Stats()
				output.Success(path, output.F("captured", stats.Captured), output.F("defined", stats.Defined))
			}

			if bad > 0 {
				return fmt.Errorf("%d of %d files contain undeclared regions", bad, len(args))
			}
			return nil
		},
	}
}

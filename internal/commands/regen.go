package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/simonhull/firebird-suite/nest/generator"
	"github.com/simonhull/firebird-suite/nest/output"
	"github.com/simonhull/firebird-suite/nest/region"
)

// errOutOfDate is returned by 'regen --check' when a file would change.
var errOutOfDate = errors.New("generated files are out of date")

// RegenCmd creates the 'regen' command.
func RegenCmd() *cobra.Command {
	var force, skip, diff, dryRun, check bool

	cmd := &cobra.Command{
		Use:   "regen [target...]",
		Short: "Regenerate the files listed in nest.yml",
		Long: `Regenerate every target in nest.yml, or only the named ones. The user
regions of each existing output are captured first and written back into
the new content.

When an existing file would change you are asked what to do, unless one of
--force, --skip or --diff says otherwise. --check writes nothing and fails
if any output is out of date, which suits CI.

Examples:
  nest regen
  nest regen uart --diff
  nest regen --force --dry-run
  nest regen --check`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if check && (force || skip || diff) {
				return fmt.Errorf("--check cannot be combined with --force, --skip or --diff")
			}

			var resolver *generator.Resolver
			if !check {
				r, err := generator.NewResolver(force, skip, diff, output.Writer())
				if err != nil {
					return err
				}
				resolver = r
			}

			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			targets, err := cfg.GeneratorTargets(args...)
			if err != nil {
				return err
			}
			if len(targets) == 0 {
				output.Warn("No targets in " + configPath(cmd))
				return nil
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			renderer := generator.NewRenderer()
			renderer.SetIndentSize(cfg.IndentSize)
			registry := cfg.Registry()

			var ops []generator.Operation
			var stale []string
			for _, t := range targets {
				m := region.NewManagerWithRegistry(registry)
				res, err := generator.Regenerate(ctx, renderer, m, t)
				if err != nil {
					return err
				}
				output.Verbose("regenerated", output.F("target", t.Name),
					output.F("captured", res.Stats.Captured), output.F("partial", res.Stats.Partial))

				if len(res.Dropped) > 0 {
					output.Warn(fmt.Sprintf("%s: regions not in the template will be lost: %s",
						t.Output, strings.Join(res.Dropped, ", ")))
				}

				if check {
					if res.Changed() {
						stale = append(stale, t.Output)
						output.Error("out of date: " + t.Output)
					}
					continue
				}

				op, err := generator.Plan(res, resolver)
				if err != nil {
					return err
				}
				ops = append(ops, op)
			}

			if check {
				if len(stale) > 0 {
					return fmt.Errorf("%w: %d of %d", errOutOfDate, len(stale), len(targets))
				}
				output.Success("All generated files are up to date")
				return nil
			}

			return generator.Execute(ctx, ops, generator.ExecuteOptions{
				DryRun: dryRun,
				Writer: output.Writer(),
			})
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite changed files without asking")
	cmd.Flags().BoolVar(&skip, "skip", false, "Keep changed files without asking")
	cmd.Flags().BoolVar(&diff, "diff", false, "Show the diff of each changed file before asking")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Report what would be written without writing")
	cmd.Flags().BoolVar(&check, "check", false, "Fail if any generated file is out of date")
	return cmd
}

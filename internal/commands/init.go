package commands

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"github.com/simonhull/firebird-suite/nest/input"
	"github.com/simonhull/firebird-suite/nest/internal/config"
	"github.com/simonhull/firebird-suite/nest/output"
)

// InitCmd creates the 'init' command.
func InitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a starter nest.yml",
		Long: `Write a nest.yml declaring two regions and one inline-template target.
An existing file is only replaced after confirmation, or with --force.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := configPath(cmd)

			_, err := os.Stat(path)
			switch {
			case err == nil:
				if !force {
					p := input.New(cmd.InOrStdin(), output.Writer())
					if !p.Confirm(fmt.Sprintf("%s already exists. Overwrite?", path), false) {
						output.Info("Kept " + path)
						return nil
					}
				}
			case !errors.Is(err, fs.ErrNotExist):
				return fmt.Errorf("checking %s: %w", path, err)
			}

			if err := config.Save(path, config.Default()); err != nil {
				return err
			}

			output.Success("Created " + path)
			output.Info("Next steps:")
			output.Step("nest regen        # generate example.c")
			output.Step("edit the Init region in example.c, then run nest regen again")
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing config without asking")
	return cmd
}

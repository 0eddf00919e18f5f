package commands

import (
	"github.com/spf13/cobra"

	"github.com/simonhull/firebird-suite/nest"
	"github.com/simonhull/firebird-suite/nest/internal/config"
	"github.com/simonhull/firebird-suite/nest/output"
)

// RootCmd creates the root command of the nest CLI without subcommands.
func RootCmd() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "nest",
		Short: "Regenerate code without losing hand-written regions",
		Long: `Nest regenerates source files while keeping the code developers wrote
between user region markers:

  /* USER CODE BEGIN Init */
  ...kept across regenerations...
  /* USER CODE END Init */

  //!begin 3
  ...kept as well...
  //!end 3

Regions and generated files are declared in nest.yml.`,
		Version:       nest.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			output.SetVerbose(verbose)
		},
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output for debugging")
	cmd.PersistentFlags().String("config", config.FileName, "Path to the nest config file")

	return cmd
}

// New creates the root command with every subcommand registered.
func New() *cobra.Command {
	root := RootCmd()
	root.AddCommand(
		ScanCmd(),
		CheckCmd(),
		ValidateCmd(),
		RegenCmd(),
		SpliceCmd(),
		ExampleCmd(),
		InitCmd(),
	)
	return root
}

// Execute runs the CLI and reports any error.
func Execute() error {
	err := New().Execute()
	if err != nil {
		output.Error(err.Error())
	}
	return err
}

// loadConfig reads the file named by --config.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	return config.Load(configPath(cmd))
}

func configPath(cmd *cobra.Command) string {
	if f := cmd.Flag("config"); f != nil && f.Value.String() != "" {
		return f.Value.String()
	}
	return config.FileName
}

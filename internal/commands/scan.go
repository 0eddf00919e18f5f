package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/simonhull/firebird-suite/nest/output"
	"github.com/simonhull/firebird-suite/nest/region"
)

// ScanCmd creates the 'scan' command.
func ScanCmd() *cobra.Command {
	var showContent bool

	cmd := &cobra.Command{
		Use:   "scan <file>...",
		Short: "List the user regions captured from files",
		Long: `Scan files for user regions and print what would be carried into the
next regeneration. Scanning stops at the first malformed file.

Examples:
  nest scan src/uart.c
  nest scan src/*.c --content`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, path := range args {
				output.Verbose("scanning", output.F("path", path))

				caps, err := region.ScanFile(path)
				if err != nil {
					return fmt.Errorf("%s: %w", path, err)
				}
				printCaptures(path, caps, showContent)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&showContent, "content", false, "Print the content of every region")
	return cmd
}

func printCaptures(path string, caps *region.Captures, showContent bool) {
	named, partial := caps.Len()
	output.Info(path, output.F("named", named), output.F("partial", partial))

	for _, name := range caps.NamedNames() {
		content, _ := caps.Named(name)
		output.Step(name, output.F("lines", lineCount(content)))
		if showContent {
			printContent(content)
		}
	}
	for _, id := range caps.PartialIDs() {
		content, _ := caps.Partial(id)
		output.Step(region.PartialLabel(id), output.F("lines", lineCount(content)))
		if showContent {
			printContent(content)
		}
	}
}

func printContent(content string) {
	if content == "" {
		return
	}
	for _, line := range strings.Split(strings.TrimSuffix(content, "\n"), "\n") {
		fmt.Fprintln(output.Writer(), "      │ "+line)
	}
}

func lineCount(content string) int {
	return strings.Count(content, "\n")
}

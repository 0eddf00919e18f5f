package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/simonhull/firebird-suite/nest/generator"
	"github.com/simonhull/firebird-suite/nest/output"
	"github.com/simonhull/firebird-suite/nest/splice"
)

// SpliceCmd creates the 'splice' command.
func SpliceCmd() *cobra.Command {
	var tool, purpose, content, contentFile string
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "splice <file>",
		Short: "Insert or replace a generated block inside a hand-written file",
		Long: `Write a block delimited by

  /* GENERATED CODE BEGIN <tool> <purpose> */
  /* GENERATED CODE END <tool> <purpose> */

into a file. An existing block is replaced, otherwise the block is appended.
The rest of the file is not touched. Use --content-file - to read from stdin.

Examples:
  nest splice board.h --purpose pins --content-file pins.inc
  gen-clocks | nest splice clocks.c --purpose clocks --content-file -`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]

			body, err := blockContent(cmd, content, contentFile)
			if err != nil {
				return err
			}

			blocks := splice.New()
			if err := blocks.Set(tool, purpose, body); err != nil {
				return err
			}

			if dryRun {
				next, previous, err := blocks.Preview(path)
				if err != nil {
					return err
				}
				if diff := generator.GenerateDiffDefault(path, path, previous, next); diff != "" {
					fmt.Fprintln(output.Writer(), diff)
				} else {
					output.Info("No changes: " + path)
				}
				return nil
			}

			changed, err := blocks.Embed(path)
			if err != nil {
				return err
			}
			if !changed {
				output.Info("No changes: "+path, output.F("block", purpose))
				return nil
			}
			output.Success("Updated "+path, output.F("tool", tool), output.F("purpose", purpose))
			return nil
		},
	}

	cmd.Flags().StringVar(&tool, "tool", "nest", "Tool name written in the markers")
	cmd.Flags().StringVar(&purpose, "purpose", "", "Block purpose written in the markers")
	cmd.Flags().StringVar(&content, "content", "", "Block content")
	cmd.Flags().StringVar(&contentFile, "content-file", "", "Read block content from a file ('-' for stdin)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print the diff instead of writing")
	_ = cmd.MarkFlagRequired("purpose")
	cmd.MarkFlagsMutuallyExclusive("content", "content-file")
	return cmd
}

func blockContent(cmd *cobra.Command, content, contentFile string) (string, error) {
	switch contentFile {
	case "":
		return content, nil
	case "-":
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(data), nil
	default:
		data, err := os.ReadFile(contentFile)
		if err != nil {
			return "", fmt.Errorf("reading content: %w", err)
		}
		return string(data), nil
	}
}

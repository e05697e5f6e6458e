package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/thruflo/burndown/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default .burndown/config.yaml",
	Long: `Creates .burndown/config.yaml under the config directory with the default
display, chart, timer and logging settings. An existing file is left alone.

Set run.start and run.total in the file to avoid passing --start and
--total on every invocation.`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	base, err := baseDir()
	if err != nil {
		return err
	}

	path, err := config.WriteDefault(base)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
	return nil
}

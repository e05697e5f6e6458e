package cli

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/thruflo/burndown/internal/config"
	"github.com/thruflo/burndown/internal/logging"
	"github.com/thruflo/burndown/internal/progress"
)

// Version is set at build time via ldflags.
var Version = "dev"

var (
	configDir string
	logLevel  string

	// settings is loaded before every command runs.
	settings *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "burndown",
	Short: "Track throughput and ETA for a batch of work",
	Long: `Burndown turns a start time, a total unit count and a periodically
updated processed count into a throughput figure, an ETA and a chart of
actual against projected completion.

Run "burndown watch" for the live dashboard, "burndown calc" for a
single computation, or "burndown replay" to feed recorded samples through
the same calculation.`,
	SilenceUsage:      true,
	PersistentPreRunE: loadSettings,
}

func init() {
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("burndown version {{.Version}}\n")
	rootCmd.PersistentFlags().StringVar(&configDir, "config", "", "directory containing .burndown/config.yaml (default: current directory)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn or error")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func loadSettings(cmd *cobra.Command, args []string) error {
	base, err := baseDir()
	if err != nil {
		return err
	}

	cfg, err := config.LoadConfig(base)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	level := cfg.Log.Level
	if logLevel != "" {
		level = logLevel
	}
	lvl, err := logging.ParseLevel(level)
	if err != nil {
		return err
	}
	logging.SetLevel(lvl)
	logging.Default().SetWriter(cmd.ErrOrStderr())
	logging.Debug("settings loaded", "base", base, "level", lvl)

	settings = cfg
	return nil
}

func baseDir() (string, error) {
	if configDir != "" {
		return configDir, nil
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get current directory: %w", err)
	}
	return cwd, nil
}

// currentSettings returns the loaded config, or defaults when a command is
// run without the root pre-run (as in tests).
func currentSettings() *config.Config {
	if settings == nil {
		cfg := config.DefaultConfig()
		return &cfg
	}
	return settings
}

// resolveInput fills start and total from the config's run defaults when the
// flags are empty.
func resolveInput(cfg *config.Config, start, total, processed string) progress.Input {
	if start == "" {
		start = cfg.Run.Start
	}
	if total == "" && cfg.Run.Total > 0 {
		total = strconv.Itoa(cfg.Run.Total)
	}
	return progress.Input{Start: start, Total: total, Processed: processed}
}

func printField(w io.Writer, label, value string) {
	fmt.Fprintf(w, "  %-12s %s\n", label+":", value)
}

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/thruflo/burndown/internal/logging"
	"github.com/thruflo/burndown/internal/progress"
	"gopkg.in/yaml.v3"
)

// Default values for Config.
const (
	DefaultTimeLayout        = progress.DefaultLabelLayout
	DefaultClockLayout       = "15:04:05"
	DefaultChartRows         = 10
	DefaultStallReadings     = 3
	DefaultChartWidth        = 1024
	DefaultChartHeight       = 400
	DefaultClockInterval     = time.Second
	DefaultCountdownInterval = time.Second
	DefaultLogLevel          = "warn"

	minChartSize = 100
)

// Dir is the directory under the base path that holds config.yaml.
const Dir = ".burndown"

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() Config {
	return Config{
		Display: Display{
			TimeLayout:    DefaultTimeLayout,
			ClockLayout:   DefaultClockLayout,
			ChartRows:     DefaultChartRows,
			StallReadings: DefaultStallReadings,
		},
		Chart: Chart{
			Width:  DefaultChartWidth,
			Height: DefaultChartHeight,
		},
		Timers: Timers{
			ClockInterval:     DefaultClockInterval,
			CountdownInterval: DefaultCountdownInterval,
		},
		Log: Log{Level: DefaultLogLevel},
	}
}

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s: %s", e.Field, e.Message)
}

// Path returns the config file location for basePath.
func Path(basePath string) string {
	return filepath.Join(basePath, Dir, "config.yaml")
}

// LoadConfig reads and parses .burndown/config.yaml from the given base path.
// If the file doesn't exist, returns default config.
// Applies defaults for any missing fields.
func LoadConfig(basePath string) (*Config, error) {
	data, err := os.ReadFile(Path(basePath))
	if err != nil {
		if os.IsNotExist(err) {
			cfg := DefaultConfig()
			return &cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := ValidateConfig(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// ValidateConfig checks that all config values are valid.
func ValidateConfig(cfg *Config) error {
	if cfg.Run.Start != "" {
		if _, err := progress.ParseTimeOfDay(cfg.Run.Start); err != nil {
			return ValidationError{Field: "run.start", Message: "must be HH:MM"}
		}
	}
	if cfg.Run.Total < 0 {
		return ValidationError{Field: "run.total", Message: "must not be negative"}
	}

	if cfg.Display.TimeLayout == "" {
		return ValidationError{Field: "display.time_layout", Message: "required field is empty"}
	}
	if cfg.Display.ClockLayout == "" {
		return ValidationError{Field: "display.clock_layout", Message: "required field is empty"}
	}
	if cfg.Display.ChartRows <= 0 {
		return ValidationError{Field: "display.chart_rows", Message: "must be positive"}
	}
	if cfg.Display.StallReadings < 0 {
		return ValidationError{Field: "display.stall_readings", Message: "must not be negative"}
	}

	if cfg.Chart.Width < minChartSize {
		return ValidationError{Field: "chart.width", Message: fmt.Sprintf("must be at least %d", minChartSize)}
	}
	if cfg.Chart.Height < minChartSize {
		return ValidationError{Field: "chart.height", Message: fmt.Sprintf("must be at least %d", minChartSize)}
	}

	if cfg.Timers.ClockInterval <= 0 {
		return ValidationError{Field: "timers.clock_interval", Message: "must be positive"}
	}
	if cfg.Timers.CountdownInterval <= 0 {
		return ValidationError{Field: "timers.countdown_interval", Message: "must be positive"}
	}

	if _, err := logging.ParseLevel(cfg.Log.Level); err != nil {
		return ValidationError{Field: "log.level", Message: err.Error()}
	}

	return nil
}

// WriteDefault writes the default config to basePath, refusing to overwrite
// an existing file.
func WriteDefault(basePath string) (string, error) {
	path := Path(basePath)
	if _, err := os.Stat(path); err == nil {
		return "", fmt.Errorf("config file already exists: %s", path)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(DefaultConfig())
	if err != nil {
		return "", fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write config file: %w", err)
	}
	return path, nil
}

// IsValidationError checks if an error is a ValidationError.
func IsValidationError(err error) bool {
	var ve ValidationError
	return errors.As(err, &ve)
}

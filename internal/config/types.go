package config

import "time"

// Run holds optional defaults for the tracked run; command-line flags win.
type Run struct {
	Start string `yaml:"start,omitempty"`
	Total int    `yaml:"total,omitempty"`
}

// Display controls how times and the text chart are rendered.
type Display struct {
	TimeLayout  string `yaml:"time_layout"`
	ClockLayout string `yaml:"clock_layout"`
	ChartRows   int    `yaml:"chart_rows"`

	// StallReadings is how many consecutive readings without progress
	// trigger a stall warning. 0 disables the warning.
	StallReadings int `yaml:"stall_readings"`
}

// Chart sets the size of exported PNG charts in pixels.
type Chart struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// Timers sets the periods of the dashboard's clock and countdown ticks.
type Timers struct {
	ClockInterval     time.Duration `yaml:"clock_interval"`
	CountdownInterval time.Duration `yaml:"countdown_interval"`
}

// Log configures diagnostic logging.
type Log struct {
	Level string `yaml:"level"`
}

// Config represents the .burndown/config.yaml file.
type Config struct {
	Run     Run     `yaml:"run,omitempty"`
	Display Display `yaml:"display"`
	Chart   Chart   `yaml:"chart"`
	Timers  Timers  `yaml:"timers"`
	Log     Log     `yaml:"log"`
}

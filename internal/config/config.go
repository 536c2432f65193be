// Package config provides configuration management for logwrap.
package config

// Config holds all configuration options for a logwrap run.
type Config struct {
	// Child command
	Argv []string `json:"argv"` // program + arguments, non-empty

	// Capture behavior
	Quiet         bool `json:"quiet"`           // drain output but do not log it
	IgnoreIntQuit bool `json:"ignore_int_quit"` // suppress SIGINT/SIGQUIT while the child runs

	// Preflight runs environment checks and exits without launching.
	Preflight bool `json:"preflight"`

	// Observability
	LogFormat   string `json:"log_format"` // json, text
	Verbose     bool   `json:"verbose"`
	MetricsAddr string `json:"metrics_addr"` // empty = no metrics server
	MetricsOut  string `json:"metrics_out"`  // empty = no final metrics dump
	TUIEnabled  bool   `json:"tui"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Quiet:         false,
		IgnoreIntQuit: false,
		Preflight:     false,
		LogFormat:     "text",
		Verbose:       false,
		MetricsAddr:   "",
		MetricsOut:    "",
		TUIEnabled:    false,
	}
}

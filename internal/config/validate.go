package config

import (
	"errors"
	"fmt"
	"net"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validate checks the configuration for errors and inconsistencies.
// Returns nil if valid, or an error describing every problem found.
func Validate(cfg *Config) error {
	var errs []error

	if len(cfg.Argv) == 0 {
		errs = append(errs, ValidationError{
			Field:   "argv",
			Message: "a program to run is required",
		})
	}

	if cfg.LogFormat != "json" && cfg.LogFormat != "text" {
		errs = append(errs, ValidationError{
			Field:   "log_format",
			Message: fmt.Sprintf("must be %q or %q, got %q", "json", "text", cfg.LogFormat),
		})
	}

	if cfg.MetricsAddr != "" {
		if _, _, err := net.SplitHostPort(cfg.MetricsAddr); err != nil {
			errs = append(errs, ValidationError{
				Field:   "metrics_addr",
				Message: fmt.Sprintf("not a host:port address: %v", err),
			})
		}
	}

	if cfg.TUIEnabled && cfg.Quiet {
		errs = append(errs, ValidationError{
			Field:   "tui",
			Message: "the live view needs captured output; remove -quiet",
		})
	}

	return errors.Join(errs...)
}

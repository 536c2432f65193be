package config

import (
	"flag"
	"fmt"
	"os"
)

// ParseFlags parses command-line flags and returns a Config. The
// positional arguments after the flags (optionally separated by "--")
// are the child program and its arguments.
func ParseFlags() (*Config, error) {
	cfg := DefaultConfig()

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `logwrap - run a program under a pseudo-terminal and log its output line by line

Usage:
  logwrap [flags] [--] PROGRAM [ARGS...]

Capture Flags:
`)
		printFlagCategory([]string{"quiet", "ignore-int-quit", "preflight"})

		fmt.Fprintf(os.Stderr, "\nObservability:\n")
		printFlagCategory([]string{"log-format", "v", "metrics", "metrics-out", "tui"})

		fmt.Fprintf(os.Stderr, `
Examples:
  # Wrap a build step, one log record per output line
  logwrap -- make -j8

  # Keep running when the operator hits Ctrl+C
  logwrap -ignore-int-quit -- ./migration.sh

  # Serve Prometheus metrics while the child runs
  logwrap -metrics 127.0.0.1:17092 -- ./long-job

The process exit code is the child's exit code, or a nonzero value if
the child died by signal.
`)
	}

	// Capture
	flag.BoolVar(&cfg.Quiet, "quiet", cfg.Quiet, "Drain child output without logging it")
	flag.BoolVar(&cfg.IgnoreIntQuit, "ignore-int-quit", cfg.IgnoreIntQuit, "Ignore SIGINT/SIGQUIT while the child runs")
	flag.BoolVar(&cfg.Preflight, "preflight", cfg.Preflight, "Run environment checks and exit without launching")

	// Observability
	flag.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, `Log format: "json" or "text"`)
	flag.BoolVar(&cfg.Verbose, "v", cfg.Verbose, "Verbose logging")
	flag.StringVar(&cfg.MetricsAddr, "metrics", cfg.MetricsAddr, "Prometheus metrics address (empty = disabled)")
	flag.StringVar(&cfg.MetricsOut, "metrics-out", cfg.MetricsOut, "Write final metrics in Prometheus text format to this file")
	flag.BoolVar(&cfg.TUIEnabled, "tui", cfg.TUIEnabled, "Live terminal view of captured output")

	flag.Parse()

	cfg.Argv = flag.Args()

	return cfg, nil
}

// printFlagCategory prints flags matching the given names (helper for usage).
func printFlagCategory(names []string) {
	flag.VisitAll(func(f *flag.Flag) {
		for _, name := range names {
			if f.Name == name {
				fmt.Fprintf(os.Stderr, "  -%-16s %s\n", f.Name, f.Usage)
			}
		}
	})
}

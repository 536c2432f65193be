// Package main provides the logwrap CLI entry point.
//
// logwrap runs a program under a pseudo-terminal, captures everything
// it writes to stdout and stderr, and logs it one line at a time. The
// wrapper's exit code reflects how the child ended.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/carbonfish/logwrap/internal/config"
	"github.com/carbonfish/logwrap/internal/logging"
	"github.com/carbonfish/logwrap/internal/logwrap"
	"github.com/carbonfish/logwrap/internal/metrics"
	"github.com/carbonfish/logwrap/internal/preflight"
	"github.com/carbonfish/logwrap/internal/stats"
	"github.com/carbonfish/logwrap/internal/timeseries"
	"github.com/carbonfish/logwrap/internal/tui"
)

// version is set at build time via ldflags:
//
//	go build -ldflags "-X main.version=1.0.0" ./cmd/logwrap
var version = "dev"

// abnormalExitCode is the wrapper's own exit code when the child did
// not exit normally (killed by a signal, or setup failed).
const abnormalExitCode = 127

func main() {
	os.Exit(run())
}

func run() int {
	// Handle version flag early (before flag parsing)
	if len(os.Args) > 1 {
		arg := os.Args[1]
		if arg == "-version" || arg == "--version" || arg == "version" {
			fmt.Printf("logwrap %s\n", version)
			return 0
		}
	}

	cfg, err := config.ParseFlags()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing flags: %v\n", err)
		return abnormalExitCode
	}

	// When the TUI is enabled, suppress logs so they do not interfere
	// with TUI rendering; captured lines reach the TUI directly.
	var logger *slog.Logger
	if cfg.TUIEnabled {
		logger = logging.NewLoggerWithWriter(io.Discard, cfg.LogFormat, slog.LevelInfo)
	} else {
		logger = logging.NewLogger(cfg.LogFormat, "info", cfg.Verbose)
	}
	logging.SetDefault(logger)

	if err := config.Validate(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		return abnormalExitCode
	}

	if cfg.Preflight {
		result := preflight.RunAll(cfg.Argv[0])
		preflight.PrintResults(result)
		if !result.Passed {
			return abnormalExitCode
		}
		return 0
	}

	collector := metrics.NewCollector()
	lineStats := stats.NewLineStats()
	rates := timeseries.NewRateTracker()

	samplerStop := make(chan struct{})
	go func() {
		ticker := time.NewTicker(time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				rates.RecordSample()
			case <-samplerStop:
				return
			}
		}
	}()
	defer close(samplerStop)

	var program *tea.Program
	tuiDone := make(chan error, 1)
	if cfg.TUIEnabled {
		model := tui.New(tui.Config{
			Command:       strings.Join(cfg.Argv, " "),
			MetricsAddr:   cfg.MetricsAddr,
			CounterSource: collector,
			StatsSource:   lineStats,
			RateSource:    rates,
		})
		program = tea.NewProgram(model, tea.WithAltScreen())
		go func() {
			_, err := program.Run()
			tuiDone <- err
		}()
	}

	if cfg.MetricsAddr != "" {
		server := metrics.NewServer(cfg.MetricsAddr, collector.Gatherer(), logger)
		server.Start()
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := server.Shutdown(ctx); err != nil {
				logger.Warn("metrics_server_shutdown_failed", "error", err)
			}
		}()
	}

	logger.Info("starting",
		"version", version,
		"argv", cfg.Argv,
		"quiet", cfg.Quiet,
		"ignore_int_quit", cfg.IgnoreIntQuit,
		"metrics_addr", cfg.MetricsAddr,
	)

	tag := filepath.Base(cfg.Argv[0])

	var childPid int
	launcher := logwrap.New(logwrap.Config{
		Logger: logger,
		Callbacks: logwrap.Callbacks{
			OnStart: func(pid int) {
				childPid = pid
				collector.ChildStarted(pid)
				tui.SendChildStarted(program, pid)
			},
			OnLine: func(tag string, line []byte) {
				collector.LineCaptured(len(line))
				lineStats.RecordLine(len(line))
				rates.Add(1, len(line))
				tui.SendLine(program, tag, string(line), false)
			},
			OnForcedFlush: func() {
				collector.ForcedFlush()
				lineStats.RecordForcedFlush()
			},
			OnExit: func(outcome logwrap.Outcome) {
				collector.ChildExited(childPid, outcome.Kind.String())
				result := -1
				if outcome.Kind == logwrap.OutcomeExited {
					result = outcome.Code
				}
				tui.SendChildExited(program, result, outcome.Summary(tag))
			},
		},
	})

	result, err := launcher.Run(logwrap.Request{
		Argv:          cfg.Argv,
		Log:           !cfg.Quiet,
		IgnoreIntQuit: cfg.IgnoreIntQuit,
	})
	if err != nil {
		if program != nil {
			tui.SendQuit(program)
			<-tuiDone
		}
		fmt.Fprintf(os.Stderr, "logwrap: %s: %v\n", tag, err)
		return abnormalExitCode
	}

	summaryFields := lineStats.Summarize().LogFields()
	rateStats := rates.GetStats()
	summaryFields = append(summaryFields,
		"lines_per_sec", rateStats.LinesOverall,
		"bytes_per_sec", rateStats.BytesOverall,
	)
	logger.Info("finished", summaryFields...)

	if cfg.MetricsOut != "" {
		if err := metrics.WriteTextFile(cfg.MetricsOut, collector.Gatherer()); err != nil {
			logger.Warn("metrics_dump_failed", "path", cfg.MetricsOut, "error", err)
		}
	}

	if program != nil {
		// Leave the final state on screen until the operator quits.
		if err := <-tuiDone; err != nil {
			fmt.Fprintf(os.Stderr, "logwrap: tui: %v\n", err)
		}
	}

	if result < 0 {
		return abnormalExitCode
	}
	return result
}

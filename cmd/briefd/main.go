// Briefd prepares executive meeting briefings from gathered communications.
//
// The serve command runs the HTTP API with the periodic refresh scheduler;
// the analyze command runs one briefing from a pool file (or demo data) and
// prints it.
//
// Usage:
//
//	# Start the server
//	briefd serve --config briefd.yaml
//
//	# Analyze the built-in demo pool
//	briefd analyze --demo
//
//	# Analyze a gathered pool from a file
//	briefd analyze pool.json
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/fyrsmithlabs/briefd/internal/briefing"
	"github.com/fyrsmithlabs/briefd/internal/config"
	"github.com/fyrsmithlabs/briefd/internal/gather"
	httpserver "github.com/fyrsmithlabs/briefd/internal/http"
	"github.com/fyrsmithlabs/briefd/internal/logging"
	"github.com/fyrsmithlabs/briefd/internal/narrative"
	"github.com/fyrsmithlabs/briefd/internal/relevance"
	"github.com/fyrsmithlabs/briefd/internal/scheduler"
	"github.com/fyrsmithlabs/briefd/internal/telemetry"
)

// Version information (set via ldflags during build)
var (
	version   = "dev"
	gitCommit = "unknown"
	buildDate = "unknown"
)

var (
	configPath string
	useDemo    bool
	asJSON     bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "briefd",
	Short: "Meeting briefing engine",
	Long: `briefd analyzes gathered emails, chat messages, and documents for an
upcoming meeting, filters them by relevance, extracts action items and other
insights, and renders a prep document.`,
	Version: fmt.Sprintf("%s (commit %s, built %s)", version, gitCommit, buildDate),
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to YAML config file")
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(versionCmd)

	analyzeCmd.Flags().BoolVar(&useDemo, "demo", false, "analyze the built-in demo pool")
	analyzeCmd.Flags().BoolVar(&asJSON, "json", false, "print the full context bundle as JSON instead of markdown")
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the briefd HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe()
	},
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze [pool.json]",
	Short: "Analyze one gathered pool and print the briefing",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAnalyze(args)
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("briefd\nVersion:    %s\nCommit:     %s\nBuild Date: %s\n", version, gitCommit, buildDate)
	},
}

// runServe starts the HTTP server and scheduler and blocks until SIGINT or
// SIGTERM, then shuts both down gracefully.
func runServe() error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := logging.New(cfg.Logging)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() {
		_ = logger.Sync() // Best-effort sync on shutdown
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	shutdownTelemetry, err := telemetry.Setup(ctx, cfg.Telemetry)
	if err != nil {
		return fmt.Errorf("failed to initialize telemetry: %w", err)
	}

	analyzer, err := briefing.NewAnalyzer(briefing.Config{
		Workers: cfg.Analyzer.Workers,
		Rules: relevance.Config{
			RecencyWindowDays: cfg.Analyzer.RecencyWindowDays,
			MaxAgeDays:        cfg.Analyzer.MaxAgeDays,
		},
	}, logger)
	if err != nil {
		return fmt.Errorf("failed to create analyzer: %w", err)
	}

	generator, err := narrative.New(cfg.Narrative, logger)
	if err != nil {
		return fmt.Errorf("failed to create narrative generator: %w", err)
	}

	srv, err := httpserver.NewServer(analyzer, generator, logger, &httpserver.Config{
		Host: cfg.Server.Host,
		Port: cfg.Server.Port,
	})
	if err != nil {
		return fmt.Errorf("failed to create http server: %w", err)
	}

	var sched *scheduler.Scheduler
	if cfg.Scheduler.Enabled {
		source := &gather.DemoSource{}
		sched, err = scheduler.New(cfg.Scheduler, demoLister{source}, func(runCtx context.Context, meeting gather.Meeting) error {
			pool, err := source.Gather(runCtx, meeting)
			if err != nil {
				return err
			}
			_, err = analyzer.Analyze(runCtx, pool, time.Time{})
			return err
		}, logger)
		if err != nil {
			return fmt.Errorf("failed to create scheduler: %w", err)
		}
		if err := sched.Start(); err != nil {
			return fmt.Errorf("failed to start scheduler: %w", err)
		}
	}

	logger.Info("starting briefd",
		zap.String("version", version),
		zap.String("host", cfg.Server.Host),
		zap.Int("port", cfg.Server.Port),
		zap.Bool("scheduler", cfg.Scheduler.Enabled),
	)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logger.Info("received signal, shutting down", zap.String("signal", sig.String()))
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server error: %w", err)
		}
	}

	if sched != nil {
		sched.Stop()
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http shutdown failed", zap.Error(err))
	}
	if err := shutdownTelemetry(shutdownCtx); err != nil {
		logger.Error("telemetry shutdown failed", zap.Error(err))
	}

	logger.Info("shutdown complete")
	return nil
}

// runAnalyze runs one briefing from a pool file or the demo source and prints
// the result to stdout.
func runAnalyze(args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger := zap.NewNop()

	analyzer, err := briefing.NewAnalyzer(briefing.Config{
		Workers: cfg.Analyzer.Workers,
		Rules: relevance.Config{
			RecencyWindowDays: cfg.Analyzer.RecencyWindowDays,
			MaxAgeDays:        cfg.Analyzer.MaxAgeDays,
		},
	}, logger)
	if err != nil {
		return fmt.Errorf("failed to create analyzer: %w", err)
	}

	ctx := context.Background()
	var pool *gather.Pool

	switch {
	case useDemo:
		source := &gather.DemoSource{}
		pool, err = source.Gather(ctx, source.DemoMeeting())
		if err != nil {
			return fmt.Errorf("failed to build demo pool: %w", err)
		}
	case len(args) == 1:
		content, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read pool file %s: %w", args[0], err)
		}
		pool = &gather.Pool{}
		if err := json.Unmarshal(content, pool); err != nil {
			return fmt.Errorf("failed to parse pool file %s: %w", args[0], err)
		}
	default:
		return fmt.Errorf("provide a pool file or pass --demo")
	}

	fc, err := analyzer.Analyze(ctx, pool, time.Time{})
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	if asJSON {
		out, err := json.MarshalIndent(fc, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal context: %w", err)
		}
		fmt.Println(string(out))
		return nil
	}

	generator, err := narrative.New(cfg.Narrative, logger)
	if err != nil {
		return fmt.Errorf("failed to create narrative generator: %w", err)
	}

	prep, err := generator.Generate(ctx, pool.Meeting, fc)
	if err != nil {
		return fmt.Errorf("prep generation failed: %w", err)
	}

	fmt.Println(prep.Markdown)
	return nil
}

// demoLister adapts DemoSource to the scheduler's MeetingLister. Provider
// calendar adapters replace this in a real deployment.
type demoLister struct {
	source *gather.DemoSource
}

func (l demoLister) UpcomingMeetings(_ context.Context, _ time.Time, _ time.Duration) ([]gather.Meeting, error) {
	return []gather.Meeting{l.source.DemoMeeting()}, nil
}

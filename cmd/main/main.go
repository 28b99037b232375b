// Command sector-monitor watches ticketed events for newly available
// sectors and alerts registered phone numbers over SMS.
//
// Usage:
//
//	sector-monitor
//	sector-monitor --once
//	sector-monitor --once --event pq23
//	sector-monitor --dry-run
//	sector-monitor --simulate-delta --event pq23
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	_ "github.com/mattn/go-sqlite3"
	"github.com/spf13/cobra"

	"github.com/platea/sector-monitor/internal/alerts"
	"github.com/platea/sector-monitor/internal/config"
	"github.com/platea/sector-monitor/internal/parser"
	"github.com/platea/sector-monitor/internal/repository/sqlite"
	"github.com/platea/sector-monitor/internal/scheduler"
	"github.com/platea/sector-monitor/internal/scraper"
	"github.com/platea/sector-monitor/internal/server"
	"github.com/platea/sector-monitor/internal/services/monitor"
)

// Constants for different environment types.
const (
	envLocal = "local"
	envDev   = "development"
	envProd  = "production"
)

func main() {
	// Load .env if present
	_ = godotenv.Load(".env")

	var (
		once          bool
		eventID       string
		dryRun        bool
		simulateDelta bool
	)

	root := &cobra.Command{
		Use:          "sector-monitor",
		Short:        "Monitor ticketed events for seat availability changes",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), once, eventID, dryRun, simulateDelta)
		},
	}

	root.Flags().BoolVar(&once, "once", false, "Run one monitoring cycle and exit")
	root.Flags().StringVar(&eventID, "event", "", "Restrict to a single event id (with --once or --simulate-delta)")
	root.Flags().BoolVar(&dryRun, "dry-run", false, "Log alerts instead of sending SMS")
	root.Flags().BoolVar(&simulateDelta, "simulate-delta", false, "Dispatch a fabricated alert batch and exit")

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(baseCtx context.Context, once bool, eventID string, dryRun, simulateDelta bool) error {
	// Create a context that will be canceled when an interrupt signal is received.
	// This allows for graceful shutdown.
	ctx, stop := signal.NotifyContext(baseCtx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.MustLoad()

	// Set up the logger based on the environment.
	logger := setupLogger(cfg.Env)

	repo, err := sqlite.NewRepository(ctx, logger, cfg.StoragePath)
	if err != nil {
		log.Fatalf("Failed to init repository: %v", err)
	}
	defer repo.Close()

	// A nil sender keeps the dispatcher's configuration gate closed for
	// the whole process lifetime.
	var sender alerts.Sender
	if tw := alerts.NewTwilioSender(logger, cfg.Twilio.AccountSID, cfg.Twilio.AuthToken,
		cfg.Twilio.FromNumber, cfg.Twilio.Timeout); tw != nil {
		sender = tw
	}

	dispatcher := alerts.NewDispatcher(logger, repo, sender, cfg.Poll.DedupWindow, cfg.Poll.DefaultCountryCode)

	watcher := monitor.NewMonitor(
		logger,
		scraper.NewScraper(logger, cfg.UserAgent, cfg.Poll.PageTimeout),
		parser.NewNormalizer(logger),
		repo,
		dispatcher,
		cfg.Events,
		cfg.Poll.EventDelayMin,
		cfg.Poll.EventDelayMax,
		dryRun,
	)

	if err = watcher.InitEvents(ctx); err != nil {
		return fmt.Errorf("failed to initialize events: %w", err)
	}

	if simulateDelta {
		if eventID == "" {
			eventID = cfg.Events[0].ID
		}
		result := watcher.SimulateDelta(ctx, eventID)
		logger.InfoContext(ctx, "Simulation result",
			"success", result.Success, "skipped", result.Skipped,
			"sent", result.SentCount, "failed", result.FailedCount, "error", result.Err)
		return nil
	}

	if once {
		return runOnce(ctx, logger, watcher, eventID)
	}

	sched := scheduler.New(logger, watcher, cfg.Poll.IntervalMin, cfg.Poll.IntervalMax)
	admin := server.New(logger, cfg.HTTPAddr, dispatcher, repo)

	logger.InfoContext(ctx, "Application started. Press Ctrl+C to stop.")

	sched.Start(ctx)
	go func() {
		if serveErr := admin.Start(); serveErr != nil {
			logger.Error("Admin server failed", "error", serveErr)
			stop()
		}
	}()

	// Wait for the context to be canceled (e.g., by Ctrl+C).
	<-ctx.Done()

	logger.Info("Shutdown signal received. Stopping application...")

	sched.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Poll.PageTimeout)
	defer cancel()
	if err = admin.Shutdown(shutdownCtx); err != nil {
		logger.Error("Failed to shut down admin server", "error", err)
	}

	logger.Info("Application stopped gracefully.")

	return nil
}

// runOnce runs a single synchronous monitoring pass over one event or
// all of them.
func runOnce(ctx context.Context, logger *slog.Logger, watcher *monitor.Monitor, eventID string) error {
	logger.InfoContext(ctx, "Running in single-shot mode", "event", eventID)

	if eventID != "" {
		result, err := watcher.CheckOne(ctx, eventID)
		if err != nil {
			return err
		}
		logger.InfoContext(ctx, "Single event monitoring result",
			"event_id", result.EventID, "success", result.Success,
			"sectors", result.SectorsFound, "changes", result.ChangesDetected, "error", result.Err)
		return nil
	}

	for _, result := range watcher.CheckAll(ctx) {
		logger.InfoContext(ctx, "Monitoring result",
			"event_id", result.EventID, "success", result.Success,
			"sectors", result.SectorsFound, "changes", result.ChangesDetected, "error", result.Err)
	}

	return nil
}

// setupLogger initializes and returns a logger based on the environment provided.
func setupLogger(env string) *slog.Logger {
	var log *slog.Logger

	switch env {
	case envLocal:
		log = slog.New(
			slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
				Level:     slog.LevelDebug,
				AddSource: true,
				ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
					return a
				},
			}),
		)
	case envDev:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level:     slog.LevelInfo,
				AddSource: false,
				ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
					return a
				},
			}),
		)
	case envProd:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level:     slog.LevelWarn,
				AddSource: false,
				ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
					if a.Key == slog.TimeKey {
						return slog.Attr{}
					}
					return a
				},
			}),
		)
	default:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level:     slog.LevelError,
				AddSource: false,
				ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
					if a.Key == slog.TimeKey {
						return slog.Attr{}
					}
					return a
				},
			}),
		)

		log.Error(
			"The env parameter was not specified	 or was invalid. Logging will be minimal, by default.",
			slog.String("available_envs", "local, development, production"))
	}

	return log
}

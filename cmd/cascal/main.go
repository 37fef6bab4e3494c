package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/felixgeelhaar/cascal/adapter/cli"
	"github.com/felixgeelhaar/cascal/adapter/cli/entry"
	"github.com/felixgeelhaar/cascal/internal/app"
	"github.com/felixgeelhaar/cascal/pkg/config"
	"github.com/felixgeelhaar/cascal/pkg/observability"
)

func main() {
	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		cancel()
	}()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		cfg = &config.Config{AppEnv: "development"}
	}

	logCfg := observability.DefaultLogConfig()
	logCfg.Level = observability.LogLevel(cfg.LogLevel)
	if cfg.IsProduction() {
		logCfg.Format = observability.LogFormatJSON
	}
	logger := observability.NewLogger(logCfg)
	slog.SetDefault(logger)
	cli.SetLogger(logger)

	// Try to initialize the full container
	var cliApp *cli.App
	container, err := app.NewContainer(ctx, cfg, logger)
	if err != nil {
		if cfg.IsDevelopment() {
			logger.Warn("failed to initialize container, running in limited mode", "error", err)
			cliApp = nil
		} else {
			logger.Error("failed to initialize container", "error", err)
			os.Exit(1)
		}
	} else {
		defer container.Close()

		cliApp = &cli.App{
			InsertEntryHandler:           container.InsertEntryHandler,
			UpdateEntryHandler:           container.UpdateEntryHandler,
			BlockShiftHandler:            container.BlockShiftHandler,
			DeleteEntryHandler:           container.DeleteEntryHandler,
			GetEntryHandler:              container.GetEntryHandler,
			ListEntriesHandler:           container.ListEntriesHandler,
			PreviewPlanHandler:           container.PreviewPlanHandler,
			PreviewBlockShiftHandler:     container.PreviewBlockShiftHandler,
			ListRescheduleRecordsHandler: container.ListRescheduleRecordsHandler,
			ListDueRemindersHandler:      container.ListDueRemindersHandler,
			DefaultPlan:                  container.PlanConfig(),
		}
	}

	// Set the CLI app
	cli.SetApp(cliApp)

	// Register commands
	cli.AddCommand(entry.Cmd)

	// Execute CLI
	cli.Execute()
}

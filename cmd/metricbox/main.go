package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/neox5/metricbox/internal/app"
	"github.com/neox5/metricbox/internal/config"
	"github.com/neox5/metricbox/internal/version"
)

func main() {
	cmd := &cli.Command{
		Name:    "metricbox",
		Usage:   "Simulated workload exposing declarative metrics",
		Version: version.String(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Value:   "config.yaml",
				Usage:   "path to configuration file",
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "enable debug logging",
			},
		},
		Action: run,
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cmd *cli.Command) error {
	configPath := cmd.String("config")
	debug := cmd.Bool("debug")

	// Configure logging level
	logLevel := slog.LevelInfo
	if debug {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	slog.Info("starting metricbox", "version", version.String(), "config", configPath)

	// Load configuration
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Initialize application
	application, err := app.New(cfg)
	if err != nil {
		return fmt.Errorf("initialization failed: %w", err)
	}

	// Setup graceful shutdown
	shutdownCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Start workload
	application.Workload.Run(shutdownCtx)

	// Start snapshot reporter
	if application.Reporter != nil {
		application.Reporter.Run(shutdownCtx)
	}

	<-shutdownCtx.Done()

	// Wait for all goroutines to complete
	application.Workload.Wait()
	if application.Reporter != nil {
		application.Reporter.Wait()
	}

	slog.Info("shutdown complete")
	return nil
}

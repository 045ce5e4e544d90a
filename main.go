package main

import (
	"context"
	"fmt"
	"os"

	"geofacts/config"
	"geofacts/controller"
	"geofacts/logging"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	logLevel string
	backend  string
)

var rootCmd = &cobra.Command{
	Use:   "geofacts",
	Short: "Country profiles, fun facts and today's flights",
	Long: `GeoFacts looks a country up in REST Countries, asks a hosted model for a
fun fact about it, and lists today's flights at its main airport.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (overrides LOG_LEVEL)")
	rootCmd.PersistentFlags().StringVar(&backend, "history", "", "History backend: file, postgres, sqlite, redis, memory (overrides HISTORY_BACKEND)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(newsCmd)
	rootCmd.AddCommand(historyCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// setup loads configuration, builds the logger and wires the app.
func setup(ctx context.Context, notifier controller.Notifier) (*app, error) {
	cfg, envLoaded := config.Load()
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	if backend != "" {
		cfg.HistoryBackend = backend
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}
	if !envLoaded {
		logger.Debug("no .env file found, using environment variables")
	}

	if notifier == nil {
		notifier = controller.NotifierFunc(func(msg string) {
			logger.Warn("search failed", zap.String("message", msg))
		})
	}

	a, err := newApp(ctx, cfg, logger, notifier)
	if err != nil {
		logger.Error("startup failed", zap.Error(err))
		logger.Sync()
		return nil, err
	}
	return a, nil
}

package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"geofacts/config"
	"geofacts/controller"
	"geofacts/database"
	"geofacts/services"

	"go.uber.org/zap"
)

// app is the wired set of components shared by every command.
type app struct {
	cfg        *config.Config
	logger     *zap.Logger
	countries  *services.CountryClient
	facts      *services.FactGenerator
	news       *services.NewsDigest
	flights    *services.FlightClient
	store      database.HistoryStore
	controller *controller.Controller
}

func newApp(ctx context.Context, cfg *config.Config, logger *zap.Logger, notifier controller.Notifier) (*app, error) {
	httpClient := &http.Client{Timeout: cfg.HTTPTimeout}

	airports := services.DefaultAirportTable()
	if cfg.AirportsFile != "" {
		t, err := services.LoadAirportTable(cfg.AirportsFile)
		if err != nil {
			return nil, err
		}
		airports = t
		logger.Info("airport table loaded", zap.String("file", cfg.AirportsFile), zap.Int("countries", len(t.Countries)))
	}

	model, err := newModel(ctx, cfg, httpClient, logger)
	if err != nil {
		return nil, err
	}

	store, err := openStore(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	a := &app{cfg: cfg, logger: logger, store: store}
	a.countries = services.NewCountryClient(cfg.CountriesBaseURL, httpClient, logger.Named("countries"))
	a.facts = services.NewFactGenerator(a.countries, model, logger.Named("funfact"))
	a.news = services.NewNewsDigest(
		services.NewNewsClient(cfg.NewsAPIKey, cfg.NewsBaseURL, httpClient, logger.Named("news")),
		model, logger.Named("news"))
	a.flights = services.NewFlightClient(cfg.FlightsAPIKey, cfg.FlightsBaseURL, airports, httpClient, logger.Named("flights"))
	a.controller = controller.New(ctx, controller.Deps{
		Countries: a.countries,
		Facts:     a.facts,
		Flights:   a.flights,
		Store:     store,
		Notifier:  notifier,
		Logger:    logger.Named("controller"),
	})

	logger.Info("components ready",
		zap.String("model", model.Name()),
		zap.String("history", store.Name()))
	return a, nil
}

func (a *app) Close() error {
	return a.store.Close()
}

func newModel(ctx context.Context, cfg *config.Config, httpClient *http.Client, logger *zap.Logger) (services.Model, error) {
	switch cfg.ModelProvider {
	case "gemini":
		if cfg.GeminiAPIKey == "" {
			logger.Warn("GEMINI_API_KEY not set, fun facts and news summaries will fall back")
			return services.UnconfiguredModel{Provider: "gemini"}, nil
		}
		return services.NewGeminiModel(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, "")
	case "huggingface", "hf":
		if cfg.HFAPIKey == "" {
			logger.Warn("HUGGINGFACE_API_KEY not set, fun facts and news summaries will fall back")
			return services.UnconfiguredModel{Provider: "huggingface"}, nil
		}
		return services.NewHFModel(cfg.HFAPIKey, cfg.HFModel, cfg.HFBaseURL, httpClient), nil
	default:
		return nil, fmt.Errorf("unknown MODEL_PROVIDER %q", cfg.ModelProvider)
	}
}

func openStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (database.HistoryStore, error) {
	switch cfg.HistoryBackend {
	case "file":
		return database.NewFileStore(cfg.HistoryFile), nil
	case "memory":
		return database.NewMemoryStore(), nil
	case "sqlite":
		if err := os.MkdirAll(filepath.Dir(cfg.SQLitePath), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create sqlite directory: %w", err)
		}
		return database.OpenSQLStore(ctx, "sqlite", cfg.SQLitePath, cfg.HistorySlot, logger)
	case "postgres":
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("HISTORY_BACKEND=postgres requires DATABASE_URL")
		}
		return database.OpenSQLStore(ctx, "postgres", cfg.DatabaseURL, cfg.HistorySlot, logger)
	case "redis":
		client := database.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err := client.Ping(ctx).Err(); err != nil {
			client.Close()
			return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.RedisAddr, err)
		}
		return database.NewRedisStore(client, cfg.HistorySlot), nil
	default:
		return nil, fmt.Errorf("unknown HISTORY_BACKEND %q", cfg.HistoryBackend)
	}
}

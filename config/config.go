package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application-level configuration
type Config struct {
	// Server
	Port         string
	GinMode      string
	FrontendURLs []string

	// Logging
	LogLevel  string
	LogFormat string

	// Upstream services
	HTTPTimeout      time.Duration // 0 means the http.Client default (no timeout)
	CountriesBaseURL string
	NewsBaseURL      string
	NewsAPIKey       string
	FlightsBaseURL   string
	FlightsAPIKey    string
	AirportsFile     string

	// Hosted model
	ModelProvider string // "gemini" or "huggingface"
	GeminiAPIKey  string
	GeminiModel   string
	HFAPIKey      string
	HFModel       string
	HFBaseURL     string

	// History persistence
	HistoryBackend string // file, postgres, sqlite, redis, memory
	HistoryFile    string
	HistorySlot    string
	DatabaseURL    string
	SQLitePath     string
	RedisAddr      string
	RedisPassword  string
	RedisDB        int
}

// Load reads .env (if present) and then the environment, falling back to defaults.
// The returned bool reports whether a .env file was loaded.
func Load() (*Config, bool) {
	loaded := godotenv.Load() == nil
	return FromEnv(), loaded
}

// FromEnv builds a Config from the current environment only
func FromEnv() *Config {
	return &Config{
		Port:         getEnv("PORT", "8080"),
		GinMode:      getEnv("GIN_MODE", "debug"),
		FrontendURLs: getEnvList("FRONTEND_URL"),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "console"),

		HTTPTimeout:      getEnvDuration("HTTP_TIMEOUT", 0),
		CountriesBaseURL: getEnv("COUNTRIES_BASE_URL", "https://restcountries.com"),
		NewsBaseURL:      getEnv("NEWS_BASE_URL", "https://gnews.io"),
		NewsAPIKey:       os.Getenv("NEWS_API_KEY"),
		FlightsBaseURL:   getEnv("FLIGHTS_BASE_URL", "http://api.aviationstack.com"),
		FlightsAPIKey:    os.Getenv("AVIATIONSTACK_API_KEY"),
		AirportsFile:     os.Getenv("AIRPORTS_FILE"),

		ModelProvider: strings.ToLower(getEnv("MODEL_PROVIDER", "gemini")),
		GeminiAPIKey:  firstEnv("GEMINI_API_KEY", "GOOGLE_API_KEY"),
		GeminiModel:   getEnv("GEMINI_MODEL", "gemini-2.0-flash"),
		HFAPIKey:      os.Getenv("HUGGINGFACE_API_KEY"),
		HFModel:       getEnv("HF_MODEL", "mistralai/Mistral-7B-Instruct-v0.3"),
		HFBaseURL:     getEnv("HF_BASE_URL", "https://api-inference.huggingface.co"),

		HistoryBackend: strings.ToLower(getEnv("HISTORY_BACKEND", "file")),
		HistoryFile:    getEnv("HISTORY_FILE", "data/search_history.json"),
		HistorySlot:    getEnv("HISTORY_SLOT", "searchHistory"),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		SQLitePath:     getEnv("SQLITE_PATH", "data/geofacts.db"),
		RedisAddr:      getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:  os.Getenv("REDIS_PASSWORD"),
		RedisDB:        getEnvInt("REDIS_DB", 0),
	}
}

// ─── Helpers ──────────────────────────────────────────────────────────────────

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func getEnvList(key string) []string {
	var out []string
	for _, u := range strings.Split(os.Getenv(key), ",") {
		u = strings.TrimSpace(u)
		if u != "" {
			out = append(out, u)
		}
	}
	return out
}

func firstEnv(keys ...string) string {
	for _, k := range keys {
		if v := os.Getenv(k); v != "" {
			return v
		}
	}
	return ""
}

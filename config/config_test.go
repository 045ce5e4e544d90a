package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFromEnv_Defaults(t *testing.T) {
	for _, k := range []string{
		"PORT", "HTTP_TIMEOUT", "MODEL_PROVIDER", "HISTORY_BACKEND", "HISTORY_SLOT",
		"NEWS_API_KEY", "AVIATIONSTACK_API_KEY", "FRONTEND_URL", "GEMINI_API_KEY", "GOOGLE_API_KEY",
	} {
		t.Setenv(k, "")
	}

	cfg := FromEnv()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, time.Duration(0), cfg.HTTPTimeout)
	assert.Equal(t, "gemini", cfg.ModelProvider)
	assert.Equal(t, "file", cfg.HistoryBackend)
	assert.Equal(t, "searchHistory", cfg.HistorySlot)
	assert.Equal(t, "https://restcountries.com", cfg.CountriesBaseURL)
	assert.Empty(t, cfg.NewsAPIKey)
	assert.Empty(t, cfg.FlightsAPIKey)
	assert.Empty(t, cfg.FrontendURLs)
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("HTTP_TIMEOUT", "15s")
	t.Setenv("MODEL_PROVIDER", "HuggingFace")
	t.Setenv("HISTORY_BACKEND", "Redis")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("AVIATIONSTACK_API_KEY", "flights-key")
	t.Setenv("FRONTEND_URL", " https://a.example , ,https://b.example")

	cfg := FromEnv()

	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, 15*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, "huggingface", cfg.ModelProvider)
	assert.Equal(t, "redis", cfg.HistoryBackend)
	assert.Equal(t, 3, cfg.RedisDB)
	assert.Equal(t, "flights-key", cfg.FlightsAPIKey)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.FrontendURLs)
}

func TestFromEnv_BadNumbersFallBack(t *testing.T) {
	t.Setenv("REDIS_DB", "not-a-number")
	t.Setenv("HTTP_TIMEOUT", "soon")

	cfg := FromEnv()

	assert.Equal(t, 0, cfg.RedisDB)
	assert.Equal(t, time.Duration(0), cfg.HTTPTimeout)
}

func TestFromEnv_GoogleKeyFallback(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("GOOGLE_API_KEY", "google-key")

	assert.Equal(t, "google-key", FromEnv().GeminiAPIKey)
}

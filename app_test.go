package main

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"geofacts/config"
	"geofacts/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// upstream fakes REST Countries, AviationStack and the HuggingFace API on one server.
func upstream(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/v3.1/name/France", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"name":{"common":"France"},"area":551695,"population":67391582,"languages":{"fra":"French"},"flags":{"png":"https://flagcdn.com/w320/fr.png"}}]`))
	})
	mux.HandleFunc("/v3.1/name/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	mux.HandleFunc("/v1/flights", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":[{"flight_date":"2024-05-01","airline":{"name":"Air France"},"flight":{"number":"1"}}]}`))
	})
	mux.HandleFunc("/models/test/model", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"generated_text":"{\"funFact\":\"France has twelve time zones.\"}"}]`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func testConfig(t *testing.T, base string) *config.Config {
	t.Helper()
	cfg := config.FromEnv()
	cfg.CountriesBaseURL = base
	cfg.FlightsBaseURL = base
	cfg.FlightsAPIKey = "key"
	cfg.NewsBaseURL = base
	cfg.ModelProvider = "huggingface"
	cfg.HFAPIKey = "hf"
	cfg.HFModel = "test/model"
	cfg.HFBaseURL = base
	cfg.HistoryBackend = "file"
	cfg.HistoryFile = filepath.Join(t.TempDir(), "history.json")
	return cfg
}

func TestNewApp_EndToEnd(t *testing.T) {
	srv := upstream(t)
	cfg := testConfig(t, srv.URL)

	var notes []string
	a, err := newApp(context.Background(), cfg, zap.NewNop(), notifierFunc(&notes))
	require.NoError(t, err)
	t.Cleanup(func() { a.Close() })

	view, err := a.controller.Search(context.Background(), "France")
	require.NoError(t, err)
	assert.Equal(t, models.StateSuccess, view.State)
	assert.Equal(t, "France has twelve time zones.", *view.FunFact)
	assert.Len(t, view.Flights.ArrivalFlights, 1)
	assert.Len(t, view.Flights.DepartureFlights, 1)

	_, err = a.controller.Search(context.Background(), "Atlantis")
	assert.Error(t, err)
	assert.Equal(t, []string{"Failed to retrieve data for this country."}, notes)

	// A fresh app sees the persisted history.
	b, err := newApp(context.Background(), cfg, zap.NewNop(), nil)
	require.NoError(t, err)
	t.Cleanup(func() { b.Close() })
	require.Len(t, b.controller.History(), 1)
	assert.Equal(t, "France", b.controller.History()[0].Name)
}

func TestNewApp_AirportsFile(t *testing.T) {
	srv := upstream(t)
	cfg := testConfig(t, srv.URL)
	cfg.AirportsFile = filepath.Join(t.TempDir(), "missing.yaml")

	_, err := newApp(context.Background(), cfg, zap.NewNop(), nil)
	assert.Error(t, err)
}

func TestNewModel(t *testing.T) {
	cfg := config.FromEnv()
	cfg.ModelProvider = "gemini"
	cfg.GeminiAPIKey = ""
	m, err := newModel(context.Background(), cfg, http.DefaultClient, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, "gemini:unconfigured", m.Name())

	cfg.ModelProvider = "huggingface"
	cfg.HFAPIKey = "hf"
	cfg.HFModel = "org/m"
	m, err = newModel(context.Background(), cfg, http.DefaultClient, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, "huggingface:org/m", m.Name())

	cfg.ModelProvider = "openai"
	_, err = newModel(context.Background(), cfg, http.DefaultClient, zap.NewNop())
	assert.Error(t, err)
}

func TestOpenStore(t *testing.T) {
	ctx := context.Background()
	cfg := config.FromEnv()

	for _, name := range []string{"file", "memory", "sqlite"} {
		t.Run(name, func(t *testing.T) {
			cfg.HistoryBackend = name
			cfg.HistoryFile = filepath.Join(t.TempDir(), "h.json")
			cfg.SQLitePath = filepath.Join(t.TempDir(), "sub", "h.db")
			s, err := openStore(ctx, cfg, zap.NewNop())
			require.NoError(t, err)
			t.Cleanup(func() { s.Close() })
			assert.Equal(t, name, s.Name())
		})
	}

	cfg.HistoryBackend = "postgres"
	cfg.DatabaseURL = ""
	_, err := openStore(ctx, cfg, zap.NewNop())
	assert.Error(t, err)

	cfg.HistoryBackend = "mongo"
	_, err = openStore(ctx, cfg, zap.NewNop())
	assert.Error(t, err)
}

func TestHistoryCommand(t *testing.T) {
	t.Setenv("HISTORY_BACKEND", "memory")
	t.Setenv("LOG_LEVEL", "error")

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"history"})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	})

	require.NoError(t, rootCmd.Execute())
	assert.True(t, strings.Contains(out.String(), "No searches yet."))
}

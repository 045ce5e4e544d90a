package handlers

import (
	"context"
	"strings"
	"time"

	"geofacts/logging"
	"geofacts/models"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Searcher interface {
	Search(ctx context.Context, name string) (models.ViewModel, error)
	View() models.ViewModel
	History() models.SearchHistory
}

type CountryLookup interface {
	Lookup(ctx context.Context, name string) *models.CountryProfile
}

type FactGenerator interface {
	Generate(ctx context.Context, countryName string) (models.FunFact, error)
}

type NewsSummarizer interface {
	Summarize(ctx context.Context, countryName string) (models.NewsSummary, error)
}

type FlightLookup interface {
	Lookup(ctx context.Context, countryName string) models.FlightBundle
}

// Handler serves the JSON API.
type Handler struct {
	Controller Searcher
	Countries  CountryLookup
	Facts      FactGenerator
	News       NewsSummarizer
	Flights    FlightLookup
	Backend    string // history backend name, reported by /health
	Logger     *zap.Logger
	Now        func() time.Time
}

func (h *Handler) logger() *zap.Logger {
	return logging.OrNop(h.Logger)
}

func (h *Handler) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now()
}

// Register mounts every route on api.
func (h *Handler) Register(api *gin.RouterGroup) {
	api.GET("/health", h.Health)
	api.POST("/search", h.Search)
	api.GET("/view", h.GetView)
	api.GET("/history", h.GetHistory)
	api.GET("/report.pdf", h.Report)
	api.GET("/countries/:name", h.GetCountry)
	api.GET("/funfact/:name", h.GetFunFact)
	api.GET("/news/:name", h.GetNews)
	api.GET("/flights/:name", h.GetFlights)
}

// DefaultOrigins are always allowed by CORS, for local frontends.
var DefaultOrigins = []string{"http://localhost:5173", "http://localhost:3000", "http://localhost:9002"}

// NewRouter builds the gin engine with CORS and the /api group.
func NewRouter(h *Handler, extraOrigins []string) *gin.Engine {
	r := gin.Default()

	// Deployments sit behind a proxy.
	r.SetTrustedProxies([]string{"0.0.0.0/0"})

	allowedOrigins := append([]string{}, DefaultOrigins...)
	for _, u := range extraOrigins {
		if u = strings.TrimSpace(u); u != "" {
			allowedOrigins = append(allowedOrigins, u)
		}
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	h.Register(r.Group("/api"))
	return r
}

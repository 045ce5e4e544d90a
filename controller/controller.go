package controller

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"geofacts/logging"
	"geofacts/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// User-facing messages.
const (
	MsgLookupFailed = "Failed to retrieve data for this country."
	MsgFactFailed   = "Failed to generate fun fact."
	MsgFactEmpty    = "Could not generate fun fact."
)

var (
	ErrEmptyQuery      = errors.New("country name is empty")
	ErrCountryNotFound = errors.New("failed to retrieve data for this country")
	ErrSearchPanicked  = errors.New("search aborted by an internal fault")
)

type CountryLookup interface {
	Lookup(ctx context.Context, name string) *models.CountryProfile
}

type FactSource interface {
	GenerateWithProfile(ctx context.Context, countryName string, profile *models.CountryProfile) (models.FunFact, error)
}

type FlightLookup interface {
	Lookup(ctx context.Context, countryName string) models.FlightBundle
}

type HistoryStore interface {
	Load(ctx context.Context) (models.SearchHistory, error)
	Save(ctx context.Context, history models.SearchHistory) error
}

// Notifier receives user-visible failure messages.
type Notifier interface {
	Notify(message string)
}

// NotifierFunc adapts a plain function to Notifier.
type NotifierFunc func(message string)

func (f NotifierFunc) Notify(message string) { f(message) }

type Deps struct {
	Countries CountryLookup
	Facts     FactSource
	Flights   FlightLookup
	Store     HistoryStore
	Notifier  Notifier // optional
	Logger    *zap.Logger
}

// Controller runs searches and owns the view model and the history.
type Controller struct {
	countries CountryLookup
	facts     FactSource
	flights   FlightLookup
	store     HistoryStore
	notifier  Notifier
	logger    *zap.Logger

	mu       sync.Mutex
	view     models.ViewModel
	history  models.SearchHistory
	inFlight int // searches between loading and settled
}

// New builds a controller and loads the persisted history once.
func New(ctx context.Context, d Deps) *Controller {
	c := &Controller{
		countries: d.Countries,
		facts:     d.Facts,
		flights:   d.Flights,
		store:     d.Store,
		notifier:  d.Notifier,
		logger:    logging.OrNop(d.Logger),
		view:      models.ViewModel{State: models.StateIdle},
		history:   models.SearchHistory{},
	}
	if c.notifier == nil {
		c.notifier = NotifierFunc(func(string) {})
	}

	if c.store != nil {
		h, err := c.store.Load(ctx)
		if err != nil {
			c.logger.Warn("failed to load search history, starting empty", zap.Error(err))
		} else {
			c.history = h.Normalize()
		}
	}
	c.logger.Info("controller ready", zap.Int("history", len(c.history)))
	return c
}

// View returns a copy of the current view model.
func (c *Controller) View() models.ViewModel {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.view
}

// History returns a copy of the history, most recent first.
func (c *Controller) History() models.SearchHistory {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append(models.SearchHistory{}, c.history...)
}

// Search runs one lookup for name. On success the returned view model is also
// the controller's current one. A country that cannot be resolved returns
// ErrCountryNotFound and leaves the displayed data and the history alone.
func (c *Controller) Search(ctx context.Context, name string) (vm models.ViewModel, err error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return c.View(), ErrEmptyQuery
	}

	searchID := uuid.NewString()
	log := c.logger.With(zap.String("search_id", searchID), zap.String("query", name))

	c.mu.Lock()
	c.inFlight++
	c.view.State = models.StateLoading
	c.view.Loading = true
	c.mu.Unlock()

	defer func() {
		if r := recover(); r != nil {
			log.Error("search panicked", zap.Any("panic", r), zap.Stack("stack"))
			vm, err = c.fail(), fmt.Errorf("%w: %v", ErrSearchPanicked, r)
		}
	}()

	profile := c.countries.Lookup(ctx, name)
	if profile == nil {
		log.Info("country not found")
		return c.fail(), ErrCountryNotFound
	}

	fact, bundle := c.enrich(ctx, log, profile)

	c.mu.Lock()
	defer c.mu.Unlock()

	// State is assigned only once Save has returned.
	history := c.history.Push(*profile)
	if c.store != nil {
		if err := c.store.Save(ctx, history); err != nil {
			log.Warn("failed to save search history", zap.Error(err))
		}
	}

	c.inFlight--
	c.history = history
	c.view = models.ViewModel{
		SearchID: searchID,
		State:    models.StateSuccess,
		Country:  profile,
		FunFact:  &fact,
		Flights:  &bundle,
		Loading:  c.inFlight > 0,
	}

	log.Info("search complete",
		zap.String("country", profile.Name),
		zap.Int("arrivals", len(bundle.ArrivalFlights)),
		zap.Int("departures", len(bundle.DepartureFlights)),
		zap.Int("history", len(history)))
	return c.view, nil
}

// enrich fetches the fun fact and the flights concurrently. Neither branch
// fails the search.
func (c *Controller) enrich(ctx context.Context, log *zap.Logger, profile *models.CountryProfile) (string, models.FlightBundle) {
	var (
		fact   string
		bundle models.FlightBundle
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		defer func() {
			if r := recover(); r != nil {
				log.Error("fun fact panicked", zap.Any("panic", r))
				fact = MsgFactFailed
			}
		}()
		ff, ferr := c.facts.GenerateWithProfile(gctx, profile.Name, profile)
		switch {
		case ferr != nil:
			log.Warn("fun fact generation failed", zap.Error(ferr))
			fact = MsgFactFailed
		case ff.FunFact == "":
			fact = MsgFactEmpty
		default:
			fact = ff.FunFact
		}
		return nil
	})
	g.Go(func() (err error) {
		defer func() {
			if r := recover(); r != nil {
				log.Error("flight lookup panicked", zap.Any("panic", r))
				bundle = models.EmptyFlightBundle()
			}
		}()
		bundle = c.flights.Lookup(gctx, profile.Name)
		if bundle.ArrivalFlights == nil {
			bundle.ArrivalFlights = []models.FlightRecord{}
		}
		if bundle.DepartureFlights == nil {
			bundle.DepartureFlights = []models.FlightRecord{}
		}
		return nil
	})
	_ = g.Wait()

	return fact, bundle
}

// fail moves to the error state and notifies. Displayed data is kept.
func (c *Controller) fail() models.ViewModel {
	c.mu.Lock()
	c.inFlight--
	c.view.State = models.StateError
	c.view.Loading = c.inFlight > 0
	vm := c.view
	c.mu.Unlock()

	c.notifier.Notify(MsgLookupFailed)
	return vm
}

package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"geofacts/logging"
	"geofacts/models"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var errMalformedFlights = errors.New("flights response has no data array")

// ─── AviationStack Client ─────────────────────────────────────────────────────

type FlightClient struct {
	apiKey     string
	baseURL    string
	airports   *AirportTable
	httpClient *http.Client
	now        func() time.Time
	logger     *zap.Logger
}

type FlightClientOption func(*FlightClient)

// WithClock overrides the source of "today" for the flight_date filter.
func WithClock(now func() time.Time) FlightClientOption {
	return func(c *FlightClient) { c.now = now }
}

func NewFlightClient(apiKey, baseURL string, airports *AirportTable, httpClient *http.Client, logger *zap.Logger, opts ...FlightClientOption) *FlightClient {
	if airports == nil {
		airports = DefaultAirportTable()
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	c := &FlightClient{
		apiKey:     apiKey,
		baseURL:    strings.TrimRight(baseURL, "/"),
		airports:   airports,
		httpClient: httpClient,
		now:        time.Now,
		logger:     logging.OrNop(logger),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.apiKey == "" {
		c.logger.Warn("AVIATIONSTACK_API_KEY not set, flight lookups will return no flights")
	}
	return c
}

// Lookup returns up to three of today's arrivals and departures for the
// country's representative airport. Every failure yields the empty bundle.
func (c *FlightClient) Lookup(ctx context.Context, country string) models.FlightBundle {
	if c.apiKey == "" {
		c.logger.Warn("flights API key missing", zap.String("country", country))
		return models.EmptyFlightBundle()
	}

	airport := c.airports.Resolve(country)
	date := c.now().Format("2006-01-02")

	var arrivals, departures []aviationFlight
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		arrivals, err = c.fetch(gctx, "arr_iata", airport, date)
		return err
	})
	g.Go(func() error {
		var err error
		departures, err = c.fetch(gctx, "dep_iata", airport, date)
		return err
	})
	if err := g.Wait(); err != nil {
		c.logger.Warn("flight lookup failed",
			zap.String("country", country),
			zap.String("airport", airport),
			zap.Error(err))
		return models.EmptyFlightBundle()
	}

	c.logger.Debug("flights fetched",
		zap.String("airport", airport),
		zap.Int("arrivals", len(arrivals)),
		zap.Int("departures", len(departures)))

	return models.FlightBundle{
		ArrivalFlights:   toFlightRecords(arrivals),
		DepartureFlights: toFlightRecords(departures),
	}
}

// AviationStack flights response structures
type aviationFlightsResponse struct {
	Data *[]aviationFlight `json:"data"`
}

type aviationEndpoint struct {
	AirportName string  `json:"airport_name"`
	Timezone    string  `json:"timezone"`
	IATA        string  `json:"iata"`
	ICAO        string  `json:"icao"`
	Terminal    *string `json:"terminal"`
	Scheduled   string  `json:"scheduled"`
}

type aviationFlight struct {
	FlightDate   string           `json:"flight_date"`
	FlightStatus string           `json:"flight_status"`
	Departure    aviationEndpoint `json:"departure"`
	Arrival      aviationEndpoint `json:"arrival"`
	Airline      struct {
		Name string `json:"name"`
	} `json:"airline"`
	Flight struct {
		Number string `json:"number"`
	} `json:"flight"`
}

func (c *FlightClient) fetch(ctx context.Context, filter, airport, date string) ([]aviationFlight, error) {
	q := url.Values{}
	q.Set("access_key", c.apiKey)
	q.Set(filter, airport)
	q.Set("flight_date", date)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/v1/flights?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s request failed: %w", filter, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s response: %w", filter, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("aviationstack error (%d) for %s", resp.StatusCode, filter)
	}

	var parsed aviationFlightsResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("%w: %v", errMalformedFlights, err)
	}
	if parsed.Data == nil {
		return nil, errMalformedFlights
	}
	return *parsed.Data, nil
}

func toFlightRecords(in []aviationFlight) []models.FlightRecord {
	if len(in) > models.MaxFlightsPerDirection {
		in = in[:models.MaxFlightsPerDirection]
	}
	out := make([]models.FlightRecord, 0, len(in))
	for _, f := range in {
		out = append(out, models.FlightRecord{
			FlightDate:   f.FlightDate,
			FlightStatus: f.FlightStatus,
			Departure:    toEndpoint(f.Departure),
			Arrival:      toEndpoint(f.Arrival),
			Airline:      f.Airline.Name,
			FlightNumber: f.Flight.Number,
		})
	}
	return out
}

func toEndpoint(e aviationEndpoint) models.FlightEndpoint {
	return models.FlightEndpoint{
		Airport:  e.AirportName,
		Timezone: e.Timezone,
		IATA:     e.IATA,
		ICAO:     e.ICAO,
		Terminal: e.Terminal,
		Time:     e.Scheduled,
	}
}

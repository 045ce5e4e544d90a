package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"

	"geofacts/logging"
	"geofacts/models"

	"go.uber.org/zap"
)

// ErrCountryNotFound means the directory had no match for the name.
var ErrCountryNotFound = errors.New("country not found")

// CountryClient talks to the REST Countries directory.
type CountryClient struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

func NewCountryClient(baseURL string, httpClient *http.Client, logger *zap.Logger) *CountryClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &CountryClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		logger:     logging.OrNop(logger),
	}
}

type restCountry struct {
	Name struct {
		Common string `json:"common"`
	} `json:"name"`
	Area       float64           `json:"area"`
	Population int64             `json:"population"`
	Languages  map[string]string `json:"languages"`
	Flags      struct {
		PNG string `json:"png"`
	} `json:"flags"`
}

// Lookup returns the profile for name, or nil when it is unknown or the
// directory could not be reached. Only transport failures are logged.
func (c *CountryClient) Lookup(ctx context.Context, name string) *models.CountryProfile {
	profile, err := c.Fetch(ctx, name)
	if err != nil {
		if !errors.Is(err, ErrCountryNotFound) {
			c.logger.Warn("country lookup failed", zap.String("country", name), zap.Error(err))
		}
		return nil
	}
	return profile
}

// Fetch is Lookup without the nil collapse.
func (c *CountryClient) Fetch(ctx context.Context, name string) (*models.CountryProfile, error) {
	endpoint := fmt.Sprintf("%s/v3.1/name/%s?fullText=true", c.baseURL, url.PathEscape(name))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("countries request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read countries response: %w", err)
	}

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrCountryNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("countries error (%d): %s", resp.StatusCode, string(body))
	}

	var matches []restCountry
	if err := json.Unmarshal(body, &matches); err != nil {
		return nil, fmt.Errorf("failed to parse countries response: %w", err)
	}
	if len(matches) == 0 {
		return nil, ErrCountryNotFound
	}

	// Multiple matches are possible for ambiguous names; the first one wins.
	return toProfile(matches[0]), nil
}

func toProfile(rc restCountry) *models.CountryProfile {
	codes := make([]string, 0, len(rc.Languages))
	for code := range rc.Languages {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	languages := make([]string, 0, len(codes))
	for _, code := range codes {
		if name := strings.TrimSpace(rc.Languages[code]); name != "" {
			languages = append(languages, name)
		}
	}

	return &models.CountryProfile{
		Name:       rc.Name.Common,
		Landmass:   rc.Area,
		Population: rc.Population,
		Languages:  languages,
		Flag:       rc.Flags.PNG,
	}
}

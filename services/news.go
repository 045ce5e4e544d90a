package services

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"

	"geofacts/logging"
	"geofacts/models"

	"go.uber.org/zap"
)

// NewsClient searches GNews for recent articles.
type NewsClient struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

func NewNewsClient(apiKey, baseURL string, httpClient *http.Client, logger *zap.Logger) *NewsClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &NewsClient{
		apiKey:     apiKey,
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		logger:     logging.OrNop(logger),
	}
}

// Latest returns the provider's default page of English articles matching
// countryName. Any failure is logged and yields an empty list.
func (c *NewsClient) Latest(ctx context.Context, countryName string) []models.NewsArticle {
	if c.apiKey == "" {
		c.logger.Warn("NEWS_API_KEY not set, returning no articles")
		return []models.NewsArticle{}
	}

	q := url.Values{}
	q.Set("q", countryName)
	q.Set("lang", "en")
	q.Set("apikey", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/v4/search?"+q.Encode(), nil)
	if err != nil {
		c.logger.Warn("news request build failed", zap.Error(err))
		return []models.NewsArticle{}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("news request failed", zap.String("country", countryName), zap.Error(err))
		return []models.NewsArticle{}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.logger.Warn("news response read failed", zap.String("country", countryName), zap.Error(err))
		return []models.NewsArticle{}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Warn("news provider error", zap.Int("status", resp.StatusCode))
		return []models.NewsArticle{}
	}

	var parsed struct {
		Articles *[]struct {
			Title       string `json:"title"`
			Description string `json:"description"`
			URL         string `json:"url"`
			PublishedAt string `json:"publishedAt"`
		} `json:"articles"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil || parsed.Articles == nil {
		c.logger.Warn("invalid data format from news provider", zap.ByteString("body", truncate(body, 256)))
		return []models.NewsArticle{}
	}

	articles := make([]models.NewsArticle, 0, len(*parsed.Articles))
	for _, a := range *parsed.Articles {
		articles = append(articles, models.NewsArticle{
			Title:       a.Title,
			Description: a.Description,
			URL:         a.URL,
			Date:        a.PublishedAt,
		})
	}
	return articles
}

func truncate(b []byte, n int) []byte {
	if len(b) > n {
		return b[:n]
	}
	return b
}

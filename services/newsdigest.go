package services

import (
	"context"
	"fmt"

	"geofacts/logging"
	"geofacts/models"

	"go.uber.org/zap"
)

// ArticleSource returns recent articles for a country, never an error.
type ArticleSource interface {
	Latest(ctx context.Context, countryName string) []models.NewsArticle
}

// NewsDigest condenses recent articles about a country into one paragraph.
type NewsDigest struct {
	news   ArticleSource
	model  Model
	logger *zap.Logger
}

func NewNewsDigest(news ArticleSource, model Model, logger *zap.Logger) *NewsDigest {
	return &NewsDigest{news: news, model: model, logger: logging.OrNop(logger)}
}

// Summarize always calls the model, even when there are no articles.
func (d *NewsDigest) Summarize(ctx context.Context, countryName string) (models.NewsSummary, error) {
	articles := d.news.Latest(ctx, countryName)
	d.logger.Debug("summarizing news", zap.String("country", countryName), zap.Int("articles", len(articles)))

	prompt, err := renderPrompt(newsPromptName, newsPromptInput{
		CountryName:  countryName,
		NewsArticles: articles,
	})
	if err != nil {
		return models.NewsSummary{}, fmt.Errorf("render news prompt: %w", err)
	}

	raw, err := d.model.GenerateJSON(ctx, prompt, stringObjectSchema("summary", "A summarized version of the latest news articles."))
	if err != nil {
		return models.NewsSummary{}, err
	}

	var out struct {
		Summary *string `json:"summary" validate:"required"`
	}
	if err := decodeOutput(raw, &out); err != nil {
		return models.NewsSummary{}, err
	}
	return models.NewsSummary{Summary: *out.Summary}, nil
}

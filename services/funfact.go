package services

import (
	"context"
	"errors"
	"fmt"

	"geofacts/logging"
	"geofacts/models"

	"go.uber.org/zap"
)

// ErrNoCountryData means no profile was available to condition the prompt on.
var ErrNoCountryData = errors.New("no country data for fun fact")

// ProfileLookup resolves a country name to its profile, nil when unknown.
type ProfileLookup interface {
	Lookup(ctx context.Context, name string) *models.CountryProfile
}

// FactGenerator asks the model for one fun fact about a country.
type FactGenerator struct {
	countries ProfileLookup
	model     Model
	logger    *zap.Logger
}

func NewFactGenerator(countries ProfileLookup, model Model, logger *zap.Logger) *FactGenerator {
	return &FactGenerator{countries: countries, model: model, logger: logging.OrNop(logger)}
}

// Generate looks the country up again on its own and then generates the fact.
func (g *FactGenerator) Generate(ctx context.Context, countryName string) (models.FunFact, error) {
	profile := g.countries.Lookup(ctx, countryName)
	if profile == nil {
		return models.FunFact{}, fmt.Errorf("%w: %s", ErrNoCountryData, countryName)
	}
	return g.GenerateWithProfile(ctx, countryName, profile)
}

// GenerateWithProfile generates the fact from an already resolved profile.
func (g *FactGenerator) GenerateWithProfile(ctx context.Context, countryName string, profile *models.CountryProfile) (models.FunFact, error) {
	if profile == nil {
		return models.FunFact{}, fmt.Errorf("%w: %s", ErrNoCountryData, countryName)
	}

	prompt, err := renderPrompt(funFactPromptName, funFactPromptInput{
		CountryName: countryName,
		CountryData: *profile,
	})
	if err != nil {
		return models.FunFact{}, fmt.Errorf("render fun fact prompt: %w", err)
	}

	raw, err := g.model.GenerateJSON(ctx, prompt, stringObjectSchema("funFact", "A fun fact about the country."))
	if err != nil {
		return models.FunFact{}, err
	}

	var out struct {
		FunFact *string `json:"funFact" validate:"required"`
	}
	if err := decodeOutput(raw, &out); err != nil {
		g.logger.Warn("fun fact output rejected", zap.String("model", g.model.Name()), zap.Error(err))
		return models.FunFact{}, err
	}
	return models.FunFact{FunFact: *out.FunFact}, nil
}

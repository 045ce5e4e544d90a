package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"google.golang.org/genai"
)

var (
	// ErrModelCall wraps any failure to get a reply from the hosted model.
	ErrModelCall = errors.New("model call failed")
	// ErrSchema means the model replied but the payload did not match the output schema.
	ErrSchema = errors.New("model output failed schema validation")
)

// Model is a hosted text-generation model that answers with a JSON object
// shaped by schema.
type Model interface {
	Name() string
	GenerateJSON(ctx context.Context, prompt string, schema *genai.Schema) ([]byte, error)
}

// stringObjectSchema describes {"<field>": string} with the field required.
func stringObjectSchema(field, description string) *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			field: {Type: genai.TypeString, Description: description},
		},
		Required: []string{field},
	}
}

var validate = validator.New()

// decodeOutput unmarshals a model reply into out and validates it.
func decodeOutput(raw []byte, out any) error {
	if err := json.Unmarshal(extractJSONObject(raw), out); err != nil {
		return fmt.Errorf("%w: %v", ErrSchema, err)
	}
	if err := validate.Struct(out); err != nil {
		return fmt.Errorf("%w: %v", ErrSchema, err)
	}
	return nil
}

// extractJSONObject trims anything around the outermost {...}. Models that
// cannot enforce a schema tend to wrap JSON in prose or code fences.
func extractJSONObject(raw []byte) []byte {
	s := string(raw)
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start < 0 || end < start {
		return raw
	}
	return []byte(s[start : end+1])
}

// UnconfiguredModel stands in when no provider credentials are set. Every
// call fails with ErrModelCall, so callers fall back as they would on an outage.
type UnconfiguredModel struct {
	Provider string
}

func (m UnconfiguredModel) Name() string { return m.Provider + ":unconfigured" }

func (m UnconfiguredModel) GenerateJSON(context.Context, string, *genai.Schema) ([]byte, error) {
	return nil, fmt.Errorf("%w: %s API key not configured", ErrModelCall, m.Provider)
}

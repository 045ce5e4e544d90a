package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"

	"google.golang.org/genai"
)

// HFModel calls the HuggingFace inference API. It cannot enforce a response
// schema, so the schema is spelled out in the prompt instead.
type HFModel struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
}

func NewHFModel(apiKey, model, baseURL string, httpClient *http.Client) *HFModel {
	if model == "" {
		model = "mistralai/Mistral-7B-Instruct-v0.3"
	}
	if baseURL == "" {
		baseURL = "https://api-inference.huggingface.co"
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &HFModel{
		apiKey:     apiKey,
		model:      model,
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

func (c *HFModel) Name() string {
	return "huggingface:" + c.model
}

type hfRequest struct {
	Inputs     string       `json:"inputs"`
	Parameters hfParameters `json:"parameters"`
}

type hfParameters struct {
	MaxNewTokens   int     `json:"max_new_tokens"`
	Temperature    float64 `json:"temperature"`
	ReturnFullText bool    `json:"return_full_text"`
}

type hfResponse []struct {
	GeneratedText string `json:"generated_text"`
}

func (c *HFModel) GenerateJSON(ctx context.Context, prompt string, schema *genai.Schema) ([]byte, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("%w: huggingface API key not configured", ErrModelCall)
	}

	reqBody := hfRequest{
		Inputs: fmt.Sprintf("[INST] %s\n\n%s [/INST]", prompt, schemaInstruction(schema)),
		Parameters: hfParameters{
			MaxNewTokens:   300,
			Temperature:    0.7,
			ReturnFullText: false,
		},
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/models/%s", c.baseURL, c.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonBody))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrModelCall, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response: %v", ErrModelCall, err)
	}

	if resp.StatusCode == http.StatusServiceUnavailable {
		return nil, fmt.Errorf("%w: model is loading", ErrModelCall)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: HuggingFace API error (%d): %s", ErrModelCall, resp.StatusCode, string(body))
	}

	var hfResp hfResponse
	if err := json.Unmarshal(body, &hfResp); err != nil {
		return nil, fmt.Errorf("%w: failed to parse response: %v", ErrModelCall, err)
	}
	if len(hfResp) == 0 || hfResp[0].GeneratedText == "" {
		return nil, fmt.Errorf("%w: empty response", ErrModelCall)
	}

	return extractJSONObject([]byte(hfResp[0].GeneratedText)), nil
}

// schemaInstruction renders an object schema as a plain-language reply format.
func schemaInstruction(schema *genai.Schema) string {
	if schema == nil || len(schema.Properties) == 0 {
		return "Reply with a single JSON object and nothing else."
	}
	fields := make([]string, 0, len(schema.Properties))
	for name := range schema.Properties {
		fields = append(fields, name)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, name := range fields {
		parts = append(parts, fmt.Sprintf("%q: <%s>", name, strings.ToLower(string(schema.Properties[name].Type))))
	}
	return "Reply with exactly this JSON object and nothing else: {" + strings.Join(parts, ", ") + "}"
}

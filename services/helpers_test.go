package services

import (
	"context"
	"errors"
	"net/http"
	"sync"

	"google.golang.org/genai"
)

func errorsIsNotFound(err error) bool {
	return errors.Is(err, ErrCountryNotFound)
}

// fakeModel returns a canned reply and records the prompts it was given.
type fakeModel struct {
	mu      sync.Mutex
	reply   string
	err     error
	prompts []string
	schemas []*genai.Schema
}

func (m *fakeModel) Name() string { return "fake" }

func (m *fakeModel) GenerateJSON(_ context.Context, prompt string, schema *genai.Schema) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.prompts = append(m.prompts, prompt)
	m.schemas = append(m.schemas, schema)
	if m.err != nil {
		return nil, m.err
	}
	return []byte(m.reply), nil
}

func (m *fakeModel) calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.prompts)
}

// truncatedBody promises more bytes than it sends, so the client's read fails.
func truncatedBody(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Length", "4096")
	w.Write([]byte(`{"data":[`))
}

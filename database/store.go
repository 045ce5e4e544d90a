package database

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"geofacts/models"
)

// ErrCorruptHistory means the stored slot could not be decoded.
var ErrCorruptHistory = errors.New("stored search history is corrupt")

// HistoryStore persists the search history in a single named slot.
type HistoryStore interface {
	Load(ctx context.Context) (models.SearchHistory, error)
	Save(ctx context.Context, history models.SearchHistory) error
	Name() string
	Close() error
}

func encodeHistory(h models.SearchHistory) ([]byte, error) {
	return json.Marshal(h.Normalize())
}

func decodeHistory(raw []byte) (models.SearchHistory, error) {
	if len(raw) == 0 {
		return models.SearchHistory{}, nil
	}
	var h models.SearchHistory
	if err := json.Unmarshal(raw, &h); err != nil {
		return models.SearchHistory{}, fmt.Errorf("%w: %v", ErrCorruptHistory, err)
	}
	return h.Normalize(), nil
}

// ─── Memory ───────────────────────────────────────────────────────────────────

// MemoryStore keeps the serialized slot in process memory.
type MemoryStore struct {
	mu   sync.Mutex
	slot []byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Load(context.Context) (models.SearchHistory, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return decodeHistory(s.slot)
}

func (s *MemoryStore) Save(_ context.Context, h models.SearchHistory) error {
	raw, err := encodeHistory(h)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.slot = raw
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Name() string { return "memory" }

func (s *MemoryStore) Close() error { return nil }

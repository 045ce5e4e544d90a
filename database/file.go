package database

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"geofacts/models"
)

// FileStore keeps the slot in a local JSON file.
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Load(context.Context) (models.SearchHistory, error) {
	raw, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return models.SearchHistory{}, nil
	}
	if err != nil {
		return models.SearchHistory{}, fmt.Errorf("read history file: %w", err)
	}
	return decodeHistory(raw)
}

// Save writes to a temp file first so a crash never leaves a half-written slot.
func (s *FileStore) Save(_ context.Context, h models.SearchHistory) error {
	raw, err := encodeHistory(h)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("failed to create history directory: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return fmt.Errorf("write history file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace history file: %w", err)
	}
	return nil
}

func (s *FileStore) Name() string { return "file" }

func (s *FileStore) Close() error { return nil }

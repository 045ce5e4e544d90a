package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"geofacts/models"

	_ "github.com/lib/pq"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

var (
	connectAttempts   = 10
	connectRetryDelay = 2 * time.Second
)

// SQLStore keeps the slot as one row of the history_slots table. It works
// against PostgreSQL (driver "postgres") and SQLite (driver "sqlite").
type SQLStore struct {
	db     *sql.DB
	driver string
	slot   string
}

// ─── Init ─────────────────────────────────────────────────────────────────────

// OpenSQLStore opens the database, waits for it to answer and runs migrations.
func OpenSQLStore(ctx context.Context, driver, dsn, slot string, logger *zap.Logger) (*SQLStore, error) {
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if driver == "sqlite" {
		// SQLite allows one writer at a time.
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(10)
		db.SetMaxIdleConns(5)
		db.SetConnMaxLifetime(5 * time.Minute)
	}

	// A freshly started database container may take a moment to accept connections.
	for i := 0; i < connectAttempts; i++ {
		if err = db.PingContext(ctx); err == nil {
			break
		}
		if logger != nil {
			logger.Info("waiting for database",
				zap.String("driver", driver),
				zap.Int("attempt", i+1),
				zap.Error(err))
		}
		if i == connectAttempts-1 {
			break
		}
		select {
		case <-ctx.Done():
			db.Close()
			return nil, fmt.Errorf("failed to connect to database: %w", ctx.Err())
		case <-time.After(connectRetryDelay):
		}
	}
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database after retries: %w", err)
	}

	s := &SQLStore{db: db, driver: driver, slot: slot}
	if err := s.migrate(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// ─── Migrations ───────────────────────────────────────────────────────────────

func (s *SQLStore) migrate(ctx context.Context) error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS history_slots (
			slot       TEXT PRIMARY KEY,
			payload    TEXT NOT NULL,
			updated_at TIMESTAMP NOT NULL
		)`,
	}

	for _, m := range migrations {
		if _, err := s.db.ExecContext(ctx, m); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}
	return nil
}

// ─── Slot access ──────────────────────────────────────────────────────────────

func (s *SQLStore) Load(ctx context.Context) (models.SearchHistory, error) {
	var payload string
	err := s.db.QueryRowContext(ctx,
		`SELECT payload FROM history_slots WHERE slot = $1`, s.slot).
		Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return models.SearchHistory{}, nil
	}
	if err != nil {
		return models.SearchHistory{}, fmt.Errorf("load history: %w", err)
	}
	return decodeHistory([]byte(payload))
}

func (s *SQLStore) Save(ctx context.Context, h models.SearchHistory) error {
	raw, err := encodeHistory(h)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO history_slots (slot, payload, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (slot) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at`,
		s.slot, string(raw), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("save history: %w", err)
	}
	return nil
}

func (s *SQLStore) Name() string { return s.driver }

func (s *SQLStore) Close() error {
	return s.db.Close()
}

package database

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"geofacts/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func history(n int) models.SearchHistory {
	h := models.SearchHistory{}
	for i := 0; i < n; i++ {
		h = h.Push(models.CountryProfile{
			Name:       fmt.Sprintf("Country %d", i),
			Population: int64(i),
			Languages:  []string{"English"},
		})
	}
	return h
}

// exerciseStore runs the behaviour every backend shares.
func exerciseStore(t *testing.T, s HistoryStore) {
	t.Helper()
	ctx := context.Background()

	got, err := s.Load(ctx)
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)

	want := history(3)
	require.NoError(t, s.Save(ctx, want))
	got, err = s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	// Overwrite replaces the whole slot.
	want = history(1)
	require.NoError(t, s.Save(ctx, want))
	got, err = s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	require.NoError(t, s.Save(ctx, models.SearchHistory{}))
	got, err = s.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestMemoryStore(t *testing.T) {
	s := NewMemoryStore()
	assert.Equal(t, "memory", s.Name())
	exerciseStore(t, s)
}

func TestFileStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "history.json")
	s := NewFileStore(path)
	assert.Equal(t, "file", s.Name())
	exerciseStore(t, s)
}

func TestFileStore_PersistsAcrossInstances(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.json")
	ctx := context.Background()
	require.NoError(t, NewFileStore(path).Save(ctx, history(2)))

	got, err := NewFileStore(path).Load(ctx)
	require.NoError(t, err)
	assert.Len(t, got, 2)
	assert.Equal(t, "Country 1", got[0].Name)
}

func TestFileStore_CorruptSlot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	got, err := NewFileStore(path).Load(context.Background())
	assert.ErrorIs(t, err, ErrCorruptHistory)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestDecodeHistory_TruncatesOversizedSlot(t *testing.T) {
	long := make(models.SearchHistory, 15)
	for i := range long {
		long[i] = models.CountryProfile{Name: fmt.Sprintf("C%d", i)}
	}
	raw, err := encodeHistory(long)
	require.NoError(t, err)

	got, err := decodeHistory(raw)
	require.NoError(t, err)
	assert.Len(t, got, models.MaxHistory)
	assert.Equal(t, "C0", got[0].Name)
}

func TestSQLStore_SQLite(t *testing.T) {
	ctx := context.Background()
	dsn := filepath.Join(t.TempDir(), "history.db")
	s, err := OpenSQLStore(ctx, "sqlite", dsn, "searchHistory", zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	assert.Equal(t, "sqlite", s.Name())
	exerciseStore(t, s)
}

func TestSQLStore_SQLiteSlotsAreIndependent(t *testing.T) {
	ctx := context.Background()
	dsn := filepath.Join(t.TempDir(), "history.db")
	a, err := OpenSQLStore(ctx, "sqlite", dsn, "a", nil)
	require.NoError(t, err)
	t.Cleanup(func() { a.Close() })
	require.NoError(t, a.Save(ctx, history(2)))
	require.NoError(t, a.Close())

	b, err := OpenSQLStore(ctx, "sqlite", dsn, "b", nil)
	require.NoError(t, err)
	t.Cleanup(func() { b.Close() })
	got, err := b.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSQLStore_Postgres(t *testing.T) {
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	ctx := context.Background()
	s, err := OpenSQLStore(ctx, "postgres", dsn, "geofacts_test", zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	assert.Equal(t, "postgres", s.Name())
	exerciseStore(t, s)
}

func TestRedisStore(t *testing.T) {
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TEST_REDIS_ADDR not set")
	}
	client := NewRedisClient(addr, os.Getenv("TEST_REDIS_PASSWORD"), 0)
	s := NewRedisStore(client, "geofacts_test")
	t.Cleanup(func() {
		client.Del(context.Background(), s.key)
		s.Close()
	})

	assert.Equal(t, "redis", s.Name())
	exerciseStore(t, s)
}

func TestOpenSQLStore_NoDelayAfterLastAttempt(t *testing.T) {
	attempts, delay := connectAttempts, connectRetryDelay
	connectAttempts, connectRetryDelay = 1, time.Hour
	t.Cleanup(func() { connectAttempts, connectRetryDelay = attempts, delay })

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	start := time.Now()
	_, err := OpenSQLStore(ctx, "postgres", "postgres://u:p@127.0.0.1:1/db?sslmode=disable&connect_timeout=1", "s", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "after retries")
	assert.Less(t, time.Since(start), 4*time.Second)
}

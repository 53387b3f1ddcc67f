package services

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/dmitrijs2005/resilia/internal/logging"
	"github.com/dmitrijs2005/resilia/internal/repositories/kv"
	"github.com/dmitrijs2005/resilia/internal/storage"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2025, 10, 5, 14, 30, 0, 0, time.UTC)

type fixture struct {
	repo     kv.Repository
	accounts *AccountDirectory
	sessions *SessionManager
	activity *ActivityLog
}

func newFixture(t *testing.T, repo kv.Repository) *fixture {
	t.Helper()
	log := logging.Nop()
	accounts := NewAccountDirectory(repo, log)
	accounts.now = func() time.Time { return fixedNow }
	activity := NewActivityLog(repo, log, "")
	activity.now = func() time.Time { return fixedNow }

	return &fixture{
		repo:     repo,
		accounts: accounts,
		sessions: NewSessionManager(repo, accounts, log),
		activity: activity,
	}
}

func memoryFixture(t *testing.T) *fixture {
	t.Helper()
	return newFixture(t, kv.NewMemoryRepository())
}

func sqliteFixture(t *testing.T) *fixture {
	t.Helper()
	db, err := storage.InitDatabase(context.Background(), filepath.Join(t.TempDir(), "resilia.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return newFixture(t, kv.NewSQLiteRepository(db))
}

// substrates runs fn once per storage implementation.
func substrates(t *testing.T, fn func(t *testing.T, f *fixture)) {
	t.Run("memory", func(t *testing.T) { fn(t, memoryFixture(t)) })
	t.Run("sqlite", func(t *testing.T) { fn(t, sqliteFixture(t)) })
}

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

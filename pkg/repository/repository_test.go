package repository

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/feedwatch/pkg/domain"
)

// setupTestDB creates in-memory repositories, closed by the returned cleanup
func setupTestDB(t *testing.T) (repos *Repositories, cleanup func()) {
	t.Helper()
	cfg := Config{
		DSN:             ":memory:",
		MaxOpenConns:    1,
		MaxIdleConns:    1,
		ConnMaxLifetime: 30 * time.Second,
	}
	repos, err := NewRepositories(context.Background(), cfg)
	require.NoError(t, err)
	return repos, func() { assert.NoError(t, repos.Close()) }
}

func TestRepositories_Integration(t *testing.T) {
	repos, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	require.NoError(t, repos.Ping(ctx))

	f := &domain.Feed{Name: "tech", URL: "https://example.com/feed.xml", OwnerEmail: "bob@example.com"}
	require.NoError(t, repos.Feed.CreateFeed(ctx, f))
	assert.NotZero(t, f.ID)

	items := []domain.Item{
		{Title: "first", URL: "https://example.com/1", RemoteID: "guid-1", Unread: true},
		{Title: "second", URL: "https://example.com/2", RemoteID: "guid-2", Unread: true},
	}
	touched := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	require.NoError(t, repos.Item.CreateItems(ctx, f.ID, items, touched))

	ids, err := repos.Item.GetRemoteIDs(ctx)
	require.NoError(t, err)
	assert.Len(t, ids, 2)

	got, err := repos.Feed.GetFeed(ctx, f.ID)
	require.NoError(t, err)
	require.NotNil(t, got.LastUpdated)
	assert.True(t, touched.Equal(*got.LastUpdated))

	// deleting the feed removes its items
	require.NoError(t, repos.Feed.DeleteFeed(ctx, f.ID))
	ids, err = repos.Item.GetRemoteIDs(ctx)
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestNewRepositories_FileDB(t *testing.T) {
	dsn := fmt.Sprintf("file:%s?mode=rwc&_txlock=immediate", filepath.Join(t.TempDir(), "test.db"))
	repos, err := NewRepositories(context.Background(), Config{DSN: dsn, MaxOpenConns: 4})
	require.NoError(t, err)

	// schema is idempotent
	again, err := NewRepositories(context.Background(), Config{DSN: dsn})
	require.NoError(t, err)
	require.NoError(t, again.Close())

	// data survives reopening
	f := &domain.Feed{Name: "persistent", URL: "https://example.com/p.xml"}
	require.NoError(t, repos.Feed.CreateFeed(context.Background(), f))
	require.NoError(t, repos.Close())

	reopened, err := NewRepositories(context.Background(), Config{DSN: dsn})
	require.NoError(t, err)
	defer reopened.Close()
	got, err := reopened.Feed.GetFeed(context.Background(), f.ID)
	require.NoError(t, err)
	assert.Equal(t, "persistent", got.Name)
}

func TestWithLockRetry(t *testing.T) {
	t.Run("retries lock errors", func(t *testing.T) {
		calls := 0
		err := withLockRetry(context.Background(), func() error {
			calls++
			if calls < 3 {
				return errors.New("database is locked (SQLITE_BUSY)")
			}
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, 3, calls)
	})

	t.Run("stops on other errors", func(t *testing.T) {
		calls := 0
		err := withLockRetry(context.Background(), func() error {
			calls++
			return fmt.Errorf("feed 1: %w", domain.ErrNotFound)
		})
		require.ErrorIs(t, err, domain.ErrNotFound)
		assert.Equal(t, 1, calls)
		assert.Equal(t, "feed 1: not found", err.Error())
	})
}

func TestIsLockError(t *testing.T) {
	tests := []struct {
		err  error
		want bool
	}{
		{nil, false},
		{errors.New("database is locked"), true},
		{errors.New("SQLITE_BUSY"), true},
		{errors.New("database table is locked"), true},
		{errors.New("no such table"), false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, isLockError(tt.err), "%v", tt.err)
	}
}

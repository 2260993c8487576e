package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/umputun/feedwatch/pkg/domain"
)

// FeedRepository handles feed-related database operations
type FeedRepository struct {
	db *sqlx.DB
}

// feedSQL represents a feed for SQL operations
type feedSQL struct {
	ID          int64      `db:"id"`
	Name        string     `db:"name"`
	URL         string     `db:"url"`
	LastUpdated *time.Time `db:"last_updated"`
	Active      bool       `db:"active"`
	ErrorsCount int        `db:"errors_count"`
	OwnerEmail  string     `db:"owner_email"`
	CreatedAt   time.Time  `db:"created_at"`
}

// NewFeedRepository creates a new feed repository
func NewFeedRepository(database *sqlx.DB) *FeedRepository {
	return &FeedRepository{db: database}
}

// CreateFeed inserts a new active feed and sets its ID.
// Returns domain.ErrAlreadyExists if the name or url is taken.
func (r *FeedRepository) CreateFeed(ctx context.Context, feed *domain.Feed) error {
	sqlFeed := &feedSQL{
		Name:       feed.Name,
		URL:        feed.URL,
		Active:     true,
		OwnerEmail: feed.OwnerEmail,
		CreatedAt:  time.Now().UTC(),
	}

	query := `
		INSERT INTO feeds (name, url, active, owner_email, created_at)
		VALUES (:name, :url, :active, :owner_email, :created_at)
	`
	result, err := r.db.NamedExecContext(ctx, query, sqlFeed)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("create feed %q: %w", feed.Name, domain.ErrAlreadyExists)
		}
		return fmt.Errorf("create feed: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get insert id: %w", err)
	}

	feed.ID = id
	feed.Active = true
	feed.ErrorsCount = 0
	feed.CreatedAt = sqlFeed.CreatedAt
	return nil
}

// GetFeed retrieves a feed by ID, returns domain.ErrNotFound for unknown id
func (r *FeedRepository) GetFeed(ctx context.Context, id int64) (*domain.Feed, error) {
	var sqlFeed feedSQL
	err := r.db.GetContext(ctx, &sqlFeed, "SELECT * FROM feeds WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("feed %d: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get feed: %w", err)
	}
	return r.toDomainFeed(&sqlFeed), nil
}

// GetFeeds retrieves all feeds or only active ones
func (r *FeedRepository) GetFeeds(ctx context.Context, activeOnly bool) ([]domain.Feed, error) {
	query := "SELECT * FROM feeds"
	if activeOnly {
		query += " WHERE active = 1"
	}
	query += " ORDER BY id"

	var sqlFeeds []feedSQL
	if err := r.db.SelectContext(ctx, &sqlFeeds, query); err != nil {
		return nil, fmt.Errorf("get feeds: %w", err)
	}

	feeds := make([]domain.Feed, len(sqlFeeds))
	for i := range sqlFeeds {
		feeds[i] = *r.toDomainFeed(&sqlFeeds[i])
	}
	return feeds, nil
}

// ModifyFeed reads the feed, applies fn and writes the mutable fields back
// (active, errors_count, last_updated) in a single transaction.
// An error returned by fn aborts the transaction and is passed through.
func (r *FeedRepository) ModifyFeed(ctx context.Context, id int64, fn func(f *domain.Feed) error) (*domain.Feed, error) {
	var res *domain.Feed
	err := withLockRetry(ctx, func() error {
		return inTransaction(ctx, r.db, func(tx *sqlx.Tx) error {
			var sqlFeed feedSQL
			err := tx.GetContext(ctx, &sqlFeed, "SELECT * FROM feeds WHERE id = ?", id)
			if errors.Is(err, sql.ErrNoRows) {
				return fmt.Errorf("feed %d: %w", id, domain.ErrNotFound)
			}
			if err != nil {
				return fmt.Errorf("get feed: %w", err)
			}

			feed := r.toDomainFeed(&sqlFeed)
			if err := fn(feed); err != nil {
				return err
			}

			query := `UPDATE feeds SET active = ?, errors_count = ?, last_updated = ? WHERE id = ?`
			if _, err := tx.ExecContext(ctx, query, feed.Active, feed.ErrorsCount, feed.LastUpdated, id); err != nil {
				return fmt.Errorf("update feed: %w", err)
			}
			res = feed
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// SetFeedActive turns scheduled updates on or off. Activation also resets the errors counter.
func (r *FeedRepository) SetFeedActive(ctx context.Context, id int64, active bool) error {
	query := "UPDATE feeds SET active = 0 WHERE id = ?"
	if active {
		query = "UPDATE feeds SET active = 1, errors_count = 0 WHERE id = ?"
	}

	return withLockRetry(ctx, func() error {
		result, err := r.db.ExecContext(ctx, query, id)
		if err != nil {
			return fmt.Errorf("update feed status: %w", err)
		}
		return checkAffected(result, "feed", id)
	})
}

// DeleteFeed removes a feed and all its items
func (r *FeedRepository) DeleteFeed(ctx context.Context, id int64) error {
	return withLockRetry(ctx, func() error {
		return inTransaction(ctx, r.db, func(tx *sqlx.Tx) error {
			if _, err := tx.ExecContext(ctx, "DELETE FROM items WHERE feed_id = ?", id); err != nil {
				return fmt.Errorf("delete feed items: %w", err)
			}
			result, err := tx.ExecContext(ctx, "DELETE FROM feeds WHERE id = ?", id)
			if err != nil {
				return fmt.Errorf("delete feed: %w", err)
			}
			return checkAffected(result, "feed", id)
		})
	})
}

// toDomainFeed converts feedSQL to domain.Feed
func (r *FeedRepository) toDomainFeed(sqlFeed *feedSQL) *domain.Feed {
	return &domain.Feed{
		ID:          sqlFeed.ID,
		Name:        sqlFeed.Name,
		URL:         sqlFeed.URL,
		LastUpdated: sqlFeed.LastUpdated,
		Active:      sqlFeed.Active,
		ErrorsCount: sqlFeed.ErrorsCount,
		OwnerEmail:  sqlFeed.OwnerEmail,
		CreatedAt:   sqlFeed.CreatedAt,
	}
}

// checkAffected returns domain.ErrNotFound if the statement touched no rows
func checkAffected(result sql.Result, kind string, id int64) error {
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%s %d: %w", kind, id, domain.ErrNotFound)
	}
	return nil
}

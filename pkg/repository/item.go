package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"

	"github.com/umputun/feedwatch/pkg/domain"
)

// ItemRepository handles item-related database operations
type ItemRepository struct {
	db *sqlx.DB
}

// itemSQL represents an item for SQL operations
type itemSQL struct {
	ID          int64     `db:"id"`
	FeedID      int64     `db:"feed_id"`
	Title       string    `db:"title"`
	URL         string    `db:"url"`
	RemoteID    string    `db:"remote_id"`
	Unread      bool      `db:"unread"`
	LastUpdated time.Time `db:"last_updated"`
}

// NewItemRepository creates a new item repository
func NewItemRepository(database *sqlx.DB) *ItemRepository {
	return &ItemRepository{db: database}
}

// GetRemoteIDs returns the remote ids of all stored items, across every feed
func (r *ItemRepository) GetRemoteIDs(ctx context.Context) (map[string]struct{}, error) {
	var ids []string
	if err := r.db.SelectContext(ctx, &ids, "SELECT remote_id FROM items"); err != nil {
		return nil, fmt.Errorf("get remote ids: %w", err)
	}
	res := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		res[id] = struct{}{}
	}
	return res, nil
}

// CreateItems inserts items for the feed and sets feed's last_updated to touchedAt,
// all in one transaction. Inserted items get their IDs assigned in place.
func (r *ItemRepository) CreateItems(ctx context.Context, feedID int64, items []domain.Item, touchedAt time.Time) error {
	touchedAt = touchedAt.UTC()
	return withLockRetry(ctx, func() error {
		return inTransaction(ctx, r.db, func(tx *sqlx.Tx) error {
			result, err := tx.ExecContext(ctx, "UPDATE feeds SET last_updated = ? WHERE id = ?", touchedAt, feedID)
			if err != nil {
				return fmt.Errorf("touch feed: %w", err)
			}
			if err := checkAffected(result, "feed", feedID); err != nil {
				return err
			}

			query := `
				INSERT INTO items (feed_id, title, url, remote_id, unread, last_updated)
				VALUES (:feed_id, :title, :url, :remote_id, :unread, :last_updated)
			`
			for i := range items {
				rec := itemSQL{
					FeedID:      feedID,
					Title:       items[i].Title,
					URL:         items[i].URL,
					RemoteID:    items[i].RemoteID,
					Unread:      items[i].Unread,
					LastUpdated: touchedAt,
				}
				res, err := tx.NamedExecContext(ctx, query, rec)
				if err != nil {
					if isUniqueViolation(err) {
						return fmt.Errorf("item %q: %w", items[i].RemoteID, domain.ErrAlreadyExists)
					}
					return fmt.Errorf("insert item: %w", err)
				}
				id, err := res.LastInsertId()
				if err != nil {
					return fmt.Errorf("get insert id: %w", err)
				}
				items[i].ID = id
				items[i].FeedID = feedID
				items[i].LastUpdated = touchedAt
			}
			return nil
		})
	})
}

// GetItem retrieves an item by ID, returns domain.ErrNotFound for unknown id
func (r *ItemRepository) GetItem(ctx context.Context, id int64) (*domain.Item, error) {
	var rec itemSQL
	err := r.db.GetContext(ctx, &rec, "SELECT * FROM items WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("item %d: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get item: %w", err)
	}
	return r.toDomainItem(&rec), nil
}

// GetItems retrieves items matching the filter, newest first
func (r *ItemRepository) GetItems(ctx context.Context, filter domain.ItemFilter) ([]domain.Item, error) {
	qb := sq.Select("*").From("items")
	if filter.FeedID > 0 {
		qb = qb.Where(sq.Eq{"feed_id": filter.FeedID})
	}
	if filter.Unread != nil {
		qb = qb.Where(sq.Eq{"unread": *filter.Unread})
	}
	query, args, err := qb.OrderBy("last_updated DESC", "id DESC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("build items query: %w", err)
	}

	var recs []itemSQL
	if err := r.db.SelectContext(ctx, &recs, query, args...); err != nil {
		return nil, fmt.Errorf("get items: %w", err)
	}

	items := make([]domain.Item, len(recs))
	for i := range recs {
		items[i] = *r.toDomainItem(&recs[i])
	}
	return items, nil
}

// SetItemUnread marks an item as read or unread and refreshes its last_updated
func (r *ItemRepository) SetItemUnread(ctx context.Context, id int64, unread bool) error {
	return withLockRetry(ctx, func() error {
		result, err := r.db.ExecContext(ctx, "UPDATE items SET unread = ?, last_updated = ? WHERE id = ?",
			unread, time.Now().UTC(), id)
		if err != nil {
			return fmt.Errorf("update item: %w", err)
		}
		return checkAffected(result, "item", id)
	})
}

// toDomainItem converts itemSQL to domain.Item
func (r *ItemRepository) toDomainItem(rec *itemSQL) *domain.Item {
	return &domain.Item{
		ID:          rec.ID,
		FeedID:      rec.FeedID,
		Title:       rec.Title,
		URL:         rec.URL,
		RemoteID:    rec.RemoteID,
		Unread:      rec.Unread,
		LastUpdated: rec.LastUpdated,
	}
}

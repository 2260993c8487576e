package server

import (
	"context"

	"github.com/umputun/feedwatch/pkg/domain"
	"github.com/umputun/feedwatch/pkg/repository"
)

// RepositoryAdapter adapts repositories to server.Database interface
type RepositoryAdapter struct {
	repos *repository.Repositories
}

// NewRepositoryAdapter creates a new repository adapter
func NewRepositoryAdapter(repos *repository.Repositories) *RepositoryAdapter {
	return &RepositoryAdapter{repos: repos}
}

// CreateFeed adds a new active feed
func (r *RepositoryAdapter) CreateFeed(ctx context.Context, feed *domain.Feed) error {
	return r.repos.Feed.CreateFeed(ctx, feed)
}

// GetFeed returns a feed by id
func (r *RepositoryAdapter) GetFeed(ctx context.Context, id int64) (*domain.Feed, error) {
	return r.repos.Feed.GetFeed(ctx, id)
}

// GetFeeds returns all or only active feeds
func (r *RepositoryAdapter) GetFeeds(ctx context.Context, activeOnly bool) ([]domain.Feed, error) {
	return r.repos.Feed.GetFeeds(ctx, activeOnly)
}

// DeleteFeed removes a feed and its items
func (r *RepositoryAdapter) DeleteFeed(ctx context.Context, id int64) error {
	return r.repos.Feed.DeleteFeed(ctx, id)
}

// SetFeedActive turns scheduled updates of the feed on or off
func (r *RepositoryAdapter) SetFeedActive(ctx context.Context, id int64, active bool) error {
	return r.repos.Feed.SetFeedActive(ctx, id, active)
}

// GetItem returns an item by id
func (r *RepositoryAdapter) GetItem(ctx context.Context, id int64) (*domain.Item, error) {
	return r.repos.Item.GetItem(ctx, id)
}

// GetItems returns items matching the filter
func (r *RepositoryAdapter) GetItems(ctx context.Context, filter domain.ItemFilter) ([]domain.Item, error) {
	return r.repos.Item.GetItems(ctx, filter)
}

// SetItemUnread marks an item read or unread
func (r *RepositoryAdapter) SetItemUnread(ctx context.Context, id int64, unread bool) error {
	return r.repos.Item.SetItemUnread(ctx, id, unread)
}

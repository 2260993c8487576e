package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/umputun/feedwatch/pkg/domain"
)

// IngestResult describes the outcome of applying a fetched document to a feed
type IngestResult struct {
	New   int           // number of items persisted
	Items []domain.Item // persisted items, with ids assigned
	Stale bool          // document skipped because its update marker predates feed's last update
}

// Ingester diffs fetched documents against known remote ids and persists new entries.
// The existing remote id set passed to Apply may be shared by concurrent callers of the
// same Ingester, all access to it goes through the ingester's lock.
type Ingester struct {
	items ItemStore
	now   func() time.Time
	mu    sync.Mutex
}

// NewIngester makes ingester writing to the given item store
func NewIngester(items ItemStore) *Ingester {
	return &Ingester{items: items, now: time.Now}
}

// Apply persists entries of doc not yet present in existing, together with the feed's
// last_updated touch. Nothing is written if the document is stale or has no new entries.
// On success existing is extended with the new remote ids and feed.LastUpdated is set.
func (in *Ingester) Apply(ctx context.Context, feed *domain.Feed, doc *domain.Document, existing map[string]struct{}) (IngestResult, error) {
	if feed.LastUpdated != nil && !doc.UpdatedAt.IsZero() && doc.UpdatedAt.Before(*feed.LastUpdated) {
		return IngestResult{Stale: true}, nil
	}

	newItems := in.diff(feed.ID, doc.Entries, existing)
	if len(newItems) == 0 {
		return IngestResult{}, nil
	}

	touched := in.now().UTC()
	if err := in.items.CreateItems(ctx, feed.ID, newItems, touched); err != nil {
		return IngestResult{}, &domain.StoreError{Op: "create items", Err: err}
	}

	in.mu.Lock()
	for _, item := range newItems {
		existing[item.RemoteID] = struct{}{}
	}
	in.mu.Unlock()

	feed.LastUpdated = &touched
	return IngestResult{New: len(newItems), Items: newItems}, nil
}

// diff returns unread items for entries missing from existing, each remote id at most once
func (in *Ingester) diff(feedID int64, entries []domain.Entry, existing map[string]struct{}) []domain.Item {
	in.mu.Lock()
	defer in.mu.Unlock()

	var res []domain.Item
	seen := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		if _, ok := existing[e.RemoteID]; ok {
			continue
		}
		if _, ok := seen[e.RemoteID]; ok {
			continue
		}
		seen[e.RemoteID] = struct{}{}
		res = append(res, domain.Item{
			FeedID:   feedID,
			Title:    e.Title,
			URL:      e.Link,
			RemoteID: e.RemoteID,
			Unread:   true,
		})
	}
	return res
}

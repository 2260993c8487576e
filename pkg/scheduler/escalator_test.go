package scheduler

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/feedwatch/pkg/domain"
	"github.com/umputun/feedwatch/pkg/scheduler/mocks"
)

// newFeedStore makes a mocked feed store keeping feeds in memory
func newFeedStore(feeds ...domain.Feed) *mocks.FeedStoreMock {
	var mu sync.Mutex
	data := make(map[int64]domain.Feed, len(feeds))
	order := make([]int64, 0, len(feeds))
	for _, f := range feeds {
		data[f.ID] = f
		order = append(order, f.ID)
	}

	return &mocks.FeedStoreMock{
		GetFeedsFunc: func(ctx context.Context, activeOnly bool) ([]domain.Feed, error) {
			mu.Lock()
			defer mu.Unlock()
			var res []domain.Feed
			for _, id := range order {
				if f := data[id]; !activeOnly || f.Active {
					res = append(res, f)
				}
			}
			return res, nil
		},
		GetFeedFunc: func(ctx context.Context, id int64) (*domain.Feed, error) {
			mu.Lock()
			defer mu.Unlock()
			f, ok := data[id]
			if !ok {
				return nil, domain.ErrNotFound
			}
			return &f, nil
		},
		ModifyFeedFunc: func(ctx context.Context, id int64, fn func(f *domain.Feed) error) (*domain.Feed, error) {
			mu.Lock()
			defer mu.Unlock()
			f, ok := data[id]
			if !ok {
				return nil, domain.ErrNotFound
			}
			if err := fn(&f); err != nil {
				return nil, err
			}
			data[id] = f
			return &f, nil
		},
	}
}

func TestEscalator_RecordFailure(t *testing.T) {
	t.Run("below threshold increments", func(t *testing.T) {
		store := newFeedStore(domain.Feed{ID: 1, Name: "a", Active: true, ErrorsCount: 2, OwnerEmail: "o@example.com"})
		notifier := &mocks.NotifierMock{}
		esc := NewEscalator(EscalatorParams{FeedStore: store, Notifier: notifier, MaxRetries: 3, NotifyEnabled: true})

		outcome, err := esc.RecordFailure(context.Background(), 1)
		require.NoError(t, err)
		assert.Equal(t, Counted, outcome)

		f, err := store.GetFeed(context.Background(), 1)
		require.NoError(t, err)
		assert.Equal(t, 3, f.ErrorsCount)
		assert.True(t, f.Active)
		assert.Empty(t, notifier.SendCalls())
	})

	t.Run("second failure escalates", func(t *testing.T) {
		store := newFeedStore(domain.Feed{ID: 1, Name: "a", Active: true, ErrorsCount: 2, OwnerEmail: "o@example.com"})
		notifier := &mocks.NotifierMock{SendFunc: func(context.Context, string, string) error { return nil }}
		esc := NewEscalator(EscalatorParams{FeedStore: store, Notifier: notifier, MaxRetries: 3, NotifyEnabled: true})

		outcome, err := esc.RecordFailure(context.Background(), 1)
		require.NoError(t, err)
		assert.Equal(t, Counted, outcome)

		outcome, err = esc.RecordFailure(context.Background(), 1)
		require.NoError(t, err)
		assert.Equal(t, Escalated, outcome)

		f, err := store.GetFeed(context.Background(), 1)
		require.NoError(t, err)
		assert.False(t, f.Active)
		assert.Equal(t, 3, f.ErrorsCount, "counter stays elevated")

		require.Len(t, notifier.SendCalls(), 1)
		assert.Equal(t, "o@example.com", notifier.SendCalls()[0].Recipient)
		assert.Equal(t, "Auto update from feed a turned off due to errors", notifier.SendCalls()[0].Message)
	})

	tests := []struct {
		name       string
		enabled    bool
		owner      string
		wantNotify bool
	}{
		{"enabled with owner", true, "o@example.com", true},
		{"enabled without owner", true, "", false},
		{"disabled with owner", false, "o@example.com", false},
		{"disabled without owner", false, "", false},
	}
	for _, tt := range tests {
		t.Run("notification "+tt.name, func(t *testing.T) {
			store := newFeedStore(domain.Feed{ID: 7, Name: "x", Active: true, ErrorsCount: 3, OwnerEmail: tt.owner})
			notifier := &mocks.NotifierMock{SendFunc: func(context.Context, string, string) error { return nil }}
			esc := NewEscalator(EscalatorParams{FeedStore: store, Notifier: notifier, MaxRetries: 3, NotifyEnabled: tt.enabled})

			outcome, err := esc.RecordFailure(context.Background(), 7)
			require.NoError(t, err)
			assert.Equal(t, Escalated, outcome)
			if tt.wantNotify {
				assert.Len(t, notifier.SendCalls(), 1)
			} else {
				assert.Empty(t, notifier.SendCalls())
			}
		})
	}

	t.Run("delivery failure is not an error", func(t *testing.T) {
		store := newFeedStore(domain.Feed{ID: 1, Name: "a", Active: true, ErrorsCount: 5, OwnerEmail: "o@example.com"})
		notifier := &mocks.NotifierMock{SendFunc: func(context.Context, string, string) error { return errors.New("smtp down") }}
		esc := NewEscalator(EscalatorParams{FeedStore: store, Notifier: notifier, MaxRetries: 3, NotifyEnabled: true})

		outcome, err := esc.RecordFailure(context.Background(), 1)
		require.NoError(t, err)
		assert.Equal(t, Escalated, outcome)
		assert.Len(t, notifier.SendCalls(), 1)
	})

	t.Run("publishes deactivation", func(t *testing.T) {
		store := newFeedStore(domain.Feed{ID: 1, Name: "a", Active: true, ErrorsCount: 3})
		pub := &mocks.PublisherMock{PublishFunc: func(context.Context, domain.Event) error { return nil }}
		esc := NewEscalator(EscalatorParams{FeedStore: store, Publisher: pub, MaxRetries: 3})

		_, err := esc.RecordFailure(context.Background(), 1)
		require.NoError(t, err)
		require.Len(t, pub.PublishCalls(), 1)
		ev := pub.PublishCalls()[0].Ev
		assert.Equal(t, domain.EventFeedDeactivated, ev.Type)
		assert.Equal(t, int64(1), ev.FeedID)
		assert.Equal(t, "a", ev.FeedName)
	})

	t.Run("store failure", func(t *testing.T) {
		store := &mocks.FeedStoreMock{
			ModifyFeedFunc: func(context.Context, int64, func(f *domain.Feed) error) (*domain.Feed, error) {
				return nil, errors.New("disk full")
			},
		}
		esc := NewEscalator(EscalatorParams{FeedStore: store, MaxRetries: 3})

		_, err := esc.RecordFailure(context.Background(), 1)
		var storeErr *domain.StoreError
		require.ErrorAs(t, err, &storeErr)
		assert.Equal(t, "record failure", storeErr.Op)
	})
}

func TestOutcome_String(t *testing.T) {
	assert.Equal(t, "counted", Counted.String())
	assert.Equal(t, "escalated", Escalated.String())
	assert.Equal(t, "outcome(5)", Outcome(5).String())
}

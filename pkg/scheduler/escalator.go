package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/feedwatch/pkg/domain"
)

// Outcome of a recorded failure
type Outcome int

// failure outcomes
const (
	Counted   Outcome = iota // errors counter incremented, feed stays active
	Escalated                // feed deactivated
)

func (o Outcome) String() string {
	switch o {
	case Counted:
		return "counted"
	case Escalated:
		return "escalated"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// Escalator counts consecutive feed failures and deactivates feeds crossing the threshold
type Escalator struct {
	feeds         FeedStore
	notifier      Notifier
	publisher     Publisher
	maxRetries    int
	notifyEnabled bool
}

// EscalatorParams defines escalator dependencies and threshold
type EscalatorParams struct {
	FeedStore     FeedStore
	Notifier      Notifier
	Publisher     Publisher // optional
	MaxRetries    int
	NotifyEnabled bool
}

// NewEscalator makes escalator with the given params
func NewEscalator(params EscalatorParams) *Escalator {
	return &Escalator{
		feeds:         params.FeedStore,
		notifier:      params.Notifier,
		publisher:     params.Publisher,
		maxRetries:    params.MaxRetries,
		notifyEnabled: params.NotifyEnabled,
	}
}

// RecordFailure registers a failed update of the feed. If the feed's errors count already
// reached MaxRetries the feed is deactivated and the owner notified after commit,
// otherwise the counter is incremented.
func (e *Escalator) RecordFailure(ctx context.Context, feedID int64) (Outcome, error) {
	outcome := Counted
	feed, err := e.feeds.ModifyFeed(ctx, feedID, func(f *domain.Feed) error {
		if f.ErrorsCount >= e.maxRetries {
			f.Active = false
			outcome = Escalated
			return nil
		}
		f.ErrorsCount++
		outcome = Counted
		return nil
	})
	if err != nil {
		return Counted, &domain.StoreError{Op: "record failure", Err: err}
	}

	if outcome == Counted {
		lgr.Printf("[DEBUG] feed %s failed %d time(s)", feed.Name, feed.ErrorsCount)
		return Counted, nil
	}

	lgr.Printf("[WARN] feed %s deactivated after %d errors", feed.Name, feed.ErrorsCount)
	e.notify(ctx, feed)
	if e.publisher != nil {
		ev := domain.Event{Type: domain.EventFeedDeactivated, FeedID: feed.ID, FeedName: feed.Name, Timestamp: time.Now().UTC()}
		if err := e.publisher.Publish(ctx, ev); err != nil {
			lgr.Printf("[WARN] failed to publish deactivation of feed %s: %v", feed.Name, err)
		}
	}
	return Escalated, nil
}

// notify sends deactivation message to the feed owner, delivery errors are logged only
func (e *Escalator) notify(ctx context.Context, feed *domain.Feed) {
	if !e.notifyEnabled || feed.OwnerEmail == "" || e.notifier == nil {
		return
	}
	msg := fmt.Sprintf("Auto update from feed %s turned off due to errors", feed.Name)
	if err := e.notifier.Send(ctx, feed.OwnerEmail, msg); err != nil {
		lgr.Printf("[WARN] failed to notify %s about feed %s: %v", feed.OwnerEmail, feed.Name, err)
		return
	}
	lgr.Printf("[INFO] sent deactivation notice for feed %s to %s", feed.Name, feed.OwnerEmail)
}

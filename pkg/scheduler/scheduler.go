package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/go-pkgz/repeater/v2"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/umputun/feedwatch/pkg/domain"
)

//go:generate moq -out mocks/feed_store.go -pkg mocks -skip-ensure -fmt goimports . FeedStore
//go:generate moq -out mocks/item_store.go -pkg mocks -skip-ensure -fmt goimports . ItemStore
//go:generate moq -out mocks/fetcher.go -pkg mocks -skip-ensure -fmt goimports . Fetcher
//go:generate moq -out mocks/notifier.go -pkg mocks -skip-ensure -fmt goimports . Notifier
//go:generate moq -out mocks/publisher.go -pkg mocks -skip-ensure -fmt goimports . Publisher

// FeedStore provides access to feed records
type FeedStore interface {
	GetFeeds(ctx context.Context, activeOnly bool) ([]domain.Feed, error)
	GetFeed(ctx context.Context, id int64) (*domain.Feed, error)
	ModifyFeed(ctx context.Context, id int64, fn func(f *domain.Feed) error) (*domain.Feed, error)
}

// ItemStore provides access to item records
type ItemStore interface {
	GetRemoteIDs(ctx context.Context) (map[string]struct{}, error)
	CreateItems(ctx context.Context, feedID int64, items []domain.Item, touchedAt time.Time) error
}

// Fetcher retrieves and parses remote feeds
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*domain.Document, error)
}

// Notifier delivers a text message to a recipient
type Notifier interface {
	Send(ctx context.Context, recipient, message string) error
}

// Publisher emits feed events to external consumers
type Publisher interface {
	Publish(ctx context.Context, ev domain.Event) error
}

// TickReport summarizes a single pass over feeds
type TickReport struct {
	Feeds       int  // feeds processed
	Updated     int  // feeds with at least one new item
	NewItems    int  // items persisted
	Failed      int  // feeds failed to fetch or store
	Deactivated int  // feeds deactivated by escalation
	Skipped     bool // tick skipped because another update was still running
}

// Scheduler periodically updates active feeds and routes failures to the escalator
type Scheduler struct {
	feeds     FeedStore
	items     ItemStore
	fetcher   Fetcher
	publisher Publisher
	ingester  *Ingester
	escalator *Escalator

	updateInterval    time.Duration
	maxWorkers        int
	retryAttempts     int
	retryInitialDelay time.Duration
	retryMaxDelay     time.Duration
	retryJitter       float64

	busy   *semaphore.Weighted // one slot, held by a tick or a forced update
	wg     sync.WaitGroup
	cancel context.CancelFunc
}

// Params defines scheduler dependencies and settings
type Params struct {
	FeedStore FeedStore
	ItemStore ItemStore
	Fetcher   Fetcher
	Notifier  Notifier
	Publisher Publisher // optional, nil disables events

	UpdateInterval time.Duration
	MaxWorkers     int
	MaxRetries     int  // failures tolerated before a feed is deactivated
	NotifyEnabled  bool // send deactivation notices to feed owners

	// tick-level retry of infrastructure failures
	RetryAttempts     int
	RetryInitialDelay time.Duration
	RetryMaxDelay     time.Duration
	RetryJitter       float64
}

// NewScheduler creates a new scheduler instance
func NewScheduler(params Params) *Scheduler {
	if params.UpdateInterval <= 0 {
		params.UpdateInterval = 10 * time.Second
	}
	if params.MaxWorkers <= 0 {
		params.MaxWorkers = 5
	}
	if params.RetryAttempts <= 0 {
		params.RetryAttempts = 3
	}
	if params.RetryInitialDelay <= 0 {
		params.RetryInitialDelay = time.Second
	}
	if params.RetryMaxDelay <= 0 {
		params.RetryMaxDelay = 5 * time.Second
	}

	return &Scheduler{
		feeds:     params.FeedStore,
		items:     params.ItemStore,
		fetcher:   params.Fetcher,
		publisher: params.Publisher,
		ingester:  NewIngester(params.ItemStore),
		escalator: NewEscalator(EscalatorParams{
			FeedStore:     params.FeedStore,
			Notifier:      params.Notifier,
			Publisher:     params.Publisher,
			MaxRetries:    params.MaxRetries,
			NotifyEnabled: params.NotifyEnabled,
		}),
		updateInterval:    params.UpdateInterval,
		maxWorkers:        params.MaxWorkers,
		retryAttempts:     params.RetryAttempts,
		retryInitialDelay: params.RetryInitialDelay,
		retryMaxDelay:     params.RetryMaxDelay,
		retryJitter:       params.RetryJitter,
		busy:              semaphore.NewWeighted(1),
	}
}

// Start begins periodic updates. The first tick runs immediately.
func (s *Scheduler) Start(ctx context.Context) {
	ctx, s.cancel = context.WithCancel(ctx)

	s.wg.Add(1)
	go s.updateWorker(ctx)

	lgr.Printf("[INFO] scheduler started with update interval %v, %d workers", s.updateInterval, s.maxWorkers)
}

// Stop cancels the running tick, if any, and waits for the worker to finish
func (s *Scheduler) Stop() {
	lgr.Printf("[INFO] stopping scheduler...")
	if s.cancel != nil {
		s.cancel()
	}
	s.wg.Wait()
	lgr.Printf("[INFO] scheduler stopped")
}

func (s *Scheduler) updateWorker(ctx context.Context) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.updateInterval)
	defer ticker.Stop()

	// run immediately on start
	s.scheduledTick(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.scheduledTick(ctx)
		}
	}
}

func (s *Scheduler) scheduledTick(ctx context.Context) {
	report, err := s.Tick(ctx)
	if err != nil {
		if ctx.Err() == nil {
			lgr.Printf("[ERROR] tick failed: %v", err)
		}
		return
	}
	if report.Skipped {
		return
	}
	lgr.Printf("[INFO] tick completed: %d feeds, %d updated, %d new items, %d failed, %d deactivated",
		report.Feeds, report.Updated, report.NewItems, report.Failed, report.Deactivated)
}

// Tick updates all active feeds once. Per-feed failures are counted by the escalator and
// never fail the tick. Failures to load feeds or known remote ids are retried with
// exponential backoff and returned once attempts are exhausted.
// A call made while another tick or a forced update is running returns immediately with Skipped set.
func (s *Scheduler) Tick(ctx context.Context) (TickReport, error) {
	if !s.busy.TryAcquire(1) {
		lgr.Printf("[WARN] previous update still running, skipping tick")
		return TickReport{Skipped: true}, nil
	}
	defer s.busy.Release(1)

	retrier := repeater.NewBackoff(s.retryAttempts, s.retryInitialDelay,
		repeater.WithMaxDelay(s.retryMaxDelay), repeater.WithJitter(s.retryJitter))

	var report TickReport
	err := retrier.Do(ctx, func() error {
		feeds, existing, err := s.load(ctx, true)
		if err != nil {
			lgr.Printf("[WARN] failed to start tick: %v", err)
			return err
		}
		report, _ = s.updateFeeds(ctx, feeds, existing, true)
		return nil
	})
	if err != nil {
		return TickReport{}, fmt.Errorf("tick: %w", err)
	}
	return report, nil
}

// ForceUpdate updates a single feed right away, whether it is active or not.
// Errors are returned to the caller and don't count toward the feed's errors.
// Waits for a running tick to finish first.
func (s *Scheduler) ForceUpdate(ctx context.Context, feedID int64) (IngestResult, error) {
	lgr.Printf("[DEBUG] triggering immediate update for feed %d", feedID)
	if err := s.acquire(ctx); err != nil {
		return IngestResult{}, err
	}
	defer s.busy.Release(1)

	feed, err := s.feeds.GetFeed(ctx, feedID)
	if err != nil {
		return IngestResult{}, fmt.Errorf("get feed %d: %w", feedID, err)
	}

	existing, err := s.items.GetRemoteIDs(ctx)
	if err != nil {
		return IngestResult{}, &domain.StoreError{Op: "get remote ids", Err: err}
	}

	return s.updateFeed(ctx, feed, existing)
}

// ForceUpdateAll updates every feed including inactive ones, without escalation.
// Per-feed errors are joined into the returned error. Waits for a running tick to finish first.
func (s *Scheduler) ForceUpdateAll(ctx context.Context) (TickReport, error) {
	if err := s.acquire(ctx); err != nil {
		return TickReport{}, err
	}
	defer s.busy.Release(1)

	feeds, existing, err := s.load(ctx, false)
	if err != nil {
		return TickReport{}, err
	}
	return s.updateFeeds(ctx, feeds, existing, false)
}

// acquire takes the update slot, blocking until it's free or ctx is done
func (s *Scheduler) acquire(ctx context.Context) error {
	if err := s.busy.Acquire(ctx, 1); err != nil {
		return fmt.Errorf("wait for running update: %w", err)
	}
	return nil
}

// load returns feeds to update and remote ids of all stored items
func (s *Scheduler) load(ctx context.Context, activeOnly bool) ([]domain.Feed, map[string]struct{}, error) {
	feeds, err := s.feeds.GetFeeds(ctx, activeOnly)
	if err != nil {
		return nil, nil, &domain.StoreError{Op: "get feeds", Err: err}
	}
	existing, err := s.items.GetRemoteIDs(ctx)
	if err != nil {
		return nil, nil, &domain.StoreError{Op: "get remote ids", Err: err}
	}
	return feeds, existing, nil
}

// updateFeeds processes feeds concurrently, limited by maxWorkers.
// With escalate set failures go to the escalator, otherwise they are collected and returned.
func (s *Scheduler) updateFeeds(ctx context.Context, feeds []domain.Feed, existing map[string]struct{}, escalate bool) (TickReport, error) {
	lgr.Printf("[DEBUG] updating %d feeds", len(feeds))

	var mu sync.Mutex
	var errs []error
	report := TickReport{Feeds: len(feeds)}

	var g errgroup.Group
	g.SetLimit(s.maxWorkers)

	for _, f := range feeds {
		g.Go(func() error {
			res, err := s.updateFeed(ctx, &f, existing)
			if err != nil {
				lgr.Printf("[WARN] failed to update feed %s: %v", f.Name, err)
				outcome := Counted
				if escalate {
					var escErr error
					if outcome, escErr = s.escalator.RecordFailure(ctx, f.ID); escErr != nil {
						lgr.Printf("[ERROR] failed to record failure of feed %s: %v", f.Name, escErr)
					}
				}
				mu.Lock()
				defer mu.Unlock()
				report.Failed++
				if outcome == Escalated {
					report.Deactivated++
				}
				if !escalate {
					errs = append(errs, fmt.Errorf("feed %s: %w", f.Name, err))
				}
				return nil
			}

			mu.Lock()
			defer mu.Unlock()
			if res.New > 0 {
				report.Updated++
				report.NewItems += res.New
			}
			return nil
		})
	}

	_ = g.Wait() // workers never return errors
	return report, errors.Join(errs...)
}

// updateFeed fetches the feed and ingests new entries
func (s *Scheduler) updateFeed(ctx context.Context, f *domain.Feed, existing map[string]struct{}) (IngestResult, error) {
	doc, err := s.fetcher.Fetch(ctx, f.URL)
	if err != nil {
		return IngestResult{}, err
	}

	res, err := s.ingester.Apply(ctx, f, doc, existing)
	if err != nil {
		return res, err
	}

	switch {
	case res.Stale:
		lgr.Printf("[DEBUG] feed %s not changed since %v", f.Name, f.LastUpdated)
	case res.New > 0:
		lgr.Printf("[INFO] added %d new items from feed %s", res.New, f.Name)
		s.publishItems(ctx, f, res.Items)
	}
	return res, nil
}

func (s *Scheduler) publishItems(ctx context.Context, f *domain.Feed, items []domain.Item) {
	if s.publisher == nil {
		return
	}
	ev := domain.Event{Type: domain.EventItemsCreated, FeedID: f.ID, FeedName: f.Name, Items: items, Timestamp: time.Now().UTC()}
	if err := s.publisher.Publish(ctx, ev); err != nil {
		lgr.Printf("[WARN] failed to publish new items of feed %s: %v", f.Name, err)
	}
}

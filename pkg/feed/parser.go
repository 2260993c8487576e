package feed

import (
	"context"
	"errors"
	"fmt"
	"html"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"github.com/mmcdole/gofeed"

	"github.com/umputun/feedwatch/pkg/domain"
)

// Parser fetches RSS/Atom feeds and normalizes them into documents
type Parser struct {
	client    *http.Client
	userAgent string
	policy    *bluemonday.Policy
}

// NewParser creates a new feed parser, timeout bounds every request
func NewParser(timeout time.Duration, userAgent string) *Parser {
	if userAgent == "" {
		userAgent = "feedwatch/1.0"
	}
	return &Parser{
		client: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		userAgent: userAgent,
		policy:    bluemonday.StrictPolicy(),
	}
}

// Fetch retrieves and parses a feed from the given URL.
// All failures are reported as *domain.ParseError.
func (p *Parser) Fetch(ctx context.Context, url string) (*domain.Document, error) {
	body, err := p.fetch(ctx, url)
	if err != nil {
		return nil, &domain.ParseError{URL: url, Err: fmt.Errorf("fetch feed: %w", err)}
	}
	defer body.Close()

	feed, err := gofeed.NewParser().Parse(body)
	if err != nil {
		return nil, &domain.ParseError{URL: url, Err: fmt.Errorf("parse feed: %w", err)}
	}

	// a feed without any marker is accepted, it falls back to entry times or zero
	updatedAt, err := updateMarker(feed)
	if err != nil {
		return nil, &domain.ParseError{URL: url, Err: err}
	}

	doc := &domain.Document{
		UpdatedAt: updatedAt,
		Entries:   make([]domain.Entry, 0, len(feed.Items)),
	}

	for _, item := range feed.Items {
		entry := domain.Entry{
			Title: strings.TrimSpace(html.UnescapeString(p.policy.Sanitize(item.Title))),
			Link:  strings.TrimSpace(item.Link),
		}

		// set remote id
		switch {
		case item.GUID != "":
			entry.RemoteID = item.GUID
		case entry.Link != "":
			entry.RemoteID = entry.Link
		default:
			entry.RemoteID = fmt.Sprintf("%s-%s", feed.Title, entry.Title)
		}

		doc.Entries = append(doc.Entries, entry)
	}

	return doc, nil
}

// updateMarker picks the feed-level update timestamp. A marker present in the feed
// but not parseable is an error, a feed without any marker gets zero time.
func updateMarker(feed *gofeed.Feed) (time.Time, error) {
	switch {
	case feed.UpdatedParsed != nil:
		return feed.UpdatedParsed.UTC(), nil
	case feed.Updated != "":
		return time.Time{}, fmt.Errorf("can't parse feed update time %q", feed.Updated)
	case feed.PublishedParsed != nil:
		return feed.PublishedParsed.UTC(), nil
	case feed.Published != "":
		return time.Time{}, fmt.Errorf("can't parse feed publish time %q", feed.Published)
	}

	// no feed-level marker, use the newest entry
	var latest time.Time
	for _, item := range feed.Items {
		ts := item.UpdatedParsed
		if ts == nil {
			ts = item.PublishedParsed
		}
		if ts != nil && ts.After(latest) {
			latest = *ts
		}
	}
	if latest.IsZero() {
		return time.Time{}, nil
	}
	return latest.UTC(), nil
}

// fetch retrieves content from a URL
func (p *Parser) fetch(ctx context.Context, url string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("User-Agent", p.userAgent)

	// add browser-like headers
	addBrowserHeaders(req)

	resp, err := p.client.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("fetch URL timed out: %w", err)
		}
		return nil, fmt.Errorf("fetch URL: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		_ = resp.Body.Close()
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	return resp.Body, nil
}

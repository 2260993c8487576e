package domain

import "time"

// Feed represents a subscribed syndication source
type Feed struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	URL         string     `json:"url"`
	LastUpdated *time.Time `json:"last_updated"` // last ingestion that produced new items, nil until the first one
	Active      bool       `json:"active"`
	ErrorsCount int        `json:"errors_count"` // consecutive failed fetches, reset only on explicit reactivation
	OwnerEmail  string     `json:"owner_email,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// Document is a fetched and normalized remote feed
type Document struct {
	UpdatedAt time.Time // zero if the feed carries no update marker
	Entries   []Entry
}

// Entry is a single entry of a fetched document
type Entry struct {
	RemoteID string
	Title    string
	Link     string
}

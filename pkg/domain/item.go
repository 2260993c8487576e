package domain

import "time"

// Item represents an entry ingested from a feed
type Item struct {
	ID          int64     `json:"id"`
	FeedID      int64     `json:"feed_id"`
	Title       string    `json:"title"`
	URL         string    `json:"url"`
	RemoteID    string    `json:"remote_id"`
	Unread      bool      `json:"unread"`
	LastUpdated time.Time `json:"last_updated"`
}

// ItemFilter represents filtering criteria for items
type ItemFilter struct {
	FeedID int64 // zero means all feeds
	Unread *bool // nil means both read and unread
}

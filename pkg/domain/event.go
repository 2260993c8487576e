package domain

import "time"

// event types published to the message broker
const (
	EventItemsCreated    = "items.created"
	EventFeedDeactivated = "feed.deactivated"
)

// Event describes a change made by the scheduler
type Event struct {
	Type      string    `json:"type"`
	FeedID    int64     `json:"feed_id"`
	FeedName  string    `json:"feed_name"`
	Items     []Item    `json:"items,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

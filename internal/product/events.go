package product

import (
	"context"
	"time"
)

const (
	EventProductCreated = "ProductCreated"
	EventProductUpdated = "ProductUpdated"
	EventProductDeleted = "ProductDeleted"
)

// Publisher sends a keyed message to the product events topic.
type Publisher interface {
	Publish(ctx context.Context, key string, value any) error
}

type Event struct {
	EventID   string       `json:"event_id"`
	EventType string       `json:"event_type"`
	Payload   EventPayload `json:"payload"`
	Timestamp time.Time    `json:"timestamp"`
}

// EventPayload carries enough for downstream consumers to act without a
// read-back; image URLs let the media service purge assets on delete.
type EventPayload struct {
	ID            string   `json:"id"`
	UserID        string   `json:"user_id"`
	CategoryID    *string  `json:"category_id"`
	SubCategoryID *string  `json:"sub_category_id"`
	Images        []string `json:"images"`
}

// Package queue publishes domain events to downstream consumers
// (payroll export, WhatsApp and e-mail notifiers).
package queue

import (
	"context"
	"time"
)

// Event is the envelope written to the queue.
type Event struct {
	Type       string      `json:"type"`
	Key        string      `json:"key"`
	OccurredAt time.Time   `json:"occurredAt"`
	Payload    interface{} `json:"payload"`
}

type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// NopPublisher discards events. Used when no queue is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, Event) error { return nil }

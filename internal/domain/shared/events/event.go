// Package events carries domain events from committed use cases to
// side-effect handlers such as notifications.
package events

import (
	"context"
	"time"
)

type DomainEvent interface {
	AggregateID() string
	EventType() string
	OccurredAt() time.Time
}

// BaseEvent implements DomainEvent and is embedded by concrete events.
type BaseEvent struct {
	ID   string    `json:"aggregate_id"`
	Type string    `json:"event_type"`
	At   time.Time `json:"occurred_at"`
}

func NewBaseEvent(aggregateID, eventType string) BaseEvent {
	return BaseEvent{ID: aggregateID, Type: eventType, At: time.Now().UTC()}
}

func (e BaseEvent) AggregateID() string {
	return e.ID
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) OccurredAt() time.Time {
	return e.At
}

// Handler reacts to one event. Returned errors are logged by the dispatcher.
type Handler func(ctx context.Context, event DomainEvent) error

type Publisher interface {
	Publish(event DomainEvent) error
}

// NopPublisher drops every event.
type NopPublisher struct{}

func (NopPublisher) Publish(DomainEvent) error { return nil }

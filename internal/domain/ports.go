package domain

import "context"

// EntryRepository defines the persistence contract for generated entries.
// Entries are write-once: Create must never replace an existing ID.
type EntryRepository interface {
	Create(ctx context.Context, entry Entry) error
	GetByID(ctx context.Context, id string) (Entry, error)
}

// EventPublisher defines the contract for emitting domain events.
type EventPublisher interface {
	Publish(ctx context.Context, event Event, entry Entry) error
}

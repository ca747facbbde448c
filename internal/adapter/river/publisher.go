package river

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/riverqueue/river"

	"github.com/dariasel12/palindrome-project/internal/domain"
)

// Compile-time check: Publisher implements domain.EventPublisher.
var _ domain.EventPublisher = (*Publisher)(nil)

// EntryEventJobArgs carries the data needed to process an entry event
// asynchronously. River serializes it as JSON into its job table, so the
// worker never needs to query the entries table.
type EntryEventJobArgs struct {
	Event      string `json:"event"`
	EntryID    string `json:"entry_id"`
	Result     string `json:"result"`
	Length     int    `json:"length"`
	Palindrome bool   `json:"palindrome"`
}

// Kind returns the unique job type identifier used by River's job routing.
func (EntryEventJobArgs) Kind() string { return "entry.event" }

// Client is the River client type parameterized for SQLite (*sql.Tx).
type Client = river.Client[*sql.Tx]

// Publisher implements domain.EventPublisher by enqueuing River jobs.
type Publisher struct {
	client *Client
}

// NewPublisher creates a publisher backed by the given River client.
func NewPublisher(client *Client) *Publisher {
	return &Publisher{client: client}
}

// Publish enqueues an entry event as an async job in River.
func (p *Publisher) Publish(ctx context.Context, event domain.Event, entry domain.Entry) error {
	_, err := p.client.Insert(ctx, EntryEventJobArgs{
		Event:      string(event),
		EntryID:    entry.ID,
		Result:     entry.Result,
		Length:     len(entry.Result),
		Palindrome: domain.IsPalindrome(entry.Result),
	}, nil)
	if err != nil {
		return fmt.Errorf("enqueuing entry event job: %w", err)
	}
	return nil
}

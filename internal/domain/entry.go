package domain

import "time"

// Event names something that happened to an entry.
type Event string

const (
	EventEntryCreated Event = "entry_created"
)

// Entry is a generated string persisted under a unique identifier.
// It is created once and never changes afterwards.
type Entry struct {
	ID        string
	Result    string
	CreatedAt time.Time
}

// NewEntry creates an entry stamped with the current UTC time.
func NewEntry(id, result string) Entry {
	return Entry{
		ID:        id,
		Result:    result,
		CreatedAt: time.Now().UTC(),
	}
}

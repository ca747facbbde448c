package memory

import (
	"context"
	"sync"

	"github.com/dariasel12/palindrome-project/internal/domain"
)

// Compile-time check: EntryRepository implements domain.EntryRepository.
var _ domain.EntryRepository = (*EntryRepository)(nil)

// EntryRepository keeps entries in a map. Contents are lost on restart.
type EntryRepository struct {
	mu      sync.RWMutex
	entries map[string]domain.Entry
}

// New returns an empty repository.
func New() *EntryRepository {
	return &EntryRepository{entries: make(map[string]domain.Entry)}
}

func (r *EntryRepository) Create(_ context.Context, e domain.Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.entries[e.ID]; exists {
		return domain.ErrEntryConflict
	}
	r.entries[e.ID] = e
	return nil
}

func (r *EntryRepository) GetByID(_ context.Context, id string) (domain.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.entries[id]
	if !ok {
		return domain.Entry{}, domain.ErrEntryNotFound
	}
	return e, nil
}

// Len returns the number of stored entries.
func (r *EntryRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

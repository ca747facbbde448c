package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/dariasel12/palindrome-project/internal/domain"
)

// createAttempts bounds retries on ID collisions, which UUIDv4 makes
// practically unreachable.
const createAttempts = 3

// EntryService generates strings and stores them as entries.
type EntryService struct {
	repo      domain.EntryRepository
	publisher domain.EventPublisher
}

// NewEntryService creates a service with the given adapters.
func NewEntryService(repo domain.EntryRepository, publisher domain.EventPublisher) *EntryService {
	return &EntryService{
		repo:      repo,
		publisher: publisher,
	}
}

// Generate produces a palindrome or non-palindrome of the given length and
// stores it under a fresh identifier.
func (s *EntryService) Generate(ctx context.Context, palindrome bool, length int) (domain.Entry, error) {
	result, err := domain.Generate(palindrome, length)
	if err != nil {
		return domain.Entry{}, err
	}
	return s.Create(ctx, result)
}

// Create persists result under a newly minted identifier and publishes a
// creation event.
func (s *EntryService) Create(ctx context.Context, result string) (domain.Entry, error) {
	var entry domain.Entry
	for attempt := 1; ; attempt++ {
		id, err := generateID()
		if err != nil {
			return domain.Entry{}, fmt.Errorf("generating entry id: %w", err)
		}

		entry = domain.NewEntry(id, result)

		err = s.repo.Create(ctx, entry)
		if err == nil {
			break
		}
		if !errors.Is(err, domain.ErrEntryConflict) || attempt == createAttempts {
			return domain.Entry{}, fmt.Errorf("creating entry: %w", err)
		}
	}

	if err := s.publisher.Publish(ctx, domain.EventEntryCreated, entry); err != nil {
		return domain.Entry{}, fmt.Errorf("publishing creation event: %w", err)
	}

	return entry, nil
}

// Get returns the entry stored under id.
func (s *EntryService) Get(ctx context.Context, id string) (domain.Entry, error) {
	if id == "" {
		return domain.Entry{}, domain.ErrEntryNotFound
	}
	return s.repo.GetByID(ctx, id)
}

package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/dariasel12/palindrome-project/internal/domain"
)

const keyPrefix = "entry:"

// Compile-time check: EntryRepository implements domain.EntryRepository.
var _ domain.EntryRepository = (*EntryRepository)(nil)

// EntryRepository stores each entry as a JSON value under "entry:<id>".
// Keys carry no TTL; entries live until the database is flushed.
type EntryRepository struct {
	client *goredis.Client
}

type storedEntry struct {
	Result    string    `json:"result"`
	CreatedAt time.Time `json:"created_at"`
}

// New wraps an existing client.
func New(client *goredis.Client) *EntryRepository {
	return &EntryRepository{client: client}
}

// Dial parses a redis:// URL, connects and pings the server.
func Dial(ctx context.Context, url string) (*EntryRepository, error) {
	opts, err := goredis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parsing redis url: %w", err)
	}

	client := goredis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("pinging redis: %w", err)
	}

	return New(client), nil
}

// Close closes the underlying client.
func (r *EntryRepository) Close() error {
	return r.client.Close()
}

// Create writes the entry with SETNX so an existing ID is never replaced.
func (r *EntryRepository) Create(ctx context.Context, e domain.Entry) error {
	payload, err := json.Marshal(storedEntry{Result: e.Result, CreatedAt: e.CreatedAt.UTC()})
	if err != nil {
		return fmt.Errorf("encoding entry: %w", err)
	}

	ok, err := r.client.SetNX(ctx, keyPrefix+e.ID, payload, 0).Result()
	if err != nil {
		return fmt.Errorf("storing entry in redis: %w", err)
	}
	if !ok {
		return domain.ErrEntryConflict
	}
	return nil
}

func (r *EntryRepository) GetByID(ctx context.Context, id string) (domain.Entry, error) {
	if id == "" {
		return domain.Entry{}, domain.ErrEntryNotFound
	}

	raw, err := r.client.Get(ctx, keyPrefix+id).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return domain.Entry{}, domain.ErrEntryNotFound
		}
		return domain.Entry{}, fmt.Errorf("reading entry from redis: %w", err)
	}

	var stored storedEntry
	if err := json.Unmarshal(raw, &stored); err != nil {
		return domain.Entry{}, fmt.Errorf("decoding entry %q: %w", id, err)
	}

	return domain.Entry{
		ID:        id,
		Result:    stored.Result,
		CreatedAt: stored.CreatedAt,
	}, nil
}

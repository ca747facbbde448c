package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/pressly/goose/v3"

	"github.com/dariasel12/palindrome-project/internal/domain"

	_ "modernc.org/sqlite" // Register SQLite driver.
)

//go:embed migrations/*.sql
var migrations embed.FS

// Compile-time check: EntryRepository implements domain.EntryRepository.
var _ domain.EntryRepository = (*EntryRepository)(nil)

// EntryRepository implements domain.EntryRepository using SQLite.
type EntryRepository struct {
	db *sql.DB
}

// New opens a SQLite database, runs migrations, and returns a ready repository.
func New(dataSourceName string) (*EntryRepository, error) {
	db, err := sql.Open("sqlite", dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// SQLite allows a single writer; one pooled connection serializes
	// concurrent inserts instead of failing them with SQLITE_BUSY. An
	// in-memory database also exists per connection, so it needs the pin.
	db.SetMaxOpenConns(1)

	// Enable WAL mode for better concurrent read performance. The busy
	// timeout covers other processes holding the write lock.
	for _, pragma := range []string{"PRAGMA journal_mode=WAL", "PRAGMA busy_timeout=5000"} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("executing %q: %w", pragma, err)
		}
	}

	return NewFromDB(db)
}

// NewFromDB wraps an existing database connection, runs migrations, and returns a ready repository.
// Use this when the *sql.DB has been pre-configured (e.g., with otelsql instrumentation).
func NewFromDB(db *sql.DB) (*EntryRepository, error) {
	if err := runMigrations(db); err != nil {
		return nil, err
	}

	return &EntryRepository{db: db}, nil
}

// Close closes the underlying database connection.
func (r *EntryRepository) Close() error {
	return r.db.Close()
}

// DB returns the underlying database connection for use by other adapters (e.g., river).
func (r *EntryRepository) DB() *sql.DB {
	return r.db
}

// SetMigrationLogger routes goose output through l. Call before New.
func SetMigrationLogger(l goose.Logger) {
	goose.SetLogger(l)
}

func runMigrations(db *sql.DB) error {
	goose.SetBaseFS(migrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("setting goose dialect: %w", err)
	}

	if err := goose.Up(db, "migrations"); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}

	return nil
}

const timeFormat = time.RFC3339Nano

// Create inserts the entry. A duplicate ID yields domain.ErrEntryConflict;
// the existing row is left untouched.
func (r *EntryRepository) Create(ctx context.Context, e domain.Entry) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO entries (id, result, created_at) VALUES (?, ?, ?)`,
		e.ID, e.Result, e.CreatedAt.UTC().Format(timeFormat),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEntryConflict
		}
		return fmt.Errorf("inserting entry: %w", err)
	}
	return nil
}

func (r *EntryRepository) GetByID(ctx context.Context, id string) (domain.Entry, error) {
	if id == "" {
		return domain.Entry{}, domain.ErrEntryNotFound
	}

	var e domain.Entry
	var createdAt string

	err := r.db.QueryRowContext(ctx,
		`SELECT id, result, created_at FROM entries WHERE id = ?`, id,
	).Scan(&e.ID, &e.Result, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Entry{}, domain.ErrEntryNotFound
		}
		return domain.Entry{}, fmt.Errorf("scanning entry: %w", err)
	}

	e.CreatedAt, err = time.Parse(timeFormat, createdAt)
	if err != nil {
		return domain.Entry{}, fmt.Errorf("parsing created_at %q: %w", createdAt, err)
	}

	return e, nil
}

// isUniqueViolation checks if a SQLite error is a UNIQUE or PRIMARY KEY constraint violation.
func isUniqueViolation(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "PRIMARY KEY constraint failed")
}

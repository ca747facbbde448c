package domain_test

import (
	"testing"
	"time"

	"github.com/dariasel12/palindrome-project/internal/domain"
)

func TestNewEntry(t *testing.T) {
	before := time.Now().UTC()
	entry := domain.NewEntry("id-1", "abcba")
	after := time.Now().UTC()

	if entry.ID != "id-1" {
		t.Errorf("ID = %q, want %q", entry.ID, "id-1")
	}
	if entry.Result != "abcba" {
		t.Errorf("Result = %q, want %q", entry.Result, "abcba")
	}
	if entry.CreatedAt.Before(before) || entry.CreatedAt.After(after) {
		t.Errorf("CreatedAt = %v, want between %v and %v", entry.CreatedAt, before, after)
	}
}

package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for simple conditions without extra context.
var (
	ErrEntryNotFound        = errors.New("entry not found")
	ErrEntryConflict        = errors.New("entry id already exists")
	ErrInvalidLength        = errors.New("invalid length")
	ErrImpossibleConstraint = errors.New("a non-palindrome of length 1 does not exist")
)

// LengthError is returned when a requested length is outside [MinLength, MaxLength].
type LengthError struct {
	Length int
}

func (e *LengthError) Error() string {
	return fmt.Sprintf("length %d is out of range [%d, %d]", e.Length, MinLength, MaxLength)
}

// Is makes errors.Is(err, ErrInvalidLength) match any *LengthError.
func (e *LengthError) Is(target error) bool {
	return target == ErrInvalidLength
}

package domain

import (
	"math/rand/v2"
)

const (
	MinLength     = 1
	MaxLength     = 30
	DefaultLength = 6

	alphabet = "abcdefghijklmnopqrstuvwxyz"
)

// Generate returns a random lowercase string of the given length that is a
// palindrome when palindrome is true and is not one otherwise.
//
// Palindromes are built from a random half mirrored around an optional
// random centre. Non-palindromes are found by rejection sampling, which has
// no solution for length 1; that case fails with ErrImpossibleConstraint.
func Generate(palindrome bool, length int) (string, error) {
	if length < MinLength || length > MaxLength {
		return "", &LengthError{Length: length}
	}

	if palindrome {
		return generatePalindrome(length), nil
	}

	if length == 1 {
		return "", ErrImpossibleConstraint
	}

	for {
		s := randomString(length)
		if !IsPalindrome(s) {
			return s, nil
		}
	}
}

// IsPalindrome reports whether s reads the same forwards and backwards.
func IsPalindrome(s string) bool {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		if s[i] != s[j] {
			return false
		}
	}
	return true
}

func generatePalindrome(length int) string {
	half := length / 2
	out := make([]byte, length)
	for i := 0; i < half; i++ {
		c := randomLetter()
		out[i] = c
		out[length-1-i] = c
	}
	if length%2 == 1 {
		out[half] = randomLetter()
	}
	return string(out)
}

func randomString(length int) string {
	out := make([]byte, length)
	for i := range out {
		out[i] = randomLetter()
	}
	return string(out)
}

func randomLetter() byte {
	return alphabet[rand.IntN(len(alphabet))]
}

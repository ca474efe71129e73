package models

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// MaxTitleLength is the longest title accepted for columns and cards
const MaxTitleLength = 100

// Error taxonomy shared by every store implementation
var (
	// ErrNotFound indicates the referenced entity no longer exists
	ErrNotFound = errors.New("not found")

	// ErrUnavailable indicates the store could not be reached (transient network failure)
	ErrUnavailable = errors.New("store unavailable")

	// ErrValidation indicates the store rejected the input
	ErrValidation = errors.New("validation failed")

	// ErrEmptyTitle indicates a blank title after trimming
	ErrEmptyTitle = fmt.Errorf("title cannot be empty: %w", ErrValidation)

	// ErrTitleTooLong indicates the title exceeds MaxTitleLength
	ErrTitleTooLong = fmt.Errorf("title cannot exceed %d characters: %w", MaxTitleLength, ErrValidation)
)

// FetchError is returned when the board could not be loaded at all.
// It is the only failure the UI treats as blocking.
type FetchError struct {
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("failed to load board: %v", e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// IsFetchError reports whether err is (or wraps) a FetchError
func IsFetchError(err error) bool {
	var fe *FetchError
	return errors.As(err, &fe)
}

// NormalizeTitle trims the title and checks its length
func NormalizeTitle(title string) (string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", ErrEmptyTitle
	}
	if utf8.RuneCountInString(title) > MaxTitleLength {
		return "", ErrTitleTooLong
	}
	return title, nil
}

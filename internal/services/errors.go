package services

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput means the caller sent a missing or malformed URL.
	ErrInvalidInput = errors.New("invalid url")
	// ErrNotFound means the short code is unknown or deactivated.
	ErrNotFound = errors.New("short url not found")
	// ErrStorage wraps every failed or rolled back database operation.
	ErrStorage = errors.New("storage error")
	// ErrCodeSpaceExhausted is returned when no free code was found up to the
	// widest code length.
	ErrCodeSpaceExhausted = fmt.Errorf("%w: no free short code", ErrStorage)
)

func storageError(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrStorage, op, err)
}

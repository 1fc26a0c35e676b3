package app

import "errors"

var (
	// ErrAlreadyExists is returned when registration hits a duplicate email.
	ErrAlreadyExists = errors.New("user already registered with given email")

	// ErrNotFound covers unknown users, failed credential pairs, and missing
	// gallery records alike; handlers map it to 404.
	ErrNotFound = errors.New("record not found")

	// ErrEmptyImage is returned for zero-length upload payloads.
	ErrEmptyImage = errors.New("no image found")

	// ErrInvalidInput wraps request validation failures; handlers map it to 400.
	ErrInvalidInput = errors.New("invalid input")
)

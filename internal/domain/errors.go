package domain

import "errors"

var (
	// ErrTimeout is returned when a provider call exceeds its deadline
	ErrTimeout = errors.New("provider request timed out")

	// ErrProviderUnavailable is returned on non-2xx responses or network failure
	ErrProviderUnavailable = errors.New("provider unavailable")

	// ErrParseFailure is returned when a provider payload cannot be decoded
	ErrParseFailure = errors.New("malformed provider payload")

	// ErrNotFound is returned when a barcode or id lookup misses
	ErrNotFound = errors.New("item not found")

	// ErrInvalidInput is returned for short queries and malformed item ids
	ErrInvalidInput = errors.New("invalid input")

	// ErrInternal is returned for unexpected failures during aggregation
	ErrInternal = errors.New("internal error")

	// ErrCacheMiss is returned when data is not found in cache
	ErrCacheMiss = errors.New("cache miss")
)

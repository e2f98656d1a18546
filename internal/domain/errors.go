package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidRequest is returned when request parameters or entity fields are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrNotFound is returned when a referenced entity does not exist
	ErrNotFound = errors.New("resource not found")

	// ErrProductNotFound is returned when a food cannot be found in USDA database
	ErrProductNotFound = fmt.Errorf("%w: food not found in USDA database", ErrNotFound)

	// ErrUSDAAPIFailure is returned when USDA API request fails
	ErrUSDAAPIFailure = errors.New("USDA API request failed")

	// ErrRateLimited is returned when rate limit is exceeded
	ErrRateLimited = errors.New("rate limit exceeded")

	// ErrCacheMiss is returned when data is not found in cache
	ErrCacheMiss = errors.New("cache miss")

	// ErrCacheUnavailable is returned when cache service is unavailable
	ErrCacheUnavailable = errors.New("cache service unavailable")

	// ErrSourceDisabled is returned when a search targets a source switched off in configuration
	ErrSourceDisabled = errors.New("food source disabled")
)

// Invalidf wraps ErrInvalidRequest with a formatted detail message
func Invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidRequest, fmt.Sprintf(format, args...))
}

// NotFoundf wraps ErrNotFound with a formatted detail message
func NotFoundf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrNotFound, fmt.Sprintf(format, args...))
}

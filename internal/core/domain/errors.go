package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUploadRejected indicates the provider accepted the request but
	// returned no operation handle. The upload cannot be tracked and is
	// treated as permanently failed.
	ErrUploadRejected = errors.New("upload rejected: no operation handle returned")

	// ErrEmptyBatch indicates an upload session was started with no files.
	ErrEmptyBatch = errors.New("upload batch is empty")

	// ErrProviderUnavailable indicates the index store provider is not
	// configured. Listing falls back to the local cache.
	ErrProviderUnavailable = errors.New("index store provider unavailable")
)

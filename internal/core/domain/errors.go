package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrIndexUnavailable indicates the full-text index is not configured.
	ErrIndexUnavailable = errors.New("segment index unavailable")

	// ErrStoreUnavailable indicates the transcript record store is not
	// configured or its directory does not exist.
	ErrStoreUnavailable = errors.New("transcript store unavailable")

	// ErrBuildInProgress indicates an index build is already running.
	ErrBuildInProgress = errors.New("index build in progress")
)

package backfill

import "errors"

var (
	// ErrRepositoryRequired is returned when a backfill repository is not provided.
	ErrRepositoryRequired = errors.New("backfill repository required")

	// ErrAIProviderRequired is returned when an AI provider is not provided.
	ErrAIProviderRequired = errors.New("AI provider required")

	// ErrInvalidMaxAttempts is returned when retry is configured with
	// a non-positive attempt count.
	ErrInvalidMaxAttempts = errors.New("max attempts must be positive")
)

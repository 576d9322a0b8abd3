package warmup

import "errors"

var (
	// ErrEmbedderRequired is returned when a Warmer is created without an embedder.
	ErrEmbedderRequired = errors.New("embedder required")

	// ErrInvalidAttempts is returned when a retry policy allows no attempts.
	ErrInvalidAttempts = errors.New("retry attempts must be greater than 0")

	// ErrInvalidConfig is returned for non-positive batch sizes or worker counts.
	ErrInvalidConfig = errors.New("invalid warm-up configuration")
)

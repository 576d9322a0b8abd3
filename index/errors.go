package index

import "errors"

var (
	// ErrDimensionMismatch is returned when vectors are missing or have
	// inconsistent dimensionality, including an empty input batch.
	ErrDimensionMismatch = errors.New("index dimension mismatch")

	// ErrCountMismatch is returned when the embedder returns a different
	// number of vectors than texts it was given.
	ErrCountMismatch = errors.New("embedding count does not match record count")

	// ErrCollaboratorUnavailable wraps failures of the embedding service.
	ErrCollaboratorUnavailable = errors.New("embedding collaborator unavailable")
)

package answer

import "errors"

var (
	// ErrRetrieverRequired is returned when a Service is created without a retriever.
	ErrRetrieverRequired = errors.New("retriever required")

	// ErrEmptyQuestion is returned when the question is blank.
	ErrEmptyQuestion = errors.New("question cannot be empty")

	// ErrNoComposer is recorded in a Response when no composer is configured.
	ErrNoComposer = errors.New("no answer composer configured")
)

package ai

import "context"

// Embedder generates vector embeddings from text for semantic similarity search.
// Implementations must be thread-safe for concurrent use.
type Embedder interface {
	// EmbedText generates a vector embedding for a single text string.
	EmbedText(ctx context.Context, text string) ([]float32, error)

	// EmbedTexts generates vector embeddings for multiple text strings in a batch.
	// The returned slice contains embeddings in the same order as the input texts.
	// Returns an error if any embedding generation fails.
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// ModelNamer is implemented by embedders that know which model produces their
// vectors. Vectors from different models are not comparable, so cached
// embeddings are keyed by this name.
type ModelNamer interface {
	Model() string
}

// AnswerComposer turns retrieved legal provisions into a natural-language answer.
// Implementations must be thread-safe for concurrent use.
type AnswerComposer interface {
	// ComposeAnswer answers question using only the supplied context, which is
	// the text of the retrieved articles. Network and service failures are
	// returned as errors; callers are expected to fall back to raw results.
	ComposeAnswer(ctx context.Context, question, context string) (string, error)
}

// AIProvider aggregates AI services for convenient initialization and lifecycle management.
type AIProvider interface {
	// Embedder returns the text embedding service.
	Embedder() Embedder

	// AnswerComposer returns the answer composition service.
	AnswerComposer() AnswerComposer

	// Close releases resources held by the provider and its services.
	// After Close is called, the provider and its services should not be used.
	Close() error
}

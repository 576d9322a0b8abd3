// Package mock provides test double implementations of AI service interfaces.
//
// MockEmbedder, MockAnswerComposer and MockProvider let tests run without an
// embedding server or a language model.
//
//	embedder := mock.NewMockEmbedder()
//	embedder.Vectors = map[string][]float32{
//	    "kedaulatan rakyat": {0, 0},
//	}
//
//	composer := mock.NewMockAnswerComposer()
//	composer.ComposeAnswerFunc = func(ctx context.Context, q, c string) (string, error) {
//	    return "", errors.New("connection refused")
//	}
//
// Without injected behavior MockEmbedder returns deterministic unit vectors
// derived from a hash of the text, and MockAnswerComposer echoes the question.
// All mocks are safe for concurrent use.
package mock

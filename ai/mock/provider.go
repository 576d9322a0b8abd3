package mock

import "github.com/poiesic/hukumpedia/ai"

// MockProvider is a test double for ai.AIProvider.
type MockProvider struct {
	embedder *MockEmbedder
	composer *MockAnswerComposer
	closed   bool
}

// NewMockProvider creates a provider with default mock services.
func NewMockProvider() ai.AIProvider {
	return NewMockProviderWithServices(NewMockEmbedder(), NewMockAnswerComposer())
}

// NewMockProviderWithServices creates a provider around the given mocks.
func NewMockProviderWithServices(embedder *MockEmbedder, composer *MockAnswerComposer) *MockProvider {
	return &MockProvider{
		embedder: embedder,
		composer: composer,
	}
}

func (p *MockProvider) Embedder() ai.Embedder {
	return p.embedder
}

func (p *MockProvider) AnswerComposer() ai.AnswerComposer {
	return p.composer
}

func (p *MockProvider) Close() error {
	p.closed = true
	return nil
}

// Closed reports whether Close was called.
func (p *MockProvider) Closed() bool {
	return p.closed
}

// GetMockEmbedder returns the concrete embedder for assertions.
func (p *MockProvider) GetMockEmbedder() *MockEmbedder {
	return p.embedder
}

// GetMockComposer returns the concrete composer for assertions.
func (p *MockProvider) GetMockComposer() *MockAnswerComposer {
	return p.composer
}

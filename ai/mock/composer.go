package mock

import (
	"context"
	"fmt"
	"sync"
)

// MockAnswerComposer is a test double for ai.AnswerComposer.
type MockAnswerComposer struct {
	// ComposeAnswerFunc is called by ComposeAnswer if set.
	ComposeAnswerFunc func(ctx context.Context, question, context string) (string, error)

	mu          sync.Mutex
	callCount   int
	lastContext string
}

// NewMockAnswerComposer creates a new mock composer with default behavior.
func NewMockAnswerComposer() *MockAnswerComposer {
	return &MockAnswerComposer{}
}

// ComposeAnswer returns the injected result, or an answer echoing the question.
func (m *MockAnswerComposer) ComposeAnswer(ctx context.Context, question, excerpts string) (string, error) {
	m.mu.Lock()
	m.callCount++
	m.lastContext = excerpts
	m.mu.Unlock()

	if m.ComposeAnswerFunc != nil {
		return m.ComposeAnswerFunc(ctx, question, excerpts)
	}
	return fmt.Sprintf("Jawaban untuk: %s", question), nil
}

// CallCount returns the number of ComposeAnswer calls.
func (m *MockAnswerComposer) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.callCount
}

// LastContext returns the context passed to the most recent call.
func (m *MockAnswerComposer) LastContext() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastContext
}

// Reset clears the call history and injected behavior.
func (m *MockAnswerComposer) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.callCount = 0
	m.lastContext = ""
	m.ComposeAnswerFunc = nil
}

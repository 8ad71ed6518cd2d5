package analysis

import (
	"context"
	"sync"
)

// MockCompletion is a canned result for the MockProvider.
type MockCompletion struct {
	Text string
	Err  error
}

// MockCall records one Complete invocation.
type MockCall struct {
	System string
	User   string
}

// MockProvider is a deterministic Provider for testing. It returns
// canned completions in FIFO order and records all prompts.
type MockProvider struct {
	mu          sync.Mutex
	completions []MockCompletion
	Calls       []MockCall
}

// NewMockProvider creates a MockProvider with the given canned results.
// Once the queue is exhausted, Complete returns an empty string.
func NewMockProvider(completions ...MockCompletion) *MockProvider {
	return &MockProvider{completions: completions}
}

func (m *MockProvider) Complete(_ context.Context, system, user string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, MockCall{System: system, User: user})

	if len(m.completions) == 0 {
		return "", nil
	}
	c := m.completions[0]
	m.completions = m.completions[1:]
	return c.Text, c.Err
}

func (m *MockProvider) ModelID() string {
	return "mock"
}

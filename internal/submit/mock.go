package submit

import (
	"context"
	"sync"
)

// MockSink is a deterministic Sink for testing. It returns canned
// errors in FIFO order and records every payload it receives.
type MockSink struct {
	mu    sync.Mutex
	errs  []error
	Calls []Payload
}

// NewMockSink creates a MockSink returning the given errors in order.
// Once the queue is exhausted every Submit succeeds.
func NewMockSink(errs ...error) *MockSink {
	return &MockSink{errs: errs}
}

func (m *MockSink) Submit(_ context.Context, p Payload) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, p)

	if len(m.errs) == 0 {
		return nil
	}
	err := m.errs[0]
	m.errs = m.errs[1:]
	return err
}

// CallCount returns how many submissions were attempted.
func (m *MockSink) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

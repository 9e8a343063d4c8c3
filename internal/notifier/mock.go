package notifier

import (
	"context"
	"sync"
)

// Mock is a mock implementation of the Notifier interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu sync.Mutex

	SendMatchNotificationFunc func(ctx context.Context, event MatchEvent) error

	// Call records
	SendMatchNotificationCalls []MatchEvent
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{}
}

// Reset clears all call records.
func (m *Mock) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendMatchNotificationCalls = nil
}

func (m *Mock) SendMatchNotification(ctx context.Context, event MatchEvent) error {
	m.mu.Lock()
	m.SendMatchNotificationCalls = append(m.SendMatchNotificationCalls, event)
	m.mu.Unlock()
	if m.SendMatchNotificationFunc != nil {
		return m.SendMatchNotificationFunc(ctx, event)
	}
	return nil
}

// Calls returns a copy of the recorded events.
func (m *Mock) Calls() []MatchEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]MatchEvent(nil), m.SendMatchNotificationCalls...)
}

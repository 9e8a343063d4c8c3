package admin

import (
	"context"
	"sync"
)

// MockService is a mock implementation of the AdminService interface for
// testing. It is safe for concurrent use.
type MockService struct {
	mu sync.Mutex

	AuthenticateFunc func(ctx context.Context, username, password string) (*Identity, error)
	CreateFunc       func(ctx context.Context, username, password, name string) (int64, error)
	DeleteFunc       func(ctx context.Context, id int64) error
	ListFunc         func(ctx context.Context) ([]Admin, error)
	CountFunc        func(ctx context.Context) (int, error)
	LogFunc          func(ctx context.Context, adminID int64, action string) error
	RecentLogsFunc   func(ctx context.Context) ([]LogEntry, error)

	// Call records
	LogCalls []struct {
		AdminID int64
		Action  string
	}
}

// NewMock creates a new mock instance.
func NewMock() *MockService {
	return &MockService{}
}

func (m *MockService) Authenticate(ctx context.Context, username, password string) (*Identity, error) {
	if m.AuthenticateFunc != nil {
		return m.AuthenticateFunc(ctx, username, password)
	}
	return &Identity{ID: 1, Username: username, Name: username}, nil
}

func (m *MockService) Create(ctx context.Context, username, password, name string) (int64, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, username, password, name)
	}
	return 1, nil
}

func (m *MockService) Delete(ctx context.Context, id int64) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *MockService) List(ctx context.Context) ([]Admin, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return []Admin{}, nil
}

func (m *MockService) Count(ctx context.Context) (int, error) {
	if m.CountFunc != nil {
		return m.CountFunc(ctx)
	}
	return 1, nil
}

func (m *MockService) Log(ctx context.Context, adminID int64, action string) error {
	m.mu.Lock()
	m.LogCalls = append(m.LogCalls, struct {
		AdminID int64
		Action  string
	}{adminID, action})
	m.mu.Unlock()
	if m.LogFunc != nil {
		return m.LogFunc(ctx, adminID, action)
	}
	return nil
}

func (m *MockService) RecentLogs(ctx context.Context) ([]LogEntry, error) {
	if m.RecentLogsFunc != nil {
		return m.RecentLogsFunc(ctx)
	}
	return []LogEntry{}, nil
}

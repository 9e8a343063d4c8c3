package club

import (
	"context"
	"sync"
	"time"
)

// MockStore is a mock implementation of the ClubStore interface for testing.
// It is safe for concurrent use.
type MockStore struct {
	mu sync.Mutex

	PingFunc              func(ctx context.Context) error
	ListPlayersFunc       func(ctx context.Context) ([]Player, error)
	AddPlayerFunc         func(ctx context.Context, name string) (int64, error)
	DeletePlayerFunc      func(ctx context.Context, id int64) error
	CreateMatchFunc       func(ctx context.Context, m NewMatch) (int64, error)
	ReplaceMatchFunc      func(ctx context.Context, id int64, m NewMatch) error
	DeleteMatchFunc       func(ctx context.Context, id int64) (*Match, error)
	GetMatchFunc          func(ctx context.Context, id int64) (*Match, []Participation, error)
	ListMatchesFunc       func(ctx context.Context) ([]Match, error)
	MatchTimesFunc        func(ctx context.Context) ([]time.Time, error)
	AppearancesFunc       func(ctx context.Context, window *Window) ([]Appearance, error)
	PlayerAppearancesFunc func(ctx context.Context, playerID int64, window *Window) ([]Appearance, error)

	// Call records
	AddPlayerCalls    []string
	DeletePlayerCalls []int64
	CreateMatchCalls  []NewMatch
	ReplaceMatchCalls []struct {
		ID    int64
		Match NewMatch
	}
	DeleteMatchCalls []int64
}

// NewMock creates a new mock instance.
func NewMock() *MockStore {
	return &MockStore{}
}

func (m *MockStore) Ping(ctx context.Context) error {
	if m.PingFunc != nil {
		return m.PingFunc(ctx)
	}
	return nil
}

func (m *MockStore) ListPlayers(ctx context.Context) ([]Player, error) {
	if m.ListPlayersFunc != nil {
		return m.ListPlayersFunc(ctx)
	}
	return []Player{}, nil
}

func (m *MockStore) AddPlayer(ctx context.Context, name string) (int64, error) {
	m.mu.Lock()
	m.AddPlayerCalls = append(m.AddPlayerCalls, name)
	m.mu.Unlock()
	if m.AddPlayerFunc != nil {
		return m.AddPlayerFunc(ctx, name)
	}
	return 1, nil
}

func (m *MockStore) DeletePlayer(ctx context.Context, id int64) error {
	m.mu.Lock()
	m.DeletePlayerCalls = append(m.DeletePlayerCalls, id)
	m.mu.Unlock()
	if m.DeletePlayerFunc != nil {
		return m.DeletePlayerFunc(ctx, id)
	}
	return nil
}

func (m *MockStore) CreateMatch(ctx context.Context, match NewMatch) (int64, error) {
	m.mu.Lock()
	m.CreateMatchCalls = append(m.CreateMatchCalls, match)
	m.mu.Unlock()
	if m.CreateMatchFunc != nil {
		return m.CreateMatchFunc(ctx, match)
	}
	return 1, nil
}

func (m *MockStore) ReplaceMatch(ctx context.Context, id int64, match NewMatch) error {
	m.mu.Lock()
	m.ReplaceMatchCalls = append(m.ReplaceMatchCalls, struct {
		ID    int64
		Match NewMatch
	}{id, match})
	m.mu.Unlock()
	if m.ReplaceMatchFunc != nil {
		return m.ReplaceMatchFunc(ctx, id, match)
	}
	return nil
}

func (m *MockStore) DeleteMatch(ctx context.Context, id int64) (*Match, error) {
	m.mu.Lock()
	m.DeleteMatchCalls = append(m.DeleteMatchCalls, id)
	m.mu.Unlock()
	if m.DeleteMatchFunc != nil {
		return m.DeleteMatchFunc(ctx, id)
	}
	return &Match{ID: id}, nil
}

func (m *MockStore) GetMatch(ctx context.Context, id int64) (*Match, []Participation, error) {
	if m.GetMatchFunc != nil {
		return m.GetMatchFunc(ctx, id)
	}
	return &Match{ID: id}, []Participation{}, nil
}

func (m *MockStore) ListMatches(ctx context.Context) ([]Match, error) {
	if m.ListMatchesFunc != nil {
		return m.ListMatchesFunc(ctx)
	}
	return []Match{}, nil
}

func (m *MockStore) MatchTimes(ctx context.Context) ([]time.Time, error) {
	if m.MatchTimesFunc != nil {
		return m.MatchTimesFunc(ctx)
	}
	return []time.Time{}, nil
}

func (m *MockStore) Appearances(ctx context.Context, window *Window) ([]Appearance, error) {
	if m.AppearancesFunc != nil {
		return m.AppearancesFunc(ctx, window)
	}
	return []Appearance{}, nil
}

func (m *MockStore) PlayerAppearances(ctx context.Context, playerID int64, window *Window) ([]Appearance, error) {
	if m.PlayerAppearancesFunc != nil {
		return m.PlayerAppearancesFunc(ctx, playerID, window)
	}
	return []Appearance{}, nil
}

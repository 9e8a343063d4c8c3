package club

import (
	"context"
	"time"
)

// ClubStore defines the interface for interacting with players and matches.
type ClubStore interface {
	Ping(ctx context.Context) error

	ListPlayers(ctx context.Context) ([]Player, error)
	AddPlayer(ctx context.Context, name string) (int64, error)
	DeletePlayer(ctx context.Context, id int64) error

	CreateMatch(ctx context.Context, m NewMatch) (int64, error)
	ReplaceMatch(ctx context.Context, id int64, m NewMatch) error
	DeleteMatch(ctx context.Context, id int64) (*Match, error)
	GetMatch(ctx context.Context, id int64) (*Match, []Participation, error)
	ListMatches(ctx context.Context) ([]Match, error)
	MatchTimes(ctx context.Context) ([]time.Time, error)

	// Appearances returns every participation, oldest first. A nil window
	// means all matches.
	Appearances(ctx context.Context, window *Window) ([]Appearance, error)
	PlayerAppearances(ctx context.Context, playerID int64, window *Window) ([]Appearance, error)
}

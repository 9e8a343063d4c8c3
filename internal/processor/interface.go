package processor

import (
	"context"

	"github.com/mauv0809/role-ladder/internal/club"
	"github.com/mauv0809/role-ladder/internal/notifier"
)

// Store defines the database operations required by the processor.
type Store interface {
	CreateMatch(ctx context.Context, m club.NewMatch) (int64, error)
	ReplaceMatch(ctx context.Context, id int64, m club.NewMatch) error
	DeleteMatch(ctx context.Context, id int64) (*club.Match, error)
	ListPlayers(ctx context.Context) ([]club.Player, error)
}

// Auditor records admin actions.
type Auditor interface {
	Log(ctx context.Context, adminID int64, action string) error
}

// Notifier defines the notification operations required by the processor.
type Notifier interface {
	notifier.Notifier
}

package notifier

import (
	"context"

	"github.com/mauv0809/role-ladder/internal/club"
)

// Notifier defines a high-level interface for sending notifications about business events.
// This decouples the rest of the application from the specific notification provider (e.g., Slack).
type Notifier interface {
	SendMatchNotification(ctx context.Context, event MatchEvent) error
}

// EventKind names what happened to a match.
type EventKind string

const (
	MatchCreated EventKind = "match-created"
	MatchUpdated EventKind = "match-updated"
	MatchDeleted EventKind = "match-deleted"
)

// MatchEvent describes a committed match mutation. Roster is empty for deletions.
type MatchEvent struct {
	Kind      EventKind    `msgpack:"kind" json:"kind"`
	Match     club.Match   `msgpack:"match" json:"match"`
	Roster    []RosterSlot `msgpack:"roster" json:"roster"`
	ActorID   int64        `msgpack:"actor_id" json:"actor_id"`
	ActorName string       `msgpack:"actor_name" json:"actor_name"`
}

// RosterSlot is one participation with the player's display name.
type RosterSlot struct {
	PlayerID   int64       `msgpack:"player_id" json:"player_id"`
	PlayerName string      `msgpack:"player_name" json:"player_name"`
	Team       club.Team   `msgpack:"team" json:"team"`
	Role       club.Role   `msgpack:"role" json:"role"`
	Result     club.Result `msgpack:"result" json:"result"`
}

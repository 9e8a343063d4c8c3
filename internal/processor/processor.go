package processor

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/role-ladder/internal/club"
	"github.com/mauv0809/role-ladder/internal/metrics"
	"github.com/mauv0809/role-ladder/internal/notifier"
	"github.com/mauv0809/role-ladder/internal/pubsub"
	"github.com/mauv0809/role-ladder/internal/timestamp"
)

// fanoutTimeout bounds each notification and publish after a commit.
const fanoutTimeout = 10 * time.Second

var eventTypes = map[notifier.EventKind]pubsub.EventType{
	notifier.MatchCreated: pubsub.EventMatchCreated,
	notifier.MatchUpdated: pubsub.EventMatchUpdated,
	notifier.MatchDeleted: pubsub.EventMatchDeleted,
}

// New creates a new Processor. notifier and pubsub may be nil, which disables
// that fan-out.
func New(store Store, audit Auditor, notifier Notifier, pubsub pubsub.PubSubClient, metrics metrics.Metrics, normalizer *timestamp.Normalizer) *Processor {
	return &Processor{
		store:      store,
		audit:      audit,
		notifier:   notifier,
		pubsub:     pubsub,
		metrics:    metrics,
		normalizer: normalizer,
	}
}

// Create validates and stores a new match.
func (p *Processor) Create(ctx context.Context, actor Actor, in club.MatchInput) (int64, error) {
	m, err := p.prepare(in)
	if err != nil {
		return 0, err
	}

	id, err := p.store.CreateMatch(ctx, m)
	if err != nil {
		return 0, err
	}
	p.metrics.IncMatchMutations(metrics.OpCreate)
	log.Info("Match created", "matchID", id, "map", m.MapName, "winner", m.Winner, "adminID", actor.ID)

	p.record(ctx, actor, fmt.Sprintf("Match created: %s (%s won) - %s", m.MapName, m.Winner, actor.Name))
	p.fanout(ctx, notifier.MatchCreated, matchFrom(id, m), m.Entries, actor)
	return id, nil
}

// Update replaces a match and its whole roster.
func (p *Processor) Update(ctx context.Context, actor Actor, id int64, in club.MatchInput) error {
	m, err := p.prepare(in)
	if err != nil {
		return err
	}

	if err := p.store.ReplaceMatch(ctx, id, m); err != nil {
		return err
	}
	p.metrics.IncMatchMutations(metrics.OpUpdate)
	log.Info("Match updated", "matchID", id, "map", m.MapName, "winner", m.Winner, "adminID", actor.ID)

	p.record(ctx, actor, fmt.Sprintf("Match updated: ID %d (%s) - %s", id, m.MapName, actor.Name))
	p.fanout(ctx, notifier.MatchUpdated, matchFrom(id, m), m.Entries, actor)
	return nil
}

// Delete removes a match and its participations.
func (p *Processor) Delete(ctx context.Context, actor Actor, id int64) error {
	deleted, err := p.store.DeleteMatch(ctx, id)
	if err != nil {
		return err
	}
	p.metrics.IncMatchMutations(metrics.OpDelete)
	log.Info("Match deleted", "matchID", id, "adminID", actor.ID)

	p.record(ctx, actor, fmt.Sprintf("Match deleted: ID %d (%s) - %s", id, deleted.MapName, actor.Name))
	p.fanout(ctx, notifier.MatchDeleted, *deleted, nil, actor)
	return nil
}

// prepare validates in and resolves its timestamp.
func (p *Processor) prepare(in club.MatchInput) (club.NewMatch, error) {
	in, err := club.Validate(in)
	if err != nil {
		return club.NewMatch{}, err
	}
	createdAt, err := p.normalizer.Normalize(in.CreatedAt)
	if err != nil {
		return club.NewMatch{}, err
	}
	return club.NewMatch{
		Winner:    club.Team(in.Winner),
		CreatedAt: createdAt,
		MapName:   in.MapName,
		BanA:      in.BanA,
		BanB:      in.BanB,
		Entries:   in.Entries,
	}, nil
}

// record writes the audit entry. Failures never undo the mutation.
func (p *Processor) record(ctx context.Context, actor Actor, action string) {
	if actor.ID <= 0 {
		log.Warn("Match mutation without admin identity, skipping audit entry", "action", action)
		return
	}
	if err := p.audit.Log(ctx, actor.ID, action); err != nil {
		p.metrics.IncAuditFailures()
		log.Error("Failed to write audit entry", "error", err, "adminID", actor.ID, "action", action)
	}
}

// fanout notifies Slack and publishes the event. Both are best-effort and
// run detached from the request's cancellation.
func (p *Processor) fanout(ctx context.Context, kind notifier.EventKind, match club.Match, entries []club.Entry, actor Actor) {
	if p.notifier == nil && p.pubsub == nil {
		return
	}
	ctx = context.WithoutCancel(ctx)

	event := notifier.MatchEvent{
		Kind:      kind,
		Match:     match,
		Roster:    p.roster(ctx, match.Winner, entries),
		ActorID:   actor.ID,
		ActorName: actor.Name,
	}

	if p.notifier != nil {
		nctx, cancel := context.WithTimeout(ctx, fanoutTimeout)
		if err := p.notifier.SendMatchNotification(nctx, event); err != nil {
			log.Error("Failed to send match notification", "error", err, "matchID", match.ID)
		}
		cancel()
	}

	if p.pubsub != nil {
		pctx, cancel := context.WithTimeout(ctx, fanoutTimeout)
		if err := p.pubsub.SendMessage(pctx, eventTypes[kind], event); err != nil {
			p.metrics.IncEventsFailed()
			log.Error("Failed to publish match event", "error", err, "matchID", match.ID)
		} else {
			p.metrics.IncEventsPublished()
		}
		cancel()
	}
}

// roster attaches player names to entries. Names are left empty when the
// player list cannot be read.
func (p *Processor) roster(ctx context.Context, winner club.Team, entries []club.Entry) []notifier.RosterSlot {
	if len(entries) == 0 {
		return nil
	}
	names := make(map[int64]string)
	if players, err := p.store.ListPlayers(ctx); err != nil {
		log.Warn("Failed to load player names for match event", "error", err)
	} else {
		for _, pl := range players {
			names[pl.ID] = pl.Name
		}
	}

	slots := make([]notifier.RosterSlot, 0, len(entries))
	for _, e := range entries {
		slots = append(slots, notifier.RosterSlot{
			PlayerID:   e.PlayerID,
			PlayerName: names[e.PlayerID],
			Team:       e.Team,
			Role:       e.Role,
			Result:     club.ResultFor(e.Team, winner),
		})
	}
	return slots
}

func matchFrom(id int64, m club.NewMatch) club.Match {
	return club.Match{
		ID:        id,
		Winner:    m.Winner,
		CreatedAt: m.CreatedAt,
		MapName:   m.MapName,
		BanA:      m.BanA,
		BanB:      m.BanB,
	}
}

package processor

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mauv0809/role-ladder/internal/admin"
	"github.com/mauv0809/role-ladder/internal/apperr"
	"github.com/mauv0809/role-ladder/internal/club"
	"github.com/mauv0809/role-ladder/internal/metrics"
	"github.com/mauv0809/role-ladder/internal/notifier"
	"github.com/mauv0809/role-ladder/internal/pubsub"
	"github.com/mauv0809/role-ladder/internal/timestamp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "time/tzdata"
)

type fixture struct {
	store   *club.MockStore
	audit   *admin.MockService
	notif   *notifier.Mock
	pubsub  *pubsub.MockPubSubClient
	metrics *metrics.Mock
	p       *Processor
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	toronto, err := time.LoadLocation("America/Toronto")
	require.NoError(t, err)

	f := &fixture{
		store:   club.NewMock(),
		audit:   admin.NewMock(),
		notif:   notifier.NewMock(),
		pubsub:  pubsub.NewMock(),
		metrics: metrics.NewMock(),
	}
	f.store.ListPlayersFunc = func(ctx context.Context) ([]club.Player, error) {
		return []club.Player{{ID: 1, Name: "Ana"}, {ID: 6, Name: "Fi"}}, nil
	}
	f.p = New(f.store, f.audit, f.notif, f.pubsub, f.metrics, timestamp.NewNormalizer(toronto, time.UTC))
	return f
}

func input() club.MatchInput {
	roles := []club.Role{"Tank", "DPS", "DPS", "Heal", "Support"}
	entries := make([]club.Entry, 0, 10)
	for i := 0; i < 10; i++ {
		team := club.TeamA
		if i >= 5 {
			team = club.TeamB
		}
		entries = append(entries, club.Entry{PlayerID: int64(i + 1), Team: team, Role: roles[i%5]})
	}
	return club.MatchInput{Winner: "A", CreatedAt: "2025-06-01T18:00", MapName: "Ilios", BanA: "Ana", BanB: "Mercy", Entries: entries}
}

var root = Actor{ID: 3, Name: "Root"}

func TestProcessor_Create(t *testing.T) {
	t.Run("stores normalized match and fans out", func(t *testing.T) {
		f := newFixture(t)
		f.store.CreateMatchFunc = func(ctx context.Context, m club.NewMatch) (int64, error) { return 42, nil }

		id, err := f.p.Create(context.Background(), root, input())
		require.NoError(t, err)
		assert.Equal(t, int64(42), id)

		require.Len(t, f.store.CreateMatchCalls, 1)
		stored := f.store.CreateMatchCalls[0]
		assert.Equal(t, "2025-06-01T22:00:00.000Z", timestamp.Format(stored.CreatedAt))
		assert.Equal(t, club.RoleHealer, stored.Entries[3].Role)
		assert.Equal(t, club.RoleHealer, stored.Entries[4].Role)

		require.Len(t, f.audit.LogCalls, 1)
		assert.Equal(t, int64(3), f.audit.LogCalls[0].AdminID)
		assert.Equal(t, "Match created: Ilios (A won) - Root", f.audit.LogCalls[0].Action)

		events := f.notif.Calls()
		require.Len(t, events, 1)
		assert.Equal(t, notifier.MatchCreated, events[0].Kind)
		assert.Equal(t, int64(42), events[0].Match.ID)
		require.Len(t, events[0].Roster, 10)
		assert.Equal(t, "Ana", events[0].Roster[0].PlayerName)
		assert.Equal(t, club.ResultWin, events[0].Roster[0].Result)
		assert.Equal(t, "Fi", events[0].Roster[5].PlayerName)
		assert.Equal(t, club.ResultLoss, events[0].Roster[5].Result)

		published := f.pubsub.Calls()
		require.Len(t, published, 1)
		assert.Equal(t, pubsub.EventMatchCreated, published[0].EventType)

		assert.Equal(t, 1, f.metrics.MatchMutations(metrics.OpCreate))
		assert.Equal(t, 1, f.metrics.EventsPublished())
	})

	t.Run("validation errors never reach the store", func(t *testing.T) {
		f := newFixture(t)
		in := input()
		in.Entries[9].PlayerID = 1

		_, err := f.p.Create(context.Background(), root, in)
		assert.True(t, apperr.Is(err, apperr.KindValidation, club.CodeDuplicatePlayer))
		assert.Empty(t, f.store.CreateMatchCalls)
		assert.Empty(t, f.audit.LogCalls)
	})

	t.Run("malformed timestamp is rejected", func(t *testing.T) {
		f := newFixture(t)
		in := input()
		in.CreatedAt = "01/06/2025"

		_, err := f.p.Create(context.Background(), root, in)
		assert.Equal(t, apperr.KindTimestamp, apperr.KindOf(err))
		assert.Empty(t, f.store.CreateMatchCalls)
	})

	t.Run("store failure skips audit and events", func(t *testing.T) {
		f := newFixture(t)
		f.store.CreateMatchFunc = func(ctx context.Context, m club.NewMatch) (int64, error) {
			return 0, apperr.Store("insert match", context.DeadlineExceeded)
		}

		_, err := f.p.Create(context.Background(), root, input())
		assert.Equal(t, apperr.KindStore, apperr.KindOf(err))
		assert.Empty(t, f.audit.LogCalls)
		assert.Empty(t, f.notif.Calls())
		assert.Equal(t, 0, f.metrics.MatchMutations(metrics.OpCreate))
	})

	t.Run("post-commit failures do not fail the request", func(t *testing.T) {
		f := newFixture(t)
		f.audit.LogFunc = func(ctx context.Context, adminID int64, action string) error { return errors.New("disk full") }
		f.notif.SendMatchNotificationFunc = func(ctx context.Context, event notifier.MatchEvent) error { return errors.New("slack down") }
		f.pubsub.SendMessageFunc = func(ctx context.Context, eventType pubsub.EventType, data any) error { return errors.New("pubsub down") }

		_, err := f.p.Create(context.Background(), root, input())
		require.NoError(t, err)
		assert.Equal(t, 1, f.metrics.AuditFailures())
		assert.Equal(t, 1, f.metrics.EventsFailed())
	})

	t.Run("anonymous requests are not audited", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.p.Create(context.Background(), Actor{}, input())
		require.NoError(t, err)
		assert.Empty(t, f.audit.LogCalls)
	})

	t.Run("fan-out is optional", func(t *testing.T) {
		f := newFixture(t)
		p := New(f.store, f.audit, nil, nil, f.metrics, f.p.normalizer)
		_, err := p.Create(context.Background(), root, input())
		require.NoError(t, err)
		assert.Equal(t, 0, f.metrics.EventsPublished())
	})
}

func TestProcessor_Update(t *testing.T) {
	f := newFixture(t)

	err := f.p.Update(context.Background(), root, 7, input())
	require.NoError(t, err)

	require.Len(t, f.store.ReplaceMatchCalls, 1)
	assert.Equal(t, int64(7), f.store.ReplaceMatchCalls[0].ID)
	require.Len(t, f.audit.LogCalls, 1)
	assert.Equal(t, "Match updated: ID 7 (Ilios) - Root", f.audit.LogCalls[0].Action)
	assert.Equal(t, 1, f.metrics.MatchMutations(metrics.OpUpdate))

	t.Run("unknown match", func(t *testing.T) {
		f := newFixture(t)
		f.store.ReplaceMatchFunc = func(ctx context.Context, id int64, m club.NewMatch) error { return apperr.NotFound("match") }

		err := f.p.Update(context.Background(), root, 7, input())
		assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
		assert.Empty(t, f.audit.LogCalls)
	})
}

func TestProcessor_Delete(t *testing.T) {
	f := newFixture(t)
	f.store.DeleteMatchFunc = func(ctx context.Context, id int64) (*club.Match, error) {
		return &club.Match{ID: id, MapName: "Ilios", Winner: club.TeamB}, nil
	}

	require.NoError(t, f.p.Delete(context.Background(), root, 9))

	require.Len(t, f.audit.LogCalls, 1)
	assert.Equal(t, "Match deleted: ID 9 (Ilios) - Root", f.audit.LogCalls[0].Action)

	events := f.notif.Calls()
	require.Len(t, events, 1)
	assert.Equal(t, notifier.MatchDeleted, events[0].Kind)
	assert.Empty(t, events[0].Roster)

	published := f.pubsub.Calls()
	require.Len(t, published, 1)
	assert.Equal(t, pubsub.EventMatchDeleted, published[0].EventType)
}

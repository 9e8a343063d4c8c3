package club_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/mauv0809/role-ladder/internal/apperr"
	"github.com/mauv0809/role-ladder/internal/club"
	"github.com/mauv0809/role-ladder/internal/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestDB creates a temporary in-memory SQLite database for testing.
func setupTestDB(t *testing.T) (club.ClubStore, *sql.DB, func()) {
	t.Helper()

	db, teardown, err := database.InitDB(":memory:", "", "")
	require.NoError(t, err)

	return club.New(db), db, teardown
}

// seedRoster registers ten players and returns their ids in insertion order.
func seedRoster(t *testing.T, store club.ClubStore) []int64 {
	t.Helper()
	ids := make([]int64, 0, 10)
	for _, name := range []string{"Ana", "Bo", "Cy", "Di", "Ed", "Fi", "Go", "Hi", "Ij", "Jk"} {
		id, err := store.AddPlayer(context.Background(), name)
		require.NoError(t, err)
		ids = append(ids, id)
	}
	return ids
}

// roster puts the first five ids on team A and the rest on team B.
func roster(ids []int64) []club.Entry {
	roles := []club.Role{club.RoleTank, club.RoleDPS, club.RoleDPS, club.RoleHealer, club.RoleHealer}
	entries := make([]club.Entry, 0, len(ids))
	for i, id := range ids {
		team := club.TeamA
		if i >= 5 {
			team = club.TeamB
		}
		entries = append(entries, club.Entry{PlayerID: id, Team: team, Role: roles[i%5]})
	}
	return entries
}

func newMatch(winner club.Team, at time.Time, entries []club.Entry) club.NewMatch {
	return club.NewMatch{Winner: winner, CreatedAt: at, MapName: "Ilios", BanA: "Ana", BanB: "Mercy", Entries: entries}
}

func TestAddAndListPlayers(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()
	ctx := context.Background()

	_, err := store.AddPlayer(ctx, "  zed ")
	require.NoError(t, err)
	_, err = store.AddPlayer(ctx, "Amy")
	require.NoError(t, err)

	players, err := store.ListPlayers(ctx)
	require.NoError(t, err)
	require.Len(t, players, 2)
	assert.Equal(t, "Amy", players[0].Name)
	assert.Equal(t, "zed", players[1].Name)

	t.Run("rejects empty names", func(t *testing.T) {
		_, err := store.AddPlayer(ctx, "   ")
		assert.True(t, apperr.Is(err, apperr.KindValidation, club.CodeEmptyName))
	})

	t.Run("rejects duplicates in any casing", func(t *testing.T) {
		_, err := store.AddPlayer(ctx, "AMY")
		assert.True(t, apperr.Is(err, apperr.KindValidation, club.CodeDuplicate))

		players, err := store.ListPlayers(ctx)
		require.NoError(t, err)
		assert.Len(t, players, 2)
	})
}

func TestCreateMatch(t *testing.T) {
	store, db, teardown := setupTestDB(t)
	defer teardown()
	ctx := context.Background()

	ids := seedRoster(t, store)
	at := time.Date(2025, 6, 1, 22, 0, 0, 0, time.UTC)
	id, err := store.CreateMatch(ctx, newMatch(club.TeamA, at, roster(ids)))
	require.NoError(t, err)

	var count int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM match_players WHERE match_id = ?`, id).Scan(&count))
	assert.Equal(t, 10, count)

	m, parts, err := store.GetMatch(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, club.TeamA, m.Winner)
	assert.True(t, at.Equal(m.CreatedAt))
	require.Len(t, parts, 10)
	for _, p := range parts {
		assert.Equal(t, club.ResultFor(p.Team, m.Winner), p.Result)
		if p.Team == club.TeamA {
			assert.Equal(t, club.ResultWin, p.Result)
		}
	}
}

func TestCreateMatch_UnknownPlayerWritesNothing(t *testing.T) {
	store, db, teardown := setupTestDB(t)
	defer teardown()
	ctx := context.Background()

	ids := seedRoster(t, store)
	ids[9] = 9999
	_, err := store.CreateMatch(ctx, newMatch(club.TeamB, time.Now(), roster(ids)))
	assert.True(t, apperr.Is(err, apperr.KindValidation, club.CodeUnknownPlayer))

	var count int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM matches`).Scan(&count))
	assert.Equal(t, 0, count)
}

func TestReplaceMatch(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()
	ctx := context.Background()

	ids := seedRoster(t, store)
	id, err := store.CreateMatch(ctx, newMatch(club.TeamA, time.Now(), roster(ids)))
	require.NoError(t, err)

	// Swap the teams and flip the winner.
	swapped := append(append([]int64{}, ids[5:]...), ids[:5]...)
	err = store.ReplaceMatch(ctx, id, newMatch(club.TeamB, time.Now(), roster(swapped)))
	require.NoError(t, err)

	m, parts, err := store.GetMatch(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, club.TeamB, m.Winner)
	require.Len(t, parts, 10)
	for _, p := range parts {
		require.NotNil(t, p.PlayerID)
		if *p.PlayerID >= ids[5] {
			assert.Equal(t, club.TeamA, p.Team, "player %d", *p.PlayerID)
			assert.Equal(t, club.ResultLoss, p.Result)
		} else {
			assert.Equal(t, club.TeamB, p.Team, "player %d", *p.PlayerID)
			assert.Equal(t, club.ResultWin, p.Result)
		}
	}

	t.Run("unknown match", func(t *testing.T) {
		err := store.ReplaceMatch(ctx, 4242, newMatch(club.TeamA, time.Now(), roster(ids)))
		assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
	})

	t.Run("failed replace keeps the old roster", func(t *testing.T) {
		bad := append([]int64{}, ids...)
		bad[0] = 9999
		err := store.ReplaceMatch(ctx, id, newMatch(club.TeamA, time.Now(), roster(bad)))
		assert.True(t, apperr.Is(err, apperr.KindValidation, club.CodeUnknownPlayer))

		m, parts, err := store.GetMatch(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, club.TeamB, m.Winner)
		assert.Len(t, parts, 10)
	})
}

func TestDeleteMatch(t *testing.T) {
	store, db, teardown := setupTestDB(t)
	defer teardown()
	ctx := context.Background()

	ids := seedRoster(t, store)
	id, err := store.CreateMatch(ctx, newMatch(club.TeamA, time.Now(), roster(ids)))
	require.NoError(t, err)

	deleted, err := store.DeleteMatch(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Ilios", deleted.MapName)

	var count int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM match_players`).Scan(&count))
	assert.Equal(t, 0, count, "participations cascade with the match")

	_, err = store.DeleteMatch(ctx, id)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestDeletePlayer(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()
	ctx := context.Background()

	ids := seedRoster(t, store)
	benched, err := store.AddPlayer(ctx, "Bench")
	require.NoError(t, err)
	_, err = store.CreateMatch(ctx, newMatch(club.TeamA, time.Now(), roster(ids)))
	require.NoError(t, err)

	t.Run("player with games is in use", func(t *testing.T) {
		err := store.DeletePlayer(ctx, ids[0])
		assert.True(t, apperr.Is(err, apperr.KindConstraint, club.CodeInUse))
	})

	t.Run("player without games is removed", func(t *testing.T) {
		require.NoError(t, store.DeletePlayer(ctx, benched))
		players, err := store.ListPlayers(ctx)
		require.NoError(t, err)
		assert.Len(t, players, 10)
	})

	t.Run("unknown id is a no-op", func(t *testing.T) {
		assert.NoError(t, store.DeletePlayer(ctx, 9999))
	})
}

func TestAppearances(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()
	ctx := context.Background()

	ids := seedRoster(t, store)
	june1 := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	june2 := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	_, err := store.CreateMatch(ctx, newMatch(club.TeamA, june2, roster(ids)))
	require.NoError(t, err)
	_, err = store.CreateMatch(ctx, newMatch(club.TeamB, june1, roster(ids)))
	require.NoError(t, err)

	all, err := store.Appearances(ctx, nil)
	require.NoError(t, err)
	require.Len(t, all, 20)
	assert.True(t, june1.Equal(all[0].CreatedAt), "oldest first")
	assert.Equal(t, "Ana", all[0].PlayerName)

	window := &club.Window{From: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), To: june2}
	day, err := store.Appearances(ctx, window)
	require.NoError(t, err)
	assert.Len(t, day, 10, "the window end is exclusive")

	mine, err := store.PlayerAppearances(ctx, ids[0], nil)
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, club.ResultLoss, mine[0].Result)
	assert.Equal(t, club.ResultWin, mine[1].Result)

	mine, err = store.PlayerAppearances(ctx, ids[0], window)
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	times, err := store.MatchTimes(ctx)
	require.NoError(t, err)
	require.Len(t, times, 2)
	assert.True(t, june2.Equal(times[0]), "newest first")

	matches, err := store.ListMatches(ctx)
	require.NoError(t, err)
	require.Len(t, matches, 2)
	assert.True(t, june2.Equal(matches[0].CreatedAt))
}

func TestAppearancesSkipUnknownPlayers(t *testing.T) {
	store, db, teardown := setupTestDB(t)
	defer teardown()
	ctx := context.Background()

	ids := seedRoster(t, store)
	matchID, err := store.CreateMatch(ctx, newMatch(club.TeamA, time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC), roster(ids)))
	require.NoError(t, err)

	_, err = db.Exec(`INSERT INTO match_players (match_id, player_id, team, role, result) VALUES (?, NULL, 'A', 'Tank', 'W')`, matchID)
	require.NoError(t, err)
	_, err = db.Exec(`PRAGMA foreign_keys = OFF`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO match_players (match_id, player_id, team, role, result) VALUES (?, 999, 'B', 'DPS', 'L')`, matchID)
	require.NoError(t, err)
	_, err = db.Exec(`PRAGMA foreign_keys = ON`)
	require.NoError(t, err)

	all, err := store.Appearances(ctx, nil)
	require.NoError(t, err)
	require.Len(t, all, 10)
	for _, a := range all {
		require.NotNil(t, a.PlayerID)
		assert.NotEqual(t, int64(999), *a.PlayerID)
		assert.NotEmpty(t, a.PlayerName)
	}

	ghost, err := store.PlayerAppearances(ctx, 999, nil)
	require.NoError(t, err)
	assert.Empty(t, ghost)
}

func TestStoreHonoursCancelledContext(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := store.ListPlayers(ctx)
	require.Error(t, err)
	assert.Equal(t, apperr.KindStore, apperr.KindOf(err))
	assert.ErrorIs(t, err, context.Canceled)
}

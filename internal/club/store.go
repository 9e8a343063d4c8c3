package club

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/role-ladder/internal/apperr"
)

// New creates a new ClubStore.
func New(db *sql.DB) ClubStore {
	return &store{
		db:  db,
		now: time.Now,
	}
}

func (s *store) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return apperr.Store("ping", err)
	}
	return nil
}

// ListPlayers returns all players ordered by name.
func (s *store) ListPlayers(ctx context.Context) ([]Player, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name, created_at FROM players ORDER BY name, id`)
	if err != nil {
		return nil, apperr.Store("list players", err)
	}
	defer rows.Close()

	players := []Player{}
	for rows.Next() {
		var p Player
		var createdAt int64
		if err := rows.Scan(&p.ID, &p.Name, &createdAt); err != nil {
			return nil, apperr.Store("scan player", err)
		}
		p.CreatedAt = time.UnixMilli(createdAt).UTC()
		players = append(players, p)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Store("list players", err)
	}
	return players, nil
}

// AddPlayer registers a player. Names are trimmed and compared ignoring case.
func (s *store) AddPlayer(ctx context.Context, name string) (int64, error) {
	name, err := NormalizeName(name)
	if err != nil {
		return 0, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, apperr.Store("begin add player", err)
	}
	defer tx.Rollback()

	// The name column is NOCASE, so this comparison ignores case.
	var exists bool
	if err := tx.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM players WHERE name = ?)`, name).Scan(&exists); err != nil {
		return 0, apperr.Store("check player name", err)
	}
	if exists {
		return 0, apperr.Validation(CodeDuplicate)
	}

	res, err := tx.ExecContext(ctx, `INSERT INTO players (name, created_at) VALUES (?, ?)`, name, s.now().UnixMilli())
	if err != nil {
		if isUniqueViolation(err) {
			return 0, apperr.Validation(CodeDuplicate)
		}
		return 0, apperr.Store("insert player", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, apperr.Store("insert player", err)
	}
	if err := tx.Commit(); err != nil {
		return 0, apperr.Store("commit add player", err)
	}

	log.Info("Player added", "playerID", id, "name", name)
	return id, nil
}

// DeletePlayer removes a player that has never played. Deleting an unknown id
// is not an error.
func (s *store) DeletePlayer(ctx context.Context, id int64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return apperr.Store("begin delete player", err)
	}
	defer tx.Rollback()

	var games int
	if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM match_players WHERE player_id = ?`, id).Scan(&games); err != nil {
		return apperr.Store("count player games", err)
	}
	if games > 0 {
		return apperr.Constraint(CodeInUse)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM players WHERE id = ?`, id); err != nil {
		return apperr.Store("delete player", err)
	}
	if err := tx.Commit(); err != nil {
		return apperr.Store("commit delete player", err)
	}
	log.Info("Player deleted", "playerID", id)
	return nil
}

// CreateMatch writes the match and its participations in one transaction.
func (s *store) CreateMatch(ctx context.Context, m NewMatch) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, apperr.Store("begin create match", err)
	}
	defer tx.Rollback()

	if err := checkPlayersExist(ctx, tx, m.Entries); err != nil {
		return 0, err
	}

	res, err := tx.ExecContext(ctx, `
		INSERT INTO matches (winner, created_at, map_name, ban_a, ban_b)
		VALUES (?, ?, ?, ?, ?)
	`, m.Winner, m.CreatedAt.UnixMilli(), m.MapName, m.BanA, m.BanB)
	if err != nil {
		return 0, apperr.Store("insert match", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, apperr.Store("insert match", err)
	}

	if err := insertParticipations(ctx, tx, id, m); err != nil {
		return 0, err
	}
	if err := tx.Commit(); err != nil {
		return 0, apperr.Store("commit create match", err)
	}
	return id, nil
}

// ReplaceMatch overwrites the match fields and swaps the whole roster.
func (s *store) ReplaceMatch(ctx context.Context, id int64, m NewMatch) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return apperr.Store("begin replace match", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		UPDATE matches SET winner = ?, created_at = ?, map_name = ?, ban_a = ?, ban_b = ?
		WHERE id = ?
	`, m.Winner, m.CreatedAt.UnixMilli(), m.MapName, m.BanA, m.BanB, id)
	if err != nil {
		return apperr.Store("update match", err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return apperr.Store("update match", err)
	} else if n == 0 {
		return apperr.NotFound("match")
	}

	if err := checkPlayersExist(ctx, tx, m.Entries); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM match_players WHERE match_id = ?`, id); err != nil {
		return apperr.Store("clear participations", err)
	}
	if err := insertParticipations(ctx, tx, id, m); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return apperr.Store("commit replace match", err)
	}
	return nil
}

// DeleteMatch removes a match and, by cascade, its participations. It returns
// the match as it was before deletion.
func (s *store) DeleteMatch(ctx context.Context, id int64) (*Match, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, apperr.Store("begin delete match", err)
	}
	defer tx.Rollback()

	m, err := scanMatch(tx.QueryRowContext(ctx, `SELECT id, winner, created_at, map_name, ban_a, ban_b FROM matches WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("match")
	}
	if err != nil {
		return nil, apperr.Store("get match", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM matches WHERE id = ?`, id); err != nil {
		return nil, apperr.Store("delete match", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, apperr.Store("commit delete match", err)
	}
	return m, nil
}

// GetMatch returns a match and its participations.
func (s *store) GetMatch(ctx context.Context, id int64) (*Match, []Participation, error) {
	m, err := scanMatch(s.db.QueryRowContext(ctx, `SELECT id, winner, created_at, map_name, ban_a, ban_b FROM matches WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil, apperr.NotFound("match")
	}
	if err != nil {
		return nil, nil, apperr.Store("get match", err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, match_id, player_id, team, role, result
		FROM match_players WHERE match_id = ? ORDER BY id
	`, id)
	if err != nil {
		return nil, nil, apperr.Store("get participations", err)
	}
	defer rows.Close()

	parts := []Participation{}
	for rows.Next() {
		var p Participation
		var playerID sql.NullInt64
		if err := rows.Scan(&p.ID, &p.MatchID, &playerID, &p.Team, &p.Role, &p.Result); err != nil {
			return nil, nil, apperr.Store("scan participation", err)
		}
		if playerID.Valid {
			p.PlayerID = &playerID.Int64
		}
		parts = append(parts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperr.Store("get participations", err)
	}
	return m, parts, nil
}

// ListMatches returns every match, newest first.
func (s *store) ListMatches(ctx context.Context) ([]Match, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, winner, created_at, map_name, ban_a, ban_b FROM matches ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, apperr.Store("list matches", err)
	}
	defer rows.Close()

	matches := []Match{}
	for rows.Next() {
		m, err := scanMatch(rows)
		if err != nil {
			return nil, apperr.Store("scan match", err)
		}
		matches = append(matches, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Store("list matches", err)
	}
	return matches, nil
}

// MatchTimes returns the creation instant of every match, newest first.
func (s *store) MatchTimes(ctx context.Context) ([]time.Time, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT DISTINCT created_at FROM matches ORDER BY created_at DESC`)
	if err != nil {
		return nil, apperr.Store("list match times", err)
	}
	defer rows.Close()

	times := []time.Time{}
	for rows.Next() {
		var ms int64
		if err := rows.Scan(&ms); err != nil {
			return nil, apperr.Store("scan match time", err)
		}
		times = append(times, time.UnixMilli(ms).UTC())
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Store("list match times", err)
	}
	return times, nil
}

// appearanceQuery drops participations whose player row is gone.
const appearanceQuery = `
	SELECT m.id, m.created_at, mp.player_id, p.name, mp.team, mp.role, mp.result
	FROM match_players mp
	JOIN matches m ON m.id = mp.match_id
	JOIN players p ON p.id = mp.player_id
`

func (s *store) Appearances(ctx context.Context, window *Window) ([]Appearance, error) {
	query := appearanceQuery
	var args []any
	if window != nil {
		query += ` WHERE m.created_at >= ? AND m.created_at < ?`
		args = append(args, window.From.UnixMilli(), window.To.UnixMilli())
	}
	query += ` ORDER BY m.created_at, m.id, mp.id`
	return s.queryAppearances(ctx, "list appearances", query, args...)
}

func (s *store) PlayerAppearances(ctx context.Context, playerID int64, window *Window) ([]Appearance, error) {
	query := appearanceQuery + ` WHERE mp.player_id = ?`
	args := []any{playerID}
	if window != nil {
		query += ` AND m.created_at >= ? AND m.created_at < ?`
		args = append(args, window.From.UnixMilli(), window.To.UnixMilli())
	}
	query += ` ORDER BY m.created_at, m.id`
	return s.queryAppearances(ctx, "list player appearances", query, args...)
}

func (s *store) queryAppearances(ctx context.Context, op, query string, args ...any) ([]Appearance, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperr.Store(op, err)
	}
	defer rows.Close()

	out := []Appearance{}
	for rows.Next() {
		var a Appearance
		var createdAt int64
		var playerID int64
		if err := rows.Scan(&a.MatchID, &createdAt, &playerID, &a.PlayerName, &a.Team, &a.Role, &a.Result); err != nil {
			return nil, apperr.Store(op, err)
		}
		a.CreatedAt = time.UnixMilli(createdAt).UTC()
		a.PlayerID = &playerID
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Store(op, err)
	}
	return out, nil
}

// scanMatch is a helper function to scan a single match row.
func scanMatch(scanner interface{ Scan(...any) error }) (*Match, error) {
	var m Match
	var createdAt int64
	if err := scanner.Scan(&m.ID, &m.Winner, &createdAt, &m.MapName, &m.BanA, &m.BanB); err != nil {
		return nil, err
	}
	m.CreatedAt = time.UnixMilli(createdAt).UTC()
	return &m, nil
}

func checkPlayersExist(ctx context.Context, tx *sql.Tx, entries []Entry) error {
	if len(entries) == 0 {
		return nil
	}
	ids := make(map[int64]struct{}, len(entries))
	args := make([]any, 0, len(entries))
	for _, e := range entries {
		if _, ok := ids[e.PlayerID]; ok {
			continue
		}
		ids[e.PlayerID] = struct{}{}
		args = append(args, e.PlayerID)
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(args)), ",")
	var found int
	err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM players WHERE id IN (`+placeholders+`)`, args...).Scan(&found)
	if err != nil {
		return apperr.Store("check players", err)
	}
	if found != len(args) {
		return apperr.Validation(CodeUnknownPlayer)
	}
	return nil
}

func insertParticipations(ctx context.Context, tx *sql.Tx, matchID int64, m NewMatch) error {
	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO match_players (match_id, player_id, team, role, result)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return apperr.Store("prepare participation insert", err)
	}
	defer stmt.Close()

	for _, e := range m.Entries {
		if _, err := stmt.ExecContext(ctx, matchID, e.PlayerID, e.Team, e.Role, ResultFor(e.Team, m.Winner)); err != nil {
			return apperr.Store("insert participation", err)
		}
	}
	return nil
}

// isUniqueViolation matches the constraint error text shared by the sqlite3
// and libsql drivers.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

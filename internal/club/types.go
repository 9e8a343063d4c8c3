package club

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/mauv0809/role-ladder/internal/timestamp"
)

// store handles all database operations for the ladder.
type store struct {
	db  *sql.DB
	now func() time.Time
}

// Team is one side of a match.
type Team string

const (
	TeamA Team = "A"
	TeamB Team = "B"
)

// Valid reports whether t names one of the two sides.
func (t Team) Valid() bool {
	return t == TeamA || t == TeamB
}

// Role is the position a player filled in a match.
type Role string

const (
	RoleTank   Role = "Tank"
	RoleDPS    Role = "DPS"
	RoleHealer Role = "Healer"
)

// Result of a participation, derived from the team and the match winner.
type Result string

const (
	ResultWin  Result = "W"
	ResultLoss Result = "L"
)

// ResultFor returns W when team won the match and L otherwise.
func ResultFor(team, winner Team) Result {
	if team == winner {
		return ResultWin
	}
	return ResultLoss
}

// RosterQuota is the number of slots per role on each team.
var RosterQuota = map[Role]int{
	RoleTank:   1,
	RoleDPS:    2,
	RoleHealer: 2,
}

// RosterSize is the number of participations in a complete match.
const RosterSize = 10

// Client visible validation codes.
const (
	CodeEmptyName       = "EMPTY_NAME"
	CodeDuplicate       = "DUPLICATE"
	CodeInUse           = "IN_USE"
	CodeMissingFields   = "MISSING_FIELDS"
	CodeInvalidWinner   = "INVALID_WINNER"
	CodeInvalidRoster   = "INVALID_ROSTER"
	CodeDuplicatePlayer = "DUPLICATE_PLAYER"
	CodeUnknownPlayer   = "UNKNOWN_PLAYER"
)

// Player is a registered ladder player.
type Player struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"-"`
}

// Match is a recorded game.
type Match struct {
	ID        int64     `json:"id"`
	Winner    Team      `json:"winner"`
	CreatedAt time.Time `json:"created_at"`
	MapName   string    `json:"map_name"`
	BanA      string    `json:"ban_a"`
	BanB      string    `json:"ban_b"`
}

// MarshalJSON renders CreatedAt in the canonical instant form.
func (m Match) MarshalJSON() ([]byte, error) {
	type alias Match
	return json.Marshal(struct {
		alias
		CreatedAt string `json:"created_at"`
	}{alias: alias(m), CreatedAt: timestamp.Format(m.CreatedAt)})
}

// Participation is one player's slot in a match. PlayerID is nil only for
// rows whose player no longer exists.
type Participation struct {
	ID       int64  `json:"id"`
	MatchID  int64  `json:"match_id"`
	PlayerID *int64 `json:"player_id"`
	Team     Team   `json:"team"`
	Role     Role   `json:"role"`
	Result   Result `json:"result"`
}

// Appearance is a participation joined with its match time and player name.
type Appearance struct {
	MatchID    int64
	CreatedAt  time.Time
	PlayerID   *int64
	PlayerName string
	Team       Team
	Role       Role
	Result     Result
}

// Window is the half-open interval [From, To).
type Window struct {
	From time.Time
	To   time.Time
}

// Entry is a requested roster slot.
type Entry struct {
	PlayerID int64 `json:"player_id"`
	Team     Team  `json:"team"`
	Role     Role  `json:"role"`
}

// UnmarshalJSON accepts the player id as "playerId" or "player_id", given as
// a number or a numeric string. A client supplied result is ignored.
func (e *Entry) UnmarshalJSON(b []byte) error {
	var raw struct {
		PlayerID      json.RawMessage `json:"playerId"`
		PlayerIDSnake json.RawMessage `json:"player_id"`
		Team          string          `json:"team"`
		Role          string          `json:"role"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}

	idRaw := raw.PlayerID
	if len(idRaw) == 0 || string(idRaw) == "null" {
		idRaw = raw.PlayerIDSnake
	}
	id, err := parseID(idRaw)
	if err != nil {
		return err
	}

	*e = Entry{PlayerID: id, Team: Team(raw.Team), Role: Role(raw.Role)}
	return nil
}

func parseID(raw json.RawMessage) (int64, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return 0, nil
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.Int64()
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return 0, fmt.Errorf("invalid player id %s", raw)
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	return strconv.ParseInt(s, 10, 64)
}

// MatchInput is a match as submitted by an admin, before validation.
type MatchInput struct {
	Winner    string  `json:"winner"`
	CreatedAt string  `json:"created_at"`
	MapName   string  `json:"map_name"`
	BanA      string  `json:"ban_a"`
	BanB      string  `json:"ban_b"`
	Entries   []Entry `json:"entries"`
}

// NewMatch is a validated match ready to be written.
type NewMatch struct {
	Winner    Team
	CreatedAt time.Time
	MapName   string
	BanA      string
	BanB      string
	Entries   []Entry
}

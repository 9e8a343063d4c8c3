package club

import (
	"strings"

	"github.com/mauv0809/role-ladder/internal/apperr"
)

// NormalizeRole maps legacy role labels onto the three ladder roles.
// Unknown labels are returned trimmed but otherwise unchanged.
func NormalizeRole(r Role) Role {
	switch s := strings.TrimSpace(string(r)); strings.ToLower(s) {
	case "tank":
		return RoleTank
	case "dps", "damage":
		return RoleDPS
	case "healer", "heal", "support":
		return RoleHealer
	default:
		return Role(s)
	}
}

// NormalizeName trims a player name and rejects empty names.
func NormalizeName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", apperr.Validation(CodeEmptyName)
	}
	return name, nil
}

// Validate trims in, normalizes entry roles and checks the roster rules. It
// does not consult the store, so unknown player ids are not detected here.
func Validate(in MatchInput) (MatchInput, error) {
	out := MatchInput{
		Winner:    strings.ToUpper(strings.TrimSpace(in.Winner)),
		CreatedAt: strings.TrimSpace(in.CreatedAt),
		MapName:   strings.TrimSpace(in.MapName),
		BanA:      strings.TrimSpace(in.BanA),
		BanB:      strings.TrimSpace(in.BanB),
		Entries:   make([]Entry, len(in.Entries)),
	}
	if out.Winner == "" || out.CreatedAt == "" || out.MapName == "" || out.BanA == "" || out.BanB == "" {
		return MatchInput{}, apperr.Validation(CodeMissingFields)
	}
	if !Team(out.Winner).Valid() {
		return MatchInput{}, apperr.Validation(CodeInvalidWinner)
	}

	if len(in.Entries) != RosterSize {
		return MatchInput{}, apperr.Validation(CodeInvalidRoster)
	}
	slots := map[Team]map[Role]int{TeamA: {}, TeamB: {}}
	seen := make(map[int64]bool, len(in.Entries))
	for i, e := range in.Entries {
		e.Team = Team(strings.ToUpper(strings.TrimSpace(string(e.Team))))
		e.Role = NormalizeRole(e.Role)
		if !e.Team.Valid() || e.PlayerID <= 0 {
			return MatchInput{}, apperr.Validation(CodeInvalidRoster)
		}
		if _, ok := RosterQuota[e.Role]; !ok {
			return MatchInput{}, apperr.Validation(CodeInvalidRoster)
		}
		if seen[e.PlayerID] {
			return MatchInput{}, apperr.Validation(CodeDuplicatePlayer)
		}
		seen[e.PlayerID] = true
		slots[e.Team][e.Role]++
		out.Entries[i] = e
	}
	for _, team := range []Team{TeamA, TeamB} {
		for role, want := range RosterQuota {
			if slots[team][role] != want {
				return MatchInput{}, apperr.Validation(CodeInvalidRoster)
			}
		}
	}
	return out, nil
}

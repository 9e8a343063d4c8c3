// Package stats folds match participations into per-player win/loss records.
package stats

import "sort"

// Role names counted in the per-role buckets. Matching is exact.
const (
	RoleTank   = "Tank"
	RoleDPS    = "DPS"
	RoleHealer = "Healer"
)

// ResultWin marks a won participation. Any other value counts as a loss.
const ResultWin = "W"

// Row is one participation joined with its player. PlayerID is nil when the
// participation no longer references a player.
type Row struct {
	PlayerID   *int64
	PlayerName string
	Role       string
	Result     string
}

// Summary is the aggregate record for one player.
type Summary struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Games  int    `json:"games"`
	TankW  int    `json:"tank_w"`
	TankL  int    `json:"tank_l"`
	DPSW   int    `json:"dps_w"`
	DPSL   int    `json:"dps_l"`
	HealW  int    `json:"heal_w"`
	HealL  int    `json:"heal_l"`
	Wins   int    `json:"wins"`
	Losses int    `json:"losses"`
}

// WinRate is wins over games, 0 for a player without games.
func (s Summary) WinRate() float64 {
	if s.Games == 0 {
		return 0
	}
	return float64(s.Wins) / float64(s.Games)
}

// Aggregate builds one Summary per distinct player id, ordered by id.
// Rows without a player are skipped.
func Aggregate(rows []Row) []Summary {
	byID := make(map[int64]*Summary)
	for _, r := range rows {
		if r.PlayerID == nil {
			continue
		}
		s, ok := byID[*r.PlayerID]
		if !ok {
			s = &Summary{ID: *r.PlayerID, Name: r.PlayerName}
			byID[*r.PlayerID] = s
		}
		s.add(r.Role, r.Result == ResultWin)
	}

	out := make([]Summary, 0, len(byID))
	for _, s := range byID {
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (s *Summary) add(role string, won bool) {
	s.Games++
	if won {
		s.Wins++
	} else {
		s.Losses++
	}

	switch role {
	case RoleTank:
		if won {
			s.TankW++
		} else {
			s.TankL++
		}
	case RoleDPS:
		if won {
			s.DPSW++
		} else {
			s.DPSL++
		}
	case RoleHealer:
		if won {
			s.HealW++
		} else {
			s.HealL++
		}
	}
}

package stats

import (
	"fmt"
	"sort"
	"strings"
)

// SortKey selects the column a leaderboard is ordered by.
type SortKey string

const (
	SortName    SortKey = "name"
	SortGames   SortKey = "games"
	SortWinRate SortKey = "winrate"
	SortWins    SortKey = "wins"
	SortLosses  SortKey = "losses"
)

// ParseSortKey maps a query value onto a SortKey. Empty selects games.
func ParseSortKey(v string) (SortKey, error) {
	switch k := SortKey(strings.ToLower(strings.TrimSpace(v))); k {
	case "":
		return SortGames, nil
	case SortName, SortGames, SortWinRate, SortWins, SortLosses:
		return k, nil
	default:
		return "", fmt.Errorf("unknown sort key %q", v)
	}
}

// ParseOrder reports whether v asks for ascending order. Empty means descending.
func ParseOrder(v string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "", "desc":
		return false, nil
	case "asc":
		return true, nil
	default:
		return false, fmt.Errorf("unknown sort order %q", v)
	}
}

// Sort orders summaries in place. Ties keep their input order.
func Sort(summaries []Summary, key SortKey, asc bool) {
	less := lessFunc(key)
	sort.SliceStable(summaries, func(i, j int) bool {
		if asc {
			return less(summaries[i], summaries[j])
		}
		return less(summaries[j], summaries[i])
	})
}

func lessFunc(key SortKey) func(a, b Summary) bool {
	switch key {
	case SortName:
		return func(a, b Summary) bool { return strings.ToLower(a.Name) < strings.ToLower(b.Name) }
	case SortWinRate:
		return func(a, b Summary) bool { return a.WinRate() < b.WinRate() }
	case SortWins:
		return func(a, b Summary) bool { return a.Wins < b.Wins }
	case SortLosses:
		return func(a, b Summary) bool { return a.Losses < b.Losses }
	default:
		return func(a, b Summary) bool { return a.Games < b.Games }
	}
}

package handlers

import (
	"net/http"

	"github.com/mauv0809/role-ladder/internal/club"
	"github.com/mauv0809/role-ladder/internal/stats"
	"github.com/mauv0809/role-ladder/internal/timestamp"
)

// StatsHandler aggregates per-player, per-role results. Query parameters:
// date (YYYY-MM-DD, reporting zone), sort and order.
func StatsHandler(store club.ClubStore, normalizer *timestamp.Normalizer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		key, err := stats.ParseSortKey(q.Get("sort"))
		if err != nil {
			badRequest(w, CodeInvalidSort)
			return
		}
		asc, err := stats.ParseOrder(q.Get("order"))
		if err != nil {
			badRequest(w, CodeInvalidSort)
			return
		}
		window, err := dayWindow(normalizer, q.Get("date"))
		if err != nil {
			writeError(w, r, err)
			return
		}

		appearances, err := store.Appearances(r.Context(), window)
		if err != nil {
			writeError(w, r, err)
			return
		}
		rows := make([]stats.Row, 0, len(appearances))
		for _, a := range appearances {
			rows = append(rows, stats.Row{
				PlayerID:   a.PlayerID,
				PlayerName: a.PlayerName,
				Role:       string(a.Role),
				Result:     string(a.Result),
			})
		}

		summaries := stats.Aggregate(rows)
		stats.Sort(summaries, key, asc)
		writeJSON(w, http.StatusOK, summaries)
	}
}

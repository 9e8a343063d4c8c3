package handlers

import (
	"net/http"

	"github.com/mauv0809/role-ladder/internal/club"
	"github.com/mauv0809/role-ladder/internal/timestamp"
)

type playerMatch struct {
	CreatedAt string      `json:"created_at"`
	Team      club.Team   `json:"team"`
	Role      club.Role   `json:"role"`
	Result    club.Result `json:"result"`
}

// ListPlayersHandler lists players sorted by name.
func ListPlayersHandler(store club.ClubStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		players, err := store.ListPlayers(r.Context())
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, players)
	}
}

// AddPlayerHandler registers a player from {name}.
func AddPlayerHandler(store club.ClubStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Name string `json:"name"`
		}
		if err := decodeBody(r, &body); err != nil {
			badRequest(w, CodeInvalidBody)
			return
		}
		id, err := store.AddPlayer(r.Context(), body.Name)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeSuccess(w, id)
	}
}

// DeletePlayerHandler removes a player without match history.
func DeletePlayerHandler(store club.ClubStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(r)
		if !ok {
			badRequest(w, CodeInvalidID)
			return
		}
		if err := store.DeletePlayer(r.Context(), id); err != nil {
			writeError(w, r, err)
			return
		}
		writeSuccess(w, 0)
	}
}

// PlayerMatchesHandler lists a player's participations, oldest first,
// optionally limited to one reporting day.
func PlayerMatchesHandler(store club.ClubStore, normalizer *timestamp.Normalizer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(r)
		if !ok {
			badRequest(w, CodeInvalidID)
			return
		}
		window, err := dayWindow(normalizer, r.URL.Query().Get("date"))
		if err != nil {
			writeError(w, r, err)
			return
		}

		appearances, err := store.PlayerAppearances(r.Context(), id, window)
		if err != nil {
			writeError(w, r, err)
			return
		}
		out := make([]playerMatch, 0, len(appearances))
		for _, a := range appearances {
			out = append(out, playerMatch{
				CreatedAt: timestamp.Format(a.CreatedAt),
				Team:      a.Team,
				Role:      a.Role,
				Result:    a.Result,
			})
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// dayWindow returns nil for an empty date.
func dayWindow(normalizer *timestamp.Normalizer, date string) (*club.Window, error) {
	if date == "" {
		return nil, nil
	}
	from, to, err := normalizer.DayWindow(date)
	if err != nil {
		return nil, err
	}
	return &club.Window{From: from, To: to}, nil
}

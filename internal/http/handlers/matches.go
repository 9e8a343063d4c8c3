package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/mauv0809/role-ladder/internal/club"
	"github.com/mauv0809/role-ladder/internal/processor"
	"github.com/mauv0809/role-ladder/internal/timestamp"
)

// matchRequest is the body of match create and edit requests. Older clients
// send the roster as "players" instead of "entries".
type matchRequest struct {
	club.MatchInput
	Players   []club.Entry    `json:"players"`
	AdminID   json.RawMessage `json:"admin_id"`
	AdminName string          `json:"admin_name"`
}

// actor accepts admin_id as a number or a numeric string.
func (m matchRequest) actor() processor.Actor {
	return actorFrom(strings.Trim(string(m.AdminID), `"`), m.AdminName)
}

func (m matchRequest) input() club.MatchInput {
	in := m.MatchInput
	if len(in.Entries) == 0 {
		in.Entries = m.Players
	}
	return in
}

type matchDate struct {
	MatchDate string `json:"match_date"`
}

type dayAppearance struct {
	CreatedAt string      `json:"created_at"`
	Name      string      `json:"name"`
	Team      club.Team   `json:"team"`
	Role      club.Role   `json:"role"`
	Result    club.Result `json:"result"`
}

type matchSlot struct {
	PlayerID *int64      `json:"player_id"`
	Team     club.Team   `json:"team"`
	Role     club.Role   `json:"role"`
	Result   club.Result `json:"result"`
}

type matchDetail struct {
	Match   club.Match  `json:"match"`
	Players []matchSlot `json:"players"`
}

// actorFrom builds the request's admin identity. Invalid or missing ids give
// the zero Actor.
func actorFrom(rawID, name string) processor.Actor {
	id, ok := parsePositive(strings.TrimSpace(rawID))
	if !ok {
		return processor.Actor{}
	}
	name = strings.TrimSpace(name)
	if name == "" {
		name = "Unknown"
	}
	return processor.Actor{ID: id, Name: name}
}

// CreateMatchHandler records a new match.
func CreateMatchHandler(proc *processor.Processor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body matchRequest
		if err := decodeBody(r, &body); err != nil {
			badRequest(w, CodeInvalidBody)
			return
		}
		id, err := proc.Create(r.Context(), body.actor(), body.input())
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeSuccess(w, id)
	}
}

// UpdateMatchHandler replaces a match and its roster.
func UpdateMatchHandler(proc *processor.Processor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(r)
		if !ok {
			badRequest(w, CodeInvalidID)
			return
		}
		var body matchRequest
		if err := decodeBody(r, &body); err != nil {
			badRequest(w, CodeInvalidBody)
			return
		}
		if err := proc.Update(r.Context(), body.actor(), id, body.input()); err != nil {
			writeError(w, r, err)
			return
		}
		writeSuccess(w, 0)
	}
}

// DeleteMatchHandler removes a match. The admin is identified by the
// admin_id and admin_name query parameters.
func DeleteMatchHandler(proc *processor.Processor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(r)
		if !ok {
			badRequest(w, CodeInvalidID)
			return
		}
		q := r.URL.Query()
		if err := proc.Delete(r.Context(), actorFrom(q.Get("admin_id"), q.Get("admin_name")), id); err != nil {
			writeError(w, r, err)
			return
		}
		writeSuccess(w, 0)
	}
}

// MatchDatesHandler lists the distinct reporting days with matches, newest
// first.
func MatchDatesHandler(store club.ClubStore, normalizer *timestamp.Normalizer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		times, err := store.MatchTimes(r.Context())
		if err != nil {
			writeError(w, r, err)
			return
		}
		dates := make([]matchDate, 0)
		seen := make(map[string]bool)
		for _, t := range times {
			day := normalizer.DayOf(t)
			if seen[day] {
				continue
			}
			seen[day] = true
			dates = append(dates, matchDate{MatchDate: day})
		}
		writeJSON(w, http.StatusOK, dates)
	}
}

// MatchesByDateHandler lists every participation of the given day.
func MatchesByDateHandler(store club.ClubStore, normalizer *timestamp.Normalizer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		window, err := dayWindow(normalizer, r.PathValue("date"))
		if err != nil {
			writeError(w, r, err)
			return
		}
		appearances, err := store.Appearances(r.Context(), window)
		if err != nil {
			writeError(w, r, err)
			return
		}
		out := make([]dayAppearance, 0, len(appearances))
		for _, a := range appearances {
			out = append(out, dayAppearance{
				CreatedAt: normalizer.DayOf(a.CreatedAt),
				Name:      a.PlayerName,
				Team:      a.Team,
				Role:      a.Role,
				Result:    a.Result,
			})
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// AdminMatchesHandler lists all matches, newest first.
func AdminMatchesHandler(store club.ClubStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		matches, err := store.ListMatches(r.Context())
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, matches)
	}
}

// AdminMatchHandler returns one match with its roster for editing.
func AdminMatchHandler(store club.ClubStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(r)
		if !ok {
			badRequest(w, CodeInvalidID)
			return
		}
		match, participations, err := store.GetMatch(r.Context(), id)
		if err != nil {
			writeError(w, r, err)
			return
		}
		detail := matchDetail{Match: *match, Players: make([]matchSlot, 0, len(participations))}
		for _, p := range participations {
			detail.Players = append(detail.Players, matchSlot{PlayerID: p.PlayerID, Team: p.Team, Role: p.Role, Result: p.Result})
		}
		writeJSON(w, http.StatusOK, detail)
	}
}

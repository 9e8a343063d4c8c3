package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/role-ladder/internal/admin"
	"github.com/mauv0809/role-ladder/internal/apperr"
	"github.com/mauv0809/role-ladder/internal/metrics"
)

type loginResponse struct {
	Success bool            `json:"success"`
	Admin   *admin.Identity `json:"admin,omitempty"`
	Message string          `json:"message,omitempty"`
}

// LoginHandler verifies {username, password}. Failures never say whether the
// username exists.
func LoginHandler(admins admin.AdminService, metricsSvc metrics.Metrics) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Username string `json:"username"`
			Password string `json:"password"`
		}
		if err := decodeBody(r, &body); err != nil {
			badRequest(w, CodeInvalidBody)
			return
		}
		if body.Username == "" || body.Password == "" {
			writeJSON(w, http.StatusOK, loginResponse{Message: admin.CodeMissingFields})
			return
		}

		identity, err := admins.Authenticate(r.Context(), body.Username, body.Password)
		if err != nil {
			if apperr.KindOf(err) != apperr.KindAuth {
				writeError(w, r, err)
				return
			}
			metricsSvc.IncLogins(metrics.LoginFailure)
			log.Warn("Admin login rejected", "username", body.Username, "remote", r.RemoteAddr)
			writeJSON(w, http.StatusOK, loginResponse{Message: apperr.CodeOf(err)})
			return
		}
		metricsSvc.IncLogins(metrics.LoginSuccess)
		log.Info("Admin logged in", "adminID", identity.ID)
		writeJSON(w, http.StatusOK, loginResponse{Success: true, Admin: identity})
	}
}

func ListAdminsHandler(admins admin.AdminService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := admins.List(r.Context())
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, list)
	}
}

func CreateAdminHandler(admins admin.AdminService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Username string `json:"username"`
			Password string `json:"password"`
			Name     string `json:"name"`
		}
		if err := decodeBody(r, &body); err != nil {
			badRequest(w, CodeInvalidBody)
			return
		}
		id, err := admins.Create(r.Context(), body.Username, body.Password, body.Name)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeSuccess(w, id)
	}
}

// DeleteAdminHandler removes an admin. The last remaining admin cannot be
// deleted.
func DeleteAdminHandler(admins admin.AdminService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(r)
		if !ok {
			badRequest(w, CodeInvalidID)
			return
		}
		if err := admins.Delete(r.Context(), id); err != nil {
			writeError(w, r, err)
			return
		}
		writeSuccess(w, 0)
	}
}

// AppendLogHandler records a client supplied audit entry.
func AppendLogHandler(admins admin.AdminService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			AdminID json.RawMessage `json:"admin_id"`
			Action  string          `json:"action"`
		}
		if err := decodeBody(r, &body); err != nil {
			badRequest(w, CodeInvalidBody)
			return
		}
		adminID, _ := parsePositive(strings.Trim(string(body.AdminID), `"`))
		if err := admins.Log(r.Context(), adminID, body.Action); err != nil {
			writeError(w, r, err)
			return
		}
		writeSuccess(w, 0)
	}
}

// AdminLogsHandler returns the latest audit entries, newest first.
func AdminLogsHandler(admins admin.AdminService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entries, err := admins.RecentLogs(r.Context())
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, entries)
	}
}

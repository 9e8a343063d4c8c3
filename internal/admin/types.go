package admin

import (
	"database/sql"
	"encoding/json"
	"time"

	"github.com/mauv0809/role-ladder/internal/timestamp"
)

// store handles all database operations for admins.
type store struct {
	db  *sql.DB
	now func() time.Time
}

// Client visible codes.
const (
	CodeMissingFields   = "MISSING_FIELDS"
	CodeDuplicate       = "DUPLICATE"
	CodeLastAdmin       = "LAST_ADMIN"
	CodePasswordTooLong = "PASSWORD_TOO_LONG"
)

// RecentLogLimit is the number of audit entries returned by RecentLogs.
const RecentLogLimit = 100

// Identity is what a successful login returns.
type Identity struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
}

// Credentials is an admin row including the password hash. It never leaves
// this package's callers inside the server.
type Credentials struct {
	Identity
	PasswordHash string
}

// Admin is an admin account as listed to other admins.
type Admin struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

func (a Admin) MarshalJSON() ([]byte, error) {
	type alias Admin
	return json.Marshal(struct {
		alias
		CreatedAt string `json:"created_at"`
	}{alias: alias(a), CreatedAt: timestamp.Format(a.CreatedAt)})
}

// Author is the admin attached to a log entry.
type Author struct {
	Username string `json:"username"`
	Name     string `json:"name"`
}

// LogEntry is one audit record. Admin is nil once its author was deleted.
type LogEntry struct {
	ID        int64     `json:"id"`
	AdminID   *int64    `json:"admin_id"`
	Action    string    `json:"action"`
	CreatedAt time.Time `json:"created_at"`
	Admin     *Author   `json:"admins"`
}

func (l LogEntry) MarshalJSON() ([]byte, error) {
	type alias LogEntry
	return json.Marshal(struct {
		alias
		CreatedAt string `json:"created_at"`
	}{alias: alias(l), CreatedAt: timestamp.Format(l.CreatedAt)})
}

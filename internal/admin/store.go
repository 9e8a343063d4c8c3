package admin

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/role-ladder/internal/apperr"
)

// NewStore creates a new AdminStore.
func NewStore(db *sql.DB) AdminStore {
	return &store{
		db:  db,
		now: time.Now,
	}
}

// FindByUsername matches the username exactly, including case.
func (s *store) FindByUsername(ctx context.Context, username string) (*Credentials, error) {
	var c Credentials
	err := s.db.QueryRowContext(ctx, `
		SELECT id, username, name, password FROM admins WHERE username = ? COLLATE BINARY
	`, username).Scan(&c.ID, &c.Username, &c.Name, &c.PasswordHash)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("admin")
	}
	if err != nil {
		return nil, apperr.Store("find admin", err)
	}
	return &c, nil
}

// Insert adds an admin. Usernames are unique ignoring case.
func (s *store) Insert(ctx context.Context, username, passwordHash, name string) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, apperr.Store("begin insert admin", err)
	}
	defer tx.Rollback()

	var exists bool
	if err := tx.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM admins WHERE username = ?)`, username).Scan(&exists); err != nil {
		return 0, apperr.Store("check admin username", err)
	}
	if exists {
		return 0, apperr.Validation(CodeDuplicate)
	}

	res, err := tx.ExecContext(ctx, `
		INSERT INTO admins (username, password, name, created_at) VALUES (?, ?, ?, ?)
	`, username, passwordHash, name, s.now().UnixMilli())
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return 0, apperr.Validation(CodeDuplicate)
		}
		return 0, apperr.Store("insert admin", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, apperr.Store("insert admin", err)
	}
	if err := tx.Commit(); err != nil {
		return 0, apperr.Store("commit insert admin", err)
	}
	return id, nil
}

// Delete removes an admin unless it is the last one. The count and the
// delete share a transaction.
func (s *store) Delete(ctx context.Context, id int64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return apperr.Store("begin delete admin", err)
	}
	defer tx.Rollback()

	var exists bool
	if err := tx.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM admins WHERE id = ?)`, id).Scan(&exists); err != nil {
		return apperr.Store("check admin", err)
	}
	if !exists {
		return apperr.NotFound("admin")
	}

	var count int
	if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM admins`).Scan(&count); err != nil {
		return apperr.Store("count admins", err)
	}
	if count <= 1 {
		return apperr.Constraint(CodeLastAdmin)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM admins WHERE id = ?`, id); err != nil {
		return apperr.Store("delete admin", err)
	}
	if err := tx.Commit(); err != nil {
		return apperr.Store("commit delete admin", err)
	}
	return nil
}

// List returns all admins, oldest first.
func (s *store) List(ctx context.Context) ([]Admin, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, username, name, created_at FROM admins ORDER BY created_at, id`)
	if err != nil {
		return nil, apperr.Store("list admins", err)
	}
	defer rows.Close()

	admins := []Admin{}
	for rows.Next() {
		var a Admin
		var createdAt int64
		if err := rows.Scan(&a.ID, &a.Username, &a.Name, &createdAt); err != nil {
			return nil, apperr.Store("scan admin", err)
		}
		a.CreatedAt = time.UnixMilli(createdAt).UTC()
		admins = append(admins, a)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Store("list admins", err)
	}
	return admins, nil
}

func (s *store) Count(ctx context.Context) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM admins`).Scan(&count); err != nil {
		return 0, apperr.Store("count admins", err)
	}
	return count, nil
}

// AppendLog records an audit entry. A nil or unknown adminID stores an
// anonymous entry.
func (s *store) AppendLog(ctx context.Context, adminID *int64, action string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO admin_logs (admin_id, action, created_at)
		VALUES ((SELECT id FROM admins WHERE id = ?), ?, ?)
	`, adminID, action, s.now().UnixMilli())
	if err != nil {
		return apperr.Store("append admin log", err)
	}
	log.Debug("Admin action logged", "action", action)
	return nil
}

// RecentLogs returns the newest entries first.
func (s *store) RecentLogs(ctx context.Context, limit int) ([]LogEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT l.id, l.admin_id, l.action, l.created_at, a.username, a.name
		FROM admin_logs l
		LEFT JOIN admins a ON a.id = l.admin_id
		ORDER BY l.created_at DESC, l.id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, apperr.Store("list admin logs", err)
	}
	defer rows.Close()

	entries := []LogEntry{}
	for rows.Next() {
		var e LogEntry
		var adminID sql.NullInt64
		var createdAt int64
		var username, name sql.NullString
		if err := rows.Scan(&e.ID, &adminID, &e.Action, &createdAt, &username, &name); err != nil {
			return nil, apperr.Store("scan admin log", err)
		}
		e.CreatedAt = time.UnixMilli(createdAt).UTC()
		if adminID.Valid {
			e.AdminID = &adminID.Int64
		}
		if username.Valid {
			e.Admin = &Author{Username: username.String, Name: name.String}
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Store("list admin logs", err)
	}
	return entries, nil
}

package admin

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/role-ladder/internal/apperr"
	"golang.org/x/crypto/bcrypt"
)

// Service implements AdminService on top of an AdminStore.
type Service struct {
	store     AdminStore
	cost      int
	dummyHash []byte
}

// NewService creates a Service hashing passwords at the given bcrypt cost.
// Costs outside bcrypt's range fall back to bcrypt.DefaultCost.
func NewService(store AdminStore, cost int) *Service {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	// Compared against when the username is unknown so both failure paths
	// cost one bcrypt comparison.
	dummy, err := bcrypt.GenerateFromPassword([]byte("role-ladder"), cost)
	if err != nil {
		log.Fatal("Failed to prepare password hasher", "error", err)
	}
	return &Service{store: store, cost: cost, dummyHash: dummy}
}

// Authenticate verifies a username and password. Unknown users and wrong
// passwords produce the same error.
func (s *Service) Authenticate(ctx context.Context, username, password string) (*Identity, error) {
	creds, err := s.store.FindByUsername(ctx, username)
	if apperr.KindOf(err) == apperr.KindNotFound {
		_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(password))
		return nil, apperr.Auth()
	}
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(creds.PasswordHash), []byte(password)); err != nil {
		return nil, apperr.Auth()
	}
	identity := creds.Identity
	return &identity, nil
}

// Create hashes the password and stores a new admin.
func (s *Service) Create(ctx context.Context, username, password, name string) (int64, error) {
	username = strings.TrimSpace(username)
	name = strings.TrimSpace(name)
	if username == "" || name == "" || strings.TrimSpace(password) == "" {
		return 0, apperr.Validation(CodeMissingFields)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return 0, apperr.Validation(CodePasswordTooLong)
	}
	if err != nil {
		return 0, err
	}

	id, err := s.store.Insert(ctx, username, string(hash), name)
	if err != nil {
		return 0, err
	}
	log.Info("Admin created", "adminID", id, "username", username)
	return id, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	log.Info("Admin deleted", "adminID", id)
	return nil
}

func (s *Service) List(ctx context.Context) ([]Admin, error) {
	return s.store.List(ctx)
}

func (s *Service) Count(ctx context.Context) (int, error) {
	return s.store.Count(ctx)
}

// Log appends an audit entry. An adminID of 0 records no author.
func (s *Service) Log(ctx context.Context, adminID int64, action string) error {
	action = strings.TrimSpace(action)
	if action == "" {
		return apperr.Validation(CodeMissingFields)
	}
	var author *int64
	if adminID > 0 {
		author = &adminID
	}
	return s.store.AppendLog(ctx, author, action)
}

// RecentLogs returns the latest RecentLogLimit entries, newest first.
func (s *Service) RecentLogs(ctx context.Context) ([]LogEntry, error) {
	return s.store.RecentLogs(ctx, RecentLogLimit)
}

package admin

import "context"

// AdminStore persists admins and the audit log.
type AdminStore interface {
	FindByUsername(ctx context.Context, username string) (*Credentials, error)
	Insert(ctx context.Context, username, passwordHash, name string) (int64, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]Admin, error)
	Count(ctx context.Context) (int, error)
	AppendLog(ctx context.Context, adminID *int64, action string) error
	RecentLogs(ctx context.Context, limit int) ([]LogEntry, error)
}

// AdminService is the admin authentication and management API used by the
// HTTP layer.
type AdminService interface {
	Authenticate(ctx context.Context, username, password string) (*Identity, error)
	Create(ctx context.Context, username, password, name string) (int64, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]Admin, error)
	Count(ctx context.Context) (int, error)
	Log(ctx context.Context, adminID int64, action string) error
	RecentLogs(ctx context.Context) ([]LogEntry, error)
}

package dbconnect

import (
	"context"
	"database/sql"
)

// HealthChecker is implemented by every storage backend the server can report on.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// Database is a SQL connector owned by the server for its whole lifetime.
type Database interface {
	HealthChecker
	Connect() (*sql.DB, error)
	Close() error
}

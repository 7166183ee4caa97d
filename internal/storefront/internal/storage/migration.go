package storage

import (
	"database/sql"
	"fmt"

	"storefront_api/pkg/dbconnect/migration"
	"storefront_api/pkg/logger"
)

const (
	StorefrontSchemaMigration = "storefront.schema"
	ItemsMigration            = "storefront.items"
	AuditLogMigration         = "storefront.audit_log"
	AdminsMigration           = "storefront.admins"
)

type MigrationsSchema struct{}

func (m *MigrationsSchema) UpMigration(db *sql.DB) error {
	query :=
		`
		CREATE SCHEMA IF NOT EXISTS migrations;
		`
	_, err := db.Exec(query)
	if err != nil {
		return fmt.Errorf("failed to create migrations schema: %w", err)
	}
	_, err = db.Exec(`
        CREATE TABLE IF NOT EXISTS migrations.migrations (
            id SERIAL PRIMARY KEY,
            time TIMESTAMP NOT NULL,
            name VARCHAR(255) UNIQUE NOT NULL
        );
    `)
	if err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}
	return nil
}

// step is a named DDL statement applied once.
type step struct {
	name  string
	query string
	log   logger.Logger
}

func (s *step) UpMigration(db *sql.DB) error {
	if ok, err := migration.CheckAndSkip(db, s.name); err != nil {
		return err
	} else if ok {
		s.log.Log("Migration '%s' already completed. Skipping.", s.name)
		return nil
	}
	if err := migration.ExecuteAndMark(db, s.query, s.name); err != nil {
		return err
	}
	s.log.Log("Migration '%s' completed successfully.", s.name)
	return nil
}

// Migrations returns the storefront schema in apply order.
func Migrations(log logger.Logger) []migration.MigrationInterface {
	return []migration.MigrationInterface{
		&MigrationsSchema{},
		&step{name: StorefrontSchemaMigration, log: log, query: `
		CREATE SCHEMA IF NOT EXISTS storefront;`},
		&step{name: ItemsMigration, log: log, query: `
		CREATE TABLE IF NOT EXISTS storefront.items (
			id UUID PRIMARY KEY,
			name TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			price NUMERIC(12, 2) NOT NULL CHECK (price >= 0),
			category TEXT NOT NULL DEFAULT '',
			image TEXT NOT NULL DEFAULT '',
			in_stock BOOLEAN NOT NULL DEFAULT TRUE,
			sold INT NOT NULL DEFAULT 0 CHECK (sold >= 0),
			is_new BOOLEAN NOT NULL DEFAULT FALSE,
			on_sale BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
		);
		CREATE INDEX IF NOT EXISTS storefront_items_category_idx ON storefront.items(category);`},
		&step{name: AuditLogMigration, log: log, query: `
		CREATE TABLE IF NOT EXISTS storefront.audit_log (
			id UUID PRIMARY KEY,
			action VARCHAR(16) NOT NULL,
			item_id VARCHAR(64) NOT NULL,
			item_name TEXT NOT NULL DEFAULT '',
			admin VARCHAR(255) NOT NULL,
			logged_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
		);
		CREATE INDEX IF NOT EXISTS storefront_audit_log_time_idx ON storefront.audit_log(logged_at DESC);`},
		&step{name: AdminsMigration, log: log, query: `
		CREATE TABLE IF NOT EXISTS storefront.admins (
			username VARCHAR(255) PRIMARY KEY,
			password_hash TEXT NOT NULL
		);`},
	}
}

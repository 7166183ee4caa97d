package migration

import (
	"database/sql"
	"fmt"
)

type MigrationInterface interface {
	UpMigration(*sql.DB) error
}

// ApplyAll runs migrations in order and stops at the first failure.
func ApplyAll(db *sql.DB, migrations ...MigrationInterface) error {
	for _, m := range migrations {
		if err := m.UpMigration(db); err != nil {
			return err
		}
	}
	return nil
}

// CheckAndSkip reports whether the named migration is already recorded.
func CheckAndSkip(db *sql.DB, name string) (bool, error) {
	var migrationExists bool
	err := db.QueryRow("SELECT EXISTS (SELECT 1 FROM migrations.migrations WHERE name = $1)", name).Scan(&migrationExists)
	if err != nil {
		return false, fmt.Errorf("failed to check migration status: %w", err)
	}
	return migrationExists, nil
}

// ExecuteAndMark runs query and records the migration in one transaction.
func ExecuteAndMark(db *sql.DB, query, name string) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin migration '%s': %w", name, err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(query); err != nil {
		return fmt.Errorf("failed to apply migration '%s': %w", name, err)
	}
	if _, err := tx.Exec("INSERT INTO migrations.migrations (name, time) VALUES ($1, current_timestamp)", name); err != nil {
		return fmt.Errorf("failed to mark '%s' migration as complete: %w", name, err)
	}
	return tx.Commit()
}

package storage

import (
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront_api/pkg/dbconnect/migration"
	"storefront_api/pkg/logger"
)

func TestMigrations_SkipCompletedSteps(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta(`CREATE SCHEMA IF NOT EXISTS migrations`)).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta(`CREATE TABLE IF NOT EXISTS migrations.migrations`)).WillReturnResult(sqlmock.NewResult(0, 0))

	// storefront.schema is already recorded
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT EXISTS`)).WithArgs(StorefrontSchemaMigration).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	for _, name := range []string{ItemsMigration, AuditLogMigration, AdminsMigration} {
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT EXISTS`)).WithArgs(name).
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
		mock.ExpectBegin()
		mock.ExpectExec(`CREATE TABLE IF NOT EXISTS storefront\.`).WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO migrations.migrations`)).WithArgs(name).
			WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectCommit()
	}

	require.NoError(t, migration.ApplyAll(db, Migrations(logger.Discard())...))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMigrations_EscapedTextColumnsAreUnbounded(t *testing.T) {
	queries := map[string]string{}
	for _, m := range Migrations(logger.Discard()) {
		if s, ok := m.(*step); ok {
			queries[s.name] = s.query
		}
	}

	assert.Contains(t, queries[ItemsMigration], "name TEXT NOT NULL")
	assert.Contains(t, queries[ItemsMigration], "category TEXT NOT NULL")
	assert.Contains(t, queries[AuditLogMigration], "item_name TEXT NOT NULL")
	assert.NotContains(t, queries[ItemsMigration], "VARCHAR")
}

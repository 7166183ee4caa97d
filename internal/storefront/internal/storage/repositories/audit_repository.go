package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"storefront_api/internal/storefront/internal/models"
)

type AuditRepository struct {
	db *sql.DB
}

func NewAuditRepository(db *sql.DB) *AuditRepository {
	return &AuditRepository{db: db}
}

func (r *AuditRepository) Append(ctx context.Context, entry models.AuditLogEntry) (models.AuditLogEntry, error) {
	query := `INSERT INTO storefront.audit_log (id, action, item_id, item_name, admin, logged_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	entry.ID = uuid.NewString()
	_, err := r.db.ExecContext(ctx, query, entry.ID, string(entry.Action), entry.ItemID, entry.ItemName, entry.Admin, entry.Timestamp)
	if err != nil {
		return models.AuditLogEntry{}, fmt.Errorf("failed to append audit entry: %w", err)
	}
	return entry, nil
}

func (r *AuditRepository) List(ctx context.Context, limit int) ([]models.AuditLogEntry, error) {
	query := `SELECT id, action, item_id, item_name, admin, logged_at
		FROM storefront.audit_log ORDER BY logged_at DESC LIMIT $1`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}
	defer rows.Close()

	entries := make([]models.AuditLogEntry, 0)
	for rows.Next() {
		var e models.AuditLogEntry
		var action string
		if err := rows.Scan(&e.ID, &action, &e.ItemID, &e.ItemName, &e.Admin, &e.Timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		e.Action = models.AuditAction(action)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error occurred during row iteration: %w", err)
	}
	return entries, nil
}

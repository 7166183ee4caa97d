package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"storefront_api/internal/storefront/internal/business"
	"storefront_api/internal/storefront/internal/models"
)

type AdminRepository struct {
	db *sql.DB
}

func NewAdminRepository(db *sql.DB) *AdminRepository {
	return &AdminRepository{db: db}
}

func (r *AdminRepository) FindByUsername(ctx context.Context, username string) (models.AdminAccount, error) {
	query := `SELECT username, password_hash FROM storefront.admins WHERE username = $1`

	var acc models.AdminAccount
	err := r.db.QueryRowContext(ctx, query, username).Scan(&acc.Username, &acc.PasswordHash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.AdminAccount{}, business.ErrNotFound
		}
		return models.AdminAccount{}, fmt.Errorf("failed to get admin: %w", err)
	}
	return acc, nil
}

func (r *AdminRepository) Create(ctx context.Context, account models.AdminAccount) error {
	query := `INSERT INTO storefront.admins (username, password_hash) VALUES ($1, $2)
		ON CONFLICT (username) DO NOTHING`

	if _, err := r.db.ExecContext(ctx, query, account.Username, account.PasswordHash); err != nil {
		return fmt.Errorf("failed to create admin: %w", err)
	}
	return nil
}

package business

import (
	"context"

	"storefront_api/internal/storefront/internal/models"
)

// ItemRepository is the Catalog Store. Update and Delete return ErrNotFound for unknown ids.
type ItemRepository interface {
	List(ctx context.Context) ([]models.Item, error)
	Create(ctx context.Context, item models.Item) (models.Item, error)
	Update(ctx context.Context, id string, patch models.ItemPatch) (models.Item, error)
	Delete(ctx context.Context, id string) (models.Item, error)
	// ValidID reports whether id has the store's identifier format.
	ValidID(id string) bool
}

// AuditRepository is append-only. List returns the newest entries first.
type AuditRepository interface {
	Append(ctx context.Context, entry models.AuditLogEntry) (models.AuditLogEntry, error)
	List(ctx context.Context, limit int) ([]models.AuditLogEntry, error)
}

type AdminRepository interface {
	FindByUsername(ctx context.Context, username string) (models.AdminAccount, error)
	Create(ctx context.Context, account models.AdminAccount) error
}

// CatalogSource provides the full catalog snapshot shown to shoppers.
type CatalogSource interface {
	ListItems(ctx context.Context) ([]models.Item, error)
}

type TokenIssuer interface {
	Issue(username string) (string, error)
}

type storeCatalog struct {
	repo ItemRepository
}

// StoreCatalog exposes the item store as a catalog source.
func StoreCatalog(repo ItemRepository) CatalogSource {
	return storeCatalog{repo: repo}
}

func (s storeCatalog) ListItems(ctx context.Context) ([]models.Item, error) {
	return s.repo.List(ctx)
}

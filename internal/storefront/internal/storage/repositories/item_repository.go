package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"storefront_api/internal/storefront/internal/business"
	"storefront_api/internal/storefront/internal/models"
)

const itemColumns = `id, name, description, price, category, image, in_stock, sold, is_new, on_sale, created_at`

type ItemRepository struct {
	db *sql.DB
}

func NewItemRepository(db *sql.DB) *ItemRepository {
	return &ItemRepository{db: db}
}

func (r *ItemRepository) ValidID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanItem(row rowScanner) (models.Item, error) {
	var item models.Item
	var price decimal.Decimal
	err := row.Scan(&item.ID, &item.Name, &item.Description, &price, &item.Category, &item.Image,
		&item.InStock, &item.Sold, &item.IsNew, &item.OnSale, &item.CreatedAt)
	if err != nil {
		return models.Item{}, err
	}
	item.Price = price.InexactFloat64()
	return item, nil
}

func (r *ItemRepository) List(ctx context.Context) ([]models.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM storefront.items ORDER BY created_at`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}
	defer rows.Close()

	items := make([]models.Item, 0)
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error occurred during row iteration: %w", err)
	}
	return items, nil
}

func (r *ItemRepository) Create(ctx context.Context, item models.Item) (models.Item, error) {
	query := `INSERT INTO storefront.items (` + itemColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	item.ID = uuid.NewString()
	_, err := r.db.ExecContext(ctx, query, item.ID, item.Name, item.Description, decimal.NewFromFloat(item.Price),
		item.Category, item.Image, item.InStock, item.Sold, item.IsNew, item.OnSale, item.CreatedAt)
	if err != nil {
		return models.Item{}, classify("insert item", err)
	}
	return item, nil
}

// Update changes only the fields set in patch, in a single statement.
func (r *ItemRepository) Update(ctx context.Context, id string, patch models.ItemPatch) (models.Item, error) {
	query := `UPDATE storefront.items SET
			name = COALESCE($2, name),
			description = COALESCE($3, description),
			price = COALESCE($4, price),
			category = COALESCE($5, category),
			image = COALESCE($6, image),
			in_stock = COALESCE($7, in_stock),
			sold = COALESCE($8, sold),
			is_new = COALESCE($9, is_new),
			on_sale = COALESCE($10, on_sale)
		WHERE id = $1
		RETURNING ` + itemColumns

	var price decimal.NullDecimal
	if patch.Price != nil {
		price = decimal.NewNullDecimal(decimal.NewFromFloat(*patch.Price))
	}

	item, err := scanItem(r.db.QueryRowContext(ctx, query, id,
		nullString(patch.Name), nullString(patch.Description), price, nullString(patch.Category),
		nullString(patch.Image), nullBool(patch.InStock), nullInt(patch.Sold), nullBool(patch.IsNew),
		nullBool(patch.OnSale)))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Item{}, business.ErrNotFound
		}
		return models.Item{}, classify("update item "+id, err)
	}
	return item, nil
}

func (r *ItemRepository) Delete(ctx context.Context, id string) (models.Item, error) {
	query := `DELETE FROM storefront.items WHERE id = $1 RETURNING ` + itemColumns

	item, err := scanItem(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Item{}, business.ErrNotFound
		}
		return models.Item{}, fmt.Errorf("failed to delete item %s: %w", id, err)
	}
	return item, nil
}

func nullString(v *string) sql.NullString {
	if v == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *v, Valid: true}
}

func nullBool(v *bool) sql.NullBool {
	if v == nil {
		return sql.NullBool{}
	}
	return sql.NullBool{Bool: *v, Valid: true}
}

func nullInt(v *int) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*v), Valid: true}
}

// classify turns integrity violations into validation errors; anything else is a store failure.
func classify(op string, err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code.Class() {
		case "22":
			return business.Invalid("body", "item value out of range for storage")
		case "23":
			return business.Invalid("body", "item violates a storage constraint")
		}
	}
	return fmt.Errorf("failed to %s: %w", op, err)
}

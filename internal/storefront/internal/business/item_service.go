package business

import (
	"context"
	"errors"
	"time"

	"storefront_api/internal/storefront/internal/models"
	"storefront_api/pkg/logger"
)

const DefaultAuditLimit = 200

// ItemService is the admin gateway to the item store. Every successful mutation is
// recorded in the audit log before the call returns.
type ItemService struct {
	items   ItemRepository
	audit   AuditRepository
	log     logger.Logger
	now     func() time.Time
	observe func(action models.AuditAction)
}

func NewItemService(items ItemRepository, audit AuditRepository, log logger.Logger) *ItemService {
	return &ItemService{items: items, audit: audit, log: log, now: time.Now}
}

// OnMutation registers a hook called after each recorded mutation.
func (s *ItemService) OnMutation(fn func(action models.AuditAction)) {
	s.observe = fn
}

func (s *ItemService) List(ctx context.Context) ([]models.Item, error) {
	items, err := s.items.List(ctx)
	if err != nil {
		return nil, upstream("list items", err)
	}
	return items, nil
}

func (s *ItemService) Create(ctx context.Context, admin string, patch models.ItemPatch) (models.Item, error) {
	patch, err := NormalizeItemPatch(patch, true)
	if err != nil {
		return models.Item{}, err
	}

	item := models.NewItem(s.now().UTC())
	patch.Apply(&item)

	created, err := s.items.Create(ctx, item)
	if err != nil {
		return models.Item{}, storeError("create item", err)
	}
	if err := s.record(ctx, models.ActionCreate, created, admin); err != nil {
		return models.Item{}, err
	}
	return created, nil
}

func (s *ItemService) Update(ctx context.Context, admin, id string, patch models.ItemPatch) (models.Item, error) {
	if !s.items.ValidID(id) {
		return models.Item{}, invalid("id", "invalid item id")
	}
	if patch.IsEmpty() {
		return models.Item{}, invalid("body", "no fields to update")
	}
	patch, err := NormalizeItemPatch(patch, false)
	if err != nil {
		return models.Item{}, err
	}

	updated, err := s.items.Update(ctx, id, patch)
	if err != nil {
		return models.Item{}, storeError("update item", err)
	}
	if err := s.record(ctx, models.ActionUpdate, updated, admin); err != nil {
		return models.Item{}, err
	}
	return updated, nil
}

func (s *ItemService) Delete(ctx context.Context, admin, id string) error {
	if !s.items.ValidID(id) {
		return invalid("id", "invalid item id")
	}
	deleted, err := s.items.Delete(ctx, id)
	if err != nil {
		return storeError("delete item", err)
	}
	return s.record(ctx, models.ActionDelete, deleted, admin)
}

// AuditLog returns up to limit entries, newest first.
func (s *ItemService) AuditLog(ctx context.Context, limit int) ([]models.AuditLogEntry, error) {
	if limit <= 0 {
		limit = DefaultAuditLimit
	}
	entries, err := s.audit.List(ctx, limit)
	if err != nil {
		return nil, upstream("list audit log", err)
	}
	return entries, nil
}

func (s *ItemService) record(ctx context.Context, action models.AuditAction, item models.Item, admin string) error {
	_, err := s.audit.Append(ctx, models.AuditLogEntry{
		Action:    action,
		ItemID:    item.ID,
		ItemName:  item.Name,
		Admin:     admin,
		Timestamp: s.now().UTC(),
	})
	if err != nil {
		s.log.Error("audit append failed after %s of %s: %v", action, item.ID, err)
		return upstream("append audit log", err)
	}
	s.log.Log("%s %s item %s", admin, action, item.ID)
	if s.observe != nil {
		s.observe(action)
	}
	return nil
}

func storeError(op string, err error) error {
	if errors.Is(err, ErrNotFound) {
		return ErrNotFound
	}
	var verr *ValidationError
	if errors.As(err, &verr) {
		return verr
	}
	return upstream(op, err)
}

// Package memory is an in-process Catalog Store for development and tests.
// Data is lost on restart.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"storefront_api/internal/storefront/internal/business"
	"storefront_api/internal/storefront/internal/models"
)

type ItemStore struct {
	mu    sync.RWMutex
	items map[string]models.Item
	order []string
}

func NewItemStore(seed ...models.Item) *ItemStore {
	s := &ItemStore{items: make(map[string]models.Item)}
	for _, item := range seed {
		if item.ID == "" {
			item.ID = uuid.NewString()
		}
		s.items[item.ID] = item
		s.order = append(s.order, item.ID)
	}
	return s
}

func (s *ItemStore) ValidID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

func (s *ItemStore) List(_ context.Context) ([]models.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Item, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.items[id])
	}
	return out, nil
}

func (s *ItemStore) Create(_ context.Context, item models.Item) (models.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	item.ID = uuid.NewString()
	s.items[item.ID] = item
	s.order = append(s.order, item.ID)
	return item, nil
}

func (s *ItemStore) Update(_ context.Context, id string, patch models.ItemPatch) (models.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	item, ok := s.items[id]
	if !ok {
		return models.Item{}, business.ErrNotFound
	}
	patch.Apply(&item)
	s.items[id] = item
	return item, nil
}

func (s *ItemStore) Delete(_ context.Context, id string) (models.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	item, ok := s.items[id]
	if !ok {
		return models.Item{}, business.ErrNotFound
	}
	delete(s.items, id)
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return item, nil
}

type AuditStore struct {
	mu      sync.RWMutex
	entries []models.AuditLogEntry
}

func NewAuditStore() *AuditStore {
	return &AuditStore{}
}

func (s *AuditStore) Append(_ context.Context, entry models.AuditLogEntry) (models.AuditLogEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry.ID = uuid.NewString()
	s.entries = append(s.entries, entry)
	return entry, nil
}

func (s *AuditStore) List(_ context.Context, limit int) ([]models.AuditLogEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.AuditLogEntry, len(s.entries))
	copy(out, s.entries)
	// newest first; equal timestamps keep reverse insertion order
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Timestamp.After(out[j].Timestamp) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

type AdminStore struct {
	mu       sync.RWMutex
	accounts map[string]models.AdminAccount
}

func NewAdminStore() *AdminStore {
	return &AdminStore{accounts: make(map[string]models.AdminAccount)}
}

func (s *AdminStore) FindByUsername(_ context.Context, username string) (models.AdminAccount, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	acc, ok := s.accounts[username]
	if !ok {
		return models.AdminAccount{}, business.ErrNotFound
	}
	return acc, nil
}

func (s *AdminStore) Create(_ context.Context, account models.AdminAccount) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accounts[account.Username] = account
	return nil
}

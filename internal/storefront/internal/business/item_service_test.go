package business_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront_api/internal/storefront/internal/business"
	"storefront_api/internal/storefront/internal/models"
	"storefront_api/internal/storefront/internal/storage/memory"
	"storefront_api/pkg/logger"
)

func newItemService() (*business.ItemService, *memory.ItemStore, *memory.AuditStore) {
	items := memory.NewItemStore()
	audit := memory.NewAuditStore()
	return business.NewItemService(items, audit, logger.Discard()), items, audit
}

func strp(s string) *string { return &s }

func TestItemService_CreateAppliesDefaultsAndAudits(t *testing.T) {
	svc, _, audit := newItemService()
	var actions []models.AuditAction
	svc.OnMutation(func(a models.AuditAction) { actions = append(actions, a) })

	created, err := svc.Create(context.Background(), "alice", models.ItemPatch{Name: strp("Mug"), Price: fptr(12)})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.True(t, created.InStock)
	assert.False(t, created.IsNew)
	assert.Zero(t, created.Sold)
	assert.False(t, created.CreatedAt.IsZero())

	entries, err := audit.List(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, models.ActionCreate, entries[0].Action)
	assert.Equal(t, created.ID, entries[0].ItemID)
	assert.Equal(t, "alice", entries[0].Admin)
	assert.Equal(t, []models.AuditAction{models.ActionCreate}, actions)
}

func TestItemService_UpdateChangesOnlyGivenFields(t *testing.T) {
	svc, _, _ := newItemService()
	ctx := context.Background()
	created, err := svc.Create(ctx, "alice", models.ItemPatch{Name: strp("Mug"), Price: fptr(12), Category: strp("mugs")})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, "bob", created.ID, models.ItemPatch{Price: fptr(15)})
	require.NoError(t, err)
	assert.Equal(t, 15.0, updated.Price)
	assert.Equal(t, "Mug", updated.Name)
	assert.Equal(t, "mugs", updated.Category)

	log, err := svc.AuditLog(ctx, 0)
	require.NoError(t, err)
	require.Len(t, log, 2)
	assert.Equal(t, models.ActionUpdate, log[0].Action)
	assert.Equal(t, "bob", log[0].Admin)
}

func TestItemService_UpdateAndDeleteErrors(t *testing.T) {
	svc, _, audit := newItemService()
	ctx := context.Background()
	missing := uuid.NewString()

	_, err := svc.Update(ctx, "alice", missing, models.ItemPatch{Price: fptr(1)})
	assert.ErrorIs(t, err, business.ErrNotFound)

	err = svc.Delete(ctx, "alice", missing)
	assert.ErrorIs(t, err, business.ErrNotFound)

	_, err = svc.Update(ctx, "alice", "not-a-uuid", models.ItemPatch{Price: fptr(1)})
	assert.Equal(t, []string{"id"}, fieldParams(t, err))

	err = svc.Delete(ctx, "alice", "not-a-uuid")
	assert.Equal(t, []string{"id"}, fieldParams(t, err))

	_, err = svc.Update(ctx, "alice", missing, models.ItemPatch{})
	assert.Equal(t, []string{"body"}, fieldParams(t, err))

	entries, _ := audit.List(ctx, 10)
	assert.Empty(t, entries)
}

func TestItemService_CreateRejectsInvalidWithoutAudit(t *testing.T) {
	svc, items, audit := newItemService()
	ctx := context.Background()

	_, err := svc.Create(ctx, "alice", models.ItemPatch{Name: strp("Mug"), Price: fptr(-3)})
	assert.Equal(t, []string{"price"}, fieldParams(t, err))

	all, _ := items.List(ctx)
	assert.Empty(t, all)
	entries, _ := audit.List(ctx, 10)
	assert.Empty(t, entries)
}

func TestItemService_DeleteRemovesAndAudits(t *testing.T) {
	svc, items, _ := newItemService()
	ctx := context.Background()
	created, err := svc.Create(ctx, "alice", models.ItemPatch{Name: strp("Mug"), Price: fptr(1)})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, "alice", created.ID))

	remaining, err := items.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, remaining)

	log, err := svc.AuditLog(ctx, 1)
	require.NoError(t, err)
	require.Len(t, log, 1)
	assert.Equal(t, models.ActionDelete, log[0].Action)
	assert.Equal(t, "Mug", log[0].ItemName)
}

type failingAudit struct{}

func (failingAudit) Append(context.Context, models.AuditLogEntry) (models.AuditLogEntry, error) {
	return models.AuditLogEntry{}, errors.New("disk full")
}

func (failingAudit) List(context.Context, int) ([]models.AuditLogEntry, error) {
	return nil, errors.New("disk full")
}

func TestItemService_AuditFailureSurfacesAsUpstream(t *testing.T) {
	svc := business.NewItemService(memory.NewItemStore(), failingAudit{}, logger.Discard())

	_, err := svc.Create(context.Background(), "alice", models.ItemPatch{Name: strp("Mug"), Price: fptr(1)})
	var uerr *business.UpstreamError
	require.ErrorAs(t, err, &uerr)
	assert.Equal(t, "append audit log", uerr.Op)
}

func TestCatalogService_StoreSource(t *testing.T) {
	store := memory.NewItemStore(
		models.Item{Name: "Mug", Price: 5, Category: "mugs"},
		models.Item{Name: "Tee", Price: 200, Category: "shirts"},
	)
	svc := business.NewCatalogService(business.StoreCatalog(store), business.NewCatalogQuery("en"))

	items, err := svc.Items(context.Background())
	require.NoError(t, err)
	assert.Len(t, items, 2)

	page, err := svc.Search(context.Background(), models.QueryRequest{Category: "shirts"})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "Tee", page.Items[0].Name)
	assert.Equal(t, 200.0, page.MaxPrice)
}

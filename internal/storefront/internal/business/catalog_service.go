package business

import (
	"context"

	"storefront_api/internal/storefront/internal/models"
)

// CatalogService loads the catalog from its source and runs shopper queries over it.
type CatalogService struct {
	source CatalogSource
	query  *CatalogQuery
}

func NewCatalogService(source CatalogSource, query *CatalogQuery) *CatalogService {
	return &CatalogService{source: source, query: query}
}

func (s *CatalogService) Items(ctx context.Context) ([]models.Item, error) {
	items, err := s.source.ListItems(ctx)
	if err != nil {
		return nil, upstream("load catalog", err)
	}
	if items == nil {
		items = []models.Item{}
	}
	return items, nil
}

func (s *CatalogService) Search(ctx context.Context, req models.QueryRequest) (models.Page, error) {
	items, err := s.Items(ctx)
	if err != nil {
		return models.Page{}, err
	}
	return s.query.Query(items, req), nil
}

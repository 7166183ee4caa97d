package handlers

import (
	"net/http"

	"storefront_api/internal/storefront/internal/business"
	"storefront_api/internal/storefront/internal/models"
	"storefront_api/pkg/logger"
)

type CatalogHandler struct {
	catalog *business.CatalogService
	log     logger.Logger
}

func NewCatalogHandler(catalog *business.CatalogService, log logger.Logger) *CatalogHandler {
	return &CatalogHandler{catalog: catalog, log: log}
}

type cartRequest struct {
	Items []models.CartLine `json:"items"`
}

type cartQuote struct {
	Lines []models.CartLine `json:"lines"`
	Count int               `json:"count"`
	Total string            `json:"total"`
}

// GetItems returns the whole catalog; filtering happens in the browser.
func (h *CatalogHandler) GetItems(w http.ResponseWriter, r *http.Request) {
	items, err := h.catalog.Items(r.Context())
	if err != nil {
		writeError(w, h.log, err, "Failed to fetch items")
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *CatalogHandler) SearchItems(w http.ResponseWriter, r *http.Request) {
	page, err := h.catalog.Search(r.Context(), business.ParseQueryRequest(r.URL.Query()))
	if err != nil {
		writeError(w, h.log, err, "Failed to fetch items")
		return
	}
	writeJSON(w, http.StatusOK, page)
}

// QuoteCart merges client-held lines and prices them exactly.
func (h *CatalogHandler) QuoteCart(w http.ResponseWriter, r *http.Request) {
	var req cartRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.log, err, "Failed to quote cart")
		return
	}
	cart := business.NewCart(req.Items)
	writeJSON(w, http.StatusOK, cartQuote{
		Lines: cart.Lines(),
		Count: cart.Count(),
		Total: business.FormatMoney(cart.Total()),
	})
}

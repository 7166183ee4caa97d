package handlers

import (
	"net/http"

	"storefront_api/internal/storefront/internal/business"
	"storefront_api/pkg/logger"
)

type CheckoutHandler struct {
	checkout *business.CheckoutService
	log      logger.Logger
}

func NewCheckoutHandler(checkout *business.CheckoutService, log logger.Logger) *CheckoutHandler {
	return &CheckoutHandler{checkout: checkout, log: log}
}

type checkoutResponse struct {
	URL string `json:"url"`
}

func (h *CheckoutHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	var req cartRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.log, err, "Checkout failed")
		return
	}
	url, err := h.checkout.BuildSession(r.Context(), req.Items)
	if err != nil {
		writeError(w, h.log, err, "Checkout failed")
		return
	}
	writeJSON(w, http.StatusOK, checkoutResponse{URL: url})
}

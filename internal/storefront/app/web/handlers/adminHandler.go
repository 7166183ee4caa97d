package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"storefront_api/internal/auth"
	"storefront_api/internal/storefront/internal/business"
	"storefront_api/pkg/logger"
)

type AdminHandler struct {
	items  *business.ItemService
	admins *business.AdminService
	log    logger.Logger
}

func NewAdminHandler(items *business.ItemService, admins *business.AdminService, log logger.Logger) *AdminHandler {
	return &AdminHandler{items: items, admins: admins, log: log}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
}

func (h *AdminHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.log, err, "Login failed")
		return
	}
	token, err := h.admins.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		writeError(w, h.log, err, "Login failed")
		return
	}
	writeJSON(w, http.StatusOK, loginResponse{Token: token})
}

func (h *AdminHandler) CreateItem(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(r)
	if err != nil {
		writeError(w, h.log, err, "Failed to create item")
		return
	}
	patch, err := business.DecodeItemPayload(body, true)
	if err != nil {
		writeError(w, h.log, err, "Failed to create item")
		return
	}
	item, err := h.items.Create(r.Context(), adminName(r), patch)
	if err != nil {
		writeError(w, h.log, err, "Failed to create item")
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

func (h *AdminHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(r)
	if err != nil {
		writeError(w, h.log, err, "Failed to update item")
		return
	}
	patch, err := business.DecodeItemPayload(body, false)
	if err != nil {
		writeError(w, h.log, err, "Failed to update item")
		return
	}
	item, err := h.items.Update(r.Context(), adminName(r), chi.URLParam(r, "id"), patch)
	if err != nil {
		writeError(w, h.log, err, "Failed to update item")
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (h *AdminHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	if err := h.items.Delete(r.Context(), adminName(r), chi.URLParam(r, "id")); err != nil {
		writeError(w, h.log, err, "Failed to delete item")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// GetLogs lists audit entries, newest first. ?limit= caps the result.
func (h *AdminHandler) GetLogs(w http.ResponseWriter, r *http.Request) {
	limit := business.DefaultAuditLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			writeError(w, h.log, business.Invalid("limit", "limit must be a positive integer"), "")
			return
		}
		limit = n
	}
	entries, err := h.items.AuditLog(r.Context(), limit)
	if err != nil {
		writeError(w, h.log, err, "Failed to fetch logs")
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

func adminName(r *http.Request) string {
	name, _ := auth.AdminFromContext(r.Context())
	return name
}

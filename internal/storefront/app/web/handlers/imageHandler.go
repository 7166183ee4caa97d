package handlers

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"

	"storefront_api/internal/storefront/pkg/clients"
	"storefront_api/pkg/logger"
)

type ImageFetcher interface {
	Fetch(ctx context.Context, imageURL string) (*clients.ImageResponse, error)
}

type ImageHandler struct {
	fetcher ImageFetcher
	prefix  string
	log     logger.Logger
}

func NewImageHandler(fetcher ImageFetcher, allowedPrefix string, log logger.Logger) *ImageHandler {
	return &ImageHandler{fetcher: fetcher, prefix: allowedPrefix, log: log}
}

// Allowed reports whether raw is an https URL under the configured prefix.
func (h *ImageHandler) Allowed(raw string) bool {
	if raw == "" || h.prefix == "" || !strings.HasPrefix(raw, h.prefix) {
		return false
	}
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return u.Scheme == "https" && u.Host != "" && u.User == nil
}

func (h *ImageHandler) ProxyImage(w http.ResponseWriter, r *http.Request) {
	imageURL := r.URL.Query().Get("url")
	if !h.Allowed(imageURL) {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Invalid image URL"})
		return
	}

	img, err := h.fetcher.Fetch(r.Context(), imageURL)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	defer img.Body.Close()

	if img.Status != http.StatusOK {
		w.WriteHeader(img.Status)
		return
	}
	w.Header().Set("Content-Type", img.ContentType)
	w.Header().Set("Cache-Control", "public, max-age=86400")
	w.WriteHeader(http.StatusOK)
	if _, err := io.Copy(w, img.Body); err != nil {
		h.log.Warn("image stream interrupted: %v", err)
	}
}

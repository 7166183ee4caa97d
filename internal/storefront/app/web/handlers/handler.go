package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"storefront_api/internal/storefront/internal/business"
	"storefront_api/pkg/logger"
)

type errorResponse struct {
	Error   string                `json:"error"`
	Details []business.FieldError `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps the business error taxonomy onto HTTP. Upstream causes are
// logged and replaced by fallback so provider details never reach the client.
func writeError(w http.ResponseWriter, log logger.Logger, err error, fallback string) {
	var verr *business.ValidationError
	var maxErr *http.MaxBytesError
	var uerr *business.UpstreamError

	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Validation failed", Details: verr.Fields})
	case errors.Is(err, business.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "Item not found"})
	case errors.Is(err, business.ErrInvalidLogin):
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "Invalid credentials"})
	case errors.As(err, &maxErr):
		writeJSON(w, http.StatusRequestEntityTooLarge, errorResponse{Error: "Request body too large"})
	case errors.As(err, &uerr):
		log.Error("%s: %v", uerr.Op, uerr.Err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: fallback})
	default:
		log.Error("unhandled error: %v", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: fallback})
	}
}

// readBody returns the (already size-limited) request body.
func readBody(r *http.Request) ([]byte, error) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return nil, err
		}
		return nil, business.Invalid("body", "unreadable request body")
	}
	return body, nil
}

// decodeJSON decodes a JSON body into dst, reporting malformed input as a validation error.
func decodeJSON(r *http.Request, dst interface{}) error {
	body, err := readBody(r)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return business.Invalid("body", "malformed JSON")
	}
	return nil
}

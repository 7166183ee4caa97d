package app

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront_api/config"
)

func memoryConfig(stripeURL string) *config.AppConfig {
	cfg := config.Default()
	cfg.Storage.Driver = config.StorageMemory
	cfg.Auth.JWTSecret = "server-test-secret"
	cfg.Auth.AdminUsername = "owner"
	cfg.Auth.AdminPassword = "hunter2"
	cfg.Stripe.APIURL = stripeURL
	return cfg
}

func call(t *testing.T, h http.Handler, method, target, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var rdr io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		rdr = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, target, rdr)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestStorefrontServer_MemoryDriver(t *testing.T) {
	var stripeCalls int
	stripe := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		stripeCalls++
		assert.Equal(t, "/v1/checkout/sessions", r.URL.Path)
		assert.NotEmpty(t, r.Header.Get("Idempotency-Key"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"cs_test_1","url":"https://checkout.stripe.test/cs_test_1"}`))
	}))
	defer stripe.Close()

	srv := NewStorefrontServer(memoryConfig(stripe.URL), io.Discard)
	defer srv.close()

	h, err := srv.Handler(context.Background())
	require.NoError(t, err)

	rec := call(t, h, http.MethodGet, "/api/items", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())

	rec = call(t, h, http.MethodPost, "/api/admin/login", "", map[string]string{"username": "owner", "password": "hunter2"})
	require.Equal(t, http.StatusOK, rec.Code)
	var login struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &login))

	rec = call(t, h, http.MethodPost, "/api/admin/items", login.Token, map[string]interface{}{"name": "Mug", "price": 9.99})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var item struct {
		ID string `json:"_id"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &item))

	rec = call(t, h, http.MethodGet, "/api/items", "", nil)
	assert.Contains(t, rec.Body.String(), item.ID)

	rec = call(t, h, http.MethodPost, "/api/checkout", "", map[string]interface{}{
		"items": []map[string]interface{}{{"_id": item.ID, "name": "Mug", "price": 9.99, "quantity": 2}},
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.JSONEq(t, `{"url":"https://checkout.stripe.test/cs_test_1"}`, rec.Body.String())
	assert.Equal(t, 1, stripeCalls)
}

func TestStorefrontServer_UnknownDriver(t *testing.T) {
	cfg := memoryConfig("http://127.0.0.1:0")
	cfg.Storage.Driver = "sqlite"

	_, err := NewStorefrontServer(cfg, io.Discard).Handler(context.Background())
	assert.ErrorContains(t, err, "unknown storage driver")
}

package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authconfig "storefront_api/internal/auth/config"
)

const testSecret = "test-secret"

func newTestIssuer() *Issuer {
	cfg := authconfig.Default()
	cfg.JWTSecret = testSecret
	return NewIssuer(cfg)
}

func protected() http.Handler {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		name, _ := AdminFromContext(r.Context())
		w.Write([]byte(name))
	})
	return AuthMiddleware(testSecret)(RoleMiddleware(RoleAdmin)(ok))
}

func serve(t *testing.T, h http.Handler, authHeader string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/api/admin/logs", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	token, err := newTestIssuer().Issue("alice")
	require.NoError(t, err)

	rec := serve(t, protected(), "Bearer "+token)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "alice", rec.Body.String())
}

func TestAuthMiddleware_MissingToken(t *testing.T) {
	rec := serve(t, protected(), "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = serve(t, protected(), "Basic abc")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddleware_GarbageToken(t *testing.T) {
	rec := serve(t, protected(), "Bearer not-a-jwt")
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid token")
}

func TestAuthMiddleware_WrongSecret(t *testing.T) {
	cfg := authconfig.Default()
	cfg.JWTSecret = "other"
	token, err := NewIssuer(cfg).Issue("alice")
	require.NoError(t, err)

	rec := serve(t, protected(), "Bearer "+token)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestAuthMiddleware_ExpiredToken(t *testing.T) {
	iss := newTestIssuer()
	iss.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	token, err := iss.Issue("alice")
	require.NoError(t, err)

	rec := serve(t, protected(), "Bearer "+token)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRoleMiddleware_RejectsOtherRoles(t *testing.T) {
	claims := Claims{
		Username: "bob",
		Role:     "viewer",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	rec := serve(t, protected(), "Bearer "+token)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "Insufficient privileges")
}

func TestIssuer_Claims(t *testing.T) {
	token, err := newTestIssuer().Issue("alice")
	require.NoError(t, err)

	claims, err := ValidateToken(token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, RoleAdmin, claims.Role)
	assert.Equal(t, "storefront", claims.Issuer)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, time.Minute)

	_, err = newTestIssuer().Issue("")
	assert.Error(t, err)
}

package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v4"
)

type contextKey string

const (
	AdminKey contextKey = "admin"

	RoleAdmin = "admin"
)

type Claims struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// AuthMiddleware requires a bearer token signed with jwtSecret.
// No token is 401, a token that fails verification is 403.
func AuthMiddleware(jwtSecret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString := extractToken(r)
			if tokenString == "" {
				deny(w, http.StatusUnauthorized, "Authorization required")
				return
			}

			claims, err := ValidateToken(tokenString, jwtSecret)
			if err != nil {
				deny(w, http.StatusForbidden, "Invalid token")
				return
			}

			ctx := context.WithValue(r.Context(), AdminKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func RoleMiddleware(allowedRoles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := r.Context().Value(AdminKey).(*Claims)
			if !ok {
				deny(w, http.StatusForbidden, "Access denied")
				return
			}

			for _, role := range allowedRoles {
				if claims.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}

			deny(w, http.StatusForbidden, "Insufficient privileges")
		})
	}
}

// AdminFromContext returns the username of the authenticated admin, if any.
func AdminFromContext(ctx context.Context) (string, bool) {
	claims, ok := ctx.Value(AdminKey).(*Claims)
	if !ok || claims.Username == "" {
		return "", false
	}
	return claims.Username, true
}

func ValidateToken(tokenString, secret string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})

	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, errors.New("invalid token")
}

func extractToken(r *http.Request) string {
	bearer := r.Header.Get("Authorization")
	if len(bearer) > 7 && strings.ToUpper(bearer[0:7]) == "BEARER " {
		return strings.TrimSpace(bearer[7:])
	}
	return ""
}

func deny(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	authconfig "storefront_api/internal/auth/config"
)

// Issuer signs HS256 admin tokens.
type Issuer struct {
	secret []byte
	ttl    time.Duration
	issuer string
	now    func() time.Time
}

func NewIssuer(cfg authconfig.JwtConfig) *Issuer {
	return &Issuer{
		secret: []byte(cfg.JWTSecret),
		ttl:    cfg.TokenTTL(),
		issuer: cfg.Issuer,
		now:    time.Now,
	}
}

func (i *Issuer) Issue(username string) (string, error) {
	if username == "" {
		return "", errors.New("empty username")
	}
	now := i.now()
	claims := Claims{
		Username: username,
		Role:     RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    i.issuer,
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
}

package config

import (
	"os"
	"strconv"
	"time"
)

const placeholderSecret = "change-me-in-production"

type JwtConfig struct {
	JWTSecret         string `yaml:"jwt_secret"`
	AccessTokenExpiry int    `yaml:"token_ttl_minutes"` // в минутах
	Issuer            string `yaml:"issuer"`
	AdminUsername     string `yaml:"admin_username"`
	AdminPassword     string `yaml:"admin_password"`
}

func Default() JwtConfig {
	return JwtConfig{
		JWTSecret:         placeholderSecret,
		AccessTokenExpiry: 60,
		Issuer:            "storefront",
		AdminUsername:     "admin",
		AdminPassword:     "admin",
	}
}

// Load reads the JWT settings from the environment on top of c.
func (c JwtConfig) Load() JwtConfig {
	if v := os.Getenv("JWT_SECRET"); v != "" {
		c.JWTSecret = v
	}
	if v := os.Getenv("TOKEN_TTL_MINUTES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.AccessTokenExpiry = n
		}
	}
	if v := os.Getenv("ADMIN_USERNAME"); v != "" {
		c.AdminUsername = v
	}
	if v := os.Getenv("ADMIN_PASSWORD"); v != "" {
		c.AdminPassword = v
	}
	return c
}

func (c JwtConfig) TokenTTL() time.Duration {
	if c.AccessTokenExpiry <= 0 {
		return time.Hour
	}
	return time.Duration(c.AccessTokenExpiry) * time.Minute
}

func (c JwtConfig) UsesPlaceholderSecret() bool {
	return c.JWTSecret == placeholderSecret
}

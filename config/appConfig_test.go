package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var envKeys = []string{
	"PORT", "STATIC_DIR", "CORS_ORIGINS", "STORAGE_DRIVER", "DATABASE_URL", "POSTGRES_HOST",
	"POSTGRES_PORT", "POSTGRES_USER", "POSTGRES_PASSWORD", "POSTGRES_NAME", "POSTGRES_SSLMODE",
	"MONGO_URI", "MONGO_DATABASE", "JWT_SECRET", "TOKEN_TTL_MINUTES", "ADMIN_USERNAME",
	"ADMIN_PASSWORD", "STRIPE_SECRET_KEY", "STRIPE_API_URL", "STRIPE_CURRENCY",
	"STRIPE_SUCCESS_URL", "STRIPE_CANCEL_URL", "PRINTIFY_TOKEN", "PRINTIFY_SHOP_ID",
	"PRINTIFY_API_URL", "CATALOG_SOURCE", "CATALOG_LOCALE", "IMAGE_PROXY_PREFIX",
	"CHECKOUT_PROVIDER", "CHECKOUT_SUCCESS_REDIRECT", "RATE_LIMIT_REQUESTS",
	"RATE_LIMIT_WINDOW_MINUTES",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range envKeys {
		t.Setenv(k, "")
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	clearEnv(t)

	c, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, ":3000", c.Server.Addr())
	assert.Equal(t, StorageMongo, c.Storage.Driver)
	assert.Equal(t, SourceStore, c.Catalog.Source)
	assert.Equal(t, ProviderStripe, c.Checkout.Provider)
	assert.Equal(t, 100, c.RateLimit.Requests)
	assert.Equal(t, 15, c.RateLimit.WindowMinutes)
	assert.Equal(t, "sk_test_placeholder", c.Stripe.SecretKey)
	assert.Equal(t, "https://images-api.printify.com/", c.Catalog.ImageProxyPrefix)
	assert.True(t, c.Auth.UsesPlaceholderSecret())
	assert.Equal(t, "host=localhost port=5432 user=postgres password=postgres dbname=storefront sslmode=disable",
		c.Postgres.GetConnectionString())
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "8088")
	t.Setenv("STORAGE_DRIVER", "postgres")
	t.Setenv("DATABASE_URL", "postgres://u:p@db:5432/shop")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("TOKEN_TTL_MINUTES", "30")
	t.Setenv("CHECKOUT_PROVIDER", "printify")
	t.Setenv("RATE_LIMIT_REQUESTS", "7")
	t.Setenv("CORS_ORIGINS", "https://a.example,https://b.example")

	c, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, ":8088", c.Server.Addr())
	assert.Equal(t, StoragePostgres, c.Storage.Driver)
	assert.Equal(t, "postgres://u:p@db:5432/shop", c.Postgres.GetConnectionString())
	assert.Equal(t, "s3cret", c.Auth.JWTSecret)
	assert.Equal(t, 30, c.Auth.AccessTokenExpiry)
	assert.Equal(t, ProviderPrintify, c.Checkout.Provider)
	assert.Equal(t, 7, c.RateLimit.Requests)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, c.Server.CORSOrigins)
}

func TestLoadConfigYAMLThenEnv(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "storefront.yaml")
	yml := `
server:
  port: "9000"
storage:
  driver: memory
catalog:
  source: printify
  locale: de
printify:
  shop_id: "42"
`
	require.NoError(t, os.WriteFile(path, []byte(yml), 0o600))
	t.Setenv("PRINTIFY_SHOP_ID", "77")

	c, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, ":9000", c.Server.Addr())
	assert.Equal(t, StorageMemory, c.Storage.Driver)
	assert.Equal(t, SourcePrintify, c.Catalog.Source)
	assert.Equal(t, "de", c.Catalog.Locale)
	assert.Equal(t, "77", c.Printify.ShopID)
	// untouched sections keep their defaults
	assert.Equal(t, "https://api.printify.com", c.Printify.APIURL)
}

func TestLoadConfigRejectsUnknownDriver(t *testing.T) {
	clearEnv(t)
	t.Setenv("STORAGE_DRIVER", "cassandra")

	_, err := LoadConfig("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cassandra")
}

func TestLoadConfigMissingFile(t *testing.T) {
	clearEnv(t)
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	authconfig "storefront_api/internal/auth/config"
)

const (
	StorageMongo    = "mongo"
	StoragePostgres = "postgres"
	StorageMemory   = "memory"

	SourceStore    = "store"
	SourcePrintify = "printify"

	ProviderStripe   = "stripe"
	ProviderPrintify = "printify"
)

type ServerConfig struct {
	Port        string   `yaml:"port"`
	StaticDir   string   `yaml:"static_dir"`
	CORSOrigins []string `yaml:"cors_origins"`
}

func (s ServerConfig) Addr() string {
	return ":" + strings.TrimPrefix(s.Port, ":")
}

type StorageConfig struct {
	Driver string `yaml:"driver"`
}

type StripeConfig struct {
	SecretKey  string `yaml:"secret_key"`
	APIURL     string `yaml:"api_url"`
	Currency   string `yaml:"currency"`
	SuccessURL string `yaml:"success_url"`
	CancelURL  string `yaml:"cancel_url"`
}

type PrintifyConfig struct {
	Token  string `yaml:"token"`
	ShopID string `yaml:"shop_id"`
	APIURL string `yaml:"api_url"`
}

type CatalogConfig struct {
	Source           string `yaml:"source"`
	Locale           string `yaml:"locale"`
	ImageProxyPrefix string `yaml:"image_proxy_prefix"`
}

type CheckoutConfig struct {
	Provider        string `yaml:"provider"`
	SuccessRedirect string `yaml:"success_redirect"`
}

type RateLimitConfig struct {
	Requests      int `yaml:"requests"`
	WindowMinutes int `yaml:"window_minutes"`
}

type AppConfig struct {
	Server    ServerConfig         `yaml:"server"`
	Storage   StorageConfig        `yaml:"storage"`
	Postgres  PostgresConfig       `yaml:"postgres"`
	Mongo     MongoConfig          `yaml:"mongo"`
	Auth      authconfig.JwtConfig `yaml:"auth"`
	Stripe    StripeConfig         `yaml:"stripe"`
	Printify  PrintifyConfig       `yaml:"printify"`
	Catalog   CatalogConfig        `yaml:"catalog"`
	Checkout  CheckoutConfig       `yaml:"checkout"`
	RateLimit RateLimitConfig      `yaml:"rate_limit"`
}

// Default returns placeholder values suitable for local, non-production use.
func Default() *AppConfig {
	return &AppConfig{
		Server:   ServerConfig{Port: "3000"},
		Storage:  StorageConfig{Driver: StorageMongo},
		Postgres: defaultPostgresConfig(),
		Mongo:    defaultMongoConfig(),
		Auth:     authconfig.Default(),
		Stripe: StripeConfig{
			SecretKey:  "sk_test_placeholder",
			APIURL:     "https://api.stripe.com",
			Currency:   "usd",
			SuccessURL: "http://localhost:3000/success.html",
			CancelURL:  "http://localhost:3000/cancel.html",
		},
		Printify: PrintifyConfig{
			Token:  "your_printify_token_here",
			ShopID: "your_printify_shop_id_here",
			APIURL: "https://api.printify.com",
		},
		Catalog: CatalogConfig{
			Source:           SourceStore,
			Locale:           "en",
			ImageProxyPrefix: "https://images-api.printify.com/",
		},
		Checkout:  CheckoutConfig{Provider: ProviderStripe, SuccessRedirect: "/success.html"},
		RateLimit: RateLimitConfig{Requests: 100, WindowMinutes: 15},
	}
}

// LoadConfig builds the configuration from defaults, an optional YAML file and the environment,
// in that order of precedence (environment wins).
func LoadConfig(filename string) (*AppConfig, error) {
	config := Default()

	if filename != "" {
		file, err := os.Open(filename)
		if err != nil {
			return nil, fmt.Errorf("failed to open config %s: %w", filename, err)
		}
		defer file.Close()

		decoder := yaml.NewDecoder(file)
		if err := decoder.Decode(config); err != nil {
			return nil, fmt.Errorf("failed to decode config %s: %w", filename, err)
		}
	}

	config.applyEnv()
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func (c *AppConfig) applyEnv() {
	overrideString(&c.Server.Port, "PORT")
	overrideString(&c.Server.StaticDir, "STATIC_DIR")
	if v := getEnv("CORS_ORIGINS", ""); v != "" {
		c.Server.CORSOrigins = strings.Split(v, ",")
	}
	overrideString(&c.Storage.Driver, "STORAGE_DRIVER")
	c.Postgres.applyEnv()
	c.Mongo.applyEnv()
	c.Auth = c.Auth.Load()

	overrideString(&c.Stripe.SecretKey, "STRIPE_SECRET_KEY")
	overrideString(&c.Stripe.APIURL, "STRIPE_API_URL")
	overrideString(&c.Stripe.Currency, "STRIPE_CURRENCY")
	overrideString(&c.Stripe.SuccessURL, "STRIPE_SUCCESS_URL")
	overrideString(&c.Stripe.CancelURL, "STRIPE_CANCEL_URL")

	overrideString(&c.Printify.Token, "PRINTIFY_TOKEN")
	overrideString(&c.Printify.ShopID, "PRINTIFY_SHOP_ID")
	overrideString(&c.Printify.APIURL, "PRINTIFY_API_URL")

	overrideString(&c.Catalog.Source, "CATALOG_SOURCE")
	overrideString(&c.Catalog.Locale, "CATALOG_LOCALE")
	overrideString(&c.Catalog.ImageProxyPrefix, "IMAGE_PROXY_PREFIX")
	overrideString(&c.Checkout.Provider, "CHECKOUT_PROVIDER")
	overrideString(&c.Checkout.SuccessRedirect, "CHECKOUT_SUCCESS_REDIRECT")

	overrideInt(&c.RateLimit.Requests, "RATE_LIMIT_REQUESTS")
	overrideInt(&c.RateLimit.WindowMinutes, "RATE_LIMIT_WINDOW_MINUTES")
}

func (c *AppConfig) Validate() error {
	var errs []error
	switch c.Storage.Driver {
	case StorageMongo, StoragePostgres, StorageMemory:
	default:
		errs = append(errs, fmt.Errorf("unknown storage driver %q", c.Storage.Driver))
	}
	switch c.Catalog.Source {
	case SourceStore, SourcePrintify:
	default:
		errs = append(errs, fmt.Errorf("unknown catalog source %q", c.Catalog.Source))
	}
	switch c.Checkout.Provider {
	case ProviderStripe, ProviderPrintify:
	default:
		errs = append(errs, fmt.Errorf("unknown checkout provider %q", c.Checkout.Provider))
	}
	if c.RateLimit.Requests <= 0 || c.RateLimit.WindowMinutes <= 0 {
		errs = append(errs, errors.New("rate limit requests and window must be positive"))
	}
	if c.Auth.JWTSecret == "" {
		errs = append(errs, errors.New("jwt secret must not be empty"))
	}
	return errors.Join(errs...)
}

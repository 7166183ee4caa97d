package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"storefront_api/config"
	"storefront_api/internal/auth"
	"storefront_api/internal/storefront/app/web"
	"storefront_api/internal/storefront/app/web/handlers"
	"storefront_api/internal/storefront/internal/business"
	"storefront_api/internal/storefront/internal/models"
	"storefront_api/internal/storefront/internal/storage"
	"storefront_api/internal/storefront/internal/storage/memory"
	"storefront_api/internal/storefront/internal/storage/mongostore"
	"storefront_api/internal/storefront/internal/storage/repositories"
	"storefront_api/internal/storefront/pkg/clients"
	"storefront_api/metrics"
	"storefront_api/pkg/dbconnect"
	"storefront_api/pkg/dbconnect/migration"
	mongoconnect "storefront_api/pkg/dbconnect/mongo"
	"storefront_api/pkg/dbconnect/postgres"
	"storefront_api/pkg/logger"
	"storefront_api/pkg/middleware"
)

const shutdownTimeout = 10 * time.Second

type StorefrontServer struct {
	cfg     *config.AppConfig
	log     *logger.BaseLogger
	writer  io.Writer
	limiter *middleware.RateLimiter
	closers []func(context.Context) error
}

func NewStorefrontServer(cfg *config.AppConfig, writer io.Writer) *StorefrontServer {
	return &StorefrontServer{
		cfg:    cfg,
		log:    logger.NewLogger(writer, "[StorefrontServer]"),
		writer: writer,
	}
}

type stores struct {
	items  business.ItemRepository
	audit  business.AuditRepository
	admins business.AdminRepository
	health dbconnect.HealthChecker
}

func (s *StorefrontServer) component(prefix string) logger.Logger {
	return logger.NewLogger(s.writer, prefix)
}

func (s *StorefrontServer) openStores(ctx context.Context) (stores, error) {
	switch s.cfg.Storage.Driver {
	case config.StorageMemory:
		s.log.Warn("memory storage selected, data is lost on restart")
		return stores{items: memory.NewItemStore(), audit: memory.NewAuditStore(), admins: memory.NewAdminStore()}, nil

	case config.StoragePostgres:
		var pg dbconnect.Database = postgres.NewPgConnector(s.cfg.Postgres, s.component("[Postgres]"))
		db, err := pg.Connect()
		if err != nil {
			return stores{}, err
		}
		s.closers = append(s.closers, func(context.Context) error { return pg.Close() })
		if err := migration.ApplyAll(db, storage.Migrations(s.component("[Migrations]"))...); err != nil {
			return stores{}, fmt.Errorf("migration failed: %w", err)
		}
		s.log.Log("Storefront migrations applied successfully!")
		return stores{
			items:  repositories.NewItemRepository(db),
			audit:  repositories.NewAuditRepository(db),
			admins: repositories.NewAdminRepository(db),
			health: pg,
		}, nil

	case config.StorageMongo:
		mc := mongoconnect.NewMongoConnector(s.cfg.Mongo, s.component("[MongoDB]"))
		db, err := mc.Connect(ctx)
		if err != nil {
			return stores{}, err
		}
		s.closers = append(s.closers, mc.Close)
		if err := mongostore.EnsureIndexes(ctx, db); err != nil {
			return stores{}, err
		}
		return stores{
			items:  mongostore.NewItemStore(db),
			audit:  mongostore.NewAuditStore(db),
			admins: mongostore.NewAdminStore(db),
			health: mc,
		}, nil
	}
	return stores{}, fmt.Errorf("unknown storage driver %q", s.cfg.Storage.Driver)
}

// Handler wires every dependency and returns the HTTP entry point.
func (s *StorefrontServer) Handler(ctx context.Context) (http.Handler, error) {
	cfg := s.cfg
	st, err := s.openStores(ctx)
	if err != nil {
		return nil, err
	}

	if cfg.Auth.UsesPlaceholderSecret() {
		s.log.Warn("JWT_SECRET is the placeholder value; set it before deploying")
	}
	adminService := business.NewAdminService(st.admins, auth.NewIssuer(cfg.Auth), s.component("[AdminService]"))
	if err := adminService.EnsureAdmin(ctx, cfg.Auth.AdminUsername, cfg.Auth.AdminPassword); err != nil {
		return nil, fmt.Errorf("failed to bootstrap admin: %w", err)
	}

	itemService := business.NewItemService(st.items, st.audit, s.component("[ItemService]"))
	itemService.OnMutation(func(action models.AuditAction) {
		metrics.RecordAdminMutation(string(action))
	})

	var printify *clients.PrintifyClient
	printifyClient := func() *clients.PrintifyClient {
		if printify == nil {
			printify = clients.NewPrintifyClient(cfg.Printify.APIURL, cfg.Printify.Token, cfg.Printify.ShopID, s.component("[PrintifyClient]"))
		}
		return printify
	}

	var source business.CatalogSource = business.StoreCatalog(st.items)
	if cfg.Catalog.Source == config.SourcePrintify {
		source = printifyClient()
	}
	catalogService := business.NewCatalogService(source, business.NewCatalogQuery(cfg.Catalog.Locale))

	var checkout *business.CheckoutService
	switch cfg.Checkout.Provider {
	case config.ProviderPrintify:
		checkout = business.NewFulfillmentCheckout(printifyClient(), cfg.Checkout.SuccessRedirect, s.component("[Checkout]"))
	default:
		stripe := clients.NewStripeClient(cfg.Stripe.APIURL, cfg.Stripe.SecretKey, cfg.Stripe.Currency,
			cfg.Stripe.SuccessURL, cfg.Stripe.CancelURL, s.component("[StripeClient]"))
		checkout = business.NewPaymentCheckout(stripe, s.component("[Checkout]"))
	}
	checkout.OnOutcome(metrics.RecordCheckout)

	s.limiter = middleware.NewRateLimiter(cfg.RateLimit.Requests, time.Duration(cfg.RateLimit.WindowMinutes)*time.Minute)
	handlerLog := s.component("[HTTP]")

	return web.NewRouter(web.Routes{
		Catalog:     handlers.NewCatalogHandler(catalogService, handlerLog),
		Admin:       handlers.NewAdminHandler(itemService, adminService, handlerLog),
		Checkout:    handlers.NewCheckoutHandler(checkout, handlerLog),
		Images:      handlers.NewImageHandler(clients.NewImageClient(s.component("[ImageProxy]")), cfg.Catalog.ImageProxyPrefix, handlerLog),
		Health:      handlers.NewHealthHandler(st.health, handlerLog),
		Limiter:     s.limiter,
		JWTSecret:   cfg.Auth.JWTSecret,
		StaticDir:   cfg.Server.StaticDir,
		CORSOrigins: cfg.Server.CORSOrigins,
		Log:         s.component("[Access]"),
	}), nil
}

// Run serves until ctx is cancelled, then drains in-flight requests.
func (s *StorefrontServer) Run(ctx context.Context) error {
	handler, err := s.Handler(ctx)
	if err != nil {
		s.close()
		return err
	}
	defer s.close()

	go s.limiter.Run(ctx)

	srv := &http.Server{
		Addr:              s.cfg.Server.Addr(),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Log("Server running on port http://localhost%s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.log.Log("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}

func (s *StorefrontServer) close() {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	for _, c := range s.closers {
		if err := c(ctx); err != nil {
			s.log.Warn("close failed: %v", err)
		}
	}
	s.closers = nil
}

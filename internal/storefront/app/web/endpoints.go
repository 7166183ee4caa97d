package web

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"storefront_api/internal/auth"
	"storefront_api/internal/storefront/app/web/handlers"
	"storefront_api/metrics"
	"storefront_api/pkg/logger"
	"storefront_api/pkg/middleware"
)

// Routes bundles everything the router needs.
type Routes struct {
	Catalog  *handlers.CatalogHandler
	Admin    *handlers.AdminHandler
	Checkout *handlers.CheckoutHandler
	Images   *handlers.ImageHandler
	Health   *handlers.HealthHandler

	Limiter     *middleware.RateLimiter
	JWTSecret   string
	StaticDir   string
	CORSOrigins []string
	Log         logger.Logger
}

func NewRouter(rt Routes) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.AccessLog(rt.Log))
	r.Use(chimw.Recoverer)
	r.Use(middleware.PrometheusMiddleware)
	r.Use(middleware.SecureHeaders)
	r.Use(cors.Handler(corsOptions(rt.CORSOrigins)))
	r.Use(middleware.RejectArrayQuery)

	r.Get("/healthz", rt.Health.Health)
	r.Method(http.MethodGet, "/metrics", metrics.MetricsHandler())

	r.Route("/api", func(api chi.Router) {
		if rt.Limiter != nil {
			api.Use(rt.Limiter.Middleware)
		}
		api.Use(middleware.LimitBody)
		api.Use(chimw.Timeout(30 * time.Second))

		api.Get("/items", rt.Catalog.GetItems)
		api.Get("/items/search", rt.Catalog.SearchItems)
		api.Post("/cart/quote", rt.Catalog.QuoteCart)
		api.Post("/checkout", rt.Checkout.Checkout)
		api.Get("/proxy-image", rt.Images.ProxyImage)

		api.Post("/admin/login", rt.Admin.Login)
		api.Group(func(admin chi.Router) {
			admin.Use(auth.AuthMiddleware(rt.JWTSecret))
			admin.Use(auth.RoleMiddleware(auth.RoleAdmin))

			admin.Post("/admin/items", rt.Admin.CreateItem)
			admin.Put("/admin/items/{id}", rt.Admin.UpdateItem)
			admin.Delete("/admin/items/{id}", rt.Admin.DeleteItem)
			admin.Get("/admin/logs", rt.Admin.GetLogs)
		})
	})

	if rt.StaticDir != "" {
		r.Get("/index.html", func(w http.ResponseWriter, req *http.Request) {
			http.Redirect(w, req, "/", http.StatusMovedPermanently)
		})
		r.Handle("/*", http.FileServer(http.Dir(rt.StaticDir)))
	}

	return r
}

func corsOptions(origins []string) cors.Options {
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", middleware.RequestIDHeader},
		ExposedHeaders: []string{middleware.RequestIDHeader},
		MaxAge:         300,
	}
}

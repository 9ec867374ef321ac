package transport

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/vasiliy-maslov/ecommerce-microservices/store-admin/internal/auth"
	"github.com/vasiliy-maslov/ecommerce-microservices/store-admin/internal/catalog"
	handler "github.com/vasiliy-maslov/ecommerce-microservices/store-admin/internal/handler/http"
	"github.com/vasiliy-maslov/ecommerce-microservices/store-admin/internal/order"
)

// corsOptions lets the storefront and admin UI call the API from another origin.
// Preflights are answered by the middleware for every /api route.
var corsOptions = cors.Options{
	AllowedOrigins: []string{"*"},
	AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
	AllowedHeaders: []string{"Content-Type", "Authorization"},
	MaxAge:         300,
}

type Services struct {
	Catalog  catalog.Service
	Checkout order.CheckoutService
	Webhook  order.WebhookService
	Revenue  order.RevenueService
	Auth     *auth.Authenticator
}

func NewRouter(s Services) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("OK"))
	})

	catalogHandler := handler.NewCatalogHandler(s.Catalog)
	orderHandler := handler.NewOrderHandler(s.Checkout, s.Webhook, s.Revenue)
	requireOwner := handler.RequireOwner(s.Catalog)

	r.Route("/api", func(r chi.Router) {
		r.Use(cors.Handler(corsOptions))

		orderHandler.RegisterWebhookRoutes(r)

		r.Group(func(r chi.Router) {
			r.Use(s.Auth.Middleware)
			catalogHandler.RegisterStoreRoutes(r)
		})

		r.Route("/{storeId}", func(r chi.Router) {
			catalogHandler.RegisterRoutes(r, s.Auth.Middleware)
			orderHandler.RegisterRoutes(r, func(next http.Handler) http.Handler {
				return s.Auth.Middleware(requireOwner(next))
			})
		})
	})

	return r
}

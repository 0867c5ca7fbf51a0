package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/redis/go-redis/v9"

	"marketAPI/internal/middleware"
)

// NewRouter mounts every route. rdb may be nil, which disables rate limiting.
func NewRouter(h *Handlers, rdb redis.Scripter) http.Handler {
	requireAuth := middleware.RequireAuth(h.AuthService)
	optionalAuth := middleware.OptionalAuth(h.AuthService)

	protected := func(fn http.HandlerFunc) http.Handler { return requireAuth(fn) }
	optional := func(fn http.HandlerFunc) http.Handler { return optionalAuth(fn) }

	router := mux.NewRouter()
	router.Use(mux.MiddlewareFunc(middleware.RateLimit(h.Cfg.RateLimit, rdb)))

	router.HandleFunc("/health", h.Health).Methods(http.MethodGet)
	router.HandleFunc("/categories", h.GetCategories).Methods(http.MethodGet)

	auth := router.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/register", h.Register).Methods(http.MethodPost)
	auth.HandleFunc("/login", h.Login).Methods(http.MethodPost)
	auth.Handle("/me", protected(h.Me)).Methods(http.MethodGet)

	products := router.PathPrefix("/products").Subrouter()
	products.HandleFunc("/random", h.GetRandomProducts).Methods(http.MethodGet)
	products.Handle("/search", optional(h.SearchProducts)).Methods(http.MethodGet)
	products.Handle("/user", protected(h.GetUserProducts)).Methods(http.MethodGet)
	products.Handle("/category/{category_id:[0-9]+}", optional(h.GetCategoryProducts)).Methods(http.MethodGet)
	products.Handle("/new", protected(h.CreateProduct)).Methods(http.MethodPost)
	products.Handle("/{id:[0-9]+}", optional(h.GetProduct)).Methods(http.MethodGet)
	products.Handle("/{id:[0-9]+}", protected(h.SendMessage)).Methods(http.MethodPost)
	products.Handle("/{id:[0-9]+}", protected(h.UpdateProduct)).Methods(http.MethodPut)
	products.Handle("/{id:[0-9]+}", protected(h.DeleteProduct)).Methods(http.MethodDelete)
	router.Handle("/products", optional(h.GetProducts)).Methods(http.MethodGet)

	return middleware.Chain(router,
		middleware.Logging,
		middleware.CORS(h.Cfg.AllowedOrigins),
	)
}

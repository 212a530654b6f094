package router

import (
	"net/http"
	"strings"

	"soundhub/internal/auth"
	"soundhub/internal/handler"
	"soundhub/internal/middleware"
	"soundhub/internal/realtime"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// New creates a new HTTP router with all routes and middleware configured.
func New(
	orderHandler *handler.OrderHandler,
	authHandler *handler.AuthHandler,
	couponHandler *handler.CouponHandler,
	hub *realtime.Hub,
	issuer *auth.TokenIssuer,
	logger zerolog.Logger,
) http.Handler {
	mux := http.NewServeMux()

	// Health check endpoint (no authentication required)
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy"}`))
	})

	mux.Handle("/metrics", promhttp.Handler())

	// Websocket endpoint; sessions identify themselves via join events, so
	// the upgrade itself is unauthenticated.
	mux.Handle("/ws", hub)

	// Public storefront and auth routes
	mux.HandleFunc("/api/orders/add", orderHandler.Create)
	mux.HandleFunc("/api/auth/register", authHandler.RegisterEmployee)
	mux.HandleFunc("/api/auth/login", authHandler.LoginEmployee)
	mux.HandleFunc("/api/customers/register", authHandler.RegisterCustomer)
	mux.HandleFunc("/api/customers/login", authHandler.LoginCustomer)

	adminOnly := middleware.JWTAuth(issuer, true, logger)

	// Order handler function (admin back office)
	orderRouteHandler := func(w http.ResponseWriter, r *http.Request) {
		// Route based on method and path
		if r.Method == http.MethodGet && (r.URL.Path == "/api/orders" || r.URL.Path == "/api/orders/") {
			orderHandler.List(w, r)
			return
		}

		if strings.HasPrefix(r.URL.Path, "/api/orders/") && r.URL.Path != "/api/orders/" {
			if r.Method == http.MethodPut && strings.HasSuffix(r.URL.Path, "/status") {
				orderHandler.UpdateStatus(w, r)
				return
			}
			if r.Method == http.MethodDelete {
				orderHandler.Delete(w, r)
				return
			}
			orderHandler.GetByID(w, r)
			return
		}

		http.Error(w, "not found", http.StatusNotFound)
	}

	// Register order routes (both with and without trailing slash)
	mux.Handle("/api/orders", adminOnly(http.HandlerFunc(orderRouteHandler)))
	mux.Handle("/api/orders/", adminOnly(http.HandlerFunc(orderRouteHandler)))

	mux.Handle("/api/coupons", adminOnly(http.HandlerFunc(couponHandler.List)))

	// Apply middleware in order: Recovery -> RequestID -> Logging -> Metrics -> CORS
	var root http.Handler = mux
	root = middleware.CORS(root)
	root = middleware.Metrics(root)
	root = middleware.Logging(logger)(root)
	root = middleware.RequestID(root)
	root = middleware.Recovery(logger)(root)

	return root
}

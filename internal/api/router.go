package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/blazern/recipe-calculator-server-sub000/internal/api/handler"
	"github.com/blazern/recipe-calculator-server-sub000/internal/api/middleware"
	"github.com/blazern/recipe-calculator-server-sub000/internal/pkg/logger"
	"github.com/blazern/recipe-calculator-server-sub000/internal/service"
	"github.com/jackc/pgx/v5/pgxpool"
)

// RouterConfig holds dependencies for router creation
type RouterConfig struct {
	Logger     *logger.Logger
	Pool       *pgxpool.Pool
	Services   *ServiceContainer
	Version    string
	BuildTime  string
	CORSConfig middleware.CORSConfig
}

// ServiceContainer holds all service instances
type ServiceContainer struct {
	Users          *service.UserService
	Pairing        *service.PairingService
	DirectMessages *service.DirectMessageService
}

// NewRouter creates and configures the Chi router
func NewRouter(cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()

	// Global middlewares (order matters!)
	r.Use(middleware.RequestID)            // 1. Request ID first
	r.Use(middleware.CORS(cfg.CORSConfig)) // 2. CORS early
	r.Use(middleware.Recovery(cfg.Logger)) // 3. Recovery before logging
	r.Use(middleware.Logger(cfg.Logger))   // 4. Logging

	// Health check handlers
	healthHandler := handler.NewHealthHandler(cfg.Pool, cfg.Version, cfg.BuildTime)
	r.Get("/health", healthHandler.Health)
	r.Get("/ready", healthHandler.Ready)
	r.Get("/version", healthHandler.Version)

	userHandler := handler.NewUserHandler(cfg.Services.Users)
	pairingHandler := handler.NewPairingHandler(cfg.Services.Pairing)
	messageHandler := handler.NewDirectMessageHandler(cfg.Services.DirectMessages)

	r.Route("/api/v1", func(r chi.Router) {
		// Device registration is the only unauthenticated mutation.
		r.Post("/users", userHandler.Register)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireClientToken(cfg.Services.Users))

			r.Post("/pairing-codes", pairingHandler.IssueCode)

			r.Route("/pairing-requests", func(r chi.Router) {
				r.Post("/", pairingHandler.CreateRequestByCode)
				r.Post("/by-user", pairingHandler.CreateRequestByUser)
			})

			r.Route("/direct-messages", func(r chi.Router) {
				r.Post("/", messageHandler.Send)
				r.Get("/", messageHandler.List)
			})
		})
	})

	return r
}

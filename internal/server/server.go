package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/osse101/catchbot/internal/catch"
	"github.com/osse101/catchbot/internal/economy"
	"github.com/osse101/catchbot/internal/effects"
	"github.com/osse101/catchbot/internal/handler"
	"github.com/osse101/catchbot/internal/metrics"
	"github.com/osse101/catchbot/internal/ratelimit"
	"github.com/osse101/catchbot/internal/repository"
)

// Config holds the HTTP settings
type Config struct {
	Port           int
	APIKey         string
	TrustedProxies []string
	MaxBodyBytes   int64
}

// Services are the engine operations exposed over HTTP
type Services struct {
	Economy economy.Service
	Catch   catch.Service
	Limiter ratelimit.Service
	Effects effects.Service
	Health  []repository.Health
}

// Server is the HTTP front of the engine
type Server struct {
	httpServer *http.Server
}

// NewServer builds the router and its middleware stack
func NewServer(cfg Config, svc Services) *Server {
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = DefaultMaxBodyBytes
	}
	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.Port),
			Handler:           NewRouter(cfg, svc),
			ReadHeaderTimeout: DefaultReadHeaderTime,
		},
	}
}

// NewRouter returns the full handler tree. Middleware runs outermost first.
func NewRouter(cfg Config, svc Services) http.Handler {
	detector := NewActivityDetector()

	r := chi.NewRouter()
	r.Use(SecurityHeadersMiddleware())
	r.Use(RequestBudgetMiddleware(cfg.TrustedProxies, detector))
	r.Use(AuthMiddleware(cfg.APIKey, cfg.TrustedProxies, detector))
	r.Use(RequestSizeLimitMiddleware(cfg.MaxBodyBytes))
	r.Use(metrics.Middleware)
	r.Use(loggingMiddleware)

	r.Get("/healthz", handler.HandleHealthz())
	r.Get("/readyz", handler.HandleReadyz(svc.Health...))
	r.Handle("/metrics", promhttp.Handler())

	r.Route(APIPrefix, func(r chi.Router) {
		r.Post("/accounts", handler.HandleEnsureAccount(svc.Economy))
		r.Route("/accounts/{accountID}", func(r chi.Router) {
			r.Get("/balance", handler.HandleGetBalance(svc.Economy))
			r.Get("/inventory", handler.HandleGetInventory(svc.Economy))
			r.Get("/purchases", handler.HandleGetPurchaseHistory(svc.Economy))
		})

		r.Get("/shop", handler.HandleGetShopListings(svc.Economy))
		r.Post("/shop/purchase", handler.HandlePurchase(svc.Economy))

		r.Post("/catch", handler.HandleAttemptReward(svc.Catch))
		r.Get("/catch/status", handler.HandleGetCatchStatus(svc.Limiter))

		r.Post("/items/consume", handler.HandleConsumeItem(svc.Effects))

		r.Get("/admin/scopes/{guildID}", handler.HandleGetScopeSettings(svc.Limiter))
		r.Put("/admin/scopes/{guildID}", handler.HandleUpdateScopeSettings(svc.Limiter))
	})

	// Swagger documentation
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	return r
}

// Start serves until Stop is called
func (s *Server) Start() error {
	slog.Default().Info(LogMsgServerStarting, "addr", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Stop drains in-flight requests until ctx ends
func (s *Server) Stop(ctx context.Context) error {
	slog.Default().Info(LogMsgServerStopping)
	return s.httpServer.Shutdown(ctx)
}

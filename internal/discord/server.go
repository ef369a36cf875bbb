package discord

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/osse101/catchbot/internal/logger"
	"github.com/osse101/catchbot/internal/repository"
)

// HTTPServer serves the bot's health and metrics endpoints
type HTTPServer struct {
	server *http.Server
}

// NewHTTPServer creates the internal HTTP server
func NewHTTPServer(port int, bot *Bot, checks ...repository.Health) *HTTPServer {
	mux := http.NewServeMux()
	mux.Handle("GET /healthz", HandleHealth(bot.Connected, checks...))
	mux.Handle("GET /metrics", promhttp.Handler())

	return &HTTPServer{
		server: &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		},
	}
}

// Start serves in the background
func (s *HTTPServer) Start(ctx context.Context) {
	log := logger.FromContext(ctx)
	go func() {
		log.Info(LogMsgHealthServerStarting, "addr", s.server.Addr)
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error(LogMsgHealthServerFailed, "error", err)
		}
	}()
}

// Stop shuts the server down
func (s *HTTPServer) Stop(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()
	if err := s.server.Shutdown(ctx); err != nil {
		logger.FromContext(ctx).Error(LogMsgHealthShutdownFailed, "error", err)
		return err
	}
	return nil
}

package bootstrap

import (
	"context"

	"github.com/osse101/catchbot/internal/logger"
)

// Stopper is a component stopped with a deadline
type Stopper interface {
	Stop(ctx context.Context) error
}

// ShutdownComponents holds all components that need graceful shutdown
type ShutdownComponents struct {
	Server       Stopper
	Retention    *Retention
	Repositories *Repositories
}

// GracefulShutdown stops accepting requests, stops background work, then
// closes the stores. Errors are logged and do not stop the sequence.
func GracefulShutdown(ctx context.Context, c ShutdownComponents) {
	log := logger.FromContext(ctx)
	log.Info(LogMsgShuttingDown)

	if c.Server != nil {
		if err := c.Server.Stop(ctx); err != nil {
			log.Error(LogMsgServerForcedStop, "error", err)
		}
	}

	c.Retention.Stop()

	if c.Repositories != nil {
		if err := c.Repositories.Close(); err != nil {
			log.Error(LogMsgStoreCloseFailed, "error", err)
		}
	}

	log.Info(LogMsgStopped)
}

package discord

import (
	"context"
	"encoding/json"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/osse101/catchbot/internal/logger"
	"github.com/osse101/catchbot/internal/repository"
)

// HealthStatus represents the bot's health status
type HealthStatus struct {
	Status          string     `json:"status"`
	Uptime          string     `json:"uptime"`
	Connected       bool       `json:"connected"`
	StoreReachable  bool       `json:"store_reachable"`
	LastCommandTime *time.Time `json:"last_command_time,omitempty"`
}

var (
	startTime       = time.Now()
	lastCommandUnix atomic.Int64
)

func recordActivity() {
	lastCommandUnix.Store(time.Now().UnixNano())
}

func lastCommand() *time.Time {
	n := lastCommandUnix.Load()
	if n == 0 {
		return nil
	}
	t := time.Unix(0, n).UTC()
	return &t
}

// HandleHealth reports the gateway connection and the store's reachability.
// connected is nil-safe for tests that run without a session.
func HandleHealth(connected func() bool, checks ...repository.Health) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
		defer cancel()

		reachable := true
		for _, check := range checks {
			if err := check.Ping(ctx); err != nil {
				reachable = false
				break
			}
		}

		health := HealthStatus{
			Status:          HealthStatusHealthy,
			Uptime:          time.Since(startTime).Round(time.Second).String(),
			Connected:       connected != nil && connected(),
			StoreReachable:  reachable,
			LastCommandTime: lastCommand(),
		}

		w.Header().Set("Content-Type", "application/json")
		if !health.Connected || !health.StoreReachable {
			health.Status = HealthStatusDegraded
			w.WriteHeader(http.StatusServiceUnavailable)
		}
		if err := json.NewEncoder(w).Encode(health); err != nil {
			logger.FromContext(ctx).Warn(LogMsgHealthEncodeFailed, "error", err)
		}
	}
}

package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/dtroode/dokugo-server/internal/api/http/response"
	"github.com/dtroode/dokugo-server/internal/logger"
)

const readinessTimeout = 2 * time.Second

// Pinger is a dependency the service needs before it can take traffic.
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingFunc adapts a function to Pinger.
type PingFunc func(ctx context.Context) error

func (f PingFunc) Ping(ctx context.Context) error {
	return f(ctx)
}

type Health struct {
	checks map[string]Pinger
	logger *logger.Logger
}

func NewHealth(checks map[string]Pinger, logger *logger.Logger) *Health {
	return &Health{checks: checks, logger: logger}
}

type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

// Live reports that the process is serving requests.
func (h *Health) Live(w http.ResponseWriter, _ *http.Request) {
	response.WriteJSON(w, http.StatusOK, healthResponse{Status: "ok"})
}

// Ready pings every dependency and answers 503 if any of them fails.
func (h *Health) Ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
	defer cancel()

	status := http.StatusOK
	body := healthResponse{Status: "ready", Checks: make(map[string]string, len(h.checks))}
	for name, check := range h.checks {
		if err := check.Ping(ctx); err != nil {
			h.logger.Warn("Health handler: dependency not ready",
				"dependency", name,
				"error", err.Error())
			body.Checks[name] = "unavailable"
			status = http.StatusServiceUnavailable
			continue
		}
		body.Checks[name] = "ok"
	}
	if status != http.StatusOK {
		body.Status = "not ready"
	}

	response.WriteJSON(w, status, body)
}

package service

import (
	"context"
	"time"

	"github.com/dtroode/dokugo-server/internal/logger"
	"github.com/dtroode/dokugo-server/internal/model"
)

// Sweeper periodically drops expired entries from the revocation ledger.
type Sweeper struct {
	store    model.RevocationStore
	interval time.Duration
	logger   *logger.Logger
	now      func() time.Time
}

func NewSweeper(store model.RevocationStore, interval time.Duration, logger *logger.Logger) *Sweeper {
	return &Sweeper{
		store:    store,
		interval: interval,
		logger:   logger,
		now:      time.Now,
	}
}

// Run sweeps once per interval until ctx is cancelled.
func (s *Sweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Sweep(ctx)
		}
	}
}

// Sweep returns the number of removed entries. Failures are logged and
// retried on the next tick.
func (s *Sweeper) Sweep(ctx context.Context) int64 {
	n, err := s.store.DeleteExpired(ctx, s.now())
	if err != nil {
		s.logger.Error("Sweeper: failed to delete expired revoked tokens",
			"error", err.Error())
		return 0
	}

	if n > 0 {
		s.logger.Debug("Sweeper: expired revoked tokens deleted",
			"count", n)
	}
	return n
}

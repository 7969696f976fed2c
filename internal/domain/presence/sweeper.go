package presence

import (
	"context"
	"sync/atomic"
	"time"

	"agrostock/pkg/logger"
)

// Sweeper periodically removes stale presence rows. A single
// in-flight guard skips a tick if the previous sweep is still
// running, so sweeps never overlap.
type Sweeper struct {
	service  *Service
	interval time.Duration
	running  atomic.Bool
}

// NewSweeper creates a sweeper over the presence service.
func NewSweeper(service *Service, interval time.Duration) *Sweeper {
	if interval <= 0 {
		interval = time.Minute
	}
	return &Sweeper{service: service, interval: interval}
}

// Run sweeps on a fixed interval until ctx is cancelled. Each tick is
// launched on its own goroutine so a slow sweep never stalls the loop;
// the in-flight guard makes the next tick a no-op instead of piling up.
func (s *Sweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			go s.tick(ctx)
		}
	}
}

func (s *Sweeper) tick(ctx context.Context) {
	if !s.running.CompareAndSwap(false, true) {
		logger.Debug(ctx, "presence sweep still running, skipping tick")
		return
	}
	defer s.running.Store(false)

	removed, err := s.service.Cleanup(ctx)
	if err != nil {
		logger.Warn(ctx, "presence sweep failed", "error", err)
		return
	}
	if removed > 0 {
		logger.Debug(ctx, "presence sweep", "removed", removed)
	}
}

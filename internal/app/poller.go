package app

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/five82/receipt/internal/state"
)

const (
	defaultPollInterval = 2 * time.Second
	maxBackoff          = 30 * time.Second
)

// Pinger reports whether the printer server is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// StartPoller launches a background goroutine that pings the server and
// records the result in the store. Failures back off exponentially. It
// returns immediately.
func StartPoller(ctx context.Context, store *state.Store, pinger Pinger, interval time.Duration, logger *zap.Logger) {
	if interval <= 0 {
		interval = defaultPollInterval
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	go func() {
		failures := 0
		for {
			err := pinger.Ping(ctx)
			if ctx.Err() != nil {
				return
			}
			store.SetHealth(err)
			if err != nil {
				failures++
				if failures == 1 {
					logger.Warn("printer unreachable", zap.Error(err))
				}
			} else {
				if failures > 0 {
					logger.Info("printer reachable again", zap.Int("failed_pings", failures))
				}
				failures = 0
			}

			timer := time.NewTimer(calculateBackoff(failures, interval))
			select {
			case <-ctx.Done():
				timer.Stop()
				return
			case <-timer.C:
			}
		}
	}()
}

// calculateBackoff doubles base for every consecutive failure, capped at maxBackoff.
func calculateBackoff(failures int, base time.Duration) time.Duration {
	if failures <= 0 {
		return base
	}
	if failures > 30 {
		return maxBackoff
	}
	d := base << uint(failures)
	if d <= 0 || d > maxBackoff {
		return maxBackoff
	}
	return d
}

package clientstore

import (
	"context"
	"log/slog"
	"time"
)

// Purger is implemented by backends that cannot expire entries on their own.
type Purger interface {
	PurgeExpired(ctx context.Context) (int64, error)
}

// RunPurger removes expired entries every interval until ctx is done.
func RunPurger(ctx context.Context, p Purger, interval time.Duration, logger *slog.Logger) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := p.PurgeExpired(ctx)
			if err != nil {
				logger.WarnContext(ctx, "failed to purge expired client state", "error", err)
				continue
			}
			if n > 0 {
				logger.DebugContext(ctx, "purged expired client state", "count", n)
			}
		}
	}
}

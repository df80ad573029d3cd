package db

import (
	"context"
	"database/sql"
	"time"

	"go.uber.org/zap"
)

// StartPinger pings db every interval and logs when the database becomes
// unreachable and when it recovers. It stops when ctx is done.
func StartPinger(
	ctx context.Context,
	db *sql.DB,
	interval time.Duration,
	log *zap.Logger,
) {
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		healthy := true
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				err := db.PingContext(ctx)
				if ctx.Err() != nil {
					return
				}
				switch {
				case err != nil && healthy:
					healthy = false
					log.Error("database unreachable", zap.Error(err))
				case err == nil && !healthy:
					healthy = true
					log.Info("database reachable again")
				}
			}
		}
	}()
}

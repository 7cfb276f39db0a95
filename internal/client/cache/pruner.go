package cache

import (
	"context"
	"database/sql"
	"time"

	"go.uber.org/zap"
)

// StartReadPruner periodically deletes read notifications older than the
// retention window so the cache does not grow without bound.
func StartReadPruner(
	ctx context.Context,
	db *sql.DB,
	interval time.Duration,
	retention time.Duration,
	log *zap.Logger,
) {
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				cutoff := time.Now().Add(-retention).Unix()
				res, err := db.ExecContext(ctx, `
                    DELETE FROM notifications
                     WHERE read = true
                       AND created_at < ?
                `, cutoff)
				if err != nil {
					log.Error("failed to prune read notifications", zap.Error(err))
					continue
				}
				if rows, _ := res.RowsAffected(); rows > 0 {
					log.Info("pruned read notifications", zap.Int64("removed", rows))
				}
			}
		}
	}()
}

package jobs

import (
	"context"
	"time"

	"rentmart-backend/internal/cartstore"
	"rentmart-backend/internal/logger"
)

// PurgeStaleCarts deletes cart blobs that have not been touched within the
// configured retention window.
func (jr *JobRunner) PurgeStaleCarts() {
	jr.runWithRecovery("PurgeStaleCarts", func() {
		ctx := context.Background()
		cutoff := time.Now().UTC().AddDate(0, 0, -jr.config.Scheduler.CartRetentionDays)

		purged, err := cartstore.PurgeOlderThan(ctx, jr.db, cutoff)
		if err != nil {
			logger.Error("Failed to purge stale carts", "error", err)
			return
		}

		logger.Info("Purged stale carts", "purged", purged, "cutoff", cutoff.Format("2006-01-02"))
	})
}

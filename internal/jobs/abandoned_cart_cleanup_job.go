package jobs

import (
	"context"
	"log/slog"
	"time"

	"marketplace/internal/core/ports"

	"github.com/robfig/cron/v3"
)

// AbandonedCartCleanupJob purges carts untouched longer than the configured
// retention. Runs hourly; carts are scratch state, so bulk deletion goes
// straight through the repository without loading aggregates.
type AbandonedCartCleanupJob struct {
	carts     ports.CartRepository
	retention time.Duration
	cron      *cron.Cron
	logger    *slog.Logger
}

// NewAbandonedCartCleanupJob creates a job that purges abandoned carts.
func NewAbandonedCartCleanupJob(
	carts ports.CartRepository,
	retention time.Duration,
	logger *slog.Logger,
) *AbandonedCartCleanupJob {
	return &AbandonedCartCleanupJob{
		carts:     carts,
		retention: retention,
		cron:      cron.New(cron.WithSeconds()),
		logger:    logger.With("component", "abandoned_cart_cleanup_job"),
	}
}

// Start begins the cleanup job, running at the top of every hour.
func (j *AbandonedCartCleanupJob) Start() error {
	_, err := j.cron.AddFunc("0 0 * * * *", func() {
		ctx := context.Background()
		cutoff := time.Now().UTC().Add(-j.retention)

		purged, err := j.carts.PurgeAbandoned(ctx, cutoff)
		if err != nil {
			j.logger.ErrorContext(ctx, "Abandoned cart cleanup job failed", "error", err)
			return
		}

		if purged > 0 {
			j.logger.InfoContext(ctx, "Purged abandoned carts", "count", purged)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Abandoned cart cleanup job started (running every hour)")
	return nil
}

// Stop stops the cleanup job.
func (j *AbandonedCartCleanupJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Abandoned cart cleanup job stopped")
}

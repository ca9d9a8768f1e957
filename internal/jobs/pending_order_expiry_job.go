package jobs

import (
	"context"
	"log/slog"
	"time"

	"marketplace/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// PendingOrderExpiryJob cancels pending orders the restaurant never acted
// on. Runs every minute; the cutoff age comes from configuration.
type PendingOrderExpiryJob struct {
	handler       commands.ExpirePendingOrdersCommandHandler
	maxPendingAge time.Duration
	cron          *cron.Cron
	logger        *slog.Logger
}

// NewPendingOrderExpiryJob creates a job that expires stale pending orders.
func NewPendingOrderExpiryJob(
	handler commands.ExpirePendingOrdersCommandHandler,
	maxPendingAge time.Duration,
	logger *slog.Logger,
) *PendingOrderExpiryJob {
	return &PendingOrderExpiryJob{
		handler:       handler,
		maxPendingAge: maxPendingAge,
		cron:          cron.New(cron.WithSeconds()),
		logger:        logger.With("component", "pending_order_expiry_job"),
	}
}

// Start begins the expiry job, running at the top of every minute.
func (j *PendingOrderExpiryJob) Start() error {
	_, err := j.cron.AddFunc("0 * * * * *", func() {
		ctx := context.Background()

		cmd, err := commands.NewExpirePendingOrdersCommand(j.maxPendingAge)
		if err != nil {
			j.logger.ErrorContext(ctx, "Pending order expiry job misconfigured", "error", err)
			return
		}

		expired, err := j.handler.Handle(ctx, cmd)
		if err != nil {
			j.logger.ErrorContext(ctx, "Pending order expiry job failed", "error", err)
			return
		}

		if expired > 0 {
			j.logger.InfoContext(ctx, "Expired stale pending orders", "count", expired)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Pending order expiry job started (running every minute)")
	return nil
}

// Stop stops the expiry job.
func (j *PendingOrderExpiryJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Pending order expiry job stopped")
}

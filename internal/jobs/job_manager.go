package jobs

import (
	"fmt"
	"log/slog"
	"time"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/ports"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	pendingOrderExpiryJob   *PendingOrderExpiryJob
	abandonedCartCleanupJob *AbandonedCartCleanupJob
}

// NewJobManager creates a new job manager with all required jobs.
func NewJobManager(
	expireHandler commands.ExpirePendingOrdersCommandHandler,
	carts ports.CartRepository,
	maxPendingAge time.Duration,
	cartRetention time.Duration,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		pendingOrderExpiryJob:   NewPendingOrderExpiryJob(expireHandler, maxPendingAge, logger),
		abandonedCartCleanupJob: NewAbandonedCartCleanupJob(carts, cartRetention, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.pendingOrderExpiryJob.Start(); err != nil {
		return fmt.Errorf("failed to start pending order expiry job: %w", err)
	}

	if err := jm.abandonedCartCleanupJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		jm.pendingOrderExpiryJob.Stop()
		return fmt.Errorf("failed to start abandoned cart cleanup job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.abandonedCartCleanupJob.Stop()
	jm.pendingOrderExpiryJob.Stop()
}

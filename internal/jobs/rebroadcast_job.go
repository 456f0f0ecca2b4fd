package jobs

import (
	"context"
	"log/slog"

	"dispatch/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// rebroadcastSchedule fires every fifteen seconds. Frequent enough that a
// provider who just came online hears about unclaimed work quickly, sparse
// enough not to flood idle connections.
const rebroadcastSchedule = "*/15 * * * * *"

// RebroadcastJob periodically re-offers pending bookings to nearby online
// providers. Providers who connected after a booking was created never saw
// its original offer; this job keeps unclaimed work visible until it is
// accepted or cancelled.
type RebroadcastJob struct {
	handler commands.RebroadcastPendingBookingsCommandHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewRebroadcastJob creates a job that re-offers pending bookings on a fixed
// schedule using RebroadcastPendingBookingsCommandHandler.
func NewRebroadcastJob(
	handler commands.RebroadcastPendingBookingsCommandHandler,
	logger *slog.Logger,
) *RebroadcastJob {
	return &RebroadcastJob{
		handler: handler,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "rebroadcast_job"),
	}
}

// Start begins the periodic re-broadcast of pending bookings.
func (j *RebroadcastJob) Start() error {
	_, err := j.cron.AddFunc(rebroadcastSchedule, func() {
		ctx := context.Background()
		cmd := commands.NewRebroadcastPendingBookingsCommand()

		if err := j.handler.Handle(ctx, cmd); err != nil {
			j.logger.ErrorContext(ctx, "Pending booking re-broadcast failed", "error", err)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Re-broadcast job started (running every 15 seconds)")
	return nil
}

// Stop stops the re-broadcast job.
func (j *RebroadcastJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Re-broadcast job stopped")
}

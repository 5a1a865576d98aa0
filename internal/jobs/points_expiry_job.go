package jobs

import (
	"context"
	"log/slog"

	"bakery/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// PointsExpiryJob manages the scheduled expiry of loyalty points.
// Runs hourly to sweep earned ledger entries that have passed their
// expiry timestamp.
type PointsExpiryJob struct {
	handler commands.ExpirePointsCommandHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewPointsExpiryJob creates a new job for expiring loyalty points.
// Uses ExpirePointsCommandHandler to process expirable ledger entries.
func NewPointsExpiryJob(handler commands.ExpirePointsCommandHandler, logger *slog.Logger) *PointsExpiryJob {
	return &PointsExpiryJob{
		handler: handler,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "points_expiry_job"),
	}
}

// Start begins the points expiry job to run at the top of every hour.
func (j *PointsExpiryJob) Start() error {
	_, err := j.cron.AddFunc("0 0 * * * *", func() {
		ctx := context.Background()
		cmd := commands.NewExpirePointsCommand()

		expired, err := j.handler.Handle(ctx, cmd)
		if err != nil {
			j.logger.ErrorContext(ctx, "Points expiry job failed", "error", err)
			return
		}

		if expired > 0 {
			j.logger.InfoContext(ctx, "Points expiry sweep completed", "expired_points", expired)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Points expiry job started (running hourly)")
	return nil
}

// Stop stops the points expiry job.
func (j *PointsExpiryJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Points expiry job stopped")
}

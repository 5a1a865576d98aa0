package jobs

import (
	"context"
	"errors"
	"log/slog"

	"bakery/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// DeliveryAssignmentJob manages the scheduled assignment of delivery agents
// to orders. Runs every second to match pending unassigned orders with
// available agents.
type DeliveryAssignmentJob struct {
	handler commands.AssignPendingDeliveryCommandHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewDeliveryAssignmentJob creates a new job for assigning delivery agents.
// Uses AssignPendingDeliveryCommandHandler to process one pending order per tick.
func NewDeliveryAssignmentJob(handler commands.AssignPendingDeliveryCommandHandler, logger *slog.Logger) *DeliveryAssignmentJob {
	return &DeliveryAssignmentJob{
		handler: handler,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "delivery_assignment_job"),
	}
}

// Start begins the delivery assignment job to run every second.
func (j *DeliveryAssignmentJob) Start() error {
	_, err := j.cron.AddFunc("* * * * * *", func() {
		ctx := context.Background()
		cmd := commands.NewAssignPendingDeliveryCommand()

		if _, err := j.handler.Handle(ctx, cmd); err != nil {
			// Only log errors that are not expected business scenarios
			if !errors.Is(err, commands.ErrNoPendingOrderFound) {
				j.logger.ErrorContext(ctx, "Delivery assignment job failed", "error", err)
			}
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Delivery assignment job started (running every second)")
	return nil
}

// Stop stops the delivery assignment job.
func (j *DeliveryAssignmentJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Delivery assignment job stopped")
}

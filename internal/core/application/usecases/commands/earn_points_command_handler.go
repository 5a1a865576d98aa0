package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"bakery/internal/core/domain/model/kernel"
	"bakery/internal/core/domain/model/ledger"
	"bakery/internal/pkg/errs"
)

// EarnPointsCommandHandler awards loyalty points for a completed order.
// The earn rate comes from the customer's membership tier and the points
// figure is the floor of total times rate. A zero-point result (tiny or
// free order) is silently a no-op, and so is a repeated earn call for an
// order that already awarded points.
//
// Earning is wrapped in one transaction: the ledger entry and the balance
// increment commit together or not at all. Failures are logged and fully
// absorbed so the order flow never breaks on a loyalty hiccup; the caller
// simply sees zero points.
type EarnPointsCommandHandler struct {
	uowFactory LedgerUoWFactory
	logger     *slog.Logger
}

// NewEarnPointsCommandHandler creates a handler for point earning.
func NewEarnPointsCommandHandler(uowFactory LedgerUoWFactory, logger *slog.Logger) EarnPointsCommandHandler {
	return EarnPointsCommandHandler{
		uowFactory: uowFactory,
		logger:     logger,
	}
}

// Handle processes the earn command. Returns the number of points awarded,
// zero when nothing was earned for any reason. Only command validation
// errors are returned as errors.
func (h EarnPointsCommandHandler) Handle(ctx context.Context, command EarnPointsCommand) (int64, error) {
	if err := command.Validate(); err != nil {
		return 0, err
	}

	points, err := h.earn(ctx, command.OrderID())
	if err != nil {
		h.logger.Error("point earning failed",
			"order_id", command.OrderID().String(),
			"error", err)
		return 0, nil
	}

	return points, nil
}

func (h EarnPointsCommandHandler) earn(ctx context.Context, orderID kernel.UUID) (int64, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	o, err := uow.OrderRepository().Get(ctx, orderID)
	if err != nil {
		return 0, err
	}

	userRepo := uow.UserRepository()

	customer, err := userRepo.GetForUpdate(ctx, o.CustomerID())
	if err != nil {
		return 0, err
	}

	points := o.Total().Percent(customer.Tier().EarnRatePercent())
	if points <= 0 {
		return 0, nil
	}

	ledgerRepo := uow.LedgerRepository()

	// An order awards points at most once. A repeated earn call is a no-op.
	_, err = ledgerRepo.GetEarnedByOrder(ctx, o.ID())
	if err == nil {
		return 0, nil
	}
	if !errors.Is(err, errs.ErrObjectNotFound) {
		return 0, err
	}

	now := time.Now().UTC()
	entry, err := ledger.NewEarnedEntry(
		kernel.NewUUID(),
		customer.ID(),
		o.ID(),
		points,
		fmt.Sprintf("Points earned for order %s", o.ID().String()),
		now,
	)
	if err != nil {
		return 0, err
	}

	if err = customer.CreditPoints(points); err != nil {
		return 0, err
	}

	if err = ledgerRepo.Add(ctx, entry); err != nil {
		return 0, err
	}

	if err = userRepo.Update(ctx, customer); err != nil {
		return 0, err
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	return points, nil
}

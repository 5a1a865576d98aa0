package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"bakery/internal/core/domain/model/kernel"
	"bakery/internal/core/domain/model/ledger"
	"bakery/internal/pkg/errs"
)

// RefundPointsCommandHandler returns redeemed points after a cancellation.
// Looks up the order's redeemed ledger entry and credits its magnitude
// back to the customer in one transaction. An order with no redemption is
// a no-op: nothing was spent, so there is nothing to return.
//
// Like redemption, refund errors propagate so the cancellation workflow
// can compensate.
type RefundPointsCommandHandler struct {
	uowFactory LedgerUoWFactory
}

// NewRefundPointsCommandHandler creates a handler for point refunds.
func NewRefundPointsCommandHandler(uowFactory LedgerUoWFactory) RefundPointsCommandHandler {
	return RefundPointsCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the refund command. Returns the number of points
// returned to the customer, zero when the order carried no redemption.
func (h RefundPointsCommandHandler) Handle(ctx context.Context, command RefundPointsCommand) (int64, error) {
	if err := command.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	ledgerRepo := uow.LedgerRepository()

	redeemed, err := ledgerRepo.GetRedeemedByOrder(ctx, command.OrderID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}

	points := redeemed.PointsMagnitude()
	if points == 0 {
		return 0, nil
	}

	userRepo := uow.UserRepository()

	customer, err := userRepo.GetForUpdate(ctx, redeemed.UserID())
	if err != nil {
		return 0, err
	}

	entry, err := ledger.NewRefundedEntry(
		kernel.NewUUID(),
		customer.ID(),
		command.OrderID(),
		points,
		fmt.Sprintf("Points refunded for order %s", command.OrderID().String()),
		time.Now().UTC(),
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

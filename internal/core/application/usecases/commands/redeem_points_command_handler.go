package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"bakery/internal/core/domain/model/kernel"
	"bakery/internal/core/domain/model/ledger"
)

var (
	ErrInsufficientPoints  = errors.New("user has insufficient points for redemption")
	ErrExcessiveRedemption = errors.New("redemption exceeds order total")
)

// RedeemPointsCommandHandler spends points against an order. Unlike the
// earn path, every failure propagates: checkout must know a redemption was
// rejected so it can abort the sale.
//
// Business rules enforced here:
//   - the customer's balance must cover the requested points
//   - the points may not exceed the order total, except when the total is
//     exactly zero (an order fully covered by points is allowed)
//
// The customer row is locked for the duration of the transaction so two
// concurrent redemptions against the same balance serialize.
//
// Example:
//
//	discount, err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, ErrInsufficientPoints):
//	    // reject checkout, balance unchanged
//	case errors.Is(err, ErrExcessiveRedemption):
//	    // ask for a smaller amount
//	case err != nil:
//	    // infrastructure failure, abort
//	}
type RedeemPointsCommandHandler struct {
	uowFactory LedgerUoWFactory
}

// NewRedeemPointsCommandHandler creates a handler for point redemption.
func NewRedeemPointsCommandHandler(uowFactory LedgerUoWFactory) RedeemPointsCommandHandler {
	return RedeemPointsCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the redemption command. Returns the discount the
// redeemed points are worth against this order.
func (h RedeemPointsCommandHandler) Handle(
	ctx context.Context,
	command RedeemPointsCommand,
) (kernel.Money, error) {
	if err := command.Validate(); err != nil {
		return kernel.Money{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return kernel.Money{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	o, err := uow.OrderRepository().Get(ctx, command.OrderID())
	if err != nil {
		return kernel.Money{}, err
	}

	userRepo := uow.UserRepository()

	customer, err := userRepo.GetForUpdate(ctx, o.CustomerID())
	if err != nil {
		return kernel.Money{}, err
	}

	points := command.Points()

	if customer.Points() < points {
		return kernel.Money{}, ErrInsufficientPoints
	}

	// A zero-total order is exempt: it means the purchase is fully covered
	// by points, which is an allowed 100%-points checkout.
	if o.Total().IsPositive() && !o.Total().CoversUnits(points) {
		return kernel.Money{}, ErrExcessiveRedemption
	}

	entry, err := ledger.NewRedeemedEntry(
		kernel.NewUUID(),
		customer.ID(),
		o.ID(),
		points,
		fmt.Sprintf("Points redeemed for order %s", o.ID().String()),
		time.Now().UTC(),
	)
	if err != nil {
		return kernel.Money{}, err
	}

	if err = customer.DebitPoints(points); err != nil {
		return kernel.Money{}, err
	}

	if err = uow.LedgerRepository().Add(ctx, entry); err != nil {
		return kernel.Money{}, err
	}

	if err = userRepo.Update(ctx, customer); err != nil {
		return kernel.Money{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return kernel.Money{}, err
	}

	return ledger.RedemptionDiscount(points, o.Total()), nil
}

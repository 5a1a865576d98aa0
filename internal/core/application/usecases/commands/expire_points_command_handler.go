package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"bakery/internal/core/domain/model/ledger"
	"bakery/internal/pkg/errs"
)

// ExpirePointsCommandHandler retires earned entries whose expiry date has
// passed. Each entry is processed in its own transaction: rewrite its type
// to expired and debit the owner's balance by its points. The sweep is
// tolerant of partial completion since an already-expired entry will not
// match the scan again.
//
// Entries belonging to a user whose balance is already negative are
// skipped, a guard against driving an inconsistent account further down.
type ExpirePointsCommandHandler struct {
	uowFactory LedgerUoWFactory
	logger     *slog.Logger
}

// NewExpirePointsCommandHandler creates a handler for the point expiry sweep.
func NewExpirePointsCommandHandler(uowFactory LedgerUoWFactory, logger *slog.Logger) ExpirePointsCommandHandler {
	return ExpirePointsCommandHandler{
		uowFactory: uowFactory,
		logger:     logger,
	}
}

// Handle processes the expiry sweep. Returns the total points expired
// across all users. Per-entry failures are logged and skipped so one bad
// row does not stall the whole sweep.
func (h ExpirePointsCommandHandler) Handle(ctx context.Context, command ExpirePointsCommand) (int64, error) {
	if err := command.Validate(); err != nil {
		return 0, err
	}

	now := time.Now().UTC()

	entries, err := h.scanExpirable(ctx, now)
	if err != nil {
		return 0, err
	}

	var total int64
	for _, entry := range entries {
		points, err := h.expireEntry(ctx, entry, now)
		if err != nil {
			h.logger.Error("failed to expire ledger entry",
				"entry_id", entry.ID().String(),
				"user_id", entry.UserID().String(),
				"error", err)
			continue
		}

		total += points
	}

	return total, nil
}

func (h ExpirePointsCommandHandler) scanExpirable(ctx context.Context, now time.Time) ([]*ledger.Entry, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	return uow.LedgerRepository().GetExpirable(ctx, now)
}

func (h ExpirePointsCommandHandler) expireEntry(ctx context.Context, entry *ledger.Entry, now time.Time) (int64, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	userRepo := uow.UserRepository()

	owner, err := userRepo.GetForUpdate(ctx, entry.UserID())
	if err != nil {
		return 0, err
	}

	// An already-negative balance means the account is inconsistent.
	// Leave it alone rather than dig the hole deeper.
	if owner.Points() < 0 {
		h.logger.Warn("skipping expiry for user with negative balance",
			"entry_id", entry.ID().String(),
			"user_id", owner.ID().String(),
			"balance", owner.Points())
		return 0, nil
	}

	if !entry.IsExpirable(now) {
		return 0, nil
	}

	points := entry.Points()

	if err = entry.Expire(); err != nil {
		return 0, err
	}

	if err = uow.LedgerRepository().MarkExpired(ctx, entry); err != nil {
		// Another sweep got to this entry first.
		if errors.Is(err, errs.ErrObjectNotFound) {
			return 0, nil
		}
		return 0, err
	}

	if err = owner.DebitPoints(points); err != nil {
		return 0, err
	}

	if err = userRepo.Update(ctx, owner); err != nil {
		return 0, err
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	h.logger.Info("expired ledger entry",
		"entry_id", entry.ID().String(),
		"user_id", owner.ID().String(),
		"points", points)

	return points, nil
}

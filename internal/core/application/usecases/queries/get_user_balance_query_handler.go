package queries

import (
	"context"
	"time"

	"bakery/internal/core/domain/model/ledger"

	"gorm.io/gorm"
)

// expiringSoonWindow is how far ahead the balance view looks for earned
// points that are about to lapse.
const expiringSoonWindow = 30 * 24 * time.Hour

// GetUserBalanceQueryHandler recomputes a user's point balance from the
// ledger. Redeemed entries are stored negated, so their magnitude is
// summed with the sign flipped. Earned entries keep their type until the
// expiry sweep rewrites them, which means summing by type naturally
// excludes expired points.
type GetUserBalanceQueryHandler struct {
	db *gorm.DB
}

// NewGetUserBalanceQueryHandler creates a handler for balance queries.
// Requires a GORM database connection for query execution.
func NewGetUserBalanceQueryHandler(db *gorm.DB) GetUserBalanceQueryHandler {
	return GetUserBalanceQueryHandler{db: db}
}

// Handle executes the balance query. Returns the earned, redeemed,
// available and expiring-soon point figures for the user. A user with no
// ledger entries gets an all-zero response.
func (h GetUserBalanceQueryHandler) Handle(
	ctx context.Context,
	query GetUserBalanceQuery,
) (GetUserBalanceQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetUserBalanceQueryResponse{}, err
	}

	now := time.Now().UTC()
	soon := now.Add(expiringSoonWindow)

	var response GetUserBalanceQueryResponse

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			COALESCE(SUM(points) FILTER (WHERE type = ?), 0) AS earned,
			COALESCE(SUM(-points) FILTER (WHERE type = ?), 0) AS redeemed,
			COALESCE(SUM(points) FILTER (
				WHERE type = ? AND expires_at > ? AND expires_at <= ?
			), 0) AS expiring_soon
		FROM point_transactions
		WHERE user_id = ?
	`,
		int(ledger.Earned),
		int(ledger.Redeemed),
		int(ledger.Earned), now, soon,
		query.UserID().Bytes(),
	).Row()

	err := row.Scan(&response.Earned, &response.Redeemed, &response.ExpiringSoon)
	if err != nil {
		return GetUserBalanceQueryResponse{}, err
	}

	response.Available = response.Earned - response.Redeemed
	if response.Available < 0 {
		response.Available = 0
	}

	return response, nil
}

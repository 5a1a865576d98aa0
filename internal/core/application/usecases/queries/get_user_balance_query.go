package queries

import (
	"errors"

	"bakery/internal/core/domain/model/kernel"
	"bakery/internal/pkg/guard"
)

var ErrGetUserBalanceQueryIsNotConstructed = errors.New(
	"GetUserBalanceQuery must be created via NewGetUserBalanceQuery constructor",
)

// GetUserBalanceQuery retrieves a user's loyalty point balance broken down
// by category. The figures are recomputed from the ledger, not read from
// the cached balance field, so this query doubles as the reconciliation
// view against the fast-path balance.
//
// Example:
//
//	query, err := NewGetUserBalanceQuery(userID)
//	if err != nil {
//	    return err
//	}
//
//	balance, err := handler.Handle(ctx, query)
//	fmt.Printf("available: %d, expiring soon: %d\n",
//	    balance.Available, balance.ExpiringSoon)
type GetUserBalanceQuery struct { //nolint:recvcheck //using for validation
	userID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetUserBalanceQuery creates a query for the given user's balance.
// Validates that the user ID is well formed.
func NewGetUserBalanceQuery(userID kernel.UUID) (GetUserBalanceQuery, error) {
	q := GetUserBalanceQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := q.setUserID(userID); err != nil {
		return GetUserBalanceQuery{}, err
	}

	return q, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetUserBalanceQueryIsNotConstructed if validation fails.
func (q GetUserBalanceQuery) Validate() error {
	return q.guard.Validate(ErrGetUserBalanceQueryIsNotConstructed)
}

// UserID returns the identifier of the user whose balance is requested.
func (q GetUserBalanceQuery) UserID() kernel.UUID {
	return q.userID
}

func (q *GetUserBalanceQuery) setUserID(userID kernel.UUID) error {
	if err := userID.Validate(); err != nil {
		return err
	}

	q.userID = userID
	return nil
}

// GetUserBalanceQueryResponse is the ledger-derived balance breakdown.
//
// Available is never negative: a ledger that sums below zero reports an
// available balance of zero.
type GetUserBalanceQueryResponse struct {
	Earned       int64
	Redeemed     int64
	Available    int64
	ExpiringSoon int64
}

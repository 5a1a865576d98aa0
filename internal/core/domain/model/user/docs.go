// Package user contains the User aggregate and its associated value objects.
//
// A User carries identity, a platform role, and the loyalty state managed by
// the points ledger: membership tier (which determines the earn rate) and the
// cached points balance. Users with the delivery role additionally carry a
// driver status and are candidates for delivery assignment.
//
// The cached points balance is denormalized for fast reads; every mutation of
// it happens in the same transaction as the corresponding ledger entry, and
// the ledger remains the source of truth for reconciliation.
package user

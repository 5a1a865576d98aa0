// Package ledger contains the loyalty point ledger: the immutable Entry
// record, its type enum, and the pure redemption-discount calculation.
//
// The ledger is append-only. Each Entry records one balance-affecting event
// (earned, redeemed, expired, adjusted, refunded) with a signed point value:
// redeemed entries store a negative value, all crediting entries a positive
// one. The single permitted post-creation mutation is rewriting an earned
// entry to expired in place when its expiry date passes.
//
// A user's cached balance must always equal the sum of their entries; the
// balance query recomputes that sum from the ledger as the authoritative
// reconciliation view.
package ledger

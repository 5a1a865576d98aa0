// Package order contains the Order aggregate, the DeliveryStatus state
// machine, and the append-only StatusHistory record.
//
// Orders are created by the checkout workflow in Pending status without a
// delivery agent. The allocator binds an agent to the order (assignment does
// not change the delivery status), and the status then advances monotonically
// through Preparing and InTransit to Delivered. Cancellation is the only
// exception to monotonic advancement and is reachable from Pending and
// Preparing only.
//
// Every status transition is recorded as a StatusHistory row carrying the
// acting user and an optional note.
package order

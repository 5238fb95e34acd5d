// Package order provides the Order aggregate and its two state machines.
//
// The package includes:
//   - Order: the aggregate root owning its lines, cancellation details and statuses
//   - Line: a purchased product quantity; cancelled lines stay on the order for audit
//   - Status: the fulfillment state machine (any state may move to any other)
//   - PaymentStatus: the payment state machine driven by PaymentEvent
//   - StatusChange: the audit record produced by every real fulfillment transition
//   - Transaction and PaymentEvent: append-only financial records tied to an order
//
// Key business rules:
//   - New orders start as Pending/Pending and must carry at least one line
//   - A transition to the current status is a no-op and yields no StatusChange
//   - Cancel always records who, when and why, and shares the audited transition
//   - A Paid event sets payment status to Paid, any other event sets Refunded
package order

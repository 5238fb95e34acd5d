// Package ports defines the persistence contracts of the ordering core.
// Adapters in internal/adapters/out implement them; the application layer
// depends only on these interfaces.
package ports

import (
	"context"
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
)

// OrderRepository persists the Order aggregate and its append-only records.
type OrderRepository interface {
	// Add inserts the order header and all of its lines and returns the
	// aggregate restored with the ids assigned by the store.
	Add(ctx context.Context, aggregate *order.Order) (*order.Order, error)

	// Get loads an order with its lines.
	// Returns errs.ObjectNotFoundError when the order does not exist.
	Get(ctx context.Context, id kernel.ID) (*order.Order, error)

	// GetForUpdate is Get with the order row locked until the surrounding
	// transaction ends. Concurrent writers on the same order queue behind it.
	GetForUpdate(ctx context.Context, id kernel.ID) (*order.Order, error)

	// Update writes the mutable header fields (statuses and cancellation)
	// and the status of every line.
	Update(ctx context.Context, aggregate *order.Order) error

	// AddStatusChange appends a fulfillment audit record.
	AddStatusChange(ctx context.Context, change order.StatusChange) error

	// AddPaymentEvent appends a payment event and returns it with its id.
	AddPaymentEvent(ctx context.Context, event *order.PaymentEvent) (*order.PaymentEvent, error)

	// AddTransaction appends a financial transaction and returns it with its id.
	AddTransaction(ctx context.Context, transaction *order.Transaction) (*order.Transaction, error)

	// ListStalePending returns up to limit orders that are still Pending with
	// payment Pending and were created before the given instant, oldest first.
	ListStalePending(ctx context.Context, createdBefore time.Time, limit int) ([]*order.Order, error)
}

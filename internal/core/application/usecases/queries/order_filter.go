package queries

import (
	"fmt"
	"strings"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/pkg/errs"

	"github.com/lib/pq"
)

// OrderStatusGroup is the coarse status filter exposed to order lists.
type OrderStatusGroup int

const (
	AnyStatusGroup OrderStatusGroup = iota
	ActiveOrders
	CancelledOrders
	CompletedOrders
)

func ParseOrderStatusGroup(s string) (OrderStatusGroup, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "active":
		return ActiveOrders, nil
	case "cancelled":
		return CancelledOrders, nil
	case "completed":
		return CompletedOrders, nil
	}
	return AnyStatusGroup, errs.NewValueIsInvalidErrorWithCause(
		"orderStatus", fmt.Errorf("%q is not one of Active, Cancelled, Completed", s),
	)
}

func (g OrderStatusGroup) String() string {
	switch g {
	case ActiveOrders:
		return "Active"
	case CancelledOrders:
		return "Cancelled"
	case CompletedOrders:
		return "Completed"
	case AnyStatusGroup:
	}
	return ""
}

// OrderFilter holds the optional list criteria. Zero values mean "not set".
// All set criteria must hold at once.
type OrderFilter struct {
	// Q matches the order id when it parses as one, or the exact user id.
	Q              string
	OrderStatus    OrderStatusGroup
	DetailedStatus order.Status
	UserID         string
	CreatedAt      kernel.Day
	PaymentStatus  order.PaymentStatus
}

// Predicate is one parameterized SQL condition over the orders table.
type Predicate struct {
	SQL  string
	Args []any
}

// BuildPredicates maps a filter to its conjunctive predicate list. It does no
// I/O; an empty filter yields no predicates.
func BuildPredicates(f OrderFilter) []Predicate {
	var predicates []Predicate

	if q := strings.TrimSpace(f.Q); q != "" {
		if id, err := kernel.IDFromString(q); err == nil {
			predicates = append(predicates, Predicate{
				SQL:  "(orders.id = ? OR orders.user_id = ?)",
				Args: []any{id.Int64(), q},
			})
		} else {
			predicates = append(predicates, Predicate{SQL: "orders.user_id = ?", Args: []any{q}})
		}
	}

	switch f.OrderStatus {
	case ActiveOrders:
		predicates = append(predicates, Predicate{
			SQL:  "orders.status <> ALL(?::text[])",
			Args: []any{pq.Array(closedStatusNames())},
		})
	case CancelledOrders:
		predicates = append(predicates, Predicate{SQL: "orders.status = ?", Args: []any{order.Cancelled.String()}})
	case CompletedOrders:
		predicates = append(predicates, Predicate{SQL: "orders.status = ?", Args: []any{order.Completed.String()}})
	case AnyStatusGroup:
	}

	if f.DetailedStatus != order.UnknownStatus {
		predicates = append(predicates, Predicate{SQL: "orders.status = ?", Args: []any{f.DetailedStatus.String()}})
	}

	if userID := strings.TrimSpace(f.UserID); userID != "" {
		predicates = append(predicates, Predicate{SQL: "orders.user_id = ?", Args: []any{userID}})
	}

	if !f.CreatedAt.IsZero() {
		start := f.CreatedAt.Start()
		predicates = append(predicates, Predicate{
			SQL:  "orders.created_at >= ? AND orders.created_at < ?",
			Args: []any{start, start.AddDate(0, 0, 1)},
		})
	}

	if f.PaymentStatus != order.UnknownPaymentStatus {
		predicates = append(predicates, Predicate{
			SQL:  "orders.payment_status = ?",
			Args: []any{f.PaymentStatus.String()},
		})
	}

	return predicates
}

func closedStatusNames() []string {
	closed := order.ClosedStatuses()
	names := make([]string, 0, len(closed))
	for _, s := range closed {
		names = append(names, s.String())
	}
	return names
}

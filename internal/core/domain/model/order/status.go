package order

import (
	"fmt"
	"strings"

	"ordering/internal/pkg/errs"
)

// Status is the fulfillment state of an order.
//
// No transition graph is enforced: any valid status may follow any other.
// Cancelled and Completed are terminal for reporting purposes only
// (see IsClosed), they do not block further transitions.
type Status int

const (
	// UnknownStatus catches uninitialized values.
	UnknownStatus Status = iota
	Pending
	Processing
	Couriered
	Shipped
	Delivered
	Returned
	Cancelled
	Completed
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		UnknownStatus: "Unknown",
		Pending:       "Pending",
		Processing:    "Processing",
		Couriered:     "Couriered",
		Shipped:       "Shipped",
		Delivered:     "Delivered",
		Returned:      "Returned",
		Cancelled:     "Cancelled",
		Completed:     "Completed",
	}
}

// Statuses lists every valid fulfillment status in declaration order.
func Statuses() []Status {
	return []Status{Pending, Processing, Couriered, Shipped, Delivered, Returned, Cancelled, Completed}
}

// ClosedStatuses are the statuses excluded by the "Active" list filter.
func ClosedStatuses() []Status {
	return []Status{Cancelled, Completed}
}

// ParseStatus converts the persisted/wire name into a Status.
// Matching is case-insensitive.
func ParseStatus(s string) (Status, error) {
	for _, st := range Statuses() {
		if strings.EqualFold(st.String(), strings.TrimSpace(s)) {
			return st, nil
		}
	}
	return UnknownStatus, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", s))
}

func (s Status) Validate() error {
	if s <= UnknownStatus || s > Completed {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsClosed reports whether the order no longer counts as active.
func (s Status) IsClosed() bool {
	return s == Cancelled || s == Completed
}

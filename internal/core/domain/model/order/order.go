package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var (
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")
	ErrOrderHasNoLines       = errs.NewValueIsRequiredError("order lines")
)

// Cancellation records who cancelled an order, when and why.
type Cancellation struct {
	By     string
	At     time.Time
	Reason string
}

// StatusChange is the audit record of one fulfillment transition.
type StatusChange struct {
	OrderID   kernel.ID
	Previous  Status
	New       Status
	ChangedAt time.Time
}

// Order is the aggregate root of a purchase. Its id is assigned by the store,
// so orders built with NewOrder carry a zero ID until restored from storage.
type Order struct {
	id            kernel.ID
	userID        string
	cartID        kernel.ID
	status        Status
	paymentStatus PaymentStatus
	discount      decimal.Decimal
	tax           decimal.Decimal
	cancellation  *Cancellation
	createdAt     time.Time
	lines         []*Line

	isConstructed bool
}

// NewOrder creates a Pending/Pending order for a cart snapshot.
func NewOrder(
	userID string, cartID kernel.ID, discount, tax decimal.Decimal, lines []*Line, createdAt time.Time,
) (*Order, error) {
	o := &Order{
		status:        Pending,
		paymentStatus: PaymentPending,
		createdAt:     createdAt,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setUserID(userID),
		o.setCartID(cartID),
		o.setAdjustments(discount, tax),
		o.setLines(lines),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrder rebuilds a persisted order. Lines may be empty when the
// caller only needs the header.
func RestoreOrder(
	id kernel.ID,
	userID string,
	cartID kernel.ID,
	status Status,
	paymentStatus PaymentStatus,
	discount, tax decimal.Decimal,
	cancellation *Cancellation,
	createdAt time.Time,
	lines []*Line,
) (*Order, error) {
	if err := errors.Join(
		id.Validate(),
		status.Validate(),
		paymentStatus.Validate(),
	); err != nil {
		return nil, err
	}

	for _, l := range lines {
		if err := l.Validate(); err != nil {
			return nil, err
		}
	}

	return &Order{
		id:            id,
		userID:        userID,
		cartID:        cartID,
		status:        status,
		paymentStatus: paymentStatus,
		discount:      discount,
		tax:           tax,
		cancellation:  cancellation,
		createdAt:     createdAt,
		lines:         lines,
		isConstructed: true,
	}, nil
}

func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.ID                { return o.id }
func (o *Order) UserID() string               { return o.userID }
func (o *Order) CartID() kernel.ID            { return o.cartID }
func (o *Order) Status() Status               { return o.status }
func (o *Order) PaymentStatus() PaymentStatus { return o.paymentStatus }
func (o *Order) Discount() decimal.Decimal    { return o.discount }
func (o *Order) Tax() decimal.Decimal         { return o.tax }
func (o *Order) CreatedAt() time.Time         { return o.createdAt }
func (o *Order) Cancellation() *Cancellation  { return o.cancellation }

// Lines returns the order lines, cancelled ones included.
func (o *Order) Lines() []*Line {
	out := make([]*Line, len(o.lines))
	copy(out, o.lines)
	return out
}

// TransitionTo moves the order to target and returns the audit record.
// A transition to the current status returns a nil record and changes nothing.
func (o *Order) TransitionTo(target Status, at time.Time) (*StatusChange, error) {
	if err := target.Validate(); err != nil {
		return nil, err
	}
	if o.status == target {
		return nil, nil
	}

	change := &StatusChange{
		OrderID:   o.id,
		Previous:  o.status,
		New:       target,
		ChangedAt: at,
	}
	o.status = target
	return change, nil
}

// Cancel sets the order to Cancelled whatever its current status and records
// the cancellation details. The returned audit record is nil when the order
// was already cancelled.
func (o *Order) Cancel(by, reason string, at time.Time) (*StatusChange, error) {
	by = strings.TrimSpace(by)
	if by == "" {
		return nil, errs.NewValueIsRequiredError("cancelledBy")
	}

	change, err := o.TransitionTo(Cancelled, at)
	if err != nil {
		return nil, err
	}

	o.cancellation = &Cancellation{
		By:     by,
		At:     at,
		Reason: strings.TrimSpace(reason),
	}
	return change, nil
}

// ApplyPaymentEvent sets the payment status from the event type alone.
// Earlier events are not consulted: the last event written wins.
func (o *Order) ApplyPaymentEvent(event *PaymentEvent) (bool, error) {
	if err := event.Validate(); err != nil {
		return false, err
	}
	if !event.OrderID().IsEqual(o.id) {
		return false, errs.NewValueIsInvalidErrorWithCause(
			"payment event", fmt.Errorf("event belongs to order %s, not %s", event.OrderID(), o.id),
		)
	}
	return o.ChangePaymentStatus(event.Type().ResultingPaymentStatus())
}

// ChangePaymentStatus overrides the payment status. It reports whether the
// value changed.
func (o *Order) ChangePaymentStatus(status PaymentStatus) (bool, error) {
	if err := status.Validate(); err != nil {
		return false, err
	}
	if o.paymentStatus == status {
		return false, nil
	}
	o.paymentStatus = status
	return true, nil
}

// CancelLine cancels one line. It reports false if the line was already cancelled.
func (o *Order) CancelLine(lineID kernel.ID) (*Line, bool, error) {
	for _, l := range o.lines {
		if l.id.IsEqual(lineID) {
			return l, l.Cancel(), nil
		}
	}
	return nil, false, errs.NewObjectNotFoundError("order line", lineID.String())
}

func (o *Order) setUserID(userID string) error {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return errs.NewValueIsRequiredError("userId")
	}
	o.userID = userID
	return nil
}

func (o *Order) setCartID(cartID kernel.ID) error {
	if err := cartID.Validate(); err != nil {
		return err
	}
	o.cartID = cartID
	return nil
}

func (o *Order) setAdjustments(discount, tax decimal.Decimal) error {
	var errList []error
	if discount.IsNegative() {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause(
			"discount", fmt.Errorf("%s is less than 0", discount),
		))
	}
	if tax.IsNegative() {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause(
			"tax", fmt.Errorf("%s is less than 0", tax),
		))
	}
	if err := errors.Join(errList...); err != nil {
		return err
	}
	o.discount = discount
	o.tax = tax
	return nil
}

func (o *Order) setLines(lines []*Line) error {
	if len(lines) == 0 {
		return ErrOrderHasNoLines
	}
	for _, l := range lines {
		if err := l.Validate(); err != nil {
			return err
		}
	}
	o.lines = lines
	return nil
}

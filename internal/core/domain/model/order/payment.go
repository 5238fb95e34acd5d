package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/errs"
	"ordering/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

// PaymentStatus is the payment state of an order: Pending, Paid or Refunded.
type PaymentStatus int

const (
	UnknownPaymentStatus PaymentStatus = iota
	PaymentPending
	PaymentPaid
	PaymentRefunded
)

func getPaymentStatusStrings() map[PaymentStatus]string {
	return map[PaymentStatus]string{
		UnknownPaymentStatus: "Unknown",
		PaymentPending:       "Pending",
		PaymentPaid:          "Paid",
		PaymentRefunded:      "Refunded",
	}
}

func PaymentStatuses() []PaymentStatus {
	return []PaymentStatus{PaymentPending, PaymentPaid, PaymentRefunded}
}

func ParsePaymentStatus(s string) (PaymentStatus, error) {
	for _, ps := range PaymentStatuses() {
		if strings.EqualFold(ps.String(), strings.TrimSpace(s)) {
			return ps, nil
		}
	}
	return UnknownPaymentStatus, errs.NewValueIsInvalidErrorWithCause(
		"paymentStatus", fmt.Errorf("%q is not a valid payment status", s),
	)
}

func (s PaymentStatus) Validate() error {
	if s <= UnknownPaymentStatus || s > PaymentRefunded {
		return errs.NewValueIsInvalidErrorWithCause("paymentStatus", fmt.Errorf("%d is not a valid payment status", s))
	}
	return nil
}

func (s PaymentStatus) String() string {
	if str, ok := getPaymentStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// PaymentEventType distinguishes money coming in from money going back.
type PaymentEventType int

const (
	UnknownPaymentEventType PaymentEventType = iota
	PaymentEventPaid
	PaymentEventRefund
)

func ParsePaymentEventType(s string) (PaymentEventType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "paid":
		return PaymentEventPaid, nil
	case "refund":
		return PaymentEventRefund, nil
	default:
		return UnknownPaymentEventType, errs.NewValueIsInvalidErrorWithCause(
			"payment event type", fmt.Errorf("%q is not a valid payment event type", s),
		)
	}
}

func (t PaymentEventType) String() string {
	switch t {
	case PaymentEventPaid:
		return "Paid"
	case PaymentEventRefund:
		return "Refund"
	default:
		return "Unknown"
	}
}

// ResultingPaymentStatus is the payment status an event of this type leaves
// the order in. Only Paid maps to PaymentPaid; everything else is a refund.
func (t PaymentEventType) ResultingPaymentStatus() PaymentStatus {
	if t == PaymentEventPaid {
		return PaymentPaid
	}
	return PaymentRefunded
}

var ErrPaymentEventIsNotConstructed = errors.New("PaymentEvent must be created via NewPaymentEvent constructor")

// PaymentEvent is an append-only record of a payment or refund.
type PaymentEvent struct {
	id         kernel.ID
	orderID    kernel.ID
	eventType  PaymentEventType
	amount     decimal.Decimal
	occurredAt time.Time

	guard guard.ConstructorGuard
}

func NewPaymentEvent(
	orderID kernel.ID, eventType PaymentEventType, amount decimal.Decimal, occurredAt time.Time,
) (*PaymentEvent, error) {
	var errList []error
	if err := orderID.Validate(); err != nil {
		errList = append(errList, err)
	}
	if eventType == UnknownPaymentEventType {
		errList = append(errList, errs.NewValueIsRequiredError("payment event type"))
	}
	if !amount.IsPositive() {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause(
			"amount", fmt.Errorf("%s is not greater than 0", amount),
		))
	}
	if err := errors.Join(errList...); err != nil {
		return nil, err
	}

	return &PaymentEvent{
		orderID:    orderID,
		eventType:  eventType,
		amount:     amount,
		occurredAt: occurredAt,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// RestorePaymentEvent rebuilds a persisted event.
func RestorePaymentEvent(
	id, orderID kernel.ID, eventType PaymentEventType, amount decimal.Decimal, occurredAt time.Time,
) (*PaymentEvent, error) {
	e, err := NewPaymentEvent(orderID, eventType, amount, occurredAt)
	if err != nil {
		return nil, err
	}
	e.id = id
	return e, nil
}

func (e *PaymentEvent) Validate() error {
	if e == nil {
		return ErrPaymentEventIsNotConstructed
	}
	return e.guard.Validate(ErrPaymentEventIsNotConstructed)
}

func (e *PaymentEvent) ID() kernel.ID          { return e.id }
func (e *PaymentEvent) OrderID() kernel.ID     { return e.orderID }
func (e *PaymentEvent) Type() PaymentEventType { return e.eventType }
func (e *PaymentEvent) Amount() decimal.Decimal {
	return e.amount
}
func (e *PaymentEvent) OccurredAt() time.Time { return e.occurredAt }

var ErrTransactionIsNotConstructed = errors.New("Transaction must be created via NewTransaction constructor")

// Transaction is a financial movement recorded against an order.
type Transaction struct {
	id        kernel.ID
	orderID   kernel.ID
	amount    decimal.Decimal
	method    string
	reference kernel.Reference
	createdAt time.Time

	guard guard.ConstructorGuard
}

func NewTransaction(
	orderID kernel.ID, amount decimal.Decimal, method string, reference kernel.Reference, createdAt time.Time,
) (*Transaction, error) {
	method = strings.TrimSpace(method)

	var errList []error
	if err := orderID.Validate(); err != nil {
		errList = append(errList, err)
	}
	if amount.IsZero() {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause("amount", errors.New("amount must not be zero")))
	}
	if method == "" {
		errList = append(errList, errs.NewValueIsRequiredError("method"))
	}
	if err := reference.Validate(); err != nil {
		errList = append(errList, err)
	}
	if err := errors.Join(errList...); err != nil {
		return nil, err
	}

	return &Transaction{
		orderID:   orderID,
		amount:    amount,
		method:    method,
		reference: reference,
		createdAt: createdAt,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func RestoreTransaction(
	id, orderID kernel.ID, amount decimal.Decimal, method string, reference kernel.Reference, createdAt time.Time,
) (*Transaction, error) {
	tx, err := NewTransaction(orderID, amount, method, reference, createdAt)
	if err != nil {
		return nil, err
	}
	tx.id = id
	return tx, nil
}

func (t *Transaction) Validate() error {
	if t == nil {
		return ErrTransactionIsNotConstructed
	}
	return t.guard.Validate(ErrTransactionIsNotConstructed)
}

func (t *Transaction) ID() kernel.ID               { return t.id }
func (t *Transaction) OrderID() kernel.ID          { return t.orderID }
func (t *Transaction) Amount() decimal.Decimal     { return t.amount }
func (t *Transaction) Method() string              { return t.method }
func (t *Transaction) Reference() kernel.Reference { return t.reference }
func (t *Transaction) CreatedAt() time.Time        { return t.createdAt }

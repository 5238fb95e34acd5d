package commands

import (
	"errors"
	"fmt"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/pkg/errs"
	"ordering/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrCreatePaymentEventCommandIsNotConstructed = errors.New(
	"CreatePaymentEventCommand must be created via NewCreatePaymentEventCommand constructor",
)

// CreatePaymentEventCommand records a payment or refund reported by the
// payment provider.
type CreatePaymentEventCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.ID
	eventType order.PaymentEventType
	amount    decimal.Decimal

	guard guard.ConstructorGuard
}

func NewCreatePaymentEventCommand(
	orderID kernel.ID, eventType order.PaymentEventType, amount decimal.Decimal,
) (CreatePaymentEventCommand, error) {
	cmd := CreatePaymentEventCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setEventType(eventType),
		cmd.setAmount(amount),
	); err != nil {
		return CreatePaymentEventCommand{}, err
	}

	return cmd, nil
}

func (c CreatePaymentEventCommand) Validate() error {
	return c.guard.Validate(ErrCreatePaymentEventCommandIsNotConstructed)
}

func (c CreatePaymentEventCommand) OrderID() kernel.ID                { return c.orderID }
func (c CreatePaymentEventCommand) EventType() order.PaymentEventType { return c.eventType }
func (c CreatePaymentEventCommand) Amount() decimal.Decimal           { return c.amount }

func (c *CreatePaymentEventCommand) setOrderID(orderID kernel.ID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CreatePaymentEventCommand) setEventType(eventType order.PaymentEventType) error {
	if eventType == order.UnknownPaymentEventType {
		return errs.NewValueIsRequiredError("type")
	}

	c.eventType = eventType
	return nil
}

func (c *CreatePaymentEventCommand) setAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return errs.NewValueIsInvalidErrorWithCause("amount", fmt.Errorf("%s is not greater than 0", amount))
	}

	c.amount = amount
	return nil
}

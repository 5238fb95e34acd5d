package commands

import (
	"errors"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/pkg/guard"
)

var ErrChangePaymentStatusCommandIsNotConstructed = errors.New(
	"ChangePaymentStatusCommand must be created via NewChangePaymentStatusCommand constructor",
)

// ChangePaymentStatusCommand overrides the payment status directly, without
// recording a payment event.
type ChangePaymentStatusCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.ID
	status  order.PaymentStatus

	guard guard.ConstructorGuard
}

func NewChangePaymentStatusCommand(orderID kernel.ID, status order.PaymentStatus) (ChangePaymentStatusCommand, error) {
	cmd := ChangePaymentStatusCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		orderID.Validate(),
		status.Validate(),
	); err != nil {
		return ChangePaymentStatusCommand{}, err
	}

	cmd.orderID = orderID
	cmd.status = status
	return cmd, nil
}

func (c ChangePaymentStatusCommand) Validate() error {
	return c.guard.Validate(ErrChangePaymentStatusCommandIsNotConstructed)
}

func (c ChangePaymentStatusCommand) OrderID() kernel.ID          { return c.orderID }
func (c ChangePaymentStatusCommand) Status() order.PaymentStatus { return c.status }

package commands

import (
	"errors"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/guard"
)

var ErrCancelOrderLineCommandIsNotConstructed = errors.New(
	"CancelOrderLineCommand must be created via NewCancelOrderLineCommand constructor",
)

// CancelOrderLineCommand removes one line from the order total. The line
// stays on the order with status Cancelled.
type CancelOrderLineCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.ID
	lineID  kernel.ID

	guard guard.ConstructorGuard
}

func NewCancelOrderLineCommand(orderID, lineID kernel.ID) (CancelOrderLineCommand, error) {
	cmd := CancelOrderLineCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		orderID.Validate(),
		lineID.Validate(),
	); err != nil {
		return CancelOrderLineCommand{}, err
	}

	cmd.orderID = orderID
	cmd.lineID = lineID
	return cmd, nil
}

func (c CancelOrderLineCommand) Validate() error {
	return c.guard.Validate(ErrCancelOrderLineCommandIsNotConstructed)
}

func (c CancelOrderLineCommand) OrderID() kernel.ID { return c.orderID }
func (c CancelOrderLineCommand) LineID() kernel.ID  { return c.lineID }

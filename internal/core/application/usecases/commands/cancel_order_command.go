package commands

import (
	"errors"
	"strings"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/errs"
	"ordering/internal/pkg/guard"
)

var ErrCancelOrderCommandIsNotConstructed = errors.New(
	"CancelOrderCommand must be created via NewCancelOrderCommand constructor",
)

// CancelOrderCommand cancels an order on behalf of an actor. The reason is
// free text and may be empty.
type CancelOrderCommand struct { //nolint:recvcheck //using for validation
	orderID     kernel.ID
	cancelledBy string
	reason      string

	guard guard.ConstructorGuard
}

func NewCancelOrderCommand(orderID kernel.ID, cancelledBy, reason string) (CancelOrderCommand, error) {
	cmd := CancelOrderCommand{
		reason: strings.TrimSpace(reason),
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setCancelledBy(cancelledBy),
	); err != nil {
		return CancelOrderCommand{}, err
	}

	return cmd, nil
}

func (c CancelOrderCommand) Validate() error {
	return c.guard.Validate(ErrCancelOrderCommandIsNotConstructed)
}

func (c CancelOrderCommand) OrderID() kernel.ID  { return c.orderID }
func (c CancelOrderCommand) CancelledBy() string { return c.cancelledBy }
func (c CancelOrderCommand) Reason() string      { return c.reason }

func (c *CancelOrderCommand) setOrderID(orderID kernel.ID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CancelOrderCommand) setCancelledBy(cancelledBy string) error {
	cancelledBy = strings.TrimSpace(cancelledBy)
	if cancelledBy == "" {
		return errs.NewValueIsRequiredError("cancelledBy")
	}

	c.cancelledBy = cancelledBy
	return nil
}

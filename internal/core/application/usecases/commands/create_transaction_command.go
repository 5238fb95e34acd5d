package commands

import (
	"errors"
	"strings"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/errs"
	"ordering/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrCreateTransactionCommandIsNotConstructed = errors.New(
	"CreateTransactionCommand must be created via NewCreateTransactionCommand constructor",
)

// CreateTransactionCommand records a financial movement against an order.
// Negative amounts are refunds. An empty reference gets a generated one.
type CreateTransactionCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.ID
	amount    decimal.Decimal
	method    string
	reference kernel.Reference

	guard guard.ConstructorGuard
}

func NewCreateTransactionCommand(
	orderID kernel.ID, amount decimal.Decimal, method, reference string,
) (CreateTransactionCommand, error) {
	cmd := CreateTransactionCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setAmount(amount),
		cmd.setMethod(method),
		cmd.setReference(reference),
	); err != nil {
		return CreateTransactionCommand{}, err
	}

	return cmd, nil
}

func (c CreateTransactionCommand) Validate() error {
	return c.guard.Validate(ErrCreateTransactionCommandIsNotConstructed)
}

func (c CreateTransactionCommand) OrderID() kernel.ID          { return c.orderID }
func (c CreateTransactionCommand) Amount() decimal.Decimal     { return c.amount }
func (c CreateTransactionCommand) Method() string              { return c.method }
func (c CreateTransactionCommand) Reference() kernel.Reference { return c.reference }

func (c *CreateTransactionCommand) setOrderID(orderID kernel.ID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CreateTransactionCommand) setAmount(amount decimal.Decimal) error {
	if amount.IsZero() {
		return errs.NewValueIsInvalidErrorWithCause("amount", errors.New("amount must not be zero"))
	}

	c.amount = amount
	return nil
}

func (c *CreateTransactionCommand) setMethod(method string) error {
	method = strings.TrimSpace(method)
	if method == "" {
		return errs.NewValueIsRequiredError("method")
	}

	c.method = method
	return nil
}

func (c *CreateTransactionCommand) setReference(reference string) error {
	if strings.TrimSpace(reference) == "" {
		c.reference = kernel.NewReference()
		return nil
	}

	ref, err := kernel.ReferenceFromString(reference)
	if err != nil {
		return err
	}

	c.reference = ref
	return nil
}

package commands

import (
	"errors"
	"fmt"
	"strings"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/errs"
	"ordering/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CartLine is one line of the cart snapshot an order is placed from.
// OriginalPrice is the catalog price; Price is what the customer pays.
type CartLine struct {
	CartID        kernel.ID
	ProductID     kernel.ID
	Price         decimal.Decimal
	OriginalPrice decimal.Decimal
	Quantity      int
}

// CreateOrderCommand represents a checkout of one cart.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand("user-42", cartID,
//	    decimal.NewNullDecimal(decimal.NewFromInt(10)), decimal.NullDecimal{},
//	    []CartLine{{CartID: cartID, ProductID: productID, Price: p, OriginalPrice: p, Quantity: 1}},
//	)
//	if err != nil {
//	    return fmt.Errorf("invalid checkout: %w", err)
//	}
//	created, err := handler.Handle(ctx, cmd)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	userID   string
	cartID   kernel.ID
	discount decimal.Decimal
	tax      decimal.Decimal
	lines    []CartLine

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand validates the header and every line. Unset discount
// and tax become zero. Each line must belong to cartID.
func NewCreateOrderCommand(
	userID string, cartID kernel.ID, discount, tax decimal.NullDecimal, lines []CartLine,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setUserID(userID),
		cmd.setCartID(cartID),
		cmd.setAdjustments(discount, tax),
		cmd.setLines(cartID, lines),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) UserID() string            { return c.userID }
func (c CreateOrderCommand) CartID() kernel.ID         { return c.cartID }
func (c CreateOrderCommand) Discount() decimal.Decimal { return c.discount }
func (c CreateOrderCommand) Tax() decimal.Decimal      { return c.tax }

// Lines returns a copy of the cart lines.
func (c CreateOrderCommand) Lines() []CartLine {
	return append([]CartLine(nil), c.lines...)
}

func (c *CreateOrderCommand) setUserID(userID string) error {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return errs.NewValueIsRequiredError("userId")
	}

	c.userID = userID
	return nil
}

func (c *CreateOrderCommand) setCartID(cartID kernel.ID) error {
	if err := cartID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("cartId", err)
	}

	c.cartID = cartID
	return nil
}

func (c *CreateOrderCommand) setAdjustments(discount, tax decimal.NullDecimal) error {
	if discount.Valid {
		c.discount = discount.Decimal
	}
	if tax.Valid {
		c.tax = tax.Decimal
	}
	return nil
}

func (c *CreateOrderCommand) setLines(cartID kernel.ID, lines []CartLine) error {
	if len(lines) == 0 {
		return errs.NewValueIsRequiredError("lines")
	}

	for i, line := range lines {
		if !line.CartID.IsEqual(cartID) {
			return errs.NewValueIsInvalidErrorWithCause(
				fmt.Sprintf("lines[%d].cartId", i),
				fmt.Errorf("line belongs to cart %s, not %s", line.CartID, cartID),
			)
		}
	}

	c.lines = append([]CartLine(nil), lines...)
	return nil
}

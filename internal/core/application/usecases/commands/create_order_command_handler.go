package commands

import (
	"context"
	"time"

	"ordering/internal/core/domain/model/order"
)

// CreateOrderCommandHandler places an order for a cart snapshot. The cart
// is frozen and the order header and lines are inserted in one transaction.
type CreateOrderCommandHandler struct {
	uowFactory CheckoutUoWFactory
}

func NewCreateOrderCommandHandler(uowFactory CheckoutUoWFactory) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle returns the stored order with the ids assigned by the store.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	lines := make([]*order.Line, 0, len(cmd.Lines()))
	for _, cl := range cmd.Lines() {
		line, err := order.NewLine(cl.ProductID, cl.Price, cl.OriginalPrice, cl.Quantity)
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}

	newOrder, err := order.NewOrder(cmd.UserID(), cmd.CartID(), cmd.Discount(), cmd.Tax(), lines, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.CartRepository().Freeze(ctx, cmd.CartID()); err != nil {
		return nil, err
	}

	saved, err := uow.OrderRepository().Add(ctx, newOrder)
	if err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return saved, nil
}

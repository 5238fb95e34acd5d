package commands

import (
	"context"
	"time"

	"ordering/internal/core/domain/model/order"
)

type CreateTransactionCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewCreateTransactionCommandHandler(uowFactory OrderUoWFactory) CreateTransactionCommandHandler {
	return CreateTransactionCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle returns errs.ObjectNotFoundError when the order does not exist.
func (h CreateTransactionCommandHandler) Handle(
	ctx context.Context, cmd CreateTransactionCommand,
) (*order.Transaction, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OrderRepository()

	if _, err := repo.Get(ctx, cmd.OrderID()); err != nil {
		return nil, err
	}

	tx, err := order.NewTransaction(cmd.OrderID(), cmd.Amount(), cmd.Method(), cmd.Reference(), time.Now().UTC())
	if err != nil {
		return nil, err
	}

	stored, err := repo.AddTransaction(ctx, tx)
	if err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return stored, nil
}

package commands

import (
	"context"
)

type CancelOrderLineCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewCancelOrderLineCommandHandler(uowFactory OrderUoWFactory) CancelOrderLineCommandHandler {
	return CancelOrderLineCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle reports whether the line changed. Unknown orders and lines return
// errs.ObjectNotFoundError.
func (h CancelOrderLineCommandHandler) Handle(ctx context.Context, cmd CancelOrderLineCommand) (bool, error) {
	if err := cmd.Validate(); err != nil {
		return false, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return false, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OrderRepository()

	current, err := repo.GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return false, err
	}

	_, changed, err := current.CancelLine(cmd.LineID())
	if err != nil {
		return false, err
	}
	if !changed {
		return false, nil
	}

	if err = repo.Update(ctx, current); err != nil {
		return false, err
	}

	if err = uow.Commit(ctx); err != nil {
		return false, err
	}

	return true, nil
}

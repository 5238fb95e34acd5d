package commands

import (
	"context"
	"errors"

	"ordering/internal/pkg/errs"
)

type ChangePaymentStatusCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewChangePaymentStatusCommandHandler(uowFactory OrderUoWFactory) ChangePaymentStatusCommandHandler {
	return ChangePaymentStatusCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle mirrors ChangeOrderStatusCommandHandler: missing orders and
// unchanged statuses are silent no-ops reported as false.
func (h ChangePaymentStatusCommandHandler) Handle(ctx context.Context, cmd ChangePaymentStatusCommand) (bool, error) {
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
	if errors.Is(err, errs.ErrObjectNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	changed, err := current.ChangePaymentStatus(cmd.Status())
	if err != nil || !changed {
		return false, err
	}

	if err = repo.Update(ctx, current); err != nil {
		return false, err
	}

	if err = uow.Commit(ctx); err != nil {
		return false, err
	}

	return true, nil
}

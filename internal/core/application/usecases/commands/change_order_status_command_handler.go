package commands

import (
	"context"
	"errors"
	"time"

	"ordering/internal/pkg/errs"
)

// ChangeOrderStatusCommandHandler applies a fulfillment transition and
// writes its audit record in the same transaction.
type ChangeOrderStatusCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewChangeOrderStatusCommandHandler(uowFactory OrderUoWFactory) ChangeOrderStatusCommandHandler {
	return ChangeOrderStatusCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle reports whether anything was written. A missing order and a
// transition to the current status are both silent no-ops.
func (h ChangeOrderStatusCommandHandler) Handle(ctx context.Context, cmd ChangeOrderStatusCommand) (bool, error) {
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

	change, err := current.TransitionTo(cmd.Status(), time.Now().UTC())
	if err != nil {
		return false, err
	}
	if change == nil {
		return false, nil
	}

	if err = repo.Update(ctx, current); err != nil {
		return false, err
	}

	if err = repo.AddStatusChange(ctx, *change); err != nil {
		return false, err
	}

	if err = uow.Commit(ctx); err != nil {
		return false, err
	}

	return true, nil
}

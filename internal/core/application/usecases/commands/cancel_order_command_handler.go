package commands

import (
	"context"
	"time"

	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/ports"
)

// CancelOrderCommandHandler cancels an order through the audited transition,
// so a status change row is written whenever the status actually changes.
type CancelOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewCancelOrderCommandHandler(uowFactory OrderUoWFactory) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle returns errs.ObjectNotFoundError when the order does not exist.
// Cancelling an already cancelled order refreshes the cancellation details.
func (h CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OrderRepository()

	current, err := repo.GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if err = cancelLocked(ctx, repo, current, cmd.CancelledBy(), cmd.Reason(), time.Now().UTC()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

// cancelLocked cancels an order the caller already holds the row lock for.
func cancelLocked(
	ctx context.Context, repo ports.OrderRepository, o *order.Order, by, reason string, at time.Time,
) error {
	change, err := o.Cancel(by, reason, at)
	if err != nil {
		return err
	}

	if err = repo.Update(ctx, o); err != nil {
		return err
	}

	if change != nil {
		if err = repo.AddStatusChange(ctx, *change); err != nil {
			return err
		}
	}

	return nil
}

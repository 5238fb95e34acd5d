package commands

import (
	"context"
	"time"

	"ordering/internal/core/domain/model/order"
)

// CreatePaymentEventCommandHandler appends a payment event and derives the
// order payment status from it in one transaction. Concurrent events on the
// same order queue on the row lock; the last one to commit wins.
type CreatePaymentEventCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewCreatePaymentEventCommandHandler(uowFactory OrderUoWFactory) CreatePaymentEventCommandHandler {
	return CreatePaymentEventCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h CreatePaymentEventCommandHandler) Handle(
	ctx context.Context, cmd CreatePaymentEventCommand,
) (*order.PaymentEvent, error) {
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

	current, err := repo.GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	event, err := order.NewPaymentEvent(cmd.OrderID(), cmd.EventType(), cmd.Amount(), time.Now().UTC())
	if err != nil {
		return nil, err
	}

	stored, err := repo.AddPaymentEvent(ctx, event)
	if err != nil {
		return nil, err
	}

	changed, err := current.ApplyPaymentEvent(stored)
	if err != nil {
		return nil, err
	}

	if changed {
		if err = repo.Update(ctx, current); err != nil {
			return nil, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return stored, nil
}

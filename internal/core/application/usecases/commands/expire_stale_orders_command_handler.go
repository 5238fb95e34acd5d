package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
)

// ExpireStaleOrdersCommandHandler cancels abandoned checkouts. Each order is
// cancelled in its own transaction so one failure does not hold back the
// rest of the batch.
type ExpireStaleOrdersCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewExpireStaleOrdersCommandHandler(uowFactory OrderUoWFactory) ExpireStaleOrdersCommandHandler {
	return ExpireStaleOrdersCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle returns the number of orders cancelled together with the joined
// errors of the orders that could not be.
func (h ExpireStaleOrdersCommandHandler) Handle(ctx context.Context, cmd ExpireStaleOrdersCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	candidates, err := h.uowFactory.Create().OrderRepository().
		ListStalePending(ctx, cmd.CreatedBefore(), cmd.BatchSize())
	if err != nil {
		return 0, err
	}

	expired := 0
	var errList []error
	for _, candidate := range candidates {
		if ctx.Err() != nil {
			errList = append(errList, ctx.Err())
			break
		}

		ok, expireErr := h.expire(ctx, candidate.ID())
		if expireErr != nil {
			errList = append(errList, fmt.Errorf("expire order %s: %w", candidate.ID(), expireErr))
			continue
		}
		if ok {
			expired++
		}
	}

	return expired, errors.Join(errList...)
}

// expire re-checks the order under its row lock: it may have been paid or
// moved on since the candidate list was read.
func (h ExpireStaleOrdersCommandHandler) expire(ctx context.Context, id kernel.ID) (bool, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return false, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OrderRepository()

	current, err := repo.GetForUpdate(ctx, id)
	if err != nil {
		return false, err
	}
	if current.Status() != order.Pending || current.PaymentStatus() != order.PaymentPending {
		return false, nil
	}

	if err = cancelLocked(ctx, repo, current, ExpiryActor, ExpiryReason, time.Now().UTC()); err != nil {
		return false, err
	}

	if err = uow.Commit(ctx); err != nil {
		return false, err
	}

	return true, nil
}

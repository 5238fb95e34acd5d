package commands

import (
	"errors"
	"fmt"
	"time"

	"ordering/internal/pkg/errs"
	"ordering/internal/pkg/guard"
)

const (
	ExpiryActor  = "system"
	ExpiryReason = "payment timeout"
)

var ErrExpireStaleOrdersCommandIsNotConstructed = errors.New(
	"ExpireStaleOrdersCommand must be created via NewExpireStaleOrdersCommand constructor",
)

// ExpireStaleOrdersCommand cancels up to batchSize orders that are still
// unpaid and were placed before createdBefore.
type ExpireStaleOrdersCommand struct { //nolint:recvcheck //using for validation
	createdBefore time.Time
	batchSize     int

	guard guard.ConstructorGuard
}

func NewExpireStaleOrdersCommand(createdBefore time.Time, batchSize int) (ExpireStaleOrdersCommand, error) {
	var errList []error
	if createdBefore.IsZero() {
		errList = append(errList, errs.NewValueIsRequiredError("createdBefore"))
	}
	if batchSize <= 0 {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause(
			"batchSize", fmt.Errorf("%d is not greater than 0", batchSize),
		))
	}
	if err := errors.Join(errList...); err != nil {
		return ExpireStaleOrdersCommand{}, err
	}

	return ExpireStaleOrdersCommand{
		createdBefore: createdBefore,
		batchSize:     batchSize,
		guard:         guard.NewConstructorGuard(),
	}, nil
}

func (c ExpireStaleOrdersCommand) Validate() error {
	return c.guard.Validate(ErrExpireStaleOrdersCommandIsNotConstructed)
}

func (c ExpireStaleOrdersCommand) CreatedBefore() time.Time { return c.createdBefore }
func (c ExpireStaleOrdersCommand) BatchSize() int           { return c.batchSize }

package ports

import (
	"context"

	"ordering/internal/core/domain/model/kernel"
)

// CartRepository is the part of the cart subsystem the ordering core drives.
type CartRepository interface {
	// Freeze moves the cart to the Frozen state so checkout can no longer
	// mutate it. Returns errs.ObjectNotFoundError when the cart does not exist
	// and errs.ValueIsInvalidError when it is already frozen.
	Freeze(ctx context.Context, id kernel.ID) error
}

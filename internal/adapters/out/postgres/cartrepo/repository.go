package cartrepo

import (
	"context"
	"errors"
	"fmt"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/errs"

	"gorm.io/gorm"
)

type GormCartRepository struct {
	db *gorm.DB
}

func NewGormCartRepository(db *gorm.DB) *GormCartRepository {
	return &GormCartRepository{db: db}
}

// Freeze moves an open cart to Frozen. A cart that is already frozen has been
// checked out and is rejected with a ValueIsInvalidError.
func (r *GormCartRepository) Freeze(ctx context.Context, id kernel.ID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	db := r.db.WithContext(ctx)

	result := db.Model(&CartDTO{}).
		Where("id = ? AND status <> ?", id.Int64(), CartStatusFrozen).
		Update("status", CartStatusFrozen)
	if result.Error != nil {
		return errs.NewPersistenceErrorWithCause("freeze cart", result.Error)
	}
	if result.RowsAffected > 0 {
		return nil
	}

	var cart CartDTO
	err := db.Select("id", "status").Take(&cart, "id = ?", id.Int64()).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errs.NewObjectNotFoundError("cart", id.String())
	}
	if err != nil {
		return errs.NewPersistenceErrorWithCause("load cart", err)
	}

	return errs.NewValueIsInvalidErrorWithCause(
		"cartId", fmt.Errorf("cart %s is already checked out", id),
	)
}

package orderrepo

import (
	"context"
	"errors"
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOrderRepository implements ports.OrderRepository on top of GORM.
// The db handle it receives is either the pool or the transaction of the
// owning unit of work.
type GormOrderRepository struct {
	db *gorm.DB
}

func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// Add inserts the header and lines in one Create call; GORM writes the Lines
// association after the header so every line receives the new order id.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) (*order.Order, error) {
	if err := aggregate.Validate(); err != nil {
		return nil, err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return nil, errs.NewPersistenceErrorWithCause("insert order", err)
	}

	return toDomain(dto)
}

func (r *GormOrderRepository) Get(ctx context.Context, id kernel.ID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	return r.load(r.db.WithContext(ctx), id)
}

func (r *GormOrderRepository) GetForUpdate(ctx context.Context, id kernel.ID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	db := r.db.WithContext(ctx)

	var locked OrderDTO
	err := db.Clauses(clause.Locking{Strength: "UPDATE"}).
		Select("id").
		Take(&locked, "id = ?", id.Int64()).Error
	if err != nil {
		return nil, notFoundOr(id, "lock order", err)
	}

	return r.load(db, id)
}

func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	db := r.db.WithContext(ctx)

	result := db.Model(&OrderDTO{}).Where("id = ?", dto.ID).Updates(map[string]any{
		"status":              dto.Status,
		"payment_status":      dto.PaymentStatus,
		"cancelled_by":        dto.CancelledBy,
		"cancelled_at":        dto.CancelledAt,
		"cancellation_reason": dto.CancellationReason,
	})
	if result.Error != nil {
		return errs.NewPersistenceErrorWithCause("update order", result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("order", aggregate.ID().String())
	}

	for _, line := range dto.Lines {
		err := db.Model(&OrderLineDTO{}).
			Where("id = ? AND order_id = ?", line.ID, dto.ID).
			Update("status", line.Status).Error
		if err != nil {
			return errs.NewPersistenceErrorWithCause("update order line", err)
		}
	}

	return nil
}

func (r *GormOrderRepository) AddStatusChange(ctx context.Context, change order.StatusChange) error {
	if err := change.OrderID.Validate(); err != nil {
		return err
	}

	dto := OrderStatusChangeDTO{
		OrderID:        change.OrderID.Int64(),
		PreviousStatus: change.Previous.String(),
		NewStatus:      change.New.String(),
		CreatedAt:      change.ChangedAt,
	}
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return errs.NewPersistenceErrorWithCause("insert status change", err)
	}
	return nil
}

func (r *GormOrderRepository) AddPaymentEvent(
	ctx context.Context, event *order.PaymentEvent,
) (*order.PaymentEvent, error) {
	if err := event.Validate(); err != nil {
		return nil, err
	}

	dto := PaymentEventDTO{
		OrderID:   event.OrderID().Int64(),
		Type:      event.Type().String(),
		Amount:    event.Amount(),
		CreatedAt: event.OccurredAt(),
	}
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return nil, errs.NewPersistenceErrorWithCause("insert payment event", err)
	}

	return paymentEventToDomain(dto)
}

func (r *GormOrderRepository) AddTransaction(
	ctx context.Context, transaction *order.Transaction,
) (*order.Transaction, error) {
	if err := transaction.Validate(); err != nil {
		return nil, err
	}

	dto := TransactionDTO{
		OrderID:   transaction.OrderID().Int64(),
		Amount:    transaction.Amount(),
		Method:    transaction.Method(),
		Reference: transaction.Reference().String(),
		CreatedAt: transaction.CreatedAt(),
	}
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return nil, errs.NewPersistenceErrorWithCause("insert transaction", err)
	}

	return transactionToDomain(dto)
}

func (r *GormOrderRepository) ListStalePending(
	ctx context.Context, createdBefore time.Time, limit int,
) ([]*order.Order, error) {
	var dtos []OrderDTO
	err := r.db.WithContext(ctx).
		Preload("Lines", orderedLines).
		Where("status = ? AND payment_status = ? AND created_at < ?",
			order.Pending.String(), order.PaymentPending.String(), createdBefore).
		Order("created_at, id").
		Limit(limit).
		Find(&dtos).Error
	if err != nil {
		return nil, errs.NewPersistenceErrorWithCause("list stale orders", err)
	}

	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}

	return orders, nil
}

func (r *GormOrderRepository) load(db *gorm.DB, id kernel.ID) (*order.Order, error) {
	var dto OrderDTO
	err := db.Preload("Lines", orderedLines).Take(&dto, "id = ?", id.Int64()).Error
	if err != nil {
		return nil, notFoundOr(id, "load order", err)
	}
	return toDomain(dto)
}

func orderedLines(db *gorm.DB) *gorm.DB {
	return db.Order("order_lines.id")
}

func notFoundOr(id kernel.ID, operation string, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errs.NewObjectNotFoundError("order", id.String())
	}
	return errs.NewPersistenceErrorWithCause(operation, err)
}

package queries

import (
	"context"
	"errors"

	"ordering/internal/core/domain/services"
	"ordering/internal/pkg/errs"

	"gorm.io/gorm"
)

type GetOrderQueryHandler struct {
	db *gorm.DB
}

func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// Handle returns errs.ObjectNotFoundError when the order does not exist and
// errs.AccessDeniedError when it exists but belongs to another user.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (*OrderView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	var row orderRow
	err := h.db.WithContext(ctx).Take(&row, "orders.id = ?", query.OrderID().Int64()).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.NewObjectNotFoundError("order", query.OrderID().String())
	}
	if err != nil {
		return nil, errs.NewPersistenceErrorWithCause("get order", err)
	}

	if query.UserID() != "" && row.UserID != query.UserID() {
		return nil, errs.NewAccessDeniedError("order", query.OrderID().String())
	}

	views, err := loadViews(ctx, h.db, []orderRow{row})
	if err != nil {
		return nil, errs.NewPersistenceErrorWithCause("load order lines", err)
	}

	return &views[0], nil
}

type GetOrderByHashQueryHandler struct {
	hasher services.AccessHasher
	orders GetOrderQueryHandler
}

func NewGetOrderByHashQueryHandler(db *gorm.DB, hasher services.AccessHasher) GetOrderByHashQueryHandler {
	return GetOrderByHashQueryHandler{
		hasher: hasher,
		orders: NewGetOrderQueryHandler(db),
	}
}

// Handle checks the token before touching the store and reports a mismatch
// as errs.AccessDeniedError.
func (h GetOrderByHashQueryHandler) Handle(ctx context.Context, query GetOrderByHashQuery) (*OrderView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	if !h.hasher.Check(query.OrderID(), query.Token()) {
		return nil, errs.NewAccessDeniedError("order", query.OrderID().String())
	}

	byID, err := NewGetOrderQuery(query.OrderID(), "")
	if err != nil {
		return nil, err
	}

	return h.orders.Handle(ctx, byID)
}

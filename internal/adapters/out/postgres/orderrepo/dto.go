// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order aggregate, handling
// the conversion between domain entities and the five order relations.
package orderrepo

import (
	"errors"
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
)

// OrderDTO is the order header row. The has-many fields exist so that
// AutoMigrate creates the foreign keys of the child relations; only Lines is
// ever loaded or written through the association.
type OrderDTO struct {
	ID                 int64               `gorm:"primaryKey;autoIncrement"`
	UserID             string              `gorm:"type:text;not null;index"`
	CartID             int64               `gorm:"not null;index"`
	Status             string              `gorm:"type:varchar(16);not null;default:Pending;index"`
	PaymentStatus      string              `gorm:"type:varchar(16);not null;default:Pending;index"`
	Discount           decimal.NullDecimal `gorm:"type:numeric"`
	Tax                decimal.NullDecimal `gorm:"type:numeric"`
	CancelledBy        *string             `gorm:"type:text"`
	CancelledAt        *time.Time
	CancellationReason *string   `gorm:"type:text"`
	CreatedAt          time.Time `gorm:"not null;index"`

	Lines         []OrderLineDTO         `gorm:"foreignKey:OrderID;constraint:OnDelete:RESTRICT"`
	StatusChanges []OrderStatusChangeDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:RESTRICT"`
	Transactions  []TransactionDTO       `gorm:"foreignKey:OrderID;constraint:OnDelete:RESTRICT"`
	PaymentEvents []PaymentEventDTO      `gorm:"foreignKey:OrderID;constraint:OnDelete:RESTRICT"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

// OrderLineDTO is one purchased product quantity.
type OrderLineDTO struct {
	ID        int64           `gorm:"primaryKey;autoIncrement"`
	OrderID   int64           `gorm:"not null;index"`
	ProductID int64           `gorm:"not null"`
	Price     decimal.Decimal `gorm:"type:numeric;not null"`
	Discount  decimal.Decimal `gorm:"type:numeric;not null;default:0"`
	Quantity  int             `gorm:"not null;check:quantity > 0"`
	Status    string          `gorm:"type:varchar(16);not null;default:Active"`
}

func (OrderLineDTO) TableName() string {
	return "order_lines"
}

// OrderStatusChangeDTO is the append-only fulfillment audit trail.
type OrderStatusChangeDTO struct {
	ID             int64     `gorm:"primaryKey;autoIncrement"`
	OrderID        int64     `gorm:"not null;index"`
	PreviousStatus string    `gorm:"type:varchar(16);not null"`
	NewStatus      string    `gorm:"type:varchar(16);not null"`
	CreatedAt      time.Time `gorm:"not null"`
}

func (OrderStatusChangeDTO) TableName() string {
	return "order_status_changes"
}

// TransactionDTO is a financial transaction against an order.
type TransactionDTO struct {
	ID        int64           `gorm:"primaryKey;autoIncrement"`
	OrderID   int64           `gorm:"not null;index"`
	Amount    decimal.Decimal `gorm:"type:numeric;not null"`
	Method    string          `gorm:"type:text;not null"`
	Reference string          `gorm:"type:varchar(255);not null"`
	CreatedAt time.Time       `gorm:"not null"`
}

func (TransactionDTO) TableName() string {
	return "transactions"
}

// PaymentEventDTO is the append-only payment ledger.
type PaymentEventDTO struct {
	ID        int64           `gorm:"primaryKey;autoIncrement"`
	OrderID   int64           `gorm:"not null;index"`
	Type      string          `gorm:"type:varchar(16);not null"`
	Amount    decimal.Decimal `gorm:"type:numeric;not null"`
	CreatedAt time.Time       `gorm:"not null"`
}

func (PaymentEventDTO) TableName() string {
	return "payment_events"
}

// fromDomain converts an order aggregate to its header and line rows.
// Ids that are still zero are left for the database to assign.
func fromDomain(aggregate *order.Order) OrderDTO {
	lines := make([]OrderLineDTO, 0, len(aggregate.Lines()))
	for _, l := range aggregate.Lines() {
		lines = append(lines, lineFromDomain(aggregate.ID(), l))
	}

	dto := OrderDTO{
		ID:            aggregate.ID().Int64(),
		UserID:        aggregate.UserID(),
		CartID:        aggregate.CartID().Int64(),
		Status:        aggregate.Status().String(),
		PaymentStatus: aggregate.PaymentStatus().String(),
		Discount:      decimal.NewNullDecimal(aggregate.Discount()),
		Tax:           decimal.NewNullDecimal(aggregate.Tax()),
		CreatedAt:     aggregate.CreatedAt(),
		Lines:         lines,
	}

	if c := aggregate.Cancellation(); c != nil {
		by, reason, at := c.By, c.Reason, c.At
		dto.CancelledBy = &by
		dto.CancellationReason = &reason
		dto.CancelledAt = &at
	}

	return dto
}

func lineFromDomain(orderID kernel.ID, l *order.Line) OrderLineDTO {
	return OrderLineDTO{
		ID:        l.ID().Int64(),
		OrderID:   orderID.Int64(),
		ProductID: l.ProductID().Int64(),
		Price:     l.Price(),
		Discount:  l.Discount(),
		Quantity:  l.Quantity(),
		Status:    l.Status().String(),
	}
}

// toDomain reconstructs the aggregate from its rows using RestoreOrder.
// Unset discount and tax columns restore as zero.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.NewID(dto.ID)
	if err != nil {
		return nil, err
	}
	cartID, err := kernel.NewID(dto.CartID)
	if err != nil {
		return nil, err
	}
	status, err := order.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}
	paymentStatus, err := order.ParsePaymentStatus(dto.PaymentStatus)
	if err != nil {
		return nil, err
	}

	lines := make([]*order.Line, 0, len(dto.Lines))
	for _, ldto := range dto.Lines {
		l, lineErr := lineToDomain(ldto)
		if lineErr != nil {
			return nil, lineErr
		}
		lines = append(lines, l)
	}

	return order.RestoreOrder(
		id,
		dto.UserID,
		cartID,
		status,
		paymentStatus,
		nullToZero(dto.Discount),
		nullToZero(dto.Tax),
		cancellationToDomain(dto),
		dto.CreatedAt,
		lines,
	)
}

func lineToDomain(dto OrderLineDTO) (*order.Line, error) {
	id, err := kernel.NewID(dto.ID)
	if err != nil {
		return nil, err
	}
	productID, err := kernel.NewID(dto.ProductID)
	if err != nil {
		return nil, err
	}
	status, err := order.ParseLineStatus(dto.Status)
	if err != nil {
		return nil, err
	}
	return order.RestoreLine(id, productID, dto.Price, dto.Discount, dto.Quantity, status)
}

func cancellationToDomain(dto OrderDTO) *order.Cancellation {
	if dto.CancelledBy == nil {
		return nil
	}
	c := &order.Cancellation{By: *dto.CancelledBy}
	if dto.CancelledAt != nil {
		c.At = *dto.CancelledAt
	}
	if dto.CancellationReason != nil {
		c.Reason = *dto.CancellationReason
	}
	return c
}

func paymentEventToDomain(dto PaymentEventDTO) (*order.PaymentEvent, error) {
	id, err := kernel.NewID(dto.ID)
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.NewID(dto.OrderID)
	if err != nil {
		return nil, err
	}
	eventType, err := order.ParsePaymentEventType(dto.Type)
	if err != nil {
		return nil, err
	}
	return order.RestorePaymentEvent(id, orderID, eventType, dto.Amount, dto.CreatedAt)
}

func transactionToDomain(dto TransactionDTO) (*order.Transaction, error) {
	id, err := kernel.NewID(dto.ID)
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.NewID(dto.OrderID)
	if err != nil {
		return nil, err
	}
	ref, err := kernel.ReferenceFromString(dto.Reference)
	if err != nil {
		return nil, err
	}
	if dto.Amount.IsZero() {
		return nil, errors.New("transaction amount is zero")
	}
	return order.RestoreTransaction(id, orderID, dto.Amount, dto.Method, ref, dto.CreatedAt)
}

func nullToZero(d decimal.NullDecimal) decimal.Decimal {
	if !d.Valid {
		return decimal.Zero
	}
	return d.Decimal
}

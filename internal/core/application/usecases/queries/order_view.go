// Package queries contains the read side of the ordering core. Handlers read
// straight from the database into view structs instead of loading aggregates.
package queries

import (
	"context"
	"errors"
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/domain/services"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OrderView is an order with its lines and computed total.
type OrderView struct {
	ID                 int64
	UserID             string
	CartID             int64
	Status             order.Status
	PaymentStatus      order.PaymentStatus
	Discount           decimal.Decimal
	Tax                decimal.Decimal
	Total              decimal.Decimal
	CancelledBy        *string
	CancelledAt        *time.Time
	CancellationReason *string
	CreatedAt          time.Time
	Lines              []LineView
}

// LineView is one order line. Cancelled lines are listed but not totalled.
type LineView struct {
	ID        int64
	ProductID int64
	Price     decimal.Decimal
	Discount  decimal.Decimal
	Quantity  int
	Status    order.LineStatus
}

type orderRow struct {
	ID                 int64
	UserID             string
	CartID             int64
	Status             string
	PaymentStatus      string
	Discount           decimal.NullDecimal
	Tax                decimal.NullDecimal
	CancelledBy        *string
	CancelledAt        *time.Time
	CancellationReason *string
	CreatedAt          time.Time
}

func (orderRow) TableName() string {
	return "orders"
}

type lineRow struct {
	ID        int64
	OrderID   int64
	ProductID int64
	Price     decimal.Decimal
	Discount  decimal.Decimal
	Quantity  int
	Status    string
}

func (lineRow) TableName() string {
	return "order_lines"
}

// loadViews attaches lines to the given order rows with one extra query and
// computes each total over the active lines.
func loadViews(ctx context.Context, db *gorm.DB, rows []orderRow) ([]OrderView, error) {
	views := make([]OrderView, 0, len(rows))
	if len(rows) == 0 {
		return views, nil
	}

	ids := make([]int64, 0, len(rows))
	for _, r := range rows {
		ids = append(ids, r.ID)
	}

	var lines []lineRow
	err := db.WithContext(ctx).
		Where("order_id IN ?", ids).
		Order("order_id, id").
		Find(&lines).Error
	if err != nil {
		return nil, err
	}

	byOrder := make(map[int64][]lineRow, len(rows))
	for _, l := range lines {
		byOrder[l.OrderID] = append(byOrder[l.OrderID], l)
	}

	calc := services.NewTotalCalculator()
	for _, r := range rows {
		view, viewErr := toView(calc, r, byOrder[r.ID])
		if viewErr != nil {
			return nil, viewErr
		}
		views = append(views, view)
	}

	return views, nil
}

func toView(calc services.TotalCalculator, r orderRow, lines []lineRow) (OrderView, error) {
	status, err := order.ParseStatus(r.Status)
	if err != nil {
		return OrderView{}, err
	}
	paymentStatus, err := order.ParsePaymentStatus(r.PaymentStatus)
	if err != nil {
		return OrderView{}, err
	}

	view := OrderView{
		ID:                 r.ID,
		UserID:             r.UserID,
		CartID:             r.CartID,
		Status:             status,
		PaymentStatus:      paymentStatus,
		Discount:           zeroIfNull(r.Discount),
		Tax:                zeroIfNull(r.Tax),
		CancelledBy:        r.CancelledBy,
		CancelledAt:        r.CancelledAt,
		CancellationReason: r.CancellationReason,
		CreatedAt:          r.CreatedAt,
		Lines:              make([]LineView, 0, len(lines)),
	}

	domainLines := make([]*order.Line, 0, len(lines))
	for _, l := range lines {
		lineStatus, parseErr := order.ParseLineStatus(l.Status)
		if parseErr != nil {
			return OrderView{}, parseErr
		}
		view.Lines = append(view.Lines, LineView{
			ID:        l.ID,
			ProductID: l.ProductID,
			Price:     l.Price,
			Discount:  l.Discount,
			Quantity:  l.Quantity,
			Status:    lineStatus,
		})

		lineID, idErr := kernel.NewID(l.ID)
		productID, productErr := kernel.NewID(l.ProductID)
		if idErr != nil || productErr != nil {
			return OrderView{}, errors.Join(idErr, productErr)
		}
		domainLine, restoreErr := order.RestoreLine(lineID, productID, l.Price, l.Discount, l.Quantity, lineStatus)
		if restoreErr != nil {
			return OrderView{}, restoreErr
		}
		domainLines = append(domainLines, domainLine)
	}

	view.Total = calc.Total(services.Adjustments{Discount: r.Discount, Tax: r.Tax}, domainLines)

	return view, nil
}

func zeroIfNull(d decimal.NullDecimal) decimal.Decimal {
	if !d.Valid {
		return decimal.Zero
	}
	return d.Decimal
}

package order

import (
	"errors"
	"fmt"
	"strings"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// LineStatus is the state of a single order line.
type LineStatus int

const (
	UnknownLineStatus LineStatus = iota
	LineActive
	LineCancelled
)

func ParseLineStatus(s string) (LineStatus, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "active":
		return LineActive, nil
	case "cancelled":
		return LineCancelled, nil
	default:
		return UnknownLineStatus, errs.NewValueIsInvalidErrorWithCause(
			"line status", fmt.Errorf("%q is not a valid line status", s),
		)
	}
}

func (s LineStatus) String() string {
	switch s {
	case LineActive:
		return "Active"
	case LineCancelled:
		return "Cancelled"
	default:
		return "Unknown"
	}
}

var ErrLineIsNotConstructed = errors.New("Line must be created via NewLine constructor")

// Line is a purchased product quantity. Price is what the customer pays per
// unit; Discount is how much below the catalog price that is.
type Line struct {
	id        kernel.ID
	productID kernel.ID
	price     decimal.Decimal
	discount  decimal.Decimal
	quantity  int
	status    LineStatus

	isConstructed bool
}

// NewLine builds a line from a cart snapshot. The per-unit discount is
// originalPrice - price; originalPrice may not be below price.
func NewLine(productID kernel.ID, price, originalPrice decimal.Decimal, quantity int) (*Line, error) {
	var errList []error
	if err := productID.Validate(); err != nil {
		errList = append(errList, err)
	}
	if price.IsNegative() {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause(
			"price", fmt.Errorf("%s is less than 0", price),
		))
	}
	if originalPrice.LessThan(price) {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause(
			"originalPrice", fmt.Errorf("%s is less than price %s", originalPrice, price),
		))
	}
	if quantity <= 0 {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause(
			"quantity", fmt.Errorf("%d is not greater than 0", quantity),
		))
	}
	if err := errors.Join(errList...); err != nil {
		return nil, err
	}

	return &Line{
		productID:     productID,
		price:         price,
		discount:      originalPrice.Sub(price),
		quantity:      quantity,
		status:        LineActive,
		isConstructed: true,
	}, nil
}

// RestoreLine rebuilds a persisted line without re-deriving the discount.
func RestoreLine(
	id, productID kernel.ID, price, discount decimal.Decimal, quantity int, status LineStatus,
) (*Line, error) {
	if status != LineActive && status != LineCancelled {
		return nil, errs.NewValueIsInvalidErrorWithCause("line status", fmt.Errorf("%d is not a valid line status", status))
	}
	return &Line{
		id:            id,
		productID:     productID,
		price:         price,
		discount:      discount,
		quantity:      quantity,
		status:        status,
		isConstructed: true,
	}, nil
}

func (l *Line) Validate() error {
	if l == nil || !l.isConstructed {
		return ErrLineIsNotConstructed
	}
	return nil
}

func (l *Line) ID() kernel.ID             { return l.id }
func (l *Line) ProductID() kernel.ID      { return l.productID }
func (l *Line) Price() decimal.Decimal    { return l.price }
func (l *Line) Discount() decimal.Decimal { return l.discount }
func (l *Line) Quantity() int             { return l.quantity }
func (l *Line) Status() LineStatus        { return l.status }

func (l *Line) IsCancelled() bool {
	return l.status == LineCancelled
}

// Amount is (price - discount) * quantity, regardless of status.
func (l *Line) Amount() decimal.Decimal {
	return l.price.Sub(l.discount).Mul(decimal.NewFromInt(int64(l.quantity)))
}

// Cancel marks the line cancelled. It reports false if it already was.
func (l *Line) Cancel() bool {
	if l.status == LineCancelled {
		return false
	}
	l.status = LineCancelled
	return true
}

package services

import (
	"ordering/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
)

// Adjustments are the order-level amounts applied after the line subtotal.
// Invalid (unset) values count as zero.
type Adjustments struct {
	Discount decimal.NullDecimal
	Tax      decimal.NullDecimal
}

// AdjustmentsOf reads the adjustments of an order aggregate.
func AdjustmentsOf(o *order.Order) Adjustments {
	return Adjustments{
		Discount: decimal.NewNullDecimal(o.Discount()),
		Tax:      decimal.NewNullDecimal(o.Tax()),
	}
}

// TotalCalculator computes
//
//	subtotal = Σ (price - discount) * quantity   over non-cancelled lines
//	total    = subtotal - order discount + order tax
//
// using exact decimal arithmetic.
type TotalCalculator struct{}

func NewTotalCalculator() TotalCalculator {
	return TotalCalculator{}
}

func (TotalCalculator) Subtotal(lines []*order.Line) decimal.Decimal {
	subtotal := decimal.Zero
	for _, l := range lines {
		if l == nil || l.IsCancelled() {
			continue
		}
		subtotal = subtotal.Add(l.Amount())
	}
	return subtotal
}

func (c TotalCalculator) Total(adj Adjustments, lines []*order.Line) decimal.Decimal {
	total := c.Subtotal(lines)
	if adj.Discount.Valid {
		total = total.Sub(adj.Discount.Decimal)
	}
	if adj.Tax.Valid {
		total = total.Add(adj.Tax.Decimal)
	}
	return total
}

// OrderTotal is Total over the order's own adjustments and lines.
func (c TotalCalculator) OrderTotal(o *order.Order) decimal.Decimal {
	return c.Total(AdjustmentsOf(o), o.Lines())
}

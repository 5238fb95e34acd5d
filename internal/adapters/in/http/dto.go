package http

import (
	"time"

	"ordering/internal/core/application/orderservice"
	"ordering/internal/core/application/usecases/queries"
	"ordering/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
)

// Error is the body of every non-2xx response.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type NewOrderLine struct {
	CartID        int64           `json:"cartId"`
	ProductID     int64           `json:"productId"`
	Price         decimal.Decimal `json:"price"`
	OriginalPrice decimal.Decimal `json:"originalPrice"`
	Quantity      int             `json:"quantity"`
}

type NewOrder struct {
	UserID   string              `json:"userId"`
	CartID   int64               `json:"cartId"`
	Discount decimal.NullDecimal `json:"discount"`
	Tax      decimal.NullDecimal `json:"tax"`
	Lines    []NewOrderLine      `json:"lines"`
}

type CreatedOrder struct {
	ID    int64           `json:"id"`
	Hash  string          `json:"hash"`
	Total decimal.Decimal `json:"total"`
}

type StatusChange struct {
	Status string `json:"status"`
}

type Cancellation struct {
	CancelledBy string `json:"cancelledBy"`
	Reason      string `json:"reason"`
}

type NewPaymentEvent struct {
	Type   string          `json:"type"`
	Amount decimal.Decimal `json:"amount"`
}

type NewTransaction struct {
	Amount    decimal.Decimal `json:"amount"`
	Method    string          `json:"method"`
	Reference string          `json:"reference"`
}

type Changed struct {
	Changed bool `json:"changed"`
}

type Line struct {
	ID        int64           `json:"id"`
	ProductID int64           `json:"productId"`
	Price     decimal.Decimal `json:"price"`
	Discount  decimal.Decimal `json:"discount"`
	Quantity  int             `json:"quantity"`
	Status    string          `json:"status"`
}

type Order struct {
	ID                 int64           `json:"id"`
	UserID             string          `json:"userId"`
	CartID             int64           `json:"cartId"`
	Status             string          `json:"status"`
	PaymentStatus      string          `json:"paymentStatus"`
	Discount           decimal.Decimal `json:"discount"`
	Tax                decimal.Decimal `json:"tax"`
	Total              decimal.Decimal `json:"total"`
	CancelledBy        *string         `json:"cancelledBy"`
	CancelledAt        *time.Time      `json:"cancelledAt"`
	CancellationReason *string         `json:"cancellationReason"`
	CreatedAt          time.Time       `json:"createdAt"`
	Lines              []Line          `json:"lines"`
}

type PageInfo struct {
	Page  int   `json:"page"`
	Size  int   `json:"size"`
	Total int64 `json:"total"`
	Pages int64 `json:"pages"`
}

type OrderList struct {
	Results    []Order   `json:"results"`
	Pagination *PageInfo `json:"pagination,omitempty"`
}

type PaymentEvent struct {
	ID        int64           `json:"id"`
	Type      string          `json:"type"`
	Amount    decimal.Decimal `json:"amount"`
	CreatedAt time.Time       `json:"createdAt"`
}

type Transaction struct {
	ID        int64           `json:"id"`
	Amount    decimal.Decimal `json:"amount"`
	Method    string          `json:"method"`
	Reference string          `json:"reference"`
	CreatedAt time.Time       `json:"createdAt"`
}

func createdOrderResponse(created orderservice.Created, total decimal.Decimal) CreatedOrder {
	return CreatedOrder{
		ID:    created.Order.ID().Int64(),
		Hash:  created.Hash,
		Total: total,
	}
}

func orderResponse(v queries.OrderView) Order {
	lines := make([]Line, 0, len(v.Lines))
	for _, l := range v.Lines {
		lines = append(lines, Line{
			ID:        l.ID,
			ProductID: l.ProductID,
			Price:     l.Price,
			Discount:  l.Discount,
			Quantity:  l.Quantity,
			Status:    l.Status.String(),
		})
	}

	return Order{
		ID:                 v.ID,
		UserID:             v.UserID,
		CartID:             v.CartID,
		Status:             v.Status.String(),
		PaymentStatus:      v.PaymentStatus.String(),
		Discount:           v.Discount,
		Tax:                v.Tax,
		Total:              v.Total,
		CancelledBy:        v.CancelledBy,
		CancelledAt:        v.CancelledAt,
		CancellationReason: v.CancellationReason,
		CreatedAt:          v.CreatedAt,
		Lines:              lines,
	}
}

func orderListResponse(resp queries.ListOrdersQueryResponse) OrderList {
	list := OrderList{Results: make([]Order, 0, len(resp.Results))}
	for _, v := range resp.Results {
		list.Results = append(list.Results, orderResponse(v))
	}
	if p := resp.Pagination; p != nil {
		list.Pagination = &PageInfo{Page: p.Page, Size: p.Size, Total: p.Total, Pages: p.Pages}
	}
	return list
}

func paymentEventResponse(e *order.PaymentEvent) PaymentEvent {
	return PaymentEvent{
		ID:        e.ID().Int64(),
		Type:      e.Type().String(),
		Amount:    e.Amount(),
		CreatedAt: e.OccurredAt(),
	}
}

func transactionResponse(t *order.Transaction) Transaction {
	return Transaction{
		ID:        t.ID().Int64(),
		Amount:    t.Amount(),
		Method:    t.Method(),
		Reference: t.Reference().String(),
		CreatedAt: t.CreatedAt(),
	}
}

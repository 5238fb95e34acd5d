// Package orderservice is the entry point of the ordering core. It turns
// plain arguments into commands and queries, dispatches them to their
// handlers and shapes the results for callers such as the HTTP adapter and
// the background jobs.
package orderservice

import (
	"context"
	"errors"
	"time"

	"ordering/internal/core/application/usecases/commands"
	"ordering/internal/core/application/usecases/queries"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/domain/services"
	"ordering/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Created is the result of a checkout: the stored order and the token that
// grants read access to it without a session.
type Created struct {
	Order *order.Order
	Hash  string
}

type Service struct {
	orders     commands.OrderUoWFactory
	hasher     services.AccessHasher
	calculator services.TotalCalculator

	createOrder         commands.CreateOrderCommandHandler
	changeStatus        commands.ChangeOrderStatusCommandHandler
	changePaymentStatus commands.ChangePaymentStatusCommandHandler
	createPaymentEvent  commands.CreatePaymentEventCommandHandler
	createTransaction   commands.CreateTransactionCommandHandler
	cancelOrder         commands.CancelOrderCommandHandler
	cancelLine          commands.CancelOrderLineCommandHandler
	expireStale         commands.ExpireStaleOrdersCommandHandler

	getOrder       queries.GetOrderQueryHandler
	getOrderByHash queries.GetOrderByHashQueryHandler
	listOrders     queries.ListOrdersQueryHandler
}

func New(
	orders commands.OrderUoWFactory,
	checkout commands.CheckoutUoWFactory,
	db *gorm.DB,
	hasher services.AccessHasher,
) *Service {
	return &Service{
		orders:     orders,
		hasher:     hasher,
		calculator: services.NewTotalCalculator(),

		createOrder:         commands.NewCreateOrderCommandHandler(checkout),
		changeStatus:        commands.NewChangeOrderStatusCommandHandler(orders),
		changePaymentStatus: commands.NewChangePaymentStatusCommandHandler(orders),
		createPaymentEvent:  commands.NewCreatePaymentEventCommandHandler(orders),
		createTransaction:   commands.NewCreateTransactionCommandHandler(orders),
		cancelOrder:         commands.NewCancelOrderCommandHandler(orders),
		cancelLine:          commands.NewCancelOrderLineCommandHandler(orders),
		expireStale:         commands.NewExpireStaleOrdersCommandHandler(orders),

		getOrder:       queries.NewGetOrderQueryHandler(db),
		getOrderByHash: queries.NewGetOrderByHashQueryHandler(db, hasher),
		listOrders:     queries.NewListOrdersQueryHandler(db),
	}
}

// Create freezes the cart and stores the order with its lines atomically.
func (s *Service) Create(ctx context.Context, cmd commands.CreateOrderCommand) (Created, error) {
	created, err := s.createOrder.Handle(ctx, cmd)
	if err != nil {
		return Created{}, err
	}
	return Created{Order: created, Hash: s.hasher.Generate(created.ID())}, nil
}

// CalculateTotal totals the given lines under the order's discount and tax.
// A nil lines slice means the order's stored lines; an empty one totals
// nothing.
func (s *Service) CalculateTotal(ctx context.Context, o *order.Order, lines []*order.Line) (decimal.Decimal, error) {
	if o == nil {
		return decimal.Zero, errs.NewValueIsRequiredError("order")
	}

	if lines == nil {
		stored, err := s.orders.Create().OrderRepository().Get(ctx, o.ID())
		if err != nil {
			return decimal.Zero, err
		}
		lines = stored.Lines()
	}

	return s.calculator.Total(services.AdjustmentsOf(o), lines), nil
}

// ChangeStatus reports false when the order is missing or already in status.
func (s *Service) ChangeStatus(ctx context.Context, orderID kernel.ID, status order.Status) (bool, error) {
	cmd, err := commands.NewChangeOrderStatusCommand(orderID, status)
	if err != nil {
		return false, err
	}
	return s.changeStatus.Handle(ctx, cmd)
}

func (s *Service) ChangePaymentStatus(
	ctx context.Context, orderID kernel.ID, status order.PaymentStatus,
) (bool, error) {
	cmd, err := commands.NewChangePaymentStatusCommand(orderID, status)
	if err != nil {
		return false, err
	}
	return s.changePaymentStatus.Handle(ctx, cmd)
}

func (s *Service) CreatePaymentEvent(
	ctx context.Context, orderID kernel.ID, eventType order.PaymentEventType, amount decimal.Decimal,
) (*order.PaymentEvent, error) {
	cmd, err := commands.NewCreatePaymentEventCommand(orderID, eventType, amount)
	if err != nil {
		return nil, err
	}
	return s.createPaymentEvent.Handle(ctx, cmd)
}

// CreateTransaction generates a reference when none is given.
func (s *Service) CreateTransaction(
	ctx context.Context, orderID kernel.ID, amount decimal.Decimal, method, reference string,
) (*order.Transaction, error) {
	cmd, err := commands.NewCreateTransactionCommand(orderID, amount, method, reference)
	if err != nil {
		return nil, err
	}
	return s.createTransaction.Handle(ctx, cmd)
}

func (s *Service) Cancel(ctx context.Context, orderID kernel.ID, cancelledBy, reason string) error {
	cmd, err := commands.NewCancelOrderCommand(orderID, cancelledBy, reason)
	if err != nil {
		return err
	}
	return s.cancelOrder.Handle(ctx, cmd)
}

func (s *Service) CancelLine(ctx context.Context, orderID, lineID kernel.ID) (bool, error) {
	cmd, err := commands.NewCancelOrderLineCommand(orderID, lineID)
	if err != nil {
		return false, err
	}
	return s.cancelLine.Handle(ctx, cmd)
}

// ExpireStale cancels up to batchSize orders that are still unpaid and were
// created before the cutoff.
func (s *Service) ExpireStale(ctx context.Context, createdBefore time.Time, batchSize int) (int, error) {
	cmd, err := commands.NewExpireStaleOrdersCommand(createdBefore, batchSize)
	if err != nil {
		return 0, err
	}
	return s.expireStale.Handle(ctx, cmd)
}

// Get returns nil without error when the order does not exist or, with a
// non-empty userID, belongs to someone else.
func (s *Service) Get(ctx context.Context, orderID kernel.ID, userID string) (*queries.OrderView, error) {
	query, err := queries.NewGetOrderQuery(orderID, userID)
	if err != nil {
		return nil, err
	}
	return hideMissing(s.getOrder.Handle(ctx, query))
}

// GetByHash returns nil without error on a token mismatch, exactly as for a
// missing order.
func (s *Service) GetByHash(ctx context.Context, orderID kernel.ID, token string) (*queries.OrderView, error) {
	query, err := queries.NewGetOrderByHashQuery(orderID, token)
	if err != nil {
		return nil, err
	}
	return hideMissing(s.getOrderByHash.Handle(ctx, query))
}

func (s *Service) List(
	ctx context.Context, filter queries.OrderFilter, pagination *queries.Pagination,
) (queries.ListOrdersQueryResponse, error) {
	query, err := queries.NewListOrdersQuery(filter, pagination)
	if err != nil {
		return queries.ListOrdersQueryResponse{}, err
	}
	return s.listOrders.Handle(ctx, query)
}

func (s *Service) GenerateHash(orderID kernel.ID) string {
	return s.hasher.Generate(orderID)
}

func (s *Service) CheckHash(orderID kernel.ID, token string) bool {
	return s.hasher.Check(orderID, token)
}

func hideMissing(view *queries.OrderView, err error) (*queries.OrderView, error) {
	if errors.Is(err, errs.ErrObjectNotFound) || errors.Is(err, errs.ErrAccessDenied) {
		return nil, nil
	}
	return view, err
}

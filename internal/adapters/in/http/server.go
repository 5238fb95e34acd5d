package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"ordering/internal/core/application/orderservice"
	"ordering/internal/core/application/usecases/commands"
	"ordering/internal/core/application/usecases/queries"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// OrderService is the part of orderservice.Service the HTTP adapter calls.
type OrderService interface {
	Create(ctx context.Context, cmd commands.CreateOrderCommand) (orderservice.Created, error)
	CalculateTotal(ctx context.Context, o *order.Order, lines []*order.Line) (decimal.Decimal, error)
	ChangeStatus(ctx context.Context, orderID kernel.ID, status order.Status) (bool, error)
	CreatePaymentEvent(
		ctx context.Context, orderID kernel.ID, eventType order.PaymentEventType, amount decimal.Decimal,
	) (*order.PaymentEvent, error)
	CreateTransaction(
		ctx context.Context, orderID kernel.ID, amount decimal.Decimal, method, reference string,
	) (*order.Transaction, error)
	Cancel(ctx context.Context, orderID kernel.ID, cancelledBy, reason string) error
	CancelLine(ctx context.Context, orderID, lineID kernel.ID) (bool, error)
	Get(ctx context.Context, orderID kernel.ID, userID string) (*queries.OrderView, error)
	GetByHash(ctx context.Context, orderID kernel.ID, token string) (*queries.OrderView, error)
	List(
		ctx context.Context, filter queries.OrderFilter, pagination *queries.Pagination,
	) (queries.ListOrdersQueryResponse, error)
}

// Server translates HTTP requests into order service calls.
type Server struct {
	orders OrderService
	logger *slog.Logger
}

func NewServer(orders OrderService, logger *slog.Logger) *Server {
	return &Server{
		orders: orders,
		logger: logger.With("component", "http_server"),
	}
}

// Register mounts the order API on e.
func (s *Server) Register(e *echo.Echo) {
	e.GET("/health", s.Health)

	api := e.Group("/api/v1/orders")
	api.POST("", s.CreateOrder)
	api.GET("", s.ListOrders)
	api.GET("/:id", s.GetOrder)
	api.GET("/:id/guest", s.GetOrderByHash)
	api.PUT("/:id/status", s.ChangeOrderStatus)
	api.POST("/:id/cancel", s.CancelOrder)
	api.POST("/:id/lines/:lineId/cancel", s.CancelOrderLine)
	api.POST("/:id/payment-events", s.CreatePaymentEvent)
	api.POST("/:id/transactions", s.CreateTransaction)
}

// Health handles GET /health.
func (s *Server) Health(c echo.Context) error {
	return c.String(http.StatusOK, "Healthy")
}

// CreateOrder handles POST /api/v1/orders - checks out a cart.
func (s *Server) CreateOrder(c echo.Context) error {
	var body NewOrder
	if err := c.Bind(&body); err != nil {
		return badRequest(c, "Invalid request body")
	}

	cartID, err := kernel.NewID(body.CartID)
	if err != nil {
		return s.fail(c, err)
	}

	lines := make([]commands.CartLine, 0, len(body.Lines))
	for _, l := range body.Lines {
		lineCartID, cartErr := kernel.NewID(l.CartID)
		productID, productErr := kernel.NewID(l.ProductID)
		if joined := errors.Join(cartErr, productErr); joined != nil {
			return s.fail(c, joined)
		}
		lines = append(lines, commands.CartLine{
			CartID:        lineCartID,
			ProductID:     productID,
			Price:         l.Price,
			OriginalPrice: l.OriginalPrice,
			Quantity:      l.Quantity,
		})
	}

	cmd, err := commands.NewCreateOrderCommand(body.UserID, cartID, body.Discount, body.Tax, lines)
	if err != nil {
		return s.fail(c, err)
	}

	ctx := c.Request().Context()
	created, err := s.orders.Create(ctx, cmd)
	if err != nil {
		return s.fail(c, err)
	}

	total, err := s.orders.CalculateTotal(ctx, created.Order, created.Order.Lines())
	if err != nil {
		return s.fail(c, err)
	}

	return c.JSON(http.StatusCreated, createdOrderResponse(created, total))
}

// ListOrders handles GET /api/v1/orders.
func (s *Server) ListOrders(c echo.Context) error {
	params, err := bindListOrdersParams(c.QueryParams())
	if err != nil {
		return s.fail(c, err)
	}

	filter, pagination, err := params.Filter()
	if err != nil {
		return s.fail(c, err)
	}

	resp, err := s.orders.List(c.Request().Context(), filter, pagination)
	if err != nil {
		return s.fail(c, err)
	}

	return c.JSON(http.StatusOK, orderListResponse(resp))
}

// GetOrder handles GET /api/v1/orders/:id. A non-empty X-User-ID header
// hides orders of other users.
func (s *Server) GetOrder(c echo.Context) error {
	orderID, err := bindID("id", c.Param("id"))
	if err != nil {
		return s.fail(c, err)
	}

	view, err := s.orders.Get(c.Request().Context(), orderID, c.Request().Header.Get("X-User-ID"))
	if err != nil {
		return s.fail(c, err)
	}
	if view == nil {
		return notFound(c)
	}

	return c.JSON(http.StatusOK, orderResponse(*view))
}

// GetOrderByHash handles GET /api/v1/orders/:id/guest?hash=.
func (s *Server) GetOrderByHash(c echo.Context) error {
	orderID, err := bindID("id", c.Param("id"))
	if err != nil {
		return s.fail(c, err)
	}

	view, err := s.orders.GetByHash(c.Request().Context(), orderID, c.QueryParam("hash"))
	if err != nil {
		return s.fail(c, err)
	}
	if view == nil {
		return notFound(c)
	}

	return c.JSON(http.StatusOK, orderResponse(*view))
}

// ChangeOrderStatus handles PUT /api/v1/orders/:id/status.
func (s *Server) ChangeOrderStatus(c echo.Context) error {
	orderID, err := bindID("id", c.Param("id"))
	if err != nil {
		return s.fail(c, err)
	}

	var body StatusChange
	if err = c.Bind(&body); err != nil {
		return badRequest(c, "Invalid request body")
	}

	status, err := order.ParseStatus(body.Status)
	if err != nil {
		return s.fail(c, err)
	}

	changed, err := s.orders.ChangeStatus(c.Request().Context(), orderID, status)
	if err != nil {
		return s.fail(c, err)
	}

	return c.JSON(http.StatusOK, Changed{Changed: changed})
}

// CancelOrder handles POST /api/v1/orders/:id/cancel.
func (s *Server) CancelOrder(c echo.Context) error {
	orderID, err := bindID("id", c.Param("id"))
	if err != nil {
		return s.fail(c, err)
	}

	var body Cancellation
	if err = c.Bind(&body); err != nil {
		return badRequest(c, "Invalid request body")
	}

	if err = s.orders.Cancel(c.Request().Context(), orderID, body.CancelledBy, body.Reason); err != nil {
		return s.fail(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// CancelOrderLine handles POST /api/v1/orders/:id/lines/:lineId/cancel.
func (s *Server) CancelOrderLine(c echo.Context) error {
	orderID, orderErr := bindID("id", c.Param("id"))
	lineID, lineErr := bindID("lineId", c.Param("lineId"))
	if err := errors.Join(orderErr, lineErr); err != nil {
		return s.fail(c, err)
	}

	changed, err := s.orders.CancelLine(c.Request().Context(), orderID, lineID)
	if err != nil {
		return s.fail(c, err)
	}

	return c.JSON(http.StatusOK, Changed{Changed: changed})
}

// CreatePaymentEvent handles POST /api/v1/orders/:id/payment-events.
func (s *Server) CreatePaymentEvent(c echo.Context) error {
	orderID, err := bindID("id", c.Param("id"))
	if err != nil {
		return s.fail(c, err)
	}

	var body NewPaymentEvent
	if err = c.Bind(&body); err != nil {
		return badRequest(c, "Invalid request body")
	}

	eventType, err := order.ParsePaymentEventType(body.Type)
	if err != nil {
		return s.fail(c, err)
	}

	event, err := s.orders.CreatePaymentEvent(c.Request().Context(), orderID, eventType, body.Amount)
	if err != nil {
		return s.fail(c, err)
	}

	return c.JSON(http.StatusCreated, paymentEventResponse(event))
}

// CreateTransaction handles POST /api/v1/orders/:id/transactions.
func (s *Server) CreateTransaction(c echo.Context) error {
	orderID, err := bindID("id", c.Param("id"))
	if err != nil {
		return s.fail(c, err)
	}

	var body NewTransaction
	if err = c.Bind(&body); err != nil {
		return badRequest(c, "Invalid request body")
	}

	tx, err := s.orders.CreateTransaction(c.Request().Context(), orderID, body.Amount, body.Method, body.Reference)
	if err != nil {
		return s.fail(c, err)
	}

	return c.JSON(http.StatusCreated, transactionResponse(tx))
}

// fail maps core errors to status codes: validation 400, missing 404,
// anything else 500 with the cause logged and hidden from the client.
func (s *Server) fail(c echo.Context, err error) error {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound), errors.Is(err, errs.ErrAccessDenied):
		return notFound(c)
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return badRequest(c, err.Error())
	}

	s.logger.ErrorContext(c.Request().Context(), "Request failed",
		"method", c.Request().Method,
		"path", c.Path(),
		"error", err,
	)
	return c.JSON(http.StatusInternalServerError, Error{
		Code:    http.StatusInternalServerError,
		Message: "Internal server error",
	})
}

func badRequest(c echo.Context, message string) error {
	return c.JSON(http.StatusBadRequest, Error{Code: http.StatusBadRequest, Message: message})
}

func notFound(c echo.Context) error {
	return c.JSON(http.StatusNotFound, Error{Code: http.StatusNotFound, Message: "Order not found"})
}

package orderservice_test

import (
	"context"
	"testing"
	"time"

	postgres_adapter "ordering/internal/adapters/out/postgres"
	"ordering/internal/adapters/out/postgres/cartrepo"
	"ordering/internal/adapters/out/postgres/orderrepo"
	"ordering/internal/core/application/orderservice"
	"ordering/internal/core/application/usecases/commands"
	"ordering/internal/core/application/usecases/queries"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/domain/services"
	"ordering/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type orderUoWFactory struct {
	f *postgres_adapter.GormUnitOfWorkFactory
}

func (a orderUoWFactory) Create() commands.OrderUoW { return a.f.Create() }

type checkoutUoWFactory struct {
	f *postgres_adapter.GormUnitOfWorkFactory
}

func (a checkoutUoWFactory) Create() commands.CheckoutUoW { return a.f.Create() }

// ServiceIntegrationTestSuite drives the order service end to end against
// PostgreSQL.
type ServiceIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	service   *orderservice.Service
}

func (suite *ServiceIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(postgres_adapter.Migrate(db))

	uow := postgres_adapter.NewGormUnitOfWorkFactory(db)
	suite.service = orderservice.New(
		orderUoWFactory{f: uow},
		checkoutUoWFactory{f: uow},
		db,
		services.NewKeyedAccessHasher("test-secret"),
	)
}

func (suite *ServiceIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *ServiceIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec(
		"TRUNCATE TABLE payment_events, transactions, order_status_changes, order_lines, orders, carts RESTART IDENTITY",
	).Error)
}

func (suite *ServiceIntegrationTestSuite) TestCreate_GetAndCancelLine() {
	ctx := context.Background()
	cartID := suite.seedCart("user-1")

	created, err := suite.service.Create(ctx, suite.checkout("user-1", cartID))
	suite.Require().NoError(err)
	suite.Equal(suite.service.GenerateHash(created.Order.ID()), created.Hash)
	suite.Equal(cartrepo.CartStatusFrozen, suite.cartStatus(cartID))

	view, err := suite.service.GetByHash(ctx, created.Order.ID(), created.Hash)
	suite.Require().NoError(err)
	suite.Require().NotNil(view)
	suite.Require().Len(view.Lines, 2)
	suite.True(decimal.NewFromInt(195).Equal(view.Total), view.Total.String())

	lineID := kernel.MustNewID(view.Lines[1].ID)
	changed, err := suite.service.CancelLine(ctx, created.Order.ID(), lineID)
	suite.Require().NoError(err)
	suite.True(changed)

	view, err = suite.service.Get(ctx, created.Order.ID(), "user-1")
	suite.Require().NoError(err)
	suite.Require().NotNil(view)
	suite.True(decimal.NewFromInt(95).Equal(view.Total), view.Total.String())

	total, err := suite.service.CalculateTotal(ctx, created.Order, nil)
	suite.Require().NoError(err)
	suite.True(decimal.NewFromInt(95).Equal(total), total.String())

	total, err = suite.service.CalculateTotal(ctx, created.Order, []*order.Line{})
	suite.Require().NoError(err)
	suite.True(decimal.NewFromInt(-5).Equal(total), total.String())
}

func (suite *ServiceIntegrationTestSuite) TestCreate_UnknownCartLeavesNothingBehind() {
	ctx := context.Background()

	_, err := suite.service.Create(ctx, suite.checkout("user-1", kernel.MustNewID(404)))

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
	var count int64
	suite.Require().NoError(suite.db.Model(&orderrepo.OrderDTO{}).Count(&count).Error)
	suite.Zero(count)
	suite.Require().NoError(suite.db.Model(&orderrepo.OrderLineDTO{}).Count(&count).Error)
	suite.Zero(count)
}

func (suite *ServiceIntegrationTestSuite) TestCreate_SecondCheckoutOfSameCartIsRejected() {
	ctx := context.Background()
	cartID := suite.seedCart("user-1")
	_, err := suite.service.Create(ctx, suite.checkout("user-1", cartID))
	suite.Require().NoError(err)

	_, err = suite.service.Create(ctx, suite.checkout("user-1", cartID))

	suite.Require().ErrorIs(err, errs.ErrValueIsInvalid)
	var count int64
	suite.Require().NoError(suite.db.Model(&orderrepo.OrderDTO{}).Where("cart_id = ?", cartID.Int64()).Count(&count).Error)
	suite.Equal(int64(1), count)
}

func (suite *ServiceIntegrationTestSuite) TestGet_HidesMissingAndForeignOrders() {
	ctx := context.Background()
	created := suite.place("user-1")

	view, err := suite.service.Get(ctx, created.Order.ID(), "user-2")
	suite.Require().NoError(err)
	suite.Nil(view)

	view, err = suite.service.Get(ctx, kernel.MustNewID(999), "")
	suite.Require().NoError(err)
	suite.Nil(view)

	view, err = suite.service.GetByHash(ctx, created.Order.ID(), "not-the-token")
	suite.Require().NoError(err)
	suite.Nil(view)

	view, err = suite.service.GetByHash(ctx, created.Order.ID(), "")
	suite.Require().NoError(err)
	suite.Nil(view)
}

func (suite *ServiceIntegrationTestSuite) TestChangeStatus_AuditsOnlyRealChanges() {
	ctx := context.Background()
	created := suite.place("user-1")

	changed, err := suite.service.ChangeStatus(ctx, created.Order.ID(), order.Processing)
	suite.Require().NoError(err)
	suite.True(changed)

	changed, err = suite.service.ChangeStatus(ctx, created.Order.ID(), order.Processing)
	suite.Require().NoError(err)
	suite.False(changed)

	changed, err = suite.service.ChangeStatus(ctx, kernel.MustNewID(999), order.Processing)
	suite.Require().NoError(err)
	suite.False(changed)

	suite.Equal(int64(1), suite.auditRows(created.Order.ID()))
}

func (suite *ServiceIntegrationTestSuite) TestCancel() {
	ctx := context.Background()
	created := suite.place("user-1")

	suite.Require().NoError(suite.service.Cancel(ctx, created.Order.ID(), "admin", "  customer request "))
	suite.Require().NoError(suite.service.Cancel(ctx, created.Order.ID(), "admin", "again"))

	view, err := suite.service.Get(ctx, created.Order.ID(), "")
	suite.Require().NoError(err)
	suite.Equal(order.Cancelled, view.Status)
	suite.Require().NotNil(view.CancelledBy)
	suite.Equal("admin", *view.CancelledBy)
	suite.Require().NotNil(view.CancellationReason)
	suite.Equal("again", *view.CancellationReason)
	suite.NotNil(view.CancelledAt)
	suite.Equal(int64(1), suite.auditRows(created.Order.ID()))

	err = suite.service.Cancel(ctx, kernel.MustNewID(999), "admin", "")
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *ServiceIntegrationTestSuite) TestPaymentEvents_LastWriteWins() {
	ctx := context.Background()
	created := suite.place("user-1")

	_, err := suite.service.CreatePaymentEvent(ctx, created.Order.ID(), order.PaymentEventPaid, decimal.NewFromInt(195))
	suite.Require().NoError(err)
	suite.Equal(order.PaymentPaid, suite.paymentStatus(created.Order.ID()))

	_, err = suite.service.CreatePaymentEvent(ctx, created.Order.ID(), order.PaymentEventRefund, decimal.NewFromInt(195))
	suite.Require().NoError(err)
	suite.Equal(order.PaymentRefunded, suite.paymentStatus(created.Order.ID()))

	var events int64
	suite.Require().NoError(suite.db.Model(&orderrepo.PaymentEventDTO{}).Count(&events).Error)
	suite.Equal(int64(2), events)

	changed, err := suite.service.ChangePaymentStatus(ctx, created.Order.ID(), order.PaymentPaid)
	suite.Require().NoError(err)
	suite.True(changed)
	suite.Equal(order.PaymentPaid, suite.paymentStatus(created.Order.ID()))
}

func (suite *ServiceIntegrationTestSuite) TestCreateTransaction_GeneratesReference() {
	ctx := context.Background()
	created := suite.place("user-1")

	tx, err := suite.service.CreateTransaction(ctx, created.Order.ID(), decimal.NewFromInt(195), "card", "")
	suite.Require().NoError(err)
	suite.NotEmpty(tx.Reference().String())

	_, err = suite.service.CreateTransaction(ctx, kernel.MustNewID(999), decimal.NewFromInt(1), "card", "")
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *ServiceIntegrationTestSuite) TestExpireStale() {
	ctx := context.Background()
	stale := suite.place("user-1")
	paid := suite.place("user-2")
	_, err := suite.service.CreatePaymentEvent(ctx, paid.Order.ID(), order.PaymentEventPaid, decimal.NewFromInt(195))
	suite.Require().NoError(err)

	expired, err := suite.service.ExpireStale(ctx, time.Now().UTC().Add(time.Minute), 10)

	suite.Require().NoError(err)
	suite.Equal(1, expired)
	view, err := suite.service.Get(ctx, stale.Order.ID(), "")
	suite.Require().NoError(err)
	suite.Equal(order.Cancelled, view.Status)
	suite.Equal(commands.ExpiryActor, *view.CancelledBy)
	suite.Equal(commands.ExpiryReason, *view.CancellationReason)

	view, err = suite.service.Get(ctx, paid.Order.ID(), "")
	suite.Require().NoError(err)
	suite.Equal(order.Pending, view.Status)
}

func (suite *ServiceIntegrationTestSuite) TestList() {
	ctx := context.Background()
	first := suite.place("user-1")
	suite.place("user-2")
	suite.Require().NoError(suite.service.Cancel(ctx, first.Order.ID(), "admin", ""))

	active, err := suite.service.List(ctx, queries.OrderFilter{OrderStatus: queries.ActiveOrders}, nil)
	suite.Require().NoError(err)
	suite.Require().Len(active.Results, 1)
	suite.Equal("user-2", active.Results[0].UserID)

	_, err = suite.service.List(ctx, queries.OrderFilter{}, &queries.Pagination{Page: 0, Size: 10})
	suite.Require().ErrorIs(err, errs.ErrValueIsOutOfRange)
}

func (suite *ServiceIntegrationTestSuite) place(userID string) orderservice.Created {
	created, err := suite.service.Create(context.Background(), suite.checkout(userID, suite.seedCart(userID)))
	suite.Require().NoError(err)
	return created
}

func (suite *ServiceIntegrationTestSuite) checkout(userID string, cartID kernel.ID) commands.CreateOrderCommand {
	cmd, err := commands.NewCreateOrderCommand(userID, cartID,
		decimal.NewNullDecimal(decimal.NewFromInt(10)),
		decimal.NewNullDecimal(decimal.NewFromInt(5)),
		[]commands.CartLine{
			{
				CartID: cartID, ProductID: kernel.MustNewID(1),
				Price: decimal.NewFromInt(100), OriginalPrice: decimal.NewFromInt(100), Quantity: 1,
			},
			{
				CartID: cartID, ProductID: kernel.MustNewID(2),
				Price: decimal.NewFromInt(50), OriginalPrice: decimal.NewFromInt(50), Quantity: 2,
			},
		},
	)
	suite.Require().NoError(err)
	return cmd
}

func (suite *ServiceIntegrationTestSuite) seedCart(userID string) kernel.ID {
	cart := cartrepo.CartDTO{UserID: userID, Status: cartrepo.CartStatusOpen}
	suite.Require().NoError(suite.db.Create(&cart).Error)
	return kernel.MustNewID(cart.ID)
}

func (suite *ServiceIntegrationTestSuite) cartStatus(id kernel.ID) string {
	var cart cartrepo.CartDTO
	suite.Require().NoError(suite.db.First(&cart, "id = ?", id.Int64()).Error)
	return cart.Status
}

func (suite *ServiceIntegrationTestSuite) auditRows(orderID kernel.ID) int64 {
	var count int64
	suite.Require().NoError(suite.db.Model(&orderrepo.OrderStatusChangeDTO{}).
		Where("order_id = ?", orderID.Int64()).Count(&count).Error)
	return count
}

func (suite *ServiceIntegrationTestSuite) paymentStatus(orderID kernel.ID) order.PaymentStatus {
	view, err := suite.service.Get(context.Background(), orderID, "")
	suite.Require().NoError(err)
	suite.Require().NotNil(view)
	return view.PaymentStatus
}

func TestServiceIntegrationTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration tests in short mode")
	}
	suite.Run(t, new(ServiceIntegrationTestSuite))
}

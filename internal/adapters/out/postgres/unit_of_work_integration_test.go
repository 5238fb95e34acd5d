package postgres_test

import (
	"context"
	"testing"
	"time"

	postgres_adapter "ordering/internal/adapters/out/postgres"
	"ordering/internal/adapters/out/postgres/cartrepo"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/ports"
	"ordering/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// UnitOfWorkIntegrationTestSuite exercises the GORM unit of work against a
// real PostgreSQL database.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	factory   ports.UnitOfWorkFactory
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2)),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(postgres_adapter.Migrate(db))

	suite.factory = postgres_adapter.NewGormUnitOfWorkFactory(db)
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	err := suite.db.Exec(
		"TRUNCATE TABLE payment_events, transactions, order_status_changes, order_lines, orders, carts RESTART IDENTITY",
	).Error
	suite.Require().NoError(err)
}

func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWorkFactory_Create() {
	uow1 := suite.factory.Create()
	uow2 := suite.factory.Create()

	suite.NotSame(uow1, uow2, "Factory should create separate instances")
	suite.NotNil(uow1.OrderRepository())
	suite.NotNil(uow1.CartRepository())
	suite.NotNil(uow2.OrderRepository())
	suite.NotNil(uow2.CartRepository())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionLifecycle() {
	ctx := context.Background()
	uow := suite.factory.Create()

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Begin(ctx), "Multiple begin calls should be safe")
	suite.Require().NoError(uow.Commit(ctx))

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Rollback(ctx))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionErrors() {
	ctx := context.Background()
	uow := suite.factory.Create()

	suite.Require().ErrorIs(uow.Commit(ctx), gorm.ErrInvalidTransaction)
	suite.Require().ErrorIs(uow.Rollback(ctx), gorm.ErrInvalidTransaction)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_CheckoutIsAtomic() {
	ctx := context.Background()
	cartID := suite.seedCart("user-1")
	uow := suite.factory.Create()

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.CartRepository().Freeze(ctx, cartID))
	saved, err := uow.OrderRepository().Add(ctx, createTestOrder(suite.T(), cartID))
	suite.Require().NoError(err)
	suite.Require().NoError(uow.Commit(ctx))

	suite.Equal(cartrepo.CartStatusFrozen, suite.cartStatus(cartID))

	loaded, err := suite.factory.Create().OrderRepository().Get(ctx, saved.ID())
	suite.Require().NoError(err)
	suite.True(loaded.CartID().IsEqual(cartID))
	suite.Len(loaded.Lines(), 2)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_RollbackDiscardsCartAndOrder() {
	ctx := context.Background()
	cartID := suite.seedCart("user-1")
	uow := suite.factory.Create()

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.CartRepository().Freeze(ctx, cartID))
	saved, err := uow.OrderRepository().Add(ctx, createTestOrder(suite.T(), cartID))
	suite.Require().NoError(err)

	_, err = uow.OrderRepository().Get(ctx, saved.ID())
	suite.Require().NoError(err, "order should be visible inside its transaction")

	suite.Require().NoError(uow.Rollback(ctx))

	suite.Equal(cartrepo.CartStatusOpen, suite.cartStatus(cartID))
	_, err = suite.factory.Create().OrderRepository().Get(ctx, saved.ID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_FreezeUnknownCart() {
	ctx := context.Background()
	uow := suite.factory.Create()

	err := uow.CartRepository().Freeze(ctx, kernel.MustNewID(404))

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_FreezeFrozenCartIsRejected() {
	ctx := context.Background()
	cartID := suite.seedCart("user-1")
	carts := suite.factory.Create().CartRepository()
	suite.Require().NoError(carts.Freeze(ctx, cartID))

	err := carts.Freeze(ctx, cartID)

	suite.Require().ErrorIs(err, errs.ErrValueIsInvalid)
	suite.Contains(err.Error(), "cartId")
	suite.Equal(cartrepo.CartStatusFrozen, suite.cartStatus(cartID))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_RepositoryIsolation() {
	ctx := context.Background()
	cartID := suite.seedCart("user-1")

	uow1 := suite.factory.Create()
	uow2 := suite.factory.Create()
	suite.Require().NoError(uow1.Begin(ctx))
	suite.Require().NoError(uow2.Begin(ctx))

	order1, err := uow1.OrderRepository().Add(ctx, createTestOrder(suite.T(), cartID))
	suite.Require().NoError(err)
	order2, err := uow2.OrderRepository().Add(ctx, createTestOrder(suite.T(), cartID))
	suite.Require().NoError(err)

	_, err = uow1.OrderRepository().Get(ctx, order2.ID())
	suite.Require().Error(err, "uow1 should not see order2")
	_, err = uow2.OrderRepository().Get(ctx, order1.ID())
	suite.Require().Error(err, "uow2 should not see order1")

	suite.Require().NoError(uow1.Commit(ctx))
	suite.Require().NoError(uow2.Rollback(ctx))

	fresh := suite.factory.Create().OrderRepository()
	_, err = fresh.Get(ctx, order1.ID())
	suite.Require().NoError(err)
	_, err = fresh.Get(ctx, order2.ID())
	suite.Require().Error(err)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_GetForUpdateSerializesWriters() {
	ctx := context.Background()
	cartID := suite.seedCart("user-1")
	saved, err := suite.factory.Create().OrderRepository().Add(ctx, createTestOrder(suite.T(), cartID))
	suite.Require().NoError(err)

	holder := suite.factory.Create()
	suite.Require().NoError(holder.Begin(ctx))
	_, err = holder.OrderRepository().GetForUpdate(ctx, saved.ID())
	suite.Require().NoError(err)

	acquired := make(chan error, 1)
	go func() {
		waiter := suite.factory.Create()
		if beginErr := waiter.Begin(ctx); beginErr != nil {
			acquired <- beginErr
			return
		}
		defer func() { _ = waiter.Rollback(ctx) }()
		_, lockErr := waiter.OrderRepository().GetForUpdate(ctx, saved.ID())
		acquired <- lockErr
	}()

	select {
	case <-acquired:
		suite.Fail("second writer must wait for the row lock")
	case <-time.After(300 * time.Millisecond):
	}

	suite.Require().NoError(holder.Commit(ctx))

	select {
	case lockErr := <-acquired:
		suite.Require().NoError(lockErr)
	case <-time.After(5 * time.Second):
		suite.Fail("second writer did not get the lock after commit")
	}
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_WithoutTransaction() {
	ctx := context.Background()
	cartID := suite.seedCart("user-1")
	uow := suite.factory.Create()

	saved, err := uow.OrderRepository().Add(ctx, createTestOrder(suite.T(), cartID))
	suite.Require().NoError(err)

	retrieved, err := suite.factory.Create().OrderRepository().Get(ctx, saved.ID())
	suite.Require().NoError(err)
	suite.True(saved.ID().IsEqual(retrieved.ID()))
}

func (suite *UnitOfWorkIntegrationTestSuite) seedCart(userID string) kernel.ID {
	cart := cartrepo.CartDTO{UserID: userID, Status: cartrepo.CartStatusOpen}
	suite.Require().NoError(suite.db.Create(&cart).Error)
	return kernel.MustNewID(cart.ID)
}

func (suite *UnitOfWorkIntegrationTestSuite) cartStatus(id kernel.ID) string {
	var cart cartrepo.CartDTO
	suite.Require().NoError(suite.db.First(&cart, "id = ?", id.Int64()).Error)
	return cart.Status
}

func createTestOrder(t *testing.T, cartID kernel.ID) *order.Order {
	t.Helper()
	first, err := order.NewLine(kernel.MustNewID(1), decimal.NewFromInt(100), decimal.NewFromInt(100), 1)
	if err != nil {
		t.Fatal(err)
	}
	second, err := order.NewLine(kernel.MustNewID(2), decimal.NewFromInt(50), decimal.NewFromInt(50), 2)
	if err != nil {
		t.Fatal(err)
	}
	o, err := order.NewOrder("user-1", cartID, decimal.NewFromInt(10), decimal.NewFromInt(5),
		[]*order.Line{first, second}, time.Now().UTC())
	if err != nil {
		t.Fatal(err)
	}
	return o
}

func TestUnitOfWorkIntegrationSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration tests in short mode")
	}
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}

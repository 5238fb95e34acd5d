package cmd

import (
	"log/slog"

	httpadapter "ordering/internal/adapters/in/http"
	"ordering/internal/adapters/out/postgres"
	"ordering/internal/core/application/orderservice"
	"ordering/internal/core/application/usecases/commands"
	"ordering/internal/core/domain/services"
	"ordering/internal/jobs"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	logger     *slog.Logger
}

func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) CompositionRoot {
	return CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		logger:     logger,
	}
}

func (c *CompositionRoot) CreateAccessHasher() services.AccessHasher {
	return services.NewKeyedAccessHasher(c.config.OrderHashSecret)
}

func (c *CompositionRoot) CreateOrderService() *orderservice.Service {
	var orders commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	var checkout commands.CheckoutUoWFactory = FuncCheckoutUoWFactory(func() commands.CheckoutUoW {
		return c.uowFactory.Create()
	})
	return orderservice.New(orders, checkout, c.gormDB, c.CreateAccessHasher())
}

func (c *CompositionRoot) CreateHTTPServer(service *orderservice.Service) (*echo.Echo, error) {
	return httpadapter.NewEcho(httpadapter.NewServer(service, c.logger), c.logger)
}

func (c *CompositionRoot) CreateJobManager(service *orderservice.Service) *jobs.JobManager {
	return jobs.NewJobManager(service, c.config.OrderExpirySchedule, c.config.OrderPendingTTL, c.logger)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncCheckoutUoWFactory func() commands.CheckoutUoW

func (f FuncCheckoutUoWFactory) Create() commands.CheckoutUoW {
	return f()
}

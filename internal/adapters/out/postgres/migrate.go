package postgres

import (
	"ordering/internal/adapters/out/postgres/cartrepo"
	"ordering/internal/adapters/out/postgres/orderrepo"

	"gorm.io/gorm"
)

// Models lists every table owned or touched by the ordering service, parents first.
func Models() []any {
	return []any{
		&cartrepo.CartDTO{},
		&orderrepo.OrderDTO{},
		&orderrepo.OrderLineDTO{},
		&orderrepo.OrderStatusChangeDTO{},
		&orderrepo.TransactionDTO{},
		&orderrepo.PaymentEventDTO{},
	}
}

// Migrate creates or updates the schema, including the foreign keys from the
// order child tables to orders.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(Models()...)
}

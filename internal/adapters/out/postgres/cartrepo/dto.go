// Package cartrepo persists the slice of cart state the ordering core needs.
// Carts are owned by the cart subsystem; the only transition driven from here
// is freezing a cart once an order has been placed for it.
package cartrepo

const (
	CartStatusOpen   = "Open"
	CartStatusFrozen = "Frozen"
)

// CartDTO is the cart header row shared with the cart subsystem.
type CartDTO struct {
	ID     int64  `gorm:"primaryKey;autoIncrement"`
	UserID string `gorm:"type:text;not null;index"`
	Status string `gorm:"type:varchar(16);not null;default:Open"`
}

func (CartDTO) TableName() string {
	return "carts"
}

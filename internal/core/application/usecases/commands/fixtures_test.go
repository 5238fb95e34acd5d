package commands_test

import (
	"testing"
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

var fixtureTime = time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)

func storedOrder(t *testing.T, id int64, status order.Status, payment order.PaymentStatus) *order.Order {
	t.Helper()
	first, err := order.RestoreLine(kernel.MustNewID(id*10+1), kernel.MustNewID(1),
		decimal.NewFromInt(100), decimal.Zero, 1, order.LineActive)
	require.NoError(t, err)
	second, err := order.RestoreLine(kernel.MustNewID(id*10+2), kernel.MustNewID(2),
		decimal.NewFromInt(50), decimal.Zero, 2, order.LineActive)
	require.NoError(t, err)

	o, err := order.RestoreOrder(
		kernel.MustNewID(id), "user-1", kernel.MustNewID(7),
		status, payment,
		decimal.NewFromInt(10), decimal.NewFromInt(5), nil, fixtureTime,
		[]*order.Line{first, second},
	)
	require.NoError(t, err)
	return o
}

package queries

import (
	"errors"
	"strings"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/guard"
)

var (
	ErrGetOrderQueryIsNotConstructed = errors.New(
		"GetOrderQuery must be created via NewGetOrderQuery constructor",
	)
	ErrGetOrderByHashQueryIsNotConstructed = errors.New(
		"GetOrderByHashQuery must be created via NewGetOrderByHashQuery constructor",
	)
)

// GetOrderQuery fetches one order. A non-empty userID restricts the lookup
// to orders owned by that user.
type GetOrderQuery struct {
	orderID kernel.ID
	userID  string

	guard guard.ConstructorGuard
}

func NewGetOrderQuery(orderID kernel.ID, userID string) (GetOrderQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderQuery{}, err
	}

	return GetOrderQuery{
		orderID: orderID,
		userID:  strings.TrimSpace(userID),
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

func (q GetOrderQuery) OrderID() kernel.ID { return q.orderID }
func (q GetOrderQuery) UserID() string     { return q.userID }

// GetOrderByHashQuery fetches one order for a holder of its access token.
type GetOrderByHashQuery struct {
	orderID kernel.ID
	token   string

	guard guard.ConstructorGuard
}

// NewGetOrderByHashQuery accepts any token, including an empty one; a bad
// token simply finds nothing. The token is opaque and kept exactly as given.
func NewGetOrderByHashQuery(orderID kernel.ID, token string) (GetOrderByHashQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderByHashQuery{}, err
	}

	return GetOrderByHashQuery{
		orderID: orderID,
		token:   token,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (q GetOrderByHashQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderByHashQueryIsNotConstructed)
}

func (q GetOrderByHashQuery) OrderID() kernel.ID { return q.orderID }
func (q GetOrderByHashQuery) Token() string      { return q.token }

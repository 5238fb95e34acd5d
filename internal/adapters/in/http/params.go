package http

import (
	"errors"
	"net/url"

	"ordering/internal/core/application/usecases/queries"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/pkg/errs"

	"github.com/oapi-codegen/runtime"
)

const defaultPageSize = 20

// ListOrdersParams are the query parameters of GET /api/v1/orders.
type ListOrdersParams struct {
	Q              *string
	OrderStatus    *string
	DetailedStatus *string
	UserID         *string
	CreatedAt      *string
	PaymentStatus  *string
	Page           *int
	Size           *int
}

func bindListOrdersParams(values url.Values) (ListOrdersParams, error) {
	var p ListOrdersParams
	if err := errors.Join(
		runtime.BindQueryParameter("form", true, false, "q", values, &p.Q),
		runtime.BindQueryParameter("form", true, false, "orderStatus", values, &p.OrderStatus),
		runtime.BindQueryParameter("form", true, false, "detailedStatus", values, &p.DetailedStatus),
		runtime.BindQueryParameter("form", true, false, "userId", values, &p.UserID),
		runtime.BindQueryParameter("form", true, false, "createdAt", values, &p.CreatedAt),
		runtime.BindQueryParameter("form", true, false, "paymentStatus", values, &p.PaymentStatus),
		runtime.BindQueryParameter("form", true, false, "page", values, &p.Page),
		runtime.BindQueryParameter("form", true, false, "size", values, &p.Size),
	); err != nil {
		return ListOrdersParams{}, errs.NewValueIsInvalidErrorWithCause("query", err)
	}
	return p, nil
}

// Filter converts the parameters into a filter. Pagination is enabled when
// either page or size is present; the missing one defaults to 1 or 20.
func (p ListOrdersParams) Filter() (queries.OrderFilter, *queries.Pagination, error) {
	var (
		filter  queries.OrderFilter
		errList []error
	)

	if p.Q != nil {
		filter.Q = *p.Q
	}
	if p.UserID != nil {
		filter.UserID = *p.UserID
	}
	if p.OrderStatus != nil && *p.OrderStatus != "" {
		group, err := queries.ParseOrderStatusGroup(*p.OrderStatus)
		errList = append(errList, err)
		filter.OrderStatus = group
	}
	if p.DetailedStatus != nil && *p.DetailedStatus != "" {
		status, err := order.ParseStatus(*p.DetailedStatus)
		errList = append(errList, err)
		filter.DetailedStatus = status
	}
	if p.CreatedAt != nil && *p.CreatedAt != "" {
		day, err := kernel.ParseDay(*p.CreatedAt)
		errList = append(errList, err)
		filter.CreatedAt = day
	}
	if p.PaymentStatus != nil && *p.PaymentStatus != "" {
		status, err := order.ParsePaymentStatus(*p.PaymentStatus)
		errList = append(errList, err)
		filter.PaymentStatus = status
	}

	if err := errors.Join(errList...); err != nil {
		return queries.OrderFilter{}, nil, err
	}

	if p.Page == nil && p.Size == nil {
		return filter, nil, nil
	}

	pagination := &queries.Pagination{Page: 1, Size: defaultPageSize}
	if p.Page != nil {
		pagination.Page = *p.Page
	}
	if p.Size != nil {
		pagination.Size = *p.Size
	}
	return filter, pagination, nil
}

func bindID(name, value string) (kernel.ID, error) {
	var raw int64
	err := runtime.BindStyledParameterWithOptions("simple", name, value, &raw, runtime.BindStyledParameterOptions{
		ParamLocation: runtime.ParamLocationPath,
		Required:      true,
	})
	if err != nil {
		return kernel.ID{}, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return kernel.NewID(raw)
}

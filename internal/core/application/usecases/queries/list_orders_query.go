package queries

import (
	"errors"
	"math"

	"ordering/internal/pkg/errs"
	"ordering/internal/pkg/guard"
)

var ErrListOrdersQueryIsNotConstructed = errors.New(
	"ListOrdersQuery must be created via NewListOrdersQuery constructor",
)

// MaxPageSize bounds a single page; together with a page number of at most
// math.MaxInt32 it keeps the row offset well inside int64.
const MaxPageSize = 1000

// Pagination selects one 1-indexed page of a filtered list.
type Pagination struct {
	Page int
	Size int
}

func (p Pagination) offset() int {
	return (p.Page - 1) * p.Size
}

// ListOrdersQuery lists orders matching a filter, optionally one page at a time.
type ListOrdersQuery struct {
	filter     OrderFilter
	pagination *Pagination

	guard guard.ConstructorGuard
}

// NewListOrdersQuery validates the pagination when given. A nil pagination
// returns the whole filtered set.
func NewListOrdersQuery(filter OrderFilter, pagination *Pagination) (ListOrdersQuery, error) {
	if pagination != nil {
		var errList []error
		if pagination.Page < 1 || pagination.Page > math.MaxInt32 {
			errList = append(errList, errs.NewValueIsOutOfRangeError("page", pagination.Page, 1, math.MaxInt32))
		}
		if pagination.Size < 1 || pagination.Size > MaxPageSize {
			errList = append(errList, errs.NewValueIsOutOfRangeError("size", pagination.Size, 1, MaxPageSize))
		}
		if err := errors.Join(errList...); err != nil {
			return ListOrdersQuery{}, err
		}
		p := *pagination
		pagination = &p
	}

	return ListOrdersQuery{
		filter:     filter,
		pagination: pagination,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (q ListOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListOrdersQueryIsNotConstructed)
}

func (q ListOrdersQuery) Filter() OrderFilter { return q.filter }

// Pagination returns nil for unpaginated queries.
func (q ListOrdersQuery) Pagination() *Pagination { return q.pagination }

// PageInfo describes the page returned and the size of the full filtered set.
type PageInfo struct {
	Page  int
	Size  int
	Total int64
	Pages int64
}

// ListOrdersQueryResponse carries PageInfo only for paginated queries.
type ListOrdersQueryResponse struct {
	Results    []OrderView
	Pagination *PageInfo
}

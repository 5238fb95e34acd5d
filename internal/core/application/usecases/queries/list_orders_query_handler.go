package queries

import (
	"context"

	"ordering/internal/pkg/errs"

	"gorm.io/gorm"
)

type ListOrdersQueryHandler struct {
	db *gorm.DB
}

func NewListOrdersQueryHandler(db *gorm.DB) ListOrdersQueryHandler {
	return ListOrdersQueryHandler{db: db}
}

// Handle returns results ordered by id ascending. For paginated queries the
// total comes from a separate count over the same predicates.
func (h ListOrdersQueryHandler) Handle(ctx context.Context, query ListOrdersQuery) (ListOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return ListOrdersQueryResponse{}, err
	}

	predicates := BuildPredicates(query.Filter())
	filtered := func() *gorm.DB {
		db := h.db.WithContext(ctx).Model(&orderRow{})
		for _, p := range predicates {
			db = db.Where(p.SQL, p.Args...)
		}
		return db
	}

	response := ListOrdersQueryResponse{}
	page := filtered().Order("orders.id")

	if p := query.Pagination(); p != nil {
		var total int64
		if err := filtered().Count(&total).Error; err != nil {
			return ListOrdersQueryResponse{}, errs.NewPersistenceErrorWithCause("count orders", err)
		}

		size := int64(p.Size)
		response.Pagination = &PageInfo{
			Page:  p.Page,
			Size:  p.Size,
			Total: total,
			Pages: (total + size - 1) / size,
		}
		page = page.Offset(p.offset()).Limit(p.Size)
	}

	var rows []orderRow
	if err := page.Find(&rows).Error; err != nil {
		return ListOrdersQueryResponse{}, errs.NewPersistenceErrorWithCause("list orders", err)
	}

	views, err := loadViews(ctx, h.db, rows)
	if err != nil {
		return ListOrdersQueryResponse{}, errs.NewPersistenceErrorWithCause("load order lines", err)
	}
	response.Results = views

	return response, nil
}

package supplier

import (
	"context"

	"github.com/mutugading/catalog-service/internal/domain/supplier"
)

// ListQuery represents the list suppliers query.
type ListQuery struct {
	Search   string
	Page     int
	PageSize int
}

// ListResult represents the list suppliers result.
type ListResult struct {
	Suppliers []*SupplierDTO `json:"suppliers"`
	Total     int64          `json:"total"`
	Page      int            `json:"page"`
	PageSize  int            `json:"page_size"`
}

// ListHandler handles the list suppliers query.
type ListHandler struct {
	repo supplier.Repository
}

// NewListHandler creates a new ListHandler.
func NewListHandler(repo supplier.Repository) *ListHandler {
	return &ListHandler{repo: repo}
}

// Handle executes the list suppliers query.
func (h *ListHandler) Handle(ctx context.Context, query ListQuery) (*ListResult, error) {
	filter := supplier.ListFilter{
		Search:   query.Search,
		Page:     query.Page,
		PageSize: query.PageSize,
	}
	filter.Validate()

	suppliers, total, err := h.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	dtos := make([]*SupplierDTO, 0, len(suppliers))
	for _, s := range suppliers {
		dtos = append(dtos, toDTO(s))
	}

	return &ListResult{
		Suppliers: dtos,
		Total:     total,
		Page:      filter.Page,
		PageSize:  filter.PageSize,
	}, nil
}

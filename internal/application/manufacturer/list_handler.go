package manufacturer

import (
	"context"

	"github.com/mutugading/catalog-service/internal/domain/manufacturer"
)

// ListQuery represents the list manufacturers query.
type ListQuery struct {
	Search   string
	Country  string
	Page     int
	PageSize int
}

// ListResult represents the list manufacturers result.
type ListResult struct {
	Manufacturers []*ManufacturerDTO `json:"manufacturers"`
	Total         int64              `json:"total"`
	Page          int                `json:"page"`
	PageSize      int                `json:"page_size"`
}

// ListHandler handles the list manufacturers query.
type ListHandler struct {
	repo manufacturer.Repository
}

// NewListHandler creates a new ListHandler.
func NewListHandler(repo manufacturer.Repository) *ListHandler {
	return &ListHandler{repo: repo}
}

// Handle executes the list manufacturers query.
func (h *ListHandler) Handle(ctx context.Context, query ListQuery) (*ListResult, error) {
	filter := manufacturer.ListFilter{
		Search:   query.Search,
		Country:  query.Country,
		Page:     query.Page,
		PageSize: query.PageSize,
	}
	filter.Validate()

	manufacturers, total, err := h.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	dtos := make([]*ManufacturerDTO, 0, len(manufacturers))
	for _, m := range manufacturers {
		dtos = append(dtos, toDTO(m))
	}

	return &ListResult{
		Manufacturers: dtos,
		Total:         total,
		Page:          filter.Page,
		PageSize:      filter.PageSize,
	}, nil
}

package pricing

import (
	"context"

	"github.com/mutugading/catalog-service/internal/domain/pricing"
)

// ListQuery represents the list pricing policies query.
type ListQuery struct {
	CategoryID *int64
	Page       int
	PageSize   int
}

// ListResult represents the list pricing policies result.
type ListResult struct {
	Policies []*PolicyDTO `json:"policies"`
	Total    int64        `json:"total"`
	Page     int          `json:"page"`
	PageSize int          `json:"page_size"`
}

// ListHandler handles the list pricing policies query.
type ListHandler struct {
	repo pricing.Repository
}

// NewListHandler creates a new ListHandler.
func NewListHandler(repo pricing.Repository) *ListHandler {
	return &ListHandler{repo: repo}
}

// Handle executes the list pricing policies query.
func (h *ListHandler) Handle(ctx context.Context, query ListQuery) (*ListResult, error) {
	filter := pricing.ListFilter{
		CategoryID: query.CategoryID,
		Page:       query.Page,
		PageSize:   query.PageSize,
	}
	filter.Validate()

	policies, total, err := h.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	dtos := make([]*PolicyDTO, 0, len(policies))
	for _, p := range policies {
		dtos = append(dtos, toDTO(p))
	}

	return &ListResult{
		Policies: dtos,
		Total:    total,
		Page:     filter.Page,
		PageSize: filter.PageSize,
	}, nil
}

package category

import (
	"context"

	"github.com/mutugading/catalog-service/internal/domain/category"
	"github.com/mutugading/catalog-service/internal/domain/shared"
)

// ListQuery represents the list categories query.
type ListQuery struct {
	Search    string
	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
}

// ListResult represents the list categories result.
type ListResult struct {
	Categories []*CategoryDTO `json:"categories"`
	Total      int64          `json:"total"`
	Page       int            `json:"page"`
	PageSize   int            `json:"page_size"`
}

// ListHandler handles the list categories query.
type ListHandler struct {
	repo    category.Repository
	storage shared.ObjectStorage
}

// NewListHandler creates a new ListHandler.
func NewListHandler(repo category.Repository, storage shared.ObjectStorage) *ListHandler {
	return &ListHandler{repo: repo, storage: storage}
}

// Handle executes the list categories query.
func (h *ListHandler) Handle(ctx context.Context, query ListQuery) (*ListResult, error) {
	filter := category.ListFilter{
		Search:    query.Search,
		Page:      query.Page,
		PageSize:  query.PageSize,
		SortBy:    query.SortBy,
		SortOrder: query.SortOrder,
	}
	filter.Validate()

	categories, total, err := h.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	dtos := make([]*CategoryDTO, 0, len(categories))
	for _, c := range categories {
		dtos = append(dtos, toDTO(c, h.storage))
	}

	return &ListResult{
		Categories: dtos,
		Total:      total,
		Page:       filter.Page,
		PageSize:   filter.PageSize,
	}, nil
}

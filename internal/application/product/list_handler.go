package product

import (
	"context"

	"github.com/mutugading/catalog-service/internal/domain/product"
	"github.com/mutugading/catalog-service/internal/domain/shared"
)

// ListQuery represents the list products query.
type ListQuery struct {
	Search     string
	CategoryID *int64
	Page       int
	PageSize   int
	SortBy     string
	SortOrder  string
}

// ListResult represents the list products result.
type ListResult struct {
	Products []*ProductDTO `json:"products"`
	Total    int64         `json:"total"`
	Page     int           `json:"page"`
	PageSize int           `json:"page_size"`
}

// ListHandler handles the list products query.
type ListHandler struct {
	repo    product.Repository
	storage shared.ObjectStorage
}

// NewListHandler creates a new ListHandler.
func NewListHandler(repo product.Repository, storage shared.ObjectStorage) *ListHandler {
	return &ListHandler{repo: repo, storage: storage}
}

// Handle executes the list products query.
func (h *ListHandler) Handle(ctx context.Context, query ListQuery) (*ListResult, error) {
	filter := product.ListFilter{
		Search:     query.Search,
		CategoryID: query.CategoryID,
		Page:       query.Page,
		PageSize:   query.PageSize,
		SortBy:     query.SortBy,
		SortOrder:  query.SortOrder,
	}
	filter.Validate()

	products, total, err := h.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	dtos := make([]*ProductDTO, 0, len(products))
	for _, p := range products {
		dtos = append(dtos, toDTO(p, h.storage))
	}

	return &ListResult{
		Products: dtos,
		Total:    total,
		Page:     filter.Page,
		PageSize: filter.PageSize,
	}, nil
}

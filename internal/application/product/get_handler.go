package product

import (
	"context"

	"github.com/mutugading/catalog-service/internal/domain/product"
	"github.com/mutugading/catalog-service/internal/domain/shared"
)

// GetQuery represents the get product query.
type GetQuery struct {
	ID int64
}

// GetHandler handles the get product query.
type GetHandler struct {
	repo    product.Repository
	storage shared.ObjectStorage
}

// NewGetHandler creates a new GetHandler.
func NewGetHandler(repo product.Repository, storage shared.ObjectStorage) *GetHandler {
	return &GetHandler{repo: repo, storage: storage}
}

// Handle executes the get product query.
func (h *GetHandler) Handle(ctx context.Context, query GetQuery) (*ProductDTO, error) {
	p, err := h.repo.GetByID(ctx, query.ID)
	if err != nil {
		return nil, err
	}
	return toDTO(p, h.storage), nil
}

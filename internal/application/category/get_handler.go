package category

import (
	"context"

	"github.com/mutugading/catalog-service/internal/domain/category"
	"github.com/mutugading/catalog-service/internal/domain/shared"
)

// GetQuery represents the get category query.
type GetQuery struct {
	ID int64
}

// GetHandler handles the get category query.
type GetHandler struct {
	repo    category.Repository
	storage shared.ObjectStorage
}

// NewGetHandler creates a new GetHandler.
func NewGetHandler(repo category.Repository, storage shared.ObjectStorage) *GetHandler {
	return &GetHandler{repo: repo, storage: storage}
}

// Handle executes the get category query.
func (h *GetHandler) Handle(ctx context.Context, query GetQuery) (*CategoryDTO, error) {
	c, err := h.repo.GetByID(ctx, query.ID)
	if err != nil {
		return nil, err
	}
	return toDTO(c, h.storage), nil
}
